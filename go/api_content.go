package adminserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	contenthttpmapper "github.com/Apurer/storefront-admin/internal/domains/content/adapters/http/mapper"
	contentports "github.com/Apurer/storefront-admin/internal/domains/content/ports"
	"github.com/Apurer/storefront-admin/internal/shared/response"
)

// ContentAPI serves hero sections, website sections, the footer and policy pages.
type ContentAPI struct {
	service contentports.Service
}

func NewContentAPI(service contentports.Service) ContentAPI {
	return ContentAPI{service: service}
}

// Get /api/admin/hero-sections?active=true
func (api *ContentAPI) ListHeroSections(c *gin.Context) {
	if api.service == nil {
		respondServiceError(c, errServiceUnavailable)
		return
	}
	activeOnly, _ := strconv.ParseBool(c.Query("active"))
	heroes, err := api.service.ListHeroes(c.Request.Context(), activeOnly)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.OK(c, "data", contenthttpmapper.FromDomainHeroes(heroes))
}

// Post /api/admin/hero-sections
func (api *ContentAPI) CreateHeroSection(c *gin.Context) {
	if api.service == nil {
		respondServiceError(c, errServiceUnavailable)
		return
	}
	var payload contenthttpmapper.HeroSection
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	hero, err := api.service.CreateHero(c.Request.Context(), contenthttpmapper.ToDomainHero(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, "Hero section created", "data", contenthttpmapper.FromDomainHero(hero))
}

// Get /api/admin/hero-sections/:id
func (api *ContentAPI) GetHeroSection(c *gin.Context) {
	if api.service == nil {
		respondServiceError(c, errServiceUnavailable)
		return
	}
	hero, err := api.service.GetHero(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.OK(c, "data", contenthttpmapper.FromDomainHero(hero))
}

// Put /api/admin/hero-sections/:id
func (api *ContentAPI) UpdateHeroSection(c *gin.Context) {
	if api.service == nil {
		respondServiceError(c, errServiceUnavailable)
		return
	}
	var payload contenthttpmapper.HeroSection
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	hero, err := api.service.UpdateHero(c.Request.Context(), c.Param("id"), contenthttpmapper.ToDomainHero(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Write(c, http.StatusOK, "Hero section updated", "data", contenthttpmapper.FromDomainHero(hero))
}

// Delete /api/admin/hero-sections/:id
func (api *ContentAPI) DeleteHeroSection(c *gin.Context) {
	if api.service == nil {
		respondServiceError(c, errServiceUnavailable)
		return
	}
	if err := api.service.DeleteHero(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Message(c, "Hero section deleted")
}

// Get /api/admin/website/sections
func (api *ContentAPI) ListWebsiteSections(c *gin.Context) {
	if api.service == nil {
		respondServiceError(c, errServiceUnavailable)
		return
	}
	sections, err := api.service.ListSections(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.OK(c, "sections", contenthttpmapper.FromDomainSections(sections))
}

// Post /api/admin/website/sections
func (api *ContentAPI) CreateWebsiteSection(c *gin.Context) {
	if api.service == nil {
		respondServiceError(c, errServiceUnavailable)
		return
	}
	var payload contenthttpmapper.WebsiteSection
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	section, err := api.service.CreateSection(c.Request.Context(), contenthttpmapper.ToDomainSection(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, "Section created", "section", contenthttpmapper.FromDomainSection(section))
}

// Get /api/admin/website/sections/:id
func (api *ContentAPI) GetWebsiteSection(c *gin.Context) {
	if api.service == nil {
		respondServiceError(c, errServiceUnavailable)
		return
	}
	section, err := api.service.GetSection(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.OK(c, "section", contenthttpmapper.FromDomainSection(section))
}

// Put /api/admin/website/sections/:id
func (api *ContentAPI) UpdateWebsiteSection(c *gin.Context) {
	if api.service == nil {
		respondServiceError(c, errServiceUnavailable)
		return
	}
	var payload contenthttpmapper.WebsiteSection
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	section, err := api.service.UpdateSection(c.Request.Context(), c.Param("id"), contenthttpmapper.ToDomainSection(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Write(c, http.StatusOK, "Section updated", "section", contenthttpmapper.FromDomainSection(section))
}

// Delete /api/admin/website/sections/:id
func (api *ContentAPI) DeleteWebsiteSection(c *gin.Context) {
	if api.service == nil {
		respondServiceError(c, errServiceUnavailable)
		return
	}
	if err := api.service.DeleteSection(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Message(c, "Section deleted")
}

// Get /api/admin/website/footer
func (api *ContentAPI) GetFooter(c *gin.Context) {
	if api.service == nil {
		respondServiceError(c, errServiceUnavailable)
		return
	}
	footer, err := api.service.GetFooter(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.OK(c, "data", contenthttpmapper.FromFooterProjection(footer))
}

// Put /api/admin/website/footer
func (api *ContentAPI) PutFooter(c *gin.Context) {
	if api.service == nil {
		respondServiceError(c, errServiceUnavailable)
		return
	}
	var payload contenthttpmapper.Footer
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	footer, err := api.service.PutFooter(c.Request.Context(), contenthttpmapper.ToDomainFooter(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Write(c, http.StatusOK, "Footer saved", "data", contenthttpmapper.FromFooterProjection(footer))
}

// Get /api/admin/policies/:kind
func (api *ContentAPI) GetPolicy(c *gin.Context) {
	if api.service == nil {
		respondServiceError(c, errServiceUnavailable)
		return
	}
	policy, err := api.service.GetPolicy(c.Request.Context(), c.Param("kind"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.OK(c, "data", contenthttpmapper.FromPolicyProjection(policy))
}

// Put /api/admin/policies/:kind
func (api *ContentAPI) PutPolicy(c *gin.Context) {
	if api.service == nil {
		respondServiceError(c, errServiceUnavailable)
		return
	}
	var payload contenthttpmapper.Policy
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	policy, err := api.service.PutPolicy(c.Request.Context(), c.Param("kind"), contenthttpmapper.ToDomainPolicy(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Write(c, http.StatusOK, "Policy saved", "data", contenthttpmapper.FromPolicyProjection(policy))
}
