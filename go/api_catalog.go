package adminserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	cataloghttpmapper "github.com/Apurer/storefront-admin/internal/domains/catalog/adapters/http/mapper"
	catalogports "github.com/Apurer/storefront-admin/internal/domains/catalog/ports"
	"github.com/Apurer/storefront-admin/internal/shared/response"
)

// CatalogAPI serves products and their per-size stock.
type CatalogAPI struct {
	service catalogports.Service
}

func NewCatalogAPI(service catalogports.Service) CatalogAPI {
	return CatalogAPI{service: service}
}

// Get /api/admin/products
func (api *CatalogAPI) ListProducts(c *gin.Context) {
	if api.service == nil {
		respondServiceError(c, errServiceUnavailable)
		return
	}
	products, err := api.service.ListProducts(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.OK(c, "data", cataloghttpmapper.FromDomainProducts(products))
}

// Post /api/admin/products
// Creates a product, or replaces it when the id is known
func (api *CatalogAPI) SaveProduct(c *gin.Context) {
	if api.service == nil {
		respondServiceError(c, errServiceUnavailable)
		return
	}
	var payload cataloghttpmapper.SaveProduct
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	product, err := api.service.SaveProduct(c.Request.Context(), cataloghttpmapper.ToSaveProductInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Write(c, http.StatusOK, "Product saved", "data", cataloghttpmapper.FromDomainProduct(product))
}

// Get /api/admin/products/:id
func (api *CatalogAPI) GetProduct(c *gin.Context) {
	if api.service == nil {
		respondServiceError(c, errServiceUnavailable)
		return
	}
	product, err := api.service.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.OK(c, "data", cataloghttpmapper.FromDomainProduct(product))
}
