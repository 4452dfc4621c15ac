package mapper

import (
	"time"

	"github.com/Apurer/storefront-admin/internal/domains/content/domain"
	"github.com/Apurer/storefront-admin/internal/shared/projection"
)

// HeroSection is the dashboard representation of a hero slide.
type HeroSection struct {
	ID           string    `json:"id,omitempty"`
	Title        string    `json:"title" binding:"required"`
	Subtitle     string    `json:"subtitle,omitempty"`
	DesktopImage string    `json:"desktopImage" binding:"required"`
	MobileImage  string    `json:"mobileImage,omitempty"`
	CTALabel     string    `json:"ctaLabel,omitempty"`
	CTALink      string    `json:"ctaLink,omitempty"`
	Position     int       `json:"position"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt,omitempty"`
}

// WebsiteSection is the dashboard representation of a curated section.
type WebsiteSection struct {
	ID         string    `json:"id,omitempty"`
	Slug       string    `json:"slug,omitempty"`
	Title      string    `json:"title" binding:"required"`
	Subtitle   string    `json:"subtitle,omitempty"`
	Layout     string    `json:"layout,omitempty"`
	ProductIDs []string  `json:"productIds"`
	Position   int       `json:"position"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"createdAt,omitempty"`
	UpdatedAt  time.Time `json:"updatedAt,omitempty"`
}

type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

type LinkColumn struct {
	Title string `json:"title"`
	Links []Link `json:"links"`
}

type Contact struct {
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// Footer is the footer document as edited in the dashboard.
type Footer struct {
	Tagline   string       `json:"tagline"`
	Columns   []LinkColumn `json:"columns"`
	Socials   []Link       `json:"socials"`
	Contact   Contact      `json:"contact"`
	Copyright string       `json:"copyright"`
	UpdatedAt *time.Time   `json:"updatedAt,omitempty"`
}

// Policy is a policy page body.
type Policy struct {
	Kind      string     `json:"kind"`
	Title     string     `json:"title" binding:"required"`
	Body      string     `json:"body" binding:"required"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

func ToDomainHero(dto HeroSection) domain.HeroSection {
	return domain.HeroSection{
		Title:        dto.Title,
		Subtitle:     dto.Subtitle,
		DesktopImage: dto.DesktopImage,
		MobileImage:  dto.MobileImage,
		CTALabel:     dto.CTALabel,
		CTALink:      dto.CTALink,
		Position:     dto.Position,
		Active:       dto.Active,
	}
}

func FromDomainHero(h *domain.HeroSection) HeroSection {
	return HeroSection{
		ID:           h.ID,
		Title:        h.Title,
		Subtitle:     h.Subtitle,
		DesktopImage: h.DesktopImage,
		MobileImage:  h.MobileImage,
		CTALabel:     h.CTALabel,
		CTALink:      h.CTALink,
		Position:     h.Position,
		Active:       h.Active,
		CreatedAt:    h.CreatedAt,
		UpdatedAt:    h.UpdatedAt,
	}
}

func FromDomainHeroes(heroes []*domain.HeroSection) []HeroSection {
	out := make([]HeroSection, 0, len(heroes))
	for _, h := range heroes {
		out = append(out, FromDomainHero(h))
	}
	return out
}

func ToDomainSection(dto WebsiteSection) domain.WebsiteSection {
	return domain.WebsiteSection{
		Slug:       dto.Slug,
		Title:      dto.Title,
		Subtitle:   dto.Subtitle,
		Layout:     domain.Layout(dto.Layout),
		ProductIDs: append([]string(nil), dto.ProductIDs...),
		Position:   dto.Position,
		Active:     dto.Active,
	}
}

func FromDomainSection(s *domain.WebsiteSection) WebsiteSection {
	ids := s.ProductIDs
	if ids == nil {
		ids = []string{}
	}
	return WebsiteSection{
		ID:         s.ID,
		Slug:       s.Slug,
		Title:      s.Title,
		Subtitle:   s.Subtitle,
		Layout:     string(s.Layout),
		ProductIDs: ids,
		Position:   s.Position,
		Active:     s.Active,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func FromDomainSections(sections []*domain.WebsiteSection) []WebsiteSection {
	out := make([]WebsiteSection, 0, len(sections))
	for _, s := range sections {
		out = append(out, FromDomainSection(s))
	}
	return out
}

func ToDomainFooter(dto Footer) domain.Footer {
	footer := domain.Footer{
		Tagline:   dto.Tagline,
		Contact:   domain.Contact(dto.Contact),
		Copyright: dto.Copyright,
		Socials:   toDomainLinks(dto.Socials),
	}
	for _, column := range dto.Columns {
		footer.Columns = append(footer.Columns, domain.LinkColumn{Title: column.Title, Links: toDomainLinks(column.Links)})
	}
	return footer
}

func FromFooterProjection(p *projection.Projection[*domain.Footer]) Footer {
	footer := p.Entity
	dto := Footer{
		Tagline:   footer.Tagline,
		Columns:   []LinkColumn{},
		Socials:   fromDomainLinks(footer.Socials),
		Contact:   Contact(footer.Contact),
		Copyright: footer.Copyright,
		UpdatedAt: timestamp(p.Metadata.UpdatedAt),
	}
	for _, column := range footer.Columns {
		dto.Columns = append(dto.Columns, LinkColumn{Title: column.Title, Links: fromDomainLinks(column.Links)})
	}
	return dto
}

func ToDomainPolicy(dto Policy) domain.Policy {
	return domain.Policy{Title: dto.Title, Body: dto.Body}
}

func FromPolicyProjection(p *projection.Projection[*domain.Policy]) Policy {
	return Policy{
		Kind:      string(p.Entity.Kind),
		Title:     p.Entity.Title,
		Body:      p.Entity.Body,
		UpdatedAt: timestamp(p.Metadata.UpdatedAt),
	}
}

func toDomainLinks(links []Link) []domain.Link {
	out := make([]domain.Link, 0, len(links))
	for _, link := range links {
		out = append(out, domain.Link(link))
	}
	return out
}

func fromDomainLinks(links []domain.Link) []Link {
	out := make([]Link, 0, len(links))
	for _, link := range links {
		out = append(out, Link(link))
	}
	return out
}

func timestamp(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
