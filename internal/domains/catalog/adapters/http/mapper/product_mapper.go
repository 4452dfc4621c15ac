package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/storefront-admin/internal/domains/catalog/domain"
	"github.com/Apurer/storefront-admin/internal/domains/catalog/ports"
)

// Variant is one size with its counters.
type Variant struct {
	Size  string `json:"size" binding:"required"`
	Stock int    `json:"stock"`
	Sold  int    `json:"sold"`
}

// Product is the dashboard representation of a catalog entry.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Images      []string        `json:"images"`
	Variants    []Variant       `json:"variants"`
	TotalStock  int             `json:"totalStock"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// SaveProduct is the create/replace payload. Price is a decimal string.
type SaveProduct struct {
	ID          string    `json:"id"`
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	Images      []string  `json:"images"`
	Variants    []Variant `json:"variants" binding:"required,min=1,dive"`
}

func ToSaveProductInput(payload SaveProduct) ports.SaveProductInput {
	variants := make([]domain.Variant, 0, len(payload.Variants))
	for _, v := range payload.Variants {
		variants = append(variants, domain.Variant(v))
	}
	return ports.SaveProductInput{
		ID:          payload.ID,
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		Images:      payload.Images,
		Variants:    variants,
	}
}

func FromDomainProduct(p *domain.Product) Product {
	variants := make([]Variant, 0, len(p.Variants))
	for _, v := range p.Variants {
		variants = append(variants, Variant(v))
	}
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Images:      images,
		Variants:    variants,
		TotalStock:  p.TotalStock(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func FromDomainProducts(products []*domain.Product) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		out = append(out, FromDomainProduct(p))
	}
	return out
}
