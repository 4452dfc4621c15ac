package ports

import (
	"context"

	"github.com/Apurer/storefront-admin/internal/domains/catalog/domain"
)

// SaveProductInput creates or replaces a product.
type SaveProductInput struct {
	ID          string
	Name        string
	Description string
	Price       string
	Images      []string
	Variants    []domain.Variant
}

// Service exposes catalog use cases to adapters.
type Service interface {
	SaveProduct(ctx context.Context, input SaveProductInput) (*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]*domain.Product, error)
}
