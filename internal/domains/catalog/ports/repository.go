package ports

import (
	"context"
	"errors"

	"github.com/Apurer/storefront-admin/internal/domains/catalog/domain"
)

var ErrNotFound = errors.New("product not found")

// Repository persists catalog products and their stock counters.
type Repository interface {
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	// RecordSale decrements stock (floored at zero) and increments sold for one variant.
	// Missing products and sizes both yield domain.ErrUnknownVariant.
	RecordSale(ctx context.Context, productID, size string, quantity int) error
}
