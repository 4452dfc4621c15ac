package ports

import (
	"context"
	"errors"

	"github.com/Apurer/storefront-admin/internal/domains/orders/domain"
)

var (
	ErrNotFound = errors.New("order not found")
	// ErrUnknownVariant is returned by stock writes when the product size does not exist.
	ErrUnknownVariant = errors.New("product variant not found")
	// ErrConcurrentUpdate signals the order changed between read and write.
	ErrConcurrentUpdate = errors.New("order was modified concurrently")
)

// ListFilter narrows order listings.
type ListFilter struct {
	Status *domain.WebsiteStatus
	IsNew  *bool
	Search string
	Offset int
	Limit  int
}

// Repository persists orders.
type Repository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, filter ListFilter) ([]*domain.Order, int64, error)
	// MarkSeen clears the IsNew flag. An empty id list targets every order.
	MarkSeen(ctx context.Context, ids []string) (int64, error)
	// InTx runs fn atomically: the order save and stock writes commit together or not at all.
	InTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx exposes the writes allowed inside a status update transaction.
type Tx interface {
	// GetForUpdate loads the order and holds it against concurrent writers until commit.
	GetForUpdate(ctx context.Context, id string) (*domain.Order, error)
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	// RecordSale decrements variant stock (floored at zero) and increments its sold counter.
	RecordSale(ctx context.Context, productID, size string, quantity int) error
}
