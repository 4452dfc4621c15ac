package ports

import (
	"context"

	ordersdomain "github.com/Apurer/storefront-admin/internal/domains/orders/domain"
)

// OrderReader loads the order a shipment belongs to.
type OrderReader interface {
	GetOrder(ctx context.Context, id string) (*ordersdomain.Order, error)
}
