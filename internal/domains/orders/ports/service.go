package ports

import (
	"context"

	orderstypes "github.com/Apurer/storefront-admin/internal/domains/orders/application/types"
	"github.com/Apurer/storefront-admin/internal/domains/orders/domain"
)

// Service exposes order use cases to adapters.
type Service interface {
	CreateOrder(ctx context.Context, input orderstypes.CreateOrderInput) (*domain.Order, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	ListOrders(ctx context.Context, input orderstypes.ListOrdersInput) (*orderstypes.OrderPage, error)
	UpdateItemStatus(ctx context.Context, input orderstypes.UpdateItemStatusInput) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, input orderstypes.UpdateOrderStatusInput) (*domain.Order, error)
	MarkOrdersSeen(ctx context.Context, ids []string) (int64, error)
}
