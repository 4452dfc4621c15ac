package ports

import (
	"context"
	"errors"

	"github.com/Apurer/storefront-admin/internal/domains/shipments/domain"
)

var ErrNotFound = errors.New("shipment not found")

// Repository persists shipment records.
type Repository interface {
	Save(ctx context.Context, shipment *domain.Shipment) (*domain.Shipment, error)
	GetByID(ctx context.Context, id string) (*domain.Shipment, error)
	// GetByWaybill resolves master and child waybills alike.
	GetByWaybill(ctx context.Context, waybill string) (*domain.Shipment, error)
	ListByOrder(ctx context.Context, orderID string) ([]*domain.Shipment, error)
}
