package ports

import (
	"context"

	shipmenttypes "github.com/Apurer/storefront-admin/internal/domains/shipments/application/types"
	"github.com/Apurer/storefront-admin/internal/domains/shipments/domain"
)

// Service exposes shipment use cases to adapters.
type Service interface {
	ListForOrder(ctx context.Context, orderID string) (*shipmenttypes.OrderShipments, error)
	Create(ctx context.Context, input shipmenttypes.CreateShipmentInput) (*domain.Shipment, error)
	Cancel(ctx context.Context, waybill string) (*domain.Shipment, error)
	Edit(ctx context.Context, input shipmenttypes.EditShipmentInput) (*domain.Shipment, error)
	Track(ctx context.Context, waybills []string) ([]TrackResult, error)
	Label(ctx context.Context, waybill string) (*Label, error)
	Serviceability(ctx context.Context, pincode string) (*Serviceability, error)
}
