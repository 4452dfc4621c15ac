package shipments

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	ordersports "github.com/Apurer/storefront-admin/internal/domains/orders/ports"
	shipmentsapp "github.com/Apurer/storefront-admin/internal/domains/shipments/application"
	shipmenttypes "github.com/Apurer/storefront-admin/internal/domains/shipments/application/types"
	shipmentsports "github.com/Apurer/storefront-admin/internal/domains/shipments/ports"
)

const (
	// CreateShipmentActivityName manifests one shipment of a bulk request.
	CreateShipmentActivityName = "shipments.activities.CreateShipment"
	errTypeRejected            = "ShipmentRejected"
)

// Activities groups activities that operate on the shipments bounded context.
type Activities struct {
	service shipmentsports.Service
}

// NewActivities wires the shipments service into the Temporal activities bundle.
func NewActivities(service shipmentsports.Service) *Activities {
	return &Activities{service: service}
}

// CreateShipment manifests a shipment for one order. Requests the service rejects as
// invalid or conflicting are not retried; carrier and storage failures are.
func (a *Activities) CreateShipment(ctx context.Context, input shipmenttypes.CreateShipmentInput) (*shipmenttypes.BulkItemResult, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("shipment activity not initialized", "orderId", input.OrderID)
		return nil, errors.New("shipment activity not initialized")
	}
	logger.Info("CreateShipment activity started", "orderId", input.OrderID, "attempt", activity.GetInfo(ctx).Attempt)
	shipment, err := a.service.Create(ctx, input)
	if err != nil {
		logger.Error("CreateShipment activity failed", "orderId", input.OrderID, "error", err)
		if permanent(err) {
			return nil, temporal.NewNonRetryableApplicationError(err.Error(), errTypeRejected, err)
		}
		return nil, err
	}
	logger.Info("CreateShipment activity completed", "orderId", input.OrderID, "waybill", shipment.MasterWaybill())
	return &shipmenttypes.BulkItemResult{
		OrderID:    input.OrderID,
		ShipmentID: shipment.ID,
		Waybill:    shipment.MasterWaybill(),
	}, nil
}

func permanent(err error) bool {
	return errors.Is(err, shipmentsapp.ErrInvalidInput) ||
		errors.Is(err, shipmentsapp.ErrConflict) ||
		errors.Is(err, ordersports.ErrNotFound)
}
