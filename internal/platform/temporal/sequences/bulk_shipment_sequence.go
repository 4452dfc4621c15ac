package sequences

import (
	"errors"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	shipmentsapp "github.com/Apurer/storefront-admin/internal/domains/shipments/application"
	shipmenttypes "github.com/Apurer/storefront-admin/internal/domains/shipments/application/types"
	shipmentactivities "github.com/Apurer/storefront-admin/internal/platform/temporal/activities/shipments"
)

// RunBulkShipmentSequence manifests one shipment per order. Orders are independent: a failure
// is recorded against its order and the remaining orders still run.
func RunBulkShipmentSequence(ctx workflow.Context, input shipmenttypes.BulkCreateInput) (*shipmenttypes.BulkCreateResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("bulk shipment sequence started", "orders", len(input.OrderIDs))
	createOptions := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    30 * time.Second,
			MaximumAttempts:    4,
		},
	}
	activityCtx := workflow.WithActivityOptions(ctx, createOptions)

	futures := make([]workflow.Future, len(input.OrderIDs))
	for i, orderID := range input.OrderIDs {
		command := shipmenttypes.CreateShipmentInput{
			OrderID:        orderID,
			Type:           input.Type,
			WeightGrams:    input.WeightGrams,
			PickupLocation: input.PickupLocation,
			IdempotencyKey: shipmentsapp.BulkItemKey(input.IdempotencyKey, orderID),
		}
		futures[i] = workflow.ExecuteActivity(activityCtx, shipmentactivities.CreateShipmentActivityName, command)
	}

	result := &shipmenttypes.BulkCreateResult{Results: make([]shipmenttypes.BulkItemResult, 0, len(futures))}
	for i, future := range futures {
		orderID := input.OrderIDs[i]
		var item shipmenttypes.BulkItemResult
		if err := future.Get(ctx, &item); err != nil {
			logger.Error("bulk shipment order failed", "orderId", orderID, "error", err)
			result.Add(shipmenttypes.BulkItemResult{OrderID: orderID, Error: rootMessage(err)})
			continue
		}
		result.Add(item)
	}
	logger.Info("bulk shipment sequence finished", "succeeded", result.Succeeded, "failed", result.Failed)
	return result, nil
}

func rootMessage(err error) string {
	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Error()
	}
	return err.Error()
}
