package shipments

import (
	"go.temporal.io/sdk/workflow"

	shipmenttypes "github.com/Apurer/storefront-admin/internal/domains/shipments/application/types"
	"github.com/Apurer/storefront-admin/internal/platform/temporal/sequences"
)

const (
	// BulkShipmentWorkflowName is the registered name of the bulk creation workflow.
	BulkShipmentWorkflowName = "shipments.workflows.BulkCreation"
	// BulkShipmentTaskQueue is the task queue the shipment worker polls.
	BulkShipmentTaskQueue = "SHIPMENT_BULK"
)

// BulkShipmentWorkflowInput carries the bulk command and the originating trace id.
type BulkShipmentWorkflowInput struct {
	Command shipmenttypes.BulkCreateInput
	TraceID string
}

// BulkShipmentWorkflow manifests one shipment per order of the command.
func BulkShipmentWorkflow(ctx workflow.Context, input BulkShipmentWorkflowInput) (*shipmenttypes.BulkCreateResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("bulk shipment workflow started", "orders", len(input.Command.OrderIDs), "traceId", input.TraceID)
	return sequences.RunBulkShipmentSequence(ctx, input.Command)
}
