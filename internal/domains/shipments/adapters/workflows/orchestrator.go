package workflows

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	shipmentsapp "github.com/Apurer/storefront-admin/internal/domains/shipments/application"
	shipmenttypes "github.com/Apurer/storefront-admin/internal/domains/shipments/application/types"
	"github.com/Apurer/storefront-admin/internal/domains/shipments/ports"
	shipmentworkflows "github.com/Apurer/storefront-admin/internal/platform/temporal/workflows/shipments"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalShipmentWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineShipmentWorkflows)(nil)
)

var errNoOrders = errors.New("bulk request needs at least one order id")

// TemporalShipmentWorkflows starts shipment workflows on a Temporal cluster.
type TemporalShipmentWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalShipmentWorkflows wires a Temporal client into the orchestrator.
func NewTemporalShipmentWorkflows(c client.Client) *TemporalShipmentWorkflows {
	return &TemporalShipmentWorkflows{client: c, taskQueue: shipmentworkflows.BulkShipmentTaskQueue}
}

// BulkCreate starts the bulk creation workflow and waits for its per-order results.
func (o *TemporalShipmentWorkflows) BulkCreate(ctx context.Context, input shipmenttypes.BulkCreateInput) (*shipmenttypes.BulkCreateResult, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal shipment workflows not configured")
	}
	input.OrderIDs = cleanOrderIDs(input.OrderIDs)
	if len(input.OrderIDs) == 0 {
		return nil, fmt.Errorf("%w: %w", shipmentsapp.ErrInvalidInput, errNoOrders)
	}
	traceComponent := workflowTraceComponent(ctx)
	workflowID := buildBulkWorkflowID(input, traceComponent)
	if strings.TrimSpace(input.IdempotencyKey) == "" {
		// Activity retries then stay idempotent per order.
		input.IdempotencyKey = workflowID
	}
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		shipmentworkflows.BulkShipmentWorkflowName,
		shipmentworkflows.BulkShipmentWorkflowInput{Command: input, TraceID: traceComponent},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			existingRun := o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
			var result shipmenttypes.BulkCreateResult
			if err := existingRun.Get(ctx, &result); err != nil {
				return nil, err
			}
			return &result, nil
		}
		return nil, err
	}
	var result shipmenttypes.BulkCreateResult
	if err := run.Get(ctx, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// InlineShipmentWorkflows executes the service directly without Temporal, useful for tests or dev fallbacks.
type InlineShipmentWorkflows struct {
	service ports.Service
}

// NewInlineShipmentWorkflows wraps the shipments service for synchronous execution.
func NewInlineShipmentWorkflows(service ports.Service) *InlineShipmentWorkflows {
	return &InlineShipmentWorkflows{service: service}
}

// BulkCreate manifests the orders one after another without durable orchestration.
func (o *InlineShipmentWorkflows) BulkCreate(ctx context.Context, input shipmenttypes.BulkCreateInput) (*shipmenttypes.BulkCreateResult, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline shipment workflows not configured")
	}
	orderIDs := cleanOrderIDs(input.OrderIDs)
	if len(orderIDs) == 0 {
		return nil, fmt.Errorf("%w: %w", shipmentsapp.ErrInvalidInput, errNoOrders)
	}
	result := &shipmenttypes.BulkCreateResult{Results: make([]shipmenttypes.BulkItemResult, 0, len(orderIDs))}
	for _, orderID := range orderIDs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		shipment, err := o.service.Create(ctx, shipmenttypes.CreateShipmentInput{
			OrderID:        orderID,
			Type:           input.Type,
			WeightGrams:    input.WeightGrams,
			PickupLocation: input.PickupLocation,
			IdempotencyKey: shipmentsapp.BulkItemKey(input.IdempotencyKey, orderID),
		})
		if err != nil {
			result.Add(shipmenttypes.BulkItemResult{OrderID: orderID, Error: err.Error()})
			continue
		}
		result.Add(shipmenttypes.BulkItemResult{OrderID: orderID, ShipmentID: shipment.ID, Waybill: shipment.MasterWaybill()})
	}
	return result, nil
}

func cleanOrderIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func buildBulkWorkflowID(input shipmenttypes.BulkCreateInput, traceComponent string) string {
	if key := strings.TrimSpace(input.IdempotencyKey); key != "" {
		return fmt.Sprintf("shipment-bulk-idem-%s", hashIdempotencyKey(key))
	}
	return fmt.Sprintf("shipment-bulk-%d-%s", len(input.OrderIDs), traceComponent)
}

func hashIdempotencyKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:8])
}

func workflowTraceComponent(ctx context.Context) string {
	traceComponent := workflowTraceID(ctx)
	if traceComponent != "" {
		return traceComponent
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
