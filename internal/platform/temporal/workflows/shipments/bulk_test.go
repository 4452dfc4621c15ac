package shipments

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	shipmenttypes "github.com/Apurer/storefront-admin/internal/domains/shipments/application/types"
	shipmentactivities "github.com/Apurer/storefront-admin/internal/platform/temporal/activities/shipments"
)

func TestBulkShipmentWorkflow_CollectsPerOrderResults(t *testing.T) {
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()

	var mu sync.Mutex
	seenKeys := map[string]string{}
	env.RegisterActivityWithOptions(
		func(_ context.Context, input shipmenttypes.CreateShipmentInput) (*shipmenttypes.BulkItemResult, error) {
			mu.Lock()
			seenKeys[input.OrderID] = input.IdempotencyKey
			mu.Unlock()
			if input.OrderID == "bad" {
				return nil, temporal.NewNonRetryableApplicationError("order is pending", "ShipmentRejected", errors.New("order is pending"))
			}
			return &shipmenttypes.BulkItemResult{OrderID: input.OrderID, ShipmentID: "s-" + input.OrderID, Waybill: "WB-" + input.OrderID}, nil
		},
		activity.RegisterOptions{Name: shipmentactivities.CreateShipmentActivityName},
	)

	env.ExecuteWorkflow(BulkShipmentWorkflow, BulkShipmentWorkflowInput{
		Command: shipmenttypes.BulkCreateInput{OrderIDs: []string{"o1", "bad", "o2"}, WeightGrams: 500, IdempotencyKey: "batch-7"},
	})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var result shipmenttypes.BulkCreateResult
	require.NoError(t, env.GetWorkflowResult(&result))
	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Results, 3)
	assert.Equal(t, "WB-o1", result.Results[0].Waybill)
	assert.Equal(t, "bad", result.Results[1].OrderID)
	assert.Contains(t, result.Results[1].Error, "order is pending")
	assert.Equal(t, "o2", result.Results[2].OrderID)

	assert.Equal(t, "batch-7:o1", seenKeys["o1"])
	assert.Equal(t, "batch-7:o2", seenKeys["o2"])
}
