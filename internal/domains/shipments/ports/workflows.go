package ports

import (
	"context"

	shipmenttypes "github.com/Apurer/storefront-admin/internal/domains/shipments/application/types"
)

// WorkflowOrchestrator exposes durable workflow operations required by the shipments bounded context.
type WorkflowOrchestrator interface {
	BulkCreate(ctx context.Context, input shipmenttypes.BulkCreateInput) (*shipmenttypes.BulkCreateResult, error)
}
