package types

import (
	"github.com/shopspring/decimal"

	ordersdomain "github.com/Apurer/storefront-admin/internal/domains/orders/domain"
	"github.com/Apurer/storefront-admin/internal/domains/shipments/domain"
)

// CreateShipmentInput requests a new consignment for an order.
type CreateShipmentInput struct {
	OrderID        string
	Type           string
	PackageCount   int
	WeightGrams    int
	Dimensions     domain.Dimensions
	PickupLocation string
	IdempotencyKey string
}

// EditShipmentInput changes a manifested consignment. Zero values are left untouched.
type EditShipmentInput struct {
	Waybill     string
	Name        string
	Phone       string
	Address     string
	WeightGrams int
	PaymentMode string
	CODAmount   *decimal.Decimal
}

// OrderShipments is the shipment panel of an order.
type OrderShipments struct {
	OrderID     string
	OrderStatus ordersdomain.WebsiteStatus
	Shipments   []*domain.Shipment
	Actions     domain.ActionSet
}

// BulkCreateInput manifests one shipment per order.
type BulkCreateInput struct {
	OrderIDs       []string
	Type           string
	WeightGrams    int
	PickupLocation string
	IdempotencyKey string
}

// BulkItemResult is the outcome for one order of a bulk request.
type BulkItemResult struct {
	OrderID    string `json:"orderId"`
	ShipmentID string `json:"shipmentId,omitempty"`
	Waybill    string `json:"waybill,omitempty"`
	Error      string `json:"error,omitempty"`
}

// BulkCreateResult aggregates per-order outcomes.
type BulkCreateResult struct {
	Results   []BulkItemResult `json:"results"`
	Succeeded int              `json:"succeeded"`
	Failed    int              `json:"failed"`
}

// Add records one outcome and updates the counters.
func (r *BulkCreateResult) Add(item BulkItemResult) {
	r.Results = append(r.Results, item)
	if item.Error != "" {
		r.Failed++
		return
	}
	r.Succeeded++
}
