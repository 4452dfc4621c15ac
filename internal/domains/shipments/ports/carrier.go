package ports

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/storefront-admin/internal/domains/shipments/domain"
)

// ErrCarrier wraps any failure reported by, or while reaching, the carrier.
var ErrCarrier = errors.New("carrier request failed")

// Consignee is the receiving party of a consignment.
type Consignee struct {
	Name    string
	Phone   string
	Address string
	City    string
	State   string
	Pincode string
	Country string
}

// CreateRequest is everything the carrier needs to manifest a consignment.
type CreateRequest struct {
	OrderID        string
	Type           domain.Type
	Consignee      Consignee
	PaymentMode    domain.PaymentMode
	CODAmount      decimal.Decimal
	TotalAmount    decimal.Decimal
	ProductsDesc   string
	Quantity       int
	WeightGrams    int
	Dimensions     domain.Dimensions
	PickupLocation string
	SellerName     string
	PackageCount   int
	// Waybills are pre-allocated for multi-package shipments; the first is the master.
	Waybills []string
}

// CreateResult is the manifest outcome.
type CreateResult struct {
	Waybills []string
	Status   string
	Remarks  string
}

// EditRequest updates a manifested, not yet picked consignment.
type EditRequest struct {
	Waybill     string
	Name        string
	Phone       string
	Address     string
	WeightGrams int
	PaymentMode domain.PaymentMode
	CODAmount   *decimal.Decimal
}

// Scan is one carrier tracking event.
type Scan struct {
	Status    string
	Location  string
	Remarks   string
	ScannedAt time.Time
}

// TrackResult is the latest carrier view of one waybill.
type TrackResult struct {
	Waybill   string
	Status    string
	Location  string
	ScannedAt time.Time
	Scans     []Scan
}

// Label is a printable packing slip.
type Label struct {
	Waybill string
	URL     string
}

// Serviceability describes what the carrier offers for a pincode.
type Serviceability struct {
	Pincode     string
	Serviceable bool
	COD         bool
	Prepaid     bool
	Pickup      bool
	City        string
	State       string
}

// Carrier is the outbound shipping provider.
type Carrier interface {
	CreateShipment(ctx context.Context, request CreateRequest) (*CreateResult, error)
	FetchWaybills(ctx context.Context, count int) ([]string, error)
	EditShipment(ctx context.Context, request EditRequest) error
	CancelShipment(ctx context.Context, waybill string) error
	Track(ctx context.Context, waybills []string) ([]TrackResult, error)
	PackingSlip(ctx context.Context, waybill string) (*Label, error)
	Serviceability(ctx context.Context, pincode string) (*Serviceability, error)
}
