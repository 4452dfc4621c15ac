package mapper

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	shipmenttypes "github.com/Apurer/storefront-admin/internal/domains/shipments/application/types"
	"github.com/Apurer/storefront-admin/internal/domains/shipments/domain"
	"github.com/Apurer/storefront-admin/internal/domains/shipments/ports"
)

// Dimensions is the wire shape of package measurements.
type Dimensions struct {
	Length  float64 `json:"length"`
	Breadth float64 `json:"breadth"`
	Height  float64 `json:"height"`
}

// Shipment is the dashboard representation of a consignment.
type Shipment struct {
	ID             string          `json:"id"`
	OrderID        string          `json:"orderId"`
	Type           string          `json:"type"`
	Waybill        string          `json:"waybill"`
	Waybills       []string        `json:"waybills"`
	Status         string          `json:"status"`
	CarrierStatus  string          `json:"carrierStatus,omitempty"`
	PickupLocation string          `json:"pickupLocation,omitempty"`
	PaymentMode    string          `json:"paymentMode,omitempty"`
	CODAmount      decimal.Decimal `json:"codAmount"`
	PackageCount   int             `json:"packageCount"`
	WeightGrams    int             `json:"weight"`
	Dimensions     Dimensions      `json:"dimensions"`
	LabelURL       string          `json:"labelUrl,omitempty"`
	LastScanAt     *time.Time      `json:"lastScanAt,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// OrderShipments is the shipment panel of an order.
type OrderShipments struct {
	OrderID          string           `json:"orderId"`
	OrderStatus      string           `json:"orderStatus"`
	Shipments        []Shipment       `json:"shipments"`
	AvailableActions domain.ActionSet `json:"availableActions"`
}

// CreateShipment is the create payload.
type CreateShipment struct {
	OrderID        string     `json:"orderId" binding:"required"`
	Type           string     `json:"type"`
	PackageCount   int        `json:"packageCount"`
	Weight         int        `json:"weight" binding:"required,gt=0"`
	Dimensions     Dimensions `json:"dimensions"`
	PickupLocation string     `json:"pickupLocation"`
}

// WaybillRequest targets a single consignment.
type WaybillRequest struct {
	Waybill string `json:"waybill" binding:"required"`
}

// EditShipment is the edit payload.
type EditShipment struct {
	Waybill     string           `json:"waybill" binding:"required"`
	Name        string           `json:"name"`
	Phone       string           `json:"phone"`
	Address     string           `json:"address"`
	Weight      int              `json:"weight"`
	PaymentMode string           `json:"paymentMode"`
	CODAmount   *decimal.Decimal `json:"codAmount"`
}

// BulkCreate is the bulk payload.
type BulkCreate struct {
	OrderIDs       []string `json:"orderIds" binding:"required,min=1"`
	Type           string   `json:"type"`
	Weight         int      `json:"weight" binding:"required,gt=0"`
	PickupLocation string   `json:"pickupLocation"`
}

// Scan is one tracking event.
type Scan struct {
	Status    string    `json:"status"`
	Location  string    `json:"location,omitempty"`
	Remarks   string    `json:"remarks,omitempty"`
	ScannedAt time.Time `json:"scannedAt"`
}

// Tracking is the latest carrier view of a waybill.
type Tracking struct {
	Waybill   string    `json:"waybill"`
	Status    string    `json:"status"`
	Location  string    `json:"location,omitempty"`
	ScannedAt time.Time `json:"scannedAt"`
	Scans     []Scan    `json:"scans"`
}

// Label is the packing slip reference.
type Label struct {
	Waybill string `json:"waybill"`
	URL     string `json:"url"`
}

// Serviceability is the pincode lookup result.
type Serviceability struct {
	Pincode     string `json:"pincode"`
	Serviceable bool   `json:"serviceable"`
	COD         bool   `json:"cod"`
	Prepaid     bool   `json:"prepaid"`
	Pickup      bool   `json:"pickup"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
}

// ToCreateShipmentInput converts the payload; the key comes from the Idempotency-Key header.
func ToCreateShipmentInput(payload CreateShipment, idempotencyKey string) shipmenttypes.CreateShipmentInput {
	return shipmenttypes.CreateShipmentInput{
		OrderID:        payload.OrderID,
		Type:           payload.Type,
		PackageCount:   payload.PackageCount,
		WeightGrams:    payload.Weight,
		Dimensions:     domain.Dimensions{LengthCm: payload.Dimensions.Length, BreadthCm: payload.Dimensions.Breadth, HeightCm: payload.Dimensions.Height},
		PickupLocation: payload.PickupLocation,
		IdempotencyKey: strings.TrimSpace(idempotencyKey),
	}
}

func ToEditShipmentInput(payload EditShipment) shipmenttypes.EditShipmentInput {
	return shipmenttypes.EditShipmentInput{
		Waybill:     payload.Waybill,
		Name:        payload.Name,
		Phone:       payload.Phone,
		Address:     payload.Address,
		WeightGrams: payload.Weight,
		PaymentMode: payload.PaymentMode,
		CODAmount:   payload.CODAmount,
	}
}

func ToBulkCreateInput(payload BulkCreate, idempotencyKey string) shipmenttypes.BulkCreateInput {
	return shipmenttypes.BulkCreateInput{
		OrderIDs:       payload.OrderIDs,
		Type:           payload.Type,
		WeightGrams:    payload.Weight,
		PickupLocation: payload.PickupLocation,
		IdempotencyKey: strings.TrimSpace(idempotencyKey),
	}
}

// SplitWaybills parses a comma separated waybill list.
func SplitWaybills(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func FromDomainShipment(s *domain.Shipment) Shipment {
	if s == nil {
		return Shipment{}
	}
	return Shipment{
		ID:             s.ID,
		OrderID:        s.OrderID,
		Type:           string(s.Type),
		Waybill:        s.MasterWaybill(),
		Waybills:       append([]string{}, s.Waybills...),
		Status:         string(s.Status),
		CarrierStatus:  s.CarrierStatus,
		PickupLocation: s.PickupLocation,
		PaymentMode:    string(s.PaymentMode),
		CODAmount:      s.CODAmount,
		PackageCount:   s.PackageCount,
		WeightGrams:    s.WeightGrams,
		Dimensions:     Dimensions{Length: s.Dimensions.LengthCm, Breadth: s.Dimensions.BreadthCm, Height: s.Dimensions.HeightCm},
		LabelURL:       s.LabelURL,
		LastScanAt:     s.LastScanAt,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func FromOrderShipments(view *shipmenttypes.OrderShipments) OrderShipments {
	shipments := make([]Shipment, 0, len(view.Shipments))
	for _, s := range view.Shipments {
		shipments = append(shipments, FromDomainShipment(s))
	}
	return OrderShipments{
		OrderID:          view.OrderID,
		OrderStatus:      string(view.OrderStatus),
		Shipments:        shipments,
		AvailableActions: view.Actions,
	}
}

func FromTrackResults(results []ports.TrackResult) []Tracking {
	out := make([]Tracking, 0, len(results))
	for _, r := range results {
		scans := make([]Scan, 0, len(r.Scans))
		for _, scan := range r.Scans {
			scans = append(scans, Scan{Status: scan.Status, Location: scan.Location, Remarks: scan.Remarks, ScannedAt: scan.ScannedAt})
		}
		out = append(out, Tracking{Waybill: r.Waybill, Status: r.Status, Location: r.Location, ScannedAt: r.ScannedAt, Scans: scans})
	}
	return out
}

func FromLabel(label *ports.Label) Label {
	return Label{Waybill: label.Waybill, URL: label.URL}
}

func FromServiceability(s *ports.Serviceability) Serviceability {
	return Serviceability(*s)
}
