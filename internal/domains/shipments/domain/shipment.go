package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Type is the carrier shipment flavour.
type Type string

const (
	TypeForward     Type = "FORWARD"
	TypeReverse     Type = "REVERSE"
	TypeReplacement Type = "REPLACEMENT"
	// TypeMPS is a multi-package shipment: one master waybill plus child waybills.
	TypeMPS Type = "MPS"
)

// Status is the local lifecycle of a shipment record.
type Status string

const (
	StatusCreated    Status = "created"
	StatusDispatched Status = "dispatched"
	StatusInTransit  Status = "in_transit"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// PaymentMode is the carrier payment mode for the consignment.
type PaymentMode string

const (
	PaymentCOD     PaymentMode = "COD"
	PaymentPrepaid PaymentMode = "Prepaid"
	PaymentPickup  PaymentMode = "Pickup"
	PaymentREPL    PaymentMode = "REPL"
)

var (
	ErrInvalidType       = errors.New("shipment type is invalid")
	ErrActionUnavailable = errors.New("shipment action is not available")
	ErrMPSPackageCount   = errors.New("multi-package shipments need at least two packages")
	ErrNoWaybill         = errors.New("shipment has no waybill")
	ErrInvalidWeight     = errors.New("shipment weight must be greater than zero")
)

// ParseType validates a raw shipment type.
func ParseType(raw string) (Type, error) {
	switch t := Type(strings.ToUpper(strings.TrimSpace(raw))); t {
	case TypeForward, TypeReverse, TypeReplacement, TypeMPS:
		return t, nil
	case "":
		return TypeForward, nil
	default:
		return "", ErrInvalidType
	}
}

// Dimensions are package measurements in centimetres.
type Dimensions struct {
	LengthCm  float64
	BreadthCm float64
	HeightCm  float64
}

// Shipment is a carrier consignment attached to an order.
type Shipment struct {
	ID             string
	OrderID        string
	Type           Type
	Waybills       []string
	Status         Status
	CarrierStatus  string
	PickupLocation string
	PaymentMode    PaymentMode
	CODAmount      decimal.Decimal
	PackageCount   int
	WeightGrams    int
	Dimensions     Dimensions
	LabelURL       string
	LastScanAt     *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// MasterWaybill returns the first waybill, which identifies the shipment at the carrier.
func (s *Shipment) MasterWaybill() string {
	if len(s.Waybills) == 0 {
		return ""
	}
	return s.Waybills[0]
}

// Active reports whether the shipment still counts against creating another of its type.
func (s *Shipment) Active() bool {
	return s.Status != StatusCancelled
}

// HasWaybill reports whether waybill belongs to this shipment.
func (s *Shipment) HasWaybill(waybill string) bool {
	for _, wb := range s.Waybills {
		if wb == waybill {
			return true
		}
	}
	return false
}

// ApplyTracking records a carrier scan. Cancelled and delivered shipments never move back.
func (s *Shipment) ApplyTracking(carrierStatus string, scannedAt time.Time) bool {
	status, ok := NormalizeCarrierStatus(carrierStatus)
	if !ok {
		return false
	}
	if s.Status == StatusCancelled || s.Status == StatusDelivered {
		return false
	}
	if s.Status == status && s.CarrierStatus == carrierStatus {
		return false
	}
	s.Status = status
	s.CarrierStatus = carrierStatus
	if !scannedAt.IsZero() {
		stamp := scannedAt
		s.LastScanAt = &stamp
	}
	return true
}

// Cancel marks the shipment cancelled.
func (s *Shipment) Cancel(now time.Time) error {
	if s.Status == StatusCancelled || s.Status == StatusDelivered {
		return ErrActionUnavailable
	}
	s.Status = StatusCancelled
	s.UpdatedAt = now
	return nil
}

// Clone returns a deep copy.
func (s *Shipment) Clone() *Shipment {
	if s == nil {
		return nil
	}
	clone := *s
	clone.Waybills = append([]string(nil), s.Waybills...)
	if s.LastScanAt != nil {
		stamp := *s.LastScanAt
		clone.LastScanAt = &stamp
	}
	return &clone
}

// NormalizeCarrierStatus folds carrier scan statuses into the local lifecycle.
func NormalizeCarrierStatus(raw string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "manifested", "not picked", "open", "scheduled":
		return StatusCreated, true
	case "picked up", "dispatched", "out for delivery":
		return StatusDispatched, true
	case "in transit", "pending", "rto", "returned", "lost":
		return StatusInTransit, true
	case "delivered", "dto":
		return StatusDelivered, true
	case "cancelled", "canceled":
		return StatusCancelled, true
	default:
		return "", false
	}
}
