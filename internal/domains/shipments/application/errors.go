package application

import (
	"errors"
	"fmt"

	ordersdomain "github.com/Apurer/storefront-admin/internal/domains/orders/domain"
	"github.com/Apurer/storefront-admin/internal/domains/shipments/domain"
	"github.com/Apurer/storefront-admin/internal/domains/shipments/ports"
)

var (
	// ErrInvalidInput signals a malformed shipment request.
	ErrInvalidInput = errors.New("invalid shipment input")
	// ErrConflict signals the request clashes with the order or shipment state.
	ErrConflict = errors.New("shipment state conflict")

	errMissingOrderID = errors.New("order id is required")
	errMissingWaybill = errors.New("waybill is required")
	errInvalidPincode = errors.New("pincode must be six digits")

	errInvalidPaymentMode = errors.New("payment mode must be COD or Prepaid")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidType) ||
		errors.Is(err, domain.ErrMPSPackageCount) ||
		errors.Is(err, domain.ErrInvalidWeight) ||
		errors.Is(err, ordersdomain.ErrIncompleteAddress) ||
		errors.Is(err, errMissingOrderID) ||
		errors.Is(err, errMissingWaybill) ||
		errors.Is(err, errInvalidPincode) ||
		errors.Is(err, errInvalidPaymentMode) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if errors.Is(err, domain.ErrActionUnavailable) || errors.Is(err, ports.ErrIdempotencyConflict) {
		return fmt.Errorf("%w: %w", ErrConflict, err)
	}
	return err
}
