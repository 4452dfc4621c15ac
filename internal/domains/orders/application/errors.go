package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/storefront-admin/internal/domains/orders/domain"
	"github.com/Apurer/storefront-admin/internal/domains/orders/ports"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrConflict signals the request is valid but clashes with the current order state.
	ErrConflict = errors.New("order state conflict")

	errMissingOrderID   = errors.New("order id is required")
	errMissingProductID = errors.New("product id is required")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrUnknownStatus) ||
		errors.Is(err, domain.ErrNoLineItems) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrMissingProductID) ||
		errors.Is(err, domain.ErrNegativePrice) ||
		errors.Is(err, domain.ErrMissingCustomer) ||
		errors.Is(err, domain.ErrInvalidPayment) ||
		errors.Is(err, domain.ErrIncompleteAddress) ||
		errors.Is(err, errMissingOrderID) ||
		errors.Is(err, errMissingProductID) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if errors.Is(err, domain.ErrInvalidTransition) || errors.Is(err, ports.ErrConcurrentUpdate) {
		return fmt.Errorf("%w: %w", ErrConflict, err)
	}
	return err
}
