package delhivery

import (
	"context"
	"errors"
	"fmt"

	delhiveryclient "github.com/Apurer/storefront-admin/internal/clients/http/delhivery"
	"github.com/Apurer/storefront-admin/internal/domains/warehouses/domain"
	"github.com/Apurer/storefront-admin/internal/domains/warehouses/ports"
)

var _ ports.Registrar = (*Registrar)(nil)

// Registrar registers pickup locations through the Delhivery warehouse endpoints.
type Registrar struct {
	client *delhiveryclient.Client
}

// NewRegistrar wires the Delhivery client into a registrar adapter.
func NewRegistrar(client *delhiveryclient.Client) *Registrar {
	return &Registrar{client: client}
}

func (r *Registrar) Register(ctx context.Context, warehouse *domain.Warehouse) error {
	if r == nil || r.client == nil {
		return fmt.Errorf("%w: %w", ports.ErrRegistration, errors.New("delhivery registrar not configured"))
	}
	if err := r.client.CreateWarehouse(ctx, ToPayload(warehouse)); err != nil {
		return fmt.Errorf("%w: %w", ports.ErrRegistration, err)
	}
	return nil
}

func (r *Registrar) Update(ctx context.Context, warehouse *domain.Warehouse) error {
	if r == nil || r.client == nil {
		return fmt.Errorf("%w: %w", ports.ErrRegistration, errors.New("delhivery registrar not configured"))
	}
	if err := r.client.EditWarehouse(ctx, ToPayload(warehouse)); err != nil {
		return fmt.Errorf("%w: %w", ports.ErrRegistration, err)
	}
	return nil
}

// ToPayload converts the local warehouse into the registration payload.
func ToPayload(w *domain.Warehouse) delhiveryclient.Warehouse {
	returnAddress, returnPin := w.ReturnTo()
	return delhiveryclient.Warehouse{
		Name:          w.Name,
		Email:         w.Email,
		Phone:         w.Phone,
		Address:       w.Address,
		City:          w.City,
		Country:       w.Country,
		Pin:           w.Pin,
		ReturnAddress: returnAddress,
		ReturnPin:     returnPin,
		ReturnCity:    w.City,
		ReturnState:   w.State,
		ReturnCountry: w.Country,
	}
}
