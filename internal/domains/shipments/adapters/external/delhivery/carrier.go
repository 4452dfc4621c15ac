package delhivery

import (
	"context"
	"errors"
	"fmt"

	delhiveryclient "github.com/Apurer/storefront-admin/internal/clients/http/delhivery"
	"github.com/Apurer/storefront-admin/internal/domains/shipments/ports"
)

var _ ports.Carrier = (*Carrier)(nil)

// Carrier implements the outbound carrier port on top of the Delhivery client.
type Carrier struct {
	client *delhiveryclient.Client
}

// NewCarrier wires a Delhivery HTTP client into a carrier adapter.
func NewCarrier(client *delhiveryclient.Client) *Carrier {
	return &Carrier{client: client}
}

func (c *Carrier) CreateShipment(ctx context.Context, request ports.CreateRequest) (*ports.CreateResult, error) {
	if err := c.ensureClient(); err != nil {
		return nil, err
	}
	response, err := c.client.CreateShipment(ctx, ToCreateRequest(request))
	if err != nil {
		return nil, wrap(err)
	}
	return FromCreateResponse(response, request.Waybills), nil
}

func (c *Carrier) FetchWaybills(ctx context.Context, count int) ([]string, error) {
	if err := c.ensureClient(); err != nil {
		return nil, err
	}
	waybills, err := c.client.FetchWaybills(ctx, count)
	if err != nil {
		return nil, wrap(err)
	}
	return waybills, nil
}

func (c *Carrier) EditShipment(ctx context.Context, request ports.EditRequest) error {
	if err := c.ensureClient(); err != nil {
		return err
	}
	if _, err := c.client.EditShipment(ctx, ToEditRequest(request)); err != nil {
		return wrap(err)
	}
	return nil
}

func (c *Carrier) CancelShipment(ctx context.Context, waybill string) error {
	if err := c.ensureClient(); err != nil {
		return err
	}
	if _, err := c.client.CancelShipment(ctx, waybill); err != nil {
		return wrap(err)
	}
	return nil
}

func (c *Carrier) Track(ctx context.Context, waybills []string) ([]ports.TrackResult, error) {
	if err := c.ensureClient(); err != nil {
		return nil, err
	}
	tracked, err := c.client.Track(ctx, waybills)
	if err != nil {
		return nil, wrap(err)
	}
	results := make([]ports.TrackResult, 0, len(tracked))
	for _, shipment := range tracked {
		results = append(results, FromTracked(shipment))
	}
	return results, nil
}

func (c *Carrier) PackingSlip(ctx context.Context, waybill string) (*ports.Label, error) {
	if err := c.ensureClient(); err != nil {
		return nil, err
	}
	slip, err := c.client.PackingSlip(ctx, waybill)
	if err != nil {
		return nil, wrap(err)
	}
	return &ports.Label{Waybill: waybill, URL: slip.PDFDownloadLink}, nil
}

func (c *Carrier) Serviceability(ctx context.Context, pincode string) (*ports.Serviceability, error) {
	if err := c.ensureClient(); err != nil {
		return nil, err
	}
	code, err := c.client.Serviceability(ctx, pincode)
	if err != nil {
		return nil, wrap(err)
	}
	return FromPostalCode(pincode, code), nil
}

func (c *Carrier) ensureClient() error {
	if c == nil || c.client == nil {
		return fmt.Errorf("%w: %w", ports.ErrCarrier, errors.New("delhivery carrier not configured"))
	}
	return nil
}

func wrap(err error) error {
	return fmt.Errorf("%w: %w", ports.ErrCarrier, err)
}
