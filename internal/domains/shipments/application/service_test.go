package application

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ordersdomain "github.com/Apurer/storefront-admin/internal/domains/orders/domain"
	ordersports "github.com/Apurer/storefront-admin/internal/domains/orders/ports"
	"github.com/Apurer/storefront-admin/internal/domains/shipments/adapters/memory"
	shipmenttypes "github.com/Apurer/storefront-admin/internal/domains/shipments/application/types"
	"github.com/Apurer/storefront-admin/internal/domains/shipments/domain"
	"github.com/Apurer/storefront-admin/internal/domains/shipments/ports"
)

type stubOrders map[string]*ordersdomain.Order

func (s stubOrders) GetOrder(_ context.Context, id string) (*ordersdomain.Order, error) {
	order, ok := s[id]
	if !ok {
		return nil, ordersports.ErrNotFound
	}
	return order.Clone(), nil
}

type fakeCarrier struct {
	created   []ports.CreateRequest
	cancelled []string
	edits     []ports.EditRequest
	next      int
	err       error
	tracking  []ports.TrackResult
}

func (c *fakeCarrier) CreateShipment(_ context.Context, request ports.CreateRequest) (*ports.CreateResult, error) {
	if c.err != nil {
		return nil, c.err
	}
	c.created = append(c.created, request)
	if len(request.Waybills) > 0 {
		return &ports.CreateResult{Waybills: request.Waybills, Status: "Manifested"}, nil
	}
	c.next++
	return &ports.CreateResult{Waybills: []string{fmt.Sprintf("WB%03d", c.next)}, Status: "Manifested"}, nil
}

func (c *fakeCarrier) FetchWaybills(_ context.Context, count int) ([]string, error) {
	if c.err != nil {
		return nil, c.err
	}
	waybills := make([]string, 0, count)
	for i := 0; i < count; i++ {
		c.next++
		waybills = append(waybills, fmt.Sprintf("MPS%03d", c.next))
	}
	return waybills, nil
}

func (c *fakeCarrier) EditShipment(_ context.Context, request ports.EditRequest) error {
	c.edits = append(c.edits, request)
	return c.err
}

func (c *fakeCarrier) CancelShipment(_ context.Context, waybill string) error {
	if c.err != nil {
		return c.err
	}
	c.cancelled = append(c.cancelled, waybill)
	return nil
}

func (c *fakeCarrier) Track(_ context.Context, _ []string) ([]ports.TrackResult, error) {
	return c.tracking, c.err
}

func (c *fakeCarrier) PackingSlip(_ context.Context, waybill string) (*ports.Label, error) {
	if c.err != nil {
		return nil, c.err
	}
	return &ports.Label{Waybill: waybill, URL: "https://labels.example/" + waybill + ".pdf"}, nil
}

func (c *fakeCarrier) Serviceability(_ context.Context, pincode string) (*ports.Serviceability, error) {
	return &ports.Serviceability{Pincode: pincode, Serviceable: true, COD: true, Prepaid: true}, c.err
}

type fixture struct {
	service *Service
	repo    *memory.Repository
	carrier *fakeCarrier
	orders  stubOrders
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	orders := stubOrders{
		"o1": {
			ID:            "o1",
			CustomerName:  "Asha",
			CustomerEmail: "asha@example.com",
			CustomerPhone: "9999999999",
			Status:        ordersdomain.WebsiteConfirmed,
			PaymentMethod: ordersdomain.PaymentCOD,
			TotalAmount:   decimal.NewFromInt(1200),
			Address:       ordersdomain.Address{Line1: "12 MG Road", City: "Pune", State: "MH", Pincode: "411001"},
			Items: []ordersdomain.LineItem{
				{ProductID: "p1", Name: "Kurta", Quantity: 2, Size: "M", UnitPrice: decimal.NewFromInt(600), Status: ordersdomain.AdminConfirmed},
			},
		},
		"pending": {
			ID:      "pending",
			Status:  ordersdomain.WebsitePending,
			Address: ordersdomain.Address{Line1: "1 Main", City: "Pune", Pincode: "411001"},
		},
		"delivered": {
			ID:            "delivered",
			Status:        ordersdomain.WebsiteDelivered,
			PaymentMethod: ordersdomain.PaymentPrepaid,
			IsPaid:        true,
			Address:       ordersdomain.Address{Line1: "1 Main", City: "Pune", Pincode: "411001"},
		},
	}
	repo := memory.NewRepository()
	carrier := &fakeCarrier{}
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	service := NewService(repo, orders, carrier,
		WithIdempotencyStore(memory.NewIdempotencyStore()),
		WithPickupLocation("Main Warehouse"),
		WithClock(func() time.Time { return now }),
	)
	return &fixture{service: service, repo: repo, carrier: carrier, orders: orders}
}

func TestCreate_ForwardUsesOrderDetails(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	shipment, err := fx.service.Create(ctx, shipmenttypes.CreateShipmentInput{OrderID: "o1", WeightGrams: 500})
	require.NoError(t, err)
	assert.Equal(t, domain.TypeForward, shipment.Type)
	assert.Equal(t, "WB001", shipment.MasterWaybill())
	assert.Equal(t, domain.StatusCreated, shipment.Status)
	assert.Equal(t, "Main Warehouse", shipment.PickupLocation)

	require.Len(t, fx.carrier.created, 1)
	request := fx.carrier.created[0]
	assert.Equal(t, domain.PaymentCOD, request.PaymentMode)
	assert.True(t, decimal.NewFromInt(1200).Equal(request.CODAmount))
	assert.Equal(t, "Asha", request.Consignee.Name)
	assert.Equal(t, "411001", request.Consignee.Pincode)
	assert.Equal(t, 2, request.Quantity)

	listing, err := fx.service.ListForOrder(ctx, "o1")
	require.NoError(t, err)
	require.Len(t, listing.Shipments, 1)
	assert.Empty(t, listing.Actions.Create)
	assert.True(t, listing.Actions.Allows("WB001", domain.ActionEdit))
}

func TestCreate_SecondForwardIsUnavailable(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	_, err := fx.service.Create(ctx, shipmenttypes.CreateShipmentInput{OrderID: "o1", WeightGrams: 500})
	require.NoError(t, err)
	_, err = fx.service.Create(ctx, shipmenttypes.CreateShipmentInput{OrderID: "o1", Type: "MPS", PackageCount: 2, WeightGrams: 500})
	require.ErrorIs(t, err, ErrConflict)
	require.ErrorIs(t, err, domain.ErrActionUnavailable)
}

func TestCreate_MPSFetchesWaybillsFirst(t *testing.T) {
	fx := newFixture(t)

	shipment, err := fx.service.Create(context.Background(), shipmenttypes.CreateShipmentInput{OrderID: "o1", Type: "mps", PackageCount: 3, WeightGrams: 1500})
	require.NoError(t, err)
	assert.Equal(t, []string{"MPS001", "MPS002", "MPS003"}, shipment.Waybills)
	assert.Equal(t, 3, fx.carrier.created[0].PackageCount)

	_, err = fx.service.Create(context.Background(), shipmenttypes.CreateShipmentInput{OrderID: "o1", Type: "MPS", PackageCount: 1, WeightGrams: 500})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreate_ReverseOnlyAfterDelivery(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	_, err := fx.service.Create(ctx, shipmenttypes.CreateShipmentInput{OrderID: "o1", Type: "REVERSE", WeightGrams: 500})
	require.ErrorIs(t, err, domain.ErrActionUnavailable)

	shipment, err := fx.service.Create(ctx, shipmenttypes.CreateShipmentInput{OrderID: "delivered", Type: "REVERSE", WeightGrams: 500})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPickup, shipment.PaymentMode)

	_, err = fx.service.Create(ctx, shipmenttypes.CreateShipmentInput{OrderID: "pending", WeightGrams: 500})
	require.ErrorIs(t, err, domain.ErrActionUnavailable)
}

func TestCreate_IdempotentReplay(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	input := shipmenttypes.CreateShipmentInput{OrderID: "o1", WeightGrams: 500, IdempotencyKey: "key-1"}

	first, err := fx.service.Create(ctx, input)
	require.NoError(t, err)
	second, err := fx.service.Create(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, fx.carrier.created, 1)

	input.WeightGrams = 900
	_, err = fx.service.Create(ctx, input)
	require.ErrorIs(t, err, ErrConflict)
	require.ErrorIs(t, err, ports.ErrIdempotencyConflict)
}

func TestCreate_Errors(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	_, err := fx.service.Create(ctx, shipmenttypes.CreateShipmentInput{WeightGrams: 500})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = fx.service.Create(ctx, shipmenttypes.CreateShipmentInput{OrderID: "o1", Type: "SIDEWAYS", WeightGrams: 500})
	require.ErrorIs(t, err, domain.ErrInvalidType)

	_, err = fx.service.Create(ctx, shipmenttypes.CreateShipmentInput{OrderID: "o1"})
	require.ErrorIs(t, err, domain.ErrInvalidWeight)

	_, err = fx.service.Create(ctx, shipmenttypes.CreateShipmentInput{OrderID: "missing", WeightGrams: 500})
	require.ErrorIs(t, err, ordersports.ErrNotFound)

	fx.orders["o1"].Address.Pincode = ""
	_, err = fx.service.Create(ctx, shipmenttypes.CreateShipmentInput{OrderID: "o1", WeightGrams: 500})
	require.ErrorIs(t, err, ErrInvalidInput)
	fx.orders["o1"].Address.Pincode = "411001"

	fx.carrier.err = fmt.Errorf("%w: status 503", ports.ErrCarrier)
	_, err = fx.service.Create(ctx, shipmenttypes.CreateShipmentInput{OrderID: "o1", WeightGrams: 500})
	require.ErrorIs(t, err, ports.ErrCarrier)

	shipments, err := fx.repo.ListByOrder(ctx, "o1")
	require.NoError(t, err)
	assert.Empty(t, shipments)
}

func TestCancel_ReopensForwardCreation(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	shipment, err := fx.service.Create(ctx, shipmenttypes.CreateShipmentInput{OrderID: "o1", WeightGrams: 500})
	require.NoError(t, err)

	cancelled, err := fx.service.Cancel(ctx, shipment.MasterWaybill())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)
	assert.Equal(t, []string{"WB001"}, fx.carrier.cancelled)

	_, err = fx.service.Cancel(ctx, shipment.MasterWaybill())
	require.ErrorIs(t, err, ErrConflict)

	listing, err := fx.service.ListForOrder(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, []domain.Type{domain.TypeForward, domain.TypeMPS}, listing.Actions.Create)
}

func TestEdit_OnlyBeforePickup(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	shipment, err := fx.service.Create(ctx, shipmenttypes.CreateShipmentInput{OrderID: "o1", WeightGrams: 500})
	require.NoError(t, err)

	edited, err := fx.service.Edit(ctx, shipmenttypes.EditShipmentInput{Waybill: "WB001", WeightGrams: 750, PaymentMode: "prepaid"})
	require.NoError(t, err)
	assert.Equal(t, 750, edited.WeightGrams)
	assert.Equal(t, domain.PaymentPrepaid, edited.PaymentMode)
	assert.True(t, edited.CODAmount.IsZero())
	require.Len(t, fx.carrier.edits, 1)

	_, err = fx.service.Edit(ctx, shipmenttypes.EditShipmentInput{Waybill: "WB001", PaymentMode: "barter"})
	require.ErrorIs(t, err, ErrInvalidInput)

	shipment.Status = domain.StatusDispatched
	_, err = fx.repo.Save(ctx, shipment)
	require.NoError(t, err)
	_, err = fx.service.Edit(ctx, shipmenttypes.EditShipmentInput{Waybill: "WB001", WeightGrams: 800})
	require.ErrorIs(t, err, domain.ErrActionUnavailable)
}

func TestTrack_RefreshesShipmentOnly(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	_, err := fx.service.Create(ctx, shipmenttypes.CreateShipmentInput{OrderID: "o1", WeightGrams: 500})
	require.NoError(t, err)

	scanned := time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC)
	fx.carrier.tracking = []ports.TrackResult{
		{Waybill: "WB001", Status: "In Transit", ScannedAt: scanned},
		{Waybill: "UNKNOWN", Status: "Delivered"},
	}
	results, err := fx.service.Track(ctx, []string{" WB001 ", "WB001", "UNKNOWN", ""})
	require.NoError(t, err)
	assert.Len(t, results, 2)

	stored, err := fx.repo.GetByWaybill(ctx, "WB001")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInTransit, stored.Status)
	assert.Equal(t, "In Transit", stored.CarrierStatus)
	require.NotNil(t, stored.LastScanAt)
	assert.Equal(t, ordersdomain.WebsiteConfirmed, fx.orders["o1"].Status)

	_, err = fx.service.Track(ctx, []string{" "})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestLabel_StoresURL(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	_, err := fx.service.Create(ctx, shipmenttypes.CreateShipmentInput{OrderID: "o1", WeightGrams: 500})
	require.NoError(t, err)

	label, err := fx.service.Label(ctx, "WB001")
	require.NoError(t, err)
	assert.Equal(t, "https://labels.example/WB001.pdf", label.URL)

	stored, err := fx.repo.GetByWaybill(ctx, "WB001")
	require.NoError(t, err)
	assert.Equal(t, label.URL, stored.LabelURL)

	_, err = fx.service.Label(ctx, "missing")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestServiceability_ValidatesPincode(t *testing.T) {
	fx := newFixture(t)
	result, err := fx.service.Serviceability(context.Background(), "411001")
	require.NoError(t, err)
	assert.True(t, result.Serviceable)

	_, err = fx.service.Serviceability(context.Background(), "4110")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestFingerprintIgnoresKeyAndCase(t *testing.T) {
	a, err := FingerprintCreateShipment(shipmenttypes.CreateShipmentInput{OrderID: "o1", Type: "forward", WeightGrams: 500, IdempotencyKey: "a"})
	require.NoError(t, err)
	b, err := FingerprintCreateShipment(shipmenttypes.CreateShipmentInput{OrderID: " o1", Type: "FORWARD", WeightGrams: 500, IdempotencyKey: "b"})
	require.NoError(t, err)
	assert.Equal(t, a, b)

	assert.Equal(t, "bulk:o1", BulkItemKey("bulk", "o1"))
	assert.Empty(t, BulkItemKey("", "o1"))
}
