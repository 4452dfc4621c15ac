package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogmemory "github.com/Apurer/storefront-admin/internal/domains/catalog/adapters/memory"
	catalogdomain "github.com/Apurer/storefront-admin/internal/domains/catalog/domain"
	ordersmemory "github.com/Apurer/storefront-admin/internal/domains/orders/adapters/memory"
	orderstypes "github.com/Apurer/storefront-admin/internal/domains/orders/application/types"
	"github.com/Apurer/storefront-admin/internal/domains/orders/domain"
	"github.com/Apurer/storefront-admin/internal/domains/orders/ports"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []domain.Notification
	err  error
}

func (n *recordingNotifier) Send(_ context.Context, notification domain.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification)
	return n.err
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event domain.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

type fixture struct {
	svc       *Service
	orders    *ordersmemory.Repository
	catalog   *catalogmemory.Repository
	notifier  *recordingNotifier
	publisher *recordingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	catalog := catalogmemory.NewRepository()
	orders := ordersmemory.NewRepository(catalog)
	notifier := &recordingNotifier{}
	publisher := &recordingPublisher{}
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := NewService(orders,
		WithNotifier(notifier),
		WithPublisher(publisher),
		WithComposer(NewComposer("Acme")),
		WithClock(func() time.Time { return now }),
	)
	return &fixture{svc: svc, orders: orders, catalog: catalog, notifier: notifier, publisher: publisher}
}

func (f *fixture) seedProduct(t *testing.T, id string, variants ...catalogdomain.Variant) {
	t.Helper()
	_, err := f.catalog.Save(context.Background(), &catalogdomain.Product{ID: id, Name: id, Variants: variants})
	require.NoError(t, err)
}

func (f *fixture) seedOrder(t *testing.T, items ...orderstypes.LineItemInput) *domain.Order {
	t.Helper()
	order, err := f.svc.CreateOrder(context.Background(), orderstypes.CreateOrderInput{
		CustomerName:    "Asha",
		CustomerEmail:   "asha@example.com",
		PaymentMethod:   "prepaid",
		ShippingAddress: &domain.Address{Line1: "1 Residency Rd", City: "Bengaluru", Pincode: "560025"},
		Products:        items,
		OrderItems:      items,
	})
	require.NoError(t, err)
	return order
}

func TestCreateOrder_MergesLegacyArraysAndDefaults(t *testing.T) {
	f := newFixture(t)
	order, err := f.svc.CreateOrder(context.Background(), orderstypes.CreateOrderInput{
		CustomerEmail:   "asha@example.com",
		DeliveryAddress: &domain.Address{Line1: "2 Park St", City: "Kolkata", Pincode: "700016"},
		ShippingAddress: &domain.Address{Line1: "1 Residency Rd", City: "Bengaluru", Pincode: "560025"},
		Products:        []orderstypes.LineItemInput{{ProductID: "A", Size: "M", Quantity: 2, UnitPrice: decimal.NewFromInt(300)}},
		OrderItems:      []orderstypes.LineItemInput{{ProductID: "B", Size: "L", Quantity: 1, UnitPrice: decimal.NewFromInt(400)}},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, domain.WebsitePending, order.Status)
	assert.Equal(t, domain.PaymentCOD, order.PaymentMethod)
	assert.True(t, order.IsNew)
	assert.Equal(t, "Kolkata", order.Address.City)
	require.Len(t, order.Items, 2)
	for _, item := range order.Items {
		assert.Equal(t, domain.AdminNotProcessed, item.Status)
	}
	assert.True(t, decimal.NewFromInt(1000).Equal(order.TotalAmount))
}

func TestCreateOrder_InvalidInput(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.CreateOrder(context.Background(), orderstypes.CreateOrderInput{CustomerEmail: "x@example.com"})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.CreateOrder(context.Background(), orderstypes.CreateOrderInput{
		CustomerEmail: "x@example.com",
		Status:        "teleported",
		Products:      []orderstypes.LineItemInput{{ProductID: "A", Quantity: 1}},
	})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrUnknownStatus)
}

func TestUpdateItemStatus_ConfirmedSyncsBothViews(t *testing.T) {
	f := newFixture(t)
	order := f.seedOrder(t,
		orderstypes.LineItemInput{ProductID: "A", Size: "M", Quantity: 1, Status: "Processing"},
		orderstypes.LineItemInput{ProductID: "B", Size: "L", Quantity: 1, Status: "Processing"},
	)

	updated, err := f.svc.UpdateItemStatus(context.Background(), orderstypes.UpdateItemStatusInput{
		OrderID:     order.ID,
		ProductID:   "A",
		Status:      "Confirmed",
		TrackingID:  "TRK1",
		TrackingURL: "https://track.example/TRK1",
	})
	require.NoError(t, err)

	for _, view := range [][]domain.LineItem{updated.Products(), updated.OrderItems()} {
		require.Len(t, view, 2)
		assert.Equal(t, domain.AdminConfirmed, view[0].Status)
		assert.Equal(t, "TRK1", view[0].TrackingID)
		assert.Equal(t, domain.AdminProcessing, view[1].Status)
		assert.Empty(t, view[1].TrackingID)
	}

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, "asha@example.com", f.notifier.sent[0].To)
	assert.Contains(t, f.notifier.sent[0].Subject, "confirmed")
	assert.Contains(t, f.notifier.sent[0].Body, "TRK1")

	require.Len(t, f.publisher.events, 1)
	event, ok := f.publisher.events[0].(domain.ItemStatusChanged)
	require.True(t, ok)
	assert.Equal(t, domain.AdminProcessing, event.FromStatus)
	assert.Equal(t, domain.AdminConfirmed, event.ToStatus)
}

func TestUpdateItemStatus_TrackingOnlyOnConfirmed(t *testing.T) {
	f := newFixture(t)
	order := f.seedOrder(t, orderstypes.LineItemInput{ProductID: "A", Quantity: 1, Status: "Processing"})

	updated, err := f.svc.UpdateItemStatus(context.Background(), orderstypes.UpdateItemStatusInput{
		OrderID:    order.ID,
		ProductID:  "A",
		Status:     "Dispatched",
		TrackingID: "IGNORED",
	})
	require.NoError(t, err)
	assert.Empty(t, updated.Items[0].TrackingID)
	assert.Empty(t, updated.Items[0].TrackingURL)

	require.Len(t, f.notifier.sent, 1)
	assert.Contains(t, f.notifier.sent[0].Subject, "dispatched")
}

func TestUpdateItemStatus_CompletedDecrementsStockOnce(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "A", catalogdomain.Variant{Size: "M", Stock: 10})
	order := f.seedOrder(t, orderstypes.LineItemInput{ProductID: "A", Size: "M", Quantity: 3, Status: "Processing"})

	input := orderstypes.UpdateItemStatusInput{OrderID: order.ID, ProductID: "A", Status: "Completed", SuppressEmail: true}
	first, err := f.svc.UpdateItemStatus(context.Background(), input)
	require.NoError(t, err)
	require.NotNil(t, first.Items[0].ProductCompletedAt)

	product, err := f.catalog.GetByID(context.Background(), "A")
	require.NoError(t, err)
	assert.Equal(t, 7, product.Variants[0].Stock)
	assert.Equal(t, 3, product.Variants[0].Sold)

	second, err := f.svc.UpdateItemStatus(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, first.Items, second.Items)

	product, err = f.catalog.GetByID(context.Background(), "A")
	require.NoError(t, err)
	assert.Equal(t, 7, product.Variants[0].Stock)
	assert.Equal(t, 3, product.Variants[0].Sold)

	assert.Empty(t, f.notifier.sent)
	assert.Len(t, f.publisher.events, 1)
}

func TestUpdateItemStatus_UnknownVariantDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "A", catalogdomain.Variant{Size: "S", Stock: 5})
	order := f.seedOrder(t, orderstypes.LineItemInput{ProductID: "A", Size: "XXL", Quantity: 1, Status: "Dispatched"})

	updated, err := f.svc.UpdateItemStatus(context.Background(), orderstypes.UpdateItemStatusInput{
		OrderID: order.ID, ProductID: "A", Status: "Completed",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.AdminCompleted, updated.Items[0].Status)

	product, err := f.catalog.GetByID(context.Background(), "A")
	require.NoError(t, err)
	assert.Equal(t, 5, product.Variants[0].Stock)
}

func TestUpdateItemStatus_RejectsInvalidTransition(t *testing.T) {
	f := newFixture(t)
	order := f.seedOrder(t, orderstypes.LineItemInput{ProductID: "A", Quantity: 1, Status: "Cancelled"})

	_, err := f.svc.UpdateItemStatus(context.Background(), orderstypes.UpdateItemStatusInput{
		OrderID: order.ID, ProductID: "A", Status: "Processing",
	})
	require.ErrorIs(t, err, ErrConflict)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	stored, err := f.orders.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AdminCancelled, stored.Items[0].Status)
	assert.Empty(t, f.notifier.sent)
	assert.Empty(t, f.publisher.events)
}

func TestUpdateItemStatus_Errors(t *testing.T) {
	f := newFixture(t)
	order := f.seedOrder(t, orderstypes.LineItemInput{ProductID: "A", Quantity: 1})

	_, err := f.svc.UpdateItemStatus(context.Background(), orderstypes.UpdateItemStatusInput{OrderID: "missing", ProductID: "A", Status: "Processing"})
	require.ErrorIs(t, err, ports.ErrNotFound)

	_, err = f.svc.UpdateItemStatus(context.Background(), orderstypes.UpdateItemStatusInput{OrderID: order.ID, ProductID: "Z", Status: "Processing"})
	require.ErrorIs(t, err, domain.ErrLineItemNotFound)

	_, err = f.svc.UpdateItemStatus(context.Background(), orderstypes.UpdateItemStatusInput{OrderID: order.ID, ProductID: "A", Status: "bogus"})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.UpdateItemStatus(context.Background(), orderstypes.UpdateItemStatusInput{ProductID: "A", Status: "Processing"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateItemStatus_NotificationFailureIsSwallowed(t *testing.T) {
	f := newFixture(t)
	f.notifier.err = errors.New("smtp down")
	f.publisher.err = errors.New("broker down")
	order := f.seedOrder(t, orderstypes.LineItemInput{ProductID: "A", Quantity: 1})

	updated, err := f.svc.UpdateItemStatus(context.Background(), orderstypes.UpdateItemStatusInput{
		OrderID: order.ID, ProductID: "A", Status: "Processing",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.AdminProcessing, updated.Items[0].Status)
	assert.Len(t, f.notifier.sent, 1)
}

type failingInventory struct{}

func (failingInventory) HasVariant(context.Context, string, string) (bool, error) {
	return false, errors.New("inventory offline")
}

func (failingInventory) RecordSales(context.Context, []catalogdomain.Sale) error {
	return errors.New("inventory offline")
}

// offlineStock knows every variant but cannot write sales.
type offlineStock struct{}

func (offlineStock) HasVariant(context.Context, string, string) (bool, error) {
	return true, nil
}

func (offlineStock) RecordSales(context.Context, []catalogdomain.Sale) error {
	return errors.New("inventory offline")
}

func TestUpdateItemStatus_StorageFailureRollsBack(t *testing.T) {
	orders := ordersmemory.NewRepository(failingInventory{})
	notifier := &recordingNotifier{}
	svc := NewService(orders, WithNotifier(notifier))
	order, err := svc.CreateOrder(context.Background(), orderstypes.CreateOrderInput{
		CustomerEmail:   "asha@example.com",
		ShippingAddress: &domain.Address{Line1: "1 Residency Rd", City: "Bengaluru", Pincode: "560025"},
		Products:        []orderstypes.LineItemInput{{ProductID: "A", Quantity: 1, Status: "Dispatched"}},
	})
	require.NoError(t, err)

	_, err = svc.UpdateItemStatus(context.Background(), orderstypes.UpdateItemStatusInput{
		OrderID: order.ID, ProductID: "A", Status: "Completed",
	})
	require.Error(t, err)

	stored, err := orders.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AdminDispatched, stored.Items[0].Status)
	assert.Nil(t, stored.Items[0].ProductCompletedAt)
	assert.Empty(t, notifier.sent)
}

func TestUpdateItemStatus_SaleWriteFailureRollsBack(t *testing.T) {
	orders := ordersmemory.NewRepository(offlineStock{})
	notifier := &recordingNotifier{}
	svc := NewService(orders, WithNotifier(notifier))
	order, err := svc.CreateOrder(context.Background(), orderstypes.CreateOrderInput{
		CustomerEmail:   "asha@example.com",
		ShippingAddress: &domain.Address{Line1: "1 Residency Rd", City: "Bengaluru", Pincode: "560025"},
		Products:        []orderstypes.LineItemInput{{ProductID: "A", Size: "M", Quantity: 1, Status: "Dispatched"}},
	})
	require.NoError(t, err)

	_, err = svc.UpdateItemStatus(context.Background(), orderstypes.UpdateItemStatusInput{
		OrderID: order.ID, ProductID: "A", Size: "M", Status: "Completed",
	})
	require.ErrorContains(t, err, "inventory offline")

	stored, err := orders.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AdminDispatched, stored.Items[0].Status)
	assert.Nil(t, stored.Items[0].ProductCompletedAt)
	assert.Equal(t, order.Version, stored.Version)
	assert.Empty(t, notifier.sent)
}

func TestUpdateOrderStatus_OverwritesItemsKeepsTracking(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "A", catalogdomain.Variant{Size: "M", Stock: 4})
	order := f.seedOrder(t,
		orderstypes.LineItemInput{ProductID: "A", Size: "M", Quantity: 1, Status: "Confirmed", TrackingID: "TRK1"},
		orderstypes.LineItemInput{ProductID: "B", Quantity: 2, Status: "Processing"},
	)

	updated, err := f.svc.UpdateOrderStatus(context.Background(), orderstypes.UpdateOrderStatusInput{
		OrderID: order.ID, Status: "delivered", SendEmail: true,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.WebsiteDelivered, updated.Status)
	for _, item := range updated.Items {
		assert.Equal(t, domain.AdminCompleted, item.Status)
	}
	assert.Equal(t, "TRK1", updated.Items[0].TrackingID)
	require.NotNil(t, updated.DeliveredAt)
	deliveredAt := *updated.DeliveredAt

	product, err := f.catalog.GetByID(context.Background(), "A")
	require.NoError(t, err)
	assert.Equal(t, 3, product.Variants[0].Stock)

	again, err := f.svc.UpdateOrderStatus(context.Background(), orderstypes.UpdateOrderStatusInput{OrderID: order.ID, Status: "delivered"})
	require.NoError(t, err)
	assert.Equal(t, deliveredAt, *again.DeliveredAt)

	assert.Len(t, f.notifier.sent, 1)
	assert.Len(t, f.publisher.events, 2)
}

func TestUpdateOrderStatus_RejectsLeavingTerminal(t *testing.T) {
	f := newFixture(t)
	order := f.seedOrder(t, orderstypes.LineItemInput{ProductID: "A", Quantity: 1})
	_, err := f.svc.UpdateOrderStatus(context.Background(), orderstypes.UpdateOrderStatusInput{OrderID: order.ID, Status: "cancelled"})
	require.NoError(t, err)

	_, err = f.svc.UpdateOrderStatus(context.Background(), orderstypes.UpdateOrderStatusInput{OrderID: order.ID, Status: "processing"})
	require.ErrorIs(t, err, ErrConflict)
}

func TestListOrdersAndMarkSeen(t *testing.T) {
	f := newFixture(t)
	first := f.seedOrder(t, orderstypes.LineItemInput{ProductID: "A", Quantity: 1})
	f.seedOrder(t, orderstypes.LineItemInput{ProductID: "B", Quantity: 1})

	isNew := true
	page, err := f.svc.ListOrders(context.Background(), orderstypes.ListOrdersInput{IsNew: &isNew, Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, maxPageLimit, page.Limit)
	assert.Equal(t, 1, page.Page)

	affected, err := f.svc.MarkOrdersSeen(context.Background(), []string{first.ID, " "})
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	page, err = f.svc.ListOrders(context.Background(), orderstypes.ListOrdersInput{IsNew: &isNew})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	affected, err = f.svc.MarkOrdersSeen(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	_, err = f.svc.ListOrders(context.Background(), orderstypes.ListOrdersInput{Status: "lost"})
	require.ErrorIs(t, err, ErrInvalidInput)
}
