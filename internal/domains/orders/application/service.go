package application

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	orderstypes "github.com/Apurer/storefront-admin/internal/domains/orders/application/types"
	"github.com/Apurer/storefront-admin/internal/domains/orders/domain"
	"github.com/Apurer/storefront-admin/internal/domains/orders/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// Service orchestrates the orders bounded context use cases.
type Service struct {
	repo      ports.Repository
	notifier  ports.Notifier
	publisher ports.EventPublisher
	composer  *Composer
	logger    *slog.Logger
	now       func() time.Time
}

// Option configures optional collaborators of the service.
type Option func(*Service)

// WithNotifier sets the customer email channel.
func WithNotifier(notifier ports.Notifier) Option {
	return func(s *Service) {
		s.notifier = notifier
	}
}

// WithPublisher sets the domain event sink.
func WithPublisher(publisher ports.EventPublisher) Option {
	return func(s *Service) {
		s.publisher = publisher
	}
}

// WithComposer overrides the email templates.
func WithComposer(composer *Composer) Option {
	return func(s *Service) {
		if composer != nil {
			s.composer = composer
		}
	}
}

// WithLogger sets the logger used for swallowed side-effect failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires the orders service with its dependencies.
func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		composer: NewComposer("Storefront"),
		logger:   slog.Default(),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateOrder imports an order, reconciling the legacy line item arrays and addresses.
func (s *Service) CreateOrder(ctx context.Context, input orderstypes.CreateOrderInput) (*domain.Order, error) {
	products, err := toLineItems(input.Products)
	if err != nil {
		return nil, mapError(err)
	}
	orderItems, err := toLineItems(input.OrderItems)
	if err != nil {
		return nil, mapError(err)
	}
	items, err := domain.MergeLegacyItems(products, orderItems)
	if err != nil {
		return nil, mapError(err)
	}

	status := domain.WebsitePending
	if strings.TrimSpace(input.Status) != "" {
		if status, err = domain.ParseWebsiteStatus(input.Status); err != nil {
			return nil, mapError(err)
		}
	}
	payment := domain.PaymentMethod(strings.ToLower(strings.TrimSpace(input.PaymentMethod)))
	if payment == "" {
		payment = domain.PaymentCOD
	}

	now := s.now()
	order := &domain.Order{
		ID:            uuid.NewString(),
		UserID:        input.UserID,
		CustomerName:  input.CustomerName,
		CustomerEmail: strings.TrimSpace(input.CustomerEmail),
		CustomerPhone: input.CustomerPhone,
		Status:        status,
		IsPaid:        input.IsPaid,
		PaymentMethod: payment,
		TotalAmount:   input.TotalAmount,
		Address:       pickAddress(input.DeliveryAddress, input.ShippingAddress),
		Items:         items,
		IsNew:         true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if order.TotalAmount.IsZero() {
		order.TotalAmount = order.ComputeTotal()
	}
	if status == domain.WebsiteDelivered {
		order.DeliveredAt = &now
	}
	if err := order.Validate(); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// GetOrder loads a single order.
func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	if strings.TrimSpace(id) == "" {
		return nil, mapError(errMissingOrderID)
	}
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return order, nil
}

// ListOrders returns one page of orders, newest first.
func (s *Service) ListOrders(ctx context.Context, input orderstypes.ListOrdersInput) (*orderstypes.OrderPage, error) {
	filter := ports.ListFilter{IsNew: input.IsNew, Search: strings.TrimSpace(input.Search)}
	if strings.TrimSpace(input.Status) != "" {
		status, err := domain.ParseWebsiteStatus(input.Status)
		if err != nil {
			return nil, mapError(err)
		}
		filter.Status = &status
	}
	page, limit := input.Page, input.Limit
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	filter.Offset = (page - 1) * limit
	filter.Limit = limit

	orders, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, mapError(err)
	}
	return &orderstypes.OrderPage{Orders: orders, Total: total, Page: page, Limit: limit}, nil
}

// UpdateItemStatus moves the line items of one product to a new admin status. The order
// save and any stock decrement commit together; events and email follow the commit.
func (s *Service) UpdateItemStatus(ctx context.Context, input orderstypes.UpdateItemStatusInput) (*domain.Order, error) {
	if strings.TrimSpace(input.OrderID) == "" {
		return nil, mapError(errMissingOrderID)
	}
	if strings.TrimSpace(input.ProductID) == "" {
		return nil, mapError(errMissingProductID)
	}
	status, err := domain.ParseAdminStatus(input.Status)
	if err != nil {
		return nil, mapError(err)
	}
	update := domain.ItemStatusUpdate{
		ProductID:   input.ProductID,
		Size:        input.Size,
		Status:      status,
		TrackingURL: strings.TrimSpace(input.TrackingURL),
		TrackingID:  strings.TrimSpace(input.TrackingID),
	}

	var (
		saved   *domain.Order
		changes []domain.ItemStatusChange
	)
	err = s.repo.InTx(ctx, func(ctx context.Context, tx ports.Tx) error {
		order, err := tx.GetForUpdate(ctx, input.OrderID)
		if err != nil {
			return err
		}
		changes, err = order.ApplyItemStatus(update, s.now())
		if err != nil {
			return err
		}
		if err := s.recordSales(ctx, tx, order.ID, changes); err != nil {
			return err
		}
		saved, err = tx.Save(ctx, order)
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}
	if len(changes) == 0 {
		return saved, nil
	}

	s.publish(ctx, itemEvent(saved, update, changes, s.now()))
	if !input.SuppressEmail {
		var notification domain.Notification
		key := domain.ItemKey{ProductID: update.ProductID, Size: update.Size}
		if status == domain.AdminConfirmed {
			notification, err = s.composer.Confirmation(saved, key, input.CustomMessage)
		} else {
			notification, err = s.composer.ItemStatusUpdate(saved, key, status, input.CustomMessage)
		}
		s.notify(ctx, notification, err)
	}
	return saved, nil
}

// UpdateOrderStatus overrides the order-level status and every line item with it.
func (s *Service) UpdateOrderStatus(ctx context.Context, input orderstypes.UpdateOrderStatusInput) (*domain.Order, error) {
	if strings.TrimSpace(input.OrderID) == "" {
		return nil, mapError(errMissingOrderID)
	}
	status, err := domain.ParseWebsiteStatus(input.Status)
	if err != nil {
		return nil, mapError(err)
	}

	var (
		saved    *domain.Order
		previous domain.WebsiteStatus
	)
	err = s.repo.InTx(ctx, func(ctx context.Context, tx ports.Tx) error {
		order, err := tx.GetForUpdate(ctx, input.OrderID)
		if err != nil {
			return err
		}
		previous = order.Status
		changes, err := order.ApplyOrderStatus(status, s.now())
		if err != nil {
			return err
		}
		if err := s.recordSales(ctx, tx, order.ID, changes); err != nil {
			return err
		}
		saved, err = tx.Save(ctx, order)
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}

	s.publish(ctx, domain.OrderStatusChanged{
		BaseEvent:  domain.BaseEvent{OrderID: saved.ID, Timestamp: s.now()},
		FromStatus: previous,
		ToStatus:   saved.Status,
		ItemCount:  len(saved.Items),
	})
	if input.SendEmail {
		notification, err := s.composer.OrderStatusUpdate(saved, input.CustomMessage)
		s.notify(ctx, notification, err)
	}
	return saved, nil
}

// MarkOrdersSeen clears the new flag for the given orders, or all orders when ids is empty.
func (s *Service) MarkOrdersSeen(ctx context.Context, ids []string) (int64, error) {
	cleaned := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			cleaned = append(cleaned, id)
		}
	}
	affected, err := s.repo.MarkSeen(ctx, cleaned)
	if err != nil {
		return 0, mapError(err)
	}
	return affected, nil
}

func (s *Service) recordSales(ctx context.Context, tx ports.Tx, orderID string, changes []domain.ItemStatusChange) error {
	for _, change := range changes {
		if !change.Completed {
			continue
		}
		err := tx.RecordSale(ctx, change.Key.ProductID, change.Key.Size, change.Quantity)
		if errors.Is(err, ports.ErrUnknownVariant) {
			s.logger.LogAttrs(ctx, slog.LevelWarn, "stock not adjusted for unknown variant",
				slog.String("order.id", orderID),
				slog.String("product.id", change.Key.ProductID),
				slog.String("product.size", change.Key.Size),
				slog.Int("quantity", change.Quantity),
			)
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) publish(ctx context.Context, event domain.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "order event not published",
			slog.String("order.id", event.AggregateID()),
			slog.String("event.name", event.EventName()),
			slog.String("error", err.Error()),
		)
	}
}

func (s *Service) notify(ctx context.Context, notification domain.Notification, composeErr error) {
	if s.notifier == nil {
		return
	}
	if composeErr != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "order email not composed",
			slog.String("order.id", notification.OrderID),
			slog.String("error", composeErr.Error()),
		)
		return
	}
	if notification.To == "" {
		return
	}
	if err := s.notifier.Send(ctx, notification); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "order email not sent",
			slog.String("order.id", notification.OrderID),
			slog.String("error", err.Error()),
		)
	}
}

func itemEvent(order *domain.Order, update domain.ItemStatusUpdate, changes []domain.ItemStatusChange, now time.Time) domain.ItemStatusChanged {
	event := domain.ItemStatusChanged{
		BaseEvent:  domain.BaseEvent{OrderID: order.ID, Timestamp: now},
		ProductID:  update.ProductID,
		Size:       update.Size,
		FromStatus: changes[0].From,
		ToStatus:   update.Status,
	}
	if update.Status == domain.AdminConfirmed {
		event.TrackingID = update.TrackingID
		event.TrackingURL = update.TrackingURL
	}
	return event
}

func toLineItems(inputs []orderstypes.LineItemInput) ([]domain.LineItem, error) {
	items := make([]domain.LineItem, 0, len(inputs))
	for _, in := range inputs {
		item := domain.LineItem{
			ProductID:   strings.TrimSpace(in.ProductID),
			Name:        in.Name,
			Quantity:    in.Quantity,
			Size:        strings.TrimSpace(in.Size),
			UnitPrice:   in.UnitPrice,
			TrackingURL: in.TrackingURL,
			TrackingID:  in.TrackingID,
		}
		if strings.TrimSpace(in.Status) != "" {
			status, err := domain.ParseAdminStatus(in.Status)
			if err != nil {
				return nil, err
			}
			item.Status = status
		}
		items = append(items, item)
	}
	return items, nil
}

func pickAddress(preferred, fallback *domain.Address) domain.Address {
	if preferred != nil && !preferred.IsZero() {
		return *preferred
	}
	if fallback != nil {
		return *fallback
	}
	return domain.Address{}
}

var _ ports.Service = (*Service)(nil)
