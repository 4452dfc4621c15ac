package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	orderstypes "github.com/Apurer/storefront-admin/internal/domains/orders/application/types"
	"github.com/Apurer/storefront-admin/internal/domains/orders/domain"
	ordersports "github.com/Apurer/storefront-admin/internal/domains/orders/ports"
)

const tracerName = "github.com/Apurer/storefront-admin/internal/domains/orders/adapters/observability/service"

// Service decorates the orders service with tracing, logging, and metrics.
type Service struct {
	inner   ordersports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core orders service.
func New(inner ordersports.Service, opts ...Option) ordersports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) CreateOrder(ctx context.Context, input orderstypes.CreateOrderInput) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.CreateOrder",
		trace.WithAttributes(attribute.Int("order.products", len(input.Products)), attribute.Int("order.order_items", len(input.OrderItems))))
	defer span.End()

	s.logInfo(ctx, "creating order", slog.String("customer.email", input.CustomerEmail))
	result, err := s.inner.CreateOrder(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create order", slog.String("customer.email", input.CustomerEmail))
	}
	span.SetAttributes(attribute.String("order.id", result.ID))
	s.metrics.recordCreated(ctx, result.Status)
	s.logInfo(ctx, "order created", slog.String("order.id", result.ID), slog.Int("order.items", len(result.Items)))
	return result, nil
}

func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.GetOrder", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	result, err := s.inner.GetOrder(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.String("order.id", id))
	}
	return result, nil
}

func (s *Service) ListOrders(ctx context.Context, input orderstypes.ListOrdersInput) (*orderstypes.OrderPage, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListOrders",
		trace.WithAttributes(attribute.String("filter.status", input.Status), attribute.Int("page", input.Page)))
	defer span.End()

	result, err := s.inner.ListOrders(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders", slog.String("filter.status", input.Status))
	}
	span.SetAttributes(attribute.Int64("orders.total", result.Total))
	return result, nil
}

func (s *Service) UpdateItemStatus(ctx context.Context, input orderstypes.UpdateItemStatusInput) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.UpdateItemStatus",
		trace.WithAttributes(
			attribute.String("order.id", input.OrderID),
			attribute.String("product.id", input.ProductID),
			attribute.String("status", input.Status),
		))
	defer span.End()

	attrs := []slog.Attr{
		slog.String("order.id", input.OrderID),
		slog.String("product.id", input.ProductID),
		slog.String("status", input.Status),
	}
	s.logInfo(ctx, "updating item status", attrs...)
	result, err := s.inner.UpdateItemStatus(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update item status", attrs...)
	}
	s.metrics.recordItemUpdate(ctx, input.Status)
	s.logInfo(ctx, "item status updated", append(attrs, slog.Int64("order.version", result.Version))...)
	return result, nil
}

func (s *Service) UpdateOrderStatus(ctx context.Context, input orderstypes.UpdateOrderStatusInput) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.UpdateOrderStatus",
		trace.WithAttributes(attribute.String("order.id", input.OrderID), attribute.String("status", input.Status)))
	defer span.End()

	attrs := []slog.Attr{slog.String("order.id", input.OrderID), slog.String("status", input.Status)}
	s.logInfo(ctx, "updating order status", attrs...)
	result, err := s.inner.UpdateOrderStatus(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update order status", attrs...)
	}
	s.metrics.recordOrderUpdate(ctx, result.Status)
	s.logInfo(ctx, "order status updated", append(attrs, slog.Int64("order.version", result.Version))...)
	return result, nil
}

func (s *Service) MarkOrdersSeen(ctx context.Context, ids []string) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.MarkOrdersSeen", trace.WithAttributes(attribute.Int("orders.requested", len(ids))))
	defer span.End()

	affected, err := s.inner.MarkOrdersSeen(ctx, ids)
	if err != nil {
		return 0, s.handleError(ctx, span, err, "failed to mark orders seen")
	}
	span.SetAttributes(attribute.Int64("orders.affected", affected))
	s.logInfo(ctx, "orders marked seen", slog.Int64("orders.affected", affected))
	return affected, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	ordersCreated metric.Int64Counter
	itemUpdates   metric.Int64Counter
	orderUpdates  metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersCreated, _ := m.Int64Counter("orders.service.created", metric.WithDescription("Number of orders created or imported"))
	itemUpdates, _ := m.Int64Counter("orders.service.item_status_updates", metric.WithDescription("Number of line item status updates"))
	orderUpdates, _ := m.Int64Counter("orders.service.order_status_updates", metric.WithDescription("Number of whole-order status updates"))
	return serviceMetrics{ordersCreated: ordersCreated, itemUpdates: itemUpdates, orderUpdates: orderUpdates}
}

func (m serviceMetrics) recordCreated(ctx context.Context, status domain.WebsiteStatus) {
	if m.ordersCreated != nil {
		m.ordersCreated.Add(ctx, 1, metric.WithAttributes(attribute.String("order.status", string(status))))
	}
}

func (m serviceMetrics) recordItemUpdate(ctx context.Context, status string) {
	if m.itemUpdates != nil {
		m.itemUpdates.Add(ctx, 1, metric.WithAttributes(attribute.String("item.status", status)))
	}
}

func (m serviceMetrics) recordOrderUpdate(ctx context.Context, status domain.WebsiteStatus) {
	if m.orderUpdates != nil {
		m.orderUpdates.Add(ctx, 1, metric.WithAttributes(attribute.String("order.status", string(status))))
	}
}

var _ ordersports.Service = (*Service)(nil)
