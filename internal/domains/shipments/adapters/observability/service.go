package observability

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	shipmenttypes "github.com/Apurer/storefront-admin/internal/domains/shipments/application/types"
	"github.com/Apurer/storefront-admin/internal/domains/shipments/domain"
	"github.com/Apurer/storefront-admin/internal/domains/shipments/ports"
)

const tracerName = "github.com/Apurer/storefront-admin/internal/domains/shipments/adapters/observability/service"

// Service decorates the shipments service with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
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

// New wraps the core shipments service.
func New(inner ports.Service, opts ...Option) ports.Service {
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

func (s *Service) ListForOrder(ctx context.Context, orderID string) (*shipmenttypes.OrderShipments, error) {
	ctx, span := s.tracer.Start(ctx, "ShipmentService.ListForOrder", trace.WithAttributes(attribute.String("order.id", orderID)))
	defer span.End()

	result, err := s.inner.ListForOrder(ctx, orderID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list shipments", slog.String("order.id", orderID))
	}
	span.SetAttributes(attribute.Int("shipments.count", len(result.Shipments)))
	return result, nil
}

func (s *Service) Create(ctx context.Context, input shipmenttypes.CreateShipmentInput) (*domain.Shipment, error) {
	ctx, span := s.tracer.Start(ctx, "ShipmentService.Create",
		trace.WithAttributes(
			attribute.String("order.id", input.OrderID),
			attribute.String("shipment.type", input.Type),
			attribute.Bool("idempotency.key_present", input.IdempotencyKey != ""),
		))
	defer span.End()

	attrs := []slog.Attr{slog.String("order.id", input.OrderID), slog.String("shipment.type", input.Type)}
	s.logInfo(ctx, "creating shipment", attrs...)
	result, err := s.inner.Create(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create shipment", attrs...)
	}
	span.SetAttributes(attribute.String("shipment.id", result.ID), attribute.String("shipment.waybill", result.MasterWaybill()))
	s.metrics.recordCreated(ctx, result.Type)
	s.logInfo(ctx, "shipment created", append(attrs, slog.String("shipment.id", result.ID), slog.String("shipment.waybill", result.MasterWaybill()))...)
	return result, nil
}

func (s *Service) Cancel(ctx context.Context, waybill string) (*domain.Shipment, error) {
	ctx, span := s.tracer.Start(ctx, "ShipmentService.Cancel", trace.WithAttributes(attribute.String("shipment.waybill", waybill)))
	defer span.End()

	s.logInfo(ctx, "cancelling shipment", slog.String("shipment.waybill", waybill))
	result, err := s.inner.Cancel(ctx, waybill)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to cancel shipment", slog.String("shipment.waybill", waybill))
	}
	s.metrics.recordCancelled(ctx, result.Type)
	s.logInfo(ctx, "shipment cancelled", slog.String("shipment.waybill", waybill), slog.String("shipment.id", result.ID))
	return result, nil
}

func (s *Service) Edit(ctx context.Context, input shipmenttypes.EditShipmentInput) (*domain.Shipment, error) {
	ctx, span := s.tracer.Start(ctx, "ShipmentService.Edit", trace.WithAttributes(attribute.String("shipment.waybill", input.Waybill)))
	defer span.End()

	s.logInfo(ctx, "editing shipment", slog.String("shipment.waybill", input.Waybill))
	result, err := s.inner.Edit(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to edit shipment", slog.String("shipment.waybill", input.Waybill))
	}
	return result, nil
}

func (s *Service) Track(ctx context.Context, waybills []string) ([]ports.TrackResult, error) {
	joined := strings.Join(waybills, ",")
	ctx, span := s.tracer.Start(ctx, "ShipmentService.Track", trace.WithAttributes(attribute.String("shipment.waybills", joined)))
	defer span.End()

	result, err := s.inner.Track(ctx, waybills)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to track shipments", slog.String("shipment.waybills", joined))
	}
	span.SetAttributes(attribute.Int("shipments.tracked", len(result)))
	return result, nil
}

func (s *Service) Label(ctx context.Context, waybill string) (*ports.Label, error) {
	ctx, span := s.tracer.Start(ctx, "ShipmentService.Label", trace.WithAttributes(attribute.String("shipment.waybill", waybill)))
	defer span.End()

	result, err := s.inner.Label(ctx, waybill)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to fetch packing slip", slog.String("shipment.waybill", waybill))
	}
	return result, nil
}

func (s *Service) Serviceability(ctx context.Context, pincode string) (*ports.Serviceability, error) {
	ctx, span := s.tracer.Start(ctx, "ShipmentService.Serviceability", trace.WithAttributes(attribute.String("pincode", pincode)))
	defer span.End()

	result, err := s.inner.Serviceability(ctx, pincode)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to check serviceability", slog.String("pincode", pincode))
	}
	span.SetAttributes(attribute.Bool("serviceable", result.Serviceable))
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

type serviceMetrics struct {
	created   metric.Int64Counter
	cancelled metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("shipments.service.created", metric.WithDescription("Number of shipments manifested"))
	cancelled, _ := m.Int64Counter("shipments.service.cancelled", metric.WithDescription("Number of shipments cancelled"))
	return serviceMetrics{created: created, cancelled: cancelled}
}

func (m serviceMetrics) recordCreated(ctx context.Context, t domain.Type) {
	if m.created != nil {
		m.created.Add(ctx, 1, metric.WithAttributes(attribute.String("shipment.type", string(t))))
	}
}

func (m serviceMetrics) recordCancelled(ctx context.Context, t domain.Type) {
	if m.cancelled != nil {
		m.cancelled.Add(ctx, 1, metric.WithAttributes(attribute.String("shipment.type", string(t))))
	}
}

var _ ports.Service = (*Service)(nil)
