package adminserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	catalogmemory "github.com/Apurer/storefront-admin/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/Apurer/storefront-admin/internal/domains/catalog/application"
	contentmemory "github.com/Apurer/storefront-admin/internal/domains/content/adapters/memory"
	contentapp "github.com/Apurer/storefront-admin/internal/domains/content/application"
	ordersmemory "github.com/Apurer/storefront-admin/internal/domains/orders/adapters/memory"
	ordersapp "github.com/Apurer/storefront-admin/internal/domains/orders/application"
	shipmentsmemory "github.com/Apurer/storefront-admin/internal/domains/shipments/adapters/memory"
	shipmentsworkflows "github.com/Apurer/storefront-admin/internal/domains/shipments/adapters/workflows"
	shipmentsapp "github.com/Apurer/storefront-admin/internal/domains/shipments/application"
	shipmentsports "github.com/Apurer/storefront-admin/internal/domains/shipments/ports"
	warehousesmemory "github.com/Apurer/storefront-admin/internal/domains/warehouses/adapters/memory"
	warehousesapp "github.com/Apurer/storefront-admin/internal/domains/warehouses/application"
	warehousesdomain "github.com/Apurer/storefront-admin/internal/domains/warehouses/domain"
	"github.com/Apurer/storefront-admin/internal/platform/storage"
)

type stubCarrier struct {
	next int
	err  error
}

func (c *stubCarrier) CreateShipment(_ context.Context, request shipmentsports.CreateRequest) (*shipmentsports.CreateResult, error) {
	if c.err != nil {
		return nil, c.err
	}
	if len(request.Waybills) > 0 {
		return &shipmentsports.CreateResult{Waybills: request.Waybills, Status: "Manifested"}, nil
	}
	c.next++
	return &shipmentsports.CreateResult{Waybills: []string{fmt.Sprintf("WB%03d", c.next)}, Status: "Manifested"}, nil
}

func (c *stubCarrier) FetchWaybills(_ context.Context, count int) ([]string, error) {
	waybills := make([]string, 0, count)
	for i := 0; i < count; i++ {
		c.next++
		waybills = append(waybills, fmt.Sprintf("MPS%03d", c.next))
	}
	return waybills, c.err
}

func (c *stubCarrier) EditShipment(context.Context, shipmentsports.EditRequest) error { return c.err }

func (c *stubCarrier) CancelShipment(context.Context, string) error { return c.err }

func (c *stubCarrier) Track(_ context.Context, waybills []string) ([]shipmentsports.TrackResult, error) {
	results := make([]shipmentsports.TrackResult, 0, len(waybills))
	for _, wb := range waybills {
		results = append(results, shipmentsports.TrackResult{Waybill: wb, Status: "In Transit"})
	}
	return results, c.err
}

func (c *stubCarrier) PackingSlip(_ context.Context, waybill string) (*shipmentsports.Label, error) {
	return &shipmentsports.Label{Waybill: waybill, URL: "https://labels.example/" + waybill}, c.err
}

func (c *stubCarrier) Serviceability(_ context.Context, pincode string) (*shipmentsports.Serviceability, error) {
	return &shipmentsports.Serviceability{Pincode: pincode, Serviceable: true, COD: true}, c.err
}

type stubRegistrar struct{ err error }

func (r stubRegistrar) Register(context.Context, *warehousesdomain.Warehouse) error { return r.err }

func (r stubRegistrar) Update(context.Context, *warehousesdomain.Warehouse) error { return r.err }

type harness struct {
	router    *gin.Engine
	carrier   *stubCarrier
	registrar *stubRegistrar
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))

	catalogRepo := catalogmemory.NewRepository()
	orders := ordersapp.NewService(ordersmemory.NewRepository(catalogRepo), ordersapp.WithLogger(quiet))

	carrier := &stubCarrier{}
	shipments := shipmentsapp.NewService(shipmentsmemory.NewRepository(), orders, carrier,
		shipmentsapp.WithIdempotencyStore(shipmentsmemory.NewIdempotencyStore()),
		shipmentsapp.WithPickupLocation("Main"),
		shipmentsapp.WithLogger(quiet))

	registrar := &stubRegistrar{}
	warehouses := warehousesapp.NewService(warehousesmemory.NewRepository(), warehousesapp.WithRegistrar(registrar))

	uploadDir := t.TempDir()
	uploader := storage.NewUploader(storage.NewLocalBackend(uploadDir, "/uploads"), storage.WithLogger(quiet))

	handlers := ApiHandleFunctions{
		OrdersAPI:     NewOrdersAPI(orders),
		ShipmentsAPI:  NewShipmentsAPI(shipments, shipmentsworkflows.NewInlineShipmentWorkflows(shipments)),
		CatalogAPI:    NewCatalogAPI(catalogapp.NewService(catalogRepo)),
		WarehousesAPI: NewWarehousesAPI(warehouses),
		ContentAPI:    NewContentAPI(contentapp.NewService(contentmemory.NewRepository())),
		UploadAPI:     NewUploadAPI(uploader, uploadDir, "/uploads"),
	}
	return &harness{
		router:    NewRouterWithGinEngine(gin.New(), handlers),
		carrier:   carrier,
		registrar: registrar,
	}
}

type envelope map[string]any

func (h *harness) do(t *testing.T, method, path string, body any, headers ...string) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	var decoded envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded), w.Body.String())
	}
	return w.Code, decoded
}

func (e envelope) object(key string) map[string]any {
	value, _ := e[key].(map[string]any)
	return value
}

func (h *harness) createOrder(t *testing.T, status string) string {
	t.Helper()
	code, body := h.do(t, http.MethodPost, "/api/admin/orders", map[string]any{
		"customerName":  "Asha",
		"customerEmail": "asha@example.com",
		"customerPhone": "9999999999",
		"status":        status,
		"paymentMethod": "cod",
		"shippingAddress": map[string]any{
			"line1": "12 MG Road", "city": "Pune", "state": "MH", "pincode": "411001",
		},
		"products": []map[string]any{
			{"productId": "p1", "name": "Kurta", "quantity": 2, "size": "M", "price": "600"},
		},
	})
	require.Equal(t, http.StatusCreated, code, body)
	return body.object("order")["id"].(string)
}

var errCarrierDown = fmt.Errorf("%w: status 503", shipmentsports.ErrCarrier)

func TestNewTracedRouter_TracesEveryRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	router := NewTracedRouter("storefront-admin-api", ApiHandleFunctions{}, otelgin.WithTracerProvider(provider))
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	require.Equal(t, "/healthz", spans[0].Name())
	require.NotEqual(t, spans[0].SpanContext().TraceID(), spans[1].SpanContext().TraceID())
}

func TestHealthz(t *testing.T) {
	h := newHarness(t)
	code, body := h.do(t, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "ok", body["status"])
}
