package adminserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShipmentsAPI_ListShowsCreateActions(t *testing.T) {
	h := newHarness(t)
	id := h.createOrder(t, "processing")

	code, body := h.do(t, http.MethodGet, "/api/shipment?orderId="+id, nil)
	require.Equal(t, http.StatusOK, code, body)
	data := body.object("data")
	actions := data["availableActions"].(map[string]any)
	assert.ElementsMatch(t, []any{"FORWARD", "MPS"}, actions["create"])

	code, _ = h.do(t, http.MethodGet, "/api/shipment", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestShipmentsAPI_CreateReplaysIdempotencyKey(t *testing.T) {
	h := newHarness(t)
	id := h.createOrder(t, "processing")
	payload := map[string]any{"orderId": id, "type": "forward", "weight": 500}

	code, first := h.do(t, http.MethodPost, "/api/shipment", payload, IdempotencyKeyHeader, "key-1")
	require.Equal(t, http.StatusCreated, code, first)
	shipment := first.object("shipment")
	assert.Equal(t, "WB001", shipment["waybill"])

	code, second := h.do(t, http.MethodPost, "/api/shipment", payload, IdempotencyKeyHeader, "key-1")
	require.Equal(t, http.StatusCreated, code, second)
	assert.Equal(t, shipment["id"], second.object("shipment")["id"])
	assert.Equal(t, 1, h.carrier.next)

	code, body := h.do(t, http.MethodGet, "/api/shipment?orderId="+id, nil)
	require.Equal(t, http.StatusOK, code)
	actions := body.object("data")["availableActions"].(map[string]any)
	assert.Empty(t, actions["create"])
	assert.Contains(t, actions["shipments"], "WB001")
}

func TestShipmentsAPI_CreateValidation(t *testing.T) {
	h := newHarness(t)
	id := h.createOrder(t, "processing")

	code, body := h.do(t, http.MethodPost, "/api/shipment", map[string]any{"orderId": id})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, false, body["success"])

	pending := h.createOrder(t, "pending")
	code, _ = h.do(t, http.MethodPost, "/api/shipment", map[string]any{"orderId": pending, "weight": 500})
	assert.Equal(t, http.StatusConflict, code)
}

func TestShipmentsAPI_CarrierFailure(t *testing.T) {
	h := newHarness(t)
	id := h.createOrder(t, "processing")
	h.carrier.err = errCarrierDown

	code, body := h.do(t, http.MethodPost, "/api/shipment", map[string]any{"orderId": id, "weight": 500})
	assert.Equal(t, http.StatusBadGateway, code)
	assert.Equal(t, false, body["success"])
}

func TestShipmentsAPI_LabelTrackCancel(t *testing.T) {
	h := newHarness(t)
	id := h.createOrder(t, "processing")
	code, _ := h.do(t, http.MethodPost, "/api/shipment", map[string]any{"orderId": id, "weight": 500})
	require.Equal(t, http.StatusCreated, code)

	code, body := h.do(t, http.MethodGet, "/api/shipment/label?waybill=WB001", nil)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "https://labels.example/WB001", body.object("data")["url"])

	code, body = h.do(t, http.MethodGet, "/api/shipment/track?waybill=WB001", nil)
	require.Equal(t, http.StatusOK, code, body)
	assert.Len(t, body["data"], 1)

	code, body = h.do(t, http.MethodPost, "/api/shipment/cancel", map[string]any{"waybill": "WB001"})
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "cancelled", body.object("shipment")["status"])

	code, _ = h.do(t, http.MethodPost, "/api/shipment/cancel", map[string]any{"waybill": "UNKNOWN"})
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = h.do(t, http.MethodGet, "/api/shipment/track", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestShipmentsAPI_BulkCreate(t *testing.T) {
	h := newHarness(t)
	ready := h.createOrder(t, "processing")
	pending := h.createOrder(t, "pending")

	code, body := h.do(t, http.MethodPost, "/api/shipment/bulk", map[string]any{
		"orderIds": []string{ready, pending},
		"weight":   400,
	}, IdempotencyKeyHeader, "bulk-1")
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Some shipments failed", body["message"])
	assert.EqualValues(t, 1, body["succeeded"])
	assert.EqualValues(t, 1, body["failed"])

	code, _ = h.do(t, http.MethodPost, "/api/shipment/bulk", map[string]any{"weight": 400})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestShipmentsAPI_Serviceability(t *testing.T) {
	h := newHarness(t)
	code, body := h.do(t, http.MethodGet, "/api/shipment/serviceability?pincode=411001", nil)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, true, body.object("data")["serviceable"])
}
