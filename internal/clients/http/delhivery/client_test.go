package delhivery

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := NewClient(server.URL, "secret", time.Second, WithHTTPClient(server.Client()))
	require.NoError(t, err)
	return client
}

func TestNewClient_RequiresToken(t *testing.T) {
	_, err := NewClient("", " ", 0)
	require.Error(t, err)
}

func TestCreateShipment_SendsFormEncodedDocument(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/cmu/create.json", r.URL.Path)
		assert.Equal(t, "Token secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "json", r.PostForm.Get("format"))
		var doc CreateRequest
		assert.NoError(t, json.Unmarshal([]byte(r.PostForm.Get("data")), &doc))
		assert.Equal(t, "Main Warehouse", doc.PickupLocation.Name)
		if assert.Len(t, doc.Shipments, 1) {
			assert.Equal(t, "COD", doc.Shipments[0].PaymentMode)
		}

		_, _ = io.WriteString(w, `{"success":true,"packages":[{"waybill":"1234","status":"Success"}]}`)
	})

	response, err := client.CreateShipment(context.Background(), CreateRequest{
		Shipments:      []ShipmentPayload{{Name: "Asha", Pin: "411001", Order: "o1", PaymentMode: "COD"}},
		PickupLocation: PickupLocation{Name: "Main Warehouse"},
	})
	require.NoError(t, err)
	assert.Equal(t, "1234", response.Packages[0].Waybill)
}

func TestCreateShipment_ReportsRemarks(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"success":false,"rmk":"bad","packages":[{"status":"Fail","remarks":["non serviceable pincode"]}]}`)
	})
	_, err := client.CreateShipment(context.Background(), CreateRequest{Shipments: []ShipmentPayload{{Name: "x"}}})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Contains(t, apiErr.Message, "non serviceable pincode")
}

func TestFetchWaybills_ParsesCommaList(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/waybill/api/bulk/json/", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("count"))
		_, _ = io.WriteString(w, `"111,222,333"`)
	})
	waybills, err := client.FetchWaybills(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"111", "222", "333"}, waybills)
}

func TestCancelShipment_UsesEditEndpoint(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/p/edit", r.URL.Path)
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "1234", body["waybill"])
		assert.Equal(t, "true", body["cancellation"])
		_, _ = io.WriteString(w, `{"status":true,"waybill":"1234","remark":"Shipment has been cancelled."}`)
	})
	_, err := client.CancelShipment(context.Background(), "1234")
	require.NoError(t, err)
}

func TestTrack_DecodesScans(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/packages/json/", r.URL.Path)
		assert.Equal(t, "111,222", r.URL.Query().Get("waybill"))
		_, _ = io.WriteString(w, `{"ShipmentData":[{"Shipment":{"AWB":"111","Status":{"Status":"In Transit","StatusLocation":"Pune_Hub","StatusDateTime":"2024-05-02T13:30:00.000"},"Scans":[{"ScanDetail":{"Scan":"Manifested","ScannedLocation":"Pune","ScanDateTime":"2024-05-01T10:00:00"}}]}}]}`)
	})
	shipments, err := client.Track(context.Background(), []string{"111", "222"})
	require.NoError(t, err)
	require.Len(t, shipments, 1)
	assert.Equal(t, "In Transit", shipments[0].Status.Status)
	assert.Equal(t, time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC), shipments[0].Status.StatusDateTime.Time)
	require.Len(t, shipments[0].Scans, 1)
	assert.Equal(t, "Manifested", shipments[0].Scans[0].ScanDetail.Scan)
}

func TestDo_RejectsOversizedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"delivery_codes":[{"postal_code":{"pin":411001,"district":"Pune"}}]}`)
	}))
	t.Cleanup(server.Close)
	client, err := NewClient(server.URL, "secret", time.Second, WithHTTPClient(server.Client()), WithMaxResponseBytes(16))
	require.NoError(t, err)

	_, err = client.Serviceability(context.Background(), "411001")
	require.ErrorContains(t, err, "exceeds 16 bytes")
}

func TestServiceability(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("filter_codes") == "411001" {
			_, _ = io.WriteString(w, `{"delivery_codes":[{"postal_code":{"pin":411001,"district":"Pune","state_code":"MH","cod":"Y","pre_paid":"Y","pickup":"N"}}]}`)
			return
		}
		_, _ = io.WriteString(w, `{"delivery_codes":[]}`)
	})
	code, err := client.Serviceability(context.Background(), "411001")
	require.NoError(t, err)
	require.NotNil(t, code)
	assert.Equal(t, "Pune", code.District)
	assert.Equal(t, "Y", code.COD)

	code, err = client.Serviceability(context.Background(), "999999")
	require.NoError(t, err)
	assert.Nil(t, code)
}

func TestPackingSlipAndErrors(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/p/packing_slip":
			assert.Equal(t, "true", r.URL.Query().Get("pdf"))
			_, _ = io.WriteString(w, `{"packages_found":1,"packages":[{"wbn":"111","pdf_download_link":"https://labels.example/111.pdf"}]}`)
		default:
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"detail":"Invalid token"}`)
		}
	})
	slip, err := client.PackingSlip(context.Background(), "111")
	require.NoError(t, err)
	assert.Equal(t, "https://labels.example/111.pdf", slip.PDFDownloadLink)

	err = client.CreateWarehouse(context.Background(), Warehouse{Name: "Main"})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid token", apiErr.Message)
}

func TestEndpointEncodesQuery(t *testing.T) {
	client, err := NewClient("https://example.test/base/", "t", 0)
	require.NoError(t, err)
	endpoint, err := client.endpoint("/x", queryParam{name: "waybill", value: "a,b"})
	require.NoError(t, err)
	parsed, err := url.Parse(endpoint)
	require.NoError(t, err)
	assert.Equal(t, "/base/x", parsed.Path)
	assert.Equal(t, "a,b", parsed.Query().Get("waybill"))
}
