package adminserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	shipmenthttpmapper "github.com/Apurer/storefront-admin/internal/domains/shipments/adapters/http/mapper"
	shipmentsports "github.com/Apurer/storefront-admin/internal/domains/shipments/ports"
	"github.com/Apurer/storefront-admin/internal/shared/response"
)

// IdempotencyKeyHeader carries the client supplied key for shipment creation.
const IdempotencyKeyHeader = "Idempotency-Key"

// ShipmentsAPI serves the carrier shipment endpoints.
type ShipmentsAPI struct {
	service   shipmentsports.Service
	workflows shipmentsports.WorkflowOrchestrator
}

// NewShipmentsAPI wires the shipments service and the bulk workflow orchestrator.
func NewShipmentsAPI(service shipmentsports.Service, workflows shipmentsports.WorkflowOrchestrator) ShipmentsAPI {
	return ShipmentsAPI{service: service, workflows: workflows}
}

// Get /api/shipment?orderId=
// Lists an order's shipments with the actions currently available
func (api *ShipmentsAPI) ListShipments(c *gin.Context) {
	if api.service == nil {
		respondServiceError(c, errServiceUnavailable)
		return
	}
	orderID := strings.TrimSpace(c.Query("orderId"))
	if orderID == "" {
		respondError(c, http.StatusBadRequest, errors.New("orderId query parameter is required"))
		return
	}
	view, err := api.service.ListForOrder(c.Request.Context(), orderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.OK(c, "data", shipmenthttpmapper.FromOrderShipments(view))
}

// Post /api/shipment
// Manifests a shipment with the carrier
func (api *ShipmentsAPI) CreateShipment(c *gin.Context) {
	if api.service == nil {
		respondServiceError(c, errServiceUnavailable)
		return
	}
	var payload shipmenthttpmapper.CreateShipment
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	input := shipmenthttpmapper.ToCreateShipmentInput(payload, c.GetHeader(IdempotencyKeyHeader))
	shipment, err := api.service.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, "Shipment created", "shipment", shipmenthttpmapper.FromDomainShipment(shipment))
}

// Post /api/shipment/cancel
func (api *ShipmentsAPI) CancelShipment(c *gin.Context) {
	if api.service == nil {
		respondServiceError(c, errServiceUnavailable)
		return
	}
	var payload shipmenthttpmapper.WaybillRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	shipment, err := api.service.Cancel(c.Request.Context(), payload.Waybill)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Write(c, http.StatusOK, "Shipment cancelled", "shipment", shipmenthttpmapper.FromDomainShipment(shipment))
}

// Post /api/shipment/edit
// Edits consignee or package details before pickup
func (api *ShipmentsAPI) EditShipment(c *gin.Context) {
	if api.service == nil {
		respondServiceError(c, errServiceUnavailable)
		return
	}
	var payload shipmenthttpmapper.EditShipment
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	shipment, err := api.service.Edit(c.Request.Context(), shipmenthttpmapper.ToEditShipmentInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Write(c, http.StatusOK, "Shipment updated", "shipment", shipmenthttpmapper.FromDomainShipment(shipment))
}

// Get /api/shipment/track?waybill=
// Tracks one or more comma separated waybills
func (api *ShipmentsAPI) TrackShipments(c *gin.Context) {
	if api.service == nil {
		respondServiceError(c, errServiceUnavailable)
		return
	}
	waybills := shipmenthttpmapper.SplitWaybills(c.Query("waybill"))
	if len(waybills) == 0 {
		respondError(c, http.StatusBadRequest, errors.New("waybill query parameter is required"))
		return
	}
	results, err := api.service.Track(c.Request.Context(), waybills)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.OK(c, "data", shipmenthttpmapper.FromTrackResults(results))
}

// Get /api/shipment/label?waybill=
func (api *ShipmentsAPI) ShipmentLabel(c *gin.Context) {
	if api.service == nil {
		respondServiceError(c, errServiceUnavailable)
		return
	}
	label, err := api.service.Label(c.Request.Context(), c.Query("waybill"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.OK(c, "data", shipmenthttpmapper.FromLabel(label))
}

// Post /api/shipment/bulk
// Manifests shipments for many orders through the bulk workflow
func (api *ShipmentsAPI) BulkCreateShipments(c *gin.Context) {
	if api.workflows == nil {
		respondServiceError(c, errServiceUnavailable)
		return
	}
	var payload shipmenthttpmapper.BulkCreate
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	input := shipmenthttpmapper.ToBulkCreateInput(payload, c.GetHeader(IdempotencyKeyHeader))
	result, err := api.workflows.BulkCreate(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   result.Failed == 0,
		"message":   bulkMessage(result.Succeeded, result.Failed),
		"data":      result.Results,
		"succeeded": result.Succeeded,
		"failed":    result.Failed,
	})
}

// Get /api/shipment/serviceability?pincode=
func (api *ShipmentsAPI) Serviceability(c *gin.Context) {
	if api.service == nil {
		respondServiceError(c, errServiceUnavailable)
		return
	}
	result, err := api.service.Serviceability(c.Request.Context(), c.Query("pincode"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.OK(c, "data", shipmenthttpmapper.FromServiceability(result))
}

func bulkMessage(succeeded, failed int) string {
	switch {
	case failed == 0:
		return "All shipments created"
	case succeeded == 0:
		return "No shipments were created"
	default:
		return "Some shipments failed"
	}
}
