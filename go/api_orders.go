package adminserver

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	ordershttpmapper "github.com/Apurer/storefront-admin/internal/domains/orders/adapters/http/mapper"
	orderstypes "github.com/Apurer/storefront-admin/internal/domains/orders/application/types"
	ordersports "github.com/Apurer/storefront-admin/internal/domains/orders/ports"
	"github.com/Apurer/storefront-admin/internal/shared/response"
)

// OrdersAPI serves the order dashboard and status sync endpoints.
type OrdersAPI struct {
	service ordersports.Service
}

// NewOrdersAPI wires the orders service.
func NewOrdersAPI(service ordersports.Service) OrdersAPI {
	return OrdersAPI{service: service}
}

// Get /api/admin/orders
// Lists orders, newest first
func (api *OrdersAPI) ListOrders(c *gin.Context) {
	if api.service == nil {
		respondServiceError(c, errServiceUnavailable)
		return
	}
	input := orderstypes.ListOrdersInput{
		Status: c.Query("status"),
		Search: c.Query("q"),
	}
	if raw := strings.TrimSpace(c.Query("isNew")); raw != "" {
		isNew, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, err)
			return
		}
		input.IsNew = &isNew
	}
	var ok bool
	if input.Page, ok = intQuery(c, "page"); !ok {
		return
	}
	if input.Limit, ok = intQuery(c, "limit"); !ok {
		return
	}
	page, err := api.service.ListOrders(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"orders":  ordershttpmapper.FromDomainOrders(page.Orders),
		"total":   page.Total,
		"page":    page.Page,
		"limit":   page.Limit,
	})
}

// Post /api/admin/orders
// Imports an order from checkout or a legacy document
func (api *OrdersAPI) CreateOrder(c *gin.Context) {
	if api.service == nil {
		respondServiceError(c, errServiceUnavailable)
		return
	}
	var payload ordershttpmapper.CreateOrder
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	order, err := api.service.CreateOrder(c.Request.Context(), ordershttpmapper.ToCreateOrderInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, "Order created", "order", ordershttpmapper.FromDomainOrder(order))
}

// Get /api/admin/orders/:id
func (api *OrdersAPI) GetOrder(c *gin.Context) {
	if api.service == nil {
		respondServiceError(c, errServiceUnavailable)
		return
	}
	order, err := api.service.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.OK(c, "order", ordershttpmapper.FromDomainOrder(order))
}

// Post /api/admin/orders/status
// Updates the status of one product's line items
func (api *OrdersAPI) UpdateItemStatus(c *gin.Context) {
	if api.service == nil {
		respondServiceError(c, errServiceUnavailable)
		return
	}
	var payload ordershttpmapper.UpdateItemStatus
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	order, err := api.service.UpdateItemStatus(c.Request.Context(), ordershttpmapper.ToUpdateItemStatusInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Write(c, http.StatusOK, "Product status updated", "order", ordershttpmapper.FromDomainOrder(order))
}

// Post /api/admin/orders/order-status
// Overrides the order-level status
func (api *OrdersAPI) UpdateOrderStatus(c *gin.Context) {
	if api.service == nil {
		respondServiceError(c, errServiceUnavailable)
		return
	}
	var payload ordershttpmapper.UpdateOrderStatus
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	order, err := api.service.UpdateOrderStatus(c.Request.Context(), ordershttpmapper.ToUpdateOrderStatusInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Write(c, http.StatusOK, "Order status updated", "order", ordershttpmapper.FromDomainOrder(order))
}

// Post /api/admin/orders/mark-old
// Clears the new flag on the given orders, or on all orders when none are given
func (api *OrdersAPI) MarkOrdersSeen(c *gin.Context) {
	if api.service == nil {
		respondServiceError(c, errServiceUnavailable)
		return
	}
	var payload ordershttpmapper.MarkSeen
	if err := c.ShouldBindJSON(&payload); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	updated, err := api.service.MarkOrdersSeen(c.Request.Context(), payload.OrderIDs)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Write(c, http.StatusOK, "Orders marked as seen", "updated", updated)
}

func intQuery(c *gin.Context, name string) (int, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return 0, false
	}
	return value, true
}
