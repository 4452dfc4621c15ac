package adminserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	warehousehttpmapper "github.com/Apurer/storefront-admin/internal/domains/warehouses/adapters/http/mapper"
	warehousesports "github.com/Apurer/storefront-admin/internal/domains/warehouses/ports"
	"github.com/Apurer/storefront-admin/internal/shared/response"
)

// WarehousesAPI serves pickup location management.
type WarehousesAPI struct {
	service warehousesports.Service
}

func NewWarehousesAPI(service warehousesports.Service) WarehousesAPI {
	return WarehousesAPI{service: service}
}

// Get /api/admin/warehouses
func (api *WarehousesAPI) ListWarehouses(c *gin.Context) {
	if api.service == nil {
		respondServiceError(c, errServiceUnavailable)
		return
	}
	warehouses, err := api.service.ListWarehouses(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.OK(c, "data", warehousehttpmapper.FromDomainWarehouses(warehouses))
}

// Post /api/admin/warehouses
// Registers a pickup location with the carrier and stores it
func (api *WarehousesAPI) CreateWarehouse(c *gin.Context) {
	if api.service == nil {
		respondServiceError(c, errServiceUnavailable)
		return
	}
	var payload warehousehttpmapper.WarehousePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	warehouse, err := api.service.CreateWarehouse(c.Request.Context(), warehousehttpmapper.ToWarehouseInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, "Warehouse created", "data", warehousehttpmapper.FromDomainWarehouse(warehouse))
}

// Get /api/admin/warehouses/:id
func (api *WarehousesAPI) GetWarehouse(c *gin.Context) {
	if api.service == nil {
		respondServiceError(c, errServiceUnavailable)
		return
	}
	warehouse, err := api.service.GetWarehouse(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.OK(c, "data", warehousehttpmapper.FromDomainWarehouse(warehouse))
}

// Put /api/admin/warehouses/:id
func (api *WarehousesAPI) UpdateWarehouse(c *gin.Context) {
	if api.service == nil {
		respondServiceError(c, errServiceUnavailable)
		return
	}
	var payload warehousehttpmapper.WarehousePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	warehouse, err := api.service.UpdateWarehouse(c.Request.Context(), c.Param("id"), warehousehttpmapper.ToWarehouseInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Write(c, http.StatusOK, "Warehouse updated", "data", warehousehttpmapper.FromDomainWarehouse(warehouse))
}

// Delete /api/admin/warehouses/:id
func (api *WarehousesAPI) DeleteWarehouse(c *gin.Context) {
	if api.service == nil {
		respondServiceError(c, errServiceUnavailable)
		return
	}
	if err := api.service.DeleteWarehouse(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Message(c, "Warehouse deleted")
}
