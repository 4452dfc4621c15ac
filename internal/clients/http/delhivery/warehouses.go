package delhivery

import (
	"context"
	"strings"
)

const (
	warehouseCreatePath = "/api/backend/clientwarehouse/create/"
	warehouseEditPath   = "/api/backend/clientwarehouse/edit/"
)

// CreateWarehouse registers a pickup location.
func (c *Client) CreateWarehouse(ctx context.Context, warehouse Warehouse) error {
	return c.warehouseCall(ctx, warehouseCreatePath, warehouse)
}

// EditWarehouse updates a registered pickup location, matched by name.
func (c *Client) EditWarehouse(ctx context.Context, warehouse Warehouse) error {
	return c.warehouseCall(ctx, warehouseEditPath, warehouse)
}

func (c *Client) warehouseCall(ctx context.Context, path string, warehouse Warehouse) error {
	if strings.TrimSpace(warehouse.Name) == "" {
		return &APIError{Message: "warehouse name is required"}
	}
	var response WarehouseResponse
	if err := c.postJSON(ctx, path, warehouse, &response); err != nil {
		return err
	}
	if !response.Success {
		msg := strings.Trim(strings.TrimSpace(string(response.Error)), `"`)
		if msg == "" || msg == "null" {
			msg = "warehouse registration rejected"
		}
		return &APIError{Message: msg}
	}
	return nil
}
