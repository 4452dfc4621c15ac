package mapper

import (
	"time"

	"github.com/Apurer/storefront-admin/internal/domains/warehouses/domain"
	"github.com/Apurer/storefront-admin/internal/domains/warehouses/ports"
)

// Warehouse is the dashboard representation of a pickup location.
type Warehouse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Phone             string    `json:"phone"`
	Email             string    `json:"email,omitempty"`
	Address           string    `json:"address"`
	City              string    `json:"city"`
	State             string    `json:"state,omitempty"`
	Pin               string    `json:"pin"`
	Country           string    `json:"country"`
	ReturnAddress     string    `json:"returnAddress,omitempty"`
	ReturnPin         string    `json:"returnPin,omitempty"`
	Active            bool      `json:"active"`
	CarrierRegistered bool      `json:"carrierRegistered"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// WarehousePayload is the create/update body.
type WarehousePayload struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
	Pin           string `json:"pin"`
	Country       string `json:"country"`
	ReturnAddress string `json:"returnAddress"`
	ReturnPin     string `json:"returnPin"`
	Active        *bool  `json:"active"`
}

func ToWarehouseInput(payload WarehousePayload) ports.WarehouseInput {
	return ports.WarehouseInput(payload)
}

func FromDomainWarehouse(w *domain.Warehouse) Warehouse {
	return Warehouse{
		ID:                w.ID,
		Name:              w.Name,
		Phone:             w.Phone,
		Email:             w.Email,
		Address:           w.Address,
		City:              w.City,
		State:             w.State,
		Pin:               w.Pin,
		Country:           w.Country,
		ReturnAddress:     w.ReturnAddress,
		ReturnPin:         w.ReturnPin,
		Active:            w.Active,
		CarrierRegistered: w.CarrierRegistered,
		CreatedAt:         w.CreatedAt,
		UpdatedAt:         w.UpdatedAt,
	}
}

func FromDomainWarehouses(warehouses []*domain.Warehouse) []Warehouse {
	out := make([]Warehouse, 0, len(warehouses))
	for _, w := range warehouses {
		out = append(out, FromDomainWarehouse(w))
	}
	return out
}
