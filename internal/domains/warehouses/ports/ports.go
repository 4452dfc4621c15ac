package ports

import (
	"context"
	"errors"

	"github.com/Apurer/storefront-admin/internal/domains/warehouses/domain"
)

var (
	ErrNotFound      = errors.New("warehouse not found")
	ErrDuplicateName = errors.New("warehouse name already exists")
	// ErrRegistration wraps failures reported by the carrier.
	ErrRegistration = errors.New("carrier warehouse registration failed")
)

// Repository persists pickup locations.
type Repository interface {
	Save(ctx context.Context, warehouse *domain.Warehouse) (*domain.Warehouse, error)
	GetByID(ctx context.Context, id string) (*domain.Warehouse, error)
	GetByName(ctx context.Context, name string) (*domain.Warehouse, error)
	List(ctx context.Context) ([]*domain.Warehouse, error)
	Delete(ctx context.Context, id string) error
}

// Registrar pushes pickup locations to the carrier.
type Registrar interface {
	Register(ctx context.Context, warehouse *domain.Warehouse) error
	Update(ctx context.Context, warehouse *domain.Warehouse) error
}

// WarehouseInput carries the editable fields.
type WarehouseInput struct {
	Name          string
	Phone         string
	Email         string
	Address       string
	City          string
	State         string
	Pin           string
	Country       string
	ReturnAddress string
	ReturnPin     string
	Active        *bool
}

// Service exposes warehouse use cases to adapters.
type Service interface {
	CreateWarehouse(ctx context.Context, input WarehouseInput) (*domain.Warehouse, error)
	UpdateWarehouse(ctx context.Context, id string, input WarehouseInput) (*domain.Warehouse, error)
	GetWarehouse(ctx context.Context, id string) (*domain.Warehouse, error)
	ListWarehouses(ctx context.Context) ([]*domain.Warehouse, error)
	DeleteWarehouse(ctx context.Context, id string) error
}
