package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/storefront-admin/internal/domains/warehouses/domain"
	"github.com/Apurer/storefront-admin/internal/domains/warehouses/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists warehouses in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WarehouseRecord maps a pickup location to the warehouses table.
type WarehouseRecord struct {
	ID                string    `gorm:"primaryKey;column:id;type:varchar(64)"`
	Name              string    `gorm:"column:name;uniqueIndex"`
	Phone             string    `gorm:"column:phone"`
	Email             string    `gorm:"column:email"`
	Address           string    `gorm:"column:address"`
	City              string    `gorm:"column:city"`
	State             string    `gorm:"column:state"`
	Pin               string    `gorm:"column:pin;type:varchar(6)"`
	Country           string    `gorm:"column:country"`
	ReturnAddress     string    `gorm:"column:return_address"`
	ReturnPin         string    `gorm:"column:return_pin;type:varchar(6)"`
	Active            bool      `gorm:"column:active"`
	CarrierRegistered bool      `gorm:"column:carrier_registered"`
	CreatedAt         time.Time `gorm:"column:created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at"`
}

func (WarehouseRecord) TableName() string { return "warehouses" }

func (r *Repository) Save(ctx context.Context, warehouse *domain.Warehouse) (*domain.Warehouse, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record := toRecord(warehouse)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrDuplicateName
		}
		return nil, err
	}
	return toDomain(&record), nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Warehouse, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *Repository) GetByName(ctx context.Context, name string) (*domain.Warehouse, error) {
	return r.first(ctx, "LOWER(name) = LOWER(?)", name)
}

func (r *Repository) List(ctx context.Context) ([]*domain.Warehouse, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []WarehouseRecord
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	result := make([]*domain.Warehouse, 0, len(records))
	for i := range records {
		result = append(result, toDomain(&records[i]))
	}
	return result, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&WarehouseRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) first(ctx context.Context, query string, args ...any) (*domain.Warehouse, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record WarehouseRecord
	if err := r.db.WithContext(ctx).Where(query, args...).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return toDomain(&record), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres repository not configured")
	}
	return nil
}

func toRecord(w *domain.Warehouse) WarehouseRecord {
	return WarehouseRecord{
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

func toDomain(rec *WarehouseRecord) *domain.Warehouse {
	return &domain.Warehouse{
		ID:                rec.ID,
		Name:              rec.Name,
		Phone:             rec.Phone,
		Email:             rec.Email,
		Address:           rec.Address,
		City:              rec.City,
		State:             rec.State,
		Pin:               rec.Pin,
		Country:           rec.Country,
		ReturnAddress:     rec.ReturnAddress,
		ReturnPin:         rec.ReturnPin,
		Active:            rec.Active,
		CarrierRegistered: rec.CarrierRegistered,
		CreatedAt:         rec.CreatedAt,
		UpdatedAt:         rec.UpdatedAt,
	}
}
