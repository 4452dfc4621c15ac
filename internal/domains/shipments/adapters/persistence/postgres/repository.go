package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/storefront-admin/internal/domains/shipments/domain"
	"github.com/Apurer/storefront-admin/internal/domains/shipments/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists shipments in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ShipmentRecord maps a shipment to the shipments table. Waybills keep carrier order.
type ShipmentRecord struct {
	ID             string          `gorm:"primaryKey;column:id;type:varchar(64)"`
	OrderID        string          `gorm:"column:order_id;type:varchar(64);index"`
	Type           string          `gorm:"column:type;type:varchar(16)"`
	Waybills       pq.StringArray  `gorm:"column:waybills;type:text[];index:idx_shipments_waybills,type:gin"`
	Status         string          `gorm:"column:status;type:varchar(16)"`
	CarrierStatus  string          `gorm:"column:carrier_status"`
	PickupLocation string          `gorm:"column:pickup_location"`
	PaymentMode    string          `gorm:"column:payment_mode;type:varchar(16)"`
	CODAmount      decimal.Decimal `gorm:"column:cod_amount;type:numeric(12,2)"`
	PackageCount   int             `gorm:"column:package_count"`
	WeightGrams    int             `gorm:"column:weight_grams"`
	LengthCm       float64         `gorm:"column:length_cm"`
	BreadthCm      float64         `gorm:"column:breadth_cm"`
	HeightCm       float64         `gorm:"column:height_cm"`
	LabelURL       string          `gorm:"column:label_url"`
	LastScanAt     *time.Time      `gorm:"column:last_scan_at"`
	CreatedAt      time.Time       `gorm:"column:created_at"`
	UpdatedAt      time.Time       `gorm:"column:updated_at"`
}

func (ShipmentRecord) TableName() string { return "shipments" }

// Save upserts the shipment row.
func (r *Repository) Save(ctx context.Context, shipment *domain.Shipment) (*domain.Shipment, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if shipment == nil {
		return nil, errors.New("shipment is nil")
	}
	record := toRecord(shipment)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&record).Error
	if err != nil {
		return nil, err
	}
	return toDomain(&record), nil
}

// GetByID loads a shipment by identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Shipment, error) {
	return r.first(ctx, "id = ?", id)
}

// GetByWaybill loads the shipment whose waybill list contains the value.
func (r *Repository) GetByWaybill(ctx context.Context, waybill string) (*domain.Shipment, error) {
	return r.first(ctx, "? = ANY(waybills)", waybill)
}

// ListByOrder returns the shipments of an order, oldest first.
func (r *Repository) ListByOrder(ctx context.Context, orderID string) ([]*domain.Shipment, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []ShipmentRecord
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("created_at ASC, id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	result := make([]*domain.Shipment, 0, len(records))
	for i := range records {
		result = append(result, toDomain(&records[i]))
	}
	return result, nil
}

func (r *Repository) first(ctx context.Context, query string, args ...any) (*domain.Shipment, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record ShipmentRecord
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

func toRecord(s *domain.Shipment) ShipmentRecord {
	return ShipmentRecord{
		ID:             s.ID,
		OrderID:        s.OrderID,
		Type:           string(s.Type),
		Waybills:       pq.StringArray(append([]string(nil), s.Waybills...)),
		Status:         string(s.Status),
		CarrierStatus:  s.CarrierStatus,
		PickupLocation: s.PickupLocation,
		PaymentMode:    string(s.PaymentMode),
		CODAmount:      s.CODAmount,
		PackageCount:   s.PackageCount,
		WeightGrams:    s.WeightGrams,
		LengthCm:       s.Dimensions.LengthCm,
		BreadthCm:      s.Dimensions.BreadthCm,
		HeightCm:       s.Dimensions.HeightCm,
		LabelURL:       s.LabelURL,
		LastScanAt:     s.LastScanAt,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func toDomain(rec *ShipmentRecord) *domain.Shipment {
	return &domain.Shipment{
		ID:             rec.ID,
		OrderID:        rec.OrderID,
		Type:           domain.Type(rec.Type),
		Waybills:       append([]string(nil), rec.Waybills...),
		Status:         domain.Status(rec.Status),
		CarrierStatus:  rec.CarrierStatus,
		PickupLocation: rec.PickupLocation,
		PaymentMode:    domain.PaymentMode(rec.PaymentMode),
		CODAmount:      rec.CODAmount,
		PackageCount:   rec.PackageCount,
		WeightGrams:    rec.WeightGrams,
		Dimensions: domain.Dimensions{
			LengthCm:  rec.LengthCm,
			BreadthCm: rec.BreadthCm,
			HeightCm:  rec.HeightCm,
		},
		LabelURL:   rec.LabelURL,
		LastScanAt: rec.LastScanAt,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	}
}
