package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/storefront-admin/internal/domains/catalog/domain"
	"github.com/Apurer/storefront-admin/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists catalog products in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. The handle may be a transaction.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ProductRecord maps the product aggregate to a relational table.
type ProductRecord struct {
	ID          string          `gorm:"primaryKey;column:id;type:varchar(64)"`
	Name        string          `gorm:"column:name;not null"`
	Description string          `gorm:"column:description;type:text"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
	Images      pq.StringArray  `gorm:"column:images;type:text[]"`
	CreatedAt   time.Time       `gorm:"column:created_at;index"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
	Variants    []VariantRecord `gorm:"foreignKey:ProductID;references:ID;constraint:OnDelete:CASCADE"`
}

func (ProductRecord) TableName() string { return "catalog_products" }

// VariantRecord stores per-size stock counters.
type VariantRecord struct {
	ProductID string `gorm:"primaryKey;column:product_id;type:varchar(64)"`
	SizeKey   string `gorm:"primaryKey;column:size_key;type:varchar(32)"`
	Size      string `gorm:"column:size;type:varchar(32)"`
	Stock     int    `gorm:"column:stock;not null;default:0"`
	Sold      int    `gorm:"column:sold;not null;default:0"`
}

func (VariantRecord) TableName() string { return "catalog_variants" }

// Save upserts the product and replaces its variants.
func (r *Repository) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	record := toRecord(product)
	variants := record.Variants
	record.Variants = nil
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "description", "price", "images", "updated_at"}),
		}).Create(&record).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", record.ID).Delete(&VariantRecord{}).Error; err != nil {
			return err
		}
		if len(variants) == 0 {
			return nil
		}
		return tx.Create(&variants).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a product with its variants.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record ProductRecord
	if err := r.db.WithContext(ctx).Preload("Variants").First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// List returns all products, newest first.
func (r *Repository) List(ctx context.Context) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []ProductRecord
	if err := r.db.WithContext(ctx).Preload("Variants").Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	products := make([]*domain.Product, 0, len(records))
	for i := range records {
		products = append(products, records[i].toDomain())
	}
	return products, nil
}

// RecordSale applies the sale in a single statement so concurrent sales never lose counts.
func (r *Repository) RecordSale(ctx context.Context, productID, size string, quantity int) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	result := r.db.WithContext(ctx).
		Model(&VariantRecord{}).
		Where("product_id = ? AND size_key = ?", productID, domain.NormalizeSize(size)).
		Updates(map[string]any{
			"stock": gorm.Expr("GREATEST(stock - ?, 0)", quantity),
			"sold":  gorm.Expr("sold + ?", quantity),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrUnknownVariant
	}
	return nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres catalog repository not configured")
	}
	return nil
}

func toRecord(product *domain.Product) ProductRecord {
	rec := ProductRecord{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Images:      pq.StringArray(product.Images),
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
	for _, v := range product.Variants {
		rec.Variants = append(rec.Variants, VariantRecord{
			ProductID: product.ID,
			SizeKey:   domain.NormalizeSize(v.Size),
			Size:      v.Size,
			Stock:     v.Stock,
			Sold:      v.Sold,
		})
	}
	return rec
}

func (r ProductRecord) toDomain() *domain.Product {
	product := &domain.Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Images:      []string(r.Images),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	for _, v := range r.Variants {
		product.Variants = append(product.Variants, domain.Variant{Size: v.Size, Stock: v.Stock, Sold: v.Sold})
	}
	return product
}
