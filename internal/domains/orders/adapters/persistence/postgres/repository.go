package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	catalogdomain "github.com/Apurer/storefront-admin/internal/domains/catalog/domain"
	"github.com/Apurer/storefront-admin/internal/domains/orders/domain"
	"github.com/Apurer/storefront-admin/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// StockWriter records sales against variant stock.
type StockWriter interface {
	RecordSale(ctx context.Context, productID, size string, quantity int) error
}

// StockWriterFactory binds a stock writer to the transaction handle.
type StockWriterFactory func(tx *gorm.DB) StockWriter

// Repository persists orders in PostgreSQL using GORM.
type Repository struct {
	db    *gorm.DB
	stock StockWriterFactory
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB, stock StockWriterFactory) *Repository {
	return &Repository{db: db, stock: stock}
}

// OrderRecord maps the order aggregate to a relational table.
type OrderRecord struct {
	ID            string            `gorm:"primaryKey;column:id;type:varchar(64)"`
	UserID        string            `gorm:"column:user_id;index"`
	CustomerName  string            `gorm:"column:customer_name"`
	CustomerEmail string            `gorm:"column:customer_email;index"`
	CustomerPhone string            `gorm:"column:customer_phone"`
	Status        string            `gorm:"column:status;type:varchar(32);index"`
	IsPaid        bool              `gorm:"column:is_paid"`
	PaymentMethod string            `gorm:"column:payment_method;type:varchar(16)"`
	TotalAmount   decimal.Decimal   `gorm:"column:total_amount;type:numeric(12,2)"`
	Address       addressColumns    `gorm:"embedded;embeddedPrefix:address_"`
	IsNew         bool              `gorm:"column:is_new;index"`
	Version       int64             `gorm:"column:version;not null;default:1"`
	CreatedAt     time.Time         `gorm:"column:created_at;index"`
	UpdatedAt     time.Time         `gorm:"column:updated_at"`
	DeliveredAt   *time.Time        `gorm:"column:delivered_at"`
	Items         []OrderItemRecord `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
}

func (OrderRecord) TableName() string { return "orders" }

type addressColumns struct {
	Name    string `gorm:"column:name"`
	Phone   string `gorm:"column:phone"`
	Line1   string `gorm:"column:line1"`
	Line2   string `gorm:"column:line2"`
	City    string `gorm:"column:city"`
	State   string `gorm:"column:state"`
	Pincode string `gorm:"column:pincode;type:varchar(12)"`
	Country string `gorm:"column:country"`
}

// OrderItemRecord stores one canonical line item.
type OrderItemRecord struct {
	OrderID            string          `gorm:"primaryKey;column:order_id;type:varchar(64)"`
	Position           int             `gorm:"primaryKey;column:position"`
	ProductID          string          `gorm:"column:product_id;index"`
	Name               string          `gorm:"column:name"`
	Quantity           int             `gorm:"column:quantity"`
	Size               string          `gorm:"column:size;type:varchar(32)"`
	UnitPrice          decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2)"`
	Status             string          `gorm:"column:status;type:varchar(32)"`
	TrackingURL        string          `gorm:"column:tracking_url"`
	TrackingID         string          `gorm:"column:tracking_id"`
	ProductCompletedAt *time.Time      `gorm:"column:product_completed_at"`
}

func (OrderItemRecord) TableName() string { return "order_items" }

// Create inserts a new order with its line items.
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record := toRecord(order)
	record.Version = 1
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrConcurrentUpdate
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// GetByID fetches an order with its line items.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	return loadOrder(r.db.WithContext(ctx), id, false)
}

// List returns one filtered page, newest first, plus the total match count.
func (r *Repository) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Order, int64, error) {
	if err := r.ensureDB(); err != nil {
		return nil, 0, err
	}
	query := r.db.WithContext(ctx).Model(&OrderRecord{})
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.IsNew != nil {
		query = query.Where("is_new = ?", *filter.IsNew)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("id ILIKE ? OR customer_name ILIKE ? OR customer_email ILIKE ? OR customer_phone ILIKE ?", like, like, like, like)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = query.Order("created_at DESC").Order("id DESC").Offset(filter.Offset)
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	var records []OrderRecord
	if err := query.Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).Find(&records).Error; err != nil {
		return nil, 0, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, total, nil
}

// MarkSeen clears the new flag on the given orders, or on every order when ids is empty.
func (r *Repository) MarkSeen(ctx context.Context, ids []string) (int64, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	query := r.db.WithContext(ctx).Model(&OrderRecord{}).Where("is_new = ?", true)
	if len(ids) > 0 {
		query = query.Where("id IN ?", ids)
	}
	result := query.Update("is_new", false)
	return result.RowsAffected, result.Error
}

// InTx runs fn inside a database transaction.
func (r *Repository) InTx(ctx context.Context, fn func(ctx context.Context, tx ports.Tx) error) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		return fn(ctx, &gormTx{db: db, stock: r.stock})
	})
}

type gormTx struct {
	db    *gorm.DB
	stock StockWriterFactory
}

func (tx *gormTx) GetForUpdate(ctx context.Context, id string) (*domain.Order, error) {
	return loadOrder(tx.db.WithContext(ctx), id, true)
}

// Save writes the order when the stored version still matches and bumps the version.
func (tx *gormTx) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record := toRecord(order)
	db := tx.db.WithContext(ctx)
	result := db.Model(&OrderRecord{}).
		Where("id = ? AND version = ?", record.ID, record.Version).
		Updates(map[string]any{
			"customer_name":   record.CustomerName,
			"customer_email":  record.CustomerEmail,
			"customer_phone":  record.CustomerPhone,
			"status":          record.Status,
			"is_paid":         record.IsPaid,
			"payment_method":  record.PaymentMethod,
			"total_amount":    record.TotalAmount,
			"is_new":          record.IsNew,
			"delivered_at":    record.DeliveredAt,
			"updated_at":      record.UpdatedAt,
			"version":         gorm.Expr("version + 1"),
			"address_name":    record.Address.Name,
			"address_phone":   record.Address.Phone,
			"address_country": record.Address.Country,
			"address_line1":   record.Address.Line1,
			"address_line2":   record.Address.Line2,
			"address_city":    record.Address.City,
			"address_state":   record.Address.State,
			"address_pincode": record.Address.Pincode,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrConcurrentUpdate
	}
	if err := db.Where("order_id = ?", record.ID).Delete(&OrderItemRecord{}).Error; err != nil {
		return nil, err
	}
	if len(record.Items) > 0 {
		if err := db.Create(&record.Items).Error; err != nil {
			return nil, err
		}
	}
	return loadOrder(db, record.ID, false)
}

func (tx *gormTx) RecordSale(ctx context.Context, productID, size string, quantity int) error {
	if tx.stock == nil {
		return ports.ErrUnknownVariant
	}
	err := tx.stock(tx.db).RecordSale(ctx, productID, size, quantity)
	if errors.Is(err, catalogdomain.ErrUnknownVariant) {
		return ports.ErrUnknownVariant
	}
	return err
}

func loadOrder(db *gorm.DB, id string, lock bool) (*domain.Order, error) {
	query := db
	if lock {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var record OrderRecord
	if err := query.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	if err := db.Where("order_id = ?", id).Order("position").Find(&record.Items).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) OrderRecord {
	rec := OrderRecord{
		ID:            order.ID,
		UserID:        order.UserID,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		CustomerPhone: order.CustomerPhone,
		Status:        string(order.Status),
		IsPaid:        order.IsPaid,
		PaymentMethod: string(order.PaymentMethod),
		TotalAmount:   order.TotalAmount,
		Address:       addressColumns(order.Address),
		IsNew:         order.IsNew,
		Version:       order.Version,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
		DeliveredAt:   order.DeliveredAt,
	}
	for i, item := range order.Items {
		rec.Items = append(rec.Items, OrderItemRecord{
			OrderID:            order.ID,
			Position:           i,
			ProductID:          item.ProductID,
			Name:               item.Name,
			Quantity:           item.Quantity,
			Size:               item.Size,
			UnitPrice:          item.UnitPrice,
			Status:             string(item.Status),
			TrackingURL:        item.TrackingURL,
			TrackingID:         item.TrackingID,
			ProductCompletedAt: item.ProductCompletedAt,
		})
	}
	return rec
}

func (r OrderRecord) toDomain() *domain.Order {
	order := &domain.Order{
		ID:            r.ID,
		UserID:        r.UserID,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		Status:        domain.WebsiteStatus(r.Status),
		IsPaid:        r.IsPaid,
		PaymentMethod: domain.PaymentMethod(r.PaymentMethod),
		TotalAmount:   r.TotalAmount,
		Address:       domain.Address(r.Address),
		IsNew:         r.IsNew,
		Version:       r.Version,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
		DeliveredAt:   r.DeliveredAt,
	}
	for _, item := range r.Items {
		order.Items = append(order.Items, domain.LineItem{
			ProductID:          item.ProductID,
			Name:               item.Name,
			Quantity:           item.Quantity,
			Size:               item.Size,
			UnitPrice:          item.UnitPrice,
			Status:             domain.AdminStatus(item.Status),
			TrackingURL:        item.TrackingURL,
			TrackingID:         item.TrackingID,
			ProductCompletedAt: item.ProductCompletedAt,
		})
	}
	return order
}
