package types

import (
	"github.com/shopspring/decimal"

	"github.com/Apurer/storefront-admin/internal/domains/orders/domain"
)

// LineItemInput is a raw line item as received from the dashboard or checkout.
type LineItemInput struct {
	ProductID   string
	Name        string
	Quantity    int
	Size        string
	UnitPrice   decimal.Decimal
	Status      string
	TrackingURL string
	TrackingID  string
}

// CreateOrderInput accepts both legacy line item collections and both address copies.
type CreateOrderInput struct {
	UserID          string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	Status          string
	IsPaid          bool
	PaymentMethod   string
	TotalAmount     decimal.Decimal
	ShippingAddress *domain.Address
	DeliveryAddress *domain.Address
	Products        []LineItemInput
	OrderItems      []LineItemInput
}

// ListOrdersInput carries listing filters and pagination.
type ListOrdersInput struct {
	Status string
	IsNew  *bool
	Search string
	Page   int
	Limit  int
}

// OrderPage is one page of an order listing.
type OrderPage struct {
	Orders []*domain.Order
	Total  int64
	Page   int
	Limit  int
}

// UpdateItemStatusInput targets the line items of one product within an order.
type UpdateItemStatusInput struct {
	OrderID       string
	ProductID     string
	Size          string
	Status        string
	TrackingURL   string
	TrackingID    string
	CustomMessage string
	SuppressEmail bool
}

// UpdateOrderStatusInput overrides the order-level status.
type UpdateOrderStatusInput struct {
	OrderID       string
	Status        string
	SendEmail     bool
	CustomMessage string
}
