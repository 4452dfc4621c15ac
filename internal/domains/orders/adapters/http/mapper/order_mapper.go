package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	orderstypes "github.com/Apurer/storefront-admin/internal/domains/orders/application/types"
	ordersdomain "github.com/Apurer/storefront-admin/internal/domains/orders/domain"
)

// Address is the wire shape of both shippingAddress and deliveryAddress.
type Address struct {
	Name    string `json:"name,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Line1   string `json:"line1"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state,omitempty"`
	Pincode string `json:"pincode"`
	Country string `json:"country,omitempty"`
}

// LineItem is the wire shape shared by products[] and orderItems[].
type LineItem struct {
	ProductID          string          `json:"productId"`
	Name               string          `json:"name,omitempty"`
	Quantity           int             `json:"quantity"`
	Size               string          `json:"size,omitempty"`
	Price              decimal.Decimal `json:"price"`
	Status             string          `json:"status,omitempty"`
	TrackingURL        string          `json:"trackingUrl,omitempty"`
	TrackingID         string          `json:"trackingId,omitempty"`
	ProductCompletedAt *time.Time      `json:"productCompletedAt,omitempty"`
}

// Order is the dashboard representation, carrying both legacy line item arrays.
type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId,omitempty"`
	CustomerName    string          `json:"customerName,omitempty"`
	CustomerEmail   string          `json:"customerEmail"`
	CustomerPhone   string          `json:"customerPhone,omitempty"`
	Status          string          `json:"status"`
	IsPaid          bool            `json:"isPaid"`
	PaymentMethod   string          `json:"paymentMethod"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	ShippingAddress Address         `json:"shippingAddress"`
	DeliveryAddress Address         `json:"deliveryAddress"`
	Products        []LineItem      `json:"products"`
	OrderItems      []LineItem      `json:"orderItems"`
	IsNew           bool            `json:"isNew"`
	Version         int64           `json:"version"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	DeliveredAt     *time.Time      `json:"deliveredAt,omitempty"`
}

// CreateOrder is the import/checkout hand-off payload.
type CreateOrder struct {
	UserID          string          `json:"userId"`
	CustomerName    string          `json:"customerName"`
	CustomerEmail   string          `json:"customerEmail" binding:"required,email"`
	CustomerPhone   string          `json:"customerPhone"`
	Status          string          `json:"status"`
	IsPaid          bool            `json:"isPaid"`
	PaymentMethod   string          `json:"paymentMethod"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	ShippingAddress *Address        `json:"shippingAddress"`
	DeliveryAddress *Address        `json:"deliveryAddress"`
	Products        []LineItem      `json:"products"`
	OrderItems      []LineItem      `json:"orderItems"`
}

// UpdateItemStatus is the per-item status payload.
type UpdateItemStatus struct {
	OrderID       string `json:"orderId" binding:"required"`
	ProductID     string `json:"productId" binding:"required"`
	Size          string `json:"size"`
	Status        string `json:"status" binding:"required"`
	TrackingURL   string `json:"trackingUrl"`
	TrackingID    string `json:"trackingId"`
	CustomMessage string `json:"customMessage"`
	SuppressEmail bool   `json:"suppressEmail"`
}

// UpdateOrderStatus is the whole-order status payload.
type UpdateOrderStatus struct {
	OrderID       string `json:"orderId" binding:"required"`
	Status        string `json:"status" binding:"required"`
	SendEmail     bool   `json:"sendEmail"`
	CustomMessage string `json:"customMessage"`
}

// MarkSeen lists the orders to clear; empty means all.
type MarkSeen struct {
	OrderIDs []string `json:"orderIds"`
}

// ToCreateOrderInput converts the transport payload into the application input.
func ToCreateOrderInput(payload CreateOrder) orderstypes.CreateOrderInput {
	return orderstypes.CreateOrderInput{
		UserID:          payload.UserID,
		CustomerName:    payload.CustomerName,
		CustomerEmail:   payload.CustomerEmail,
		CustomerPhone:   payload.CustomerPhone,
		Status:          payload.Status,
		IsPaid:          payload.IsPaid,
		PaymentMethod:   payload.PaymentMethod,
		TotalAmount:     payload.TotalAmount,
		ShippingAddress: toDomainAddress(payload.ShippingAddress),
		DeliveryAddress: toDomainAddress(payload.DeliveryAddress),
		Products:        toLineItemInputs(payload.Products),
		OrderItems:      toLineItemInputs(payload.OrderItems),
	}
}

func ToUpdateItemStatusInput(payload UpdateItemStatus) orderstypes.UpdateItemStatusInput {
	return orderstypes.UpdateItemStatusInput(payload)
}

func ToUpdateOrderStatusInput(payload UpdateOrderStatus) orderstypes.UpdateOrderStatusInput {
	return orderstypes.UpdateOrderStatusInput(payload)
}

// FromDomainOrder renders both legacy arrays and both address copies from the canonical fields.
func FromDomainOrder(order *ordersdomain.Order) Order {
	if order == nil {
		return Order{}
	}
	address := fromDomainAddress(order.Address)
	return Order{
		ID:              order.ID,
		UserID:          order.UserID,
		CustomerName:    order.CustomerName,
		CustomerEmail:   order.CustomerEmail,
		CustomerPhone:   order.CustomerPhone,
		Status:          string(order.Status),
		IsPaid:          order.IsPaid,
		PaymentMethod:   string(order.PaymentMethod),
		TotalAmount:     order.TotalAmount,
		ShippingAddress: address,
		DeliveryAddress: address,
		Products:        fromLineItems(order.Products()),
		OrderItems:      fromLineItems(order.OrderItems()),
		IsNew:           order.IsNew,
		Version:         order.Version,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
		DeliveredAt:     order.DeliveredAt,
	}
}

func FromDomainOrders(orders []*ordersdomain.Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, order := range orders {
		out = append(out, FromDomainOrder(order))
	}
	return out
}

func toLineItemInputs(items []LineItem) []orderstypes.LineItemInput {
	out := make([]orderstypes.LineItemInput, 0, len(items))
	for _, item := range items {
		out = append(out, orderstypes.LineItemInput{
			ProductID:   item.ProductID,
			Name:        item.Name,
			Quantity:    item.Quantity,
			Size:        item.Size,
			UnitPrice:   item.Price,
			Status:      item.Status,
			TrackingURL: item.TrackingURL,
			TrackingID:  item.TrackingID,
		})
	}
	return out
}

func fromLineItems(items []ordersdomain.LineItem) []LineItem {
	out := make([]LineItem, 0, len(items))
	for _, item := range items {
		out = append(out, LineItem{
			ProductID:          item.ProductID,
			Name:               item.Name,
			Quantity:           item.Quantity,
			Size:               item.Size,
			Price:              item.UnitPrice,
			Status:             string(item.Status),
			TrackingURL:        item.TrackingURL,
			TrackingID:         item.TrackingID,
			ProductCompletedAt: item.ProductCompletedAt,
		})
	}
	return out
}

func toDomainAddress(address *Address) *ordersdomain.Address {
	if address == nil {
		return nil
	}
	converted := ordersdomain.Address{
		Name:    address.Name,
		Phone:   address.Phone,
		Line1:   address.Line1,
		Line2:   address.Line2,
		City:    address.City,
		State:   address.State,
		Pincode: address.Pincode,
		Country: address.Country,
	}
	return &converted
}

func fromDomainAddress(address ordersdomain.Address) Address {
	return Address{
		Name:    address.Name,
		Phone:   address.Phone,
		Line1:   address.Line1,
		Line2:   address.Line2,
		City:    address.City,
		State:   address.State,
		Pincode: address.Pincode,
		Country: address.Country,
	}
}
