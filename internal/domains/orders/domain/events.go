package domain

import "time"

// Event is the base interface for all orders domain events.
type Event interface {
	EventName() string
	OccurredAt() time.Time
	AggregateID() string
}

// BaseEvent provides common event metadata.
type BaseEvent struct {
	OrderID   string    `json:"orderId"`
	Timestamp time.Time `json:"occurredAt"`
}

// OccurredAt returns when the event occurred.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// AggregateID returns the owning order identifier.
func (e BaseEvent) AggregateID() string {
	return e.OrderID
}

// ItemStatusChanged is raised when one or more line items of a product change status.
type ItemStatusChanged struct {
	BaseEvent
	ProductID   string      `json:"productId"`
	Size        string      `json:"size,omitempty"`
	FromStatus  AdminStatus `json:"fromStatus"`
	ToStatus    AdminStatus `json:"toStatus"`
	TrackingID  string      `json:"trackingId,omitempty"`
	TrackingURL string      `json:"trackingUrl,omitempty"`
}

// EventName returns the event type identifier.
func (e ItemStatusChanged) EventName() string {
	return "orders.item.status_changed"
}

// OrderStatusChanged is raised when the order-level status is overridden.
type OrderStatusChanged struct {
	BaseEvent
	FromStatus WebsiteStatus `json:"fromStatus"`
	ToStatus   WebsiteStatus `json:"toStatus"`
	ItemCount  int           `json:"itemCount"`
}

// EventName returns the event type identifier.
func (e OrderStatusChanged) EventName() string {
	return "orders.order.status_changed"
}

// Notification is a composed customer email.
type Notification struct {
	OrderID string
	To      string
	Subject string
	Body    string
}
