package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod captures how the customer settles the order.
type PaymentMethod string

const (
	PaymentCOD     PaymentMethod = "cod"
	PaymentPrepaid PaymentMethod = "prepaid"
)

var (
	ErrNoLineItems       = errors.New("order must contain at least one line item")
	ErrInvalidQuantity   = errors.New("line item quantity must be greater than zero")
	ErrMissingProductID  = errors.New("line item product id is required")
	ErrNegativePrice     = errors.New("line item unit price must not be negative")
	ErrLineItemNotFound  = errors.New("line item not found in order")
	ErrMissingCustomer   = errors.New("order customer email is required")
	ErrInvalidPayment    = errors.New("payment method is invalid")
	ErrIncompleteAddress = errors.New("delivery address requires line1, city and pincode")
)

// Address is the single canonical delivery address of an order.
type Address struct {
	Name    string
	Phone   string
	Line1   string
	Line2   string
	City    string
	State   string
	Pincode string
	Country string
}

// IsZero reports whether no address field was supplied.
func (a Address) IsZero() bool {
	return a == Address{}
}

// Validate enforces the fields the carrier needs to ship.
func (a Address) Validate() error {
	if strings.TrimSpace(a.Line1) == "" || strings.TrimSpace(a.City) == "" || strings.TrimSpace(a.Pincode) == "" {
		return ErrIncompleteAddress
	}
	return nil
}

// LineItem is one product entry within an order.
type LineItem struct {
	ProductID          string
	Name               string
	Quantity           int
	Size               string
	UnitPrice          decimal.Decimal
	Status             AdminStatus
	TrackingURL        string
	TrackingID         string
	ProductCompletedAt *time.Time
}

// Key identifies the line item within its order.
func (li LineItem) Key() ItemKey {
	return ItemKey{ProductID: li.ProductID, Size: li.Size}
}

// Subtotal is the unit price multiplied by quantity.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Validate enforces line item invariants.
func (li LineItem) Validate() error {
	if strings.TrimSpace(li.ProductID) == "" {
		return ErrMissingProductID
	}
	if li.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if li.UnitPrice.IsNegative() {
		return ErrNegativePrice
	}
	if !li.Status.Valid() {
		return ErrUnknownStatus
	}
	return nil
}

// ItemKey addresses a line item by product reference and size variant.
type ItemKey struct {
	ProductID string
	Size      string
}

// Order is the aggregate root of the orders bounded context.
type Order struct {
	ID            string
	UserID        string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Status        WebsiteStatus
	IsPaid        bool
	PaymentMethod PaymentMethod
	TotalAmount   decimal.Decimal
	Address       Address
	Items         []LineItem
	IsNew         bool
	Version       int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeliveredAt   *time.Time
}

// Validate enforces aggregate invariants before persistence.
func (o *Order) Validate() error {
	if len(o.Items) == 0 {
		return ErrNoLineItems
	}
	for _, item := range o.Items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	if !o.Status.Valid() {
		return ErrUnknownStatus
	}
	if strings.TrimSpace(o.CustomerEmail) == "" {
		return ErrMissingCustomer
	}
	switch o.PaymentMethod {
	case PaymentCOD, PaymentPrepaid:
	default:
		return ErrInvalidPayment
	}
	return o.Address.Validate()
}

// ComputeTotal sums the line item subtotals.
func (o *Order) ComputeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Products returns the legacy products[] view of the line items.
func (o *Order) Products() []LineItem {
	return cloneItems(o.Items)
}

// OrderItems returns the legacy orderItems[] view of the line items.
func (o *Order) OrderItems() []LineItem {
	return cloneItems(o.Items)
}

// ItemStatusChange records one line item moving between statuses.
type ItemStatusChange struct {
	Key       ItemKey
	Quantity  int
	From      AdminStatus
	To        AdminStatus
	Completed bool
}

// ItemStatusUpdate carries the parameters of a single line item update.
type ItemStatusUpdate struct {
	ProductID   string
	Size        string
	Status      AdminStatus
	TrackingURL string
	TrackingID  string
}

// ApplyItemStatus updates every line item matching the product (and size when given).
// Tracking fields are written only for Confirmed. The returned changes exclude items
// whose status was already the requested one.
func (o *Order) ApplyItemStatus(update ItemStatusUpdate, now time.Time) ([]ItemStatusChange, error) {
	if !update.Status.Valid() {
		return nil, ErrUnknownStatus
	}
	matched := o.matchItems(update.ProductID, update.Size)
	if len(matched) == 0 {
		return nil, ErrLineItemNotFound
	}
	for _, idx := range matched {
		if !CanTransition(o.Items[idx].Status, update.Status) {
			return nil, ErrInvalidTransition
		}
	}
	var changes []ItemStatusChange
	for _, idx := range matched {
		item := &o.Items[idx]
		if update.Status == AdminConfirmed {
			if update.TrackingURL != "" {
				item.TrackingURL = update.TrackingURL
			}
			if update.TrackingID != "" {
				item.TrackingID = update.TrackingID
			}
		}
		if change, ok := item.transition(update.Status, now); ok {
			changes = append(changes, change)
		}
	}
	if len(changes) > 0 {
		o.UpdatedAt = now
	}
	return changes, nil
}

// ApplyOrderStatus sets the order-level status and overwrites every line item status.
func (o *Order) ApplyOrderStatus(status WebsiteStatus, now time.Time) ([]ItemStatusChange, error) {
	if !status.Valid() {
		return nil, ErrUnknownStatus
	}
	if !CanTransitionWebsite(o.Status, status) {
		return nil, ErrInvalidTransition
	}
	previous := o.Status
	o.Status = status
	if status == WebsiteDelivered && previous != WebsiteDelivered && o.DeliveredAt == nil {
		stamp := now
		o.DeliveredAt = &stamp
	}
	adminStatus := MapWebsiteStatusToAdmin(status)
	var changes []ItemStatusChange
	for i := range o.Items {
		if change, ok := o.Items[i].transition(adminStatus, now); ok {
			changes = append(changes, change)
		}
	}
	o.UpdatedAt = now
	return changes, nil
}

func (li *LineItem) transition(to AdminStatus, now time.Time) (ItemStatusChange, bool) {
	from := li.Status
	if from == to {
		return ItemStatusChange{}, false
	}
	li.Status = to
	change := ItemStatusChange{Key: li.Key(), Quantity: li.Quantity, From: from, To: to}
	if to == AdminCompleted && from != AdminCompleted {
		change.Completed = true
		if li.ProductCompletedAt == nil {
			stamp := now
			li.ProductCompletedAt = &stamp
		}
	}
	return change, true
}

// Item returns the first line item addressed by key. An empty size matches any size.
func (o *Order) Item(key ItemKey) (LineItem, bool) {
	matched := o.matchItems(key.ProductID, key.Size)
	if len(matched) == 0 {
		return LineItem{}, false
	}
	return o.Items[matched[0]], true
}

func (o *Order) matchItems(productID, size string) []int {
	productID = strings.TrimSpace(productID)
	size = strings.TrimSpace(size)
	var idx []int
	for i, item := range o.Items {
		if item.ProductID != productID {
			continue
		}
		if size != "" && !strings.EqualFold(item.Size, size) {
			continue
		}
		idx = append(idx, i)
	}
	return idx
}

// Clone returns a deep copy of the aggregate.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Items = cloneItems(o.Items)
	if o.DeliveredAt != nil {
		stamp := *o.DeliveredAt
		clone.DeliveredAt = &stamp
	}
	return &clone
}

func cloneItems(items []LineItem) []LineItem {
	if items == nil {
		return nil
	}
	out := make([]LineItem, len(items))
	for i, item := range items {
		out[i] = item
		if item.ProductCompletedAt != nil {
			stamp := *item.ProductCompletedAt
			out[i].ProductCompletedAt = &stamp
		}
	}
	return out
}
