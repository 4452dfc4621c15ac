package domain

import (
	"errors"
	"strings"
)

// AdminStatus is the per-line-item vocabulary used by the admin dashboard.
type AdminStatus string

const (
	AdminNotProcessed AdminStatus = "Not Processed"
	AdminProcessing   AdminStatus = "Processing"
	AdminConfirmed    AdminStatus = "Confirmed"
	AdminDispatched   AdminStatus = "Dispatched"
	AdminCompleted    AdminStatus = "Completed"
	AdminCancelled    AdminStatus = "Cancelled"
)

// WebsiteStatus is the order-level vocabulary shown to customers.
type WebsiteStatus string

const (
	WebsitePending    WebsiteStatus = "pending"
	WebsiteProcessing WebsiteStatus = "processing"
	WebsiteConfirmed  WebsiteStatus = "confirmed"
	WebsiteDispatched WebsiteStatus = "dispatched"
	WebsiteDelivered  WebsiteStatus = "delivered"
	WebsiteCancelled  WebsiteStatus = "cancelled"
)

var (
	ErrUnknownStatus     = errors.New("order status is not recognised")
	ErrInvalidTransition = errors.New("status transition is not allowed")
)

// AdminStatuses lists the admin vocabulary in progression order.
var AdminStatuses = []AdminStatus{
	AdminNotProcessed,
	AdminProcessing,
	AdminConfirmed,
	AdminDispatched,
	AdminCompleted,
	AdminCancelled,
}

// WebsiteStatuses lists the website vocabulary in progression order.
var WebsiteStatuses = []WebsiteStatus{
	WebsitePending,
	WebsiteProcessing,
	WebsiteConfirmed,
	WebsiteDispatched,
	WebsiteDelivered,
	WebsiteCancelled,
}

// MapWebsiteStatusToAdmin translates a customer-facing status into the admin vocabulary.
func MapWebsiteStatusToAdmin(status WebsiteStatus) AdminStatus {
	switch status {
	case WebsiteProcessing:
		return AdminProcessing
	case WebsiteConfirmed:
		return AdminConfirmed
	case WebsiteDispatched:
		return AdminDispatched
	case WebsiteDelivered:
		return AdminCompleted
	case WebsiteCancelled:
		return AdminCancelled
	default:
		return AdminNotProcessed
	}
}

// MapAdminStatusToWebsite translates an admin status into the customer-facing vocabulary.
func MapAdminStatusToWebsite(status AdminStatus) WebsiteStatus {
	switch status {
	case AdminProcessing:
		return WebsiteProcessing
	case AdminConfirmed:
		return WebsiteConfirmed
	case AdminDispatched:
		return WebsiteDispatched
	case AdminCompleted:
		return WebsiteDelivered
	case AdminCancelled:
		return WebsiteCancelled
	default:
		return WebsitePending
	}
}

// ParseAdminStatus validates a raw admin status string.
func ParseAdminStatus(raw string) (AdminStatus, error) {
	switch normalizeStatus(raw) {
	case "notprocessed":
		return AdminNotProcessed, nil
	case "processing":
		return AdminProcessing, nil
	case "confirmed":
		return AdminConfirmed, nil
	case "dispatched", "shipped":
		return AdminDispatched, nil
	case "completed", "delivered":
		return AdminCompleted, nil
	case "cancelled", "canceled":
		return AdminCancelled, nil
	default:
		return "", ErrUnknownStatus
	}
}

// ParseWebsiteStatus validates a raw website status string.
func ParseWebsiteStatus(raw string) (WebsiteStatus, error) {
	switch normalizeStatus(raw) {
	case "pending":
		return WebsitePending, nil
	case "processing":
		return WebsiteProcessing, nil
	case "confirmed":
		return WebsiteConfirmed, nil
	case "dispatched", "shipped":
		return WebsiteDispatched, nil
	case "delivered", "completed":
		return WebsiteDelivered, nil
	case "cancelled", "canceled":
		return WebsiteCancelled, nil
	default:
		return "", ErrUnknownStatus
	}
}

func normalizeStatus(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(raw)
}

// IsTerminal reports whether no further progression is possible.
func (s AdminStatus) IsTerminal() bool {
	return s == AdminCompleted || s == AdminCancelled
}

// Valid reports membership in the closed admin vocabulary.
func (s AdminStatus) Valid() bool {
	_, ok := progressRank[s]
	return ok || s == AdminCancelled
}

// Valid reports membership in the closed website vocabulary.
func (s WebsiteStatus) Valid() bool {
	for _, known := range WebsiteStatuses {
		if s == known {
			return true
		}
	}
	return false
}

var progressRank = map[AdminStatus]int{
	AdminNotProcessed: 0,
	AdminProcessing:   1,
	AdminConfirmed:    2,
	AdminDispatched:   3,
	AdminCompleted:    4,
}

// CanTransition reports whether an item may move from one admin status to another.
// Re-applying the current status is always accepted so updates stay idempotent.
func CanTransition(from, to AdminStatus) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	if from == to {
		return true
	}
	if from.IsTerminal() {
		return false
	}
	if to == AdminCancelled {
		return true
	}
	return progressRank[to] > progressRank[from]
}

// CanTransitionWebsite applies the admin transition table to order-level statuses.
func CanTransitionWebsite(from, to WebsiteStatus) bool {
	return CanTransition(MapWebsiteStatusToAdmin(from), MapWebsiteStatusToAdmin(to))
}

// MoreProgressed returns whichever status sits further along the lifecycle.
// Cancelled outranks every other status.
func MoreProgressed(a, b AdminStatus) AdminStatus {
	if a == AdminCancelled || b == AdminCancelled {
		return AdminCancelled
	}
	if progressRank[b] > progressRank[a] {
		return b
	}
	return a
}
