package ports

import (
	"context"

	"github.com/Apurer/storefront-admin/internal/domains/orders/domain"
)

// Notifier delivers customer emails.
type Notifier interface {
	Send(ctx context.Context, notification domain.Notification) error
}

// EventPublisher emits domain events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}
