package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/storefront-admin/internal/domains/orders/domain"
)

func twoSizeOrder() *domain.Order {
	return &domain.Order{
		ID:            "a1b2c3d4e5f6",
		CustomerName:  "Asha",
		CustomerEmail: "asha@example.com",
		Items: []domain.LineItem{
			{ProductID: "tee", Name: "Linen Tee", Size: "M", Quantity: 1, Status: domain.AdminConfirmed, TrackingID: "TRK-M"},
			{ProductID: "tee", Name: "Linen Tee", Size: "L", Quantity: 1, Status: domain.AdminConfirmed, TrackingID: "TRK-L"},
		},
	}
}

func TestComposerConfirmation_UsesAddressedSize(t *testing.T) {
	composer := NewComposer("Acme")

	notification, err := composer.Confirmation(twoSizeOrder(), domain.ItemKey{ProductID: "tee", Size: "L"}, "")
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", notification.To)
	assert.Contains(t, notification.Body, "Linen Tee (size L)")
	assert.Contains(t, notification.Body, "TRK-L")
	assert.NotContains(t, notification.Body, "TRK-M")
	assert.Contains(t, notification.Subject, "#a1b2c3d4")
}

func TestComposerItemStatusUpdate_SizeLookup(t *testing.T) {
	composer := NewComposer("Acme")

	notification, err := composer.ItemStatusUpdate(twoSizeOrder(), domain.ItemKey{ProductID: "tee", Size: "l"}, domain.AdminDispatched, "Packed with care")
	require.NoError(t, err)
	assert.Contains(t, notification.Body, "(size L)")
	assert.Contains(t, notification.Body, "Packed with care")

	notification, err = composer.ItemStatusUpdate(twoSizeOrder(), domain.ItemKey{ProductID: "mug"}, domain.AdminDispatched, "")
	require.NoError(t, err)
	assert.Contains(t, notification.Body, "Your order #a1b2c3d4")
}
