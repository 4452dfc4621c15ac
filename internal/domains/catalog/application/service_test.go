package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	catalogmemory "github.com/Apurer/storefront-admin/internal/domains/catalog/adapters/memory"
	"github.com/Apurer/storefront-admin/internal/domains/catalog/domain"
	"github.com/Apurer/storefront-admin/internal/domains/catalog/ports"
)

func TestSaveProduct_CreateAndReplace(t *testing.T) {
	ctx := context.Background()
	svc := NewService(catalogmemory.NewRepository())
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return created }

	product, err := svc.SaveProduct(ctx, ports.SaveProductInput{
		Name:     "Linen shirt",
		Price:    "1499.00",
		Variants: []domain.Variant{{Size: "M", Stock: 4}},
	})
	require.NoError(t, err)
	require.NotEmpty(t, product.ID)
	require.Equal(t, "1499", product.Price.String())

	svc.now = func() time.Time { return created.Add(time.Hour) }
	replaced, err := svc.SaveProduct(ctx, ports.SaveProductInput{
		ID:       product.ID,
		Name:     "Linen shirt",
		Price:    "1299",
		Variants: []domain.Variant{{Size: "M", Stock: 2}},
	})
	require.NoError(t, err)
	require.Equal(t, created, replaced.CreatedAt)
	require.Equal(t, 2, replaced.Variants[0].Stock)
}

func TestSaveProduct_InvalidInput(t *testing.T) {
	svc := NewService(catalogmemory.NewRepository())

	_, err := svc.SaveProduct(context.Background(), ports.SaveProductInput{Name: "Tee", Price: "abc", Variants: []domain.Variant{{Size: "M"}}})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.SaveProduct(context.Background(), ports.SaveProductInput{Name: "Tee"})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrNoVariants)
}
