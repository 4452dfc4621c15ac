package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogmemory "github.com/Apurer/storefront-admin/internal/domains/catalog/adapters/memory"
	catalogdomain "github.com/Apurer/storefront-admin/internal/domains/catalog/domain"
	"github.com/Apurer/storefront-admin/internal/domains/orders/domain"
	"github.com/Apurer/storefront-admin/internal/domains/orders/ports"
)

type brokenLedger struct{}

func (brokenLedger) HasVariant(context.Context, string, string) (bool, error) {
	return true, nil
}

func (brokenLedger) RecordSales(context.Context, []catalogdomain.Sale) error {
	return errors.New("inventory offline")
}

var baseTime = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func newOrder(id string, status domain.WebsiteStatus, isNew bool, offset time.Duration) *domain.Order {
	return &domain.Order{
		ID:            id,
		CustomerName:  "Customer " + id,
		CustomerEmail: id + "@example.com",
		Status:        status,
		IsNew:         isNew,
		CreatedAt:     baseTime.Add(offset),
		Items: []domain.LineItem{
			{ProductID: "A", Size: "M", Quantity: 2, Status: domain.AdminDispatched},
		},
	}
}

func seed(t *testing.T, repo *Repository, orders ...*domain.Order) {
	t.Helper()
	for _, order := range orders {
		_, err := repo.Create(context.Background(), order)
		require.NoError(t, err)
	}
}

func TestRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(nil)
	created, err := repo.Create(ctx, newOrder("o1", domain.WebsitePending, true, 0))
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.Version)

	_, err = repo.Create(ctx, newOrder("o1", domain.WebsitePending, true, 0))
	require.ErrorIs(t, err, ports.ErrConcurrentUpdate)

	loaded, err := repo.GetByID(ctx, "o1")
	require.NoError(t, err)
	loaded.Items[0].Status = domain.AdminCancelled
	again, err := repo.GetByID(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, domain.AdminDispatched, again.Items[0].Status)

	_, err = repo.GetByID(ctx, "missing")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_SaveRejectsStaleVersion(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(nil)
	seed(t, repo, newOrder("o1", domain.WebsiteProcessing, true, 0))

	stale, err := repo.GetByID(ctx, "o1")
	require.NoError(t, err)

	err = repo.InTx(ctx, func(ctx context.Context, tx ports.Tx) error {
		order, err := tx.GetForUpdate(ctx, "o1")
		if err != nil {
			return err
		}
		order.Status = domain.WebsiteConfirmed
		if _, err := tx.Save(ctx, order); err != nil {
			return err
		}
		stale.Status = domain.WebsiteCancelled
		_, err = tx.Save(ctx, stale)
		return err
	})
	require.ErrorIs(t, err, ports.ErrConcurrentUpdate)

	stored, err := repo.GetByID(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, domain.WebsiteProcessing, stored.Status)
	assert.Equal(t, int64(1), stored.Version)
}

func TestRepository_InTxCommitsOrderAndSales(t *testing.T) {
	ctx := context.Background()
	catalog := catalogmemory.NewRepository()
	_, err := catalog.Save(ctx, &catalogdomain.Product{ID: "A", Name: "Tee", Variants: []catalogdomain.Variant{{Size: "M", Stock: 5}}})
	require.NoError(t, err)
	repo := NewRepository(catalog)
	seed(t, repo, newOrder("o1", domain.WebsiteDispatched, false, 0))

	err = repo.InTx(ctx, func(ctx context.Context, tx ports.Tx) error {
		order, err := tx.GetForUpdate(ctx, "o1")
		if err != nil {
			return err
		}
		order.Items[0].Status = domain.AdminCompleted
		if err := tx.RecordSale(ctx, "A", "M", 2); err != nil {
			return err
		}
		_, err = tx.Save(ctx, order)
		return err
	})
	require.NoError(t, err)

	stored, err := repo.GetByID(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, domain.AdminCompleted, stored.Items[0].Status)
	assert.Equal(t, int64(2), stored.Version)

	product, err := catalog.GetByID(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, 3, product.Variants[0].Stock)
	assert.Equal(t, 2, product.Variants[0].Sold)

	err = repo.InTx(ctx, func(ctx context.Context, tx ports.Tx) error {
		return tx.RecordSale(ctx, "A", "XL", 1)
	})
	require.ErrorIs(t, err, ports.ErrUnknownVariant)
}

func TestRepository_InTxFailedSaleLeavesOrderUntouched(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(brokenLedger{})
	seed(t, repo, newOrder("o1", domain.WebsiteDispatched, false, 0))

	err := repo.InTx(ctx, func(ctx context.Context, tx ports.Tx) error {
		order, err := tx.GetForUpdate(ctx, "o1")
		if err != nil {
			return err
		}
		order.Items[0].Status = domain.AdminCompleted
		if err := tx.RecordSale(ctx, "A", "M", 2); err != nil {
			return err
		}
		_, err = tx.Save(ctx, order)
		return err
	})
	require.ErrorContains(t, err, "inventory offline")

	stored, err := repo.GetByID(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, domain.AdminDispatched, stored.Items[0].Status)
	assert.Equal(t, int64(1), stored.Version)
}

func TestRepository_MarkSeen(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(nil)
	seed(t, repo,
		newOrder("o1", domain.WebsitePending, true, 0),
		newOrder("o2", domain.WebsitePending, true, time.Minute),
		newOrder("o3", domain.WebsitePending, false, 2*time.Minute),
	)

	affected, err := repo.MarkSeen(ctx, []string{"o1", "o3", "missing"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = repo.MarkSeen(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	isNew := true
	_, total, err := repo.List(ctx, ports.ListFilter{IsNew: &isNew})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestRepository_ListFiltersAndPages(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(nil)
	seed(t, repo,
		newOrder("o1", domain.WebsitePending, true, 0),
		newOrder("o2", domain.WebsiteDispatched, true, time.Minute),
		newOrder("o3", domain.WebsitePending, false, 2*time.Minute),
		newOrder("o4", domain.WebsitePending, true, 3*time.Minute),
	)

	page, total, err := repo.List(ctx, ports.ListFilter{Offset: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	require.Len(t, page, 2)
	assert.Equal(t, "o3", page[0].ID)
	assert.Equal(t, "o2", page[1].ID)

	page, total, err = repo.List(ctx, ports.ListFilter{Offset: 10, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Empty(t, page)

	pending := domain.WebsitePending
	isNew := true
	page, total, err = repo.List(ctx, ports.ListFilter{Status: &pending, IsNew: &isNew})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, "o4", page[0].ID)
	assert.Equal(t, "o1", page[1].ID)

	page, total, err = repo.List(ctx, ports.ListFilter{Search: "O2@EXAMPLE"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "o2", page[0].ID)
}
