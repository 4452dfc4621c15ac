//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Apurer/storefront-admin/internal/domains/shipments/domain"
	"github.com/Apurer/storefront-admin/internal/domains/shipments/ports"
)

func setupShipmentsPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("storefront_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&ShipmentRecord{}, &IdempotencyRecord{}))

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}
	return db, cleanup
}

func TestShipmentRepository_SaveAndLookup(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	db, cleanup := setupShipmentsPostgresContainer(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewRepository(db)
	now := time.Now().UTC().Truncate(time.Millisecond)

	shipment := &domain.Shipment{
		ID:           "s1",
		OrderID:      "o1",
		Type:         domain.TypeMPS,
		Waybills:     []string{"M100", "C101", "C102"},
		Status:       domain.StatusCreated,
		PaymentMode:  domain.PaymentCOD,
		CODAmount:    decimal.RequireFromString("1499.50"),
		PackageCount: 3,
		WeightGrams:  1200,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	_, err := repo.Save(ctx, shipment)
	require.NoError(t, err)

	byChild, err := repo.GetByWaybill(ctx, "C102")
	require.NoError(t, err)
	assert.Equal(t, "s1", byChild.ID)
	assert.Equal(t, "M100", byChild.MasterWaybill())
	assert.True(t, shipment.CODAmount.Equal(byChild.CODAmount))

	byChild.Status = domain.StatusCancelled
	_, err = repo.Save(ctx, byChild)
	require.NoError(t, err)

	listed, err := repo.ListByOrder(ctx, "o1")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, domain.StatusCancelled, listed[0].Status)

	_, err = repo.GetByID(ctx, "missing")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestIdempotencyStore_ConflictAndPurge(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	db, cleanup := setupShipmentsPostgresContainer(t)
	defer cleanup()

	ctx := context.Background()
	store := NewIdempotencyStore(db)
	old := time.Now().Add(-96 * time.Hour).UTC()

	_, err := store.Save(ctx, ports.IdempotencyRecord{Key: "k1", RequestHash: "h1", ShipmentID: "s1", CreatedAt: old, UpdatedAt: old})
	require.NoError(t, err)

	existing, err := store.Save(ctx, ports.IdempotencyRecord{Key: "k1", RequestHash: "h2", ShipmentID: "s2"})
	require.ErrorIs(t, err, ports.ErrIdempotencyConflict)
	assert.Equal(t, "s1", existing.ShipmentID)

	_, err = store.Save(ctx, ports.IdempotencyRecord{Key: "k2", RequestHash: "h3", ShipmentID: "s3", CreatedAt: time.Now().UTC()})
	require.NoError(t, err)

	purged, err := store.PurgeExpired(ctx, time.Now().Add(-72*time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, purged)

	gone, err := store.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Nil(t, gone)
}
