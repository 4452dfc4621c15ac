package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/storefront-admin/internal/domains/warehouses/domain"
	"github.com/Apurer/storefront-admin/internal/domains/warehouses/ports"
)

func TestRepository_NameIsUniqueIgnoringCase(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	_, err := repo.Save(ctx, &domain.Warehouse{ID: "w1", Name: "Pune Hub"})
	require.NoError(t, err)
	_, err = repo.Save(ctx, &domain.Warehouse{ID: "w2", Name: "pune hub"})
	require.ErrorIs(t, err, ports.ErrDuplicateName)

	found, err := repo.GetByName(ctx, "PUNE HUB")
	require.NoError(t, err)
	assert.Equal(t, "w1", found.ID)

	_, err = repo.Save(ctx, &domain.Warehouse{ID: "w1", Name: "Pune Hub", Phone: "1"})
	require.NoError(t, err)
}

func TestRepository_ListSortedAndDelete(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	for _, w := range []domain.Warehouse{{ID: "b", Name: "Bengaluru"}, {ID: "a", Name: "Ahmedabad"}} {
		_, err := repo.Save(ctx, &w)
		require.NoError(t, err)
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Ahmedabad", all[0].Name)

	require.NoError(t, repo.Delete(ctx, "a"))
	require.ErrorIs(t, repo.Delete(ctx, "a"), ports.ErrNotFound)
	_, err = repo.GetByID(ctx, "a")
	require.ErrorIs(t, err, ports.ErrNotFound)
}
