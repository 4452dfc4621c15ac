package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/Apurer/storefront-admin/internal/domains/warehouses/domain"
	"github.com/Apurer/storefront-admin/internal/domains/warehouses/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps warehouses in process memory.
type Repository struct {
	mu         sync.RWMutex
	warehouses map[string]domain.Warehouse
}

// NewRepository constructs an empty repository.
func NewRepository() *Repository {
	return &Repository{warehouses: map[string]domain.Warehouse{}}
}

func (r *Repository) Save(_ context.Context, warehouse *domain.Warehouse) (*domain.Warehouse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, existing := range r.warehouses {
		if id != warehouse.ID && strings.EqualFold(existing.Name, warehouse.Name) {
			return nil, ports.ErrDuplicateName
		}
	}
	r.warehouses[warehouse.ID] = *warehouse
	saved := *warehouse
	return &saved, nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Warehouse, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	warehouse, ok := r.warehouses[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &warehouse, nil
}

func (r *Repository) GetByName(_ context.Context, name string) (*domain.Warehouse, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, warehouse := range r.warehouses {
		if strings.EqualFold(warehouse.Name, name) {
			found := warehouse
			return &found, nil
		}
	}
	return nil, ports.ErrNotFound
}

// List returns warehouses ordered by name.
func (r *Repository) List(_ context.Context) ([]*domain.Warehouse, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*domain.Warehouse, 0, len(r.warehouses))
	for _, warehouse := range r.warehouses {
		w := warehouse
		result = append(result, &w)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.warehouses[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.warehouses, id)
	return nil
}
