package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Apurer/storefront-admin/internal/domains/shipments/domain"
	"github.com/Apurer/storefront-admin/internal/domains/shipments/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps shipments in process memory.
type Repository struct {
	mu        sync.RWMutex
	shipments map[string]*domain.Shipment
	waybills  map[string]string
}

// NewRepository constructs an empty repository.
func NewRepository() *Repository {
	return &Repository{
		shipments: map[string]*domain.Shipment{},
		waybills:  map[string]string{},
	}
}

// Save inserts or replaces the shipment and indexes all of its waybills.
func (r *Repository) Save(_ context.Context, shipment *domain.Shipment) (*domain.Shipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if previous, ok := r.shipments[shipment.ID]; ok {
		for _, waybill := range previous.Waybills {
			delete(r.waybills, waybill)
		}
	}
	stored := shipment.Clone()
	r.shipments[stored.ID] = stored
	for _, waybill := range stored.Waybills {
		r.waybills[waybill] = stored.ID
	}
	return stored.Clone(), nil
}

// GetByID loads a shipment by identifier.
func (r *Repository) GetByID(_ context.Context, id string) (*domain.Shipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	shipment, ok := r.shipments[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return shipment.Clone(), nil
}

// GetByWaybill loads the shipment owning the waybill.
func (r *Repository) GetByWaybill(_ context.Context, waybill string) (*domain.Shipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.waybills[waybill]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return r.shipments[id].Clone(), nil
}

// ListByOrder returns the shipments of an order, oldest first.
func (r *Repository) ListByOrder(_ context.Context, orderID string) ([]*domain.Shipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*domain.Shipment, 0)
	for _, shipment := range r.shipments {
		if shipment.OrderID == orderID {
			result = append(result, shipment.Clone())
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}
