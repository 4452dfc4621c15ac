package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Apurer/storefront-admin/internal/domains/catalog/domain"
	"github.com/Apurer/storefront-admin/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory catalog persistence adapter.
type Repository struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
}

func NewRepository() *Repository {
	return &Repository{products: map[string]*domain.Product{}}
}

func (r *Repository) Save(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[product.ID] = product.Clone()
	return product.Clone(), nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return product.Clone(), nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Product, 0, len(r.products))
	for _, product := range r.products {
		list = append(list, product.Clone())
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (r *Repository) RecordSale(_ context.Context, productID, size string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[productID]
	if !ok {
		return domain.ErrUnknownVariant
	}
	return product.RecordSale(size, quantity)
}

// RecordSales applies every sale or none of them.
func (r *Repository) RecordSales(_ context.Context, sales []domain.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	touched := map[string]*domain.Product{}
	for _, sale := range sales {
		product, ok := touched[sale.ProductID]
		if !ok {
			current, found := r.products[sale.ProductID]
			if !found {
				return domain.ErrUnknownVariant
			}
			product = current.Clone()
			touched[sale.ProductID] = product
		}
		if err := product.RecordSale(sale.Size, sale.Quantity); err != nil {
			return err
		}
	}
	for id, product := range touched {
		r.products[id] = product
	}
	return nil
}

// HasVariant reports whether the product carries the given size.
func (r *Repository) HasVariant(_ context.Context, productID, size string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[productID]
	if !ok {
		return false, nil
	}
	_, found := product.Variant(size)
	return found, nil
}
