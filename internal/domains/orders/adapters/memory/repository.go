package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	catalogdomain "github.com/Apurer/storefront-admin/internal/domains/catalog/domain"
	"github.com/Apurer/storefront-admin/internal/domains/orders/domain"
	"github.com/Apurer/storefront-admin/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Inventory is the stock ledger the repository writes sales to on commit. RecordSales must
// apply either every sale or none.
type Inventory interface {
	HasVariant(ctx context.Context, productID, size string) (bool, error)
	RecordSales(ctx context.Context, sales []catalogdomain.Sale) error
}

// Repository is an in-memory order persistence adapter. Transactions are serialised and
// applied to clones, so a failed transaction leaves no trace.
type Repository struct {
	txMu      sync.Mutex
	mu        sync.RWMutex
	orders    map[string]*domain.Order
	inventory Inventory
}

func NewRepository(inventory Inventory) *Repository {
	return &Repository{orders: map[string]*domain.Order{}, inventory: inventory}
}

func (r *Repository) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.orders[order.ID]; exists {
		return nil, ports.ErrConcurrentUpdate
	}
	clone := order.Clone()
	clone.Version = 1
	r.orders[clone.ID] = clone
	return clone.Clone(), nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return order.Clone(), nil
}

func (r *Repository) List(_ context.Context, filter ports.ListFilter) ([]*domain.Order, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := make([]*domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		if matches(order, filter) {
			matched = append(matched, order)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	total := int64(len(matched))
	start := min(filter.Offset, len(matched))
	end := len(matched)
	if filter.Limit > 0 {
		end = min(start+filter.Limit, len(matched))
	}
	page := make([]*domain.Order, 0, end-start)
	for _, order := range matched[start:end] {
		page = append(page, order.Clone())
	}
	return page, total, nil
}

func (r *Repository) MarkSeen(_ context.Context, ids []string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var affected int64
	mark := func(order *domain.Order) {
		if order.IsNew {
			order.IsNew = false
			affected++
		}
	}
	if len(ids) == 0 {
		for _, order := range r.orders {
			mark(order)
		}
		return affected, nil
	}
	for _, id := range ids {
		if order, ok := r.orders[id]; ok {
			mark(order)
		}
	}
	return affected, nil
}

// InTx serialises fn against other transactions and commits staged orders and sales only
// when fn succeeds.
func (r *Repository) InTx(ctx context.Context, fn func(ctx context.Context, tx ports.Tx) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	tx := &memoryTx{repo: r, staged: map[string]*domain.Order{}}
	if err := fn(ctx, tx); err != nil {
		return err
	}

	if len(tx.sales) > 0 {
		if err := r.inventory.RecordSales(ctx, tx.sales); err != nil {
			return translateStockError(err)
		}
	}

	r.mu.Lock()
	for id, order := range tx.staged {
		r.orders[id] = order
	}
	r.mu.Unlock()
	return nil
}

type memoryTx struct {
	repo   *Repository
	staged map[string]*domain.Order
	sales  []catalogdomain.Sale
}

func (tx *memoryTx) GetForUpdate(ctx context.Context, id string) (*domain.Order, error) {
	if order, ok := tx.staged[id]; ok {
		return order.Clone(), nil
	}
	return tx.repo.GetByID(ctx, id)
}

func (tx *memoryTx) Save(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	tx.repo.mu.RLock()
	current, ok := tx.repo.orders[order.ID]
	tx.repo.mu.RUnlock()
	if !ok {
		return nil, ports.ErrNotFound
	}
	if staged, ok := tx.staged[order.ID]; ok {
		current = staged
	}
	if current.Version != order.Version {
		return nil, ports.ErrConcurrentUpdate
	}
	clone := order.Clone()
	clone.Version++
	tx.staged[clone.ID] = clone
	return clone.Clone(), nil
}

func (tx *memoryTx) RecordSale(ctx context.Context, productID, size string, quantity int) error {
	if tx.repo.inventory == nil {
		return ports.ErrUnknownVariant
	}
	ok, err := tx.repo.inventory.HasVariant(ctx, productID, size)
	if err != nil {
		return err
	}
	if !ok {
		return ports.ErrUnknownVariant
	}
	tx.sales = append(tx.sales, catalogdomain.Sale{ProductID: productID, Size: size, Quantity: quantity})
	return nil
}

func matches(order *domain.Order, filter ports.ListFilter) bool {
	if filter.Status != nil && order.Status != *filter.Status {
		return false
	}
	if filter.IsNew != nil && order.IsNew != *filter.IsNew {
		return false
	}
	if filter.Search == "" {
		return true
	}
	needle := strings.ToLower(filter.Search)
	for _, field := range []string{order.ID, order.CustomerName, order.CustomerEmail, order.CustomerPhone} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// translateStockError maps catalog stock errors onto the orders port vocabulary.
func translateStockError(err error) error {
	if errors.Is(err, catalogdomain.ErrUnknownVariant) {
		return ports.ErrUnknownVariant
	}
	return err
}
