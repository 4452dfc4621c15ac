package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/storefront-admin/internal/domains/warehouses/domain"
	"github.com/Apurer/storefront-admin/internal/domains/warehouses/ports"
)

var (
	// ErrInvalidInput signals a malformed warehouse request.
	ErrInvalidInput = errors.New("invalid warehouse input")
	// ErrConflict signals a clash with existing warehouses.
	ErrConflict = errors.New("warehouse conflict")
)

// Service orchestrates pickup location use cases.
type Service struct {
	repo      ports.Repository
	registrar ports.Registrar
	now       func() time.Time
}

// Option configures optional collaborators.
type Option func(*Service)

// WithRegistrar enables carrier registration. Without one, warehouses are stored unregistered.
func WithRegistrar(registrar ports.Registrar) Option {
	return func(s *Service) {
		s.registrar = registrar
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires the warehouses service.
func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.Service = (*Service)(nil)

// CreateWarehouse registers the pickup location with the carrier and stores it only on success.
func (s *Service) CreateWarehouse(ctx context.Context, input ports.WarehouseInput) (*domain.Warehouse, error) {
	warehouse := &domain.Warehouse{Active: true}
	apply(warehouse, input)
	warehouse.Normalize()
	if err := warehouse.Validate(); err != nil {
		return nil, mapError(err)
	}
	if err := s.ensureUniqueName(ctx, warehouse.Name, ""); err != nil {
		return nil, mapError(err)
	}
	if s.registrar != nil {
		if err := s.registrar.Register(ctx, warehouse); err != nil {
			return nil, err
		}
		warehouse.CarrierRegistered = true
	}
	now := s.now()
	warehouse.ID = uuid.NewString()
	warehouse.CreatedAt = now
	warehouse.UpdatedAt = now
	saved, err := s.repo.Save(ctx, warehouse)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// UpdateWarehouse applies edits and pushes them to the carrier when the warehouse is registered.
func (s *Service) UpdateWarehouse(ctx context.Context, id string, input ports.WarehouseInput) (*domain.Warehouse, error) {
	existing, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, mapError(err)
	}
	updated := *existing
	apply(&updated, input)
	updated.Normalize()
	if err := updated.Validate(); err != nil {
		return nil, mapError(err)
	}
	if updated.Name != existing.Name {
		if existing.CarrierRegistered {
			return nil, mapError(domain.ErrNameLocked)
		}
		if err := s.ensureUniqueName(ctx, updated.Name, existing.ID); err != nil {
			return nil, mapError(err)
		}
	}
	if s.registrar != nil {
		if updated.CarrierRegistered {
			err = s.registrar.Update(ctx, &updated)
		} else {
			err = s.registrar.Register(ctx, &updated)
		}
		if err != nil {
			return nil, err
		}
		updated.CarrierRegistered = true
	}
	updated.UpdatedAt = s.now()
	saved, err := s.repo.Save(ctx, &updated)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

func (s *Service) GetWarehouse(ctx context.Context, id string) (*domain.Warehouse, error) {
	warehouse, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, mapError(err)
	}
	return warehouse, nil
}

func (s *Service) ListWarehouses(ctx context.Context) ([]*domain.Warehouse, error) {
	warehouses, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return warehouses, nil
}

// DeleteWarehouse removes the local record only; the carrier keeps its registration.
func (s *Service) DeleteWarehouse(ctx context.Context, id string) error {
	return mapError(s.repo.Delete(ctx, strings.TrimSpace(id)))
}

func (s *Service) ensureUniqueName(ctx context.Context, name, selfID string) error {
	found, err := s.repo.GetByName(ctx, name)
	if errors.Is(err, ports.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if found.ID != selfID {
		return ports.ErrDuplicateName
	}
	return nil
}

func apply(w *domain.Warehouse, input ports.WarehouseInput) {
	set := func(target *string, value string) {
		if strings.TrimSpace(value) != "" {
			*target = value
		}
	}
	set(&w.Name, input.Name)
	set(&w.Phone, input.Phone)
	set(&w.Email, input.Email)
	set(&w.Address, input.Address)
	set(&w.City, input.City)
	set(&w.State, input.State)
	set(&w.Pin, input.Pin)
	set(&w.Country, input.Country)
	set(&w.ReturnAddress, input.ReturnAddress)
	set(&w.ReturnPin, input.ReturnPin)
	if input.Active != nil {
		w.Active = *input.Active
	}
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrMissingName) ||
		errors.Is(err, domain.ErrMissingPhone) ||
		errors.Is(err, domain.ErrMissingAddress) ||
		errors.Is(err, domain.ErrInvalidPin) ||
		errors.Is(err, domain.ErrNameLocked) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if errors.Is(err, ports.ErrDuplicateName) {
		return fmt.Errorf("%w: %w", ErrConflict, err)
	}
	return err
}
