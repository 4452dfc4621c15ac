package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Apurer/storefront-admin/internal/domains/catalog/domain"
	"github.com/Apurer/storefront-admin/internal/domains/catalog/ports"
)

// ErrInvalidInput signals the product payload violated catalog invariants.
var ErrInvalidInput = errors.New("invalid product input")

// Service orchestrates catalog use cases.
type Service struct {
	repo ports.Repository
	now  func() time.Time
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// SaveProduct creates a product when ID is empty, otherwise replaces it and keeps CreatedAt.
func (s *Service) SaveProduct(ctx context.Context, input ports.SaveProductInput) (*domain.Product, error) {
	price := decimal.Zero
	if strings.TrimSpace(input.Price) != "" {
		parsed, err := decimal.NewFromString(strings.TrimSpace(input.Price))
		if err != nil {
			return nil, fmt.Errorf("%w: price: %w", ErrInvalidInput, err)
		}
		price = parsed
	}
	now := s.now()
	product := &domain.Product{
		ID:          strings.TrimSpace(input.ID),
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Price:       price,
		Images:      input.Images,
		Variants:    input.Variants,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if product.ID == "" {
		product.ID = uuid.NewString()
	} else {
		existing, err := s.repo.GetByID(ctx, product.ID)
		switch {
		case err == nil:
			product.CreatedAt = existing.CreatedAt
		case !errors.Is(err, ports.ErrNotFound):
			return nil, err
		}
	}
	if err := product.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return s.repo.Save(ctx, product)
}

func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.List(ctx)
}

var _ ports.Service = (*Service)(nil)
