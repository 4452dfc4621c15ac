package ports

import (
	"context"
	"errors"

	"github.com/Apurer/storefront-admin/internal/domains/content/domain"
	"github.com/Apurer/storefront-admin/internal/shared/projection"
)

var (
	ErrNotFound      = errors.New("content not found")
	ErrDuplicateSlug = errors.New("section slug already exists")
)

// HeroRepository persists hero slides.
type HeroRepository interface {
	SaveHero(ctx context.Context, hero *domain.HeroSection) (*domain.HeroSection, error)
	GetHero(ctx context.Context, id string) (*domain.HeroSection, error)
	// ListHeroes returns slides ordered by position, then creation time.
	ListHeroes(ctx context.Context, activeOnly bool) ([]*domain.HeroSection, error)
	DeleteHero(ctx context.Context, id string) error
}

// SectionRepository persists website sections.
type SectionRepository interface {
	SaveSection(ctx context.Context, section *domain.WebsiteSection) (*domain.WebsiteSection, error)
	GetSection(ctx context.Context, id string) (*domain.WebsiteSection, error)
	GetSectionBySlug(ctx context.Context, slug string) (*domain.WebsiteSection, error)
	ListSections(ctx context.Context) ([]*domain.WebsiteSection, error)
	DeleteSection(ctx context.Context, id string) error
}

// PageRepository persists singleton documents. Missing documents return ErrNotFound.
type PageRepository interface {
	GetFooter(ctx context.Context) (*projection.Projection[*domain.Footer], error)
	PutFooter(ctx context.Context, footer *domain.Footer) (*projection.Projection[*domain.Footer], error)
	GetPolicy(ctx context.Context, kind domain.PolicyKind) (*projection.Projection[*domain.Policy], error)
	PutPolicy(ctx context.Context, policy *domain.Policy) (*projection.Projection[*domain.Policy], error)
}

// Repository bundles every content store.
type Repository interface {
	HeroRepository
	SectionRepository
	PageRepository
}

// Service exposes storefront content use cases.
type Service interface {
	CreateHero(ctx context.Context, hero domain.HeroSection) (*domain.HeroSection, error)
	UpdateHero(ctx context.Context, id string, hero domain.HeroSection) (*domain.HeroSection, error)
	GetHero(ctx context.Context, id string) (*domain.HeroSection, error)
	ListHeroes(ctx context.Context, activeOnly bool) ([]*domain.HeroSection, error)
	DeleteHero(ctx context.Context, id string) error

	CreateSection(ctx context.Context, section domain.WebsiteSection) (*domain.WebsiteSection, error)
	UpdateSection(ctx context.Context, id string, section domain.WebsiteSection) (*domain.WebsiteSection, error)
	GetSection(ctx context.Context, id string) (*domain.WebsiteSection, error)
	ListSections(ctx context.Context) ([]*domain.WebsiteSection, error)
	DeleteSection(ctx context.Context, id string) error

	GetFooter(ctx context.Context) (*projection.Projection[*domain.Footer], error)
	PutFooter(ctx context.Context, footer domain.Footer) (*projection.Projection[*domain.Footer], error)
	GetPolicy(ctx context.Context, kind string) (*projection.Projection[*domain.Policy], error)
	PutPolicy(ctx context.Context, kind string, policy domain.Policy) (*projection.Projection[*domain.Policy], error)
}
