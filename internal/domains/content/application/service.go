package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/storefront-admin/internal/domains/content/domain"
	"github.com/Apurer/storefront-admin/internal/domains/content/ports"
	"github.com/Apurer/storefront-admin/internal/shared/projection"
)

var (
	// ErrInvalidInput signals malformed content.
	ErrInvalidInput = errors.New("invalid content input")
	// ErrConflict signals a clash with stored content.
	ErrConflict = errors.New("content conflict")
)

// Service orchestrates storefront content use cases.
type Service struct {
	repo ports.Repository
	now  func() time.Time
}

// Option configures the service.
type Option func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires the content service.
func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.Service = (*Service)(nil)

func (s *Service) CreateHero(ctx context.Context, hero domain.HeroSection) (*domain.HeroSection, error) {
	hero.Normalize()
	if err := hero.Validate(); err != nil {
		return nil, mapError(err)
	}
	now := s.now()
	hero.ID = uuid.NewString()
	hero.CreatedAt = now
	hero.UpdatedAt = now
	saved, err := s.repo.SaveHero(ctx, &hero)
	return saved, mapError(err)
}

// UpdateHero replaces the editable fields of an existing slide.
func (s *Service) UpdateHero(ctx context.Context, id string, hero domain.HeroSection) (*domain.HeroSection, error) {
	existing, err := s.repo.GetHero(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, mapError(err)
	}
	hero.Normalize()
	if err := hero.Validate(); err != nil {
		return nil, mapError(err)
	}
	hero.ID = existing.ID
	hero.CreatedAt = existing.CreatedAt
	hero.UpdatedAt = s.now()
	saved, err := s.repo.SaveHero(ctx, &hero)
	return saved, mapError(err)
}

func (s *Service) GetHero(ctx context.Context, id string) (*domain.HeroSection, error) {
	hero, err := s.repo.GetHero(ctx, strings.TrimSpace(id))
	return hero, mapError(err)
}

func (s *Service) ListHeroes(ctx context.Context, activeOnly bool) ([]*domain.HeroSection, error) {
	heroes, err := s.repo.ListHeroes(ctx, activeOnly)
	return heroes, mapError(err)
}

func (s *Service) DeleteHero(ctx context.Context, id string) error {
	return mapError(s.repo.DeleteHero(ctx, strings.TrimSpace(id)))
}

func (s *Service) CreateSection(ctx context.Context, section domain.WebsiteSection) (*domain.WebsiteSection, error) {
	section.Normalize()
	if err := section.Validate(); err != nil {
		return nil, mapError(err)
	}
	if err := s.ensureUniqueSlug(ctx, section.Slug, ""); err != nil {
		return nil, mapError(err)
	}
	now := s.now()
	section.ID = uuid.NewString()
	section.CreatedAt = now
	section.UpdatedAt = now
	saved, err := s.repo.SaveSection(ctx, &section)
	return saved, mapError(err)
}

func (s *Service) UpdateSection(ctx context.Context, id string, section domain.WebsiteSection) (*domain.WebsiteSection, error) {
	existing, err := s.repo.GetSection(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, mapError(err)
	}
	if strings.TrimSpace(section.Slug) == "" {
		section.Slug = existing.Slug
	}
	section.Normalize()
	if err := section.Validate(); err != nil {
		return nil, mapError(err)
	}
	if err := s.ensureUniqueSlug(ctx, section.Slug, existing.ID); err != nil {
		return nil, mapError(err)
	}
	section.ID = existing.ID
	section.CreatedAt = existing.CreatedAt
	section.UpdatedAt = s.now()
	saved, err := s.repo.SaveSection(ctx, &section)
	return saved, mapError(err)
}

func (s *Service) GetSection(ctx context.Context, id string) (*domain.WebsiteSection, error) {
	section, err := s.repo.GetSection(ctx, strings.TrimSpace(id))
	return section, mapError(err)
}

func (s *Service) ListSections(ctx context.Context) ([]*domain.WebsiteSection, error) {
	sections, err := s.repo.ListSections(ctx)
	return sections, mapError(err)
}

func (s *Service) DeleteSection(ctx context.Context, id string) error {
	return mapError(s.repo.DeleteSection(ctx, strings.TrimSpace(id)))
}

// GetFooter returns the stored footer, or an empty one when none was saved yet.
func (s *Service) GetFooter(ctx context.Context) (*projection.Projection[*domain.Footer], error) {
	footer, err := s.repo.GetFooter(ctx)
	if errors.Is(err, ports.ErrNotFound) {
		return &projection.Projection[*domain.Footer]{Entity: &domain.Footer{}}, nil
	}
	return footer, mapError(err)
}

func (s *Service) PutFooter(ctx context.Context, footer domain.Footer) (*projection.Projection[*domain.Footer], error) {
	if err := footer.Validate(); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.PutFooter(ctx, &footer)
	return saved, mapError(err)
}

func (s *Service) GetPolicy(ctx context.Context, kind string) (*projection.Projection[*domain.Policy], error) {
	parsed, err := domain.ParsePolicyKind(kind)
	if err != nil {
		return nil, mapError(err)
	}
	policy, err := s.repo.GetPolicy(ctx, parsed)
	return policy, mapError(err)
}

func (s *Service) PutPolicy(ctx context.Context, kind string, policy domain.Policy) (*projection.Projection[*domain.Policy], error) {
	parsed, err := domain.ParsePolicyKind(kind)
	if err != nil {
		return nil, mapError(err)
	}
	policy.Kind = parsed
	policy.Title = strings.TrimSpace(policy.Title)
	if err := policy.Validate(); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.PutPolicy(ctx, &policy)
	return saved, mapError(err)
}

func (s *Service) ensureUniqueSlug(ctx context.Context, slug, selfID string) error {
	found, err := s.repo.GetSectionBySlug(ctx, slug)
	if errors.Is(err, ports.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if found.ID != selfID {
		return ports.ErrDuplicateSlug
	}
	return nil
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrMissingTitle) ||
		errors.Is(err, domain.ErrMissingImage) ||
		errors.Is(err, domain.ErrIncompleteCTA) ||
		errors.Is(err, domain.ErrInvalidSlug) ||
		errors.Is(err, domain.ErrInvalidLayout) ||
		errors.Is(err, domain.ErrInvalidPosition) ||
		errors.Is(err, domain.ErrInvalidLink) ||
		errors.Is(err, domain.ErrMissingBody) ||
		errors.Is(err, domain.ErrUnknownPolicy) ||
		errors.Is(err, domain.ErrTooManyProducts) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if errors.Is(err, ports.ErrDuplicateSlug) {
		return fmt.Errorf("%w: %w", ErrConflict, err)
	}
	return err
}
