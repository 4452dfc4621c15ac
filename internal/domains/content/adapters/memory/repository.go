package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Apurer/storefront-admin/internal/domains/content/domain"
	"github.com/Apurer/storefront-admin/internal/domains/content/ports"
	"github.com/Apurer/storefront-admin/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps storefront content in process memory.
type Repository struct {
	mu       sync.RWMutex
	heroes   map[string]domain.HeroSection
	sections map[string]domain.WebsiteSection
	footer   *projection.Projection[domain.Footer]
	policies map[domain.PolicyKind]projection.Projection[domain.Policy]
}

// NewRepository constructs an empty repository.
func NewRepository() *Repository {
	return &Repository{
		heroes:   map[string]domain.HeroSection{},
		sections: map[string]domain.WebsiteSection{},
		policies: map[domain.PolicyKind]projection.Projection[domain.Policy]{},
	}
}

func (r *Repository) SaveHero(_ context.Context, hero *domain.HeroSection) (*domain.HeroSection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.heroes[hero.ID] = *hero
	saved := *hero
	return &saved, nil
}

func (r *Repository) GetHero(_ context.Context, id string) (*domain.HeroSection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	hero, ok := r.heroes[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &hero, nil
}

func (r *Repository) ListHeroes(_ context.Context, activeOnly bool) ([]*domain.HeroSection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*domain.HeroSection, 0, len(r.heroes))
	for _, hero := range r.heroes {
		if activeOnly && !hero.Active {
			continue
		}
		h := hero
		result = append(result, &h)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Position != result[j].Position {
			return result[i].Position < result[j].Position
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *Repository) DeleteHero(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.heroes[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.heroes, id)
	return nil
}

func (r *Repository) SaveSection(_ context.Context, section *domain.WebsiteSection) (*domain.WebsiteSection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, existing := range r.sections {
		if id != section.ID && existing.Slug == section.Slug {
			return nil, ports.ErrDuplicateSlug
		}
	}
	stored := *section
	stored.ProductIDs = append([]string(nil), section.ProductIDs...)
	r.sections[section.ID] = stored
	return cloneSection(stored), nil
}

func (r *Repository) GetSection(_ context.Context, id string) (*domain.WebsiteSection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	section, ok := r.sections[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneSection(section), nil
}

func (r *Repository) GetSectionBySlug(_ context.Context, slug string) (*domain.WebsiteSection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, section := range r.sections {
		if section.Slug == slug {
			return cloneSection(section), nil
		}
	}
	return nil, ports.ErrNotFound
}

// ListSections returns sections ordered by position, then slug.
func (r *Repository) ListSections(_ context.Context) ([]*domain.WebsiteSection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*domain.WebsiteSection, 0, len(r.sections))
	for _, section := range r.sections {
		result = append(result, cloneSection(section))
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Position != result[j].Position {
			return result[i].Position < result[j].Position
		}
		return result[i].Slug < result[j].Slug
	})
	return result, nil
}

func (r *Repository) DeleteSection(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sections[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.sections, id)
	return nil
}

func (r *Repository) GetFooter(_ context.Context) (*projection.Projection[*domain.Footer], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.footer == nil {
		return nil, ports.ErrNotFound
	}
	footer := r.footer.Entity
	return &projection.Projection[*domain.Footer]{Entity: &footer, Metadata: r.footer.Metadata}, nil
}

func (r *Repository) PutFooter(_ context.Context, footer *domain.Footer) (*projection.Projection[*domain.Footer], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var previous projection.Metadata
	if r.footer != nil {
		previous = r.footer.Metadata
	}
	meta := previous.Touch(time.Now().UTC())
	r.footer = &projection.Projection[domain.Footer]{Entity: *footer, Metadata: meta}
	saved := *footer
	return &projection.Projection[*domain.Footer]{Entity: &saved, Metadata: meta}, nil
}

func (r *Repository) GetPolicy(_ context.Context, kind domain.PolicyKind) (*projection.Projection[*domain.Policy], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.policies[kind]
	if !ok {
		return nil, ports.ErrNotFound
	}
	policy := stored.Entity
	return &projection.Projection[*domain.Policy]{Entity: &policy, Metadata: stored.Metadata}, nil
}

func (r *Repository) PutPolicy(_ context.Context, policy *domain.Policy) (*projection.Projection[*domain.Policy], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	meta := r.policies[policy.Kind].Metadata.Touch(time.Now().UTC())
	r.policies[policy.Kind] = projection.Projection[domain.Policy]{Entity: *policy, Metadata: meta}
	saved := *policy
	return &projection.Projection[*domain.Policy]{Entity: &saved, Metadata: meta}, nil
}

func cloneSection(section domain.WebsiteSection) *domain.WebsiteSection {
	section.ProductIDs = append([]string(nil), section.ProductIDs...)
	return &section
}
