package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/storefront-admin/internal/domains/content/adapters/memory"
	"github.com/Apurer/storefront-admin/internal/domains/content/domain"
	"github.com/Apurer/storefront-admin/internal/domains/content/ports"
)

func newTestService() *Service {
	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return NewService(memory.NewRepository(), WithClock(func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}))
}

func TestHeroLifecycle(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	second, err := svc.CreateHero(ctx, domain.HeroSection{Title: "Second", DesktopImage: "/2.png", Position: 2, Active: true})
	require.NoError(t, err)
	first, err := svc.CreateHero(ctx, domain.HeroSection{Title: "First", DesktopImage: "/1.png", Position: 1})
	require.NoError(t, err)

	all, err := svc.ListHeroes(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID)

	active, err := svc.ListHeroes(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, second.ID, active[0].ID)

	updated, err := svc.UpdateHero(ctx, first.ID, domain.HeroSection{Title: "First v2", DesktopImage: "/1b.png", Position: 3, Active: true})
	require.NoError(t, err)
	assert.Equal(t, first.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(first.UpdatedAt))

	_, err = svc.CreateHero(ctx, domain.HeroSection{Title: "No image"})
	require.ErrorIs(t, err, ErrInvalidInput)

	require.NoError(t, svc.DeleteHero(ctx, first.ID))
	_, err = svc.GetHero(ctx, first.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestSectionSlugUniqueness(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.CreateSection(ctx, domain.WebsiteSection{Title: "New In", ProductIDs: []string{"p1"}})
	require.NoError(t, err)
	assert.Equal(t, "new-in", created.Slug)

	_, err = svc.CreateSection(ctx, domain.WebsiteSection{Title: "Other", Slug: "new-in"})
	require.ErrorIs(t, err, ErrConflict)

	updated, err := svc.UpdateSection(ctx, created.ID, domain.WebsiteSection{Title: "New In", Layout: domain.LayoutCarousel})
	require.NoError(t, err)
	assert.Equal(t, "new-in", updated.Slug)
	assert.Equal(t, domain.LayoutCarousel, updated.Layout)

	other, err := svc.CreateSection(ctx, domain.WebsiteSection{Title: "Sale"})
	require.NoError(t, err)
	_, err = svc.UpdateSection(ctx, other.ID, domain.WebsiteSection{Title: "Sale", Slug: "new-in"})
	require.ErrorIs(t, err, ErrConflict)
}

func TestFooterAndPolicies(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	empty, err := svc.GetFooter(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty.Entity.Tagline)

	_, err = svc.PutFooter(ctx, domain.Footer{Socials: []domain.Link{{Label: "Instagram"}}})
	require.ErrorIs(t, err, ErrInvalidInput)

	saved, err := svc.PutFooter(ctx, domain.Footer{Tagline: "Handmade", Copyright: "2024"})
	require.NoError(t, err)
	assert.Equal(t, "Handmade", saved.Entity.Tagline)

	_, err = svc.GetPolicy(ctx, "shipping")
	require.ErrorIs(t, err, ports.ErrNotFound)

	_, err = svc.PutPolicy(ctx, "privacy", domain.Policy{Title: "x", Body: "y"})
	require.ErrorIs(t, err, ErrInvalidInput)

	policy, err := svc.PutPolicy(ctx, "Shipping", domain.Policy{Title: "Shipping", Body: "Ships in 2 days"})
	require.NoError(t, err)
	assert.Equal(t, domain.PolicyShipping, policy.Entity.Kind)

	fetched, err := svc.GetPolicy(ctx, "shipping")
	require.NoError(t, err)
	assert.Equal(t, "Ships in 2 days", fetched.Entity.Body)
}
