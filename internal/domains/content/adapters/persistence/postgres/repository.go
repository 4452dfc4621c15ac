package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/storefront-admin/internal/domains/content/domain"
	"github.com/Apurer/storefront-admin/internal/domains/content/ports"
	"github.com/Apurer/storefront-admin/internal/shared/projection"
)

const footerKey = "footer"

var _ ports.Repository = (*Repository)(nil)

// Repository persists storefront content in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// HeroSectionRecord maps a hero slide to the hero_sections table.
type HeroSectionRecord struct {
	ID           string    `gorm:"primaryKey;column:id;type:varchar(64)"`
	Title        string    `gorm:"column:title;not null"`
	Subtitle     string    `gorm:"column:subtitle"`
	DesktopImage string    `gorm:"column:desktop_image;not null"`
	MobileImage  string    `gorm:"column:mobile_image"`
	CTALabel     string    `gorm:"column:cta_label"`
	CTALink      string    `gorm:"column:cta_link"`
	Position     int       `gorm:"column:position;index"`
	Active       bool      `gorm:"column:active;index"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (HeroSectionRecord) TableName() string { return "hero_sections" }

// WebsiteSectionRecord maps a curated section to the website_sections table.
type WebsiteSectionRecord struct {
	ID         string         `gorm:"primaryKey;column:id;type:varchar(64)"`
	Slug       string         `gorm:"column:slug;uniqueIndex;not null"`
	Title      string         `gorm:"column:title;not null"`
	Subtitle   string         `gorm:"column:subtitle"`
	Layout     string         `gorm:"column:layout;type:varchar(16)"`
	ProductIDs pq.StringArray `gorm:"column:product_ids;type:text[]"`
	Position   int            `gorm:"column:position;index"`
	Active     bool           `gorm:"column:active"`
	CreatedAt  time.Time      `gorm:"column:created_at"`
	UpdatedAt  time.Time      `gorm:"column:updated_at"`
}

func (WebsiteSectionRecord) TableName() string { return "website_sections" }

// PageRecord stores a singleton document as JSON under a fixed key.
type PageRecord struct {
	Key       string    `gorm:"primaryKey;column:key;type:varchar(64)"`
	Payload   []byte    `gorm:"column:payload;type:jsonb"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (PageRecord) TableName() string { return "content_pages" }

// PolicyRecord stores a policy page per kind.
type PolicyRecord struct {
	Kind      string    `gorm:"primaryKey;column:kind;type:varchar(32)"`
	Title     string    `gorm:"column:title"`
	Body      string    `gorm:"column:body;type:text"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (PolicyRecord) TableName() string { return "policies" }

func (r *Repository) SaveHero(ctx context.Context, hero *domain.HeroSection) (*domain.HeroSection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record := heroToRecord(hero)
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&record).Error; err != nil {
		return nil, err
	}
	return heroToDomain(&record), nil
}

func (r *Repository) GetHero(ctx context.Context, id string) (*domain.HeroSection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record HeroSectionRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return heroToDomain(&record), nil
}

func (r *Repository) ListHeroes(ctx context.Context, activeOnly bool) ([]*domain.HeroSection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Order("position ASC").Order("created_at ASC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	var records []HeroSectionRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	result := make([]*domain.HeroSection, 0, len(records))
	for i := range records {
		result = append(result, heroToDomain(&records[i]))
	}
	return result, nil
}

func (r *Repository) DeleteHero(ctx context.Context, id string) error {
	return r.deleteByID(ctx, &HeroSectionRecord{}, id)
}

func (r *Repository) SaveSection(ctx context.Context, section *domain.WebsiteSection) (*domain.WebsiteSection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record := sectionToRecord(section)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrDuplicateSlug
		}
		return nil, err
	}
	return sectionToDomain(&record), nil
}

func (r *Repository) GetSection(ctx context.Context, id string) (*domain.WebsiteSection, error) {
	return r.firstSection(ctx, "id = ?", id)
}

func (r *Repository) GetSectionBySlug(ctx context.Context, slug string) (*domain.WebsiteSection, error) {
	return r.firstSection(ctx, "slug = ?", slug)
}

func (r *Repository) ListSections(ctx context.Context) ([]*domain.WebsiteSection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []WebsiteSectionRecord
	if err := r.db.WithContext(ctx).Order("position ASC").Order("slug ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	result := make([]*domain.WebsiteSection, 0, len(records))
	for i := range records {
		result = append(result, sectionToDomain(&records[i]))
	}
	return result, nil
}

func (r *Repository) DeleteSection(ctx context.Context, id string) error {
	return r.deleteByID(ctx, &WebsiteSectionRecord{}, id)
}

func (r *Repository) GetFooter(ctx context.Context) (*projection.Projection[*domain.Footer], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record PageRecord
	if err := r.db.WithContext(ctx).First(&record, "key = ?", footerKey).Error; err != nil {
		return nil, notFound(err)
	}
	var footer domain.Footer
	if err := json.Unmarshal(record.Payload, &footer); err != nil {
		return nil, err
	}
	return &projection.Projection[*domain.Footer]{
		Entity:   &footer,
		Metadata: projection.Metadata{CreatedAt: record.CreatedAt, UpdatedAt: record.UpdatedAt},
	}, nil
}

func (r *Repository) PutFooter(ctx context.Context, footer *domain.Footer) (*projection.Projection[*domain.Footer], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	payload, err := json.Marshal(footer)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	record := PageRecord{Key: footerKey, Payload: payload, CreatedAt: now, UpdatedAt: now}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetFooter(ctx)
}

func (r *Repository) GetPolicy(ctx context.Context, kind domain.PolicyKind) (*projection.Projection[*domain.Policy], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record PolicyRecord
	if err := r.db.WithContext(ctx).First(&record, "kind = ?", string(kind)).Error; err != nil {
		return nil, notFound(err)
	}
	return &projection.Projection[*domain.Policy]{
		Entity:   &domain.Policy{Kind: domain.PolicyKind(record.Kind), Title: record.Title, Body: record.Body},
		Metadata: projection.Metadata{CreatedAt: record.CreatedAt, UpdatedAt: record.UpdatedAt},
	}, nil
}

func (r *Repository) PutPolicy(ctx context.Context, policy *domain.Policy) (*projection.Projection[*domain.Policy], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	record := PolicyRecord{Kind: string(policy.Kind), Title: policy.Title, Body: policy.Body, CreatedAt: now, UpdatedAt: now}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "kind"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "body", "updated_at"}),
	}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetPolicy(ctx, policy.Kind)
}

func (r *Repository) firstSection(ctx context.Context, query string, args ...any) (*domain.WebsiteSection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record WebsiteSectionRecord
	if err := r.db.WithContext(ctx).Where(query, args...).First(&record).Error; err != nil {
		return nil, notFound(err)
	}
	return sectionToDomain(&record), nil
}

func (r *Repository) deleteByID(ctx context.Context, model any, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(model, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres repository not configured")
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.ErrNotFound
	}
	return err
}

func heroToRecord(h *domain.HeroSection) HeroSectionRecord {
	return HeroSectionRecord{
		ID:           h.ID,
		Title:        h.Title,
		Subtitle:     h.Subtitle,
		DesktopImage: h.DesktopImage,
		MobileImage:  h.MobileImage,
		CTALabel:     h.CTALabel,
		CTALink:      h.CTALink,
		Position:     h.Position,
		Active:       h.Active,
		CreatedAt:    h.CreatedAt,
		UpdatedAt:    h.UpdatedAt,
	}
}

func heroToDomain(rec *HeroSectionRecord) *domain.HeroSection {
	return &domain.HeroSection{
		ID:           rec.ID,
		Title:        rec.Title,
		Subtitle:     rec.Subtitle,
		DesktopImage: rec.DesktopImage,
		MobileImage:  rec.MobileImage,
		CTALabel:     rec.CTALabel,
		CTALink:      rec.CTALink,
		Position:     rec.Position,
		Active:       rec.Active,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}
}

func sectionToRecord(s *domain.WebsiteSection) WebsiteSectionRecord {
	return WebsiteSectionRecord{
		ID:         s.ID,
		Slug:       s.Slug,
		Title:      s.Title,
		Subtitle:   s.Subtitle,
		Layout:     string(s.Layout),
		ProductIDs: pq.StringArray(s.ProductIDs),
		Position:   s.Position,
		Active:     s.Active,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func sectionToDomain(rec *WebsiteSectionRecord) *domain.WebsiteSection {
	return &domain.WebsiteSection{
		ID:         rec.ID,
		Slug:       rec.Slug,
		Title:      rec.Title,
		Subtitle:   rec.Subtitle,
		Layout:     domain.Layout(rec.Layout),
		ProductIDs: append([]string(nil), rec.ProductIDs...),
		Position:   rec.Position,
		Active:     rec.Active,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	}
}
