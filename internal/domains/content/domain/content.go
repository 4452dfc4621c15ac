package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

var (
	ErrMissingTitle     = errors.New("title is required")
	ErrMissingImage     = errors.New("desktop image is required")
	ErrIncompleteCTA    = errors.New("cta label and link must be set together")
	ErrInvalidSlug      = errors.New("slug must be lowercase letters, digits and dashes")
	ErrInvalidLayout    = errors.New("layout must be grid, carousel or banner")
	ErrInvalidPosition  = errors.New("position must not be negative")
	ErrInvalidLink      = errors.New("links need both label and url")
	ErrMissingBody      = errors.New("policy body is required")
	ErrUnknownPolicy    = errors.New("unknown policy kind")
	ErrTooManyProducts  = errors.New("a section holds at most 48 products")
	maxSectionProducts  = 48
	slugPattern         = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	slugInvalidSequence = regexp.MustCompile(`[^a-z0-9]+`)
)

// HeroSection is a homepage banner slide.
type HeroSection struct {
	ID           string
	Title        string
	Subtitle     string
	DesktopImage string
	MobileImage  string
	CTALabel     string
	CTALink      string
	Position     int
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Normalize trims fields and falls back to the desktop image on mobile.
func (h *HeroSection) Normalize() {
	h.Title = strings.TrimSpace(h.Title)
	h.Subtitle = strings.TrimSpace(h.Subtitle)
	h.DesktopImage = strings.TrimSpace(h.DesktopImage)
	h.MobileImage = strings.TrimSpace(h.MobileImage)
	h.CTALabel = strings.TrimSpace(h.CTALabel)
	h.CTALink = strings.TrimSpace(h.CTALink)
	if h.MobileImage == "" {
		h.MobileImage = h.DesktopImage
	}
}

func (h *HeroSection) Validate() error {
	switch {
	case h.Title == "":
		return ErrMissingTitle
	case h.DesktopImage == "":
		return ErrMissingImage
	case (h.CTALabel == "") != (h.CTALink == ""):
		return ErrIncompleteCTA
	case h.Position < 0:
		return ErrInvalidPosition
	}
	return nil
}

// Layout controls how a website section renders its products.
type Layout string

const (
	LayoutGrid     Layout = "grid"
	LayoutCarousel Layout = "carousel"
	LayoutBanner   Layout = "banner"
)

func (l Layout) Valid() bool {
	switch l {
	case LayoutGrid, LayoutCarousel, LayoutBanner:
		return true
	}
	return false
}

// WebsiteSection is a curated product strip on the storefront, addressed by slug.
type WebsiteSection struct {
	ID         string
	Slug       string
	Title      string
	Subtitle   string
	Layout     Layout
	ProductIDs []string
	Position   int
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Normalize derives a missing slug from the title, defaults the layout and drops
// duplicate product ids.
func (s *WebsiteSection) Normalize() {
	s.Title = strings.TrimSpace(s.Title)
	s.Subtitle = strings.TrimSpace(s.Subtitle)
	s.Slug = strings.ToLower(strings.TrimSpace(s.Slug))
	if s.Slug == "" {
		s.Slug = Slugify(s.Title)
	}
	if s.Layout == "" {
		s.Layout = LayoutGrid
	}
	s.Layout = Layout(strings.ToLower(string(s.Layout)))
	seen := make(map[string]struct{}, len(s.ProductIDs))
	ids := make([]string, 0, len(s.ProductIDs))
	for _, id := range s.ProductIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	s.ProductIDs = ids
}

func (s *WebsiteSection) Validate() error {
	switch {
	case s.Title == "":
		return ErrMissingTitle
	case !slugPattern.MatchString(s.Slug):
		return ErrInvalidSlug
	case !s.Layout.Valid():
		return ErrInvalidLayout
	case s.Position < 0:
		return ErrInvalidPosition
	case len(s.ProductIDs) > maxSectionProducts:
		return ErrTooManyProducts
	}
	return nil
}

// Slugify lowercases the input and collapses everything else into single dashes.
func Slugify(value string) string {
	slug := slugInvalidSequence.ReplaceAllString(strings.ToLower(value), "-")
	return strings.Trim(slug, "-")
}

// Link is a labelled URL.
type Link struct {
	Label string
	URL   string
}

// LinkColumn groups footer links under a heading.
type LinkColumn struct {
	Title string
	Links []Link
}

// Contact holds the store contact details shown in the footer.
type Contact struct {
	Email   string
	Phone   string
	Address string
}

// Footer is the site-wide footer configuration. There is exactly one.
type Footer struct {
	Tagline   string
	Columns   []LinkColumn
	Socials   []Link
	Contact   Contact
	Copyright string
}

func (f *Footer) Validate() error {
	for _, column := range f.Columns {
		if strings.TrimSpace(column.Title) == "" {
			return ErrMissingTitle
		}
		if err := validateLinks(column.Links); err != nil {
			return err
		}
	}
	return validateLinks(f.Socials)
}

func validateLinks(links []Link) error {
	for _, link := range links {
		if strings.TrimSpace(link.Label) == "" || strings.TrimSpace(link.URL) == "" {
			return ErrInvalidLink
		}
	}
	return nil
}

// PolicyKind identifies a storefront policy page.
type PolicyKind string

const (
	PolicyShipping PolicyKind = "shipping"
	PolicyReturns  PolicyKind = "returns"
)

// ParsePolicyKind accepts the kind case-insensitively.
func ParsePolicyKind(raw string) (PolicyKind, error) {
	switch PolicyKind(strings.ToLower(strings.TrimSpace(raw))) {
	case PolicyShipping:
		return PolicyShipping, nil
	case PolicyReturns:
		return PolicyReturns, nil
	}
	return "", ErrUnknownPolicy
}

// Policy is the editable content of a policy page.
type Policy struct {
	Kind  PolicyKind
	Title string
	Body  string
}

func (p *Policy) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return ErrMissingTitle
	}
	if strings.TrimSpace(p.Body) == "" {
		return ErrMissingBody
	}
	return nil
}
