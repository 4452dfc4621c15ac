package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrMissingName     = errors.New("product name is required")
	ErrNoVariants      = errors.New("product must have at least one size variant")
	ErrDuplicateSize   = errors.New("product size variants must be unique")
	ErrNegativeStock   = errors.New("variant stock must not be negative")
	ErrNegativePrice   = errors.New("product price must not be negative")
	ErrUnknownVariant  = errors.New("product variant not found")
	ErrInvalidQuantity = errors.New("sale quantity must be greater than zero")
)

// Variant is one purchasable size of a product.
type Variant struct {
	Size  string
	Stock int
	Sold  int
}

// Sale is a quantity sold of one product size.
type Sale struct {
	ProductID string
	Size      string
	Quantity  int
}

// Product is the catalog entry referenced by order line items.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Images      []string
	Variants    []Variant
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate enforces catalog invariants.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrMissingName
	}
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}
	if len(p.Variants) == 0 {
		return ErrNoVariants
	}
	seen := make(map[string]struct{}, len(p.Variants))
	for _, v := range p.Variants {
		if v.Stock < 0 {
			return ErrNegativeStock
		}
		key := NormalizeSize(v.Size)
		if _, dup := seen[key]; dup {
			return ErrDuplicateSize
		}
		seen[key] = struct{}{}
	}
	return nil
}

// Variant looks up a size variant, case-insensitively.
func (p *Product) Variant(size string) (*Variant, bool) {
	key := NormalizeSize(size)
	for i := range p.Variants {
		if NormalizeSize(p.Variants[i].Size) == key {
			return &p.Variants[i], true
		}
	}
	return nil, false
}

// RecordSale moves quantity from stock to sold. Stock never drops below zero.
func (p *Product) RecordSale(size string, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	variant, ok := p.Variant(size)
	if !ok {
		return ErrUnknownVariant
	}
	variant.Stock -= quantity
	if variant.Stock < 0 {
		variant.Stock = 0
	}
	variant.Sold += quantity
	return nil
}

// TotalStock sums stock across variants.
func (p *Product) TotalStock() int {
	total := 0
	for _, v := range p.Variants {
		total += v.Stock
	}
	return total
}

// Clone returns a deep copy.
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	clone := *p
	clone.Images = append([]string(nil), p.Images...)
	clone.Variants = append([]Variant(nil), p.Variants...)
	return &clone
}

// NormalizeSize canonicalises a size label for comparisons.
func NormalizeSize(size string) string {
	return strings.ToUpper(strings.TrimSpace(size))
}
