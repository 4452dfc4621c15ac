package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSale_FloorsStockAtZero(t *testing.T) {
	product := &Product{Name: "Tee", Variants: []Variant{{Size: "M", Stock: 2}}}

	require.NoError(t, product.RecordSale("m", 5))
	variant, ok := product.Variant("M")
	require.True(t, ok)
	assert.Equal(t, 0, variant.Stock)
	assert.Equal(t, 5, variant.Sold)
}

func TestRecordSale_Errors(t *testing.T) {
	product := &Product{Name: "Tee", Variants: []Variant{{Size: "M", Stock: 2}}}
	require.ErrorIs(t, product.RecordSale("XL", 1), ErrUnknownVariant)
	require.ErrorIs(t, product.RecordSale("M", 0), ErrInvalidQuantity)
}

func TestProductValidate(t *testing.T) {
	product := &Product{Name: "Tee", Price: decimal.NewFromInt(499), Variants: []Variant{{Size: "S"}, {Size: "M"}}}
	require.NoError(t, product.Validate())

	product.Variants = append(product.Variants, Variant{Size: " m "})
	require.ErrorIs(t, product.Validate(), ErrDuplicateSize)

	product.Variants = nil
	require.ErrorIs(t, product.Validate(), ErrNoVariants)

	product = &Product{Variants: []Variant{{Size: "S"}}}
	require.ErrorIs(t, product.Validate(), ErrMissingName)
}
