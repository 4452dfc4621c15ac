package projection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetadataTouch(t *testing.T) {
	first := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	created := Metadata{}.Touch(first)
	assert.Equal(t, first, created.CreatedAt)
	assert.Equal(t, first, created.UpdatedAt)

	later := first.Add(time.Hour)
	updated := created.Touch(later)
	assert.Equal(t, first, updated.CreatedAt)
	assert.Equal(t, later, updated.UpdatedAt)
}
