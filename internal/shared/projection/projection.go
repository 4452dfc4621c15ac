// Package projection pairs singleton storefront documents, such as the footer and the
// shipping and returns policies, with the timestamps their store recorded.
package projection

import "time"

// Metadata captures persistence timestamps shared by projections.
type Metadata struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Touch returns the metadata of a write at now. The first write also sets CreatedAt.
func (m Metadata) Touch(now time.Time) Metadata {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
	return m
}

// Projection is a stored document plus its persistence metadata.
type Projection[T any] struct {
	Entity   T
	Metadata Metadata
}
