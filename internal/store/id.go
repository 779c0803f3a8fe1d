package store

import "github.com/google/uuid"

// IDGenerator produces opaque record ids. Backends take one at construction
// so tests can substitute a deterministic sequence.
type IDGenerator func() string

// NewID is the production generator.
func NewID() string {
	return uuid.NewString()
}
