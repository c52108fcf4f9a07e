// Package ident provides identifier generation for domain records.
package ident

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator produces unique identifiers for new records.
type Generator interface {
	NewID() string
}

// UUID generates random version 4 UUIDs. The zero value is ready to use.
type UUID struct{}

// NewID returns a fresh UUIDv4 string.
func (UUID) NewID() string {
	return uuid.NewString()
}

// Sequence generates deterministic identifiers of the form <prefix><n>,
// starting at 1. It is safe for concurrent use and intended for fixtures and
// tests where stable identifiers matter.
type Sequence struct {
	Prefix string
	n      atomic.Uint64
}

// NewID returns the next identifier in the sequence.
func (s *Sequence) NewID() string {
	return fmt.Sprintf("%s%d", s.Prefix, s.n.Add(1))
}
