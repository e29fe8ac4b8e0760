// Package ident provides collision-free id generators for store records.
package ident

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// Sequence hands out strictly increasing decimal ids starting after its
// initial value.
type Sequence struct {
	n atomic.Uint64
}

// NewSequence creates a Sequence whose first id is start+1.
func NewSequence(start uint64) *Sequence {
	s := &Sequence{}
	s.n.Store(start)
	return s
}

// NewID returns the next id.
func (s *Sequence) NewID() string {
	return strconv.FormatUint(s.n.Add(1), 10)
}

// UUID generates time-ordered UUIDv7 ids.
type UUID struct{}

// NewID returns a fresh UUID. It falls back to a random v4 id if the v7
// generator fails.
func (UUID) NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
