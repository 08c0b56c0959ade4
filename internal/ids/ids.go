// Package ids generates identifiers for tasks and tags.
package ids

import "github.com/google/uuid"

// Generator produces unique string identifiers
type Generator interface {
	NewID() string
}

// UUID generates random version 4 UUIDs
type UUID struct{}

// NewID returns a fresh UUID string
func (UUID) NewID() string {
	return uuid.NewString()
}

// Func adapts a plain function to the Generator interface
type Func func() string

// NewID calls f
func (f Func) NewID() string {
	return f()
}
