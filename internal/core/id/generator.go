// Package id generates the intermediate identifiers used to stage files
// during a rename.
package id

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator returns a new identifier on every call.
type Generator interface {
	Generate() string
}

type uuidGenerator struct{}

// NewUUIDGenerator returns a Generator producing random (version 4) UUIDs in
// their canonical 36 character form.
func NewUUIDGenerator() Generator {
	return uuidGenerator{}
}

func (uuidGenerator) Generate() string {
	return uuid.New().String()
}

// sequentialGenerator generates predictable identifiers for tests
type sequentialGenerator struct {
	prefix  string
	counter uint64
}

// NewSequentialGenerator creates a Generator returning prefix-1, prefix-2, ...
func NewSequentialGenerator(prefix string) Generator {
	return &sequentialGenerator{prefix: prefix}
}

func (g *sequentialGenerator) Generate() string {
	count := atomic.AddUint64(&g.counter, 1)
	if g.prefix != "" {
		return fmt.Sprintf("%s-%d", g.prefix, count)
	}
	return fmt.Sprintf("%d", count)
}

// IsUUID reports whether s is a canonical UUID string, which is the shape of
// every staged name produced by NewUUIDGenerator.
func IsUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
