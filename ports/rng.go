package ports

import (
	"math/rand"
)

// RNG provides seeded random number generation for deterministic operations.
// Isolation-forest tree construction draws from an injected RNG so tests
// can reproduce results exactly (spec.md §9). Identifier generation does
// not use it: prefixed ids come from crypto/rand (domain/core).
type RNG interface {
	// Stream returns a deterministic generator for a named operation, so the
	// same name+seed pair always replays the same sequence of splits.
	Stream(name string, seed int64) *rand.Rand
}

// SystemRNG is the default RNG backed by math/rand, seeded per stream name.
type SystemRNG struct{}

// Stream returns a new *rand.Rand seeded deterministically from name and seed.
func (SystemRNG) Stream(name string, seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed + int64(fnv32(name))))
}

// fnv32 folds a stream name into the seed so distinct named streams (e.g.
// "isolation-forest-tree-7") don't collide even when callers pass the same
// base seed.
func fnv32(s string) uint32 {
	const (
		offset32 = 2166136261
		prime32  = 16777619
	)
	h := uint32(offset32)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= prime32
	}
	return h
}
