// Package rng is the VM's seedable random source: rand() in [0,1), srand
// reseeding with an observable previous seed, and reseeding from system
// entropy.
package rng

import (
	"crypto/rand"
	"encoding/binary"
	"math"
	mathrand "math/rand"
)

// Source is a seedable PRNG whose current seed is observable, matching
// the "Random source" component contract.
type Source struct {
	seed int64
	r    *mathrand.Rand
}

// New returns a Source seeded with 0, the implicit starting seed before
// any BEGIN-block srand() call runs.
func New() *Source {
	return &Source{seed: 0, r: mathrand.New(mathrand.NewSource(0))}
}

// Float64 returns the next value in [0, 1).
func (s *Source) Float64() float64 {
	return s.r.Float64()
}

// Seed returns the currently active seed.
func (s *Source) Seed() int64 {
	return s.seed
}

// Reseed sets a new seed and returns the previously active one.
func (s *Source) Reseed(seed int64) int64 {
	prev := s.seed
	s.seed = seed
	s.r = mathrand.New(mathrand.NewSource(seed))
	return prev
}

// ReseedFromEntropy draws a fresh seed from a system entropy source and
// returns the previously active seed.
func (s *Source) ReseedFromEntropy() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand failing is effectively unrecoverable host state;
		// fall back to a time-independent but still distinct seed.
		return s.Reseed(int64(math.Float64bits(s.r.Float64())))
	}
	return s.Reseed(int64(binary.LittleEndian.Uint64(buf[:])))
}
