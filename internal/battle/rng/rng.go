// Package rng provides the random sources consumed by the battle engine.
//
// Every random decision in a battle (accuracy, critical hits, damage rolls,
// status gating, flee and capture checks) is drawn from a Source. Battles never
// touch the global math/rand state, so two battles built with the same seed and
// fed the same actions produce the same transcript regardless of what other
// battles run concurrently.
package rng

import (
	"errors"
	"math/rand"
)

// ErrInvalidRange indicates a range whose upper bound is below its lower bound.
var ErrInvalidRange = errors.New("max must be greater than or equal to min")

// Source is the random source used by a single battle.
//
// Intn returns a value in [0, n) and must return 0 when n <= 0.
// Float64 returns a value in [0, 1).
type Source interface {
	Intn(n int) int
	Float64() float64
}

// Rand is a Source backed by a seeded math/rand generator.
//
// # Determinism
//
// Rand is deterministic with respect to its seed. Given the same seed and the
// same sequence of calls, Rand returns the same values.
type Rand struct {
	seed int64
	r    *rand.Rand
}

// New returns a Rand seeded with seed.
func New(seed int64) *Rand {
	return &Rand{seed: seed, r: rand.New(rand.NewSource(seed))}
}

// Seed returns the seed the source was created with.
func (r *Rand) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative value in [0, n).
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.Intn(n)
}

// Float64 returns a value in [0, 1).
func (r *Rand) Float64() float64 {
	return r.r.Float64()
}

// Range returns a value in [min, max] inclusive.
func Range(src Source, min, max int) int {
	if max <= min {
		return min
	}
	return min + src.Intn(max-min+1)
}

// CheckedRange returns a value in [min, max] or ErrInvalidRange.
func CheckedRange(src Source, min, max int) (int, error) {
	if max < min {
		return 0, ErrInvalidRange
	}
	return Range(src, min, max), nil
}

// Chance reports whether an event with probability p happens.
func Chance(src Source, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return src.Float64() < p
}

// Percent reports whether an event with percent chance happens.
func Percent(src Source, percent int) bool {
	if percent >= 100 {
		return true
	}
	if percent <= 0 {
		return false
	}
	return src.Intn(100) < percent
}

// Pick returns a random index into a collection of length n, or -1 when n is zero.
func Pick(src Source, n int) int {
	if n <= 0 {
		return -1
	}
	return src.Intn(n)
}
