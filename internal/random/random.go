// Package random provides the bounded random draws used by the spawn cycle.
package random

import (
	"math/rand/v2"
	"time"
)

// Source yields uniform integers in [0, n). *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// New returns a deterministic source for the given seed.
func New(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewTime returns a source seeded from the wall clock.
func NewTime() *rand.Rand {
	return New(uint64(time.Now().UnixNano()))
}

// IntInclusive returns a uniform integer in [min, max].
// When min >= max the range collapses to min.
func IntInclusive(src Source, min, max int) int {
	if min >= max {
		return min
	}
	return min + src.IntN(max-min+1)
}

// DurationInclusive returns a uniform duration in [min, max] at millisecond granularity.
func DurationInclusive(src Source, min, max time.Duration) time.Duration {
	ms := IntInclusive(src, int(min/time.Millisecond), int(max/time.Millisecond))
	return time.Duration(ms) * time.Millisecond
}

// Pick returns a uniformly chosen element of items. items must not be empty.
func Pick[T any](src Source, items []T) T {
	return items[IntInclusive(src, 0, len(items)-1)]
}
