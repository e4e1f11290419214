// Package random provides the randomness source threaded through the
// simulation so that runs can be seeded and replayed.
package random

import (
	"math/rand"
	"time"
)

// Source is the subset of *rand.Rand the simulation draws from
type Source interface {
	// Float64 returns a number in [0.0, 1.0)
	Float64() float64
	// Intn returns a number in [0, n)
	Intn(n int) int
}

// New returns a Source seeded with seed. A zero seed is replaced by the
// current time.
func New(seed int64) Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Uniform returns a number in [lo, hi)
func Uniform(src Source, lo, hi float64) float64 {
	return lo + src.Float64()*(hi-lo)
}

// Bernoulli returns true with probability p
func Bernoulli(src Source, p float64) bool {
	return src.Float64() < p
}
