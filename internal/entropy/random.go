// Package entropy provides the seedable random source injected into every
// stochastic subsystem (mutation assignment, sex assignment, fallback
// movement, initial placement). A fixed seed makes a whole run
// reproducible.
package entropy

import (
	"math/rand"
	"sync"
)

// Source wraps a seeded PRNG behind a mutex so the HTTP observation
// server and the turn loop can share it safely.
type Source struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSource creates a source from a seed.
func NewSource(seed int64) *Source {
	return &Source{rng: rand.New(rand.NewSource(seed))}
}

// Float returns a random float64 in [0, 1).
func (s *Source) Float() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// Intn returns a random int in [0, n). Panics if n <= 0, matching math/rand.
func (s *Source) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

// Chance returns true with probability p.
func (s *Source) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return s.Float() < p
}

// Shuffle randomizes the order of n elements using the given swap.
func (s *Source) Shuffle(n int, swap func(i, j int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng.Shuffle(n, swap)
}
