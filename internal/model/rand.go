package model

import (
	"math/rand/v2"
	"sync"
)

// Rand is the single source of randomness for job generation and submission
// outcomes. *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// LockedRand makes a Rand safe for concurrent requests.
type LockedRand struct {
	mu sync.Mutex
	r  Rand
}

// NewRand returns a concurrency-safe Rand. A zero seed draws from the
// runtime's random source; any other seed gives a reproducible sequence.
func NewRand(seed uint64) *LockedRand {
	if seed == 0 {
		return &LockedRand{r: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
	}
	return &LockedRand{r: rand.New(rand.NewPCG(seed, seed))}
}

func (l *LockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

func (l *LockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}
