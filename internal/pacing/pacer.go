// Package pacing spaces out simulated application submissions.
package pacing

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// DefaultMinGap is the default pause between consecutive submissions.
const DefaultMinGap = 500 * time.Millisecond

// Pacer enforces a minimum gap between consecutive calls to Wait.
// A zero gap disables pacing.
type Pacer struct {
	mu      sync.Mutex
	last    time.Time
	started bool
	minGap  time.Duration
	now     func() time.Time
	after   func(time.Duration) <-chan time.Time
}

// NewPacer creates a pacer with the given minimum gap.
func NewPacer(minGap time.Duration) *Pacer {
	return &Pacer{
		minGap: minGap,
		now:    time.Now,
		after:  time.After,
	}
}

// MinGap returns the configured gap.
func (p *Pacer) MinGap() time.Duration {
	return p.minGap
}

// Wait blocks until minGap has passed since the previous Wait returned.
// The first call never blocks. Returns an error if ctx is cancelled while
// waiting.
func (p *Pacer) Wait(ctx context.Context) error {
	if p.minGap <= 0 {
		return ctx.Err()
	}

	p.mu.Lock()
	now := p.now()
	if !p.started {
		p.started = true
		p.last = now
		p.mu.Unlock()
		return nil
	}

	elapsed := now.Sub(p.last)
	if elapsed >= p.minGap {
		p.last = now
		p.mu.Unlock()
		return nil
	}

	remaining := p.minGap - elapsed
	p.mu.Unlock()

	select {
	case <-ctx.Done():
		return fmt.Errorf("pacing wait: %w", ctx.Err())
	case <-p.after(remaining):
	}

	p.mu.Lock()
	p.last = p.now()
	p.mu.Unlock()

	return nil
}

// Policy hands out a fresh Pacer per batch so concurrent batches do not share
// timing state.
type Policy struct {
	MinGap time.Duration
}

// NewBatch returns a pacer for one application batch.
func (p Policy) NewBatch() *Pacer {
	return NewPacer(p.MinGap)
}
