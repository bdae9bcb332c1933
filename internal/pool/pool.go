// Package pool provides a generic, mutex-guarded free list for integrator
// scratch state and configuration blocks.
//
// Entries are checked out as *Handle values and returned exactly once.
// Releasing an already released handle is detected, ignored and counted.
// An empty free list never fails a checkout: a fresh entry is allocated and
// the miss is recorded in [Stats].
package pool

import (
	"sync"
	"time"

	"github.com/go-logr/logr"
)

// Options tunes a Pool. The zero value is usable.
type Options struct {
	// Name tags diagnostic log lines.
	Name string
	// MaxIdle caps the free list; surplus releases are dropped. 0 is unbounded.
	MaxIdle int
	// MinIdle is the floor Trim shrinks to.
	MinIdle int
	// Quiescence is how long the pool must see no checkout or release
	// before Trim shrinks it.
	Quiescence time.Duration
	// Now defaults to time.Now.
	Now    func() time.Time
	Logger logr.Logger
}

// Stats is a snapshot of pool counters.
type Stats struct {
	Outstanding    int
	Peak           int
	Idle           int
	Allocations    int
	Reuses         int
	Misses         int
	DoubleReleases int
	Discarded      int
	Trimmed        int
}

type slot[E any] struct {
	value E
	gen   uint64
}

// Pool recycles entries of type E.
type Pool[E any] struct {
	mu    sync.Mutex
	newFn func() E
	reset func(*E)
	free  []*slot[E]
	opts  Options
	log   logr.Logger
	stats Stats
	last  time.Time
}

// New creates a pool. newFn builds fresh entries; reset clears an entry on
// release and defaults to assigning the zero value.
func New[E any](newFn func() E, reset func(*E), opts Options) *Pool[E] {
	if newFn == nil {
		newFn = func() E {
			var zero E
			return zero
		}
	}
	if reset == nil {
		reset = func(e *E) {
			var zero E
			*e = zero
		}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	log := opts.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	if opts.Name != "" {
		log = log.WithValues("pool", opts.Name)
	}
	return &Pool[E]{
		newFn: newFn,
		reset: reset,
		opts:  opts,
		log:   log,
		last:  opts.Now(),
	}
}

// Prewarm allocates n idle entries up front.
func (p *Pool[E]) Prewarm(n int) {
	fresh := make([]*slot[E], n)
	for i := range fresh {
		fresh[i] = &slot[E]{value: p.newFn()}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.free = append(p.free, fresh...)
	p.stats.Allocations += n
}

// Checkout returns a handle to an idle entry, allocating one when the free
// list is empty.
func (p *Pool[E]) Checkout() *Handle[E] {
	p.mu.Lock()
	var s *slot[E]
	if n := len(p.free); n > 0 {
		s = p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
		p.stats.Reuses++
	} else {
		p.stats.Misses++
		p.stats.Allocations++
	}
	p.stats.Outstanding++
	if p.stats.Outstanding > p.stats.Peak {
		p.stats.Peak = p.stats.Outstanding
	}
	p.last = p.opts.Now()
	p.mu.Unlock()

	if s == nil {
		s = &slot[E]{value: p.newFn()}
	}
	return &Handle[E]{pool: p, slot: s, gen: s.gen, valid: true}
}

// Release returns the handle's entry to the pool. It reports false, and
// changes nothing, when the handle was already released or is stale.
func (p *Pool[E]) Release(h *Handle[E]) bool {
	if h == nil {
		return false
	}
	// h.pool is fixed at checkout; the other fields are guarded by its lock.
	if h.pool != p {
		p.mu.Lock()
		p.stats.DoubleReleases++
		p.mu.Unlock()
		p.log.V(1).Info("ignoring release of handle from another pool")
		return false
	}
	p.mu.Lock()
	if !h.valid || h.slot.gen != h.gen {
		p.stats.DoubleReleases++
		p.mu.Unlock()
		p.log.V(1).Info("ignoring release of invalid handle", "generation", h.gen)
		return false
	}
	h.valid = false
	s := h.slot
	s.gen++
	p.stats.Outstanding--
	p.last = p.opts.Now()
	p.mu.Unlock()

	p.reset(&s.value)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.opts.MaxIdle > 0 && len(p.free) >= p.opts.MaxIdle {
		p.stats.Discarded++
		return true
	}
	p.free = append(p.free, s)
	return true
}

// With checks out an entry, runs fn on it and releases it on every exit
// path, panics included.
func (p *Pool[E]) With(fn func(*E)) {
	h := p.Checkout()
	defer h.Release()
	fn(h.Value())
}

// Trim shrinks the free list to MinIdle once the pool has been quiescent
// for the configured period. It returns the number of entries dropped.
func (p *Pool[E]) Trim() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.opts.Now().Sub(p.last) < p.opts.Quiescence {
		return 0
	}
	excess := len(p.free) - p.opts.MinIdle
	if excess <= 0 {
		return 0
	}
	for i := p.opts.MinIdle; i < len(p.free); i++ {
		p.free[i] = nil
	}
	p.free = p.free[:p.opts.MinIdle]
	p.stats.Trimmed += excess
	return excess
}

// Clear drops every idle entry.
func (p *Pool[E]) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	clear(p.free)
	p.free = p.free[:0]
}

func (p *Pool[E]) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := p.stats
	s.Idle = len(p.free)
	return s
}
