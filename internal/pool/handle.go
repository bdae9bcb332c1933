package pool

// Handle owns one pooled entry until released.
type Handle[E any] struct {
	pool  *Pool[E]
	slot  *slot[E]
	gen   uint64
	valid bool
}

// Value returns the entry, or nil once the handle has been released.
func (h *Handle[E]) Value() *E {
	if !h.Valid() {
		return nil
	}
	return &h.slot.value
}

// Valid reports whether the handle still owns its entry.
func (h *Handle[E]) Valid() bool {
	if h == nil || h.pool == nil {
		return false
	}
	h.pool.mu.Lock()
	defer h.pool.mu.Unlock()
	return h.valid && h.slot.gen == h.gen
}

// Release returns the entry to its pool. Calling it again is a no-op.
func (h *Handle[E]) Release() bool {
	if h == nil || h.pool == nil {
		return false
	}
	return h.pool.Release(h)
}
