// Package dsa provides the small reusable data structures the engagement
// core is built on: a fixed-capacity FIFO ring buffer with oldest-first
// eviction, and a bounded top-N selector.
package dsa

import "sync"

// ─── Bounded FIFO Ring Buffer ───────────────────────────────────────────────
// Histories in the core (activity ledgers, session records) are bounded by
// contract: once full, the oldest entry is evicted. Eviction is a documented
// policy, never an error and never unbounded growth.
//
// Operations:
//   Append: O(1) — may evict the oldest entry
//   Items:  O(n) — oldest-first copy
//   Len:    O(1)

// Ring is a thread-safe fixed-capacity FIFO buffer.
type Ring[T any] struct {
	mu    sync.Mutex
	buf   []T
	start int
	size  int
}

// NewRing creates an empty ring with the given capacity.
// Capacity must be positive.
func NewRing[T any](capacity int) *Ring[T] {
	if capacity <= 0 {
		capacity = 1
	}
	return &Ring[T]{buf: make([]T, capacity)}
}

// Append adds v as the newest entry. If the ring is full, the oldest entry
// is evicted and returned with evicted=true.
func (r *Ring[T]) Append(v T) (old T, evicted bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.size < len(r.buf) {
		r.buf[(r.start+r.size)%len(r.buf)] = v
		r.size++
		return old, false
	}

	old = r.buf[r.start]
	r.buf[r.start] = v
	r.start = (r.start + 1) % len(r.buf)
	return old, true
}

// Len returns the number of entries currently held.
func (r *Ring[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.size
}

// Cap returns the fixed capacity.
func (r *Ring[T]) Cap() int {
	return len(r.buf)
}

// Items returns a copy of the entries, oldest first.
func (r *Ring[T]) Items() []T {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]T, r.size)
	for i := 0; i < r.size; i++ {
		out[i] = r.buf[(r.start+i)%len(r.buf)]
	}
	return out
}

// Newest returns the most recently appended entry.
func (r *Ring[T]) Newest() (v T, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.size == 0 {
		return v, false
	}
	return r.buf[(r.start+r.size-1)%len(r.buf)], true
}
