// Package cache provides a single-slot snapshot cache for whole-dataset
// upstream responses. The slot holds at most one payload with the time it
// was fetched; callers decide freshness against their own threshold and
// may fall back to a stale snapshot when a refresh fails.
package cache

import (
	"sync"
	"time"
)

// Snapshot holds one dataset payload and its fetch time.
// The payload is replaced wholesale on every Write and is never deleted;
// a stale snapshot stays readable until the process exits.
type Snapshot[T any] struct {
	mu        sync.RWMutex
	payload   T
	fetchedAt time.Time
	populated bool
}

// NewSnapshot creates an empty snapshot slot.
func NewSnapshot[T any]() *Snapshot[T] {
	return &Snapshot[T]{}
}

// Read returns the stored payload and its age. ok is false until the
// first successful Write.
func (s *Snapshot[T]) Read() (payload T, age time.Duration, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.populated {
		var zero T
		return zero, 0, false
	}
	return s.payload, time.Since(s.fetchedAt), true
}

// Write atomically replaces the stored payload, stamping it with the
// current time.
func (s *Snapshot[T]) Write(payload T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payload = payload
	s.fetchedAt = time.Now()
	s.populated = true
	snapshotWrites.Inc()
}
