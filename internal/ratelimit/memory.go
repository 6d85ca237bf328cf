package ratelimit

import (
	"context"
	"sync"
)

// MemoryCounters is an in-process CounterStore. Table size is bounded by
// the number of distinct identities seen per window; the table never
// survives a reset and is never persisted. Counts hold only for this
// process, so horizontally scaled deployments need RedisCounters to keep
// the per-identity guarantee.
type MemoryCounters struct {
	mu     sync.Mutex
	counts map[string]int64
}

// NewMemoryCounters creates an empty in-memory counter table.
func NewMemoryCounters() *MemoryCounters {
	return &MemoryCounters{
		counts: make(map[string]int64),
	}
}

// Admit increments the count for key unless it already reached limit.
func (s *MemoryCounters) Admit(_ context.Context, key string, limit int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.counts[key] >= limit {
		return false, nil
	}
	s.counts[key]++
	return true, nil
}

// Reset drops the whole counter table.
func (s *MemoryCounters) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counts = make(map[string]int64)
	return nil
}

// Count returns the current count for key.
func (s *MemoryCounters) Count(key string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.counts[key]
}
