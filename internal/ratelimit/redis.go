package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCounters is a CounterStore backed by redis, for deployments where
// the throttle budget must hold across processes. Each counter expires on
// its own after the window interval instead of being cleared by the
// limiter's reset loop, which approximates the single-process hard reset
// per key rather than globally.
type RedisCounters struct {
	rdb    *redis.Client
	prefix string
	window time.Duration
}

// NewRedisCounters creates a redis-backed counter store with the given
// window as the per-key TTL.
func NewRedisCounters(rdb *redis.Client, window time.Duration) *RedisCounters {
	return &RedisCounters{
		rdb:    rdb,
		prefix: "ratelimit:",
		window: window,
	}
}

// Admit increments the counter for key and reports whether the resulting
// count fits within limit. Unlike the in-memory store the increment is
// unconditional; denied requests keep counting until the key expires,
// which does not change the admit decision.
func (s *RedisCounters) Admit(ctx context.Context, key string, limit int64) (bool, error) {
	redisKey := s.prefix + key

	pipe := s.rdb.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.ExpireNX(ctx, redisKey, s.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to increment counter: %w", err)
	}

	return incr.Val() <= limit, nil
}

// Reset is a no-op: counters carry their own TTL.
func (s *RedisCounters) Reset(_ context.Context) error {
	return nil
}
