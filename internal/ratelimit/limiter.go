// Package ratelimit implements fixed-window per-identity request
// throttling. Counts accumulate against an identity key and the whole
// table is hard-reset at each window boundary, so a burst straddling a
// boundary can pass up to twice the threshold. That coarseness is part
// of the contract, not an accident.
package ratelimit

import (
	"context"
	"time"

	"github.com/mkravtsov/authgate/internal/logger"
	"github.com/mkravtsov/authgate/internal/model"
)

// CounterStore tracks per-identity request counts for the current window.
// Implementations must be safe for concurrent use.
type CounterStore interface {
	// Admit records one request against key and reports whether it fits
	// within limit for the current window. A denied request must not grow
	// the count where the backend allows conditional increments.
	Admit(ctx context.Context, key string, limit int64) (bool, error)

	// Reset clears the current window. Backends that expire counters on
	// their own may treat this as a no-op.
	Reset(ctx context.Context) error
}

// Limiter throttles requests per identity key against an injected counter
// store. It owns no global state; construct one at startup and run its
// reset loop with Run.
type Limiter struct {
	store     CounterStore
	threshold int64
	window    time.Duration
	logger    *logger.Logger
}

// New creates a Limiter admitting up to threshold requests per key per
// window.
func New(store CounterStore, threshold int, window time.Duration, logger *logger.Logger) *Limiter {
	return &Limiter{
		store:     store,
		threshold: int64(threshold),
		window:    window,
		logger:    logger,
	}
}

// Admit returns nil when the identity may proceed and model.ErrRateLimited
// when its budget for the current window is spent. A counter backend
// failure fails open: throttling is protection, not a dependency the
// request path should die on.
func (l *Limiter) Admit(ctx context.Context, key string) error {
	allowed, err := l.store.Admit(ctx, key, l.threshold)
	if err != nil {
		l.logger.Warn("rate limiter: counter store unavailable, admitting request",
			"key", key,
			"error", err.Error())
		return nil
	}

	if !allowed {
		return model.ErrRateLimited
	}

	return nil
}

// Window returns the configured window interval.
func (l *Limiter) Window() time.Duration {
	return l.window
}

// Run resets the counter table at every window boundary until ctx is
// cancelled. The reset is unconditional with respect to in-flight
// requests.
func (l *Limiter) Run(ctx context.Context) {
	t := time.NewTicker(l.window)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := l.store.Reset(ctx); err != nil {
				l.logger.Error("rate limiter: failed to reset counters",
					"error", err.Error())
			}
		}
	}
}
