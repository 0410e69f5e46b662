// Package ratelimit throttles lead submissions per client identity.
//
// Semantics are fixed-window: each client key holds a counter and a window
// reset timestamp; the counter increments on every check (allowed or not,
// which is how decay works) and the record resets once the window elapses.
// Clients without a resolvable network address share the "unknown" key.
package ratelimit

import (
	"context"
	"time"
)

// Result is the outcome of one rate-limit check.
type Result struct {
	Allowed   bool      `json:"allowed"`
	Limit     int       `json:"limit"`
	Remaining int       `json:"remaining"`
	ResetAt   time.Time `json:"reset_at"`
	// RetryAfter is seconds until the window resets; only meaningful when
	// Allowed is false.
	RetryAfter int `json:"retry_after,omitempty"`
}

// Store tracks per-key fixed-window counters. Incr increments the counter for
// key, starting a new window when none is active, and returns the
// post-increment count and the window's reset time.
type Store interface {
	Incr(ctx context.Context, key string, window time.Duration) (count int, resetAt time.Time, err error)
}

// Limiter applies a submission budget of max per window against a Store.
// With the in-memory store the state is process-local, so fairness across
// multiple instances needs the Redis store.
type Limiter struct {
	store  Store
	max    int
	window time.Duration
}

func NewLimiter(store Store, max int, window time.Duration) *Limiter {
	return &Limiter{store: store, max: max, window: window}
}

// Check records one submission attempt for clientKey and reports whether it
// is within budget. The record is mutated even on denial.
func (l *Limiter) Check(ctx context.Context, clientKey string) (*Result, error) {
	count, resetAt, err := l.store.Incr(ctx, clientKey, l.window)
	if err != nil {
		return nil, err
	}

	remaining := l.max - count
	if remaining < 0 {
		remaining = 0
	}

	result := &Result{
		Allowed:   count <= l.max,
		Limit:     l.max,
		Remaining: remaining,
		ResetAt:   resetAt,
	}
	if !result.Allowed {
		retry := int(time.Until(resetAt).Seconds())
		if retry < 1 {
			retry = 1
		}
		result.RetryAfter = retry
	}
	return result, nil
}
