// Package ratelimit tracks failure counters with an expiring window, used to
// throttle guessable credentials such as one-time passcodes.
package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter counts failures per key inside a fixed window.
type Limiter interface {
	// Allowed reports whether the key is still under its failure budget.
	Allowed(ctx context.Context, key string) (bool, error)
	// RecordFailure increments the failure counter for the key.
	RecordFailure(ctx context.Context, key string) error
	// Reset clears the failure counter for the key.
	Reset(ctx context.Context, key string) error
}

// FixedWindow is a Limiter backed by a Redis counter with TTL.
//
// The counter is created on the first failure and expires after the window;
// all failures inside the window share one counter. This is deliberately
// coarse: the goal is to stop online brute force of 6-digit codes, not to
// shape traffic precisely.
type FixedWindow struct {
	client *redis.Client
	prefix string
	max    int64
	window time.Duration
}

// NewFixedWindow constructs a FixedWindow limiter.
//
// max <= 0 disables limiting (Allowed always returns true).
func NewFixedWindow(client *redis.Client, max int64, window time.Duration) *FixedWindow {
	if window <= 0 {
		window = 10 * time.Minute
	}

	return &FixedWindow{
		client: client,
		prefix: "ratelimit:",
		max:    max,
		window: window,
	}
}

// Allowed reports whether the key is still under its failure budget.
func (l *FixedWindow) Allowed(ctx context.Context, key string) (bool, error) {
	if l.max <= 0 {
		return true, nil
	}

	n, err := l.client.Get(ctx, l.prefix+key).Int64()
	if err == redis.Nil {
		return true, nil
	}
	if err != nil {
		return false, err
	}

	return n < l.max, nil
}

// RecordFailure increments the failure counter for the key, starting the
// window on the first failure.
func (l *FixedWindow) RecordFailure(ctx context.Context, key string) error {
	if l.max <= 0 {
		return nil
	}

	fk := l.prefix + key

	n, err := l.client.Incr(ctx, fk).Result()
	if err != nil {
		return err
	}
	if n == 1 {
		return l.client.Expire(ctx, fk, l.window).Err()
	}

	return nil
}

// Reset clears the failure counter for the key.
func (l *FixedWindow) Reset(ctx context.Context, key string) error {
	return l.client.Del(ctx, l.prefix+key).Err()
}
