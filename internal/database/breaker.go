// BlogMinds - Blog Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blogminds

package database

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/blogminds/internal/logging"
	"github.com/tomtom215/blogminds/internal/metrics"
)

// BreakerConfig configures BreakerStore.
type BreakerConfig struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
}

// BreakerStore guards another Store with a circuit breaker. While the
// breaker is open every call fails fast with gobreaker.ErrOpenState.
// Close and context cancellations are not counted as failures.
type BreakerStore struct {
	next Store
	cb   *gobreaker.CircuitBreaker[any]
}

// NewBreakerStore wraps next.
func NewBreakerStore(next Store, cfg BreakerConfig) *BreakerStore {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.StoreBreakerState.WithLabelValues(name).Set(float64(to))
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Store circuit breaker changed state")
		},
	}
	return &BreakerStore{next: next, cb: gobreaker.NewCircuitBreaker[any](settings)}
}

// State reports the breaker state ("closed", "half-open" or "open").
func (b *BreakerStore) State() string {
	return b.cb.State().String()
}

// execute runs fn through the breaker and narrows the result type.
func execute[T any](b *BreakerStore, fn func() (T, error)) (T, error) {
	res, err := b.cb.Execute(func() (any, error) { return fn() })
	if err != nil {
		var zero T
		return zero, err
	}
	return res.(T), nil
}

// Users implements Store.
func (b *BreakerStore) Users(ctx context.Context) ([]User, error) {
	return execute(b, func() ([]User, error) { return b.next.Users(ctx) })
}

// Blogs implements Store.
func (b *BreakerStore) Blogs(ctx context.Context) ([]Blog, error) {
	return execute(b, func() ([]Blog, error) { return b.next.Blogs(ctx) })
}

// BlogIDs implements Store.
func (b *BreakerStore) BlogIDs(ctx context.Context) ([]string, error) {
	return execute(b, func() ([]string, error) { return b.next.BlogIDs(ctx) })
}

// BlogsWithAuthors implements Store.
func (b *BreakerStore) BlogsWithAuthors(ctx context.Context, ids []string) ([]AuthoredBlog, error) {
	return execute(b, func() ([]AuthoredBlog, error) { return b.next.BlogsWithAuthors(ctx, ids) })
}

// Ping implements Store.
func (b *BreakerStore) Ping(ctx context.Context) error {
	_, err := execute(b, func() (struct{}, error) { return struct{}{}, b.next.Ping(ctx) })
	return err
}

// Close implements Store.
func (b *BreakerStore) Close(ctx context.Context) error {
	return b.next.Close(ctx)
}
