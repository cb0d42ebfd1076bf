// BlogMinds - Blog Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blogminds

package cache

import (
	"context"
	"sync"
	"time"
)

// Loader produces a fresh value for a Staleness cache.
type Loader[T any] func(ctx context.Context) (T, error)

// Stats tracks cache performance
type Stats struct {
	Hits          int64
	Misses        int64
	RefreshErrors int64
	LastRefresh   time.Time
}

// Staleness caches one value and reloads it once it is older than window.
type Staleness[T any] struct {
	mu          sync.Mutex
	load        Loader[T]
	window      time.Duration
	now         func() time.Time
	value       T
	lastRefresh time.Time
	loaded      bool
	stats       Stats
	onLookup    func(refreshed bool)
	onError     func(err error)
}

// NewStaleness creates a cache that reloads through load when the cached
// value is more than window old. Nothing is loaded until the first Get.
func NewStaleness[T any](window time.Duration, load Loader[T]) *Staleness[T] {
	return &Staleness[T]{
		load:   load,
		window: window,
		now:    time.Now,
	}
}

// WithClock replaces the time source. It must be called before the cache
// is shared.
func (c *Staleness[T]) WithClock(now func() time.Time) *Staleness[T] {
	c.now = now
	return c
}

// OnLookup registers a hook called after every successful Get with whether
// the value was reloaded.
func (c *Staleness[T]) OnLookup(fn func(refreshed bool)) *Staleness[T] {
	c.onLookup = fn
	return c
}

// OnError registers a hook called when a reload fails.
func (c *Staleness[T]) OnError(fn func(err error)) *Staleness[T] {
	c.onError = fn
	return c
}

// Get returns the cached value, reloading it first when it has never been
// loaded or when more than the window has elapsed since the last reload.
//
// On a failed reload the error is returned and the previous value and
// timestamp are kept.
func (c *Staleness[T]) Get(ctx context.Context) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if c.loaded && now.Sub(c.lastRefresh) <= c.window {
		c.stats.Hits++
		if c.onLookup != nil {
			c.onLookup(false)
		}
		return c.value, nil
	}

	v, err := c.load(ctx)
	if err != nil {
		c.stats.RefreshErrors++
		if c.onError != nil {
			c.onError(err)
		}
		var zero T
		return zero, err
	}

	c.value = v
	c.lastRefresh = now
	c.loaded = true
	c.stats.Misses++
	c.stats.LastRefresh = now
	if c.onLookup != nil {
		c.onLookup(true)
	}
	return v, nil
}

// Invalidate forces the next Get to reload.
func (c *Staleness[T]) Invalidate() {
	c.mu.Lock()
	c.loaded = false
	c.mu.Unlock()
}

// LastRefresh returns the time of the last successful reload, or the zero
// time if none happened yet.
func (c *Staleness[T]) LastRefresh() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastRefresh
}

// Stats returns a snapshot of the cache counters.
func (c *Staleness[T]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
