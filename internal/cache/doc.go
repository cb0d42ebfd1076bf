// BlogMinds - Blog Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blogminds

/*
Package cache provides a single-value staleness cache.

Staleness holds one value produced by a loader and reloads it when the value
is older than a fixed window. The check and the reload happen under one
mutex, so callers that arrive together at the window boundary share a single
reload.

# Usage

	ids := cache.NewStaleness[[]string](60*time.Second, func(ctx context.Context) ([]string, error) {
	    return store.BlogIDs(ctx)
	})

	set, err := ids.Get(ctx)

A failed reload returns the loader's error and leaves the previous value and
its timestamp untouched; the next call retries.

# Testing

WithClock swaps the time source:

	now := time.Unix(0, 0)
	c := cache.NewStaleness(time.Minute, load).WithClock(func() time.Time { return now })
*/
package cache
