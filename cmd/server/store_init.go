// BlogMinds - Blog Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blogminds

package main

import (
	"context"
	"fmt"

	"github.com/tomtom215/blogminds/internal/config"
	"github.com/tomtom215/blogminds/internal/database"
	"github.com/tomtom215/blogminds/internal/logging"
)

// initStore opens the configured backend and wraps it in a circuit breaker
// when store.circuit_breaker.enabled is set.
func initStore(ctx context.Context, cfg *config.StoreConfig) (database.Store, error) {
	var store database.Store

	switch cfg.Backend {
	case config.BackendMongo:
		s, err := database.NewMongoStore(ctx, database.MongoConfig{
			URL:             cfg.MongoURL,
			Database:        cfg.Database,
			UsersCollection: cfg.UsersCollection,
			BlogsCollection: cfg.BlogsCollection,
			ConnectTimeout:  cfg.ConnectTimeout,
		})
		if err != nil {
			return nil, err
		}
		store = s

	case config.BackendDuckDB:
		s, err := database.NewDuckDBStore(ctx, cfg.DuckDBPath)
		if err != nil {
			return nil, err
		}
		store = s

	case config.BackendMemory:
		logging.Warn().Msg("Using in-memory store; it starts empty")
		store = database.NewMemoryStore()

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}

	logging.Info().Str("backend", cfg.Backend).Str("database", cfg.Database).Msg("Store initialized")

	if !cfg.CircuitBreaker.Enabled {
		return store, nil
	}

	cb := cfg.CircuitBreaker
	logging.Info().Uint32("failure_threshold", cb.FailureThreshold).Dur("timeout", cb.Timeout).Msg("Store circuit breaker enabled")
	return database.NewBreakerStore(store, database.BreakerConfig{
		Name:             cfg.Backend,
		MaxRequests:      cb.MaxRequests,
		Interval:         cb.Interval,
		Timeout:          cb.Timeout,
		FailureThreshold: cb.FailureThreshold,
	}), nil
}
