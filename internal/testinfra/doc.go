// BlogMinds - Blog Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blogminds

// Package testinfra starts real backing services for integration tests
// using testcontainers-go. Everything here is behind the "integration"
// build tag:
//
//	go test -tags integration ./internal/database/...
//
// Tests call SkipIfNoDocker first so the suite degrades to a skip on hosts
// without a Docker daemon.
//
//	mongo := testinfra.StartMongo(t)
//	store, err := database.NewMongoStore(ctx, database.MongoConfig{URL: mongo.URI, ...})
package testinfra
