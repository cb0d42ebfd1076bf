// BlogMinds - Blog Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blogminds

// Package main is the entry point for the BlogMinds recommendation server.
//
// Startup order:
//
//  1. Configuration: defaults, config.yaml (or CONFIG_PATH), environment (Koanf v2)
//  2. Logging: zerolog, json or console
//  3. Store: MongoDB (default), DuckDB or in-memory, optionally behind a circuit breaker
//  4. Model artifact: model.dump under recommend.model_dir
//  5. Trainer, recommendation server and training job queue
//  6. Supervisor tree: training worker, training scheduler, HTTP server
//
// # Configuration
//
// The most common environment variables:
//
//	MONGO_URL=mongodb://localhost:27017   document store connection string
//	HTTP_PORT=5000                        listen port
//	MODEL_DIR=/var/lib/blogminds          directory of model.dump
//	LOG_LEVEL=debug                       zerolog level
//
// # Example Usage
//
//	export MONGO_URL=mongodb://mongo:27017
//	./blogminds
//	curl 'localhost:5000/train_model'
//	curl 'localhost:5000/get_blogs?user_id=65f0c...&page=1&page_size=10'
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the supervisor tree. In-flight requests get
// server.shutdown_timeout to finish, a running training job sees its
// context canceled, and the store is closed last.
package main
