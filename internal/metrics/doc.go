// BlogMinds - Blog Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blogminds

/*
Package metrics provides Prometheus metrics for the recommendation service.

All collectors are registered on the default registry through promauto and
exposed at /metrics:

	curl http://localhost:5000/metrics

# Available Metrics

HTTP Metrics:
  - api_requests_total: requests by method, route and status code (counter)
  - api_request_duration_seconds: request latency by method and route (histogram)
  - api_active_requests: in-flight requests (gauge)

Candidate Cache Metrics:
  - candidate_cache_hits_total / candidate_cache_misses_total (counters)
  - candidate_cache_refresh_errors_total (counter)
  - candidate_cache_size: items in the current candidate set (gauge)

Training Metrics:
  - training_runs_total: runs by outcome, succeeded or failed (counter)
  - training_duration_seconds: wall time of a run (histogram)
  - training_last_rmse: hold-out RMSE of the latest model (gauge)
  - training_ratings: ratings in the latest training dataset (gauge)
  - model_generation: generation of the persisted model (gauge)
  - training_jobs_queued: jobs submitted and not yet finished (gauge)

Recommendation Metrics:
  - recommend_duration_seconds: time to score and enrich one page (histogram)
  - recommend_requests_total: requests by outcome (counter)

Store Metrics:
  - store_breaker_state: circuit breaker state by store name,
    0 closed, 1 half-open, 2 open (gauge)
*/
package metrics
