// BlogMinds - Blog Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blogminds

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Candidate Cache Metrics
	CandidateCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "candidate_cache_hits_total",
			Help: "Candidate set reads served without a refresh",
		},
	)

	CandidateCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "candidate_cache_misses_total",
			Help: "Candidate set reads that triggered a refresh",
		},
	)

	CandidateCacheRefreshErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "candidate_cache_refresh_errors_total",
			Help: "Failed candidate set refreshes",
		},
	)

	CandidateCacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "candidate_cache_size",
			Help: "Number of items in the current candidate set",
		},
	)

	// Training Metrics
	TrainingRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "training_runs_total",
			Help: "Training runs by outcome",
		},
		[]string{"outcome"},
	)

	TrainingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "training_duration_seconds",
			Help:    "Wall time of a training run in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300, 600},
		},
	)

	TrainingLastRMSE = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "training_last_rmse",
			Help: "Hold-out RMSE of the most recently trained model",
		},
	)

	TrainingRatings = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "training_ratings",
			Help: "Number of ratings in the most recent training dataset",
		},
	)

	ModelGeneration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "model_generation",
			Help: "Generation of the most recently persisted model",
		},
	)

	TrainingJobsQueued = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "training_jobs_queued",
			Help: "Training jobs submitted and not yet finished",
		},
	)

	// Recommendation Metrics
	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "Time to score, paginate and enrich one recommendation page",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Recommendation requests by outcome",
		},
		[]string{"outcome"},
	)

	// Store Metrics
	StoreBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "store_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)
)

// Outcome label values.
const (
	OutcomeSucceeded = "succeeded"
	OutcomeFailed    = "failed"
	OutcomeNoModel   = "no_model"
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordCandidateLookup records a candidate set read. refreshed is true when
// the read had to reload the set.
func RecordCandidateLookup(refreshed bool) {
	if refreshed {
		CandidateCacheMisses.Inc()
	} else {
		CandidateCacheHits.Inc()
	}
}

// RecordTraining records the outcome of one training run. rmse and ratings
// are only applied on success.
func RecordTraining(duration time.Duration, generation uint64, rmse float64, ratings int, err error) {
	TrainingDuration.Observe(duration.Seconds())
	if err != nil {
		TrainingRuns.WithLabelValues(OutcomeFailed).Inc()
		return
	}
	TrainingRuns.WithLabelValues(OutcomeSucceeded).Inc()
	TrainingLastRMSE.Set(rmse)
	TrainingRatings.Set(float64(ratings))
	ModelGeneration.Set(float64(generation))
}

// RecordRecommend records one recommendation request.
func RecordRecommend(duration time.Duration, outcome string) {
	RecommendRequests.WithLabelValues(outcome).Inc()
	if outcome == OutcomeSucceeded {
		RecommendDuration.Observe(duration.Seconds())
	}
}
