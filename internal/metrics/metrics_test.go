// BlogMinds - Blog Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blogminds

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/get_blogs", "200"))

	RecordAPIRequest("GET", "/get_blogs", "200", 12*time.Millisecond)
	RecordAPIRequest("GET", "/get_blogs", "200", 40*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/get_blogs", "200"))
	if after-before != 2 {
		t.Errorf("api_requests_total delta = %v, want 2", after-before)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("after inc = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("after dec = %v, want %v", got, before)
	}
}

func TestRecordCandidateLookup(t *testing.T) {
	hits := testutil.ToFloat64(CandidateCacheHits)
	misses := testutil.ToFloat64(CandidateCacheMisses)

	RecordCandidateLookup(false)
	RecordCandidateLookup(false)
	RecordCandidateLookup(true)

	if d := testutil.ToFloat64(CandidateCacheHits) - hits; d != 2 {
		t.Errorf("hits delta = %v, want 2", d)
	}
	if d := testutil.ToFloat64(CandidateCacheMisses) - misses; d != 1 {
		t.Errorf("misses delta = %v, want 1", d)
	}
}

func TestRecordTraining(t *testing.T) {
	ok := testutil.ToFloat64(TrainingRuns.WithLabelValues(OutcomeSucceeded))
	failed := testutil.ToFloat64(TrainingRuns.WithLabelValues(OutcomeFailed))

	RecordTraining(time.Second, 7, 0.91, 120, nil)
	if got := testutil.ToFloat64(TrainingLastRMSE); got != 0.91 {
		t.Errorf("training_last_rmse = %v, want 0.91", got)
	}
	if got := testutil.ToFloat64(ModelGeneration); got != 7 {
		t.Errorf("model_generation = %v, want 7", got)
	}
	if got := testutil.ToFloat64(TrainingRatings); got != 120 {
		t.Errorf("training_ratings = %v, want 120", got)
	}

	// A failure leaves the last good values in place.
	RecordTraining(time.Second, 8, 5, 1, errors.New("mongo down"))
	if got := testutil.ToFloat64(ModelGeneration); got != 7 {
		t.Errorf("model_generation after failure = %v, want 7", got)
	}

	if d := testutil.ToFloat64(TrainingRuns.WithLabelValues(OutcomeSucceeded)) - ok; d != 1 {
		t.Errorf("succeeded delta = %v, want 1", d)
	}
	if d := testutil.ToFloat64(TrainingRuns.WithLabelValues(OutcomeFailed)) - failed; d != 1 {
		t.Errorf("failed delta = %v, want 1", d)
	}
}

func TestRecordRecommend(t *testing.T) {
	before := testutil.ToFloat64(RecommendRequests.WithLabelValues(OutcomeNoModel))
	RecordRecommend(time.Millisecond, OutcomeNoModel)
	if d := testutil.ToFloat64(RecommendRequests.WithLabelValues(OutcomeNoModel)) - before; d != 1 {
		t.Errorf("no_model delta = %v, want 1", d)
	}
}

func TestStoreBreakerState(t *testing.T) {
	StoreBreakerState.WithLabelValues("test").Set(2)
	if got := testutil.ToFloat64(StoreBreakerState.WithLabelValues("test")); got != 2 {
		t.Errorf("store_breaker_state = %v, want 2", got)
	}
}
