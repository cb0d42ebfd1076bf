// BlogMinds - Blog Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blogminds

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/blogminds/internal/config"
	"github.com/tomtom215/blogminds/internal/database"
	"github.com/tomtom215/blogminds/internal/jobs"
	"github.com/tomtom215/blogminds/internal/models"
	"github.com/tomtom215/blogminds/internal/recommend"
)

type fakeRecommender struct {
	mu       sync.Mutex
	recs     *recommend.Recommendations
	err      error
	page     int
	pageSize int
	calls    int
}

func (f *fakeRecommender) Recommend(_ context.Context, userID string, page, pageSize int) (*recommend.Recommendations, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.page, f.pageSize = page, pageSize
	if f.err != nil {
		return nil, f.err
	}
	if f.recs != nil {
		return f.recs, nil
	}
	return &recommend.Recommendations{UserID: userID, Items: []database.AuthoredBlog{}, Scores: []float64{}}, nil
}

type fakeQueue struct {
	submitErr error
	final     *jobs.Job
	waitErr   error
	waitDelay time.Duration
	known     map[string]*jobs.Job
}

func (f *fakeQueue) Submit(_ context.Context, trigger string) (*jobs.Job, error) {
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return &jobs.Job{ID: "job-1", State: jobs.StateQueued, Trigger: trigger}, nil
}

func (f *fakeQueue) Wait(ctx context.Context, id string) (*jobs.Job, error) {
	if f.waitDelay > 0 {
		select {
		case <-time.After(f.waitDelay):
		case <-ctx.Done():
			return &jobs.Job{ID: id, State: jobs.StateRunning}, ctx.Err()
		}
	}
	if f.waitErr != nil {
		return nil, f.waitErr
	}
	return f.final, nil
}

func (f *fakeQueue) Status(_ context.Context, id string) (*jobs.Job, error) {
	if j, ok := f.known[id]; ok {
		return j, nil
	}
	return nil, jobs.ErrJobNotFound
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

type fakeGeneration uint64

func (g fakeGeneration) Generation() uint64 { return uint64(g) }

func defaultAPIConfig() config.APIConfig {
	return config.APIConfig{
		MaxPageSize: 100,
		TrainMode:   config.TrainModeBlocking,
	}
}

func newTestHandler(cfg config.APIConfig, recs Recommender, queue TrainingQueue) *Handler {
	if recs == nil {
		recs = &fakeRecommender{}
	}
	if queue == nil {
		queue = &fakeQueue{final: &jobs.Job{ID: "job-1", State: jobs.StateSucceeded}}
	}
	return NewHandler(cfg, recs, queue, fakePinger{}, fakeGeneration(3))
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var body models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestGetBlogsMissingUserID(t *testing.T) {
	t.Parallel()

	for _, strict := range []bool{false, true} {
		cfg := defaultAPIConfig()
		cfg.StrictParams = strict
		router := NewRouter(newTestHandler(cfg, nil, nil), nil)

		rec := serve(router, http.MethodGet, "/get_blogs?page=1&page_size=10")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("strict=%v: status = %d, want 400", strict, rec.Code)
		}
		want := `{"error":"User ID parameter is missing"}`
		if got := strings.TrimSpace(rec.Body.String()); got != want {
			t.Errorf("strict=%v: body = %s, want %s", strict, got, want)
		}
	}
}

func TestGetBlogsPageParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		strict     bool
		query      string
		wantStatus int
		wantField  string
	}{
		{"non-integer page", false, "page=abc&page_size=10", http.StatusInternalServerError, ""},
		{"missing page_size", false, "page=1", http.StatusInternalServerError, ""},
		{"zero page passes through", false, "page=0&page_size=10", http.StatusOK, ""},
		{"strict non-integer page", true, "page=abc&page_size=10", http.StatusBadRequest, "page"},
		{"strict missing page_size", true, "page=1", http.StatusBadRequest, "page_size"},
		{"strict zero page", true, "page=0&page_size=10", http.StatusBadRequest, "page"},
		{"strict oversized page_size", true, "page=1&page_size=101", http.StatusBadRequest, "page_size"},
		{"strict valid", true, "page=2&page_size=100", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := defaultAPIConfig()
			cfg.StrictParams = tt.strict
			recs := &fakeRecommender{}
			router := NewRouter(newTestHandler(cfg, recs, nil), nil)

			rec := serve(router, http.MethodGet, "/get_blogs?user_id=u1&"+tt.query)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}

			switch {
			case tt.wantStatus == http.StatusInternalServerError:
				if got := decodeError(t, rec).Error; got != models.MsgInternalError {
					t.Errorf("error = %q, want %q", got, models.MsgInternalError)
				}
				if recs.calls != 0 {
					t.Errorf("recommender called %d times on a parse failure", recs.calls)
				}
			case tt.wantField != "":
				body := decodeError(t, rec)
				if _, ok := body.Details[tt.wantField]; !ok {
					t.Errorf("details = %v, want entry for %s", body.Details, tt.wantField)
				}
			}
		})
	}
}

func TestGetBlogsModelNotTrained(t *testing.T) {
	t.Parallel()

	notTrained := fmt.Errorf("load model: %w", recommend.ErrModelNotFound)
	tests := []struct {
		strict     bool
		wantStatus int
		wantError  string
	}{
		{false, http.StatusInternalServerError, models.MsgInternalError},
		{true, http.StatusNotFound, models.MsgModelNotTrained},
	}

	for _, tt := range tests {
		cfg := defaultAPIConfig()
		cfg.StrictParams = tt.strict
		router := NewRouter(newTestHandler(cfg, &fakeRecommender{err: notTrained}, nil), nil)

		rec := serve(router, http.MethodGet, "/get_blogs?user_id=u1&page=1&page_size=10")
		if rec.Code != tt.wantStatus {
			t.Errorf("strict=%v: status = %d, want %d", tt.strict, rec.Code, tt.wantStatus)
		}
		if got := decodeError(t, rec).Error; got != tt.wantError {
			t.Errorf("strict=%v: error = %q, want %q", tt.strict, got, tt.wantError)
		}
	}
}

func TestGetBlogsStoreErrorIs500(t *testing.T) {
	t.Parallel()

	cfg := defaultAPIConfig()
	cfg.StrictParams = true
	router := NewRouter(newTestHandler(cfg, &fakeRecommender{err: errors.New("connection refused")}, nil), nil)

	rec := serve(router, http.MethodGet, "/get_blogs?user_id=u1&page=1&page_size=10")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "connection refused") {
		t.Errorf("internal error leaked to client: %s", rec.Body.String())
	}
}

func TestGetBlogsSuccess(t *testing.T) {
	t.Parallel()

	likes := int64(5)
	recs := &fakeRecommender{recs: &recommend.Recommendations{
		UserID: "u1",
		Items: []database.AuthoredBlog{
			{Blog: database.Blog{ID: "b2", Title: "Second", Likes: &likes}, Author: database.Author{ID: "a2", Name: "Bo"}},
			{Blog: database.Blog{ID: "b1", Title: "First"}, Author: database.Author{ID: "a1", Name: "Al"}},
		},
		Scores: []float64{8, 6},
	}}
	router := NewRouter(newTestHandler(defaultAPIConfig(), recs, nil), nil)

	rec := serve(router, http.MethodGet, "/get_blogs?user_id=u1&page=2&page_size=10")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	if recs.page != 2 || recs.pageSize != 10 {
		t.Errorf("Recommend(page=%d, size=%d), want (2, 10)", recs.page, recs.pageSize)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var body models.RecommendationsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.UserID != "u1" {
		t.Errorf("user_id = %q", body.UserID)
	}
	if len(body.TopRecommendations) != 2 {
		t.Fatalf("top_recommendations len = %d, want 2", len(body.TopRecommendations))
	}
	if body.TopRecommendations[0].ID != "b2" || body.TopRecommendations[1].ID != "b1" {
		t.Errorf("order = %s, %s; want b2, b1", body.TopRecommendations[0].ID, body.TopRecommendations[1].ID)
	}
	if body.TopRecommendations[0].Author.Name != "Bo" {
		t.Errorf("author = %+v", body.TopRecommendations[0].Author)
	}
	if l := body.TopRecommendations[0].LikesCount; l == nil || *l != 5 {
		t.Errorf("likesCount = %v, want 5", l)
	}
}

func TestTrainModel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		mode        string
		waitTimeout time.Duration
		queue       *fakeQueue
		wantStatus  int
		wantMessage string
		wantJobID   bool
	}{
		{
			name:        "blocking success",
			mode:        config.TrainModeBlocking,
			queue:       &fakeQueue{final: &jobs.Job{ID: "job-1", State: jobs.StateSucceeded}},
			wantStatus:  http.StatusOK,
			wantMessage: models.MsgModelTrained,
		},
		{
			name:       "blocking failure",
			mode:       config.TrainModeBlocking,
			queue:      &fakeQueue{final: &jobs.Job{ID: "job-1", State: jobs.StateFailed, Error: "no ratings"}},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:        "async",
			mode:        config.TrainModeAsync,
			queue:       &fakeQueue{},
			wantStatus:  http.StatusAccepted,
			wantMessage: models.MsgTrainingStarted,
			wantJobID:   true,
		},
		{
			name:        "blocking wait timeout",
			mode:        config.TrainModeBlocking,
			waitTimeout: 10 * time.Millisecond,
			queue:       &fakeQueue{waitDelay: time.Minute},
			wantStatus:  http.StatusAccepted,
			wantMessage: models.MsgTrainingStarted,
			wantJobID:   true,
		},
		{
			name:       "queue closed",
			mode:       config.TrainModeBlocking,
			queue:      &fakeQueue{submitErr: jobs.ErrQueueClosed},
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "submit failure",
			mode:       config.TrainModeAsync,
			queue:      &fakeQueue{submitErr: errors.New("badger: disk full")},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := defaultAPIConfig()
			cfg.TrainMode = tt.mode
			cfg.TrainWaitTimeout = tt.waitTimeout
			router := NewRouter(newTestHandler(cfg, nil, tt.queue), nil)

			rec := serve(router, http.MethodGet, "/train_model")
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantMessage == "" {
				return
			}

			var body models.MessageResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", body.Message, tt.wantMessage)
			}
			if tt.wantJobID && body.JobID != "job-1" {
				t.Errorf("job_id = %q, want job-1", body.JobID)
			}
			if !tt.wantJobID && body.JobID != "" {
				t.Errorf("unexpected job_id %q", body.JobID)
			}
		})
	}
}

func TestTrainModelBlockingBody(t *testing.T) {
	t.Parallel()

	router := NewRouter(newTestHandler(defaultAPIConfig(), nil, nil), nil)
	rec := serve(router, http.MethodGet, "/train_model")

	want := `{"message":"Model trained successfully"}`
	if got := strings.TrimSpace(rec.Body.String()); got != want {
		t.Errorf("body = %s, want %s", got, want)
	}
}

func TestTrainStatus(t *testing.T) {
	t.Parallel()

	queue := &fakeQueue{known: map[string]*jobs.Job{
		"abc": {ID: "abc", State: jobs.StateSucceeded, Generation: 7},
	}}
	router := NewRouter(newTestHandler(defaultAPIConfig(), nil, queue), nil)

	rec := serve(router, http.MethodGet, "/train_model/status/abc")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var job jobs.Job
	if err := json.Unmarshal(rec.Body.Bytes(), &job); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if job.State != jobs.StateSucceeded || job.Generation != 7 {
		t.Errorf("job = %+v", job)
	}

	rec = serve(router, http.MethodGet, "/train_model/status/missing")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown job status = %d, want 404", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		pingErr    error
		wantStatus int
		wantBody   string
	}{
		{"store up", nil, http.StatusOK, "ok"},
		{"store down", errors.New("no reachable servers"), http.StatusServiceUnavailable, "degraded"},
	}

	for _, tt := range tests {
		h := NewHandler(defaultAPIConfig(), &fakeRecommender{}, &fakeQueue{}, fakePinger{err: tt.pingErr}, fakeGeneration(4))
		rec := serve(NewRouter(h, nil), http.MethodGet, "/health")

		if rec.Code != tt.wantStatus {
			t.Errorf("%s: status = %d, want %d", tt.name, rec.Code, tt.wantStatus)
		}
		var body models.HealthResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("%s: decode: %v", tt.name, err)
		}
		if body.Status != tt.wantBody || body.ModelGeneration != 4 {
			t.Errorf("%s: body = %+v", tt.name, body)
		}
	}
}
