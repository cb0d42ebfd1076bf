// BlogMinds - Blog Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blogminds

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/blogminds/internal/cache"
	"github.com/tomtom215/blogminds/internal/database"
	"github.com/tomtom215/blogminds/internal/logging"
	"github.com/tomtom215/blogminds/internal/metrics"
)

// Server produces recommendation pages. It is safe for concurrent use.
type Server struct {
	cfg        ServerConfig
	data       DataProvider
	models     ModelSource
	candidates *cache.Staleness[[]string]
	logger     zerolog.Logger

	modelMu    sync.RWMutex
	model      Model
	generation uint64
}

// NewServer creates a server. The candidate set is loaded lazily on the
// first request.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewServer(cfg ServerConfig, data DataProvider, models ModelSource, logger zerolog.Logger) *Server {
	if cfg.CandidateTTL <= 0 {
		cfg.CandidateTTL = DefaultCandidateTTL
	}

	s := &Server{
		cfg:    cfg,
		data:   data,
		models: models,
		logger: logger.With().Str("component", "recommend").Logger(),
	}
	s.candidates = cache.NewStaleness[[]string](cfg.CandidateTTL, data.BlogIDs).
		OnLookup(func(refreshed bool) {
			metrics.RecordCandidateLookup(refreshed)
		}).
		OnError(func(err error) {
			metrics.CandidateCacheRefreshErrors.Inc()
			s.logger.Warn().Err(err).Msg("candidate refresh failed")
		})
	return s
}

// WithClock replaces the candidate cache clock. It must be called before
// the server is shared.
func (s *Server) WithClock(now func() time.Time) *Server {
	s.candidates.WithClock(now)
	return s
}

// Candidates returns every blog id, rescanning the store once the cached
// set is older than the staleness window.
func (s *Server) Candidates(ctx context.Context) ([]string, error) {
	ids, err := s.candidates.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("candidate set: %w", err)
	}
	metrics.CandidateCacheSize.Set(float64(len(ids)))
	return ids, nil
}

// Recommend returns page (1-based) of size pageSize of userID's
// recommendations, best first, joined with author details.
func (s *Server) Recommend(ctx context.Context, userID string, page, pageSize int) (*Recommendations, error) {
	start := time.Now()

	recs, err := s.recommend(ctx, userID, page, pageSize)
	switch {
	case errors.Is(err, ErrModelNotFound):
		metrics.RecordRecommend(time.Since(start), metrics.OutcomeNoModel)
	case err != nil:
		metrics.RecordRecommend(time.Since(start), metrics.OutcomeFailed)
	default:
		metrics.RecordRecommend(time.Since(start), metrics.OutcomeSucceeded)
	}
	return recs, err
}

func (s *Server) recommend(ctx context.Context, userID string, page, pageSize int) (*Recommendations, error) {
	model, generation, err := s.loadModel(ctx)
	if err != nil {
		return nil, err
	}

	candidates, err := s.Candidates(ctx)
	if err != nil {
		return nil, err
	}

	ranked := Rank(model, userID, candidates)
	window := Paginate(ranked, page, pageSize)

	recs := &Recommendations{
		UserID:     userID,
		Items:      []database.AuthoredBlog{},
		Scores:     []float64{},
		Generation: generation,
	}
	if len(window) == 0 {
		return recs, nil
	}

	ids := make([]string, len(window))
	scores := make(map[string]float64, len(window))
	for i, it := range window {
		ids[i] = it.ItemID
		scores[it.ItemID] = it.Score
	}

	rows, err := s.data.BlogsWithAuthors(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("join page: %w", err)
	}
	for i := range rows {
		recs.Items = append(recs.Items, rows[i])
		recs.Scores = append(recs.Scores, scores[rows[i].ID])
	}

	logging.Ctx(ctx).Debug().
		Str("user_id", userID).
		Int("page", page).
		Int("page_size", pageSize).
		Int("candidates", len(candidates)).
		Int("returned", len(recs.Items)).
		Msg("recommendations served")
	return recs, nil
}

// loadModel reads the artifact, or returns the cached model while the
// artifact generation is unchanged.
func (s *Server) loadModel(ctx context.Context) (Model, uint64, error) {
	if !s.cfg.ModelCache {
		m, meta, err := s.models.Load(ctx)
		if err != nil {
			return nil, 0, err
		}
		return m, meta.Generation, nil
	}

	gen := s.models.Generation()
	s.modelMu.RLock()
	m, cached := s.model, s.generation
	s.modelMu.RUnlock()
	if m != nil && cached == gen {
		return m, cached, nil
	}

	s.modelMu.Lock()
	defer s.modelMu.Unlock()
	if s.model != nil && s.generation == s.models.Generation() {
		return s.model, s.generation, nil
	}
	m, meta, err := s.models.Load(ctx)
	if err != nil {
		return nil, 0, err
	}
	s.model, s.generation = m, meta.Generation
	s.logger.Info().Uint64("generation", meta.Generation).Msg("model loaded into cache")
	return m, meta.Generation, nil
}

// Rank scores every candidate for userID and sorts by score descending,
// breaking ties by item id ascending.
func Rank(m Model, userID string, candidates []string) []ScoredItem {
	out := make([]ScoredItem, len(candidates))
	for i, id := range candidates {
		out[i] = ScoredItem{ItemID: id, Score: m.Estimate(userID, id)}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ItemID < out[j].ItemID
	})
	return out
}

// Paginate returns items[(page-1)*size : (page-1)*size+size], clamped to
// the slice. Pages before the first or past the end are empty.
func Paginate(items []ScoredItem, page, size int) []ScoredItem {
	if page < 1 || size < 1 || page-1 > len(items)/size {
		return nil
	}
	start := (page - 1) * size
	if start >= len(items) {
		return nil
	}
	end := len(items)
	if size < end-start {
		end = start + size
	}
	return items[start:end]
}
