// BlogMinds - Blog Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blogminds

package api

import (
	"context"
	"time"

	"github.com/tomtom215/blogminds/internal/config"
	"github.com/tomtom215/blogminds/internal/jobs"
	"github.com/tomtom215/blogminds/internal/recommend"
)

// Recommender produces a ranked page for a user.
type Recommender interface {
	Recommend(ctx context.Context, userID string, page, pageSize int) (*recommend.Recommendations, error)
}

// TrainingQueue accepts training jobs and reports on them.
type TrainingQueue interface {
	Submit(ctx context.Context, trigger string) (*jobs.Job, error)
	Wait(ctx context.Context, id string) (*jobs.Job, error)
	Status(ctx context.Context, id string) (*jobs.Job, error)
}

// Pinger reports store connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// GenerationSource reports the current model generation.
type GenerationSource interface {
	Generation() uint64
}

// Handler holds the dependencies of every route.
type Handler struct {
	cfg       config.APIConfig
	recs      Recommender
	queue     TrainingQueue
	store     Pinger
	models    GenerationSource
	startTime time.Time
}

// NewHandler creates a handler.
func NewHandler(cfg config.APIConfig, recs Recommender, queue TrainingQueue, store Pinger, models GenerationSource) *Handler {
	return &Handler{
		cfg:       cfg,
		recs:      recs,
		queue:     queue,
		store:     store,
		models:    models,
		startTime: time.Now(),
	}
}
