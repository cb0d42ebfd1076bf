// BlogMinds - Blog Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blogminds

package recommend

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/blogminds/internal/metrics"
	"github.com/tomtom215/blogminds/internal/recommend/storage"
)

// Trainer runs the training pipeline: synthesize ratings, split, fit and
// persist.
type Trainer struct {
	cfg    TrainerConfig
	data   DataProvider
	alg    Algorithm
	models *ArtifactStore
	logger zerolog.Logger

	trainMu sync.Mutex
	now     func() time.Time
}

// NewTrainer creates a trainer.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewTrainer(cfg TrainerConfig, data DataProvider, alg Algorithm, models *ArtifactStore, logger zerolog.Logger) *Trainer {
	return &Trainer{
		cfg:    cfg,
		data:   data,
		alg:    alg,
		models: models,
		logger: logger.With().Str("component", "trainer").Logger(),
		now:    time.Now,
	}
}

// Train fits a new model and replaces the persisted artifact. It returns
// ErrTrainingInProgress immediately if another call is running. The
// artifact is only written after a successful fit.
func (t *Trainer) Train(ctx context.Context) (*TrainResult, error) {
	if !t.trainMu.TryLock() {
		return nil, ErrTrainingInProgress
	}
	defer t.trainMu.Unlock()

	start := t.now()
	res, err := t.train(ctx, start)

	duration := time.Since(start)
	if err != nil {
		metrics.RecordTraining(duration, 0, 0, 0, err)
		t.logger.Error().Err(err).Dur("duration", duration).Msg("model training failed")
		return nil, err
	}

	res.Duration = duration
	metrics.RecordTraining(duration, res.Generation, res.RMSE, res.Ratings, nil)
	t.logger.Info().
		Uint64("generation", res.Generation).
		Int("ratings", res.Ratings).
		Int("users", res.Users).
		Int("items", res.Items).
		Float64("rmse", res.RMSE).
		Dur("duration", duration).
		Msg("model training complete")
	return res, nil
}

func (t *Trainer) train(ctx context.Context, start time.Time) (*TrainResult, error) {
	t.logger.Info().Bool("sparse", t.cfg.SparseSynthesis).Msg("starting model training")

	var (
		ratings []Rating
		err     error
	)
	if t.cfg.SparseSynthesis {
		ratings, err = ExtractSparseRatings(ctx, t.data, t.cfg.NegativeSamples, t.cfg.Seed)
	} else {
		ratings, err = ExtractRatings(ctx, t.data)
	}
	if err != nil {
		return nil, fmt.Errorf("extract ratings: %w", err)
	}

	full := NewDataset(ratings, t.cfg.Scale)
	train, test := full.Split(t.cfg.TestFraction, t.cfg.Seed)

	t.logger.Debug().
		Int("ratings", full.Len()).
		Int("train", train.Len()).
		Int("test", test.Len()).
		Msg("dataset built")

	model, err := t.alg.Fit(ctx, train)
	if err != nil {
		return nil, fmt.Errorf("fit %s: %w", t.alg.Name(), err)
	}
	rmse := Evaluate(model, test)

	saved, err := t.models.Save(ctx, model, storage.ModelMetadata{
		TrainedAt:          start,
		RatingCount:        full.Len(),
		UserCount:          full.NumUsers(),
		ItemCount:          full.NumItems(),
		RMSE:               rmse,
		TrainingDurationMS: time.Since(start).Milliseconds(),
	})
	if err != nil {
		return nil, err
	}

	return &TrainResult{
		Generation: saved.Generation,
		Algorithm:  saved.Algorithm,
		Ratings:    full.Len(),
		Users:      full.NumUsers(),
		Items:      full.NumItems(),
		TrainSize:  train.Len(),
		TestSize:   test.Len(),
		RMSE:       rmse,
		TrainedAt:  start,
	}, nil
}
