// BlogMinds - Blog Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blogminds

package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/blogminds/internal/config"
	"github.com/tomtom215/blogminds/internal/jobs"
	"github.com/tomtom215/blogminds/internal/recommend"
	"github.com/tomtom215/blogminds/internal/recommend/algorithms"
	"github.com/tomtom215/blogminds/internal/recommend/storage"
)

// RecommendComponents holds the training and serving components.
type RecommendComponents struct {
	Artifacts *recommend.ArtifactStore
	Trainer   *recommend.Trainer
	Server    *recommend.Server
	Queue     *jobs.Queue
	status    *jobs.BadgerStatusStore
	logger    zerolog.Logger
}

// modelDecoders lists every algorithm whose artifacts can be served.
func modelDecoders() map[string]recommend.ModelDecoder {
	return map[string]recommend.ModelDecoder{
		algorithms.SVDName: algorithms.NewSVDModel,
	}
}

// initRecommend wires the artifact store, trainer, server and job queue.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initRecommend(ctx context.Context, cfg *config.Config, data recommend.DataProvider, logger zerolog.Logger) (*RecommendComponents, error) {
	rcfg := cfg.Recommend

	st, err := storage.NewStore(rcfg.ModelPath())
	if err != nil {
		return nil, fmt.Errorf("model storage: %w", err)
	}
	artifacts := recommend.NewArtifactStore(ctx, st, modelDecoders())

	trainerCfg := recommend.TrainerConfig{
		Scale:           recommend.Scale{Min: rcfg.RatingMin, Max: rcfg.RatingMax},
		TestFraction:    rcfg.TestFraction,
		Seed:            rcfg.Seed,
		SparseSynthesis: rcfg.SparseSynthesis,
		NegativeSamples: rcfg.NegativeSamples,
	}
	if err := trainerCfg.Validate(); err != nil {
		return nil, err
	}

	svd := algorithms.NewSVD(algorithms.SVDConfig{
		Factors:        rcfg.SVD.Factors,
		Epochs:         rcfg.SVD.Epochs,
		LearningRate:   rcfg.SVD.LearningRate,
		Regularization: rcfg.SVD.Regularization,
		InitMean:       rcfg.SVD.InitMean,
		InitStdDev:     rcfg.SVD.InitStdDev,
		Biased:         rcfg.SVD.Biased,
		Seed:           rcfg.Seed,
	})
	trainer := recommend.NewTrainer(trainerCfg, data, svd, artifacts, logger)

	server := recommend.NewServer(recommend.ServerConfig{
		CandidateTTL: rcfg.CandidateTTL,
		ModelCache:   rcfg.ModelCache,
	}, data, artifacts, logger)

	status, err := jobs.NewBadgerStatusStore(cfg.Jobs.DataDir, cfg.Jobs.Retention)
	if err != nil {
		return nil, err
	}
	queue, err := jobs.NewQueue(jobs.QueueConfig{Buffer: cfg.Jobs.QueueBuffer}, status, trainer.Train, logger)
	if err != nil {
		_ = status.Close()
		return nil, err
	}

	logger.Info().
		Uint64("model_generation", artifacts.Generation()).
		Bool("model_cache", rcfg.ModelCache).
		Bool("sparse_synthesis", rcfg.SparseSynthesis).
		Int("svd_factors", rcfg.SVD.Factors).
		Int("svd_epochs", rcfg.SVD.Epochs).
		Msg("Recommendation components initialized")

	return &RecommendComponents{
		Artifacts: artifacts,
		Trainer:   trainer,
		Server:    server,
		Queue:     queue,
		status:    status,
		logger:    logger,
	}, nil
}

// Close stops the job queue and closes the job status database.
func (c *RecommendComponents) Close() {
	if err := c.Queue.Close(); err != nil {
		c.logger.Error().Err(err).Msg("Error closing training queue")
	}
	if err := c.status.Close(); err != nil {
		c.logger.Error().Err(err).Msg("Error closing job status store")
	}
}
