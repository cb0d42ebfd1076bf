// BlogMinds - Blog Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blogminds

package recommend

import (
	"fmt"
	"time"
)

// DefaultCandidateTTL is how long the candidate set is served before the
// store is scanned again.
const DefaultCandidateTTL = 60 * time.Second

// TrainerConfig controls rating synthesis and the train/test split.
type TrainerConfig struct {
	// Scale is the rating interval handed to the algorithm.
	Scale Scale

	// TestFraction is the share of ratings held out for evaluation.
	TestFraction float64

	// Seed drives the split and negative sampling.
	Seed int64

	// SparseSynthesis materializes only pairs with at least one firing
	// indicator plus NegativeSamples random pairs per user.
	SparseSynthesis bool
	NegativeSamples int
}

// ServerConfig controls serving.
type ServerConfig struct {
	// CandidateTTL is the staleness window of the candidate set.
	CandidateTTL time.Duration

	// ModelCache keeps the loaded model in memory until the artifact
	// generation changes. When false the artifact is read on every request.
	ModelCache bool
}

// DefaultTrainerConfig returns the trainer defaults.
func DefaultTrainerConfig() TrainerConfig {
	return TrainerConfig{
		Scale:           Scale{Min: 0, Max: 10},
		TestFraction:    0.2,
		Seed:            42,
		NegativeSamples: 20,
	}
}

// DefaultServerConfig returns the server defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{CandidateTTL: DefaultCandidateTTL}
}

// Validate checks the trainer configuration.
func (c TrainerConfig) Validate() error {
	if c.Scale.Max <= c.Scale.Min {
		return fmt.Errorf("rating scale max %.2f must exceed min %.2f", c.Scale.Max, c.Scale.Min)
	}
	if c.TestFraction < 0 || c.TestFraction >= 1 {
		return fmt.Errorf("test fraction must be in [0, 1), got %.2f", c.TestFraction)
	}
	if c.SparseSynthesis && c.NegativeSamples < 0 {
		return fmt.Errorf("negative samples must be >= 0, got %d", c.NegativeSamples)
	}
	return nil
}
