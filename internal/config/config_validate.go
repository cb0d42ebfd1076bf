// BlogMinds - Blog Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blogminds

package config

import (
	"fmt"
	"path/filepath"

	"github.com/tomtom215/blogminds/internal/validation"
)

// Validate checks field rules and the cross-field constraints struct tags
// cannot express.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}
	if c.Store.CircuitBreaker.Enabled && c.Store.CircuitBreaker.Timeout <= 0 {
		return fmt.Errorf("store.circuit_breaker.timeout must be positive when the breaker is enabled")
	}
	if c.Recommend.SparseSynthesis && c.Recommend.NegativeSamples == 0 {
		return fmt.Errorf("recommend.negative_samples must be at least 1 with sparse_synthesis")
	}
	return nil
}

// ModelPath returns the location of the model artifact.
func (r RecommendConfig) ModelPath() string {
	return filepath.Join(r.ModelDir, r.ModelFile)
}
