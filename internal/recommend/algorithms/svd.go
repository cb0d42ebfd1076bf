// BlogMinds - Blog Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blogminds

package algorithms

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/tomtom215/blogminds/internal/recommend"
)

// SVDName is the algorithm tag written into model artifacts.
const SVDName = "svd"

// SVDConfig contains configuration for the SVD algorithm.
type SVDConfig struct {
	// Factors is the dimension of the latent factor vectors.
	Factors int

	// Epochs is the number of SGD passes over the training set.
	Epochs int

	// LearningRate is the SGD step size for biases and factors.
	LearningRate float64

	// Regularization is the L2 penalty for biases and factors.
	Regularization float64

	// InitMean and InitStdDev parameterize the normal distribution the
	// factor vectors are drawn from.
	InitMean   float64
	InitStdDev float64

	// Biased enables the μ + bu + bi baseline.
	Biased bool

	// Seed drives factor initialization.
	Seed int64
}

// DefaultSVDConfig returns default SVD configuration.
func DefaultSVDConfig() SVDConfig {
	return SVDConfig{
		Factors:        100,
		Epochs:         20,
		LearningRate:   0.005,
		Regularization: 0.02,
		InitMean:       0,
		InitStdDev:     0.1,
		Biased:         true,
		Seed:           42,
	}
}

// SVD fits biased matrix factorization by stochastic gradient descent.
type SVD struct {
	BaseAlgorithm
	config SVDConfig
}

// NewSVD creates a new SVD algorithm with the given configuration.
func NewSVD(cfg SVDConfig) *SVD {
	if cfg.Factors <= 0 {
		cfg.Factors = 100
	}
	if cfg.Epochs <= 0 {
		cfg.Epochs = 20
	}
	if cfg.LearningRate <= 0 {
		cfg.LearningRate = 0.005
	}
	if cfg.Regularization < 0 {
		cfg.Regularization = 0.02
	}
	if cfg.InitStdDev < 0 {
		cfg.InitStdDev = 0.1
	}

	return &SVD{
		BaseAlgorithm: NewBaseAlgorithm(SVDName),
		config:        cfg,
	}
}

// Config returns the effective configuration.
func (s *SVD) Config() SVDConfig {
	return s.config
}

// Fit trains a new SVDModel on train.
func (s *SVD) Fit(ctx context.Context, train *recommend.Dataset) (recommend.Model, error) {
	s.acquireTrainLock()
	defer s.releaseTrainLock()

	if ContextCancelled(ctx) {
		return nil, ctx.Err()
	}

	cfg := s.config
	numUsers, numItems, k := train.NumUsers(), train.NumItems(), cfg.Factors
	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // reproducible initialization

	m := &SVDModel{
		Biased:    cfg.Biased,
		Min:       train.Scale().Min,
		Max:       train.Scale().Max,
		UserIndex: make(map[string]int, numUsers),
		ItemIndex: make(map[string]int, numItems),
		UserBias:  make([]float64, numUsers),
		ItemBias:  make([]float64, numItems),
		P:         randomFactors(rng, numUsers, k, cfg.InitMean, cfg.InitStdDev),
		Q:         randomFactors(rng, numItems, k, cfg.InitMean, cfg.InitStdDev),
	}
	for i, id := range train.UserIDs() {
		m.UserIndex[id] = i
	}
	for i, id := range train.ItemIDs() {
		m.ItemIndex[id] = i
	}

	var mu float64
	if cfg.Biased {
		mu = train.GlobalMean()
	}
	m.GlobalMean = train.GlobalMean()

	lr, reg := cfg.LearningRate, cfg.Regularization
	entries := train.Entries()

	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		if ContextCancelled(ctx) {
			return nil, fmt.Errorf("svd epoch %d: %w", epoch, ctx.Err())
		}

		for _, e := range entries {
			pu, qi := m.P[e.User], m.Q[e.Item]

			err := e.Value - (mu + m.UserBias[e.User] + m.ItemBias[e.Item] + dot(qi, pu))

			if cfg.Biased {
				m.UserBias[e.User] += lr * (err - reg*m.UserBias[e.User])
				m.ItemBias[e.Item] += lr * (err - reg*m.ItemBias[e.Item])
			}

			for f := 0; f < k; f++ {
				puf, qif := pu[f], qi[f]
				pu[f] += lr * (err*qif - reg*puf)
				qi[f] += lr * (err*puf - reg*qif)
			}
		}
	}

	s.markTrained()
	return m, nil
}

func randomFactors(rng *rand.Rand, rows, k int, mean, stddev float64) [][]float64 {
	out := make([][]float64, rows)
	for r := range out {
		out[r] = make([]float64, k)
		for f := range out[r] {
			out[r][f] = mean + stddev*rng.NormFloat64()
		}
	}
	return out
}

// SVDModel holds fitted SVD parameters. Fields are exported for gob.
type SVDModel struct {
	GlobalMean float64
	Biased     bool
	Min        float64
	Max        float64
	UserIndex  map[string]int
	ItemIndex  map[string]int
	UserBias   []float64
	ItemBias   []float64
	P          [][]float64
	Q          [][]float64
}

// NewSVDModel returns an empty model to decode an artifact into.
func NewSVDModel() recommend.Model {
	return &SVDModel{}
}

// Algorithm implements recommend.Model.
func (m *SVDModel) Algorithm() string {
	return SVDName
}

// Estimate implements recommend.Model.
func (m *SVDModel) Estimate(userID, itemID string) float64 {
	u, knownUser := m.UserIndex[userID]
	i, knownItem := m.ItemIndex[itemID]

	var est float64
	switch {
	case m.Biased:
		est = m.GlobalMean
		if knownUser {
			est += m.UserBias[u]
		}
		if knownItem {
			est += m.ItemBias[i]
		}
		if knownUser && knownItem {
			est += dot(m.Q[i], m.P[u])
		}
	case knownUser && knownItem:
		est = dot(m.Q[i], m.P[u])
	default:
		est = m.GlobalMean
	}

	return recommend.Scale{Min: m.Min, Max: m.Max}.Clip(est)
}
