// BlogMinds - Blog Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blogminds

// Package algorithms implements the rating-prediction algorithms used by the
// recommend trainer.
//
// Each algorithm implements recommend.Algorithm and produces a
// recommend.Model that can be persisted with gob.
//
// # SVD
//
// SVD is the latent factor model popularized in the Netflix prize and known
// as Funk SVD. The estimate for user u and item i is
//
//	r̂ui = μ + bu + bi + qiᵀpu
//
// where μ is the global mean, bu and bi are user and item biases and pu, qi
// are factor vectors. Parameters are fitted by stochastic gradient descent
// over the training ratings for a fixed number of epochs, with the squared
// error regularized by
//
//	λ(bi² + bu² + ||qi||² + ||pu||²)
//
// Unknown users or items drop the terms they cannot supply; with no bias
// (Biased=false) an unknown pair is estimated as μ. Estimates are clipped to
// the training scale.
//
// Defaults: 100 factors, 20 epochs, learning rate 0.005, regularization
// 0.02, factors drawn from N(0, 0.1).
//
// # Thread Safety
//
// Fit acquires an exclusive lock on the algorithm. A fitted SVDModel is
// read-only and safe for concurrent Estimate calls.
package algorithms
