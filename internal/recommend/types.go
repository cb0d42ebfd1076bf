// BlogMinds - Blog Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blogminds

package recommend

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/blogminds/internal/database"
)

var (
	// ErrModelNotFound is returned when no trained model has been persisted.
	ErrModelNotFound = errors.New("model not trained")

	// ErrTrainingInProgress is returned by Trainer.Train while another
	// training run holds the trainer.
	ErrTrainingInProgress = errors.New("training already in progress")
)

// Rating is one synthesized (user, blog, rating) triple.
type Rating struct {
	UserID string
	ItemID string
	Value  float64
}

// Scale is the closed rating interval. Estimates are clipped to it.
type Scale struct {
	Min float64
	Max float64
}

// Clip bounds v to the scale.
func (s Scale) Clip(v float64) float64 {
	if v < s.Min {
		return s.Min
	}
	if v > s.Max {
		return s.Max
	}
	return v
}

// Model estimates a rating for any (user, item) pair. Unknown ids fall back
// to whatever baseline the model carries.
type Model interface {
	// Algorithm returns the tag of the algorithm that produced the model.
	Algorithm() string

	// Estimate returns the predicted rating, clipped to the training scale.
	Estimate(userID, itemID string) float64
}

// Algorithm fits a Model to a training set.
type Algorithm interface {
	// Name returns the algorithm identifier, e.g. "svd".
	Name() string

	// Fit trains a new model. It must honor ctx cancellation.
	Fit(ctx context.Context, train *Dataset) (Model, error)
}

// DataProvider is the read side of the document store.
// database.Store satisfies it.
type DataProvider interface {
	Users(ctx context.Context) ([]database.User, error)
	Blogs(ctx context.Context) ([]database.Blog, error)
	BlogIDs(ctx context.Context) ([]string, error)
	BlogsWithAuthors(ctx context.Context, ids []string) ([]database.AuthoredBlog, error)
}

// ScoredItem is a candidate with its estimated rating.
type ScoredItem struct {
	ItemID string
	Score  float64
}

// Recommendations is one page of results for a user.
type Recommendations struct {
	UserID string
	Items  []database.AuthoredBlog

	// Scores holds the estimate of each entry in Items.
	Scores []float64

	// Generation is the model generation that produced the page.
	Generation uint64
}

// TrainResult summarizes a successful training run.
type TrainResult struct {
	Generation uint64        `json:"generation"`
	Algorithm  string        `json:"algorithm"`
	Ratings    int           `json:"ratings"`
	Users      int           `json:"users"`
	Items      int           `json:"items"`
	TrainSize  int           `json:"train_size"`
	TestSize   int           `json:"test_size"`
	RMSE       float64       `json:"rmse"`
	Duration   time.Duration `json:"duration"`
	TrainedAt  time.Time     `json:"trained_at"`
}
