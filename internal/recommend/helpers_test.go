// BlogMinds - Blog Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blogminds

package recommend

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/blogminds/internal/recommend/storage"
)

// tableModel scores items from a fixed table, ignoring the user.
type tableModel struct {
	Scores map[string]float64
}

func (m *tableModel) Algorithm() string { return "table" }

func (m *tableModel) Estimate(_, itemID string) float64 { return m.Scores[itemID] }

// meanAlgorithm fits a tableModel holding each item's mean training rating.
type meanAlgorithm struct{}

func (meanAlgorithm) Name() string { return "table" }

func (meanAlgorithm) Fit(ctx context.Context, train *Dataset) (Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range train.Ratings() {
		sums[r.ItemID] += r.Value
		counts[r.ItemID]++
	}
	m := &tableModel{Scores: make(map[string]float64, len(sums))}
	for id, s := range sums {
		m.Scores[id] = s / float64(counts[id])
	}
	return m, nil
}

func tableDecoders() map[string]ModelDecoder {
	return map[string]ModelDecoder{
		"table": func() Model { return &tableModel{} },
	}
}

func newArtifactStore(t *testing.T) *ArtifactStore {
	t.Helper()
	st, err := storage.NewStore(filepath.Join(t.TempDir(), "model.dump"))
	if err != nil {
		t.Fatalf("storage.NewStore() error = %v", err)
	}
	return NewArtifactStore(context.Background(), st, tableDecoders())
}

// fakeSource serves a fixed model and counts loads.
type fakeSource struct {
	mu    sync.Mutex
	model Model
	gen   uint64
	loads int
}

func (f *fakeSource) Load(ctx context.Context) (Model, *storage.ModelMetadata, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads++
	if f.model == nil {
		return nil, nil, ErrModelNotFound
	}
	return f.model, &storage.ModelMetadata{Algorithm: f.model.Algorithm(), Generation: f.gen}, nil
}

func (f *fakeSource) Generation() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gen
}

func (f *fakeSource) publish(m Model) {
	f.mu.Lock()
	f.model = m
	f.gen++
	f.mu.Unlock()
}

func (f *fakeSource) loadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loads
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}
