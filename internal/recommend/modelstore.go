// BlogMinds - Blog Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blogminds

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/tomtom215/blogminds/internal/recommend/storage"
)

// ModelDecoder returns an empty model of one algorithm to decode into.
type ModelDecoder func() Model

// ModelSource loads the persisted model. ArtifactStore implements it.
type ModelSource interface {
	Load(ctx context.Context) (Model, *storage.ModelMetadata, error)

	// Generation returns the generation of the newest artifact known to the
	// process. It changes whenever a new model is written.
	Generation() uint64
}

// ArtifactStore persists models through a storage.Store and tracks the
// artifact generation.
type ArtifactStore struct {
	store    *storage.Store
	decoders map[string]ModelDecoder

	saveMu     sync.Mutex
	generation atomic.Uint64
}

// NewArtifactStore wraps store. decoders maps algorithm tags to empty
// models. The generation counter starts from the existing artifact, if any.
func NewArtifactStore(ctx context.Context, store *storage.Store, decoders map[string]ModelDecoder) *ArtifactStore {
	a := &ArtifactStore{store: store, decoders: decoders}
	if meta, err := store.Stat(ctx); err == nil {
		a.generation.Store(meta.Generation)
	}
	return a
}

// Path returns the artifact path.
func (a *ArtifactStore) Path() string {
	return a.store.Path()
}

// Generation implements ModelSource.
func (a *ArtifactStore) Generation() uint64 {
	return a.generation.Load()
}

// Save writes m as the next generation, replacing the previous artifact.
//
//nolint:gocritic // meta passed by value is acceptable for this write operation
func (a *ArtifactStore) Save(ctx context.Context, m Model, meta storage.ModelMetadata) (*storage.ModelMetadata, error) {
	a.saveMu.Lock()
	defer a.saveMu.Unlock()

	meta.Algorithm = m.Algorithm()
	meta.Generation = a.generation.Load() + 1

	saved, err := a.store.Save(ctx, m, meta)
	if err != nil {
		return nil, fmt.Errorf("save model: %w", err)
	}
	a.generation.Store(saved.Generation)
	return saved, nil
}

// Load implements ModelSource. A missing artifact yields ErrModelNotFound.
func (a *ArtifactStore) Load(ctx context.Context) (Model, *storage.ModelMetadata, error) {
	var model Model
	meta, err := a.store.Load(ctx, func(meta storage.ModelMetadata) (interface{}, error) {
		decode, ok := a.decoders[meta.Algorithm]
		if !ok {
			return nil, fmt.Errorf("no decoder for algorithm %q", meta.Algorithm)
		}
		model = decode()
		return model, nil
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: %w", ErrModelNotFound, err)
		}
		return nil, nil, fmt.Errorf("load model: %w", err)
	}

	// Another process may have written a newer artifact.
	for {
		cur := a.generation.Load()
		if meta.Generation <= cur || a.generation.CompareAndSwap(cur, meta.Generation) {
			break
		}
	}
	return model, meta, nil
}
