// BlogMinds - Blog Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blogminds

package storage

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/gob"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type testModel struct {
	Weights map[string]float64
	Factors [][]float64
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "nested", "model.dump"))
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	return store
}

func into(target interface{}) Resolver {
	return func(ModelMetadata) (interface{}, error) { return target, nil }
}

func TestNewStoreCreatesDirectory(t *testing.T) {
	store := newTestStore(t)
	if _, err := os.Stat(filepath.Dir(store.Path())); err != nil {
		t.Errorf("directory not created: %v", err)
	}
}

func TestStore_SaveAndLoad(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	data := testModel{
		Weights: map[string]float64{"a": 1.5, "b": -0.25},
		Factors: [][]float64{{0.1, 0.2}, {0.3, 0.4}},
	}
	trainedAt := time.Now().Add(-time.Minute)

	saved, err := store.Save(ctx, &data, ModelMetadata{
		Algorithm:   "svd",
		Generation:  3,
		TrainedAt:   trainedAt,
		RatingCount: 6,
	})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if saved.Checksum == "" || saved.SizeBytes == 0 {
		t.Errorf("Save() metadata missing checksum/size: %+v", saved)
	}

	var loaded testModel
	var seen ModelMetadata
	meta, err := store.Load(ctx, func(m ModelMetadata) (interface{}, error) {
		seen = m
		return &loaded, nil
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if seen.Algorithm != "svd" {
		t.Errorf("resolver saw algorithm %q, want svd", seen.Algorithm)
	}
	if meta.Generation != 3 || meta.RatingCount != 6 {
		t.Errorf("Load() metadata = %+v", meta)
	}
	if !meta.TrainedAt.Equal(trainedAt) {
		t.Errorf("TrainedAt = %v, want %v", meta.TrainedAt, trainedAt)
	}
	if loaded.Weights["b"] != -0.25 || loaded.Factors[1][0] != 0.3 {
		t.Errorf("loaded model = %+v", loaded)
	}
}

func TestStore_SaveReplacesArtifact(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for gen := uint64(1); gen <= 2; gen++ {
		data := testModel{Weights: map[string]float64{"gen": float64(gen)}}
		if _, err := store.Save(ctx, &data, ModelMetadata{Algorithm: "svd", Generation: gen}); err != nil {
			t.Fatalf("Save(gen %d) error = %v", gen, err)
		}
	}

	var loaded testModel
	meta, err := store.Load(ctx, into(&loaded))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if meta.Generation != 2 || loaded.Weights["gen"] != 2 {
		t.Errorf("got generation %d weights %v, want the second save", meta.Generation, loaded.Weights)
	}

	entries, err := os.ReadDir(filepath.Dir(store.Path()))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory holds %v, want only the artifact", names)
	}
}

func TestStore_LoadMissing(t *testing.T) {
	store := newTestStore(t)

	var loaded testModel
	if _, err := store.Load(context.Background(), into(&loaded)); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() error = %v, want ErrNotFound", err)
	}
	if _, err := store.Stat(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Stat() error = %v, want ErrNotFound", err)
	}
}

func TestStore_DetectsCorruption(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	data := testModel{Weights: map[string]float64{"a": 1}}
	meta, err := store.Save(ctx, &data, ModelMetadata{Algorithm: "svd"})
	if err != nil {
		t.Fatal(err)
	}

	// Rewrite the payload with different content but keep the old checksum.
	var raw bytes.Buffer
	if err := gob.NewEncoder(&raw).Encode(testModel{Weights: map[string]float64{"a": 2}}); err != nil {
		t.Fatal(err)
	}
	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	_, _ = gzw.Write(raw.Bytes())
	_ = gzw.Close()

	f, err := os.Create(store.Path())
	if err != nil {
		t.Fatal(err)
	}
	if err := gob.NewEncoder(f).Encode(storedFile{Metadata: *meta, CompressedData: compressed.Bytes()}); err != nil {
		t.Fatal(err)
	}
	_ = f.Close()

	var loaded testModel
	if _, err := store.Load(ctx, into(&loaded)); !errors.Is(err, ErrChecksumMismatch) {
		t.Errorf("Load() error = %v, want ErrChecksumMismatch", err)
	}
}

func TestStore_LoadGarbage(t *testing.T) {
	store := newTestStore(t)
	if err := os.WriteFile(store.Path(), []byte("not a model"), 0o600); err != nil {
		t.Fatal(err)
	}

	var loaded testModel
	_, err := store.Load(context.Background(), into(&loaded))
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("Load() error = %v, want a decode error", err)
	}
}

func TestStore_ResolverError(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	if _, err := store.Save(ctx, &testModel{}, ModelMetadata{Algorithm: "mystery"}); err != nil {
		t.Fatal(err)
	}

	unknown := errors.New("unknown algorithm")
	_, err := store.Load(ctx, func(ModelMetadata) (interface{}, error) { return nil, unknown })
	if !errors.Is(err, unknown) {
		t.Errorf("Load() error = %v, want resolver error", err)
	}
}

func TestStore_Stat(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	if _, err := store.Save(ctx, &testModel{}, ModelMetadata{Algorithm: "svd", Generation: 9}); err != nil {
		t.Fatal(err)
	}

	meta, err := store.Stat(ctx)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if meta.Generation != 9 || meta.Algorithm != "svd" {
		t.Errorf("Stat() = %+v", meta)
	}
}
