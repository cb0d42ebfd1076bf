// BlogMinds - Blog Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blogminds

// Package storage persists the trained model as a single artifact file.
//
// # Overview
//
// The storage system provides:
//   - Gob serialization for Go model types
//   - Gzip compression of the serialized model
//   - SHA-256 checksums verified on every load
//   - An algorithm tag and generation counter in the metadata
//   - Atomic replacement: a temp file in the target directory is renamed
//     over the previous artifact
//
// There is exactly one artifact (model.dump by default). Each save replaces
// it; there is no version history and no rollback.
//
// # Storage Format
//
//	storedFile (gob):
//	  - Metadata (ModelMetadata)
//	  - CompressedData (gzip of the gob-encoded model)
//
// # Usage Example
//
//	store, err := storage.NewStore("/var/lib/blogminds/model.dump")
//
//	meta, err := store.Save(ctx, svdModel, storage.ModelMetadata{
//	    Algorithm:  "svd",
//	    Generation: next,
//	})
//
//	var model algorithms.SVDModel
//	meta, err = store.Load(ctx, func(m storage.ModelMetadata) (interface{}, error) {
//	    return &model, nil
//	})
//
// Load returns ErrNotFound when the artifact does not exist and
// ErrChecksumMismatch when its payload was altered.
package storage
