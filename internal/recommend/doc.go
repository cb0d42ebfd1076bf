// BlogMinds - Blog Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blogminds

// Package recommend trains and serves blog recommendations.
//
// # Architecture
//
// Training and serving are two independent pipelines that meet at the
// persisted model artifact:
//
//	users, blogs ──► signals ──► Dataset ──► Split ──► Algorithm.Fit ──► model.dump
//	                                                                         │
//	blog ids ──► candidate cache ──► Server.Recommend ◄──────────────────────┘
//
// Signal synthesis turns implicit behaviour into a rating on [0, 10] for
// every (user, blog) pair:
//
//	rating = 0.5·read + 0.5·authored + 0.5·tagOverlap + 0.5·followsAuthor
//	       + 0.2·ln(1+views) + 0.2·ln(1+likes)
//
// Absent view and like counts count as 1. A stored zero stays zero.
//
// Serving scores every blog for the user, sorts by estimate (ties by blog
// id), slices out the requested page and joins it with author display data.
// Blogs whose author no longer exists are dropped from the page.
//
// # Usage
//
//	models := recommend.NewArtifactStore(modelFile, map[string]recommend.ModelDecoder{
//	    algorithms.SVDName: algorithms.NewSVDModel,
//	})
//	trainer := recommend.NewTrainer(cfg.Trainer, store, algorithms.NewSVD(svdCfg), models, logger)
//	if _, err := trainer.Train(ctx); err != nil { ... }
//
//	server := recommend.NewServer(cfg.Server, store, models, logger)
//	recs, err := server.Recommend(ctx, userID, 1, 10)
//
// # Thread Safety
//
// Server is safe for concurrent use; the candidate cache is the only mutable
// state on the request path. Trainer runs one training at a time and returns
// ErrTrainingInProgress to an overlapping caller.
//
// Algorithms live in the algorithms subpackage and the artifact format in
// the storage subpackage.
package recommend
