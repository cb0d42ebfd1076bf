// BlogMinds - Blog Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blogminds

// Package services adapts long-running components to suture.Service.
//
//   - HTTPServerService: net/http server with graceful shutdown
//   - TrainingWorkerService: the jobs queue worker
//   - TrainingSchedulerService: train on startup and on an interval
//
// Each service implements fmt.Stringer so suture events name it.
package services
