// BlogMinds - Blog Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blogminds

// Package jobs runs model training in the background.
//
// Submitting a job records it as queued in the status store and publishes
// its id on an in-process Watermill topic. A single worker (Queue.Serve)
// consumes the topic and runs one training at a time, moving the job
// through
//
//	queued -> running -> succeeded | failed
//
// Job records are JSON documents in BadgerDB, kept for the configured
// retention. With an empty data directory Badger runs in memory and records
// do not survive a restart.
//
// Callers that need the old fire-and-wait behaviour call Wait after Submit:
//
//	job, err := queue.Submit(ctx, jobs.TriggerAPI)
//	job, err = queue.Wait(ctx, job.ID)
package jobs
