// BlogMinds - Blog Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blogminds

package jobs

import (
	"errors"
	"time"
)

var (
	// ErrJobNotFound is returned for an unknown or expired job id.
	ErrJobNotFound = errors.New("job not found")

	// ErrQueueClosed is returned by Submit after Close.
	ErrQueueClosed = errors.New("job queue closed")
)

// State is the lifecycle state of a job.
type State string

// Job states.
const (
	StateQueued    State = "queued"
	StateRunning   State = "running"
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"
)

// Triggers record what submitted a job.
const (
	TriggerAPI      = "api"
	TriggerStartup  = "startup"
	TriggerSchedule = "schedule"
)

// Job is one training run request and its outcome.
type Job struct {
	ID          string     `json:"id"`
	State       State      `json:"state"`
	Trigger     string     `json:"trigger"`
	SubmittedAt time.Time  `json:"submitted_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	FinishedAt  *time.Time `json:"finished_at,omitempty"`
	Error       string     `json:"error,omitempty"`
	Ratings     int        `json:"ratings,omitempty"`
	Generation  uint64     `json:"generation,omitempty"`
	RMSE        float64    `json:"rmse,omitempty"`
}

// Done reports whether the job reached a terminal state.
func (j *Job) Done() bool {
	return j.State == StateSucceeded || j.State == StateFailed
}
