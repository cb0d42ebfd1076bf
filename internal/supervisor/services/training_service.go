// BlogMinds - Blog Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blogminds

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/blogminds/internal/jobs"
)

// Worker consumes training jobs until ctx is done or it is closed.
type Worker interface {
	Serve(ctx context.Context) error
}

// TrainingWorkerService supervises the training job worker.
type TrainingWorkerService struct {
	worker Worker
}

// NewTrainingWorkerService wraps worker.
func NewTrainingWorkerService(worker Worker) *TrainingWorkerService {
	return &TrainingWorkerService{worker: worker}
}

// Serve implements suture.Service. A worker that returns nil has been
// closed and is not restarted.
func (s *TrainingWorkerService) Serve(ctx context.Context) error {
	if err := s.worker.Serve(ctx); err != nil {
		return err
	}
	return suture.ErrDoNotRestart
}

// String implements fmt.Stringer.
func (s *TrainingWorkerService) String() string {
	return "training-worker"
}

// Submitter queues training jobs.
type Submitter interface {
	Submit(ctx context.Context, trigger string) (*jobs.Job, error)
}

// TrainingSchedulerConfig holds scheduler settings.
type TrainingSchedulerConfig struct {
	// TrainOnStartup submits a job as soon as the service starts.
	TrainOnStartup bool

	// TrainInterval submits a job every interval. Zero disables periodic
	// retraining.
	TrainInterval time.Duration
}

// TrainingSchedulerService submits training jobs on startup and on a
// fixed interval. It only submits; the worker runs the jobs.
type TrainingSchedulerService struct {
	queue  Submitter
	config TrainingSchedulerConfig
	logger zerolog.Logger
}

// NewTrainingSchedulerService creates a scheduler.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewTrainingSchedulerService(queue Submitter, cfg TrainingSchedulerConfig, logger zerolog.Logger) *TrainingSchedulerService {
	return &TrainingSchedulerService{
		queue:  queue,
		config: cfg,
		logger: logger.With().Str("service", "training-scheduler").Logger(),
	}
}

// Serve implements suture.Service.
func (s *TrainingSchedulerService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("train_on_startup", s.config.TrainOnStartup).
		Dur("train_interval", s.config.TrainInterval).
		Msg("training scheduler starting")

	if s.config.TrainOnStartup {
		s.submit(ctx, jobs.TriggerStartup)
	}

	if s.config.TrainInterval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(s.config.TrainInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("training scheduler shutting down")
			return ctx.Err()
		case <-ticker.C:
			s.submit(ctx, jobs.TriggerSchedule)
		}
	}
}

// submit logs failures instead of returning them; a restart would only
// resubmit the startup job.
func (s *TrainingSchedulerService) submit(ctx context.Context, trigger string) {
	job, err := s.queue.Submit(ctx, trigger)
	if err != nil {
		s.logger.Warn().Err(err).Str("trigger", trigger).Msg("failed to submit training job")
		return
	}
	s.logger.Debug().Str("job_id", job.ID).Str("trigger", trigger).Msg("training job submitted")
}

// String implements fmt.Stringer.
func (s *TrainingSchedulerService) String() string {
	return "training-scheduler"
}
