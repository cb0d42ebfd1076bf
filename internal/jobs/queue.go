// BlogMinds - Blog Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blogminds

package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/blogminds/internal/logging"
	"github.com/tomtom215/blogminds/internal/metrics"
	"github.com/tomtom215/blogminds/internal/recommend"
)

// TopicTrainingJobs carries job ids from Submit to the worker.
const TopicTrainingJobs = "training.jobs"

const metadataTrigger = "trigger"

// TrainFunc runs one training.
type TrainFunc func(ctx context.Context) (*recommend.TrainResult, error)

// StatusStore persists job records.
type StatusStore interface {
	Put(ctx context.Context, job *Job) error
	Get(ctx context.Context, id string) (*Job, error)
}

// QueueConfig holds queue settings.
type QueueConfig struct {
	// Buffer is the output channel buffer of the worker subscription.
	Buffer int64
}

// Queue serializes training runs through a single worker.
type Queue struct {
	pubsub   *gochannel.GoChannel
	messages <-chan *message.Message
	store    StatusStore
	train    TrainFunc
	logger   zerolog.Logger
	now      func() time.Time

	mu      sync.Mutex
	waiters map[string][]chan struct{}
	closed  bool
}

// NewQueue creates a queue and subscribes its worker topic. Jobs submitted
// before Serve starts are held until it does.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewQueue(cfg QueueConfig, store StatusStore, train TrainFunc, logger zerolog.Logger) (*Queue, error) {
	logger = logger.With().Str("component", "jobs").Logger()

	pubsub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: cfg.Buffer},
		logging.NewWatermillAdapter(logger),
	)

	// gochannel drops messages published with no subscriber
	messages, err := pubsub.Subscribe(context.Background(), TopicTrainingJobs)
	if err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", TopicTrainingJobs, err)
	}

	return &Queue{
		pubsub:   pubsub,
		messages: messages,
		store:    store,
		train:    train,
		logger:   logger,
		now:      time.Now,
		waiters:  make(map[string][]chan struct{}),
	}, nil
}

// Submit records a queued job and hands it to the worker.
func (q *Queue) Submit(ctx context.Context, trigger string) (*Job, error) {
	q.mu.Lock()
	closed := q.closed
	q.mu.Unlock()
	if closed {
		return nil, ErrQueueClosed
	}

	job := &Job{
		ID:          uuid.NewString(),
		State:       StateQueued,
		Trigger:     trigger,
		SubmittedAt: q.now().UTC(),
	}
	if err := q.store.Put(ctx, job); err != nil {
		return nil, fmt.Errorf("record job: %w", err)
	}

	msg := message.NewMessage(uuid.NewString(), []byte(job.ID))
	msg.Metadata.Set(metadataTrigger, trigger)

	metrics.TrainingJobsQueued.Inc()
	if err := q.pubsub.Publish(TopicTrainingJobs, msg); err != nil {
		metrics.TrainingJobsQueued.Dec()
		q.finish(context.WithoutCancel(ctx), job, nil, err)
		return nil, fmt.Errorf("publish job: %w", err)
	}

	q.logger.Info().Str("job_id", job.ID).Str("trigger", trigger).Msg("training job queued")
	return job, nil
}

// Status returns the current record for id.
func (q *Queue) Status(ctx context.Context, id string) (*Job, error) {
	return q.store.Get(ctx, id)
}

// Wait blocks until job id reaches a terminal state or ctx is done.
func (q *Queue) Wait(ctx context.Context, id string) (*Job, error) {
	ch := make(chan struct{})
	q.mu.Lock()
	q.waiters[id] = append(q.waiters[id], ch)
	q.mu.Unlock()
	defer q.removeWaiter(id, ch)

	// Registered first so a finish between here and the select is not missed.
	job, err := q.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.Done() {
		return job, nil
	}

	select {
	case <-ch:
		return q.store.Get(context.WithoutCancel(ctx), id)
	case <-ctx.Done():
		return job, ctx.Err()
	}
}

// Serve runs the worker until ctx is done or the queue is closed.
func (q *Queue) Serve(ctx context.Context) error {
	q.logger.Info().Msg("training worker started")
	defer q.logger.Info().Msg("training worker stopped")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-q.messages:
			if !ok {
				return nil
			}
			q.process(ctx, msg)
			msg.Ack()
		}
	}
}

func (q *Queue) process(ctx context.Context, msg *message.Message) {
	id := string(msg.Payload)
	ctx = logging.ContextWithJobID(ctx, id)
	log := logging.Ctx(ctx)

	job, err := q.store.Get(ctx, id)
	if err != nil {
		metrics.TrainingJobsQueued.Dec()
		log.Error().Err(err).Msg("dropping training job without status record")
		return
	}

	started := q.now().UTC()
	job.State = StateRunning
	job.StartedAt = &started
	if err := q.store.Put(ctx, job); err != nil {
		log.Warn().Err(err).Msg("failed to record job start")
	}

	log.Info().Str("trigger", job.Trigger).Msg("training job started")
	res, err := q.train(ctx)

	metrics.TrainingJobsQueued.Dec()
	q.finish(context.WithoutCancel(ctx), job, res, err)
}

// finish stores the terminal state and releases waiters.
func (q *Queue) finish(ctx context.Context, job *Job, res *recommend.TrainResult, runErr error) {
	finished := q.now().UTC()
	job.FinishedAt = &finished

	if runErr != nil {
		job.State = StateFailed
		job.Error = runErr.Error()
	} else {
		job.State = StateSucceeded
		if res != nil {
			job.Ratings = res.Ratings
			job.Generation = res.Generation
			job.RMSE = res.RMSE
		}
	}

	log := logging.Ctx(logging.ContextWithJobID(ctx, job.ID))
	if err := q.store.Put(ctx, job); err != nil {
		log.Error().Err(err).Msg("failed to record job result")
	}
	if runErr != nil {
		log.Error().Err(runErr).Msg("training job failed")
	} else {
		log.Info().Uint64("generation", job.Generation).Msg("training job succeeded")
	}

	q.mu.Lock()
	for _, ch := range q.waiters[job.ID] {
		close(ch)
	}
	delete(q.waiters, job.ID)
	q.mu.Unlock()
}

func (q *Queue) removeWaiter(id string, ch chan struct{}) {
	q.mu.Lock()
	defer q.mu.Unlock()

	list := q.waiters[id]
	for i, c := range list {
		if c == ch {
			q.waiters[id] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(q.waiters[id]) == 0 {
		delete(q.waiters, id)
	}
}

// Close stops accepting jobs and ends Serve once the current job returns.
func (q *Queue) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	q.mu.Unlock()

	return q.pubsub.Close()
}
