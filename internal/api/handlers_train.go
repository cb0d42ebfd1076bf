// BlogMinds - Blog Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blogminds

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/blogminds/internal/config"
	"github.com/tomtom215/blogminds/internal/jobs"
	"github.com/tomtom215/blogminds/internal/logging"
	"github.com/tomtom215/blogminds/internal/models"
)

// TrainModel handles GET /train_model. In blocking mode it replies once
// the job has finished; a wait that exceeds api.train_wait_timeout falls
// back to the async 202 reply.
func (h *Handler) TrainModel(w http.ResponseWriter, r *http.Request) {
	job, err := h.queue.Submit(r.Context(), jobs.TriggerAPI)
	if err != nil {
		if errors.Is(err, jobs.ErrQueueClosed) {
			respondError(w, r, http.StatusServiceUnavailable, "training unavailable")
			return
		}
		respondInternalError(w, r, err)
		return
	}

	log := logging.Ctx(logging.ContextWithJobID(r.Context(), job.ID))
	if h.cfg.TrainMode == config.TrainModeAsync {
		respondTrainingStarted(w, r, job.ID)
		return
	}

	ctx := r.Context()
	if h.cfg.TrainWaitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.cfg.TrainWaitTimeout)
		defer cancel()
	}

	done, err := h.queue.Wait(ctx, job.ID)
	switch {
	case err == nil:
	case errors.Is(err, context.DeadlineExceeded) && r.Context().Err() == nil:
		log.Info().Msg("training still running, replying with job id")
		respondTrainingStarted(w, r, job.ID)
		return
	default:
		respondInternalError(w, r, err)
		return
	}

	if done.State == jobs.StateFailed {
		respondInternalError(w, r, errors.New("training job failed: "+done.Error))
		return
	}
	respondJSON(w, r, http.StatusOK, models.MessageResponse{Message: models.MsgModelTrained})
}

// TrainStatus handles GET /train_model/status/{id}.
func (h *Handler) TrainStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	job, err := h.queue.Status(r.Context(), id)
	if err != nil {
		if errors.Is(err, jobs.ErrJobNotFound) {
			respondError(w, r, http.StatusNotFound, jobs.ErrJobNotFound.Error())
			return
		}
		respondInternalError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, job)
}

func respondTrainingStarted(w http.ResponseWriter, r *http.Request, jobID string) {
	w.Header().Set("Location", "/train_model/status/"+jobID)
	respondJSON(w, r, http.StatusAccepted, models.MessageResponse{
		Message: models.MsgTrainingStarted,
		JobID:   jobID,
	})
}
