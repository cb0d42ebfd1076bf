// BlogMinds - Blog Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blogminds

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/blogminds/internal/logging"
	"github.com/tomtom215/blogminds/internal/models"
)

const healthPingTimeout = 2 * time.Second

// Health handles GET /health. It replies 503 when the store is unreachable.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()

	resp := models.HealthResponse{
		Status:          "ok",
		Store:           "connected",
		ModelGeneration: h.models.Generation(),
		UptimeSeconds:   time.Since(h.startTime).Seconds(),
	}
	status := http.StatusOK

	if err := h.store.Ping(ctx); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("health check: store unreachable")
		resp.Status = "degraded"
		resp.Store = "unreachable"
		status = http.StatusServiceUnavailable
	}

	respondJSON(w, r, status, resp)
}
