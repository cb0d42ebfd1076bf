// BlogMinds - Blog Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blogminds

package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tomtom215/blogminds/internal/logging"
	"github.com/tomtom215/blogminds/internal/models"
	"github.com/tomtom215/blogminds/internal/recommend"
	"github.com/tomtom215/blogminds/internal/validation"
)

// pageParams is validated only in strict mode.
type pageParams struct {
	Page     int `query:"page" validate:"min=1"`
	PageSize int `query:"page_size" validate:"min=1"`
}

// GetBlogs handles GET /get_blogs.
func (h *Handler) GetBlogs(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		respondError(w, r, http.StatusBadRequest, models.MsgUserIDMissing)
		return
	}

	params, err := h.parsePageParams(r)
	if err != nil {
		if h.cfg.StrictParams {
			respondValidationError(w, r, err)
			return
		}
		respondInternalError(w, r, err)
		return
	}

	recs, err := h.recs.Recommend(r.Context(), userID, params.Page, params.PageSize)
	switch {
	case err == nil:
	case errors.Is(err, recommend.ErrModelNotFound) && h.cfg.StrictParams:
		respondError(w, r, http.StatusNotFound, models.MsgModelNotTrained)
		return
	default:
		respondInternalError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Debug().
		Str("user_id", sanitizeLogValue(userID)).
		Int("page", params.Page).
		Int("page_size", params.PageSize).
		Int("items", len(recs.Items)).
		Msg("served recommendations")

	respondJSON(w, r, http.StatusOK, models.NewRecommendationsResponse(userID, recs.Items))
}

// parsePageParams reads page and page_size. Range checks only apply in
// strict mode; out of range values otherwise yield an empty page.
func (h *Handler) parsePageParams(r *http.Request) (pageParams, error) {
	var p pageParams
	var err error

	if p.Page, err = parseRequiredInt(r, "page"); err != nil {
		if h.cfg.StrictParams {
			return p, paramError("page", err)
		}
		return p, err
	}
	if p.PageSize, err = parseRequiredInt(r, "page_size"); err != nil {
		if h.cfg.StrictParams {
			return p, paramError("page_size", err)
		}
		return p, err
	}

	if !h.cfg.StrictParams {
		return p, nil
	}
	if err := validation.ValidateStruct(&p); err != nil {
		return p, err
	}
	if h.cfg.MaxPageSize > 0 && p.PageSize > h.cfg.MaxPageSize {
		return p, validation.Errors{{
			Field:   "page_size",
			Tag:     "max",
			Param:   fmt.Sprint(h.cfg.MaxPageSize),
			Message: fmt.Sprintf("page_size must be at most %d", h.cfg.MaxPageSize),
		}}
	}
	return p, nil
}
