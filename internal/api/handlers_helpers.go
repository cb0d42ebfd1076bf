// BlogMinds - Blog Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blogminds

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/blogminds/internal/logging"
	"github.com/tomtom215/blogminds/internal/models"
	"github.com/tomtom215/blogminds/internal/validation"
)

// sanitizeLogValue removes control characters from strings to prevent log injection attacks.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends a JSON response with proper headers
func respondJSON(w http.ResponseWriter, r *http.Request, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")

	data, err := json.Marshal(body)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Failed to write JSON response")
	}
}

// respondError sends {"error": message}.
func respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	respondJSON(w, r, status, models.ErrorResponse{Error: message})
}

// respondInternalError logs err with the request id and hides it from the client.
func respondInternalError(w http.ResponseWriter, r *http.Request, err error) {
	logging.Ctx(r.Context()).Error().
		Str("path", r.URL.Path).
		Str("error", sanitizeLogValue(err.Error())).
		Msg("API Error")
	respondError(w, r, http.StatusInternalServerError, models.MsgInternalError)
}

// respondValidationError sends a 400 with one entry per failed field.
func respondValidationError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		details[fe.Field] = fe.Message
	}
	respondJSON(w, r, http.StatusBadRequest, models.ErrorResponse{
		Error:   verrs.Error(),
		Details: details,
	})
}

// parseRequiredInt reads a required integer query parameter.
func parseRequiredInt(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, fmt.Errorf("%w: %s", errMissingParam, key)
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", errInvalidParam, key, sanitizeLogValue(raw))
	}
	return v, nil
}

// paramError converts a parse failure into the validation error shape.
func paramError(key string, err error) validation.Errors {
	msg := key + " must be an integer"
	tag := "numeric"
	if errors.Is(err, errMissingParam) {
		msg = key + " is required"
		tag = "required"
	}
	return validation.Errors{{Field: key, Tag: tag, Message: msg}}
}
