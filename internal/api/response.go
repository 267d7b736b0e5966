// Moodify - Emotion-Driven Music Recommendation Service
// Copyright 2026 Maxim F. (mfedorov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfedorov/moodify

// Package api provides standardized API response handling.
// All endpoints share two body shapes: {"success":true,"data":…} for
// success and {"message":…} for failure, with "errors" added on
// validation failures. The shapes are part of the public contract and
// are asserted byte for byte in tests.
package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/mfedorov/moodify/internal/logging"
	"github.com/mfedorov/moodify/internal/models"
)

// Fixed client-facing error messages. Handlers never leak internal error
// text; the specific cause goes to the log, these go on the wire.
const (
	msgUnauthorized      = "Unauthorized"
	msgInvalidInput      = "Invalid input data"
	msgRecommendFailed   = "Failed to generate recommendations"
	msgInternalError     = "Internal server error"
	msgMethodNotAllowed  = "Method not allowed"
	msgAccountUnknown    = "Account not found"
	msgHistoryFailed     = "Failed to load history"
	msgStatsFailed       = "Failed to load statistics"
	msgAnalysisFailed    = "Failed to record analysis"
	msgAnalysesFailed    = "Failed to load analyses"
	msgAccountDeleteFail = "Failed to delete account"
)

// respondJSON writes any payload as JSON with proper headers.
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondSuccess writes the standard success wrapper.
func respondSuccess(w http.ResponseWriter, status int, data any) {
	respondJSON(w, status, models.APIResponse{Success: true, Data: data})
}

// respondError writes the flat error body {"message": "..."}.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, models.APIError{Message: message})
}

// respondValidationError writes the 400 body carrying every violated field.
func respondValidationError(w http.ResponseWriter, fieldErrors []models.FieldError) {
	respondJSON(w, http.StatusBadRequest, models.APIError{
		Message: msgInvalidInput,
		Errors:  fieldErrors,
	})
}
