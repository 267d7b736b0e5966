// Moodify - Emotion-Driven Music Recommendation Service
// Copyright 2026 Maxim F. (mfedorov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfedorov/moodify

package api

import (
	"errors"
	"net/http"

	"github.com/mfedorov/moodify/internal/auth"
	"github.com/mfedorov/moodify/internal/logging"
	"github.com/mfedorov/moodify/internal/models"
)

// History handles GET /api/music/history. Returns the caller's most recent
// recommendation records, newest first.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	identity := auth.IdentityFromContext(r.Context())
	if identity == nil {
		respondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	limit := parseListLimit(r)
	records, err := h.store.ListRecommendationsByUser(r.Context(), identity.UserID, limit)
	if err != nil {
		logging.Error().Err(err).Str("user_id", identity.UserID).Msg("History query failed")
		respondError(w, http.StatusInternalServerError, msgHistoryFailed)
		return
	}
	if records == nil {
		records = []models.RecommendationRecord{}
	}

	respondSuccess(w, http.StatusOK, map[string]any{
		"records": records,
		"count":   len(records),
	})
}

// Stats handles GET /api/music/stats. Users with no activity yet get a
// zero-value row, not an error.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	identity := auth.IdentityFromContext(r.Context())
	if identity == nil {
		respondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	stats, err := h.store.GetUserStatistics(r.Context(), identity.UserID)
	if err != nil {
		logging.Error().Err(err).Str("user_id", identity.UserID).Msg("Statistics query failed")
		respondError(w, http.StatusInternalServerError, msgStatsFailed)
		return
	}

	respondSuccess(w, http.StatusOK, stats)
}

// Analyze handles POST /api/emotion/analysis. Unlike the recommendation
// side channel, persistence is the point of this endpoint, so a failed
// insert or counter bump surfaces to the caller as 500.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
		return
	}

	identity := auth.IdentityFromContext(r.Context())
	if identity == nil {
		respondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	var req AnalysisRequest
	if fieldErrors := decodeAndValidate(r, &req); fieldErrors != nil {
		respondValidationError(w, fieldErrors)
		return
	}

	analysis := &models.EmotionAnalysis{
		UserID:     identity.UserID,
		Emotion:    req.Emotion,
		Confidence: *req.Confidence,
		Source:     req.Source,
	}
	if err := h.store.InsertEmotionAnalysis(r.Context(), analysis); err != nil {
		logging.Error().Err(err).Str("user_id", identity.UserID).Msg("Analysis insert failed")
		respondError(w, http.StatusInternalServerError, msgAnalysisFailed)
		return
	}
	if err := h.store.IncrementAnalysisCount(r.Context(), identity.UserID); err != nil {
		logging.Error().Err(err).Str("user_id", identity.UserID).Msg("Analysis counter bump failed")
		respondError(w, http.StatusInternalServerError, msgAnalysisFailed)
		return
	}

	respondSuccess(w, http.StatusCreated, analysis)
}

// Analyses handles GET /api/emotion/analyses, the caller's most recent
// analyses, newest first.
func (h *Handler) Analyses(w http.ResponseWriter, r *http.Request) {
	identity := auth.IdentityFromContext(r.Context())
	if identity == nil {
		respondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	limit := parseListLimit(r)
	analyses, err := h.store.ListEmotionAnalysesByUser(r.Context(), identity.UserID, limit)
	if err != nil {
		logging.Error().Err(err).Str("user_id", identity.UserID).Msg("Analyses query failed")
		respondError(w, http.StatusInternalServerError, msgAnalysesFailed)
		return
	}
	if analyses == nil {
		analyses = []models.EmotionAnalysis{}
	}

	respondSuccess(w, http.StatusOK, map[string]any{
		"analyses": analyses,
		"count":    len(analyses),
	})
}

// DeleteAccount handles DELETE /api/users/me. The user row goes first and
// the schema's ON DELETE CASCADE clauses take sessions, analyses,
// recommendations, and statistics with it. The session cookie is cleared
// so the browser does not keep presenting a dead session.
func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		respondError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
		return
	}

	identity := auth.IdentityFromContext(r.Context())
	if identity == nil {
		respondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	if err := h.store.DeleteUser(r.Context(), identity.UserID); err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, msgAccountUnknown)
			return
		}
		logging.Error().Err(err).Str("user_id", identity.UserID).Msg("Account deletion failed")
		respondError(w, http.StatusInternalServerError, msgAccountDeleteFail)
		return
	}

	logging.Info().Str("user_id", identity.UserID).Msg("Account deleted")

	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.Auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.Auth.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	respondSuccess(w, http.StatusOK, map[string]any{"deleted": true})
}
