// Moodify - Emotion-Driven Music Recommendation Service
// Copyright 2026 Maxim F. (mfedorov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfedorov/moodify

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/mfedorov/moodify/internal/auth"
	"github.com/mfedorov/moodify/internal/logging"
	"github.com/mfedorov/moodify/internal/metrics"
	"github.com/mfedorov/moodify/internal/models"
)

// Recommendations handles POST /api/music/recommendations, the core
// operation: validated emotion in, tracklist envelope out.
//
// Failure handling is deliberately asymmetric and the two branches are kept
// explicit in this function:
//
//   - Provider failure is a hard failure. The whole request fails with 500
//     and no partial data leaves the handler.
//   - Persistence failure after provider success is a soft failure. The
//     history insert and the statistics upsert are best effort; their
//     errors are logged, counted, and swallowed. The caller's 200 response
//     reflects what the provider returned, not what the archive accepted.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
		return
	}

	identity := auth.IdentityFromContext(r.Context())
	if identity == nil {
		respondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	var req RecommendationRequest
	if fieldErrors := decodeAndValidate(r, &req); fieldErrors != nil {
		respondValidationError(w, fieldErrors)
		return
	}

	limit := req.EffectiveLimit()

	// Hard-fail branch: the provider is the source of truth for tracks.
	tracks, err := h.provider.GetRecommendationsByEmotion(r.Context(), req.Emotion, limit)
	if err != nil {
		logging.Error().
			Err(err).
			Str("emotion", req.Emotion).
			Int("limit", limit).
			Msg("Provider request failed")
		respondError(w, http.StatusInternalServerError, msgRecommendFailed)
		return
	}
	if tracks == nil {
		tracks = []models.Track{}
	}

	generatedAt := time.Now().UTC()

	// Soft-fail branch: archive before responding so the write shares the
	// request context, but never let it change the response.
	h.persistRecommendation(r.Context(), identity.UserID, &req, tracks, generatedAt)

	metrics.RecordRecommendation(req.Emotion, len(tracks))

	respondSuccess(w, http.StatusOK, models.RecommendationData{
		Emotion:     req.Emotion,
		Confidence:  req.Confidence,
		Tracks:      tracks,
		GeneratedAt: generatedAt,
		TotalTracks: len(tracks),
	})
}

// persistRecommendation records one successful recommendation: a history
// row snapshotting the first track, then the statistics counter bump.
// Every error path logs and returns; nothing propagates to the caller.
func (h *Handler) persistRecommendation(ctx context.Context, userID string, req *RecommendationRequest, tracks []models.Track, generatedAt time.Time) {
	record := &models.RecommendationRecord{
		UserID:     userID,
		Emotion:    req.Emotion,
		Confidence: req.Confidence,
		Features:   featureBlob(req, len(tracks)),
		CreatedAt:  generatedAt,
	}
	if len(tracks) > 0 {
		first := tracks[0]
		record.TrackID = first.ID
		record.TrackName = first.Name
		record.TrackArtist = first.Artist
		record.TrackAlbum = first.Album
		record.TrackImageURL = first.ImageURL
		record.TrackExternalURL = first.ExternalURL
		record.TrackDurationMS = first.DurationMS
		record.TrackPopularity = first.Popularity
	}

	if err := h.store.InsertRecommendation(ctx, record); err != nil {
		metrics.RecordPersistenceFailure("record")
		logging.Warn().
			Err(err).
			Str("user_id", userID).
			Str("emotion", req.Emotion).
			Msg("Recommendation history write failed; response unaffected")
	}

	if err := h.store.IncrementRecommendationCount(ctx, userID); err != nil {
		metrics.RecordPersistenceFailure("statistics")
		logging.Warn().
			Err(err).
			Str("user_id", userID).
			Msg("Statistics upsert failed; response unaffected")
	}
}
