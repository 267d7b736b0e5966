// Moodify - Emotion-Driven Music Recommendation Service
// Copyright 2026 Maxim F. (mfedorov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfedorov/moodify

package api

import (
	"net/http"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/mfedorov/moodify/internal/models"
	"github.com/mfedorov/moodify/internal/validation"
)

const (
	// defaultRecommendationLimit applies when a request omits limit.
	defaultRecommendationLimit = 20

	// maxRequestBodySize caps request bodies well above any legitimate
	// payload for these endpoints.
	maxRequestBodySize = 1 << 20 // 1MB

	// List endpoints clamp their limit parameter instead of rejecting it.
	defaultListLimit = 20
	maxListLimit     = 100
)

// RecommendationRequest is the body of POST /api/music/recommendations.
//
// Emotion is the only required field. Confidence and limit use pointers so
// "absent" and "zero" stay distinguishable: limit 0 is a validation error,
// absent limit means the default.
type RecommendationRequest struct {
	Emotion     string           `json:"emotion" validate:"required,oneof=happy sad angry surprised neutral fear disgust"`
	Confidence  *float64         `json:"confidence" validate:"omitempty,gte=0,lte=1"`
	Limit       *int             `json:"limit" validate:"omitempty,gte=1,lte=50"`
	Preferences *UserPreferences `json:"userPreferences" validate:"omitempty"`
}

// UserPreferences carries optional client-side filtering hints. They are
// validated and archived with the recommendation record but not forwarded
// to the provider.
type UserPreferences struct {
	Genres          []string `json:"genres" validate:"omitempty,dive,min=1"`
	ExcludeExplicit bool     `json:"excludeExplicit"`
}

// EffectiveLimit returns the requested track count, defaulting when absent.
func (req *RecommendationRequest) EffectiveLimit() int {
	if req.Limit == nil {
		return defaultRecommendationLimit
	}
	return *req.Limit
}

// AnalysisRequest is the body of POST /api/emotion/analysis. Unlike the
// recommendation request, confidence is required here: an analysis without
// a score is not worth archiving.
type AnalysisRequest struct {
	Emotion    string   `json:"emotion" validate:"required,oneof=happy sad angry surprised neutral fear disgust"`
	Confidence *float64 `json:"confidence" validate:"required,gte=0,lte=1"`
	Source     string   `json:"source" validate:"omitempty,max=100"`
}

// decodeAndValidate decodes a JSON request body into dst and validates it.
// Returns the full list of violations; a malformed body maps to a single
// body-level entry so the response shape stays uniform.
func decodeAndValidate(r *http.Request, dst any) []models.FieldError {
	r.Body = http.MaxBytesReader(nil, r.Body, maxRequestBodySize)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return []models.FieldError{{Field: "body", Message: "body must be valid JSON"}}
	}

	if verr := validation.ValidateStruct(dst); verr != nil {
		return verr.FieldErrors()
	}
	return nil
}

// parseListLimit reads the limit query parameter for list endpoints.
// Non-numeric or absent values fall back to the default; numeric values
// clamp to [1, maxListLimit].
func parseListLimit(r *http.Request) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultListLimit
	}

	limit, err := strconv.Atoi(raw)
	if err != nil {
		return defaultListLimit
	}
	if limit < 1 {
		return 1
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

// featureBlob assembles the free-form JSON blob archived with each
// recommendation record: the request parameters that shaped the response
// plus the returned track count.
func featureBlob(req *RecommendationRequest, trackCount int) map[string]any {
	features := map[string]any{
		"limit":      req.EffectiveLimit(),
		"trackCount": trackCount,
	}
	if req.Confidence != nil {
		features["confidence"] = *req.Confidence
	}
	if req.Preferences != nil {
		features["preferences"] = map[string]any{
			"genres":          req.Preferences.Genres,
			"excludeExplicit": req.Preferences.ExcludeExplicit,
		}
	}
	return features
}
