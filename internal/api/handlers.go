// Moodify - Emotion-Driven Music Recommendation Service
// Copyright 2026 Maxim F. (mfedorov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfedorov/moodify

package api

import (
	"context"
	"time"

	"github.com/mfedorov/moodify/internal/config"
	"github.com/mfedorov/moodify/internal/models"
)

// Provider supplies music recommendations for an emotion. It is a black
// box to this package: no retries, no caching, no inspection of partial
// results. Implemented by spotify.CircuitBreakerClient and
// spotify.StubProvider.
type Provider interface {
	GetRecommendationsByEmotion(ctx context.Context, emotion string, limit int) ([]models.Track, error)
}

// Store is the persistence surface the handlers need. Implemented by
// database.DB; tests substitute fakes to drive the failure branches.
type Store interface {
	Ping(ctx context.Context) error

	InsertRecommendation(ctx context.Context, rec *models.RecommendationRecord) error
	ListRecommendationsByUser(ctx context.Context, userID string, limit int) ([]models.RecommendationRecord, error)

	InsertEmotionAnalysis(ctx context.Context, analysis *models.EmotionAnalysis) error
	ListEmotionAnalysesByUser(ctx context.Context, userID string, limit int) ([]models.EmotionAnalysis, error)

	IncrementRecommendationCount(ctx context.Context, userID string) error
	IncrementAnalysisCount(ctx context.Context, userID string) error
	GetUserStatistics(ctx context.Context, userID string) (*models.UserStatistics, error)

	DeleteUser(ctx context.Context, userID string) error
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_health.go: health endpoint
//   - handlers_recommendations.go: the recommendation orchestrator
//   - handlers_history.go: history, statistics, analyses, account deletion
type Handler struct {
	store     Store
	provider  Provider
	cfg       *config.Config
	version   string
	startTime time.Time
}

// NewHandler creates the API handler with all required dependencies.
// version is the build-time version string reported by the health endpoint.
func NewHandler(store Store, provider Provider, cfg *config.Config, version string) *Handler {
	return &Handler{
		store:     store,
		provider:  provider,
		cfg:       cfg,
		version:   version,
		startTime: time.Now(),
	}
}
