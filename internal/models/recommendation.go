// Moodify - Emotion-Driven Music Recommendation Service
// Copyright 2026 Maxim F. (mfedorov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfedorov/moodify

package models

import (
	"time"
)

// RecommendationRecord is a persisted snapshot of one generated
// recommendation. Created once per successful orchestration, never updated
// in place, and deleted only as a cascade consequence of its owning user's
// deletion.
//
// The representative track is the first track of the generated list.
// Features is a free-form snapshot of the request (confidence, limit,
// preferences, track count) stored as a JSON blob; its shape is not part
// of any contract and may grow without a schema migration.
type RecommendationRecord struct {
	ID               string         `json:"id"`
	UserID           string         `json:"userId"`
	Emotion          string         `json:"emotion"`
	Confidence       *float64       `json:"confidence,omitempty"`
	TrackID          string         `json:"trackId"`
	TrackName        string         `json:"trackName"`
	TrackArtist      string         `json:"trackArtist"`
	TrackAlbum       string         `json:"trackAlbum,omitempty"`
	TrackImageURL    string         `json:"trackImageUrl,omitempty"`
	TrackExternalURL string         `json:"trackExternalUrl,omitempty"`
	TrackDurationMS  int            `json:"trackDurationMs"`
	TrackPopularity  int            `json:"trackPopularity"`
	Features         map[string]any `json:"features,omitempty"`
	CreatedAt        time.Time      `json:"createdAt"`
}

// EmotionAnalysis is one submitted emotion detection result.
//
// Analyses arrive from clients that run emotion detection themselves and
// report the outcome. Unlike recommendation history, storing an analysis
// is the whole point of its endpoint, so persistence failures there are
// surfaced instead of swallowed.
type EmotionAnalysis struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Emotion    string    `json:"emotion"`
	Confidence float64   `json:"confidence"`
	Source     string    `json:"source,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// UserStatistics holds one aggregate row per user.
//
// Counters only ever increment, one per successful request, through an
// atomic storage-level upsert (create with initial counts on first use,
// increment thereafter). There is no application-level locking; concurrent
// requests must not lose increments.
type UserStatistics struct {
	UserID               string    `json:"userId"`
	TotalRecommendations int64     `json:"totalRecommendations"`
	TotalAnalyses        int64     `json:"totalAnalyses"`
	LastActivityAt       time.Time `json:"lastActivityAt"`
}
