// Moodify - Emotion-Driven Music Recommendation Service
// Copyright 2026 Maxim F. (mfedorov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfedorov/moodify

// Package spotify implements the music recommendation provider.
//
// The package translates detected emotions into Spotify recommendation
// queries: each emotion maps to seed genres and target audio features
// (valence and energy), and the Web API returns tracks clustered around
// those targets.
//
// # Components
//
//   - Client: core HTTP client with OAuth2 client-credentials tokens,
//     client-side rate limiting, and HTTP 429 backoff
//   - CircuitBreakerClient: wraps Client so sustained outages fail fast
//   - StubProvider: deterministic built-in catalog for development runs
//     without provider credentials
//
// # Usage
//
//	provider := spotify.NewCircuitBreakerClient(&cfg.Spotify)
//	tracks, err := provider.GetRecommendationsByEmotion(ctx, "happy", 20)
//
// Callers hold the provider behind their own interface; both
// CircuitBreakerClient and StubProvider satisfy the usual
// GetRecommendationsByEmotion/Ping pair.
package spotify
