// Moodify - Emotion-Driven Music Recommendation Service
// Copyright 2026 Maxim F. (mfedorov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfedorov/moodify

/*
Package models defines data structures for the Moodify application.

This package contains all data models used throughout the application:
database rows, API request/response structures, and the track entities
returned by the external recommendation provider. It is the single source
of truth for data structure definitions.

Model Categories:

 1. Database Models:
    - User: registered account (owns all other durable rows)
    - Session: cookie-backed login session
    - RecommendationRecord: snapshot of one generated recommendation
    - EmotionAnalysis: one submitted emotion detection result
    - UserStatistics: per-user aggregate counters

 2. API Request/Response Models:
    - APIResponse: standard success wrapper
    - APIError: error body with optional field-level detail
    - RecommendationData: tracklist payload for a successful request

 3. Provider Models:
    - Track: read-only entity sourced from the recommendation provider

JSON serialization uses camelCase field names to match the public API
contract, and omitempty on optional pointer fields.
*/
package models
