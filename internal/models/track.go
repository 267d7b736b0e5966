// Moodify - Emotion-Driven Music Recommendation Service
// Copyright 2026 Maxim F. (mfedorov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfedorov/moodify

package models

// Track represents a single track sourced from the recommendation provider.
//
// Tracks are read-only from this service's perspective: they are forwarded
// to the caller as-is and a representative track's metadata is archived in
// the recommendation history. The service never mutates or re-fetches them.
//
// Key Fields:
//   - ID: provider track identifier
//   - Name/Artist/Album: display metadata (Artist joins multiple artists)
//   - ImageURL: album art, largest available size
//   - ExternalURL: provider web link for the track
//   - PreviewURL: 30-second audio preview, empty when unavailable
//   - DurationMS: track length in milliseconds
//   - Popularity: provider popularity score (0-100)
type Track struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Artist      string `json:"artist"`
	Album       string `json:"album"`
	ImageURL    string `json:"imageUrl,omitempty"`
	ExternalURL string `json:"externalUrl,omitempty"`
	PreviewURL  string `json:"previewUrl,omitempty"`
	DurationMS  int    `json:"durationMs"`
	Popularity  int    `json:"popularity"`
	Explicit    bool   `json:"explicit"`
}
