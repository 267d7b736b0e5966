// Moodify - Emotion-Driven Music Recommendation Service
// Copyright 2026 Maxim F. (mfedorov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfedorov/moodify

package spotify

import (
	"strings"

	"github.com/mfedorov/moodify/internal/models"
)

// Wire types for the Spotify Web API. Field names follow the upstream JSON
// contract (snake_case); only the fields this service reads are declared.

type apiImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

type apiArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type apiAlbum struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Images []apiImage `json:"images"`
}

type apiExternalURLs struct {
	Spotify string `json:"spotify"`
}

type apiTrack struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Artists      []apiArtist     `json:"artists"`
	Album        apiAlbum        `json:"album"`
	ExternalURLs apiExternalURLs `json:"external_urls"`
	PreviewURL   string          `json:"preview_url"`
	DurationMS   int             `json:"duration_ms"`
	Popularity   int             `json:"popularity"`
	Explicit     bool            `json:"explicit"`
}

// recommendationsResponse is the body of GET /v1/recommendations.
type recommendationsResponse struct {
	Tracks []apiTrack `json:"tracks"`
}

// genreSeedsResponse is the body of GET /v1/recommendations/available-genre-seeds.
type genreSeedsResponse struct {
	Genres []string `json:"genres"`
}

// apiError is the standard Spotify error envelope, e.g.
// {"error":{"status":404,"message":"invalid id"}}.
type apiError struct {
	Error struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

// toTrack converts a wire track to the service model. Multiple artists join
// into one display string; album art uses the first image, which Spotify
// returns largest first.
func (t apiTrack) toTrack() models.Track {
	names := make([]string, 0, len(t.Artists))
	for _, artist := range t.Artists {
		if artist.Name != "" {
			names = append(names, artist.Name)
		}
	}

	track := models.Track{
		ID:          t.ID,
		Name:        t.Name,
		Artist:      strings.Join(names, ", "),
		Album:       t.Album.Name,
		ExternalURL: t.ExternalURLs.Spotify,
		PreviewURL:  t.PreviewURL,
		DurationMS:  t.DurationMS,
		Popularity:  t.Popularity,
		Explicit:    t.Explicit,
	}
	if len(t.Album.Images) > 0 {
		track.ImageURL = t.Album.Images[0].URL
	}
	return track
}

// toTracks converts a full recommendations payload, skipping entries without
// an ID. Spotify occasionally pads responses with null tracks for markets
// where a seed has no inventory.
func toTracks(tracks []apiTrack) []models.Track {
	out := make([]models.Track, 0, len(tracks))
	for _, t := range tracks {
		if t.ID == "" {
			continue
		}
		out = append(out, t.toTrack())
	}
	return out
}
