// Moodify - Emotion-Driven Music Recommendation Service
// Copyright 2026 Maxim F. (mfedorov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfedorov/moodify

package spotify

import (
	"context"
	"strings"

	"github.com/mfedorov/moodify/internal/models"
)

// StubProvider serves recommendations from a small built-in catalog instead
// of the Spotify API. It exists so the service runs end to end in
// development without provider credentials (spotify.enabled=false).
//
// Responses are deterministic: the same emotion always yields the same
// tracks, capped at the requested limit. The catalog holds a handful of
// tracks per emotion, so low limits truncate and high limits return the
// whole list, mirroring how the real API returns fewer tracks than asked
// for when inventory is thin.
type StubProvider struct{}

// NewStubProvider creates the built-in development provider.
func NewStubProvider() *StubProvider {
	return &StubProvider{}
}

// GetRecommendationsByEmotion returns the catalog entries for an emotion.
// Unknown emotions error the same way the real client does.
func (s *StubProvider) GetRecommendationsByEmotion(_ context.Context, emotion string, limit int) ([]models.Track, error) {
	if _, err := profileFor(emotion); err != nil {
		return nil, err
	}

	catalog := stubCatalog[strings.ToLower(emotion)]
	if limit < len(catalog) {
		catalog = catalog[:limit]
	}

	// Copy so callers cannot mutate the shared catalog
	tracks := make([]models.Track, len(catalog))
	copy(tracks, catalog)
	return tracks, nil
}

// Ping always succeeds; there is nothing to reach.
func (s *StubProvider) Ping(_ context.Context) error {
	return nil
}

// stubCatalog holds three representative tracks per emotion. IDs use a
// "stub-" prefix so they can never collide with real Spotify track IDs in
// persisted history.
var stubCatalog = map[string][]models.Track{
	models.EmotionHappy: {
		{ID: "stub-happy-1", Name: "Walking on Sunshine", Artist: "Katrina & The Waves", Album: "Walking on Sunshine", DurationMS: 238000, Popularity: 80},
		{ID: "stub-happy-2", Name: "Good Vibrations", Artist: "The Beach Boys", Album: "Smiley Smile", DurationMS: 219000, Popularity: 76},
		{ID: "stub-happy-3", Name: "Dancing Queen", Artist: "ABBA", Album: "Arrival", DurationMS: 231000, Popularity: 85},
	},
	models.EmotionSad: {
		{ID: "stub-sad-1", Name: "Someone Like You", Artist: "Adele", Album: "21", DurationMS: 285000, Popularity: 84},
		{ID: "stub-sad-2", Name: "Mad World", Artist: "Gary Jules", Album: "Trading Snakeoil for Wolftickets", DurationMS: 189000, Popularity: 74},
		{ID: "stub-sad-3", Name: "Hurt", Artist: "Johnny Cash", Album: "American IV", DurationMS: 218000, Popularity: 79},
	},
	models.EmotionAngry: {
		{ID: "stub-angry-1", Name: "Killing in the Name", Artist: "Rage Against the Machine", Album: "Rage Against the Machine", DurationMS: 314000, Popularity: 82, Explicit: true},
		{ID: "stub-angry-2", Name: "Break Stuff", Artist: "Limp Bizkit", Album: "Significant Other", DurationMS: 166000, Popularity: 75, Explicit: true},
		{ID: "stub-angry-3", Name: "Master of Puppets", Artist: "Metallica", Album: "Master of Puppets", DurationMS: 515000, Popularity: 83},
	},
	models.EmotionSurprised: {
		{ID: "stub-surprised-1", Name: "Bohemian Rhapsody", Artist: "Queen", Album: "A Night at the Opera", DurationMS: 354000, Popularity: 87},
		{ID: "stub-surprised-2", Name: "Paranoid Android", Artist: "Radiohead", Album: "OK Computer", DurationMS: 383000, Popularity: 77},
		{ID: "stub-surprised-3", Name: "Around the World", Artist: "Daft Punk", Album: "Homework", DurationMS: 429000, Popularity: 78},
	},
	models.EmotionNeutral: {
		{ID: "stub-neutral-1", Name: "Weightless", Artist: "Marconi Union", Album: "Weightless", DurationMS: 480000, Popularity: 65},
		{ID: "stub-neutral-2", Name: "Holocene", Artist: "Bon Iver", Album: "Bon Iver, Bon Iver", DurationMS: 337000, Popularity: 73},
		{ID: "stub-neutral-3", Name: "Intro", Artist: "The xx", Album: "xx", DurationMS: 128000, Popularity: 74},
	},
	models.EmotionFear: {
		{ID: "stub-fear-1", Name: "Clair de Lune", Artist: "Claude Debussy", Album: "Suite bergamasque", DurationMS: 300000, Popularity: 72},
		{ID: "stub-fear-2", Name: "Gymnopédie No. 1", Artist: "Erik Satie", Album: "Trois Gymnopédies", DurationMS: 210000, Popularity: 71},
		{ID: "stub-fear-3", Name: "An Ending (Ascent)", Artist: "Brian Eno", Album: "Apollo", DurationMS: 264000, Popularity: 66},
	},
	models.EmotionDisgust: {
		{ID: "stub-disgust-1", Name: "Smells Like Teen Spirit", Artist: "Nirvana", Album: "Nevermind", DurationMS: 301000, Popularity: 86},
		{ID: "stub-disgust-2", Name: "Closer", Artist: "Nine Inch Nails", Album: "The Downward Spiral", DurationMS: 373000, Popularity: 75, Explicit: true},
		{ID: "stub-disgust-3", Name: "Bulls on Parade", Artist: "Rage Against the Machine", Album: "Evil Empire", DurationMS: 231000, Popularity: 77},
	},
}
