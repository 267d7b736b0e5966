// Moodify - Emotion-Driven Music Recommendation Service
// Copyright 2026 Maxim F. (mfedorov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfedorov/moodify

package spotify

import (
	"fmt"
	"strings"

	"github.com/mfedorov/moodify/internal/models"
)

// emotionProfile maps one detected emotion onto Spotify recommendation
// parameters: seed genres plus target audio features. Valence measures
// musical positiveness, energy measures intensity; both range 0.0 to 1.0.
type emotionProfile struct {
	SeedGenres    []string
	TargetValence float64
	TargetEnergy  float64
}

// emotionProfiles covers every canonical emotion. The targets steer the
// recommendation engine rather than filter it: a sad profile still returns
// tracks, just clustered around low valence and low energy.
var emotionProfiles = map[string]emotionProfile{
	models.EmotionHappy: {
		SeedGenres:    []string{"happy", "pop", "dance"},
		TargetValence: 0.9,
		TargetEnergy:  0.8,
	},
	models.EmotionSad: {
		SeedGenres:    []string{"sad", "acoustic", "piano"},
		TargetValence: 0.2,
		TargetEnergy:  0.3,
	},
	models.EmotionAngry: {
		SeedGenres:    []string{"metal", "hard-rock", "punk"},
		TargetValence: 0.3,
		TargetEnergy:  0.95,
	},
	models.EmotionSurprised: {
		SeedGenres:    []string{"electronic", "dance", "indie-pop"},
		TargetValence: 0.7,
		TargetEnergy:  0.7,
	},
	models.EmotionNeutral: {
		SeedGenres:    []string{"chill", "indie", "ambient"},
		TargetValence: 0.5,
		TargetEnergy:  0.5,
	},
	models.EmotionFear: {
		SeedGenres:    []string{"ambient", "classical", "sleep"},
		TargetValence: 0.2,
		TargetEnergy:  0.4,
	},
	models.EmotionDisgust: {
		SeedGenres:    []string{"grunge", "punk-rock", "industrial"},
		TargetValence: 0.25,
		TargetEnergy:  0.8,
	},
}

// profileFor returns the query profile for an emotion. Emotions are
// normalized to lowercase; unknown emotions are an error because the
// provider has no meaningful seed to query with.
func profileFor(emotion string) (emotionProfile, error) {
	profile, ok := emotionProfiles[strings.ToLower(emotion)]
	if !ok {
		return emotionProfile{}, fmt.Errorf("no audio profile for emotion %q", emotion)
	}
	return profile, nil
}

// seedGenresParam renders the profile's genres as the comma-separated value
// the seed_genres query parameter expects.
func (p emotionProfile) seedGenresParam() string {
	return strings.Join(p.SeedGenres, ",")
}
