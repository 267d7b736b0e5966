// Moodify - Emotion-Driven Music Recommendation Service
// Copyright 2026 Maxim F. (mfedorov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfedorov/moodify

package models

// Emotion labels accepted by the recommendation and analysis endpoints.
// The set matches the output classes of common facial expression models;
// requests carrying any other value are rejected during validation.
const (
	EmotionHappy     = "happy"
	EmotionSad       = "sad"
	EmotionAngry     = "angry"
	EmotionSurprised = "surprised"
	EmotionNeutral   = "neutral"
	EmotionFear      = "fear"
	EmotionDisgust   = "disgust"
)

// ValidEmotions lists every accepted emotion label in a stable order.
var ValidEmotions = []string{
	EmotionHappy,
	EmotionSad,
	EmotionAngry,
	EmotionSurprised,
	EmotionNeutral,
	EmotionFear,
	EmotionDisgust,
}

// IsValidEmotion reports whether label is one of the accepted emotions.
func IsValidEmotion(label string) bool {
	for _, e := range ValidEmotions {
		if e == label {
			return true
		}
	}
	return false
}
