// Moodify - Emotion-Driven Music Recommendation Service
// Copyright 2026 Maxim F. (mfedorov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfedorov/moodify

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mfedorov/moodify/internal/metrics"
	"github.com/mfedorov/moodify/internal/models"
)

// InsertEmotionAnalysis stores one emotion analysis row.
func (db *DB) InsertEmotionAnalysis(ctx context.Context, analysis *models.EmotionAnalysis) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if analysis.ID == "" {
		analysis.ID = uuid.New().String()
	}
	if analysis.CreatedAt.IsZero() {
		analysis.CreatedAt = time.Now().UTC()
	}

	const query = `
		INSERT INTO emotion_analyses (id, user_id, emotion, confidence, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	start := time.Now()
	_, err := db.conn.ExecContext(ctx, query,
		analysis.ID, analysis.UserID, analysis.Emotion, analysis.Confidence,
		analysis.Source, analysis.CreatedAt.UTC())
	metrics.RecordDBQuery("insert", "emotion_analyses", time.Since(start), err)

	if err != nil {
		return fmt.Errorf("failed to insert analysis: %w", err)
	}
	return nil
}

// ListEmotionAnalysesByUser returns the user's most recent analyses, newest first.
func (db *DB) ListEmotionAnalysesByUser(ctx context.Context, userID string, limit int) ([]models.EmotionAnalysis, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	const query = `
		SELECT id, user_id, emotion, confidence, source, created_at
		FROM emotion_analyses
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ?`

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, userID, limit)
	metrics.RecordDBQuery("select", "emotion_analyses", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query analyses: %w", err)
	}
	defer closeQuietly(rows)

	analyses := make([]models.EmotionAnalysis, 0, limit)
	for rows.Next() {
		var a models.EmotionAnalysis
		if err := rows.Scan(&a.ID, &a.UserID, &a.Emotion, &a.Confidence, &a.Source, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		analyses = append(analyses, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate analyses: %w", err)
	}
	return analyses, nil
}
