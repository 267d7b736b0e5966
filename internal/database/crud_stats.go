// Moodify - Emotion-Driven Music Recommendation Service
// Copyright 2026 Maxim F. (mfedorov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfedorov/moodify

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mfedorov/moodify/internal/metrics"
	"github.com/mfedorov/moodify/internal/models"
)

// IncrementRecommendationCount bumps total_recommendations by exactly one,
// creating the statistics row on first use. The upsert is a single statement
// so concurrent requests cannot lose increments.
func (db *DB) IncrementRecommendationCount(ctx context.Context, userID string) error {
	return db.incrementCounter(ctx, userID, "total_recommendations")
}

// IncrementAnalysisCount bumps total_analyses by exactly one, creating the
// statistics row on first use.
func (db *DB) IncrementAnalysisCount(ctx context.Context, userID string) error {
	return db.incrementCounter(ctx, userID, "total_analyses")
}

func (db *DB) incrementCounter(ctx context.Context, userID, column string) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	// column is one of two compile-time constants, never caller input
	query := fmt.Sprintf(`
		INSERT INTO user_statistics (user_id, %[1]s, last_activity_at)
		VALUES (?, 1, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			%[1]s = %[1]s + 1,
			last_activity_at = EXCLUDED.last_activity_at`, column)

	start := time.Now()
	_, err := db.conn.ExecContext(ctx, query, userID, time.Now().UTC())
	metrics.RecordDBQuery("upsert", "user_statistics", time.Since(start), err)

	if err != nil {
		return fmt.Errorf("failed to increment %s: %w", column, err)
	}
	return nil
}

// GetUserStatistics returns the user's aggregate counters. A user with no
// activity yet gets a zero-value row rather than an error.
func (db *DB) GetUserStatistics(ctx context.Context, userID string) (*models.UserStatistics, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	const query = `
		SELECT user_id, total_recommendations, total_analyses, last_activity_at
		FROM user_statistics
		WHERE user_id = ?`

	start := time.Now()
	var stats models.UserStatistics
	err := db.conn.QueryRowContext(ctx, query, userID).Scan(
		&stats.UserID, &stats.TotalRecommendations, &stats.TotalAnalyses, &stats.LastActivityAt)
	metrics.RecordDBQuery("select", "user_statistics", time.Since(start), ignoreNoRows(err))

	if errors.Is(err, sql.ErrNoRows) {
		return &models.UserStatistics{UserID: userID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user statistics: %w", err)
	}
	return &stats, nil
}
