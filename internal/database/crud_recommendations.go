// Moodify - Emotion-Driven Music Recommendation Service
// Copyright 2026 Maxim F. (mfedorov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfedorov/moodify

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/mfedorov/moodify/internal/metrics"
	"github.com/mfedorov/moodify/internal/models"
)

// InsertRecommendation stores one recommendation record. The features map
// is serialized to a JSON text column; an empty map stores as "{}".
func (db *DB) InsertRecommendation(ctx context.Context, rec *models.RecommendationRecord) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	features := rec.Features
	if features == nil {
		features = map[string]any{}
	}
	featuresJSON, err := json.Marshal(features)
	if err != nil {
		return fmt.Errorf("failed to marshal features: %w", err)
	}

	const query = `
		INSERT INTO recommendations (
			id, user_id, emotion, confidence,
			track_id, track_name, track_artist, track_album,
			track_image_url, track_external_url, track_duration_ms, track_popularity,
			features, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	start := time.Now()
	_, err = db.conn.ExecContext(ctx, query,
		rec.ID, rec.UserID, rec.Emotion, rec.Confidence,
		rec.TrackID, rec.TrackName, rec.TrackArtist, rec.TrackAlbum,
		rec.TrackImageURL, rec.TrackExternalURL, rec.TrackDurationMS, rec.TrackPopularity,
		string(featuresJSON), rec.CreatedAt.UTC())
	metrics.RecordDBQuery("insert", "recommendations", time.Since(start), err)

	if err != nil {
		return fmt.Errorf("failed to insert recommendation: %w", err)
	}
	return nil
}

// ListRecommendationsByUser returns the user's most recent recommendation
// records, newest first.
func (db *DB) ListRecommendationsByUser(ctx context.Context, userID string, limit int) ([]models.RecommendationRecord, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	const query = `
		SELECT id, user_id, emotion, confidence,
			track_id, track_name, track_artist, track_album,
			track_image_url, track_external_url, track_duration_ms, track_popularity,
			features, created_at
		FROM recommendations
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ?`

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, userID, limit)
	metrics.RecordDBQuery("select", "recommendations", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query recommendations: %w", err)
	}
	defer closeQuietly(rows)

	records := make([]models.RecommendationRecord, 0, limit)
	for rows.Next() {
		var rec models.RecommendationRecord
		var featuresJSON string
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.Emotion, &rec.Confidence,
			&rec.TrackID, &rec.TrackName, &rec.TrackArtist, &rec.TrackAlbum,
			&rec.TrackImageURL, &rec.TrackExternalURL, &rec.TrackDurationMS, &rec.TrackPopularity,
			&featuresJSON, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recommendation: %w", err)
		}

		if featuresJSON != "" && featuresJSON != "{}" {
			if err := json.Unmarshal([]byte(featuresJSON), &rec.Features); err != nil {
				return nil, fmt.Errorf("failed to unmarshal features for %s: %w", rec.ID, err)
			}
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recommendations: %w", err)
	}
	return records, nil
}
