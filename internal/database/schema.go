// Moodify - Emotion-Driven Music Recommendation Service
// Copyright 2026 Maxim F. (mfedorov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfedorov/moodify

/*
schema.go - Database Schema Management

Tables:
  - users: account rows (unique email, bcrypt password hash)
  - sessions: cookie-backed sessions, expire via TTL and the janitor
  - recommendations: one row per successful recommendation response,
    carrying the representative track and a free-form features blob
  - emotion_analyses: client-submitted emotion detection results
  - user_statistics: one aggregate counter row per user

Every non-users table declares ON DELETE CASCADE against users(id), so
deleting an account removes its sessions, history, analyses, and counters
in the engine without application-level cleanup code.

Schema Strategy (Pre-Release):
All columns are defined in the initial CREATE TABLE statement. There are no
versioned migrations yet; the statements are idempotent (IF NOT EXISTS) and
run at every startup under the configured schema timeout.
*/
package database

import (
	"context"
	"fmt"
)

// schemaContext returns a context with the configured schema timeout
func (db *DB) schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), db.cfg.SchemaTimeout)
}

// createTables creates the core database tables
func (db *DB) createTables() error {
	ctx, cancel := db.schemaContext()
	defer cancel()

	for _, query := range getTableCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}

	return nil
}

// getTableCreationQueries returns the table creation SQL statements
func getTableCreationQueries() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);`,

		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			expires_at TIMESTAMP NOT NULL,
			created_at TIMESTAMP NOT NULL
		);`,

		`CREATE TABLE IF NOT EXISTS recommendations (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			emotion TEXT NOT NULL,
			confidence REAL,
			track_id TEXT NOT NULL,
			track_name TEXT NOT NULL,
			track_artist TEXT NOT NULL,
			track_album TEXT NOT NULL DEFAULT '',
			track_image_url TEXT NOT NULL DEFAULT '',
			track_external_url TEXT NOT NULL DEFAULT '',
			track_duration_ms INTEGER NOT NULL DEFAULT 0,
			track_popularity INTEGER NOT NULL DEFAULT 0,
			features TEXT NOT NULL DEFAULT '{}',
			created_at TIMESTAMP NOT NULL
		);`,

		`CREATE TABLE IF NOT EXISTS emotion_analyses (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			emotion TEXT NOT NULL,
			confidence REAL NOT NULL,
			source TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL
		);`,

		`CREATE TABLE IF NOT EXISTS user_statistics (
			user_id TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
			total_recommendations INTEGER NOT NULL DEFAULT 0,
			total_analyses INTEGER NOT NULL DEFAULT 0,
			last_activity_at TIMESTAMP NOT NULL
		);`,
	}
}

// createIndexes creates indexes for common query patterns
func (db *DB) createIndexes() error {
	ctx, cancel := db.schemaContext()
	defer cancel()

	queries := []string{
		`CREATE INDEX IF NOT EXISTS idx_sessions_user_id ON sessions(user_id);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at);`,
		`CREATE INDEX IF NOT EXISTS idx_recommendations_user_created ON recommendations(user_id, created_at DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_user_created ON emotion_analyses(user_id, created_at DESC);`,
	}

	for _, query := range queries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create index: %s: %w", query, err)
		}
	}

	return nil
}
