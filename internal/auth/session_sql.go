// Moodify - Emotion-Driven Music Recommendation Service
// Copyright 2026 Maxim F. (mfedorov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfedorov/moodify

package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mfedorov/moodify/internal/models"
)

// SQLSessionStore implements SessionStore on the shared SQLite handle.
// Sessions live in the same schema as users so that deleting a user
// removes their sessions through the foreign key cascade.
type SQLSessionStore struct {
	db *sql.DB
}

// NewSQLSessionStore creates a SQLite-backed session store. The sessions
// table must already exist; schema creation is owned by the database package.
func NewSQLSessionStore(db *sql.DB) *SQLSessionStore {
	return &SQLSessionStore{db: db}
}

// CreateSession stores a new session row.
func (s *SQLSessionStore) CreateSession(ctx context.Context, session *models.Session) error {
	const query = `
		INSERT INTO sessions (id, user_id, expires_at, created_at)
		VALUES (?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		session.ID, session.UserID, session.ExpiresAt.UTC(), session.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// GetSession retrieves a session by ID. Expired rows are reported as
// ErrSessionExpired and left in place for the janitor to collect.
func (s *SQLSessionStore) GetSession(ctx context.Context, id string) (*models.Session, error) {
	const query = `
		SELECT id, user_id, expires_at, created_at
		FROM sessions
		WHERE id = ?`

	var session models.Session
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&session.ID, &session.UserID, &session.ExpiresAt, &session.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query session: %w", err)
	}

	if session.Expired(time.Now()) {
		return nil, ErrSessionExpired
	}

	return &session, nil
}

// DeleteSession removes a session by ID. Deleting a missing session is not
// an error so logout stays idempotent.
func (s *SQLSessionStore) DeleteSession(ctx context.Context, id string) error {
	const query = `DELETE FROM sessions WHERE id = ?`

	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpiredSessions removes all sessions past their expiry and reports
// how many rows were purged.
func (s *SQLSessionStore) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	const query = `DELETE FROM sessions WHERE expires_at <= ?`

	result, err := s.db.ExecContext(ctx, query, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}

	purged, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count purged sessions: %w", err)
	}
	return purged, nil
}
