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

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/mfedorov/moodify/internal/auth"
	"github.com/mfedorov/moodify/internal/metrics"
	"github.com/mfedorov/moodify/internal/models"
)

// CreateUser inserts a new user row. A duplicate email reports
// auth.ErrEmailTaken per the UserStore contract.
func (db *DB) CreateUser(ctx context.Context, user *models.User) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	const query = `
		INSERT INTO users (id, email, name, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	start := time.Now()
	_, err := db.conn.ExecContext(ctx, query,
		user.ID, user.Email, user.DisplayName, user.PasswordHash,
		user.CreatedAt.UTC(), user.UpdatedAt.UTC())
	metrics.RecordDBQuery("insert", "users", time.Since(start), err)

	if err != nil {
		if isUniqueViolation(err) {
			return auth.ErrEmailTaken
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// GetUserByEmail loads a user by email, auth.ErrUserNotFound when absent.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	const query = `
		SELECT id, email, name, password_hash, created_at, updated_at
		FROM users
		WHERE email = ?`

	start := time.Now()
	var user models.User
	err := db.conn.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.DisplayName, &user.PasswordHash,
		&user.CreatedAt, &user.UpdatedAt)
	metrics.RecordDBQuery("select", "users", time.Since(start), ignoreNoRows(err))

	if errors.Is(err, sql.ErrNoRows) {
		return nil, auth.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user by email: %w", err)
	}
	return &user, nil
}

// GetUserByID loads a user by ID, auth.ErrUserNotFound when absent.
func (db *DB) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	const query = `
		SELECT id, email, name, password_hash, created_at, updated_at
		FROM users
		WHERE id = ?`

	start := time.Now()
	var user models.User
	err := db.conn.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.DisplayName, &user.PasswordHash,
		&user.CreatedAt, &user.UpdatedAt)
	metrics.RecordDBQuery("select", "users", time.Since(start), ignoreNoRows(err))

	if errors.Is(err, sql.ErrNoRows) {
		return nil, auth.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user by id: %w", err)
	}
	return &user, nil
}

// DeleteUser removes a user row. The schema-level cascade removes the
// user's sessions, recommendations, analyses, and statistics with it.
func (db *DB) DeleteUser(ctx context.Context, id string) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	const query = `DELETE FROM users WHERE id = ?`

	start := time.Now()
	result, err := db.conn.ExecContext(ctx, query, id)
	metrics.RecordDBQuery("delete", "users", time.Since(start), err)

	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to count deleted rows: %w", err)
	}
	if affected == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}

// isUniqueViolation reports whether err is a SQLite unique constraint error
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

// ignoreNoRows keeps sql.ErrNoRows out of the query error metric; an empty
// result is an answer, not a failure.
func ignoreNoRows(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	return err
}
