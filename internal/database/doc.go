// Moodify - Emotion-Driven Music Recommendation Service
// Copyright 2026 Maxim F. (mfedorov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfedorov/moodify

// Package database provides data access for the Moodify application.
//
// # Overview
//
// This package is the data layer between the application and SQLite,
// covering schema management, user accounts, recommendation history,
// emotion analyses, and per-user statistics.
//
// # Architecture
//
// The package is organized into domain-specific files:
//
//   - database.go: connection lifecycle, pooling, ping
//   - schema.go: table and index creation with cascade declarations
//   - crud_users.go: user rows, implements the auth.UserStore contract
//   - crud_recommendations.go: recommendation history with JSON feature blobs
//   - crud_analyses.go: submitted emotion analysis rows
//   - crud_stats.go: atomic per-user counter upserts
//
// Session rows share this schema (so the user delete cascade covers them)
// but their CRUD lives in the auth package next to the SessionStore
// interface it implements.
//
// # Database Technology
//
// SQLite via the CGO driver (github.com/mattn/go-sqlite3), opened in WAL
// mode with foreign keys enabled. Foreign key enforcement is per
// connection in SQLite, so it is set in the DSN rather than with a
// one-off PRAGMA.
//
// # Deletion Semantics
//
// Every non-users table declares ON DELETE CASCADE against users(id).
// Deleting an account is a single DELETE; the engine removes dependent
// sessions, recommendations, analyses, and statistics. Application code
// never cleans up dependents manually.
package database
