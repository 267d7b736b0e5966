// Moodify - Emotion-Driven Music Recommendation Service
// Copyright 2026 Maxim F. (mfedorov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfedorov/moodify

package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mfedorov/moodify/internal/auth"
	"github.com/mfedorov/moodify/internal/config"
	"github.com/mfedorov/moodify/internal/models"
)

// setupTestDB creates a file-backed test database in a per-test temp dir.
// A real file (not :memory:) keeps all pooled connections on one database.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	cfg := &config.DatabaseConfig{
		Path:          filepath.Join(t.TempDir(), "moodify-test.db"),
		MaxOpenConns:  4,
		MaxIdleConns:  2,
		BusyTimeout:   5 * time.Second,
		SchemaTimeout: 30 * time.Second,
	}

	db, err := New(cfg)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Failed to close test database: %v", err)
		}
	})
	return db
}

func createTestUser(t *testing.T, db *DB, email string) *models.User {
	t.Helper()

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		DisplayName:  "Test Listener",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := db.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	return user
}

func TestNew_CreatesSchema(t *testing.T) {
	db := setupTestDB(t)

	tables := []string{"users", "sessions", "recommendations", "emotion_analyses", "user_statistics"}
	for _, table := range tables {
		var name string
		err := db.Conn().QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing after New(): %v", table, err)
		}
	}
}

func TestNew_CreatesParentDirectory(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Path:          filepath.Join(t.TempDir(), "nested", "dir", "moodify.db"),
		MaxOpenConns:  2,
		MaxIdleConns:  1,
		BusyTimeout:   5 * time.Second,
		SchemaTimeout: 30 * time.Second,
	}

	db, err := New(cfg)
	if err != nil {
		t.Fatalf("New() with nested path error = %v", err)
	}
	if err := db.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestPing(t *testing.T) {
	db := setupTestDB(t)

	if err := db.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

func TestUserCRUD(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "crud@example.com")

	byEmail, err := db.GetUserByEmail(ctx, "crud@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail() error = %v", err)
	}
	if byEmail.ID != user.ID {
		t.Errorf("GetUserByEmail() ID = %v, want %v", byEmail.ID, user.ID)
	}
	if byEmail.PasswordHash != user.PasswordHash {
		t.Errorf("GetUserByEmail() PasswordHash not preserved")
	}

	byID, err := db.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if byID.Email != user.Email {
		t.Errorf("GetUserByID() Email = %v, want %v", byID.Email, user.Email)
	}

	if err := db.DeleteUser(ctx, user.ID); err != nil {
		t.Fatalf("DeleteUser() error = %v", err)
	}
	if _, err := db.GetUserByID(ctx, user.ID); !errors.Is(err, auth.ErrUserNotFound) {
		t.Errorf("GetUserByID() after delete error = %v, want ErrUserNotFound", err)
	}
	if err := db.DeleteUser(ctx, user.ID); !errors.Is(err, auth.ErrUserNotFound) {
		t.Errorf("DeleteUser() repeated error = %v, want ErrUserNotFound", err)
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "dup@example.com")

	now := time.Now().UTC()
	dup := &models.User{
		ID:           uuid.New().String(),
		Email:        "dup@example.com",
		PasswordHash: "$2a$10$other",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err := db.CreateUser(context.Background(), dup)
	if !errors.Is(err, auth.ErrEmailTaken) {
		t.Errorf("CreateUser() duplicate error = %v, want ErrEmailTaken", err)
	}
}

func TestGetUser_NotFound(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if _, err := db.GetUserByEmail(ctx, "ghost@example.com"); !errors.Is(err, auth.ErrUserNotFound) {
		t.Errorf("GetUserByEmail() error = %v, want ErrUserNotFound", err)
	}
	if _, err := db.GetUserByID(ctx, "ghost-id"); !errors.Is(err, auth.ErrUserNotFound) {
		t.Errorf("GetUserByID() error = %v, want ErrUserNotFound", err)
	}
}

// TestDeleteUserCascade verifies that deleting a user removes every
// dependent row through the schema-declared cascades.
func TestDeleteUserCascade(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "cascade@example.com")
	survivor := createTestUser(t, db, "survivor@example.com")

	sessions := auth.NewSQLSessionStore(db.Conn())
	session := auth.NewSession(user.ID, 1*time.Hour)
	if err := sessions.CreateSession(ctx, session); err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	survivorSession := auth.NewSession(survivor.ID, 1*time.Hour)
	if err := sessions.CreateSession(ctx, survivorSession); err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	rec := &models.RecommendationRecord{
		UserID:      user.ID,
		Emotion:     models.EmotionHappy,
		TrackID:     "track-1",
		TrackName:   "Good Vibes",
		TrackArtist: "The Testers",
		Features:    map[string]any{"valence": 0.9},
	}
	if err := db.InsertRecommendation(ctx, rec); err != nil {
		t.Fatalf("InsertRecommendation() error = %v", err)
	}

	analysis := &models.EmotionAnalysis{
		UserID:     user.ID,
		Emotion:    models.EmotionHappy,
		Confidence: 0.92,
	}
	if err := db.InsertEmotionAnalysis(ctx, analysis); err != nil {
		t.Fatalf("InsertEmotionAnalysis() error = %v", err)
	}

	if err := db.IncrementRecommendationCount(ctx, user.ID); err != nil {
		t.Fatalf("IncrementRecommendationCount() error = %v", err)
	}

	if err := db.DeleteUser(ctx, user.ID); err != nil {
		t.Fatalf("DeleteUser() error = %v", err)
	}

	// Every dependent table is empty for the deleted user
	counts := map[string]string{
		"sessions":        `SELECT COUNT(*) FROM sessions WHERE user_id = ?`,
		"recommendations": `SELECT COUNT(*) FROM recommendations WHERE user_id = ?`,
		"analyses":        `SELECT COUNT(*) FROM emotion_analyses WHERE user_id = ?`,
		"statistics":      `SELECT COUNT(*) FROM user_statistics WHERE user_id = ?`,
	}
	for name, query := range counts {
		var count int
		if err := db.Conn().QueryRow(query, user.ID).Scan(&count); err != nil {
			t.Fatalf("count %s: %v", name, err)
		}
		if count != 0 {
			t.Errorf("%s rows after cascade = %d, want 0", name, count)
		}
	}

	// Other users' rows are untouched
	if _, err := sessions.GetSession(ctx, survivorSession.ID); err != nil {
		t.Errorf("survivor session lost to cascade: %v", err)
	}

	// Listing for the deleted user yields empty results, not errors
	recs, err := db.ListRecommendationsByUser(ctx, user.ID, 20)
	if err != nil {
		t.Fatalf("ListRecommendationsByUser() error = %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("ListRecommendationsByUser() returned %d rows after cascade, want 0", len(recs))
	}
}
