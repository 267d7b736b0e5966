// Moodify - Emotion-Driven Music Recommendation Service
// Copyright 2026 Maxim F. (mfedorov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfedorov/moodify

package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/mfedorov/moodify/internal/models"
)

// Session store errors
var (
	// ErrSessionNotFound indicates the session does not exist.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExpired indicates the session exists but has expired.
	ErrSessionExpired = errors.New("session expired")
)

// NewSessionID generates a cryptographically secure session identifier.
func NewSessionID() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to a still-random but weaker ID
		return hex.EncodeToString([]byte(time.Now().String()))
	}
	return hex.EncodeToString(bytes)
}

// NewSession creates a session row for a user with the given lifetime.
func NewSession(userID string, ttl time.Duration) *models.Session {
	now := time.Now()
	return &models.Session{
		ID:        NewSessionID(),
		UserID:    userID,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
}

// SessionStore defines the interface for session storage backends.
//
// The production store is SQL-backed so sessions participate in the user
// deletion cascade; MemorySessionStore exists for tests.
type SessionStore interface {
	// CreateSession stores a new session.
	CreateSession(ctx context.Context, session *models.Session) error

	// GetSession retrieves a session by ID.
	// Returns ErrSessionNotFound if not found.
	// Returns ErrSessionExpired if the session exists but is expired.
	GetSession(ctx context.Context, id string) (*models.Session, error)

	// DeleteSession removes a session by ID.
	// Does not return an error if the session doesn't exist.
	DeleteSession(ctx context.Context, id string) error

	// DeleteExpiredSessions removes all expired sessions and returns the
	// count of deleted rows.
	DeleteExpiredSessions(ctx context.Context) (int64, error)
}

// MemorySessionStore is an in-memory implementation of SessionStore.
// Suitable for tests; production uses the SQL-backed store so sessions
// are removed by the user deletion cascade.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
}

// NewMemorySessionStore creates an empty in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]*models.Session),
	}
}

// CreateSession stores a new session.
func (s *MemorySessionStore) CreateSession(ctx context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *session
	s.sessions[session.ID] = &cp
	return nil
}

// GetSession retrieves a session by ID.
func (s *MemorySessionStore) GetSession(ctx context.Context, id string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if session.Expired(time.Now()) {
		return nil, ErrSessionExpired
	}

	cp := *session
	return &cp, nil
}

// DeleteSession removes a session by ID.
func (s *MemorySessionStore) DeleteSession(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

// DeleteExpiredSessions removes all expired sessions.
func (s *MemorySessionStore) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	var deleted int64
	for id, session := range s.sessions {
		if session.Expired(now) {
			delete(s.sessions, id)
			deleted++
		}
	}
	return deleted, nil
}
