// Moodify - Emotion-Driven Music Recommendation Service
// Copyright 2026 Maxim F. (mfedorov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfedorov/moodify

package auth

import (
	"context"
	"net/http"

	"github.com/mfedorov/moodify/internal/models"
)

// UserLookup loads user rows for session resolution. Implemented by the
// database layer.
type UserLookup interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// SessionResolver resolves identities from session cookies. It is the
// highest-priority resolver: a valid session wins over any bearer token
// on the same request.
type SessionResolver struct {
	store      SessionStore
	users      UserLookup
	cookieName string
}

// NewSessionResolver creates a session cookie resolver.
func NewSessionResolver(store SessionStore, users UserLookup, cookieName string) *SessionResolver {
	return &SessionResolver{
		store:      store,
		users:      users,
		cookieName: cookieName,
	}
}

// Resolve looks up the session named by the request cookie and loads its
// owning user. A missing cookie means no credentials; a stale or unknown
// session is invalid credentials. Either way the chain moves on.
func (s *SessionResolver) Resolve(ctx context.Context, r *http.Request) (*Identity, error) {
	cookie, err := r.Cookie(s.cookieName)
	if err != nil || cookie.Value == "" {
		return nil, ErrNoCredentials
	}

	session, err := s.store.GetSession(ctx, cookie.Value)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, session.UserID)
	if err != nil {
		// Session references a user that no longer exists. The cascade
		// normally removes such sessions; treat leftovers as invalid.
		return nil, ErrInvalidCredentials
	}

	return &Identity{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Method:      s.Name(),
	}, nil
}

// Name returns the resolver name.
func (s *SessionResolver) Name() string {
	return "session"
}

// Priority returns the resolver priority. Sessions run first (10).
func (s *SessionResolver) Priority() int {
	return 10
}
