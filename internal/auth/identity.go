// Moodify - Emotion-Driven Music Recommendation Service
// Copyright 2026 Maxim F. (mfedorov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfedorov/moodify

package auth

import (
	"context"
	"errors"
	"net/http"
)

// Standard credential resolution errors
var (
	// ErrNoCredentials indicates no credentials were provided.
	ErrNoCredentials = errors.New("no credentials provided")

	// ErrInvalidCredentials indicates credentials were present but invalid.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrExpiredCredentials indicates credentials have expired.
	ErrExpiredCredentials = errors.New("credentials expired")

	// ErrNoIdentity indicates no resolver in the chain produced an identity.
	ErrNoIdentity = errors.New("no resolvable identity")
)

// Identity represents the authenticated principal of a single request.
// It is request-scoped and never persisted; durable user state lives in
// the users table keyed by UserID.
type Identity struct {
	// UserID is the unique identifier of the authenticated user.
	UserID string `json:"userId"`

	// Email is the user's email address when the resolving credential
	// carried one.
	Email string `json:"email,omitempty"`

	// DisplayName is the user's display name when known.
	DisplayName string `json:"displayName,omitempty"`

	// Method names the resolver that produced this identity
	// ("session" or "bearer"). Used for logging only.
	Method string `json:"-"`
}

// Resolver extracts an identity from one kind of credential.
//
// Implementations return (identity, nil) on success, ErrNoCredentials when
// the request carries no credential of their kind, and ErrInvalidCredentials
// or ErrExpiredCredentials when the credential is present but unusable. The
// chain treats every error the same way (try the next resolver), so a bad
// bearer token never blocks a valid session cookie and vice versa.
type Resolver interface {
	// Resolve extracts and validates this resolver's credential.
	Resolve(ctx context.Context, r *http.Request) (*Identity, error)

	// Name returns the resolver's name for logging and metrics.
	Name() string

	// Priority orders resolvers in the chain. Lower values are tried first.
	Priority() int
}

type identityContextKey struct{}

// ContextWithIdentity returns a context carrying the resolved identity.
func ContextWithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// IdentityFromContext extracts the resolved identity from the context.
// Returns nil when the request was not authenticated.
func IdentityFromContext(ctx context.Context) *Identity {
	if id, ok := ctx.Value(identityContextKey{}).(*Identity); ok {
		return id
	}
	return nil
}
