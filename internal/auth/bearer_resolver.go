// Moodify - Emotion-Driven Music Recommendation Service
// Copyright 2026 Maxim F. (mfedorov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfedorov/moodify

package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// BearerResolver resolves identities from `Authorization: Bearer <JWT>`
// headers. It runs after the session resolver, so a valid session cookie
// always takes precedence over a bearer token on the same request.
type BearerResolver struct {
	manager *JWTManager
}

// NewBearerResolver creates a bearer token resolver backed by the given
// JWT manager.
func NewBearerResolver(manager *JWTManager) *BearerResolver {
	return &BearerResolver{manager: manager}
}

// Resolve extracts and validates the bearer token from the request.
func (b *BearerResolver) Resolve(ctx context.Context, r *http.Request) (*Identity, error) {
	tokenStr := extractBearerToken(r)
	if tokenStr == "" {
		return nil, ErrNoCredentials
	}

	claims, err := b.manager.ValidateToken(tokenStr)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredCredentials
		}
		return nil, ErrInvalidCredentials
	}

	if claims.Subject == "" {
		return nil, ErrInvalidCredentials
	}

	return &Identity{
		UserID:      claims.Subject,
		Email:       claims.Email,
		DisplayName: claims.DisplayName,
		Method:      b.Name(),
	}, nil
}

// Name returns the resolver name.
func (b *BearerResolver) Name() string {
	return "bearer"
}

// Priority returns the resolver priority. Bearer tokens run second (20),
// after cookie sessions (10).
func (b *BearerResolver) Priority() int {
	return 20
}

// extractBearerToken extracts the token from the Authorization header.
// Returns empty string when the header is absent or not a Bearer scheme.
func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
