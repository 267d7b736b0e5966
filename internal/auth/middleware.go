// Moodify - Emotion-Driven Music Recommendation Service
// Copyright 2026 Maxim F. (mfedorov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfedorov/moodify

package auth

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/mfedorov/moodify/internal/logging"
	"github.com/mfedorov/moodify/internal/models"
)

// RequireAuth returns middleware that resolves the request's identity
// through the chain and rejects unauthenticated requests with
// 401 {"message": "Unauthorized"}.
//
// On success the identity is stored in the request context; handlers read
// it back with IdentityFromContext.
func RequireAuth(chain *ResolverChain) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := chain.Resolve(r.Context(), r)
			if err != nil {
				logging.Ctx(r.Context()).Debug().
					Str("path", r.URL.Path).
					Str("method", r.Method).
					Msg("Request rejected: no resolvable identity")
				respondUnauthorized(w)
				return
			}

			ctx := ContextWithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// respondUnauthorized writes the fixed 401 envelope.
func respondUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	if err := json.NewEncoder(w).Encode(models.APIError{Message: "Unauthorized"}); err != nil {
		logging.Error().Err(err).Msg("Failed to encode unauthorized response")
	}
}
