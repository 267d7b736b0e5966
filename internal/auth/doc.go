// Moodify - Emotion-Driven Music Recommendation Service
// Copyright 2026 Maxim F. (mfedorov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfedorov/moodify

/*
Package auth provides credential resolution, session management, and the
account endpoints.

Every request that reaches a protected handler passed through the resolver
chain first. The chain tries each registered Resolver in priority order and
accepts the first identity it finds; a resolver failure of any kind (missing
credentials, a malformed token, an expired session) only moves the chain to
the next resolver. Only a fully exhausted chain yields 401, so a stale
Authorization header never blocks a browser with a valid session cookie.

Key Components:

  - ResolverChain: ordered credential resolution with silent fallthrough
  - SessionResolver: session cookie lookup against the session store
  - BearerResolver: Authorization header bearing an HS256 JWT
  - JWTManager: token generation and validation using HMAC-SHA256
  - SQLSessionStore: durable sessions in SQLite, covered by the user
    delete cascade; MemorySessionStore backs tests
  - AuthHandlers: register, login, logout, and userinfo endpoints

Resolution order:

Resolvers run lowest priority first. The session resolver registers at
priority 10 and the bearer resolver at 20, so a session cookie wins when a
request carries both credential kinds.

Usage Example:

	import (
	    "github.com/mfedorov/moodify/internal/auth"
	)

	jwtManager, err := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry)
	if err != nil {
	    log.Fatal().Err(err).Msg("Failed to create JWT manager")
	}

	store := auth.NewSQLSessionStore(db.Conn())
	chain := auth.NewResolverChain(
	    auth.NewSessionResolver(store, users, cfg.Auth.SessionCookie),
	    auth.NewBearerResolver(jwtManager),
	)

	router.Group(func(r chi.Router) {
	    r.Use(auth.RequireAuth(chain))
	    r.Post("/api/music/recommendations", handler.Recommendations)
	})

Passwords are hashed with bcrypt at a configurable cost (10 to 16, default
12). Login issues both credential surfaces at once: a session cookie for
browsers and a JWT for API callers.
*/
package auth
