// Moodify - Emotion-Driven Music Recommendation Service
// Copyright 2026 Maxim F. (mfedorov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfedorov/moodify

/*
Package api provides the HTTP REST API layer for Moodify.

This package implements the endpoints for emotion-driven music
recommendations, emotion analysis history, user statistics, and account
lifecycle. It serves as the interface between frontend clients and the
recommendation pipeline.

Key Components:

  - Router: Chi route configuration and middleware stack integration
  - Handler: Request handlers over a storage interface and a track provider
  - ChiMiddleware: CORS, per-endpoint rate limits, and security headers
  - Response formatting: the two JSON envelope shapes every endpoint uses
  - Request validation: declarative rules with aggregated field errors

API Categories:

1. Health (/api/health):
  - Unauthenticated liveness plus database reachability

2. Authentication (/api/auth/):
  - Register, login, logout, current identity
  - Handlers live in internal/auth; routed and rate limited here

3. Music (/api/music/):
  - POST recommendations: the core emotion to tracklist operation
  - GET history, GET stats

4. Emotion (/api/emotion/):
  - POST analysis, GET analyses

5. Account (/api/users/me):
  - DELETE cascades the caller's data and clears the session

Envelope Contract:

Success responses wrap payloads as {"success":true,"data":...}. Error
responses carry {"message":...} with an optional "errors" array of
field/message pairs for validation failures. The exact bodies are part of
the public contract and are asserted byte for byte in tests.

Authentication:

All endpoints except /api/health resolve credentials through the
auth.ResolverChain (session cookie first, bearer token second). The router
mounts auth.RequireAuth so handlers can assume an identity is present.

See Also:

  - internal/auth: credential resolvers and account handlers
  - internal/spotify: the track recommendation provider
  - internal/database: persistence for history and statistics
*/
package api
