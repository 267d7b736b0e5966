// Moodify - Emotion-Driven Music Recommendation Service
// Copyright 2026 Maxim F. (mfedorov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfedorov/moodify

/*
Package middleware provides HTTP middleware components for the application.

This package implements infrastructure middleware for request ID tracking
and Prometheus metrics instrumentation. These components work alongside the
Chi-ecosystem middleware (CORS, rate limiting, recovery) configured in the
api package to form the complete request processing stack.

Key Components:

  - Request ID: UUID-based request tracking for distributed tracing
  - Prometheus Metrics: HTTP request/response instrumentation

Usage Example - Request ID:

	http.HandleFunc("/api/health",
	    middleware.RequestID(handler),
	)

	// Access request ID in handler
	func handler(w http.ResponseWriter, r *http.Request) {
	    requestID := middleware.GetRequestID(r.Context())
	    logging.Ctx(r.Context()).Info().Msg("processing request")
	}

Thread Safety:

All middleware components are thread-safe:
  - Request ID uses context.Context (immutable)
  - Prometheus metrics use atomic operations

See Also:

  - internal/auth: credential resolution middleware
  - internal/api: HTTP handlers and Chi middleware factories
  - internal/metrics: Prometheus metrics definitions
*/
package middleware
