// Moodify - Emotion-Driven Music Recommendation Service
// Copyright 2026 Maxim F. (mfedorov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfedorov/moodify

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mfedorov/moodify/internal/auth"
	"github.com/mfedorov/moodify/internal/middleware"
)

// chiMiddleware adapts http.HandlerFunc middleware to Chi's func(http.Handler) http.Handler.
// This allows the request ID and Prometheus middleware to work with Chi's r.Use().
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// Router wires handlers and middleware into the HTTP routing table.
type Router struct {
	handler       *Handler
	authHandlers  *auth.AuthHandlers
	chain         *auth.ResolverChain
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router over the given handlers and credential chain.
// A nil chiMW falls back to the default middleware configuration.
func NewRouter(handler *Handler, authHandlers *auth.AuthHandlers, chain *auth.ResolverChain, chiMW *ChiMiddleware) *Router {
	if chiMW == nil {
		chiMW = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		authHandlers:  authHandlers,
		chain:         chain,
		chiMiddleware: chiMW,
	}
}

// SetupChi configures all HTTP routes using the Chi router.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	// Applied to ALL routes in order
	r.Use(chiMiddleware(middleware.RequestID)) // X-Request-ID header plus logging context
	r.Use(chimiddleware.RealIP)                // Extract real IP from X-Forwarded-For
	r.Use(chimiddleware.Recoverer)             // Recover from panics
	r.Use(router.chiMiddleware.CORS())         // CORS must be global to handle OPTIONS preflight

	// ========================
	// Health Endpoint
	// ========================
	// Unauthenticated; monitoring tools poll it without credentials.
	r.Route("/api/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/", router.handler.Health)
	})

	// ========================
	// Authentication Endpoints
	// ========================
	// Strict rate limiting for auth endpoints (brute force prevention),
	// no-store so credentials never land in shared caches.
	r.Route("/api/auth", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitAuth())
		r.Use(APISecurityHeaders())
		r.Use(NoStore())

		// Account creation and login carry the strictest limits
		r.With(router.chiMiddleware.RateLimitLogin()).Post("/register", router.authHandlers.Register)
		r.With(router.chiMiddleware.RateLimitLogin()).Post("/login", router.authHandlers.Login)

		r.Post("/logout", router.authHandlers.Logout)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(router.chain))
			r.Get("/me", router.authHandlers.UserInfo)
		})
	})

	// ========================
	// Core API Endpoints
	// ========================
	// Everything below resolves credentials through the chain; requests
	// with no usable credential stop here with 401.
	r.Route("/api", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitAPI())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Use(auth.RequireAuth(router.chain))

		r.Post("/music/recommendations", router.handler.Recommendations)
		r.Get("/music/history", router.handler.History)
		r.Get("/music/stats", router.handler.Stats)

		r.Post("/emotion/analysis", router.handler.Analyze)
		r.Get("/emotion/analyses", router.handler.Analyses)

		r.Delete("/users/me", router.handler.DeleteAccount)
	})

	// ========================
	// Observability
	// ========================
	r.Handle("/metrics", promhttp.Handler())

	return r
}
