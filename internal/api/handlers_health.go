// Moodify - Emotion-Driven Music Recommendation Service
// Copyright 2026 Maxim F. (mfedorov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfedorov/moodify

package api

import (
	"net/http"
	"runtime"
	"time"

	"github.com/mfedorov/moodify/internal/logging"
	"github.com/mfedorov/moodify/internal/models"
)

// Health handles GET /api/health. It is unauthenticated so load balancers
// and uptime monitors can probe without credentials.
//
// The body is flat, not wrapped in the success envelope: health consumers
// are machines with fixed parsers. A failing database ping is the only
// condition that degrades the service to 503; the provider is checked
// lazily per request and has its own circuit breaker.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
		return
	}

	if err := h.store.Ping(r.Context()); err != nil {
		logging.Error().Err(err).Msg("Health check failed: database unreachable")
		respondJSON(w, http.StatusServiceUnavailable, models.UnhealthyStatus{
			Status:    "unhealthy",
			Timestamp: time.Now().UTC(),
			Error:     "database unreachable",
		})
		return
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	respondJSON(w, http.StatusOK, models.HealthStatus{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Uptime:      time.Since(h.startTime).Seconds(),
		Version:     h.version,
		Environment: h.cfg.Server.Environment,
		Checks: models.HealthChecks{
			Server: "ok",
			Memory: models.MemoryStats{
				RSS:       mem.Sys,
				HeapTotal: mem.HeapSys,
				HeapUsed:  mem.HeapAlloc,
			},
		},
	})
}
