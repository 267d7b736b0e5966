// Moodify - Emotion-Driven Music Recommendation Service
// Copyright 2026 Maxim F. (mfedorov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfedorov/moodify

package models

import (
	"time"
)

// APIResponse is the standard wrapper for successful responses.
//
// Example:
//
//	{
//	  "success": true,
//	  "data": { ... }
//	}
//
// Error responses do not use this wrapper; they serialize APIError directly
// so the body stays `{"message": "..."}` as the public contract requires.
type APIResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

// APIError is the body of every non-2xx response.
//
// Errors carries field-level validation detail and is only present on
// validation failures:
//
//	{
//	  "message": "Invalid input data",
//	  "errors": [
//	    {"field": "emotion", "message": "emotion must be one of: happy, sad, ..."}
//	  ]
//	}
type APIError struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError describes a single validation violation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// RecommendationData is the payload of a successful recommendation request.
//
// Confidence echoes the request's optional confidence score and is omitted
// when the caller did not send one. TotalTracks always equals len(Tracks).
type RecommendationData struct {
	Emotion     string    `json:"emotion"`
	Confidence  *float64  `json:"confidence,omitempty"`
	Tracks      []Track   `json:"tracks"`
	GeneratedAt time.Time `json:"generatedAt"`
	TotalTracks int       `json:"totalTracks"`
}

// AuthData is the payload of a successful login.
//
// Token is a bearer JWT usable as an alternative to the session cookie.
type AuthData struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expiresAt"`
	User      PublicUser `json:"user"`
}

// HealthStatus is the body of a healthy GET /api/health response.
// Health responses are flat; they do not use the APIResponse wrapper.
//
// Example:
//
//	{
//	  "status": "healthy",
//	  "timestamp": "2026-02-11T10:30:00Z",
//	  "uptime": 3600.5,
//	  "version": "1.4.2",
//	  "environment": "production",
//	  "checks": {
//	    "server": "ok",
//	    "memory": {"rss": 52428800, "heapTotal": 8388608, "heapUsed": 4194304}
//	  }
//	}
type HealthStatus struct {
	Status      string       `json:"status"`
	Timestamp   time.Time    `json:"timestamp"`
	Uptime      float64      `json:"uptime"`
	Version     string       `json:"version"`
	Environment string       `json:"environment"`
	Checks      HealthChecks `json:"checks"`
}

// HealthChecks groups the individual health probes.
type HealthChecks struct {
	Server string      `json:"server"`
	Memory MemoryStats `json:"memory"`
}

// MemoryStats reports process memory usage in bytes.
type MemoryStats struct {
	RSS       uint64 `json:"rss"`
	HeapTotal uint64 `json:"heapTotal"`
	HeapUsed  uint64 `json:"heapUsed"`
}

// UnhealthyStatus is the body of a failing GET /api/health response (503).
type UnhealthyStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Error     string    `json:"error"`
}
