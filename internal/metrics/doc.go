// Moodify - Emotion-Driven Music Recommendation Service
// Copyright 2026 Maxim F. (mfedorov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfedorov/moodify

/*
Package metrics provides Prometheus metrics collection and export for observability.

This package implements application instrumentation using the Prometheus
client library, exposing metrics for monitoring performance, errors, and
system health.

# Overview

The package provides metrics for:
  - HTTP request latency and throughput
  - SQLite query performance
  - Recommendation generation volume and persistence failures
  - Spotify provider latency and circuit breaker state
  - Credential resolution outcomes and session cleanup

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8080/metrics

# Usage

Metrics are package-level collectors registered via promauto; callers use
the Record* helpers rather than touching collectors directly:

	start := time.Now()
	rows, err := db.Query(...)
	metrics.RecordDBQuery("SELECT", "recommendations", time.Since(start), err)

All collectors are safe for concurrent use.
*/
package metrics
