// Moodify - Emotion-Driven Music Recommendation Service
// Copyright 2026 Maxim F. (mfedorov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfedorov/moodify

package metrics

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestRecordAPIRequest tests API request metric recording
func TestRecordAPIRequest(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		endpoint   string
		statusCode string
		duration   time.Duration
	}{
		{
			name:       "successful recommendation request",
			method:     "POST",
			endpoint:   "/api/music/recommendations",
			statusCode: "200",
			duration:   120 * time.Millisecond,
		},
		{
			name:       "unauthorized request",
			method:     "POST",
			endpoint:   "/api/music/recommendations",
			statusCode: "401",
			duration:   2 * time.Millisecond,
		},
		{
			name:       "health check",
			method:     "GET",
			endpoint:   "/api/health",
			statusCode: "200",
			duration:   time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues(tt.method, tt.endpoint, tt.statusCode))
			RecordAPIRequest(tt.method, tt.endpoint, tt.statusCode, tt.duration)
			after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues(tt.method, tt.endpoint, tt.statusCode))

			if after != before+1 {
				t.Errorf("APIRequestsTotal = %v, want %v", after, before+1)
			}
		})
	}
}

// TestTrackActiveRequest verifies the active request gauge moves both ways
func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("after increment gauge = %v, want %v", got, before+1)
	}

	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("after decrement gauge = %v, want %v", got, before)
	}
}

// TestRecordDBQuery tests database query metric recording
func TestRecordDBQuery(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		table     string
		duration  time.Duration
		err       error
	}{
		{
			name:      "successful INSERT",
			operation: "INSERT",
			table:     "recommendations",
			duration:  5 * time.Millisecond,
			err:       nil,
		},
		{
			name:      "failed UPSERT",
			operation: "UPSERT",
			table:     "user_statistics",
			duration:  10 * time.Millisecond,
			err:       errors.New("database is locked"),
		},
		{
			name:      "failed query with long error - truncated to 50 chars",
			operation: "SELECT",
			table:     "users",
			duration:  time.Millisecond,
			err:       errors.New(strings.Repeat("x", 80)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Must not panic; error labels are truncated internally
			RecordDBQuery(tt.operation, tt.table, tt.duration, tt.err)
		})
	}
}

func TestRecordDBQueryErrorCounter(t *testing.T) {
	err := errors.New("disk I/O error")
	before := testutil.ToFloat64(DBQueryErrors.WithLabelValues("INSERT", "emotion_analyses", err.Error()))

	RecordDBQuery("INSERT", "emotion_analyses", time.Millisecond, err)

	after := testutil.ToFloat64(DBQueryErrors.WithLabelValues("INSERT", "emotion_analyses", err.Error()))
	if after != before+1 {
		t.Errorf("DBQueryErrors = %v, want %v", after, before+1)
	}
}

// TestRecordRecommendation verifies per-emotion counters
func TestRecordRecommendation(t *testing.T) {
	before := testutil.ToFloat64(RecommendationsGenerated.WithLabelValues("happy"))

	RecordRecommendation("happy", 20)
	RecordRecommendation("happy", 5)

	after := testutil.ToFloat64(RecommendationsGenerated.WithLabelValues("happy"))
	if after != before+2 {
		t.Errorf("RecommendationsGenerated = %v, want %v", after, before+2)
	}
}

func TestRecordPersistenceFailure(t *testing.T) {
	for _, kind := range []string{"record", "statistics"} {
		before := testutil.ToFloat64(RecommendationPersistenceFailures.WithLabelValues(kind))
		RecordPersistenceFailure(kind)
		after := testutil.ToFloat64(RecommendationPersistenceFailures.WithLabelValues(kind))
		if after != before+1 {
			t.Errorf("RecommendationPersistenceFailures[%s] = %v, want %v", kind, after, before+1)
		}
	}
}

func TestRecordProviderRequest(t *testing.T) {
	before := testutil.ToFloat64(ProviderRequests.WithLabelValues("recommendations", "success"))

	RecordProviderRequest("recommendations", "success", 80*time.Millisecond)

	after := testutil.ToFloat64(ProviderRequests.WithLabelValues("recommendations", "success"))
	if after != before+1 {
		t.Errorf("ProviderRequests = %v, want %v", after, before+1)
	}
}

func TestRecordAuthResolution(t *testing.T) {
	before := testutil.ToFloat64(AuthResolutions.WithLabelValues("session", "success"))

	RecordAuthResolution("session", "success")

	after := testutil.ToFloat64(AuthResolutions.WithLabelValues("session", "success"))
	if after != before+1 {
		t.Errorf("AuthResolutions = %v, want %v", after, before+1)
	}
}

// TestConcurrentRecording verifies collectors tolerate concurrent use
func TestConcurrentRecording(t *testing.T) {
	const goroutines = 10
	const perGoroutine = 100

	before := testutil.ToFloat64(RecommendationsGenerated.WithLabelValues("sad"))

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				RecordRecommendation("sad", 10)
			}
		}()
	}
	wg.Wait()

	after := testutil.ToFloat64(RecommendationsGenerated.WithLabelValues("sad"))
	if after != before+goroutines*perGoroutine {
		t.Errorf("RecommendationsGenerated = %v, want %v", after, before+goroutines*perGoroutine)
	}
}
