// Moodify - Emotion-Driven Music Recommendation Service
// Copyright 2026 Maxim F. (mfedorov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfedorov/moodify

package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/mfedorov/moodify/internal/auth"
	"github.com/mfedorov/moodify/internal/config"
	"github.com/mfedorov/moodify/internal/models"
)

const testUserID = "user-1"

// fakeProvider implements Provider with canned tracks and injectable errors.
type fakeProvider struct {
	mu         sync.Mutex
	tracks     []models.Track
	err        error
	calls      int
	gotEmotion string
	gotLimit   int
}

func (p *fakeProvider) GetRecommendationsByEmotion(ctx context.Context, emotion string, limit int) ([]models.Track, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	p.gotEmotion = emotion
	p.gotLimit = limit
	if p.err != nil {
		return nil, p.err
	}
	return p.tracks, nil
}

// fakeStore implements Store in memory with injectable per-method errors.
type fakeStore struct {
	mu sync.Mutex

	pingErr error

	records         []models.RecommendationRecord
	insertRecordErr error

	analyses          []models.EmotionAnalysis
	insertAnalysisErr error

	listRecordsErr  error
	listAnalysesErr error
	lastListLimit   int

	recommendationCounts map[string]int64
	analysisCounts       map[string]int64
	incrementRecErr      error
	incrementAnaErr      error

	stats    *models.UserStatistics
	statsErr error

	deletedUsers  []string
	deleteUserErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		recommendationCounts: make(map[string]int64),
		analysisCounts:       make(map[string]int64),
	}
}

func (s *fakeStore) Ping(ctx context.Context) error {
	return s.pingErr
}

func (s *fakeStore) InsertRecommendation(ctx context.Context, rec *models.RecommendationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertRecordErr != nil {
		return s.insertRecordErr
	}
	s.records = append(s.records, *rec)
	return nil
}

func (s *fakeStore) ListRecommendationsByUser(ctx context.Context, userID string, limit int) ([]models.RecommendationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastListLimit = limit
	if s.listRecordsErr != nil {
		return nil, s.listRecordsErr
	}
	return s.records, nil
}

func (s *fakeStore) InsertEmotionAnalysis(ctx context.Context, analysis *models.EmotionAnalysis) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertAnalysisErr != nil {
		return s.insertAnalysisErr
	}
	s.analyses = append(s.analyses, *analysis)
	return nil
}

func (s *fakeStore) ListEmotionAnalysesByUser(ctx context.Context, userID string, limit int) ([]models.EmotionAnalysis, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastListLimit = limit
	if s.listAnalysesErr != nil {
		return nil, s.listAnalysesErr
	}
	return s.analyses, nil
}

func (s *fakeStore) IncrementRecommendationCount(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.incrementRecErr != nil {
		return s.incrementRecErr
	}
	s.recommendationCounts[userID]++
	return nil
}

func (s *fakeStore) IncrementAnalysisCount(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.incrementAnaErr != nil {
		return s.incrementAnaErr
	}
	s.analysisCounts[userID]++
	return nil
}

func (s *fakeStore) GetUserStatistics(ctx context.Context, userID string) (*models.UserStatistics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.statsErr != nil {
		return nil, s.statsErr
	}
	if s.stats != nil {
		return s.stats, nil
	}
	return &models.UserStatistics{UserID: userID}, nil
}

func (s *fakeStore) DeleteUser(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteUserErr != nil {
		return s.deleteUserErr
	}
	s.deletedUsers = append(s.deletedUsers, userID)
	return nil
}

func (s *fakeStore) recordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func (s *fakeStore) recommendationCount(userID string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recommendationCounts[userID]
}

func (s *fakeStore) analysisCount(userID string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.analysisCounts[userID]
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Environment: "test"},
		Auth: config.AuthConfig{
			SessionCookie: "moodify_session",
			SecureCookies: false,
		},
	}
}

func newTestHandler(store *fakeStore, provider *fakeProvider) *Handler {
	return NewHandler(store, provider, testConfig(), "test")
}

// authedRequest builds a request carrying a resolved identity, the state
// every handler behind RequireAuth sees.
func authedRequest(method, target string, body io.Reader) *http.Request {
	r := httptest.NewRequest(method, target, body)
	identity := &auth.Identity{
		UserID: testUserID,
		Email:  "maya@example.com",
		Method: "session",
	}
	return r.WithContext(auth.ContextWithIdentity(r.Context(), identity))
}

// sampleTracks returns a small deterministic tracklist for provider fakes.
func sampleTracks() []models.Track {
	return []models.Track{
		{
			ID:          "track-1",
			Name:        "Here Comes the Sun",
			Artist:      "The Beatles",
			Album:       "Abbey Road",
			ImageURL:    "https://img.example.com/abbey-road.jpg",
			ExternalURL: "https://open.example.com/track/track-1",
			DurationMS:  185000,
			Popularity:  88,
		},
		{
			ID:         "track-2",
			Name:       "Lovely Day",
			Artist:     "Bill Withers",
			Album:      "Menagerie",
			DurationMS: 254000,
			Popularity: 81,
		},
	}
}

func assertJSONContentType(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", got)
	}
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, want, rec.Body.String())
	}
}
