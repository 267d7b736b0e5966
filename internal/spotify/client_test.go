// Moodify - Emotion-Driven Music Recommendation Service
// Copyright 2026 Maxim F. (mfedorov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfedorov/moodify

package spotify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mfedorov/moodify/internal/config"
)

const testAccessToken = "test-access-token"

// fakeSpotify is an httptest-backed stand-in for the token endpoint and the
// Web API. apiHandler receives every non-token request.
type fakeSpotify struct {
	server     *httptest.Server
	tokenHits  atomic.Int64
	apiHandler http.HandlerFunc
}

func newFakeSpotify(t *testing.T, apiHandler http.HandlerFunc) *fakeSpotify {
	t.Helper()

	fake := &fakeSpotify{apiHandler: apiHandler}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/token", func(w http.ResponseWriter, r *http.Request) {
		fake.tokenHits.Add(1)
		if r.Method != http.MethodPost {
			t.Errorf("token request method = %s, want POST", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"` + testAccessToken + `","token_type":"bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer "+testAccessToken {
			t.Errorf("Authorization = %q, want bearer token from token endpoint", got)
		}
		fake.apiHandler(w, r)
	})

	fake.server = httptest.NewServer(mux)
	t.Cleanup(fake.server.Close)
	return fake
}

func (f *fakeSpotify) clientConfig() *config.SpotifyConfig {
	return &config.SpotifyConfig{
		Enabled:       true,
		ClientID:      "test-client",
		ClientSecret:  "test-secret",
		BaseURL:       f.server.URL,
		TokenURL:      f.server.URL + "/api/token",
		Timeout:       5 * time.Second,
		RatePerSecond: 1000,
		RateBurst:     100,
		Market:        "SE",
	}
}

// newTestClient builds a client against the fake with backoff shortened so
// retry tests run in milliseconds.
func newTestClient(f *fakeSpotify) *Client {
	c := NewClient(f.clientConfig())
	c.retryBaseDelay = time.Millisecond
	return c
}

const recommendationsBody = `{
	"tracks": [
		{
			"id": "5ghIJDpPoe3CfHMGu71E6T",
			"name": "Smells Like Teen Spirit",
			"artists": [{"id": "a1", "name": "Nirvana"}],
			"album": {
				"id": "al1",
				"name": "Nevermind",
				"images": [
					{"url": "https://img.example/640.jpg", "height": 640, "width": 640},
					{"url": "https://img.example/300.jpg", "height": 300, "width": 300}
				]
			},
			"external_urls": {"spotify": "https://open.spotify.com/track/5ghIJDpPoe3CfHMGu71E6T"},
			"preview_url": "https://p.scdn.co/mp3-preview/abc",
			"duration_ms": 301920,
			"popularity": 86,
			"explicit": false
		},
		{
			"id": "track-2",
			"name": "Duet",
			"artists": [{"id": "a2", "name": "First"}, {"id": "a3", "name": "Second"}],
			"album": {"id": "al2", "name": "Joint", "images": []},
			"external_urls": {"spotify": "https://open.spotify.com/track/track-2"},
			"duration_ms": 200000,
			"popularity": 40,
			"explicit": true
		},
		{"id": "", "name": ""}
	]
}`

func TestGetRecommendationsByEmotion(t *testing.T) {
	var gotQuery atomic.Value
	fake := newFakeSpotify(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/recommendations" {
			t.Errorf("path = %s, want /recommendations", r.URL.Path)
		}
		gotQuery.Store(r.URL.Query())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(recommendationsBody))
	})
	client := newTestClient(fake)

	tracks, err := client.GetRecommendationsByEmotion(context.Background(), "sad", 25)
	if err != nil {
		t.Fatalf("GetRecommendationsByEmotion() error = %v", err)
	}

	// Null-track padding is dropped
	if len(tracks) != 2 {
		t.Fatalf("len(tracks) = %d, want 2", len(tracks))
	}

	first := tracks[0]
	if first.ID != "5ghIJDpPoe3CfHMGu71E6T" {
		t.Errorf("tracks[0].ID = %v", first.ID)
	}
	if first.Artist != "Nirvana" {
		t.Errorf("tracks[0].Artist = %v, want Nirvana", first.Artist)
	}
	if first.Album != "Nevermind" {
		t.Errorf("tracks[0].Album = %v, want Nevermind", first.Album)
	}
	if first.ImageURL != "https://img.example/640.jpg" {
		t.Errorf("tracks[0].ImageURL = %v, want largest image first", first.ImageURL)
	}
	if first.ExternalURL != "https://open.spotify.com/track/5ghIJDpPoe3CfHMGu71E6T" {
		t.Errorf("tracks[0].ExternalURL = %v", first.ExternalURL)
	}
	if first.DurationMS != 301920 || first.Popularity != 86 {
		t.Errorf("tracks[0] duration/popularity = %d/%d", first.DurationMS, first.Popularity)
	}

	// Multiple artists join into a display string
	if tracks[1].Artist != "First, Second" {
		t.Errorf("tracks[1].Artist = %v, want joined names", tracks[1].Artist)
	}
	if !tracks[1].Explicit {
		t.Error("tracks[1].Explicit = false, want true")
	}

	query := gotQuery.Load().(url.Values)
	if got := query["seed_genres"]; len(got) != 1 || !strings.Contains(got[0], "sad") {
		t.Errorf("seed_genres = %v, want sad seeds", got)
	}
	if got := query["target_valence"]; len(got) != 1 || got[0] != "0.20" {
		t.Errorf("target_valence = %v, want 0.20", got)
	}
	if got := query["target_energy"]; len(got) != 1 || got[0] != "0.30" {
		t.Errorf("target_energy = %v, want 0.30", got)
	}
	if got := query["limit"]; len(got) != 1 || got[0] != "25" {
		t.Errorf("limit = %v, want 25", got)
	}
	if got := query["market"]; len(got) != 1 || got[0] != "SE" {
		t.Errorf("market = %v, want SE", got)
	}
}

func TestGetRecommendationsByEmotion_UnknownEmotion(t *testing.T) {
	fake := newFakeSpotify(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("API should not be called for an unknown emotion")
	})
	client := newTestClient(fake)

	if _, err := client.GetRecommendationsByEmotion(context.Background(), "bored", 10); err == nil {
		t.Error("GetRecommendationsByEmotion(bored) error = nil, want error")
	}
}

func TestGetRecommendationsByEmotion_TokenReuse(t *testing.T) {
	fake := newFakeSpotify(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"tracks":[]}`))
	})
	client := newTestClient(fake)

	for i := 0; i < 3; i++ {
		if _, err := client.GetRecommendationsByEmotion(context.Background(), "happy", 5); err != nil {
			t.Fatalf("call %d error = %v", i, err)
		}
	}

	if hits := fake.tokenHits.Load(); hits != 1 {
		t.Errorf("token endpoint hit %d times for 3 API calls, want 1 (cached token)", hits)
	}
}

func TestGetRecommendationsByEmotion_APIError(t *testing.T) {
	fake := newFakeSpotify(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"status":404,"message":"invalid seed"}}`))
	})
	client := newTestClient(fake)

	_, err := client.GetRecommendationsByEmotion(context.Background(), "happy", 10)
	if err == nil {
		t.Fatal("GetRecommendationsByEmotion() error = nil, want error")
	}
	if !strings.Contains(err.Error(), "404") || !strings.Contains(err.Error(), "invalid seed") {
		t.Errorf("error = %v, want status and upstream message", err)
	}
}

func TestGetRecommendationsByEmotion_RateLimitRetry(t *testing.T) {
	var calls atomic.Int64
	fake := newFakeSpotify(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"tracks":[]}`))
	})
	client := newTestClient(fake)

	tracks, err := client.GetRecommendationsByEmotion(context.Background(), "neutral", 10)
	if err != nil {
		t.Fatalf("GetRecommendationsByEmotion() error = %v, want retry after 429", err)
	}
	if len(tracks) != 0 {
		t.Errorf("len(tracks) = %d, want 0", len(tracks))
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("API called %d times, want 2 (429 then success)", got)
	}
}

func TestGetRecommendationsByEmotion_RateLimitExhausted(t *testing.T) {
	fake := newFakeSpotify(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "0")
		w.WriteHeader(http.StatusTooManyRequests)
	})
	client := newTestClient(fake)

	_, err := client.GetRecommendationsByEmotion(context.Background(), "neutral", 10)
	if err == nil {
		t.Fatal("GetRecommendationsByEmotion() error = nil, want rate limit error")
	}
	if !strings.Contains(err.Error(), "rate limit exceeded") {
		t.Errorf("error = %v, want rate limit exceeded", err)
	}
}

func TestGetRecommendationsByEmotion_ContextCanceled(t *testing.T) {
	fake := newFakeSpotify(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"tracks":[]}`))
	})
	client := newTestClient(fake)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.GetRecommendationsByEmotion(ctx, "happy", 10); err == nil {
		t.Error("GetRecommendationsByEmotion() with canceled context error = nil, want error")
	}
}

func TestPing(t *testing.T) {
	fake := newFakeSpotify(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/recommendations/available-genre-seeds" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"genres":["acoustic","ambient","pop"]}`))
	})
	client := newTestClient(fake)

	if err := client.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

func TestPing_Unreachable(t *testing.T) {
	fake := newFakeSpotify(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	client := newTestClient(fake)

	if err := client.Ping(context.Background()); err == nil {
		t.Error("Ping() error = nil, want error for 503")
	}
}
