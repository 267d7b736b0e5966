// Moodify - Emotion-Driven Music Recommendation Service
// Copyright 2026 Maxim F. (mfedorov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfedorov/moodify

/*
client.go - Core Spotify Web API Client

This file provides the Client struct and HTTP communication layer for the
Spotify recommendation endpoints.

Client Features:
  - OAuth2 client-credentials token flow with automatic refresh
  - Client-side token bucket rate limiting
  - Automatic HTTP 429 handling with exponential backoff and Retry-After
  - JSON response parsing with typed wire structs
  - Context support for cancellation and timeouts

Resilience is split across two layers: this client handles rate limiting and
429 retries, while CircuitBreakerClient (breaker.go) handles sustained
outages. The orchestrator above treats any surfaced error as a provider
failure; it never retries.
*/
package spotify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"

	"github.com/mfedorov/moodify/internal/config"
	"github.com/mfedorov/moodify/internal/metrics"
	"github.com/mfedorov/moodify/internal/models"
)

// maxErrorBodySize limits the amount of response body read for error
// reporting, preventing unbounded allocation on large error responses.
const maxErrorBodySize = 64 * 1024 // 64KB

// Client communicates with the Spotify Web API using the client-credentials
// grant. Tokens are fetched and refreshed transparently by the oauth2
// transport; callers never see token plumbing.
//
// Thread Safety: safe for concurrent use. The rate limiter and the oauth2
// token source are both concurrency-safe.
type Client struct {
	baseURL        string
	market         string
	httpClient     *http.Client
	limiter        *rate.Limiter
	maxRetries     int           // Maximum retries for rate limiting
	retryBaseDelay time.Duration // Base delay for exponential backoff
}

// NewClient creates a Spotify client from configuration.
//
// The token endpoint and the API share one HTTP timeout. The rate limiter
// is client-side and conservative; Spotify enforces its own limits with 429
// responses, which the client also honors.
func NewClient(cfg *config.SpotifyConfig) *Client {
	creds := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
	}

	// Token fetches go through their own timeout-bearing client. The oauth2
	// package reads it from the context.
	tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, &http.Client{
		Timeout: cfg.Timeout,
	})
	httpClient := creds.Client(tokenCtx)
	httpClient.Timeout = cfg.Timeout

	return &Client{
		baseURL:        cfg.BaseURL,
		market:         cfg.Market,
		httpClient:     httpClient,
		limiter:        rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.RateBurst),
		maxRetries:     5,               // Allow up to 5 retries for rate limiting
		retryBaseDelay: 1 * time.Second, // Start with 1 second, doubles each retry
	}
}

// GetRecommendationsByEmotion fetches tracks matching an emotion's audio
// profile. The emotion selects seed genres and target valence/energy; limit
// caps the number of returned tracks.
func (c *Client) GetRecommendationsByEmotion(ctx context.Context, emotion string, limit int) ([]models.Track, error) {
	profile, err := profileFor(emotion)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("seed_genres", profile.seedGenresParam())
	params.Set("target_valence", strconv.FormatFloat(profile.TargetValence, 'f', 2, 64))
	params.Set("target_energy", strconv.FormatFloat(profile.TargetEnergy, 'f', 2, 64))
	params.Set("limit", strconv.Itoa(limit))
	if c.market != "" {
		params.Set("market", c.market)
	}

	var payload recommendationsResponse
	if err := c.makeRequest(ctx, "recommendations", "/recommendations", params, &payload); err != nil {
		return nil, err
	}

	return toTracks(payload.Tracks), nil
}

// Ping verifies connectivity and credentials against the API using the
// cheapest authenticated recommendation endpoint.
func (c *Client) Ping(ctx context.Context) error {
	var payload genreSeedsResponse
	if err := c.makeRequest(ctx, "ping", "/recommendations/available-genre-seeds", nil, &payload); err != nil {
		return err
	}
	if len(payload.Genres) == 0 {
		return fmt.Errorf("genre seed list is empty")
	}
	return nil
}

// makeRequest is the shared request helper: it applies the client-side rate
// limit, performs the request with 429 backoff, checks the HTTP status, and
// decodes the JSON body into result.
//
// The operation name labels metrics only; the path addresses the API.
func (c *Client) makeRequest(ctx context.Context, operation, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait aborted: %w", err)
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	start := time.Now()
	resp, err := c.doRequestWithRateLimit(ctx, reqURL)
	if err != nil {
		metrics.RecordProviderRequest(operation, "failure", time.Since(start))
		return fmt.Errorf("failed to make %s request: %w", operation, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		metrics.RecordProviderRequest(operation, "failure", time.Since(start))
		return decodeErrorResponse(operation, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		metrics.RecordProviderRequest(operation, "failure", time.Since(start))
		return fmt.Errorf("failed to decode %s response: %w", operation, err)
	}

	metrics.RecordProviderRequest(operation, "success", time.Since(start))
	return nil
}

// doRequestWithRateLimit performs an HTTP request with automatic rate limit
// handling. Implements exponential backoff for HTTP 429 responses (1s, 2s,
// 4s, 8s, 16s), honoring a Retry-After header when present. The context is
// used for cancellation during backoff waits.
func (c *Client) doRequestWithRateLimit(ctx context.Context, reqURL string) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		// Check context before attempting request
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("HTTP request failed: %w", err)
		}

		// Anything but 429 is the caller's to handle
		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		// Rate limited (HTTP 429) - close body and retry with backoff
		_ = resp.Body.Close()

		if attempt == c.maxRetries {
			lastErr = fmt.Errorf("rate limit exceeded after %d retries (HTTP 429)", c.maxRetries)
			break
		}

		// Exponential backoff delay: 1s, 2s, 4s, 8s, 16s
		delay := c.retryBaseDelay * time.Duration(1<<uint(attempt))

		// Spotify sends Retry-After in whole seconds (RFC 6585)
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			if seconds, err := time.ParseDuration(retryAfter + "s"); err == nil {
				delay = seconds
			}
		}

		select {
		case <-time.After(delay):
			// Continue to next attempt
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, lastErr
}

// decodeErrorResponse turns a non-200 response into an error, preferring the
// structured Spotify error envelope and falling back to the raw body.
func decodeErrorResponse(operation string, resp *http.Response) error {
	body := readBodyForError(resp.Body)

	var spotifyErr apiError
	if err := json.Unmarshal(body, &spotifyErr); err == nil && spotifyErr.Error.Message != "" {
		return fmt.Errorf("%s request failed with status %d: %s", operation, resp.StatusCode, spotifyErr.Error.Message)
	}

	return fmt.Errorf("%s request failed with status %d: %s", operation, resp.StatusCode, string(body))
}

// readBodyForError reads the response body for error reporting (max 64KB).
// Returns the body content or a placeholder message if reading fails.
func readBodyForError(r io.Reader) []byte {
	limitedReader := io.LimitReader(r, maxErrorBodySize)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}
