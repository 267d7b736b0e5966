// Moodify - Emotion-Driven Music Recommendation Service
// Copyright 2026 Maxim F. (mfedorov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfedorov/moodify

package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRequireAuth_NoCredentials(t *testing.T) {
	chain := NewResolverChain(&mockResolver{name: "mock", priority: 10, returnErr: ErrNoCredentials})

	nextCalled := false
	handler := RequireAuth(chain)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/music/recommendations", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if nextCalled {
		t.Error("next handler called without credentials")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != `{"message":"Unauthorized"}` {
		t.Errorf("body = %s, want {\"message\":\"Unauthorized\"}", body)
	}
}

func TestRequireAuth_InvalidCredentials(t *testing.T) {
	chain := NewResolverChain(&mockResolver{name: "mock", priority: 10, returnErr: ErrInvalidCredentials})

	handler := RequireAuth(chain)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler called with invalid credentials")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/music/stats", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != `{"message":"Unauthorized"}` {
		t.Errorf("body = %s, want {\"message\":\"Unauthorized\"}", body)
	}
}

func TestRequireAuth_Success(t *testing.T) {
	want := &Identity{UserID: "user-1", Email: "u@example.com", Method: "mock"}
	chain := NewResolverChain(&mockResolver{name: "mock", priority: 10, returnIdentity: want})

	var got *Identity
	handler := RequireAuth(chain)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/music/stats", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got == nil {
		t.Fatal("identity missing from request context")
	}
	if got.UserID != want.UserID {
		t.Errorf("identity.UserID = %v, want %v", got.UserID, want.UserID)
	}
}
