// Moodify - Emotion-Driven Music Recommendation Service
// Copyright 2026 Maxim F. (mfedorov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfedorov/moodify

package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/mfedorov/moodify/internal/logging"
	"github.com/mfedorov/moodify/internal/models"
	"github.com/mfedorov/moodify/internal/validation"
)

// ErrEmailTaken is returned by UserStore.CreateUser when the email is
// already registered.
var ErrEmailTaken = errors.New("email already registered")

// ErrUserNotFound is returned by user lookups when no row matches.
var ErrUserNotFound = errors.New("user not found")

// UserStore is the user persistence contract the handlers depend on.
// The database package provides the production implementation.
type UserStore interface {
	// CreateUser inserts a new user row. A duplicate email reports
	// ErrEmailTaken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail loads a user by email, ErrUserNotFound when absent.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthHandlers implements the registration, login, logout, and userinfo
// endpoints. Login establishes both credential surfaces at once: a session
// cookie for browsers and an HS256 token for API callers.
type AuthHandlers struct {
	users         UserStore
	sessions      SessionStore
	jwt           *JWTManager
	cookieName    string
	secureCookies bool
	sessionTTL    time.Duration
	bcryptCost    int
}

// AuthHandlersConfig carries the knobs AuthHandlers needs from the
// application configuration.
type AuthHandlersConfig struct {
	CookieName    string
	SecureCookies bool
	SessionTTL    time.Duration
	BcryptCost    int
}

// NewAuthHandlers creates the auth endpoint handlers.
func NewAuthHandlers(users UserStore, sessions SessionStore, jwtManager *JWTManager, cfg AuthHandlersConfig) *AuthHandlers {
	return &AuthHandlers{
		users:         users,
		sessions:      sessions,
		jwt:           jwtManager,
		cookieName:    cfg.CookieName,
		secureCookies: cfg.SecureCookies,
		sessionTTL:    cfg.SessionTTL,
		bcryptCost:    cfg.BcryptCost,
	}
}

type registerRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	DisplayName string `json:"displayName" validate:"omitempty,max=100"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register creates a new user account.
// POST /api/auth/register
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidInput(w, r, []models.FieldError{{Field: "body", Message: "body must be valid JSON"}})
		return
	}

	if verr := validation.ValidateStruct(&req); verr != nil {
		writeInvalidInput(w, r, verr.FieldErrors())
		return
	}

	hash, err := HashPassword(req.Password, h.bcryptCost)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to hash password")
		writeAuthError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		DisplayName:  req.DisplayName,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.users.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			writeAuthError(w, r, http.StatusConflict, "Email already registered")
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to create user")
		writeAuthError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	logging.Ctx(r.Context()).Info().Str("user_id", user.ID).Msg("User registered")
	writeAuthJSON(w, r, http.StatusCreated, models.APIResponse{Success: true, Data: user.Public()})
}

// Login verifies credentials and establishes a session cookie plus a JWT.
// POST /api/auth/login
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidInput(w, r, []models.FieldError{{Field: "body", Message: "body must be valid JSON"}})
		return
	}

	if verr := validation.ValidateStruct(&req); verr != nil {
		writeInvalidInput(w, r, verr.FieldErrors())
		return
	}

	// Unknown email and wrong password produce the same response so the
	// endpoint does not reveal which accounts exist.
	user, err := h.users.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			writeAuthError(w, r, http.StatusUnauthorized, "Unauthorized")
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to load user for login")
		writeAuthError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := VerifyPassword(user.PasswordHash, req.Password); err != nil {
		writeAuthError(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	session := NewSession(user.ID, h.sessionTTL)
	if err := h.sessions.CreateSession(r.Context(), session); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("user_id", user.ID).Msg("Failed to create session")
		writeAuthError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	token, expiresAt, err := h.jwt.GenerateToken(user)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("user_id", user.ID).Msg("Failed to generate token")
		writeAuthError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.setSessionCookie(w, session.ID)

	logging.Ctx(r.Context()).Info().Str("user_id", user.ID).Msg("User logged in")
	writeAuthJSON(w, r, http.StatusOK, models.APIResponse{Success: true, Data: models.AuthData{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user.Public(),
	}})
}

// Logout destroys the current session and clears the cookie.
// POST /api/auth/logout
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(h.cookieName); err == nil && cookie.Value != "" {
		if err := h.sessions.DeleteSession(r.Context(), cookie.Value); err != nil {
			logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to delete session")
		}
	}

	h.clearSessionCookie(w)

	writeAuthJSON(w, r, http.StatusOK, models.APIResponse{Success: true, Data: map[string]string{
		"message": "Logged out successfully",
	}})
}

// UserInfo returns the authenticated identity.
// GET /api/auth/me
func (h *AuthHandlers) UserInfo(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFromContext(r.Context())
	if identity == nil {
		respondUnauthorized(w)
		return
	}

	writeAuthJSON(w, r, http.StatusOK, models.APIResponse{Success: true, Data: identity})
}

func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandlers) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func writeAuthJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to encode auth response")
	}
}

func writeAuthError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeAuthJSON(w, r, status, models.APIError{Message: message})
}

func writeInvalidInput(w http.ResponseWriter, r *http.Request, fieldErrors []models.FieldError) {
	writeAuthJSON(w, r, http.StatusBadRequest, models.APIError{
		Message: "Invalid input data",
		Errors:  fieldErrors,
	})
}
