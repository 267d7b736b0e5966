// Moodify - Emotion-Driven Music Recommendation Service
// Copyright 2026 Maxim F. (mfedorov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfedorov/moodify

package models

import (
	"time"
)

// User represents a registered account.
//
// A User owns every other durable row in the system: sessions,
// recommendation records, emotion analyses, and the statistics row.
// Deleting a User removes all owned rows through the storage layer's
// foreign-key cascade; application code never deletes them one by one.
//
// PasswordHash is a bcrypt digest and is never serialized.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"displayName"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Session represents a cookie-backed login session.
//
// Sessions live in the database rather than an in-process cache so that
// deleting a User cascades over them like any other owned row. Expired
// sessions are purged by a background janitor; an expired row that has
// not been purged yet still resolves to no identity.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// Expired reports whether the session has passed its expiry time.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// PublicUser is the user view embedded in auth responses.
type PublicUser struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

// Public returns the serializable view of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
	}
}
