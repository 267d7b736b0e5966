// Moodify - Emotion-Driven Music Recommendation Service
// Copyright 2026 Maxim F. (mfedorov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfedorov/moodify

// Package config loads and validates the Moodify service configuration.
//
// Configuration is layered with Koanf v2:
//  1. Built-in defaults
//  2. Optional YAML config file (config.yaml, or MOODIFY_CONFIG path)
//  3. Environment variables (highest priority)
package config

import "time"

// Config is the root configuration for the service.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Auth     AuthConfig     `koanf:"auth"`
	Spotify  SpotifyConfig  `koanf:"spotify"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	CORSOrigins     []string      `koanf:"cors_origins"`
	// Environment selects runtime mode: development or production.
	// Production tightens validation (JWT secret length, Spotify credentials).
	Environment string `koanf:"environment"`
}

// DatabaseConfig holds SQLite settings.
type DatabaseConfig struct {
	Path          string        `koanf:"path"`
	MaxOpenConns  int           `koanf:"max_open_conns"`
	MaxIdleConns  int           `koanf:"max_idle_conns"`
	BusyTimeout   time.Duration `koanf:"busy_timeout"`
	SchemaTimeout time.Duration `koanf:"schema_timeout"`
}

// AuthConfig holds credential resolution and account settings.
type AuthConfig struct {
	// JWTSecret signs and verifies bearer tokens (HS256).
	JWTSecret string `koanf:"jwt_secret"`
	// JWTExpiry is the lifetime of issued bearer tokens.
	JWTExpiry time.Duration `koanf:"jwt_expiry"`
	// SessionTTL is the lifetime of cookie sessions.
	SessionTTL time.Duration `koanf:"session_ttl"`
	// SessionCookie is the name of the session cookie.
	SessionCookie string `koanf:"session_cookie"`
	// CleanupInterval controls how often expired sessions are purged.
	CleanupInterval time.Duration `koanf:"cleanup_interval"`
	// BcryptCost is the bcrypt work factor for password hashing.
	BcryptCost int `koanf:"bcrypt_cost"`
	// SecureCookies marks session cookies Secure (HTTPS only).
	SecureCookies bool `koanf:"secure_cookies"`
}

// SpotifyConfig holds the external recommendation provider settings.
type SpotifyConfig struct {
	// Enabled wires the real Spotify client. When false the service runs on
	// a deterministic built-in catalog instead, so development needs no
	// provider credentials.
	Enabled      bool          `koanf:"enabled"`
	ClientID     string        `koanf:"client_id"`
	ClientSecret string        `koanf:"client_secret"`
	BaseURL      string        `koanf:"base_url"`
	TokenURL     string        `koanf:"token_url"`
	Timeout      time.Duration `koanf:"timeout"`
	// RatePerSecond caps outbound request rate to the provider.
	RatePerSecond float64 `koanf:"rate_per_second"`
	RateBurst     int     `koanf:"rate_burst"`
	// Market is the ISO 3166-1 country code sent with track queries.
	Market string `koanf:"market"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from all layers and validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
