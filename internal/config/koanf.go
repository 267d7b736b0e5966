// Moodify - Emotion-Driven Music Recommendation Service
// Copyright 2026 Maxim F. (mfedorov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfedorov/moodify

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order
// of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/moodify/config.yaml",
	"/etc/moodify/config.yml",
}

// ConfigPathEnvVar overrides the config file path when set.
const ConfigPathEnvVar = "MOODIFY_CONFIG"

// defaultConfig returns a Config with all defaults applied. Defaults load
// first, then the config file, then environment variables.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORSOrigins:     []string{"*"},
			Environment:     "development",
		},
		Database: DatabaseConfig{
			Path:          "/data/moodify.db",
			MaxOpenConns:  10,
			MaxIdleConns:  5,
			BusyTimeout:   5 * time.Second,
			SchemaTimeout: 60 * time.Second,
		},
		Auth: AuthConfig{
			JWTSecret:       "",
			JWTExpiry:       24 * time.Hour,
			SessionTTL:      7 * 24 * time.Hour,
			SessionCookie:   "session",
			CleanupInterval: time.Hour,
			BcryptCost:      12,
			SecureCookies:   false,
		},
		Spotify: SpotifyConfig{
			Enabled:       true,
			ClientID:      "",
			ClientSecret:  "",
			BaseURL:       "https://api.spotify.com/v1",
			TokenURL:      "https://accounts.spotify.com/api/token",
			Timeout:       10 * time.Second,
			RatePerSecond: 10,
			RateBurst:     20,
			Market:        "US",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: built-in sensible defaults
//  2. Config file: optional YAML file (if it exists)
//  3. Environment variables: override any setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables (highest priority)
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Comma-separated env values for slice fields
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the first file found, or empty string if none exists.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths lists config paths parsed as comma-separated slices when
// they arrive from the environment as plain strings.
var sliceConfigPaths = []string{
	"server.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for
// known slice fields. Env vars come in as strings; the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// Already a slice (from YAML) - skip
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		if strVal, ok := val.(string); ok {
			if strVal == "" {
				continue
			}
			parts := strings.Split(strVal, ",")
			trimmed := make([]string, 0, len(parts))
			for _, p := range parts {
				p = strings.TrimSpace(p)
				if p != "" {
					trimmed = append(trimmed, p)
				}
			}
			if len(trimmed) > 0 {
				if err := k.Set(path, trimmed); err != nil {
					return fmt.Errorf("failed to set %s: %w", path, err)
				}
			}
		}
	}
	return nil
}

// envTransformFunc maps environment variable names to koanf config paths.
// Unmapped variables return empty string and are skipped, preventing random
// environment noise from polluting the config.
//
// Examples:
//   - PORT -> server.port
//   - DATABASE_PATH -> database.path
//   - SPOTIFY_CLIENT_ID -> spotify.client_id
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Server
		"host":             "server.host",
		"port":             "server.port",
		"read_timeout":     "server.read_timeout",
		"write_timeout":    "server.write_timeout",
		"shutdown_timeout": "server.shutdown_timeout",
		"cors_origins":     "server.cors_origins",
		"environment":      "server.environment",

		// Database
		"database_path":           "database.path",
		"database_max_open_conns": "database.max_open_conns",
		"database_max_idle_conns": "database.max_idle_conns",
		"database_busy_timeout":   "database.busy_timeout",

		// Auth
		"jwt_secret":               "auth.jwt_secret",
		"jwt_expiry":               "auth.jwt_expiry",
		"session_ttl":              "auth.session_ttl",
		"session_cookie":           "auth.session_cookie",
		"session_cleanup_interval": "auth.cleanup_interval",
		"bcrypt_cost":              "auth.bcrypt_cost",
		"secure_cookies":           "auth.secure_cookies",

		// Spotify
		"spotify_enabled":       "spotify.enabled",
		"spotify_client_id":     "spotify.client_id",
		"spotify_client_secret": "spotify.client_secret",
		"spotify_base_url":      "spotify.base_url",
		"spotify_token_url":     "spotify.token_url",
		"spotify_timeout":       "spotify.timeout",
		"spotify_rate_limit":    "spotify.rate_per_second",
		"spotify_rate_burst":    "spotify.rate_burst",
		"spotify_market":        "spotify.market",

		// Logging
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	return ""
}
