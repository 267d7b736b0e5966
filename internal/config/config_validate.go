// Moodify - Emotion-Driven Music Recommendation Service
// Copyright 2026 Maxim F. (mfedorov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfedorov/moodify

package config

import (
	"fmt"
	"strings"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateAuth(); err != nil {
		return err
	}

	if err := c.validateSpotify(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}
	return nil
}

// validateDatabase validates database configuration
func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	if c.Database.MaxOpenConns < 1 {
		return fmt.Errorf("DATABASE_MAX_OPEN_CONNS must be at least 1")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("DATABASE_MAX_IDLE_CONNS must be non-negative")
	}
	return nil
}

// validateAuth validates credential resolution configuration
func (c *Config) validateAuth() error {
	if err := c.validateJWTSecret(); err != nil {
		return err
	}
	if err := c.validateSessionSettings(); err != nil {
		return err
	}
	return c.validateBcryptCost()
}

// validateJWTSecret validates the JWT signing secret. Development allows an
// empty secret so the service can start without any setup; production refuses
// to start without a strong one.
func (c *Config) validateJWTSecret() error {
	if c.Auth.JWTSecret == "" {
		if c.IsProduction() {
			return fmt.Errorf("JWT_SECRET is required when ENVIRONMENT=production. " +
				"Generate a secure secret with: openssl rand -base64 32")
		}
		return nil
	}
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters for security")
	}
	if containsPlaceholder(c.Auth.JWTSecret) {
		return fmt.Errorf("JWT_SECRET contains a placeholder value - generate a secure secret with: openssl rand -base64 32")
	}
	return nil
}

// validateSessionSettings validates session lifetime configuration
func (c *Config) validateSessionSettings() error {
	if c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.Auth.JWTExpiry <= 0 {
		return fmt.Errorf("JWT_EXPIRY must be positive")
	}
	if c.Auth.CleanupInterval <= 0 {
		return fmt.Errorf("SESSION_CLEANUP_INTERVAL must be positive")
	}
	if c.Auth.SessionCookie == "" {
		return fmt.Errorf("SESSION_COOKIE must not be empty")
	}
	return nil
}

// Bcrypt cost constants. Costs below 10 are brute-forceable on modern
// hardware; costs above 16 make login latency unacceptable.
const (
	minBcryptCost = 10
	maxBcryptCost = 16
)

// validateBcryptCost validates the bcrypt work factor
func (c *Config) validateBcryptCost() error {
	if c.Auth.BcryptCost < minBcryptCost || c.Auth.BcryptCost > maxBcryptCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", minBcryptCost, maxBcryptCost)
	}
	return nil
}

// validateSpotify validates recommendation provider configuration
func (c *Config) validateSpotify() error {
	if err := c.validateSpotifyCredentials(); err != nil {
		return err
	}
	return c.validateSpotifyRate()
}

// validateSpotifyCredentials validates the provider client credentials.
// Production requires them unless the built-in provider is selected;
// development can start without and fail at request time, which keeps
// local bring-up friction-free.
func (c *Config) validateSpotifyCredentials() error {
	if !c.Spotify.Enabled {
		return nil
	}
	if !c.IsProduction() {
		return nil
	}
	if c.Spotify.ClientID == "" {
		return fmt.Errorf("SPOTIFY_CLIENT_ID is required when ENVIRONMENT=production")
	}
	if c.Spotify.ClientSecret == "" {
		return fmt.Errorf("SPOTIFY_CLIENT_SECRET is required when ENVIRONMENT=production")
	}
	if containsPlaceholder(c.Spotify.ClientSecret) {
		return fmt.Errorf("SPOTIFY_CLIENT_SECRET contains a placeholder value")
	}
	return nil
}

// validateSpotifyRate validates outbound rate limit settings
func (c *Config) validateSpotifyRate() error {
	if c.Spotify.RatePerSecond <= 0 {
		return fmt.Errorf("SPOTIFY_RATE_LIMIT must be positive")
	}
	if c.Spotify.RateBurst < 1 {
		return fmt.Errorf("SPOTIFY_RATE_BURST must be at least 1")
	}
	return nil
}

// IsProduction returns true if the application is running in production mode.
// Production mode is determined by the ENVIRONMENT environment variable.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "production" || env == "prod"
}

// IsDevelopment returns true if the application is running in development mode.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "" || env == "development" || env == "dev"
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if err := c.validateLogLevel(); err != nil {
		return err
	}
	return c.validateLogFormat()
}

// validateLogLevel validates the log level configuration
func (c *Config) validateLogLevel() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	return nil
}

// validateLogFormat validates the log format configuration
func (c *Config) validateLogFormat() error {
	if c.Logging.Format == "" {
		return nil
	}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// placeholderPatterns defines common placeholder patterns that indicate
// the user forgot to set a real value.
var placeholderPatterns = []string{
	"REPLACE",
	"CHANGEME",
	"CHANGE_ME",
	"YOUR_SECRET",
	"PLACEHOLDER",
	"EXAMPLE",
}

// containsPlaceholder checks if a value contains common placeholder patterns
// that indicate the user forgot to set a real value. This prevents accidental
// deployment with insecure default credentials.
func containsPlaceholder(value string) bool {
	upperValue := strings.ToUpper(value)
	for _, pattern := range placeholderPatterns {
		if strings.Contains(upperValue, pattern) {
			return true
		}
	}
	return false
}
