// Moodify - Emotion-Driven Music Recommendation Service
// Copyright 2026 Maxim F. (mfedorov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfedorov/moodify

/*
Package main is the entry point for the Moodify server application.

Moodify is a self-hosted service that turns a detected emotion into a
playlist. Clients send an emotion label (from a camera pipeline, a mood
picker, anything that can name a feeling) and get back matching tracks,
with every request archived per user for history and statistics.

# Application Architecture

The server implements a layered architecture with Suture v4 process
supervision:

	RootSupervisor ("moodify")
	├── APISupervisor ("api-layer")
	│   └── HTTP Server (Chi router, REST API)
	└── MaintenanceSupervisor ("maintenance-layer")
	    └── Session Janitor (expired session cleanup)

Component initialization order:

 1. Configuration: Koanf v2 with environment variables and config files
 2. Logging: zerolog with JSON/console output modes
 3. Database: SQLite with WAL mode and foreign key enforcement
 4. Provider: Spotify client with circuit breaker, or built-in stub
 5. Authentication: session cookies with JWT Bearer fallback
 6. Supervisor Tree: Suture v4 process supervision
 7. HTTP Server: Chi router with middleware stack

# Configuration

Configuration is loaded via Koanf v2 with layered sources (highest
priority wins):

	Priority: Environment variables > Config file > Defaults

Core environment variables:

	# Server
	PORT=8080                    # HTTP server port
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console

	# Authentication
	JWT_SECRET=<32+ chars>       # Required outside development
	SESSION_TTL=168h             # Session cookie lifetime
	SECURE_COOKIES=true          # Set behind TLS

	# Spotify (optional; stub catalog serves when disabled)
	SPOTIFY_ENABLED=true
	SPOTIFY_CLIENT_ID=<id>
	SPOTIFY_CLIENT_SECRET=<secret>

See config.example.yaml for the complete reference.

# Signal Handling

The server handles graceful shutdown on SIGINT and SIGTERM:

 1. Stops accepting new HTTP connections
 2. Waits for in-flight requests (10s timeout)
 3. Stops the session janitor
 4. Closes the database
 5. Reports any services that failed to stop

# Usage Examples

Development (stub catalog, no Spotify credentials):

	export ENVIRONMENT=development
	go run ./cmd/server

Production (Spotify + TLS-terminated proxy):

	export JWT_SECRET=$(openssl rand -base64 32)
	export SECURE_COOKIES=true
	export SPOTIFY_ENABLED=true
	export SPOTIFY_CLIENT_ID=xxx SPOTIFY_CLIENT_SECRET=xxx
	./moodify

# See Also

  - internal/config: Configuration management
  - internal/supervisor: Process supervision
  - internal/api: HTTP handlers and routing
  - internal/spotify: Recommendation provider clients
*/
package main
