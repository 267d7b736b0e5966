// Moodify - Emotion-Driven Music Recommendation Service
// Copyright 2026 Maxim F. (mfedorov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfedorov/moodify

/*
Package services provides suture.Service wrappers for Moodify components.

Each wrapper implements the suture.Service interface:

	type Service interface {
	    Serve(ctx context.Context) error
	}

translating a component's native lifecycle (ListenAndServe, ticker loop)
into suture's context-aware Serve pattern, with graceful shutdown on
cancellation and error propagation for restart decisions.

# Available Services

HTTP Server (HTTPServerService):
  - Wraps *http.Server with graceful shutdown
  - Converts the blocking ListenAndServe pattern to Serve
  - Configurable shutdown timeout for draining connections

Session Janitor (SessionJanitorService):
  - Periodically deletes expired session rows
  - Purges once at startup, then on a fixed interval
  - Purge failures are logged and retried, never fatal
*/
package services
