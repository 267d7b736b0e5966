// Moodify - Emotion-Driven Music Recommendation Service
// Copyright 2026 Maxim F. (mfedorov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfedorov/moodify

/*
Package supervisor provides process supervision for Moodify using suture v4.

This package implements a supervisor tree that manages the lifecycle of the
long-running parts of the process, with Erlang/OTP-style automatic restart,
failure isolation, and graceful shutdown.

# Overview

The tree organizes services into two layers:

	RootSupervisor ("moodify")
	├── APISupervisor ("api-layer")
	│   └── HTTPServerService
	└── MaintenanceSupervisor ("maintenance-layer")
	    └── SessionJanitorService

A crashing janitor restarts under its own supervisor; the HTTP server keeps
serving throughout. Each layer has independent failure counting with
exponential backoff, so restart storms in one layer never starve the other.

# Shutdown

Context cancellation (wired to SIGINT/SIGTERM in cmd/server) triggers an
orderly stop of every service, bounded by the configured shutdown timeout.
UnstoppedServiceReport names any service that failed to stop in time.

# Logging

Supervisor events flow through thejerf/sutureslog into the application's
zerolog logger via the logging package's slog bridge, so restarts and
backoffs appear in the same stream as request logs.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	tree.AddMaintenanceService(services.NewSessionJanitorService(sessions, cfg.Auth.CleanupInterval))
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}
*/
package supervisor
