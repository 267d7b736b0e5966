// Moodify - Emotion-Driven Music Recommendation Service
// Copyright 2026 Maxim F. (mfedorov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfedorov/moodify

package services

import (
	"context"
	"time"

	"github.com/mfedorov/moodify/internal/logging"
	"github.com/mfedorov/moodify/internal/metrics"
)

// SessionPurger deletes expired session rows and reports how many went.
// Satisfied by auth.SQLSessionStore.
type SessionPurger interface {
	DeleteExpiredSessions(ctx context.Context) (int64, error)
}

// SessionJanitorService periodically removes expired sessions.
//
// Expired sessions are already rejected at resolution time, so the janitor
// is purely about keeping the sessions table from growing without bound.
// A failed purge is logged and retried on the next tick; it never brings
// the service down.
type SessionJanitorService struct {
	store    SessionPurger
	interval time.Duration
	name     string
}

// NewSessionJanitorService creates a janitor running at the given interval.
func NewSessionJanitorService(store SessionPurger, interval time.Duration) *SessionJanitorService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &SessionJanitorService{
		store:    store,
		interval: interval,
		name:     "session-janitor",
	}
}

// Serve implements suture.Service. Purges once at startup, then on every
// tick, until the context is canceled.
func (j *SessionJanitorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	// An immediate pass keeps restarts from postponing cleanup by a
	// full interval.
	j.purge(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			j.purge(ctx)
		}
	}
}

func (j *SessionJanitorService) purge(ctx context.Context) {
	purged, err := j.store.DeleteExpiredSessions(ctx)
	if err != nil {
		logging.Warn().Err(err).Msg("Session purge failed")
		return
	}
	if purged > 0 {
		metrics.SessionsPurged.Add(float64(purged))
		logging.Debug().Int64("purged", purged).Msg("Expired sessions removed")
	}
}

// String implements fmt.Stringer; suture uses it to name the service in logs.
func (j *SessionJanitorService) String() string {
	return j.name
}
