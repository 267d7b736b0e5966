// Moodify - Emotion-Driven Music Recommendation Service
// Copyright 2026 Maxim F. (mfedorov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfedorov/moodify

package auth

import (
	"context"
	"net/http"
	"sort"
	"sync"

	"github.com/mfedorov/moodify/internal/logging"
	"github.com/mfedorov/moodify/internal/metrics"
)

// ResolverChain tries multiple credential resolvers in priority order.
// The first resolver to produce an identity wins; every failure, including
// malformed or expired credentials, moves on to the next resolver. A request
// carrying a broken bearer token alongside a valid session cookie still
// authenticates, and the broken token is never surfaced to the caller.
//
// When every resolver has been tried without success the chain returns
// ErrNoIdentity, regardless of which individual errors occurred along
// the way.
type ResolverChain struct {
	mu        sync.RWMutex
	resolvers []Resolver
}

// NewResolverChain creates a chain with the given resolvers.
// Resolvers are sorted by priority (lower priority number = tried first).
func NewResolverChain(resolvers ...Resolver) *ResolverChain {
	c := &ResolverChain{
		resolvers: make([]Resolver, 0, len(resolvers)),
	}

	c.resolvers = append(c.resolvers, resolvers...)
	c.sortByPriority()

	return c
}

// Add appends a resolver to the chain, preserving priority order.
func (c *ResolverChain) Add(r Resolver) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.resolvers = append(c.resolvers, r)
	c.sortByPriority()
}

// Resolvers returns the resolvers in priority order.
func (c *ResolverChain) Resolvers() []Resolver {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]Resolver, len(c.resolvers))
	copy(result, c.resolvers)
	return result
}

// Resolve tries each resolver in priority order and returns the first
// identity produced. All resolver errors are swallowed; they are logged
// at debug level and recorded as metrics, never propagated.
func (c *ResolverChain) Resolve(ctx context.Context, r *http.Request) (*Identity, error) {
	c.mu.RLock()
	resolvers := make([]Resolver, len(c.resolvers))
	copy(resolvers, c.resolvers)
	c.mu.RUnlock()

	for _, resolver := range resolvers {
		identity, err := resolver.Resolve(ctx, r)
		if err == nil && identity != nil {
			metrics.RecordAuthResolution(resolver.Name(), "success")
			return identity, nil
		}

		metrics.RecordAuthResolution(resolver.Name(), "no_identity")
		if err != nil {
			logging.Ctx(ctx).Debug().
				Str("resolver", resolver.Name()).
				Err(err).
				Msg("Credential resolution failed, trying next resolver")
		}
	}

	return nil, ErrNoIdentity
}

// sortByPriority sorts resolvers by priority (lower number = tried first).
// Caller must hold the write lock.
func (c *ResolverChain) sortByPriority() {
	sort.Slice(c.resolvers, func(i, j int) bool {
		return c.resolvers[i].Priority() < c.resolvers[j].Priority()
	})
}
