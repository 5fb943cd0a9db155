package channel

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// identityCache resolves the bot display name via getMe once and keeps
// it for the lifetime of the owning channel instance. Lookup failures
// fall back to the configured name and are never fatal; a failed lookup
// is retried on the next send.
type identityCache struct {
	transport Transport
	fallback  string

	mu   sync.Mutex
	name string
}

func newIdentityCache(transport Transport, fallback string) *identityCache {
	return &identityCache{transport: transport, fallback: fallback}
}

func (c *identityCache) Name(ctx context.Context) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.name != "" {
		return c.name
	}

	me, err := c.transport.GetMe(ctx)
	if err != nil {
		log.Warn().Err(err).Str("fallback", c.fallback).Msg("bot identity lookup failed, using fallback name")
		return c.fallback
	}

	if name := me.DisplayName(); name != "" {
		c.name = name
		return c.name
	}
	return c.fallback
}

// Invalidate clears the cached name so the next send re-resolves it.
func (c *identityCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.name = ""
}
