package cache

import (
	"context"
	"sync"
	"time"

	"github.com/Jcepedarey/emmita-backend/app/domain"
)

const cleanupInterval = time.Minute

type cacheEntry struct {
	identity  domain.Identity
	expiresAt time.Time
}

// IdentityCache provides thread-safe in-memory identity caching with
// per-entry TTL. Implements port.IdentityCache for single-instance
// deployments.
type IdentityCache struct {
	mu       sync.RWMutex
	entries  map[string]*cacheEntry
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

// NewIdentityCache creates a cache and starts its cleanup loop. Call Stop to
// release the goroutine.
func NewIdentityCache() *IdentityCache {
	c := &IdentityCache{
		entries: make(map[string]*cacheEntry),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	go c.cleanupLoop()
	return c
}

// Get retrieves a cached identity.
func (c *IdentityCache) Get(_ context.Context, key string) (*domain.Identity, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, found := c.entries[key]
	if !found || c.now().After(entry.expiresAt) {
		return nil, false, nil
	}
	identity := entry.identity
	return &identity, true, nil
}

// Set stores a copy of identity for ttl.
func (c *IdentityCache) Set(_ context.Context, key string, identity *domain.Identity, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &cacheEntry{
		identity:  *identity,
		expiresAt: c.now().Add(ttl),
	}
	return nil
}

// Len returns the number of stored entries, including expired ones not yet
// cleaned up.
func (c *IdentityCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stop ends the cleanup loop. It is safe to call multiple times.
func (c *IdentityCache) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
}

// cleanup removes expired entries.
func (c *IdentityCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}

func (c *IdentityCache) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stop:
			return
		}
	}
}
