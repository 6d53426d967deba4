package cache

import (
	"context"
	"sync"
	"time"

	"github.com/Coconhat/Currency-converter/pkg/cache"
	"github.com/Coconhat/Currency-converter/pkg/provider"
)

// DefaultCleanupInterval is how often expired entries are evicted.
const DefaultCleanupInterval = 5 * time.Minute

// MemoryCache implements ConversionCache using in-memory storage
type MemoryCache struct {
	entries map[string]*cacheEntry
	mu      sync.RWMutex
	now     func() time.Time
	done    chan struct{}
	once    sync.Once
}

type cacheEntry struct {
	conv      *provider.Conversion
	expiresAt time.Time
}

// NewMemoryCache creates a new in-memory cache and starts its janitor.
// Call Close to stop the janitor.
func NewMemoryCache(cleanupInterval time.Duration) *MemoryCache {
	if cleanupInterval <= 0 {
		cleanupInterval = DefaultCleanupInterval
	}
	c := &MemoryCache{
		entries: make(map[string]*cacheEntry),
		now:     time.Now,
		done:    make(chan struct{}),
	}
	go c.cleanup(cleanupInterval)
	return c
}

// Get retrieves a conversion from cache
func (c *MemoryCache) Get(_ context.Context, key string) (*provider.Conversion, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[key]
	if !exists || c.now().After(entry.expiresAt) {
		return nil, nil
	}
	conv := *entry.conv
	return &conv, nil
}

// Set stores a conversion in cache with TTL
func (c *MemoryCache) Set(
	_ context.Context,
	key string,
	conv *provider.Conversion,
	ttl time.Duration,
) error {
	if conv == nil {
		return nil
	}
	stored := *conv

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = &cacheEntry{
		conv:      &stored,
		expiresAt: c.now().Add(ttl),
	}
	return nil
}

// Delete removes a conversion from cache
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close stops the janitor goroutine.
func (c *MemoryCache) Close() error {
	c.once.Do(func() { close(c.done) })
	return nil
}

func (c *MemoryCache) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.evictExpired()
		}
	}
}

func (c *MemoryCache) evictExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}

var _ cache.ConversionCache = (*MemoryCache)(nil)
