package provider

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Coconhat/Currency-converter/pkg/cache"
	"github.com/Coconhat/Currency-converter/pkg/provider"
	"golang.org/x/sync/singleflight"
)

// CachedConverter decorates a RateConverter with a result cache. Identical
// concurrent misses share a single upstream request.
type CachedConverter struct {
	next   provider.RateConverter
	cache  cache.ConversionCache
	ttl    time.Duration
	group  singleflight.Group
	logger *slog.Logger
}

// NewCachedConverter creates a new CachedConverter.
func NewCachedConverter(
	next provider.RateConverter,
	c cache.ConversionCache,
	ttl time.Duration,
	logger *slog.Logger,
) *CachedConverter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedConverter{
		next:   next,
		cache:  c,
		ttl:    ttl,
		logger: logger,
	}
}

// CacheKey returns the cache key for a conversion request.
func CacheKey(amount, from, to string) string {
	return fmt.Sprintf("conversion:%s-%s:%s", from, to, amount)
}

// Convert returns a cached conversion when present, otherwise calls through.
// Cache failures are logged and never returned.
func (c *CachedConverter) Convert(
	ctx context.Context,
	amount, from, to string,
) (*provider.Conversion, error) {
	if err := provider.ValidateRequest(amount, from, to); err != nil {
		return nil, err
	}
	key := CacheKey(amount, from, to)

	conv, err := c.cache.Get(ctx, key)
	switch {
	case err != nil:
		c.logger.Error("Error getting from cache", "key", key, "error", err)
	case conv == nil:
	case conv.Amount != amount || conv.From != from || conv.To != to:
		// An entry written for another request under this key is evicted.
		c.logger.Warn("Evicting mismatched cache entry", "key", key,
			"cached_from", conv.From, "cached_to", conv.To, "cached_amount", conv.Amount)
		if err := c.cache.Delete(ctx, key); err != nil {
			c.logger.Error("Error deleting from cache", "key", key, "error", err)
		}
	default:
		c.logger.Debug("Cache hit for Convert", "key", key)
		return conv, nil
	}

	v, err, shared := c.group.Do(key, func() (any, error) {
		c.logger.Debug("Cache miss for Convert, fetching from next provider", "key", key)
		conv, err := c.next.Convert(ctx, amount, from, to)
		if err != nil {
			return nil, err
		}
		if err := c.cache.Set(ctx, key, conv, c.ttl); err != nil {
			c.logger.Error("Error setting cache for Convert", "key", key, "error", err)
		}
		return conv, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.logger.Debug("Shared in-flight conversion", "key", key)
	}
	out := *v.(*provider.Conversion)
	return &out, nil
}

// CheckHealth delegates to the wrapped provider.
func (c *CachedConverter) CheckHealth(ctx context.Context) error {
	return provider.CheckHealth(ctx, c.next)
}

// Name returns the provider's name.
func (c *CachedConverter) Name() string {
	return fmt.Sprintf("Cached(%s)", c.next.Name())
}

var (
	_ provider.RateConverter = (*CachedConverter)(nil)
	_ provider.HealthChecker = (*CachedConverter)(nil)
)
