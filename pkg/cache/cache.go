package cache

import (
	"context"
	"time"

	"github.com/Coconhat/Currency-converter/pkg/provider"
)

// ConversionCache defines the interface for caching conversion results.
// A miss is reported as (nil, nil).
type ConversionCache interface {
	Get(ctx context.Context, key string) (*provider.Conversion, error)
	Set(ctx context.Context, key string, conv *provider.Conversion, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
