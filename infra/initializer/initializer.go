package initializer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	infra_cache "github.com/Coconhat/Currency-converter/infra/cache"
	infra_provider "github.com/Coconhat/Currency-converter/infra/provider"
	"github.com/Coconhat/Currency-converter/pkg/app"
	"github.com/Coconhat/Currency-converter/pkg/cache"
	"github.com/Coconhat/Currency-converter/pkg/config"
	"github.com/Coconhat/Currency-converter/pkg/eventbus"
)

const redisPingTimeout = 3 * time.Second

// InitializeDependencies initializes all the application dependencies
func InitializeDependencies(cfg *config.App) (*app.Deps, error) {
	return InitializeDependenciesWithOutput(cfg, os.Stdout)
}

// InitializeDependenciesWithOutput is InitializeDependencies with the log
// output redirected to w.
func InitializeDependenciesWithOutput(cfg *config.App, w io.Writer) (*app.Deps, error) {
	deps := &app.Deps{}
	logger := SetupLogger(w, cfg.Log)
	deps.Logger = logger

	conversionCache, closer, err := setupCache(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize conversion cache: %w", err)
	}
	deps.Cache = conversionCache
	deps.Closers = append(deps.Closers, closer)

	frankfurter := infra_provider.NewFrankfurterProvider(cfg.Frankfurter, logger)
	ttl := 15 * time.Minute
	if cfg.Cache != nil {
		ttl = cfg.Cache.TTL
	}
	deps.Converter = infra_provider.NewCachedConverter(frankfurter, conversionCache, ttl, logger)

	deps.EventBus = eventbus.NewSimpleBus()

	logger.Info("Dependencies initialized",
		"provider", deps.Converter.Name(),
		"cache_ttl", ttl,
	)
	return deps, nil
}

// setupCache picks Redis when a URL is configured and reachable, the
// in-process cache otherwise.
func setupCache(cfg *config.App, logger *slog.Logger) (cache.ConversionCache, io.Closer, error) {
	prefix := "fx:conversion:"
	if cfg.Cache != nil {
		prefix = cfg.Cache.Prefix
	}

	if cfg.Redis != nil && cfg.Redis.URL != "" {
		rc, err := infra_cache.NewRedisCache(cfg.Redis, prefix, logger)
		if err != nil {
			return nil, nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
		defer cancel()
		err = rc.Ping(ctx)
		if err == nil {
			logger.Info("Using Redis conversion cache", "prefix", prefix)
			return rc, rc, nil
		}
		logger.Warn("Redis unreachable, falling back to in-memory cache", "error", err)
		_ = rc.Close()
	}

	logger.Info("Using in-memory conversion cache")
	mc := infra_cache.NewMemoryCache(time.Minute)
	return mc, mc, nil
}
