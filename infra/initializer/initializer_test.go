package initializer

import (
	"bytes"
	"io"
	"log/slog"
	"testing"
	"time"

	infra_cache "github.com/Coconhat/Currency-converter/infra/cache"
	"github.com/Coconhat/Currency-converter/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.App {
	return &config.App{
		Log:         &config.Log{Format: "text", TimeFormat: time.Kitchen, Prefix: "[test]"},
		Frankfurter: &config.Frankfurter{BaseURL: "http://127.0.0.1:1", HTTPTimeout: time.Second},
		Cache:       &config.Cache{TTL: time.Minute, Prefix: "test:"},
		Redis:       &config.Redis{},
	}
}

func TestInitializeDependencies_MemoryCache(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	deps, err := InitializeDependenciesWithOutput(testConfig(), io.Discard)
	require.NoError(t, err)
	t.Cleanup(func() {
		for _, c := range deps.Closers {
			_ = c.Close()
		}
	})

	assert.IsType(t, &infra_cache.MemoryCache{}, deps.Cache)
	assert.Equal(t, "Cached(frankfurter)", deps.Converter.Name())
	assert.NotNil(t, deps.EventBus)
	assert.NotNil(t, deps.Logger)
	assert.Len(t, deps.Closers, 1)
}

func TestInitializeDependencies_InvalidRedisURL(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	cfg := testConfig()
	cfg.Redis.URL = "not-a-redis-url"

	_, err := InitializeDependenciesWithOutput(cfg, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conversion cache")
}

func TestInitializeDependencies_UnreachableRedisFallsBack(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	cfg := testConfig()
	cfg.Redis.URL = "redis://127.0.0.1:1/0"
	cfg.Redis.DialTimeout = 100 * time.Millisecond

	var buf bytes.Buffer
	deps, err := InitializeDependenciesWithOutput(cfg, &buf)
	require.NoError(t, err)
	t.Cleanup(func() {
		for _, c := range deps.Closers {
			_ = c.Close()
		}
	})

	assert.IsType(t, &infra_cache.MemoryCache{}, deps.Cache)
	assert.Contains(t, buf.String(), "falling back to in-memory cache")
}

func TestSetupLogger_Formats(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := SetupLogger(&buf, &config.Log{Format: "json", Prefix: "[converter]"})
	logger.Info("Conversion completed", "from", "USD", "to", "EUR")

	out := buf.String()
	assert.Contains(t, out, `"msg":"Conversion completed"`)
	assert.Contains(t, out, `"from":"USD"`)
	assert.Same(t, logger, slog.Default())

	buf.Reset()
	SetupLogger(&buf, nil).Warn("plain")
	assert.Contains(t, buf.String(), "plain")
}
