package main

import (
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/odyssey-erp/salesdash/internal/app"
	_ "github.com/odyssey-erp/salesdash/internal/testing/guard"
	"github.com/odyssey-erp/salesdash/internal/theme"
)

func TestMainSkipsInTestMode(t *testing.T) {
	app.RefreshTestMode()
	assert.True(t, app.InTestMode())
	assert.NotPanics(t, main)
}

func TestThemeStoreSelection(t *testing.T) {
	logger := app.NewLogger(&app.Config{AppEnv: "test"})

	_, ok := themeStore(&app.Config{ThemeStore: "memory"}, nil, logger).(*theme.MemoryStore)
	assert.True(t, ok)

	_, ok = themeStore(&app.Config{ThemeStore: "redis"}, nil, logger).(*theme.MemoryStore)
	assert.True(t, ok, "missing redis client falls back to memory")

	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	t.Cleanup(func() { _ = client.Close() })
	_, ok = themeStore(&app.Config{ThemeStore: "redis"}, client, logger).(*theme.RedisStore)
	assert.True(t, ok)
}

func TestRowQuerierNilPool(t *testing.T) {
	assert.Nil(t, rowQuerier(nil))
}
