package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/salesdash/internal/observability"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("DATASET_SOURCE", "file")
	t.Setenv("THEME_STORE", "memory")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.AppAddr)
	assert.Equal(t, "data/sales-data.json", cfg.DatasetPath)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Zero(t, cfg.DashboardLoadTimeout)
	assert.False(t, cfg.UsesRedisThemeStore())
	assert.False(t, cfg.IsProduction())
}

func TestConfigValidate(t *testing.T) {
	base := Config{DatasetSource: "file", ThemeStore: "redis"}
	require.NoError(t, base.validate())

	cases := map[string]Config{
		"unknown source":   {DatasetSource: "s3", ThemeStore: "redis"},
		"http without url": {DatasetSource: "http", ThemeStore: "redis"},
		"unknown store":    {DatasetSource: "file", ThemeStore: "cookie"},
		"negative timeout": {DatasetSource: "file", ThemeStore: "memory", DashboardLoadTimeout: -1},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, cfg.validate())
		})
	}

	withURL := Config{DatasetSource: "HTTP", DatasetURL: "https://example.test/sales.json", ThemeStore: "memory"}
	assert.NoError(t, withURL.validate())
}

func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&Config{AppEnv: "production", LogFormat: "json"}, &buf)
	logger.Debug("hidden")
	logger.Info("visible")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "visible", entry["msg"])
	assert.Equal(t, "production", entry["env"])

	buf.Reset()
	newLogger(&Config{AppEnv: "development"}, &buf).Debug("shown")
	assert.Contains(t, buf.String(), "msg=shown")
}

func TestRouterBaseRoutes(t *testing.T) {
	metrics := observability.NewMetrics()
	router := NewRouter(RouterParams{Config: &Config{AppEnv: "test"}, Metrics: metrics})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/static/css/dashboard.css", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "public, max-age=3600", rr.Header().Get("Cache-Control"))

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "salesdash_http_requests_total")
}

func TestTestModeRefresh(t *testing.T) {
	t.Setenv(TestModeEnv, "1")
	RefreshTestMode()
	assert.True(t, InTestMode())

	t.Setenv(TestModeEnv, "")
	RefreshTestMode()
	assert.False(t, InTestMode())
}
