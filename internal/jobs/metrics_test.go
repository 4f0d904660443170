package jobmetrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, reg *prometheus.Registry) string {
	t.Helper()
	rr := httptest.NewRecorder()
	promhttp.HandlerFor(reg, promhttp.HandlerOpts{}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	return rr.Body.String()
}

func TestTrackerRecordsOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	require.NoError(t, m.Track("dataset:warmup").End(nil))
	boom := errors.New("boom")
	assert.Same(t, boom, m.Track("dataset:warmup").End(boom))

	body := scrape(t, reg)
	assert.Contains(t, body, `salesdash_jobs_total{job="dataset:warmup",status="success"} 1`)
	assert.Contains(t, body, `salesdash_jobs_total{job="dataset:warmup",status="failure"} 1`)
	assert.Contains(t, body, `salesdash_jobs_failures_total{job="dataset:warmup"} 1`)
}

func TestDatasetWarmed(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	m.DatasetWarmed(7, time.Unix(1_700_000_000, 0))

	body := scrape(t, reg)
	assert.Contains(t, body, "salesdash_dataset_cache_version 7")
	assert.Contains(t, body, "salesdash_dataset_warmed_timestamp_seconds 1.7e+09")

	var nilMetrics *Metrics
	nilMetrics.DatasetWarmed(1, time.Now())
	assert.NoError(t, nilMetrics.Track("x").End(nil))
}
