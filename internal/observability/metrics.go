// Package observability exposes Prometheus metrics for the dashboard.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects the Prometheus metrics of the application.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	notifications   *prometheus.CounterVec
	chartRenders    *prometheus.CounterVec
	themeToggles    *prometheus.CounterVec
	datasetLoads    *prometheus.CounterVec
}

// NewMetrics initialises the registry and the dashboard metrics.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "salesdash_http_requests_total",
		Help: "HTTP requests by route and status.",
	}, []string{"route", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "salesdash_http_request_duration_seconds",
		Help:    "HTTP request duration per route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	notifications := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "salesdash_notifications_total",
		Help: "Toast notifications shown by kind.",
	}, []string{"kind"})
	renders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "salesdash_chart_renders_total",
		Help: "Chart draws by slot, including in place theme updates.",
	}, []string{"slot"})
	toggles := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "salesdash_theme_toggles_total",
		Help: "Theme transitions by resulting theme.",
	}, []string{"theme"})
	loads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "salesdash_dataset_loads_total",
		Help: "Dataset load attempts by outcome.",
	}, []string{"status"})
	registry.MustRegister(requests, duration, notifications, renders, toggles, loads)
	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestsTotal:   requests,
		requestDuration: duration,
		notifications:   notifications,
		chartRenders:    renders,
		themeToggles:    toggles,
		datasetLoads:    loads,
	}
}

// Handler returns the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Middleware records every HTTP request.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(&recorder, r)
		route := routePattern(r)
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// Registerer exposes the registry for additional collectors.
func (m *Metrics) Registerer() prometheus.Registerer {
	if m == nil {
		return prometheus.DefaultRegisterer
	}
	return m.registry
}

// NotificationSent counts a toast.
func (m *Metrics) NotificationSent(kind string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(kind).Inc()
}

// ChartRendered counts a chart draw.
func (m *Metrics) ChartRendered(slot string) {
	if m == nil {
		return
	}
	m.chartRenders.WithLabelValues(slot).Inc()
}

// ThemeToggled counts a theme transition.
func (m *Metrics) ThemeToggled(theme string) {
	if m == nil {
		return
	}
	m.themeToggles.WithLabelValues(theme).Inc()
}

// DatasetLoaded counts a dataset load outcome.
func (m *Metrics) DatasetLoaded(err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	m.datasetLoads.WithLabelValues(status).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func routePattern(r *http.Request) string {
	if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil {
		if pattern := routeCtx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unknown"
}
