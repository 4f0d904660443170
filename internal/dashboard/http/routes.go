// Package dashboardhttp exposes the dashboard over HTTP.
package dashboardhttp

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

// ExportLimit caps CSV downloads per client IP.
const ExportLimit = 10

// MountRoutes registers the dashboard endpoints onto the router.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	r.Get("/", h.handlePage)
	r.Post("/events/{control}/{event}", h.handleEvent)
	r.Get("/charts/{slot}.svg", h.handleChart)

	r.Route("/api", func(api chi.Router) {
		api.Use(cors.Handler(cors.Options{
			AllowedOrigins: h.allowedOrigins(),
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
		api.Get("/dashboard", h.handleAPIDashboard)
		api.Get("/notifications", h.handleAPINotifications)
	})

	limiter := httprate.Limit(ExportLimit, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}),
	)
	r.With(limiter).Get("/export.csv", h.handleCSV)
}

func (h *Handler) allowedOrigins() []string {
	if len(h.corsOrigins) == 0 {
		return []string{"*"}
	}
	return h.corsOrigins
}
