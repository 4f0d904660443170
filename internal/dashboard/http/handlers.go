package dashboardhttp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/salesdash/internal/chart"
	"github.com/odyssey-erp/salesdash/internal/dashboard"
	"github.com/odyssey-erp/salesdash/internal/export"
	"github.com/odyssey-erp/salesdash/internal/kpi"
	"github.com/odyssey-erp/salesdash/internal/notify"
	"github.com/odyssey-erp/salesdash/internal/platform/httpx"
	"github.com/odyssey-erp/salesdash/internal/view"
)

const pageTitle = "Sales Dashboard"

// Dashboard is the page lifecycle the handler drives.
type Dashboard interface {
	State() *dashboard.State
	Bindings() *dashboard.Bindings
	Dispatch(ctx context.Context, control, event string, in dashboard.Input) error
}

// Handler serves the dashboard page, its events and the JSON API.
type Handler struct {
	logger      *slog.Logger
	dash        Dashboard
	templates   *view.Engine
	corsOrigins []string
	csvPool     sync.Pool
}

// NewHandler constructs the dashboard HTTP handler.
func NewHandler(logger *slog.Logger, dash Dashboard, templates *view.Engine, corsOrigins []string) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{
		logger:      logger,
		dash:        dash,
		templates:   templates,
		corsOrigins: corsOrigins,
	}
	h.csvPool.New = func() interface{} { return new(bytes.Buffer) }
	return h
}

func (h *Handler) handlePage(w http.ResponseWriter, r *http.Request) {
	snap := h.dash.State().Snapshot()
	data := view.TemplateData{
		Title:       pageTitle,
		Theme:       string(snap.Theme),
		CurrentPath: r.URL.Path,
		Data:        snap,
	}
	if err := h.templates.Render(w, "pages/dashboard.html", data); err != nil {
		h.handleServerError(w, "render dashboard", err)
	}
}

func (h *Handler) handleEvent(w http.ResponseWriter, r *http.Request) {
	control := chi.URLParam(r, "control")
	event := chi.URLParam(r, "event")
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	in := dashboard.Input{
		dashboard.IDStartDate: r.PostFormValue(dashboard.IDStartDate),
		dashboard.IDEndDate:   r.PostFormValue(dashboard.IDEndDate),
	}
	err := h.dash.Dispatch(r.Context(), control, event, in)
	switch {
	case err == nil:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case errors.Is(err, dashboard.ErrUnknownBinding):
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	case errors.Is(err, dashboard.ErrNotReady):
		http.Error(w, "Dashboard is not ready", http.StatusConflict)
	default:
		h.handleServerError(w, "dispatch "+control+"/"+event, err)
	}
}

func (h *Handler) handleChart(w http.ResponseWriter, r *http.Request) {
	slot := chart.Slot(chi.URLParam(r, "slot"))
	if _, ok := chart.SpecFor(slot); !ok {
		httpx.RespondError(w, fmt.Errorf("%w: chart %s", httpx.ErrNotFound, slot))
		return
	}
	handle, ok := h.dash.State().Charts.Handle(slot)
	if !ok || handle.Destroyed() {
		httpx.RespondError(w, fmt.Errorf("%w: chart %s not rendered", httpx.ErrUnavailable, slot))
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write([]byte(handle.SVG())); err != nil {
		h.logError("stream chart", err)
	}
}

type changeJSON struct {
	Percent   *float64 `json:"percent"`
	Indicator string   `json:"indicator"`
	Tone      string   `json:"tone"`
	Text      string   `json:"text"`
}

type metricJSON struct {
	Value  string     `json:"value"`
	Change changeJSON `json:"change"`
}

type metricsJSON struct {
	Revenue         metricJSON `json:"totalRevenue"`
	Units           metricJSON `json:"unitsSold"`
	AvgOrder        metricJSON `json:"avgOrder"`
	TopProduct      string     `json:"topProduct"`
	TopProductSales string     `json:"topProductSales"`
}

type chartJSON struct {
	Slot      string `json:"slot"`
	ElementID string `json:"elementId"`
	Kind      string `json:"kind"`
	Title     string `json:"title"`
	URL       string `json:"url"`
}

type rangeJSON struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Min   string `json:"min"`
	Max   string `json:"max"`
}

type dashboardJSON struct {
	Theme       string              `json:"theme"`
	ThemeIcon   string              `json:"themeIcon"`
	Ready       bool                `json:"ready"`
	LastUpdated string              `json:"lastUpdated,omitempty"`
	CurrentYear int                 `json:"currentYear"`
	Metrics     *metricsJSON        `json:"metrics"`
	Range       rangeJSON           `json:"range"`
	Charts      []chartJSON         `json:"charts"`
	Bindings    []dashboard.Binding `json:"bindings"`
}

func toMetric(m kpi.Metric) metricJSON {
	out := metricJSON{
		Value: m.Value,
		Change: changeJSON{
			Indicator: string(m.Change.Indicator),
			Tone:      string(m.Change.Tone),
			Text:      m.Change.Text,
		},
	}
	if m.Change.Defined {
		pct := m.Change.Percent
		out.Change.Percent = &pct
	}
	return out
}

func (h *Handler) handleAPIDashboard(w http.ResponseWriter, r *http.Request) {
	snap := h.dash.State().Snapshot()
	body := dashboardJSON{
		Theme:       string(snap.Theme),
		ThemeIcon:   snap.ThemeIcon,
		Ready:       snap.FiltersReady,
		LastUpdated: snap.LastUpdated,
		CurrentYear: snap.CurrentYear,
		Range: rangeJSON{
			Start: snap.Range.Start,
			End:   snap.Range.End,
			Min:   snap.MinDate,
			Max:   snap.MaxDate,
		},
		Charts:   make([]chartJSON, 0, len(snap.Charts)),
		Bindings: h.dash.Bindings().List(),
	}
	if m := snap.Metrics; m != nil {
		body.Metrics = &metricsJSON{
			Revenue:         toMetric(m.Revenue),
			Units:           toMetric(m.Units),
			AvgOrder:        toMetric(m.AvgOrder),
			TopProduct:      m.TopProduct,
			TopProductSales: m.TopProductSales,
		}
	}
	for _, c := range snap.Charts {
		body.Charts = append(body.Charts, chartJSON{
			Slot:      string(c.Spec.Slot),
			ElementID: c.Spec.ElementID,
			Kind:      string(c.Spec.Kind),
			Title:     c.Spec.Title,
			URL:       "/charts/" + string(c.Spec.Slot) + ".svg",
		})
	}
	httpx.JSON(w, http.StatusOK, body)
}

func (h *Handler) handleAPINotifications(w http.ResponseWriter, r *http.Request) {
	toasts := h.dash.State().Notes.Active()
	if toasts == nil {
		toasts = []notify.Toast{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"notifications": toasts})
}

func (h *Handler) handleCSV(w http.ResponseWriter, r *http.Request) {
	ds := h.dash.State().Dataset()
	if ds == nil {
		httpx.RespondError(w, fmt.Errorf("%w: dataset not loaded", httpx.ErrUnavailable))
		return
	}

	buf := h.csvPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer func() {
		buf.Reset()
		h.csvPool.Put(buf)
	}()

	if err := export.WriteDatasetCSV(buf, ds); err != nil {
		h.handleServerError(w, "write dataset csv", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="sales-dashboard.csv"`)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logError("stream csv", err)
	}
}

func (h *Handler) handleServerError(w http.ResponseWriter, msg string, err error) {
	h.logError(msg, err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (h *Handler) logError(msg string, err error) {
	if h.logger != nil {
		h.logger.Error(msg, slog.Any("error", err))
	}
}
