// Package dashboard wires the loader, formatter, charts, theme, filter and
// notifications into one page lifecycle.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/odyssey-erp/salesdash/internal/chart"
	"github.com/odyssey-erp/salesdash/internal/dataset"
	"github.com/odyssey-erp/salesdash/internal/filter"
	"github.com/odyssey-erp/salesdash/internal/kpi"
	"github.com/odyssey-erp/salesdash/internal/notify"
	"github.com/odyssey-erp/salesdash/internal/theme"
)

// LoadFailedMessage is shown when the dataset cannot be loaded.
const LoadFailedMessage = "Failed to load dashboard data. Please try again later."

// ErrNotReady is returned for filter events before a successful Init.
var ErrNotReady = errors.New("dashboard: not ready")

// Params groups the collaborators of a Dashboard.
type Params struct {
	Loader    dataset.Loader
	Theme     *theme.Controller
	Charts    *chart.Renderer
	Filter    *filter.Controller
	Notes     *notify.Service
	Formatter kpi.Formatter
	Logger    *slog.Logger
	Now       func() time.Time
}

// Dashboard owns the State and the event table.
type Dashboard struct {
	state     *State
	bindings  *Bindings
	loader    dataset.Loader
	formatter kpi.Formatter
	logger    *slog.Logger
	now       func() time.Time
}

// New constructs a Dashboard. Missing collaborators get in-memory defaults.
func New(p Params) *Dashboard {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := p.Now
	if now == nil {
		now = time.Now
	}
	notes := p.Notes
	if notes == nil {
		notes = notify.New(logger)
	}
	themes := p.Theme
	if themes == nil {
		themes = theme.NewController(context.Background(), theme.NewMemoryStore(), false, logger)
	}
	charts := p.Charts
	if charts == nil {
		charts = chart.NewRenderer(logger, nil)
	}
	filters := p.Filter
	if filters == nil {
		filters = filter.NewController(notes, logger)
	}
	formatter := p.Formatter
	if formatter == (kpi.Formatter{}) {
		formatter = kpi.DefaultFormatter()
	}

	d := &Dashboard{
		state: &State{
			Theme:  themes,
			Charts: charts,
			Filter: filters,
			Notes:  notes,
		},
		bindings:  NewBindings(),
		loader:    p.Loader,
		formatter: formatter,
		logger:    logger,
		now:       now,
	}

	themes.Subscribe(func(t theme.Theme) {
		if err := charts.ApplyTheme(t); err != nil {
			logger.Error("apply chart theme", slog.Any("error", err))
		}
	})
	d.registerBindings()
	return d
}

func (d *Dashboard) registerBindings() {
	d.bindings.On(IDThemeToggle, EventClick, func(ctx context.Context, _ Input) error {
		d.state.Theme.Toggle(ctx)
		return nil
	})
	d.bindings.On(IDApplyFilter, EventClick, func(_ context.Context, in Input) error {
		if !d.state.FiltersReady() {
			return ErrNotReady
		}
		d.state.Filter.Apply(in.Get(IDStartDate), in.Get(IDEndDate))
		return nil
	})
	d.bindings.On(IDResetFilter, EventClick, func(_ context.Context, _ Input) error {
		if !d.state.FiltersReady() {
			return ErrNotReady
		}
		d.state.Filter.Reset()
		return nil
	})
}

// State returns the dashboard context.
func (d *Dashboard) State() *State { return d.state }

// Bindings returns the event table.
func (d *Dashboard) Bindings() *Bindings { return d.bindings }

// Dispatch forwards a control event to the event table.
func (d *Dashboard) Dispatch(ctx context.Context, control, event string, in Input) error {
	return d.bindings.Dispatch(ctx, control, event, in)
}

// Init loads the dataset and populates metadata, metrics, charts and filters in
// that order. A load failure shows one error toast and leaves everything
// unpopulated. Later steps stop at the first failure.
func (d *Dashboard) Init(ctx context.Context) error {
	d.state.setYear(d.now().Year())

	if d.loader == nil {
		return fmt.Errorf("dashboard: init: loader required")
	}
	ds, err := d.loader.Load(ctx)
	if err != nil {
		d.logger.Error("load dashboard data", slog.Any("error", err), slog.Bool("load_error", dataset.IsLoadError(err)))
		d.state.Notes.Error(LoadFailedMessage)
		return fmt.Errorf("dashboard: init: %w", err)
	}

	d.state.setLoaded(ds)
	d.state.setMetrics(d.formatter.FormatMetrics(ds.Metrics))

	if _, err := d.state.Charts.RenderAll(ctx, ds, d.state.Theme.Current()); err != nil {
		d.logger.Error("render charts", slog.Any("error", err))
		return fmt.Errorf("dashboard: init: %w", err)
	}

	d.state.setFiltersReady()
	d.logger.Info("dashboard ready", slog.String("theme", string(d.state.Theme.Current())))
	return nil
}

// Close releases charts and timers.
func (d *Dashboard) Close() {
	d.state.Close()
}
