package chart

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/odyssey-erp/salesdash/internal/chart/svg"
	"github.com/odyssey-erp/salesdash/internal/dataset"
	"github.com/odyssey-erp/salesdash/internal/theme"
)

// ErrDestroyed is returned when updating a handle after it was destroyed.
var ErrDestroyed = errors.New("chart: handle destroyed")

// Slot identifies one of the four dashboard charts.
type Slot string

// Dashboard slots.
const (
	SlotTrend   Slot = "trend"
	SlotProduct Slot = "product"
	SlotRegion  Slot = "region"
	SlotChannel Slot = "channel"
)

// Kind is the chart type drawn in a slot.
type Kind string

// Chart kinds.
const (
	KindLine     Kind = "line"
	KindBar      Kind = "bar"
	KindDoughnut Kind = "doughnut"
	KindPie      Kind = "pie"
)

// Spec fixes the type and option parameters of a slot.
type Spec struct {
	Slot       Slot
	Kind       Kind
	ElementID  string
	Title      string
	ValueKind  ValueKind
	ShowLegend bool
}

var specs = []Spec{
	{Slot: SlotTrend, Kind: KindLine, ElementID: "sales-chart", Title: "Sales Trend", ValueKind: Currency},
	{Slot: SlotProduct, Kind: KindBar, ElementID: "product-chart", Title: "Units Sold", ValueKind: Number},
	{Slot: SlotRegion, Kind: KindDoughnut, ElementID: "region-chart", Title: "Regional Distribution", ValueKind: Percentage, ShowLegend: true},
	{Slot: SlotChannel, Kind: KindPie, ElementID: "channel-chart", Title: "Channel Distribution", ValueKind: Percentage, ShowLegend: true},
}

// Specs lists the dashboard slots in display order.
func Specs() []Spec {
	return append([]Spec(nil), specs...)
}

// SpecFor returns the spec of slot.
func SpecFor(slot Slot) (Spec, bool) {
	for _, s := range specs {
		if s.Slot == slot {
			return s, true
		}
	}
	return Spec{}, false
}

// Options builds the slot options for t.
func (s Spec) Options(t theme.Theme) (Options, error) {
	return BuildOptions(t, s.Title, s.ValueKind, s.ShowLegend)
}

// Handle is a live chart bound to a slot.
type Handle struct {
	mu        sync.Mutex
	spec      Spec
	labels    []string
	lines     []svg.LineSeries
	values    []float64
	fills     []string
	borders   []string
	options   Options
	html      template.HTML
	destroyed bool
	width     int
	height    int
}

// Spec returns the slot definition.
func (h *Handle) Spec() Spec { return h.spec }

// Options returns the options the chart was last drawn with.
func (h *Handle) Options() Options {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.options
}

// SVG returns the current drawing.
func (h *Handle) SVG() template.HTML {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.html
}

// Destroyed reports whether the handle was released.
func (h *Handle) Destroyed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.destroyed
}

// Destroy releases the drawing.
func (h *Handle) Destroy() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.destroyed = true
	h.html = ""
}

// Update swaps the options and redraws in place.
func (h *Handle) Update(opts Options) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.destroyed {
		return ErrDestroyed
	}
	html, err := h.draw(opts)
	if err != nil {
		return err
	}
	h.options = opts
	h.html = html
	return nil
}

// Tooltips returns the hover label of every data point, in series order.
func (h *Handle) Tooltips() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []string
	if h.spec.Kind == KindLine {
		for _, s := range h.lines {
			for i, v := range s.Values {
				out = append(out, h.labels[i]+" "+h.options.TooltipLabel(s.Label, v, s.Values))
			}
		}
		return out
	}
	label := ""
	if h.spec.Kind == KindBar {
		label = "Units Sold"
	}
	for i, v := range h.values {
		out = append(out, h.labels[i]+" "+h.options.TooltipLabel(label, v, h.values))
	}
	return out
}

func (h *Handle) draw(opts Options) (template.HTML, error) {
	style := svg.Style{
		Title:       opts.Title.Text,
		Description: opts.Title.Text,
		TitleSize:   opts.Title.FontSize,
		TitleWeight: opts.Title.FontWeight,
		TextColor:   opts.Title.Color,
		AxisColor:   opts.YAxis.TickColor,
		GridColor:   opts.YAxis.GridColor,
		ShowTitle:   opts.Title.Display,
		ShowLegend:  opts.Legend.Display,
		TickFormat:  opts.TickLabel,
	}
	switch h.spec.Kind {
	case KindLine:
		return svg.Lines(h.width, h.height, h.labels, h.lines, svg.LineOpts{Style: style})
	case KindBar:
		return svg.ColoredBars(h.width, h.height, h.labels, h.values, svg.BarOpts{Style: style, Label: "Units Sold", Fills: h.fills, Borders: h.borders})
	case KindDoughnut:
		return svg.Arcs(h.width, h.height, h.labels, h.values, svg.ArcOpts{Style: style, Fills: h.fills, Borders: h.borders, InnerRatio: svg.DoughnutRatio})
	case KindPie:
		return svg.Arcs(h.width, h.height, h.labels, h.values, svg.ArcOpts{Style: style, Fills: h.fills, Borders: h.borders})
	default:
		return "", fmt.Errorf("chart: unknown kind %q", h.spec.Kind)
	}
}

// Handles groups the four live charts.
type Handles struct {
	Trend   *Handle
	Product *Handle
	Region  *Handle
	Channel *Handle
}

// List returns the handles in slot order, skipping nil entries.
func (hs Handles) List() []*Handle {
	out := make([]*Handle, 0, 4)
	for _, h := range []*Handle{hs.Trend, hs.Product, hs.Region, hs.Channel} {
		if h != nil {
			out = append(out, h)
		}
	}
	return out
}

// Recorder observes chart draws.
type Recorder interface {
	ChartRendered(slot string)
}

// Renderer owns the chart handles of the dashboard.
type Renderer struct {
	mu       sync.Mutex
	handles  Handles
	width    int
	height   int
	logger   *slog.Logger
	recorder Recorder
}

// NewRenderer constructs a Renderer drawing at the default size.
func NewRenderer(logger *slog.Logger, recorder Recorder) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{width: svg.DefaultWidth, height: svg.DefaultHeight, logger: logger, recorder: recorder}
}

// RenderAll destroys any existing charts and draws all four from ds. On error no
// handles are left live.
func (r *Renderer) RenderAll(ctx context.Context, ds *dataset.SalesDataset, t theme.Theme) (Handles, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, h := range r.handles.List() {
		h.Destroy()
	}
	r.handles = Handles{}

	if ds == nil {
		return Handles{}, fmt.Errorf("chart: dataset required")
	}
	if err := dataset.ValidateMonthly(ds.MonthlySales); err != nil {
		return Handles{}, err
	}
	for _, pair := range []struct {
		name   string
		series dataset.Series
	}{
		{"productSales", ds.ProductSales},
		{"regionalSales", ds.RegionalSales},
		{"channelSales", ds.ChannelSales},
	} {
		if err := dataset.ValidateSeries(pair.name, pair.series); err != nil {
			return Handles{}, err
		}
	}

	built := make([]*Handle, len(specs))
	g, gctx := errgroup.WithContext(ctx)
	for i, spec := range specs {
		i, spec := i, spec
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			h := r.newHandle(spec, ds)
			opts, err := spec.Options(t)
			if err != nil {
				return err
			}
			if err := h.Update(opts); err != nil {
				return fmt.Errorf("chart: draw %s: %w", spec.Slot, err)
			}
			built[i] = h
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Handles{}, err
	}

	r.handles = Handles{Trend: built[0], Product: built[1], Region: built[2], Channel: built[3]}
	for _, h := range built {
		r.record(h.spec.Slot)
	}
	r.logger.Debug("charts rendered", slog.String("theme", string(t)))
	return r.handles, nil
}

func (r *Renderer) newHandle(spec Spec, ds *dataset.SalesDataset) *Handle {
	h := &Handle{spec: spec, width: r.width, height: r.height}
	switch spec.Slot {
	case SlotTrend:
		h.labels = ds.MonthlySales.Labels
		h.lines = []svg.LineSeries{{
			Label:  "Current Period",
			Values: ds.MonthlySales.Data,
			Stroke: CurrentStroke,
			Fill:   CurrentFill,
		}}
		if len(ds.MonthlySales.PreviousData) > 0 {
			h.lines = append(h.lines, svg.LineSeries{
				Label:  "Previous Period",
				Values: ds.MonthlySales.PreviousData,
				Stroke: PreviousStroke,
				Fill:   PreviousFill,
				Dashed: true,
			})
		}
	case SlotProduct:
		h.bindSeries(ds.ProductSales)
	case SlotRegion:
		h.bindSeries(ds.RegionalSales)
	case SlotChannel:
		h.bindSeries(ds.ChannelSales)
	}
	return h
}

func (h *Handle) bindSeries(s dataset.Series) {
	h.labels = s.Labels
	h.values = s.Data
	h.fills = FillColors(s.Colors, len(s.Labels))
	h.borders = BorderColors(h.fills)
}

// ApplyTheme rebuilds options for every live chart and updates it in place. It
// does nothing when no charts exist yet.
func (r *Renderer) ApplyTheme(t theme.Theme) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var errs []error
	for _, h := range r.handles.List() {
		opts, err := h.spec.Options(t)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := h.Update(opts); err != nil {
			errs = append(errs, fmt.Errorf("chart: update %s: %w", h.spec.Slot, err))
			continue
		}
		r.record(h.spec.Slot)
	}
	return errors.Join(errs...)
}

// Handles returns the live handles.
func (r *Renderer) Handles() Handles {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.handles
}

// Handle returns the live handle for slot.
func (r *Renderer) Handle(slot Slot) (*Handle, bool) {
	for _, h := range r.Handles().List() {
		if h.spec.Slot == slot {
			return h, true
		}
	}
	return nil, false
}

// Live counts handles that have not been destroyed.
func (r *Renderer) Live() int {
	n := 0
	for _, h := range r.Handles().List() {
		if !h.Destroyed() {
			n++
		}
	}
	return n
}

// DestroyAll releases every handle.
func (r *Renderer) DestroyAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, h := range r.handles.List() {
		h.Destroy()
	}
	r.handles = Handles{}
}

func (r *Renderer) record(slot Slot) {
	if r.recorder != nil {
		r.recorder.ChartRendered(string(slot))
	}
}
