// Package chart builds themed chart options and owns the four dashboard charts.
package chart

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/odyssey-erp/salesdash/internal/kpi"
	"github.com/odyssey-erp/salesdash/internal/theme"
)

// ErrInvalidOptions reports a rejected option set.
var ErrInvalidOptions = errors.New("chart: invalid options")

// ValueKind selects tooltip and axis formatting.
type ValueKind string

// Value kinds.
const (
	Number     ValueKind = "number"
	Currency   ValueKind = "currency"
	Percentage ValueKind = "percentage"
)

func (k ValueKind) valid() bool {
	return k == Number || k == Currency || k == Percentage
}

// LegendPosition is where the legend is drawn.
type LegendPosition string

// LegendRight is the only position the dashboard uses.
const LegendRight LegendPosition = "right"

// TitleOptions configures the chart heading.
type TitleOptions struct {
	Display       bool
	Text          string
	FontSize      int
	FontWeight    string
	Color         string
	PaddingBottom int
}

// LegendOptions configures the series legend.
type LegendOptions struct {
	Display    bool
	Position   LegendPosition
	Color      string
	PointStyle string
	Padding    int
}

// TooltipOptions configures hover labels.
type TooltipOptions struct {
	Kind        ValueKind
	Background  string
	TitleColor  string
	BodyColor   string
	BorderColor string
	BorderWidth int
	Padding     int
}

// AxisOptions configures one cartesian axis.
type AxisOptions struct {
	Kind        ValueKind
	GridColor   string
	TickColor   string
	BeginAtZero bool
}

// AnimationOptions configures entry animation.
type AnimationOptions struct {
	Duration time.Duration
	Easing   string
}

// Options is the full display configuration of one chart.
type Options struct {
	Theme     theme.Theme
	Title     TitleOptions
	Legend    LegendOptions
	Tooltip   TooltipOptions
	XAxis     AxisOptions
	YAxis     AxisOptions
	Animation AnimationOptions
	Palette   Palette
}

// Animation defaults.
const (
	AnimationDuration = time.Second
	AnimationEasing   = "easeOutQuart"
)

// BuildOptions assembles the options for a chart. It depends only on its
// arguments, so it must be re-run whenever the theme changes.
func BuildOptions(t theme.Theme, title string, kind ValueKind, showLegend bool) (Options, error) {
	if t != theme.Light && t != theme.Dark {
		return Options{}, fmt.Errorf("%w: theme %q", ErrInvalidOptions, t)
	}
	if strings.TrimSpace(title) == "" {
		return Options{}, fmt.Errorf("%w: title required", ErrInvalidOptions)
	}
	if !kind.valid() {
		return Options{}, fmt.Errorf("%w: value kind %q", ErrInvalidOptions, kind)
	}
	p := PaletteFor(t)
	return Options{
		Theme: t,
		Title: TitleOptions{
			Display:       true,
			Text:          title,
			FontSize:      16,
			FontWeight:    "500",
			Color:         p.Text,
			PaddingBottom: 20,
		},
		Legend: LegendOptions{
			Display:    showLegend,
			Position:   LegendRight,
			Color:      p.Text,
			PointStyle: "circle",
			Padding:    20,
		},
		Tooltip: TooltipOptions{
			Kind:        kind,
			Background:  p.TooltipBackground,
			TitleColor:  p.TooltipText,
			BodyColor:   p.TooltipText,
			BorderColor: p.TooltipBorder,
			BorderWidth: 1,
			Padding:     12,
		},
		XAxis:     AxisOptions{Kind: Number, GridColor: p.Grid, TickColor: p.Tick},
		YAxis:     AxisOptions{Kind: kind, GridColor: p.Grid, TickColor: p.Tick, BeginAtZero: true},
		Animation: AnimationOptions{Duration: AnimationDuration, Easing: AnimationEasing},
		Palette:   p,
	}, nil
}

// TooltipLabel formats a hovered value. values is the full dataset the value
// belongs to, used for percentage shares.
func (o Options) TooltipLabel(datasetLabel string, raw float64, values []float64) string {
	label := ""
	if datasetLabel != "" {
		label = datasetLabel + ": "
	}
	switch o.Tooltip.Kind {
	case Currency:
		return label + kpi.DefaultFormatter().Currency(raw, 2)
	case Percentage:
		total := 0.0
		for _, v := range values {
			total += v
		}
		pct := 0.0
		if total != 0 {
			pct = math.Round(raw / total * 100)
		}
		return fmt.Sprintf("%s%s (%s%%)", label, formatRaw(raw), formatRaw(pct))
	default:
		return label + formatRaw(raw)
	}
}

// TickLabel formats a value axis tick.
func (o Options) TickLabel(v float64) string {
	if o.YAxis.Kind == Currency {
		return kpi.DefaultFormatter().Currency(v, 0)
	}
	return formatRaw(v)
}

func formatRaw(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
