// Package kpi turns raw dataset metrics into display strings and deltas.
package kpi

import (
	"math"
	"strconv"
	"time"

	"github.com/odyssey-erp/salesdash/internal/dataset"
)

// Indicator is the directional cue attached to a percentage change.
type Indicator string

// Indicators.
const (
	Up   Indicator = "up"
	Down Indicator = "down"
	Flat Indicator = "flat"
)

// Tone is the semantic color of an indicator.
type Tone string

// Tones map onto the stylesheet color variables.
const (
	Success Tone = "success"
	Danger  Tone = "danger"
	Warning Tone = "warning"
)

// Change describes a period over period delta.
type Change struct {
	Percent   float64
	Defined   bool
	Indicator Indicator
	Tone      Tone
	Text      string
}

// Metric pairs a formatted value with its change.
type Metric struct {
	Value  string
	Change Change
}

// DisplayMetrics is the formatted metric card content.
type DisplayMetrics struct {
	Revenue         Metric
	Units           Metric
	AvgOrder        Metric
	TopProduct      string
	TopProductSales string
	Period          string
}

const changeSuffix = "% vs last period"

// PercentChange returns (current-previous)/previous*100 rounded to one decimal.
// A zero previous value yields ok=false.
func PercentChange(current, previous float64) (float64, bool) {
	if previous == 0 {
		return 0, false
	}
	return round1((current - previous) / previous * 100), true
}

// NewChange classifies a delta. Undefined changes render flat with a warning tone.
func NewChange(current, previous float64) Change {
	pct, ok := PercentChange(current, previous)
	if !ok {
		return Change{Indicator: Flat, Tone: Warning, Text: "n/a vs last period"}
	}
	c := Change{Percent: pct, Defined: true}
	switch {
	case pct > 0:
		c.Indicator, c.Tone = Up, Success
	case pct < 0:
		c.Indicator, c.Tone = Down, Danger
	default:
		c.Indicator, c.Tone = Flat, Warning
	}
	c.Text = strconv.FormatFloat(math.Abs(pct), 'f', 1, 64) + changeSuffix
	return c
}

// FormatMetrics renders the metric cards using the default formatter.
func FormatMetrics(m dataset.Metrics) DisplayMetrics {
	return DefaultFormatter().FormatMetrics(m)
}

// FormatMetrics renders the metric cards.
func (f Formatter) FormatMetrics(m dataset.Metrics) DisplayMetrics {
	return DisplayMetrics{
		Revenue: Metric{
			Value:  f.Currency(m.TotalRevenue, 0),
			Change: NewChange(m.TotalRevenue, m.PreviousRevenue),
		},
		Units: Metric{
			Value:  f.Number(m.UnitsSold),
			Change: NewChange(m.UnitsSold, m.PreviousUnits),
		},
		AvgOrder: Metric{
			Value:  f.Currency(m.AvgOrderValue, 0),
			Change: NewChange(m.AvgOrderValue, m.PreviousAvgOrder),
		},
		TopProduct:      m.TopProduct,
		TopProductSales: f.Number(m.TopProductSales) + " units",
		Period:          m.Period,
	}
}

// FormatLastUpdated renders the metadata timestamp as a long en-US date with time.
func FormatLastUpdated(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("January 2, 2006 at 03:04 PM")
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
