package chart

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/salesdash/internal/theme"
)

func TestBuildOptionsIsPure(t *testing.T) {
	for _, th := range []theme.Theme{theme.Light, theme.Dark} {
		for _, kind := range []ValueKind{Number, Currency, Percentage} {
			a, err := BuildOptions(th, "Sales Trend", kind, true)
			require.NoError(t, err)
			b, err := BuildOptions(th, "Sales Trend", kind, true)
			require.NoError(t, err)
			assert.Equal(t, a, b)
		}
	}
}

func TestBuildOptionsPaletteFollowsTheme(t *testing.T) {
	light, err := BuildOptions(theme.Light, "Units Sold", Number, false)
	require.NoError(t, err)
	dark, err := BuildOptions(theme.Dark, "Units Sold", Number, false)
	require.NoError(t, err)

	assert.Equal(t, "rgba(0, 0, 0, 0.87)", light.Title.Color)
	assert.Equal(t, "rgba(255, 255, 255, 0.87)", dark.Title.Color)
	assert.Equal(t, "rgba(255, 255, 255, 0.9)", light.Tooltip.Background)
	assert.Equal(t, "rgba(0, 0, 0, 0.9)", dark.Tooltip.Background)
	assert.Equal(t, "#fff", dark.Tooltip.BodyColor)
	assert.Equal(t, "rgba(255, 255, 255, 0.1)", dark.YAxis.GridColor)
	assert.Equal(t, "rgba(0, 0, 0, 0.54)", light.XAxis.TickColor)

	assert.False(t, light.Legend.Display)
	assert.Equal(t, LegendRight, light.Legend.Position)
	assert.True(t, light.YAxis.BeginAtZero)
	assert.Equal(t, AnimationDuration, light.Animation.Duration)
	assert.Equal(t, "easeOutQuart", light.Animation.Easing)
}

func TestToggleTwiceRestoresPalette(t *testing.T) {
	start := theme.Light
	before, err := BuildOptions(start, "Regional Distribution", Percentage, true)
	require.NoError(t, err)
	after, err := BuildOptions(start.Toggle().Toggle(), "Regional Distribution", Percentage, true)
	require.NoError(t, err)
	assert.Equal(t, before.Palette, after.Palette)
	assert.Equal(t, before, after)
}

func TestBuildOptionsValidates(t *testing.T) {
	_, err := BuildOptions(theme.Light, " ", Number, false)
	assert.True(t, errors.Is(err, ErrInvalidOptions))
	_, err = BuildOptions(theme.Light, "x", ValueKind("ratio"), false)
	assert.True(t, errors.Is(err, ErrInvalidOptions))
	_, err = BuildOptions(theme.Theme("sepia"), "x", Number, false)
	assert.True(t, errors.Is(err, ErrInvalidOptions))
}

func TestTooltipLabels(t *testing.T) {
	currency, _ := BuildOptions(theme.Light, "Sales Trend", Currency, false)
	assert.Equal(t, "Current Period: $1,234.50", currency.TooltipLabel("Current Period", 1234.5, nil))

	pct, _ := BuildOptions(theme.Light, "Regional Distribution", Percentage, true)
	assert.Equal(t, "45 (45%)", pct.TooltipLabel("", 45, []float64{45, 28, 19, 8}))
	assert.Equal(t, "1 (33%)", pct.TooltipLabel("", 1, []float64{1, 1, 1}))
	assert.Equal(t, "0 (0%)", pct.TooltipLabel("", 0, []float64{0}))

	num, _ := BuildOptions(theme.Light, "Units Sold", Number, false)
	assert.Equal(t, "Units Sold: 980", num.TooltipLabel("Units Sold", 980, nil))
}

func TestTickLabels(t *testing.T) {
	currency, _ := BuildOptions(theme.Dark, "Sales Trend", Currency, false)
	assert.Equal(t, "$12,000", currency.TickLabel(12000))
	num, _ := BuildOptions(theme.Dark, "Units Sold", Number, false)
	assert.Equal(t, "250", num.TickLabel(250))
}
