package svg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinesDrawsDashedOverlay(t *testing.T) {
	html, err := Lines(600, 300, []string{"Jan", "Feb", "Mar"}, []LineSeries{
		{Label: "Current Period", Values: []float64{100, 200, 150}, Stroke: "#4a6fa5", Fill: "rgba(74, 111, 165, 0.1)"},
		{Label: "Previous Period", Values: []float64{90, 120, 130}, Stroke: "#166088", Dashed: true},
	}, LineOpts{Style: Style{Title: "Sales Trend", ShowTitle: true, TickFormat: func(v float64) string { return "$" }}})
	require.NoError(t, err)

	out := string(html)
	assert.True(t, strings.HasPrefix(out, "<svg"))
	assert.Equal(t, 1, strings.Count(out, "stroke-dasharray=\"5,5\""))
	assert.Contains(t, out, "Sales Trend")
	assert.Contains(t, out, "aria-labelledby")
	assert.Contains(t, out, ">$<")
}

func TestLinesRejectsMismatchedSeries(t *testing.T) {
	_, err := Lines(600, 300, []string{"Jan"}, []LineSeries{{Values: []float64{1, 2}}}, LineOpts{})
	assert.Error(t, err)
	_, err = Lines(600, 300, nil, []LineSeries{{Values: nil}}, LineOpts{})
	assert.Error(t, err)
}

func TestColoredBarsUsesPerBarColors(t *testing.T) {
	html, err := ColoredBars(600, 300, []string{"A", "B"}, []float64{5, 10}, BarOpts{
		Label:   "Units Sold",
		Fills:   []string{"#111111", "#222222"},
		Borders: []string{"#111111cc", "#222222cc"},
	})
	require.NoError(t, err)
	out := string(html)
	assert.Equal(t, 2, strings.Count(out, "<rect"))
	assert.Contains(t, out, "fill=\"#222222\" stroke=\"#222222cc\"")
}

func TestArcsPieAndDoughnut(t *testing.T) {
	labels := []string{"North", "South", "East"}
	values := []float64{50, 30, 20}

	pie, err := Arcs(600, 300, labels, values, ArcOpts{Style: Style{ShowLegend: true}})
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(pie), "<path"))
	assert.Contains(t, string(pie), "pie-title")
	assert.Contains(t, string(pie), ">East<")

	doughnut, err := Arcs(600, 300, labels, values, ArcOpts{InnerRatio: DoughnutRatio})
	require.NoError(t, err)
	assert.Contains(t, string(doughnut), "doughnut-title")
}

func TestArcsSingleSliceFillsCircle(t *testing.T) {
	html, err := Arcs(400, 300, []string{"Online"}, []float64{100}, ArcOpts{})
	require.NoError(t, err)
	assert.Contains(t, string(html), "<circle")
}

func TestArcsZeroTotalDrawsEmptyRing(t *testing.T) {
	html, err := Arcs(400, 300, []string{"a", "b"}, []float64{0, 0}, ArcOpts{InnerRatio: DoughnutRatio})
	require.NoError(t, err)
	out := string(html)
	assert.Equal(t, 2, strings.Count(out, `class="empty"`))
	assert.NotContains(t, out, "<path")
	assert.NotContains(t, out, "NaN")

	_, err = Arcs(400, 300, []string{"a"}, []float64{-1}, ArcOpts{})
	assert.Error(t, err)
}
