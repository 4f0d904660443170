package svg

import (
	"fmt"
	"html/template"
	"math"
	"strings"
)

// ColoredBars renders a single series bar chart with one fill per bar.
func ColoredBars(width, height int, labels []string, values []float64, opts BarOpts) (template.HTML, error) {
	if len(values) == 0 {
		return "", fmt.Errorf("svg: values required")
	}
	if len(values) != len(labels) {
		return "", fmt.Errorf("svg: labels length must match values")
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	padding := opts.padding()
	top := opts.top()
	right := padding
	if opts.ShowLegend {
		right += legendWidth
	}
	chartWidth := float64(width) - padding - right
	chartHeight := float64(height) - top - padding
	if chartWidth <= 0 || chartHeight <= 0 {
		return "", fmt.Errorf("svg: viewport too small")
	}

	minVal, maxVal := valueRange(bounds(values))
	scale := chartHeight / (maxVal - minVal)
	zeroY := top + chartHeight - (0-minVal)*scale
	groupWidth := chartWidth / float64(len(labels))
	barWidth := groupWidth * 0.6

	var b strings.Builder
	opts.open(&b, width, height, "bar", "Bar chart", "Bar comparison")
	opts.grid(&b, padding, top, chartWidth, chartHeight, minVal, maxVal)

	axisColor := fallback(opts.AxisColor, defaultAxisColor)
	fmt.Fprintf(&b, "<g stroke=\"%s\" aria-label=\"Axes\">", axisColor)
	fmt.Fprintf(&b, "<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke-width=\"1\"></line>", padding, top, padding, top+chartHeight)
	fmt.Fprintf(&b, "<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke-width=\"1\"></line>", padding, zeroY, padding+chartWidth, zeroY)
	b.WriteString("</g>")

	bottom := top + chartHeight
	for i, label := range labels {
		baseX := padding + float64(i)*groupWidth
		y, h := barPosition(values[i], scale, zeroY, top, bottom)
		fmt.Fprintf(&b, "<rect x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\" fill=\"%s\" stroke=\"%s\" stroke-width=\"1\" aria-label=\"%s %s\"></rect>",
			baseX+(groupWidth-barWidth)/2, y, barWidth, h, colorAt(opts.Fills, i), colorAt(opts.Borders, i), template.HTMLEscapeString(opts.Label), template.HTMLEscapeString(label))
		fmt.Fprintf(&b, "<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"middle\">%s</text>", baseX+groupWidth/2, bottom+14, axisColor, template.HTMLEscapeString(label))
	}

	if opts.ShowLegend {
		opts.legend(&b, padding+chartWidth+24, top+12, labels, opts.Fills)
	}

	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}

func barPosition(value, scale, zeroY, top, bottom float64) (float64, float64) {
	if value >= 0 {
		height := value * scale
		y := zeroY - height
		if y < top {
			height -= top - y
			y = top
		}
		if height < 0 {
			height = 0
		}
		return y, height
	}
	height := math.Abs(value * scale)
	y := zeroY
	if y+height > bottom {
		height = bottom - y
	}
	if height < 0 {
		height = 0
	}
	return y, height
}
