package svg

import (
	"fmt"
	"html/template"
	"math"
	"strings"
)

// Arcs renders a pie, or a doughnut when opts.InnerRatio is positive.
func Arcs(width, height int, labels []string, values []float64, opts ArcOpts) (template.HTML, error) {
	if len(values) == 0 {
		return "", fmt.Errorf("svg: values required")
	}
	if len(values) != len(labels) {
		return "", fmt.Errorf("svg: labels length must match values")
	}
	total := 0.0
	for _, v := range values {
		if v < 0 {
			return "", fmt.Errorf("svg: negative slice value %v", v)
		}
		total += v
	}
	if opts.InnerRatio < 0 || opts.InnerRatio >= 1 {
		return "", fmt.Errorf("svg: inner ratio must be in [0,1)")
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	padding := opts.padding()
	top := opts.top()
	plotWidth := float64(width) - 2*padding
	if opts.ShowLegend {
		plotWidth -= legendWidth
	}
	plotHeight := float64(height) - top - padding
	if plotWidth <= 0 || plotHeight <= 0 {
		return "", fmt.Errorf("svg: viewport too small")
	}
	outer := math.Min(plotWidth, plotHeight) / 2
	inner := outer * opts.InnerRatio
	cx := padding + plotWidth/2
	cy := top + plotHeight/2

	kind := "pie"
	desc := "Share by category"
	if inner > 0 {
		kind = "doughnut"
	}

	var b strings.Builder
	opts.open(&b, width, height, kind, "Distribution", desc)

	if total <= 0 {
		writeEmptyRing(&b, cx, cy, outer, inner, fallback(opts.GridColor, defaultGridColor))
	}

	start := -math.Pi / 2
	for i, v := range values {
		if total <= 0 {
			break
		}
		sweep := v / total * 2 * math.Pi
		fill := colorAt(opts.Fills, i)
		border := colorAt(opts.Borders, i)
		label := template.HTMLEscapeString(labels[i])
		switch {
		case almostEqual(sweep, 0):
		case sweep >= 2*math.Pi-1e-9:
			writeFullSlice(&b, cx, cy, outer, inner, fill, border, label)
		default:
			fmt.Fprintf(&b, "<path d=\"%s\" fill=\"%s\" stroke=\"%s\" stroke-width=\"1\" aria-label=\"%s\"></path>",
				slicePath(cx, cy, outer, inner, start, start+sweep), fill, border, label)
		}
		start += sweep
	}

	if opts.ShowLegend {
		opts.legend(&b, padding+plotWidth+24, top+12, labels, opts.Fills)
	}

	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}

func polar(cx, cy, r, angle float64) (float64, float64) {
	return cx + r*math.Cos(angle), cy + r*math.Sin(angle)
}

func slicePath(cx, cy, outer, inner, from, to float64) string {
	large := 0
	if to-from > math.Pi {
		large = 1
	}
	ox1, oy1 := polar(cx, cy, outer, from)
	ox2, oy2 := polar(cx, cy, outer, to)
	if inner <= 0 {
		return fmt.Sprintf("M%.2f %.2f L%.2f %.2f A%.2f %.2f 0 %d 1 %.2f %.2f Z", cx, cy, ox1, oy1, outer, outer, large, ox2, oy2)
	}
	ix1, iy1 := polar(cx, cy, inner, to)
	ix2, iy2 := polar(cx, cy, inner, from)
	return fmt.Sprintf("M%.2f %.2f A%.2f %.2f 0 %d 1 %.2f %.2f L%.2f %.2f A%.2f %.2f 0 %d 0 %.2f %.2f Z",
		ox1, oy1, outer, outer, large, ox2, oy2, ix1, iy1, inner, inner, large, ix2, iy2)
}

// writeEmptyRing outlines the chart area when every slice is zero.
func writeEmptyRing(b *strings.Builder, cx, cy, outer, inner float64, stroke string) {
	fmt.Fprintf(b, "<circle class=\"empty\" cx=\"%.2f\" cy=\"%.2f\" r=\"%.2f\" fill=\"none\" stroke=\"%s\" stroke-width=\"1\"></circle>", cx, cy, outer, stroke)
	if inner > 0 {
		fmt.Fprintf(b, "<circle class=\"empty\" cx=\"%.2f\" cy=\"%.2f\" r=\"%.2f\" fill=\"none\" stroke=\"%s\" stroke-width=\"1\"></circle>", cx, cy, inner, stroke)
	}
}

// writeFullSlice draws a slice covering the whole circle, which an SVG arc
// cannot express with coincident endpoints.
func writeFullSlice(b *strings.Builder, cx, cy, outer, inner float64, fill, border, label string) {
	if inner <= 0 {
		fmt.Fprintf(b, "<circle cx=\"%.2f\" cy=\"%.2f\" r=\"%.2f\" fill=\"%s\" stroke=\"%s\" stroke-width=\"1\" aria-label=\"%s\"></circle>", cx, cy, outer, fill, border, label)
		return
	}
	mid := (outer + inner) / 2
	fmt.Fprintf(b, "<circle cx=\"%.2f\" cy=\"%.2f\" r=\"%.2f\" fill=\"none\" stroke=\"%s\" stroke-width=\"%.2f\" aria-label=\"%s\"></circle>", cx, cy, mid, fill, outer-inner, label)
}
