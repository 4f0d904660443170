package svg

import (
	"fmt"
	"html/template"
	"strings"
)

// Lines renders one or more line series over shared labels.
func Lines(width, height int, labels []string, series []LineSeries, opts LineOpts) (template.HTML, error) {
	if len(series) == 0 {
		return "", fmt.Errorf("svg: series required")
	}
	if len(labels) == 0 {
		return "", fmt.Errorf("svg: labels required")
	}
	for _, s := range series {
		if len(s.Values) != len(labels) {
			return "", fmt.Errorf("svg: series %q length must match labels", s.Label)
		}
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

	all := make([]float64, 0, len(series)*len(labels))
	for _, s := range series {
		all = append(all, s.Values...)
	}
	minVal, maxVal := valueRange(bounds(all))
	scale := chartHeight / (maxVal - minVal)

	step := 0.0
	if len(labels) > 1 {
		step = chartWidth / float64(len(labels)-1)
	}
	xAt := func(i int) float64 {
		if len(labels) > 1 {
			return padding + float64(i)*step
		}
		return padding + chartWidth/2
	}
	yAt := func(v float64) float64 {
		return top + chartHeight - (v-minVal)*scale
	}

	var b strings.Builder
	opts.open(&b, width, height, "line", "Line chart", "Trend data")
	opts.grid(&b, padding, top, chartWidth, chartHeight, minVal, maxVal)

	axisColor := fallback(opts.AxisColor, defaultAxisColor)
	fmt.Fprintf(&b, "<g stroke=\"%s\" aria-label=\"Axes\">", axisColor)
	fmt.Fprintf(&b, "<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke-width=\"1\"></line>", padding, top, padding, top+chartHeight)
	fmt.Fprintf(&b, "<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke-width=\"1\"></line>", padding, top+chartHeight, padding+chartWidth, top+chartHeight)
	b.WriteString("</g>")

	base := top + chartHeight
	strokes := make([]string, 0, len(series))
	names := make([]string, 0, len(series))
	for _, s := range series {
		stroke := fallback(s.Stroke, defaultFillColor)
		strokes = append(strokes, stroke)
		names = append(names, s.Label)

		var path strings.Builder
		for i, v := range s.Values {
			cmd := "L"
			if i == 0 {
				cmd = "M"
			} else {
				path.WriteString(" ")
			}
			fmt.Fprintf(&path, "%s%.2f %.2f", cmd, xAt(i), yAt(v))
		}
		if s.Fill != "" {
			area := fmt.Sprintf("%s L%.2f %.2f L%.2f %.2f Z", path.String(), xAt(len(s.Values)-1), base, xAt(0), base)
			fmt.Fprintf(&b, "<path d=\"%s\" fill=\"%s\" stroke=\"none\" aria-hidden=\"true\"></path>", area, s.Fill)
		}
		dash := ""
		if s.Dashed {
			dash = fmt.Sprintf(" stroke-dasharray=\"%s\"", dashPattern)
		}
		fmt.Fprintf(&b, "<path d=\"%s\" fill=\"none\" stroke=\"%s\" stroke-width=\"2\"%s stroke-linejoin=\"round\" stroke-linecap=\"round\" aria-label=\"%s\"></path>",
			path.String(), stroke, dash, template.HTMLEscapeString(s.Label))

		if opts.ShowDots {
			for i, v := range s.Values {
				fmt.Fprintf(&b, "<circle cx=\"%.2f\" cy=\"%.2f\" r=\"3\" fill=\"%s\"></circle>", xAt(i), yAt(v), stroke)
			}
		}
	}

	for i, label := range labels {
		fmt.Fprintf(&b, "<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"middle\">%s</text>", xAt(i), base+14, axisColor, template.HTMLEscapeString(label))
	}

	if opts.ShowLegend {
		opts.legend(&b, padding+chartWidth+24, top+12, names, strokes)
	}

	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}
