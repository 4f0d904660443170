package svg

import (
	"fmt"
	"html/template"
	"math"
	"strings"
)

func fallback(value, defaultValue string) string {
	if strings.TrimSpace(value) == "" {
		return defaultValue
	}
	return value
}

func bounds(series []float64) (float64, float64) {
	minVal := series[0]
	maxVal := series[0]
	for _, v := range series[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	return minVal, maxVal
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func makeID(base, suffix string) string {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, strings.ToLower(strings.TrimSpace(base)))
	cleaned = strings.Trim(cleaned, "-")
	if cleaned == "" {
		cleaned = "chart"
	}
	return fmt.Sprintf("%s-%s", cleaned, suffix)
}

func formatTick(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", v/1_000_000_000)
	case abs >= 1_000_000:
		return fmt.Sprintf("%.1fM", v/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%.1fk", v/1_000)
	default:
		if almostEqual(v, math.Round(v)) {
			return fmt.Sprintf("%.0f", v)
		}
		return fmt.Sprintf("%.2f", v)
	}
}

func (s Style) tick(v float64) string {
	if s.TickFormat != nil {
		return s.TickFormat(v)
	}
	return formatTick(v)
}

func (s Style) padding() float64 {
	if s.Padding <= 0 {
		return DefaultPadding
	}
	return s.Padding
}

func (s Style) ticks() int {
	if s.TickCount <= 0 {
		return DefaultTicks
	}
	return s.TickCount
}

// top returns the y offset where the plot starts, leaving room for the title.
func (s Style) top() float64 {
	if s.ShowTitle {
		return s.padding() + titleBand
	}
	return s.padding()
}

// open writes the root element with accessible title/description and the
// visible heading.
func (s Style) open(b *strings.Builder, width, height int, kind, defaultTitle, defaultDesc string) {
	titleID := makeID(s.Title, kind+"-title")
	descID := makeID(s.Title, kind+"-desc")
	fmt.Fprintf(b, "<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 %d %d\" role=\"img\" aria-labelledby=\"%s %s\">", width, height, titleID, descID)
	fmt.Fprintf(b, "<title id=\"%s\">%s</title>", titleID, template.HTMLEscapeString(fallback(s.Title, defaultTitle)))
	fmt.Fprintf(b, "<desc id=\"%s\">%s</desc>", descID, template.HTMLEscapeString(fallback(s.Description, defaultDesc)))
	if s.ShowTitle && s.Title != "" {
		size := s.TitleSize
		if size <= 0 {
			size = DefaultTitleSize
		}
		fmt.Fprintf(b, "<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"%d\" font-weight=\"%s\" text-anchor=\"middle\">%s</text>",
			float64(width)/2, s.padding(), fallback(s.TextColor, defaultTextColor), size, fallback(s.TitleWeight, defaultTitleWeight), template.HTMLEscapeString(s.Title))
	}
}

// legend writes a vertical legend starting at (x, y).
func (s Style) legend(b *strings.Builder, x, y float64, labels, colors []string) {
	text := fallback(s.TextColor, defaultTextColor)
	for i, label := range labels {
		cy := y + float64(i)*20
		fmt.Fprintf(b, "<circle cx=\"%.2f\" cy=\"%.2f\" r=\"5\" fill=\"%s\"></circle>", x+5, cy-4, colorAt(colors, i))
		fmt.Fprintf(b, "<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"11\" text-anchor=\"start\">%s</text>", x+16, cy, text, template.HTMLEscapeString(label))
	}
}

// grid writes horizontal grid lines with value ticks.
func (s Style) grid(b *strings.Builder, left, top, width, height, minVal, maxVal float64) {
	axis := fallback(s.AxisColor, defaultAxisColor)
	gridColor := fallback(s.GridColor, defaultGridColor)
	count := s.ticks()
	for i := 0; i <= count; i++ {
		ratio := float64(i) / float64(count)
		y := top + height - ratio*height
		value := minVal + (maxVal-minVal)*ratio
		fmt.Fprintf(b, "<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=\"%s\" stroke-width=\"0.5\" aria-hidden=\"true\"></line>", left, y, left+width, y, gridColor)
		fmt.Fprintf(b, "<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"end\">%s</text>", left-6, y+4, axis, template.HTMLEscapeString(s.tick(value)))
	}
}

func colorAt(colors []string, i int) string {
	if len(colors) == 0 {
		return defaultFillColor
	}
	return colors[i%len(colors)]
}

// valueRange widens [min,max] to include zero and avoid a flat scale.
func valueRange(minVal, maxVal float64) (float64, float64) {
	if minVal > 0 {
		minVal = 0
	}
	if maxVal < 0 {
		maxVal = 0
	}
	if almostEqual(maxVal, minVal) {
		maxVal = minVal + 1
	}
	return minVal, maxVal
}
