package chart

import "github.com/odyssey-erp/salesdash/internal/theme"

// Palette holds the theme dependent chart colors.
type Palette struct {
	Text              string
	Grid              string
	Tick              string
	TooltipBackground string
	TooltipText       string
	TooltipBorder     string
}

var (
	lightPalette = Palette{
		Text:              "rgba(0, 0, 0, 0.87)",
		Grid:              "rgba(0, 0, 0, 0.1)",
		Tick:              "rgba(0, 0, 0, 0.54)",
		TooltipBackground: "rgba(255, 255, 255, 0.9)",
		TooltipText:       "#333",
		TooltipBorder:     "rgba(0, 0, 0, 0.1)",
	}
	darkPalette = Palette{
		Text:              "rgba(255, 255, 255, 0.87)",
		Grid:              "rgba(255, 255, 255, 0.1)",
		Tick:              "rgba(255, 255, 255, 0.54)",
		TooltipBackground: "rgba(0, 0, 0, 0.9)",
		TooltipText:       "#fff",
		TooltipBorder:     "rgba(0, 0, 0, 0.1)",
	}
)

// PaletteFor returns the palette for t.
func PaletteFor(t theme.Theme) Palette {
	if t == theme.Dark {
		return darkPalette
	}
	return lightPalette
}

// Series colors for the trend chart.
const (
	CurrentStroke  = "#4a6fa5"
	CurrentFill    = "rgba(74, 111, 165, 0.1)"
	PreviousStroke = "#166088"
	PreviousFill   = "rgba(22, 96, 136, 0.1)"

	// BorderAlpha is appended to a hex fill color to derive its border.
	BorderAlpha = "cc"
)

var fallbackColors = []string{"#4a6fa5", "#166088", "#4fc3a1", "#f4a259", "#e76f51", "#9b5de5"}

// FillColors returns the supplied colors, or a repeating fallback palette when
// none were given.
func FillColors(colors []string, n int) []string {
	if len(colors) > 0 {
		return colors
	}
	out := make([]string, n)
	for i := range out {
		out[i] = fallbackColors[i%len(fallbackColors)]
	}
	return out
}

// BorderColors darkens each fill with BorderAlpha.
func BorderColors(fills []string) []string {
	out := make([]string, len(fills))
	for i, c := range fills {
		out[i] = c + BorderAlpha
	}
	return out
}
