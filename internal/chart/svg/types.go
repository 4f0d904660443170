package svg

// Style carries the options shared by every renderer.
type Style struct {
	Title       string
	Description string
	TitleSize   int
	TitleWeight string
	TextColor   string
	AxisColor   string
	GridColor   string
	ShowTitle   bool
	ShowLegend  bool
	Padding     float64
	TickCount   int
	// TickFormat renders value axis ticks; nil uses an abbreviated number.
	TickFormat func(float64) string
}

// LineSeries is one polyline on a line chart.
type LineSeries struct {
	Label  string
	Values []float64
	Stroke string
	Fill   string
	Dashed bool
}

// LineOpts customises the line chart renderer.
type LineOpts struct {
	Style
	ShowDots bool
}

// BarOpts customises the single series bar renderer.
type BarOpts struct {
	Style
	Label   string
	Fills   []string
	Borders []string
}

// ArcOpts customises the pie and doughnut renderer.
type ArcOpts struct {
	Style
	Fills   []string
	Borders []string
	// InnerRatio is the hole radius relative to the outer radius; zero draws a pie.
	InnerRatio float64
}

// Defaults for the dashboard charts.
const (
	DefaultWidth       = 720
	DefaultHeight      = 300
	DefaultPadding     = 40.0
	DefaultTicks       = 5
	DefaultTitleSize   = 16
	DoughnutRatio      = 0.5
	legendWidth        = 180.0
	titleBand          = 28.0
	dashPattern        = "5,5"
	defaultTextColor   = "#1f2937"
	defaultAxisColor   = "#475569"
	defaultGridColor   = "#cbd5f5"
	defaultFillColor   = "#4a6fa5"
	defaultTitleWeight = "500"
)
