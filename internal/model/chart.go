package model

// LayerKind names how a layer is drawn.
type LayerKind string

const (
	LayerCandlestick LayerKind = "candlestick"
	LayerLine        LayerKind = "line"
	LayerBar         LayerKind = "bar"
)

// ChartSpec is a backend-agnostic description of a rendered chart. A spec with
// no panels is the empty chart: it carries only a title.
type ChartSpec struct {
	Title  string  `json:"title"`
	Panels []Panel `json:"panels,omitempty"`
	Layout Layout  `json:"layout"`
}

// Panel is one vertically stacked plotting area.
type Panel struct {
	ID          string  `json:"id"`
	Title       string  `json:"title,omitempty"`
	HeightRatio float64 `json:"height_ratio"`
	YAxis       Axis    `json:"y_axis"`
	Layers      []Layer `json:"layers"`
}

// Layer is a single trace. X holds dates as YYYY-MM-DD. Candlestick layers use
// Open/High/Low/Close; line and bar layers use Y.
type Layer struct {
	Kind LayerKind `json:"kind"`
	Name string    `json:"name"`
	X    []string  `json:"x"`

	Open  []float64 `json:"open,omitempty"`
	High  []float64 `json:"high,omitempty"`
	Low   []float64 `json:"low,omitempty"`
	Close []float64 `json:"close,omitempty"`
	Y     []float64 `json:"y,omitempty"`

	Color           string   `json:"color,omitempty"`
	Colors          []string `json:"colors,omitempty"` // per point, bar layers only
	IncreasingColor string   `json:"increasing_color,omitempty"`
	DecreasingColor string   `json:"decreasing_color,omitempty"`
	Width           float64  `json:"width,omitempty"`
	Opacity         float64  `json:"opacity,omitempty"`

	HoverText     []string `json:"hover_text,omitempty"`
	HoverTemplate string   `json:"hover_template,omitempty"`
}

// Axis configures one axis.
type Axis struct {
	Type       string `json:"type,omitempty"`
	Title      string `json:"title,omitempty"`
	TickFormat string `json:"tick_format,omitempty"`
	TickSuffix string `json:"tick_suffix,omitempty"`
	TickAngle  int    `json:"tick_angle"`
	TickSize   int    `json:"tick_size,omitempty"`
	ShowGrid   bool   `json:"show_grid"`
	GridColor  string `json:"grid_color,omitempty"`
	ZeroLine   bool   `json:"zero_line"`
}

// Legend placement.
type Legend struct {
	Orientation string  `json:"orientation"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	XAnchor     string  `json:"x_anchor"`
	YAnchor     string  `json:"y_anchor"`
	Background  string  `json:"background,omitempty"`
}

// Margin in pixels.
type Margin struct {
	Left   int `json:"l"`
	Right  int `json:"r"`
	Top    int `json:"t"`
	Bottom int `json:"b"`
}

// Layout holds figure-wide settings.
type Layout struct {
	Height          int     `json:"height,omitempty"`
	Template        string  `json:"template,omitempty"`
	TitleSize       int     `json:"title_size,omitempty"`
	TitleColor      string  `json:"title_color,omitempty"`
	HoverMode       string  `json:"hover_mode,omitempty"`
	ShowLegend      bool    `json:"show_legend"`
	Legend          *Legend `json:"legend,omitempty"`
	Margin          *Margin `json:"margin,omitempty"`
	XAxis           Axis    `json:"x_axis"`
	SharedX         bool    `json:"shared_x"`
	VerticalSpacing float64 `json:"vertical_spacing,omitempty"`
	RangeSlider     bool    `json:"range_slider"`
	Background      string  `json:"background,omitempty"`
}

// Layers returns every layer across panels, top panel first.
func (c ChartSpec) Layers() []Layer {
	var out []Layer
	for _, p := range c.Panels {
		out = append(out, p.Layers...)
	}
	return out
}

// IsEmpty reports whether the spec is the title-only empty chart.
func (c ChartSpec) IsEmpty() bool { return len(c.Layers()) == 0 }
