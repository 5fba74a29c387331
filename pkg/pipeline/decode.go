package pipeline

import (
	"encoding/json"

	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/render"
	"github.com/matzehuels/chartkit/pkg/sunburst"
	"github.com/matzehuels/chartkit/pkg/waffle"
)

// Chart is a decoded chart ready to render.
type Chart interface {
	// Name is the chart type.
	Name() string
	// Items counts sunburst nodes or waffle datums.
	Items() int
	// Markup renders the chart as svg or html. ok is false for formats the
	// chart has no markup for.
	Markup(format string) (data []byte, ok bool)
	// Layout returns the computed geometry for JSON export.
	Layout() any
	// NativePNG draws the chart without rsvg-convert.
	NativePNG(scale float64) ([]byte, error)
}

// Decode parses the options' props, data and theme into a chart.
func Decode(opts Options) (Chart, error) {
	switch opts.Chart {
	case errors.ChartSunburst:
		p, err := DecodeSunburst(opts.Props, opts.Data, opts.Theme)
		if err != nil {
			return nil, err
		}
		if p.Theme, err = fallbackTheme(p.Theme, opts.FallbackTheme); err != nil {
			return nil, err
		}
		return &sunburstChart{props: p}, nil
	case errors.ChartWaffle:
		p, err := DecodeWaffle(opts.Props, opts.Data, opts.Theme)
		if err != nil {
			return nil, err
		}
		if p.Theme, err = fallbackTheme(p.Theme, opts.FallbackTheme); err != nil {
			return nil, err
		}
		return &waffleChart{props: p}, nil
	}
	return nil, errors.ValidateChart(opts.Chart)
}

// DecodeSunburst builds sunburst props. Data must be the root object of the tree.
func DecodeSunburst(props, data, theme json.RawMessage) (sunburst.Props, error) {
	var p sunburst.Props
	if err := unmarshalSection("props", props, &p); err != nil {
		return p, err
	}
	if err := checkDimensions(p.Width, p.Height); err != nil {
		return p, err
	}
	var root chart.Datum
	if err := json.Unmarshal(data, &root); err != nil {
		return p, errors.Wrap(errors.ErrCodeInvalidData, err, "sunburst data must be a tree object")
	}
	if root == nil {
		return p, errors.New(errors.ErrCodeInvalidData, "sunburst data is empty")
	}
	p.Data = root
	if len(theme) > 0 {
		p.Theme = &chart.Theme{}
		if err := unmarshalSection("theme", theme, p.Theme); err != nil {
			return p, err
		}
	}
	return p, nil
}

// DecodeWaffle builds waffle props. Data must be a list of datums.
func DecodeWaffle(props, data, theme json.RawMessage) (waffle.Props, error) {
	var p waffle.Props
	if err := unmarshalSection("props", props, &p); err != nil {
		return p, err
	}
	if err := checkDimensions(p.Width, p.Height); err != nil {
		return p, err
	}
	if err := checkGrid(p.Rows, p.Columns); err != nil {
		return p, err
	}
	var items []chart.Datum
	if err := json.Unmarshal(data, &items); err != nil {
		return p, errors.Wrap(errors.ErrCodeInvalidData, err, "waffle data must be a list of objects")
	}
	p.Data = items
	if len(theme) > 0 {
		p.Theme = &chart.Theme{}
		if err := unmarshalSection("theme", theme, p.Theme); err != nil {
			return p, err
		}
	}
	return p, nil
}

// checkDimensions rejects canvases too large to render or rasterize.
// Unset dimensions use the chart defaults.
func checkDimensions(width, height *float64) error {
	for _, v := range []*float64{width, height} {
		if v != nil && *v > MaxDimension {
			return errors.New(errors.ErrCodeInvalidInput, "dimension %g exceeds maximum %g", *v, MaxDimension)
		}
	}
	return nil
}

// checkGrid rejects waffle grids with more than MaxCells cells. Negative
// sizes render an empty grid and pass.
func checkGrid(rows, columns *int) error {
	if rows == nil || columns == nil {
		r, c := waffle.DefaultProps.Rows, waffle.DefaultProps.Columns
		if rows == nil {
			rows = r
		}
		if columns == nil {
			columns = c
		}
	}
	if *rows <= 0 || *columns <= 0 {
		return nil
	}
	if *rows > MaxCells/(*columns) {
		return errors.New(errors.ErrCodeInvalidInput, "waffle grid %d x %d exceeds %d cells", *rows, *columns, MaxCells)
	}
	return nil
}

func fallbackTheme(t *chart.Theme, fallback json.RawMessage) (*chart.Theme, error) {
	if t != nil || len(fallback) == 0 {
		return t, nil
	}
	t = &chart.Theme{}
	if err := unmarshalSection("fallback theme", fallback, t); err != nil {
		return nil, err
	}
	return t, nil
}

func unmarshalSection(name string, raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidData, err, "invalid %s", name)
	}
	return nil
}

type sunburstChart struct {
	props sunburst.Props
}

// SunburstLayout is the JSON export of a sunburst.
type SunburstLayout struct {
	Chart  string           `json:"chart"`
	Width  float64          `json:"width"`
	Height float64          `json:"height"`
	Radius float64          `json:"radius"`
	Nodes  []*sunburst.Node `json:"nodes"`
}

func (c *sunburstChart) Name() string { return errors.ChartSunburst }

func (c *sunburstChart) Items() int { return len(sunburst.Layout(c.props)) }

func (c *sunburstChart) Markup(format string) ([]byte, bool) {
	if format != FormatSVG {
		return nil, false
	}
	return sunburst.Render(c.props).Bytes(), true
}

func (c *sunburstChart) Layout() any {
	cfg := sunburst.Resolve(c.props)
	return SunburstLayout{
		Chart:  errors.ChartSunburst,
		Width:  cfg.Width,
		Height: cfg.Height,
		Radius: sunburst.Radius(cfg),
		Nodes:  sunburst.Layout(c.props),
	}
}

func (c *sunburstChart) NativePNG(scale float64) ([]byte, error) {
	return render.SunburstPNG(c.props, scale)
}

type waffleChart struct {
	props waffle.Props
}

// WaffleLayout is the JSON export of a waffle.
type WaffleLayout struct {
	Chart  string          `json:"chart"`
	Width  float64         `json:"width"`
	Height float64         `json:"height"`
	Total  float64         `json:"total"`
	Grid   waffle.Geometry `json:"grid"`
}

func (c *waffleChart) Name() string { return errors.ChartWaffle }

func (c *waffleChart) Items() int { return len(c.props.Data) }

func (c *waffleChart) Markup(format string) ([]byte, bool) {
	switch format {
	case FormatHTML:
		return waffle.RenderHTML(c.props).Bytes(), true
	case FormatSVG:
		return waffle.RenderSVG(c.props).Bytes(), true
	}
	return nil, false
}

func (c *waffleChart) Layout() any {
	cfg := waffle.Resolve(c.props)
	return WaffleLayout{
		Chart:  errors.ChartWaffle,
		Width:  cfg.Width,
		Height: cfg.Height,
		Total:  cfg.Total,
		Grid:   waffle.Layout(c.props),
	}
}

func (c *waffleChart) NativePNG(scale float64) ([]byte, error) {
	return render.WafflePNG(c.props, scale)
}
