package waffle

import (
	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/markup"
)

// RenderHTML resolves p and renders the chart as HTML.
func RenderHTML(p Props) *chart.View {
	return render(Resolve(p), chart.FormatHTML)
}

// RenderSVG resolves p and renders the chart as a standalone SVG document.
func RenderSVG(p Props) *chart.View {
	return render(Resolve(p), chart.FormatSVG)
}

// Layout resolves p and returns the computed grid.
func Layout(p Props) Geometry {
	cfg := Resolve(p)
	return computeGeometry(cfg, chart.ResolveDimensions(cfg.Width, cfg.Height, cfg.Margin))
}

func render(cfg Config, format chart.Format) *chart.View {
	c := chart.NewContainer(chart.ContainerOptions{
		Theme:         cfg.Theme,
		IsInteractive: cfg.IsInteractive,
		Animate:       cfg.Animate,
		MotionConfig:  cfg.MotionConfig,
		RenderWrapper: cfg.RenderWrapper,
	})
	return &chart.View{Container: c, Root: RenderConfig(cfg, c, format), Format: format}
}

// RenderConfig renders an already resolved configuration into c.
func RenderConfig(cfg Config, c *chart.Container, format chart.Format) *markup.Node {
	dims := chart.ResolveDimensions(cfg.Width, cfg.Height, cfg.Margin)
	geo := computeGeometry(cfg, dims)

	builtins := map[string]*markup.Node{
		LayerCells: renderCells(cfg, geo, dims, format),
		LayerAreas: renderAreas(cfg, c, geo, dims, format),
	}
	layers := chart.SelectLayers(cfg.Layers, builtins)

	if format == chart.FormatSVG {
		return chart.SVGWrapper(chart.SVGWrapperProps{
			Width:  dims.OuterWidth,
			Height: dims.OuterHeight,
			Margin: dims.Margin,
			Role:   cfg.Role,
			Aria:   cfg.Aria,
			Theme:  cfg.Theme,
		}, layers...)
	}

	attrs := []markup.Attr{
		markup.A("class", "waffle"),
		markup.Style{}.
			Set("position", "relative").
			Px("width", dims.OuterWidth).
			Px("height", dims.OuterHeight).
			Attr(),
		markup.A("role", cfg.Role),
	}
	attrs = append(attrs, cfg.Aria.Attrs()...)
	return markup.El("div", attrs, layers...)
}

func computeGeometry(cfg Config, dims chart.Dimensions) Geometry {
	return cfg.Geometry(GeometryInput{
		Width:         dims.InnerWidth,
		Height:        dims.InnerHeight,
		Data:          cfg.Data,
		ID:            cfg.ID,
		Label:         cfg.Label,
		Value:         cfg.Value,
		ValueFormat:   cfg.ValueFormat,
		Total:         cfg.Total,
		Rows:          cfg.Rows,
		Columns:       cfg.Columns,
		FillDirection: cfg.FillDirection,
		Padding:       cfg.Padding,
		Colors:        cfg.Colors,
		EmptyColor:    cfg.EmptyColor,
		EmptyOpacity:  cfg.EmptyOpacity,
		BorderColor:   cfg.BorderColor,
		Theme:         cfg.Theme,
	})
}
