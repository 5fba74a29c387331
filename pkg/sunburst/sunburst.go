package sunburst

import (
	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/markup"
)

// Render resolves p and renders the chart. The returned view holds the SVG
// tree and the interaction state events are dispatched against.
func Render(p Props) *chart.View {
	cfg := Resolve(p)
	c := chart.NewContainer(chart.ContainerOptions{
		Theme:         cfg.Theme,
		IsInteractive: cfg.IsInteractive,
	})
	return &chart.View{Container: c, Root: RenderConfig(cfg, c), Format: chart.FormatSVG}
}

// Layout resolves p and returns the computed nodes in breadth-first order.
// Fills bound by defs are included.
func Layout(p Props) []*Node {
	cfg := Resolve(p)
	geo := computeGeometry(cfg)
	bindDefs(cfg, geo)
	return geo.Nodes
}

// RenderConfig renders an already resolved configuration into c.
func RenderConfig(cfg Config, c *chart.Container) *markup.Node {
	dims := chart.ResolveDimensions(cfg.Width, cfg.Height, cfg.Margin)
	geo := computeGeometry(cfg)
	defs := bindDefs(cfg, geo)

	builtins := map[string]*markup.Node{
		LayerArcs:   renderArcs(cfg, c, geo),
		LayerLabels: renderLabels(cfg, geo),
	}
	center := markup.El("g", []markup.Attr{
		markup.A("transform", chart.Translate(dims.InnerWidth/2, dims.InnerHeight/2)),
	}, chart.SelectLayers(cfg.Layers, builtins)...)

	return chart.SVGWrapper(chart.SVGWrapperProps{
		Width:  dims.OuterWidth,
		Height: dims.OuterHeight,
		Margin: dims.Margin,
		Defs:   defs,
		Role:   cfg.Role,
		Aria:   cfg.Aria,
		Theme:  cfg.Theme,
	}, center)
}

// Radius is half the smaller inner dimension.
func Radius(cfg Config) float64 {
	dims := chart.ResolveDimensions(cfg.Width, cfg.Height, cfg.Margin)
	return min(dims.InnerWidth, dims.InnerHeight) / 2
}

func computeGeometry(cfg Config) Geometry {
	return cfg.Geometry(GeometryInput{
		Data:         cfg.Data,
		ID:           cfg.ID,
		Value:        cfg.Value,
		Colors:       cfg.Colors,
		ChildColor:   cfg.ChildColor,
		Radius:       Radius(cfg),
		CornerRadius: cfg.CornerRadius,
		Theme:        cfg.Theme,
	})
}

func bindDefs(cfg Config, geo Geometry) []chart.Def {
	return chart.BindDefs(cfg.Defs, geo.Nodes, cfg.Fill, chart.BindKeys[*Node]{
		Datum:   func(n *Node) chart.Datum { return n.Data },
		Color:   func(n *Node) string { return n.Color },
		SetFill: func(n *Node, fill string) { n.Fill = fill },
	})
}
