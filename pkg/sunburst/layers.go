package sunburst

import (
	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/markup"
)

// ArcElementID is the element id of a node's arc path.
func ArcElementID(n *Node) string { return "arc-" + n.Key() }

func renderArcs(cfg Config, c *chart.Container, geo Geometry) *markup.Node {
	border := cfg.BorderColor.Func(cfg.Theme)
	g := markup.El("g", []markup.Attr{markup.A("class", "sunburst-arcs")})
	for _, n := range geo.Nodes {
		if n.Depth == 0 {
			continue
		}
		fill := n.Fill
		if fill == "" {
			fill = n.Color
		}
		el := markup.El("path", []markup.Attr{
			markup.A("id", ArcElementID(n)),
			markup.A("data-id", n.ID),
			markup.A("d", geo.Arc.Path(n.Arc)),
			markup.A("fill", fill),
			markup.A("stroke", border(n)),
			markup.A("stroke-width", cfg.BorderWidth),
		})
		chart.BindInteractions(c, el, n, cfg.Handlers, func() *markup.Node { return cfg.Tooltip(n) })
		g.Append(el)
	}
	return g
}

// angleEpsilon absorbs float error in arc spans, so a slice spanning
// exactly the skip angle keeps its label.
const angleEpsilon = 1e-9

func renderLabels(cfg Config, geo Geometry) *markup.Node {
	if !cfg.EnableSliceLabels {
		return nil
	}
	textColor := cfg.SliceLabelsTextColor.Func(cfg.Theme)
	labels := cfg.Theme.Labels
	g := markup.El("g", []markup.Attr{markup.A("class", "sunburst-labels")})
	for _, n := range geo.Nodes {
		if n.Depth == 0 || n.Arc.AngleDeg() < cfg.SliceLabelsSkipAngle-angleEpsilon {
			continue
		}
		x, y := n.Arc.Centroid()
		g.Append(markup.El("text", []markup.Attr{
			markup.A("id", "label-"+n.Key()),
			markup.A("transform", chart.Translate(x, y)),
			markup.A("text-anchor", "middle"),
			markup.A("dominant-baseline", "central"),
			markup.A("fill", textColor(n)),
			markup.A("font-family", labels.FontFamily),
			markup.A("font-size", labels.FontSize),
			markup.A("pointer-events", "none"),
		}, markup.Text(cfg.SliceLabel.String(n.Datum()))))
	}
	return g
}
