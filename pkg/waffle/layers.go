package waffle

import (
	"strings"

	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/markup"
)

// AreaElementID is the element id of a datum's area.
func AreaElementID(d *ComputedDatum) string { return "area-" + d.ID }

func renderCells(cfg Config, geo Geometry, dims chart.Dimensions, format chart.Format) *markup.Node {
	var layer *markup.Node
	if format == chart.FormatSVG {
		layer = markup.El("g", []markup.Attr{markup.A("class", "waffle-cells")})
	} else {
		layer = markup.El("div", []markup.Attr{
			markup.A("class", "waffle-cells"),
			markup.Style{}.
				Set("position", "absolute").
				Px("top", dims.Margin.Top).
				Px("left", dims.Margin.Left).
				Attr(),
		})
	}
	for _, c := range geo.Cells {
		layer.Append(cfg.CellComponent(CellProps{
			Cell:         c,
			BorderWidth:  cfg.BorderWidth,
			TestIDPrefix: cfg.TestIDPrefix,
			Format:       format,
		}))
	}
	return layer
}

func renderAreas(cfg Config, c *chart.Container, geo Geometry, dims chart.Dimensions, format chart.Format) *markup.Node {
	g := markup.El("g", []markup.Attr{markup.A("class", "waffle-areas")})
	for _, d := range geo.Data {
		if d.EndAt <= d.StartAt {
			continue
		}
		attrs := []markup.Attr{
			markup.A("id", AreaElementID(d)),
			markup.A("data-id", d.ID),
			markup.A("d", areaPath(geo, d.Polygons)),
			markup.A("fill", d.Color),
			markup.A("fill-opacity", 0),
			markup.A("stroke", d.BorderColor),
			markup.A("stroke-width", cfg.BorderWidth),
		}
		if cfg.TestIDPrefix != "" {
			attrs = append(attrs, markup.A("data-testid", cfg.TestIDPrefix+"area."+d.ID))
		}
		el := markup.El("path", attrs)
		chart.BindInteractions(c, el, d, cfg.Handlers, func() *markup.Node { return cfg.Tooltip(d) })
		g.Append(el)
	}
	if format == chart.FormatSVG {
		return g
	}

	g.SetAttr("transform", chart.Translate(dims.Margin.Left, dims.Margin.Top))
	return markup.El("svg", []markup.Attr{
		markup.A("xmlns", "http://www.w3.org/2000/svg"),
		markup.A("width", dims.OuterWidth),
		markup.A("height", dims.OuterHeight),
		markup.Style{}.Set("position", "absolute").Px("top", 0).Px("left", 0).Attr(),
	}, g)
}

// areaPath converts grid-unit polygons to path data. Grid lines fall in the
// middle of the padding between cells and at the outer cell edges.
func areaPath(geo Geometry, polygons [][]Point) string {
	var sb strings.Builder
	for _, poly := range polygons {
		for i, p := range poly {
			if i == 0 {
				sb.WriteByte('M')
			} else {
				sb.WriteByte('L')
			}
			sb.WriteString(markup.Num(gridLine(geo.OriginX, p.X, geo.Columns, geo.CellSize, geo.Padding)))
			sb.WriteByte(',')
			sb.WriteString(markup.Num(gridLine(geo.OriginY, p.Y, geo.Rows, geo.CellSize, geo.Padding)))
		}
		sb.WriteByte('Z')
	}
	return sb.String()
}

func gridLine(origin, k float64, n int, size, padding float64) float64 {
	step := size + padding
	pos := origin + k*step - padding/2
	return min(max(pos, origin), origin+float64(n)*step-padding)
}
