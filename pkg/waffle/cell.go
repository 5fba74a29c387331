package waffle

import (
	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/markup"
)

// CellProps is what a [CellComponent] receives.
type CellProps struct {
	Cell         *Cell
	BorderWidth  float64
	TestIDPrefix string
	// Format is the markup dialect being rendered.
	Format chart.Format
}

// CellComponent renders a single cell.
type CellComponent func(CellProps) *markup.Node

// DefaultCell draws a square: an absolutely positioned div in HTML, a rect
// in SVG.
func DefaultCell(p CellProps) *markup.Node {
	c := p.Cell
	attrs := []markup.Attr{markup.A("id", c.Key())}
	if p.TestIDPrefix != "" {
		attrs = append(attrs, markup.A("data-testid", p.TestIDPrefix+"cell."+itoa(c.Position)))
	}
	if c.Data != nil {
		attrs = append(attrs, markup.A("data-id", c.Data.ID))
	}

	if p.Format == chart.FormatSVG {
		attrs = append(attrs,
			markup.A("x", c.X),
			markup.A("y", c.Y),
			markup.A("width", c.Size),
			markup.A("height", c.Size),
			markup.A("fill", c.Color),
			markup.A("opacity", c.Opacity),
		)
		if p.BorderWidth > 0 {
			attrs = append(attrs, markup.A("stroke", c.BorderColor), markup.A("stroke-width", p.BorderWidth))
		}
		return markup.El("rect", attrs)
	}

	style := markup.Style{}.
		Set("position", "absolute").
		Px("top", c.Y).
		Px("left", c.X).
		Px("width", c.Size).
		Px("height", c.Size).
		Set("background", c.Color).
		Set("opacity", c.Opacity).
		Set("box-sizing", "content-box").
		Set("border-style", "solid").
		Px("border-width", p.BorderWidth).
		Set("border-color", c.BorderColor)
	return markup.El("div", append(attrs, style.Attr()))
}
