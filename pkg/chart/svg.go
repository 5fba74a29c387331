package chart

import (
	"fmt"

	"github.com/matzehuels/chartkit/pkg/markup"
)

// Aria holds accessibility attributes for the chart root.
type Aria struct {
	Label       string
	LabelledBy  string
	DescribedBy string
}

// Attrs returns the non-empty aria attributes.
func (a Aria) Attrs() []markup.Attr {
	var attrs []markup.Attr
	if a.Label != "" {
		attrs = append(attrs, markup.A("aria-label", a.Label))
	}
	if a.LabelledBy != "" {
		attrs = append(attrs, markup.A("aria-labelledby", a.LabelledBy))
	}
	if a.DescribedBy != "" {
		attrs = append(attrs, markup.A("aria-describedby", a.DescribedBy))
	}
	return attrs
}

// SVGWrapperProps configures [SVGWrapper].
type SVGWrapperProps struct {
	Width, Height float64
	Margin        Margin
	Defs          []Def
	Role          string
	Aria          Aria
	Theme         Theme
}

// SVGWrapper returns the root <svg> element: defs, theme background and a
// group translated by the margin holding children.
func SVGWrapper(p SVGWrapperProps, children ...*markup.Node) *markup.Node {
	attrs := []markup.Attr{
		markup.A("xmlns", "http://www.w3.org/2000/svg"),
		markup.A("width", p.Width),
		markup.A("height", p.Height),
		markup.A("viewBox", fmt.Sprintf("0 0 %s %s", markup.Num(p.Width), markup.Num(p.Height))),
	}
	if p.Role != "" {
		attrs = append(attrs, markup.A("role", p.Role))
	}
	attrs = append(attrs, p.Aria.Attrs()...)

	svg := markup.El("svg", attrs, RenderDefs(p.Defs))
	if bg := p.Theme.Background; bg != "" && bg != "transparent" {
		svg.Append(markup.El("rect", []markup.Attr{
			markup.A("width", p.Width), markup.A("height", p.Height), markup.A("fill", bg),
		}))
	}
	svg.Append(markup.El("g", []markup.Attr{
		markup.A("transform", Translate(p.Margin.Left, p.Margin.Top)),
	}, children...))
	return svg
}

// Translate formats an SVG translate transform.
func Translate(x, y float64) string {
	return fmt.Sprintf("translate(%s, %s)", markup.Num(x), markup.Num(y))
}
