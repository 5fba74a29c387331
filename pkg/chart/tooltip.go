package chart

import "github.com/matzehuels/chartkit/pkg/markup"

// TooltipFunc renders tooltip content for an element of type T.
// Custom tooltips receive the same computed element as the default one.
type TooltipFunc[T any] func(T) *markup.Node

// BasicTooltipProps configures [BasicTooltip].
type BasicTooltipProps struct {
	ID         string
	Value      string
	Color      string
	EnableChip bool
	Theme      Theme
}

// BasicTooltip renders the standard "chip id: value" tooltip layout.
func BasicTooltip(p BasicTooltipProps) *markup.Node {
	ts := p.Theme.Tooltip
	container := markup.Style{}.
		Set("background", ts.Background).
		Set("color", ts.Color).
		Px("font-size", ts.FontSize).
		Px("border-radius", ts.BorderRadius).
		Set("box-shadow", ts.BoxShadow).
		Set("padding", ts.Padding)

	row := markup.El("div", []markup.Attr{
		markup.Style{}.Set("white-space", "pre").Set("display", "flex").Set("align-items", "center").Attr(),
	})
	if p.EnableChip {
		row.Append(Chip(p.Color, 12))
	}
	label := markup.El("span", nil, markup.Text(p.ID))
	if p.Value != "" {
		label.Append(markup.Text(": "), markup.El("strong", nil, markup.Text(p.Value)))
	}
	row.Append(label)

	return markup.El("div", []markup.Attr{markup.A("class", "chartkit-tooltip"), container.Attr()}, row)
}

// Chip renders a small color square.
func Chip(color string, size float64) *markup.Node {
	return markup.El("span", []markup.Attr{
		markup.Style{}.
			Set("display", "block").
			Px("width", size).
			Px("height", size).
			Set("background", color).
			Px("margin-right", 7).
			Attr(),
	})
}
