package sunburst

import (
	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/markup"
)

// Built-in layer names.
const (
	LayerArcs   = "arcs"
	LayerLabels = "labels"
)

// Props configures a sunburst. Every field is optional; nil or zero-valued
// fields resolve to the matching entry of [DefaultProps].
type Props struct {
	// Data is the root of the tree. Children are read from "children".
	Data chart.Datum `json:"data"`
	// ID reads each node's identifier. Field path or function. Default "id".
	ID chart.Accessor `json:"id"`
	// Value reads leaf values; parent values are the sum of their children.
	// Field path or function. Default "value".
	Value chart.Accessor `json:"value"`

	// Colors assigns colors to depth-1 nodes. Scheme name, palette or
	// {"datum": path}. Default scheme "nivo".
	Colors chart.OrdinalColors `json:"colors"`
	// ChildColor derives deeper node colors from their parent node.
	// Literal, function or {"from": path, "modifiers": [...]}. Default: inherit the parent color.
	ChildColor chart.InheritedColor[*Node] `json:"childColor"`

	// Margin around the drawing area. Missing sides are 0.
	Margin chart.Margin `json:"margin"`
	// Width and Height of the outer box. Default 600 x 600.
	Width  *float64 `json:"width"`
	Height *float64 `json:"height"`

	// CornerRadius rounds arc corners. Default 0.
	CornerRadius *float64 `json:"cornerRadius"`

	// BorderWidth is the arc stroke width. Default 1.
	BorderWidth *float64 `json:"borderWidth"`
	// BorderColor is the arc stroke color. Literal, function or inherited. Default "white".
	BorderColor chart.InheritedColor[*Node] `json:"borderColor"`

	// EnableSliceLabels turns on the labels layer. Default false.
	EnableSliceLabels *bool `json:"enableSliceLabels"`
	// SliceLabel reads label text from the node (see [Node.Datum]). Default "id".
	SliceLabel chart.Accessor `json:"sliceLabel"`
	// SliceLabelsSkipAngle hides labels of slices narrower than this many degrees. Default 0.
	SliceLabelsSkipAngle *float64 `json:"sliceLabelsSkipAngle"`
	// SliceLabelsTextColor is the label color. Default: theme "labels.text.fill".
	SliceLabelsTextColor chart.InheritedColor[*Node] `json:"sliceLabelsTextColor"`

	// Defs are pattern/gradient definitions, bound to nodes by Fill rules.
	Defs []chart.Def      `json:"defs"`
	Fill []chart.FillRule `json:"fill"`

	// Role of the root svg element. Default "img".
	Role            string `json:"role"`
	AriaLabel       string `json:"ariaLabel"`
	AriaLabelledBy  string `json:"ariaLabelledBy"`
	AriaDescribedBy string `json:"ariaDescribedBy"`

	// TooltipFormat formats the node value in the default tooltip. When unset
	// the tooltip shows the node percentage.
	TooltipFormat chart.ValueFormat `json:"tooltipFormat"`
	// Tooltip replaces the default tooltip.
	Tooltip chart.TooltipFunc[*Node] `json:"-"`

	OnClick      func(*Node, markup.Event) `json:"-"`
	OnMouseEnter func(*Node, markup.Event) `json:"-"`
	OnMouseLeave func(*Node, markup.Event) `json:"-"`

	// IsInteractive enables hover, tooltip and click handling. Default true.
	IsInteractive *bool `json:"isInteractive"`
	// Theme overrides parts of the default theme.
	Theme *chart.Theme `json:"theme"`

	// Layers lists layers in paint order. Default ["arcs", "labels"].
	Layers []chart.Layer `json:"layers"`

	// Geometry replaces the default layout function [Compute].
	Geometry GeometryFunc `json:"-"`
}

// DefaultProps is the default table every unset prop resolves to.
var DefaultProps = Props{
	ID:                   chart.Field("id"),
	Value:                chart.Field("value"),
	Colors:               chart.Scheme(chart.DefaultScheme),
	ChildColor:           chart.Inherit[*Node]("color"),
	Width:                chart.Ptr(600.0),
	Height:               chart.Ptr(600.0),
	CornerRadius:         chart.Ptr(0.0),
	BorderWidth:          chart.Ptr(1.0),
	BorderColor:          chart.Literal[*Node]("white"),
	EnableSliceLabels:    chart.Ptr(false),
	SliceLabel:           chart.Field("id"),
	SliceLabelsSkipAngle: chart.Ptr(0.0),
	SliceLabelsTextColor: chart.FromTheme[*Node]("labels.text.fill"),
	Role:                 "img",
	IsInteractive:        chart.Ptr(true),
	Layers:               chart.Builtins(LayerArcs, LayerLabels),
	Geometry:             Compute,
}

// Config is a fully resolved sunburst configuration.
type Config struct {
	Data                 chart.Datum
	ID                   chart.Accessor
	Value                chart.Accessor
	Colors               chart.OrdinalColors
	ChildColor           chart.InheritedColor[*Node]
	Margin               chart.Margin
	Width                float64
	Height               float64
	CornerRadius         float64
	BorderWidth          float64
	BorderColor          chart.InheritedColor[*Node]
	EnableSliceLabels    bool
	SliceLabel           chart.Accessor
	SliceLabelsSkipAngle float64
	SliceLabelsTextColor chart.InheritedColor[*Node]
	Defs                 []chart.Def
	Fill                 []chart.FillRule
	Role                 string
	Aria                 chart.Aria
	TooltipFormat        chart.ValueFormat
	Tooltip              chart.TooltipFunc[*Node]
	Handlers             chart.Handlers[*Node]
	IsInteractive        bool
	Theme                chart.Theme
	Layers               []chart.Layer
	Geometry             GeometryFunc
}

// Resolve overlays p on [DefaultProps], key by key. Nested values such as
// Margin and Theme are taken as a whole; no validation is performed.
func Resolve(p Props) Config {
	d := DefaultProps
	cfg := Config{
		Data:                 p.Data,
		ID:                   p.ID.Or(d.ID),
		Value:                p.Value.Or(d.Value),
		Colors:               p.Colors.Or(d.Colors),
		ChildColor:           p.ChildColor.Or(d.ChildColor),
		Margin:               p.Margin,
		Width:                chart.Deref(p.Width, *d.Width),
		Height:               chart.Deref(p.Height, *d.Height),
		CornerRadius:         chart.Deref(p.CornerRadius, *d.CornerRadius),
		BorderWidth:          chart.Deref(p.BorderWidth, *d.BorderWidth),
		BorderColor:          p.BorderColor.Or(d.BorderColor),
		EnableSliceLabels:    chart.Deref(p.EnableSliceLabels, *d.EnableSliceLabels),
		SliceLabel:           p.SliceLabel.Or(d.SliceLabel),
		SliceLabelsSkipAngle: chart.Deref(p.SliceLabelsSkipAngle, *d.SliceLabelsSkipAngle),
		SliceLabelsTextColor: p.SliceLabelsTextColor.Or(d.SliceLabelsTextColor),
		Defs:                 p.Defs,
		Fill:                 p.Fill,
		Role:                 orString(p.Role, d.Role),
		Aria: chart.Aria{
			Label:       p.AriaLabel,
			LabelledBy:  p.AriaLabelledBy,
			DescribedBy: p.AriaDescribedBy,
		},
		TooltipFormat: p.TooltipFormat,
		Handlers: chart.Handlers[*Node]{
			OnClick:      p.OnClick,
			OnMouseEnter: p.OnMouseEnter,
			OnMouseLeave: p.OnMouseLeave,
		},
		IsInteractive: chart.Deref(p.IsInteractive, *d.IsInteractive),
		Theme:         chart.Extend(p.Theme),
		Layers:        p.Layers,
		Geometry:      p.Geometry,
	}
	if cfg.Layers == nil {
		cfg.Layers = d.Layers
	}
	if cfg.Geometry == nil {
		cfg.Geometry = d.Geometry
	}
	cfg.Tooltip = p.Tooltip
	if cfg.Tooltip == nil {
		cfg.Tooltip = DefaultTooltip(cfg.Theme, cfg.TooltipFormat)
	}
	return cfg
}

func orString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
