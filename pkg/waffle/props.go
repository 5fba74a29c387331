package waffle

import (
	"math"

	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/markup"
)

// Built-in layer names.
const (
	LayerCells = "cells"
	LayerAreas = "areas"
)

// Fill directions.
const (
	FillBottom = "bottom"
	FillTop    = "top"
	FillRight  = "right"
	FillLeft   = "left"
)

// Props configures a waffle. Every field is optional; nil or zero-valued
// fields resolve to the matching entry of [DefaultProps].
type Props struct {
	// Data is the list of datums, in fill order.
	Data []chart.Datum `json:"data"`
	// ID, Label and Value read datum fields. Defaults "id", "label", "value".
	// An empty label falls back to the id.
	ID    chart.Accessor `json:"id"`
	Label chart.Accessor `json:"label"`
	Value chart.Accessor `json:"value"`
	// ValueFormat formats values for tooltips. d3-format spec or function.
	ValueFormat chart.ValueFormat `json:"valueFormat"`

	// Total is the value the whole grid represents. Default: sum of values.
	Total *float64 `json:"total"`
	// Rows and Columns size the grid. Default 10 x 10.
	Rows    *int `json:"rows"`
	Columns *int `json:"columns"`
	// FillDirection is one of bottom, top, right, left. Default bottom;
	// unknown values behave like bottom.
	FillDirection string `json:"fillDirection"`
	// Padding between cells. Default 1.
	Padding *float64 `json:"padding"`

	Margin chart.Margin `json:"margin"`
	// Width and Height of the outer box. Default 600 x 600.
	Width  *float64 `json:"width"`
	Height *float64 `json:"height"`

	// Layers lists layers in paint order. Default ["cells", "areas"].
	Layers []chart.Layer `json:"layers"`
	// CellComponent replaces the default cell renderer.
	CellComponent CellComponent `json:"-"`

	// Colors assigns datum colors. Default scheme "nivo".
	Colors chart.OrdinalColors `json:"colors"`
	// EmptyColor and EmptyOpacity style unfilled cells. Default #cccccc, 1.
	EmptyColor   string   `json:"emptyColor"`
	EmptyOpacity *float64 `json:"emptyOpacity"`

	// BorderWidth of cells and areas. Default 0.
	BorderWidth *float64 `json:"borderWidth"`
	// BorderColor of cells. Default {"from": "color", "modifiers": [["darker", 1]]}.
	BorderColor chart.InheritedColor[*Cell] `json:"borderColor"`

	// IsInteractive enables hover, tooltip and click handling on areas. Default true.
	IsInteractive *bool `json:"isInteractive"`

	OnMouseEnter func(*ComputedDatum, markup.Event) `json:"-"`
	OnMouseMove  func(*ComputedDatum, markup.Event) `json:"-"`
	OnMouseLeave func(*ComputedDatum, markup.Event) `json:"-"`
	OnClick      func(*ComputedDatum, markup.Event) `json:"-"`

	// Tooltip replaces the default tooltip.
	Tooltip chart.TooltipFunc[*ComputedDatum] `json:"-"`

	// Role of the root element. Default "img".
	Role            string `json:"role"`
	AriaLabel       string `json:"ariaLabel"`
	AriaLabelledBy  string `json:"ariaLabelledBy"`
	AriaDescribedBy string `json:"ariaDescribedBy"`
	// TestIDPrefix, when set, adds data-testid attributes to cells and areas.
	TestIDPrefix string `json:"testIdPrefix"`

	Theme *chart.Theme `json:"theme"`

	// Animate and MotionConfig are passed to the container. Default true, "gentle".
	Animate      *bool  `json:"animate"`
	MotionConfig string `json:"motionConfig"`
	// RenderWrapper wraps HTML output in a full-size relative div. Default true.
	RenderWrapper *bool `json:"renderWrapper"`

	// Geometry replaces the default layout function [Compute].
	Geometry GeometryFunc `json:"-"`
}

// DefaultProps is the default table every unset prop resolves to.
var DefaultProps = Props{
	ID:            chart.Field("id"),
	Label:         chart.Field("label"),
	Value:         chart.Field("value"),
	Rows:          chart.Ptr(10),
	Columns:       chart.Ptr(10),
	FillDirection: FillBottom,
	Padding:       chart.Ptr(1.0),
	Width:         chart.Ptr(600.0),
	Height:        chart.Ptr(600.0),
	Layers:        chart.Builtins(LayerCells, LayerAreas),
	CellComponent: DefaultCell,
	Colors:        chart.Scheme(chart.DefaultScheme),
	EmptyColor:    "#cccccc",
	EmptyOpacity:  chart.Ptr(1.0),
	BorderWidth:   chart.Ptr(0.0),
	BorderColor:   chart.Inherit[*Cell]("color", chart.Darker(1)),
	IsInteractive: chart.Ptr(true),
	Role:          "img",
	Animate:       chart.Ptr(true),
	MotionConfig:  "gentle",
	RenderWrapper: chart.Ptr(true),
	Geometry:      Compute,
}

// Config is a fully resolved waffle configuration.
type Config struct {
	Data          []chart.Datum
	ID            chart.Accessor
	Label         chart.Accessor
	Value         chart.Accessor
	ValueFormat   chart.ValueFormat
	Total         float64
	Rows          int
	Columns       int
	FillDirection string
	Padding       float64
	Margin        chart.Margin
	Width         float64
	Height        float64
	Layers        []chart.Layer
	CellComponent CellComponent
	Colors        chart.OrdinalColors
	EmptyColor    string
	EmptyOpacity  float64
	BorderWidth   float64
	BorderColor   chart.InheritedColor[*Cell]
	IsInteractive bool
	Handlers      chart.Handlers[*ComputedDatum]
	Tooltip       chart.TooltipFunc[*ComputedDatum]
	Role          string
	Aria          chart.Aria
	TestIDPrefix  string
	Theme         chart.Theme
	Animate       bool
	MotionConfig  string
	RenderWrapper bool
	Geometry      GeometryFunc
}

// Resolve overlays p on [DefaultProps], key by key. A missing Total is the
// sum of the data values. No validation is performed.
func Resolve(p Props) Config {
	d := DefaultProps
	cfg := Config{
		Data:          p.Data,
		ID:            p.ID.Or(d.ID),
		Label:         p.Label.Or(d.Label),
		Value:         p.Value.Or(d.Value),
		ValueFormat:   p.ValueFormat,
		Rows:          chart.Deref(p.Rows, *d.Rows),
		Columns:       chart.Deref(p.Columns, *d.Columns),
		FillDirection: orString(p.FillDirection, d.FillDirection),
		Padding:       chart.Deref(p.Padding, *d.Padding),
		Margin:        p.Margin,
		Width:         chart.Deref(p.Width, *d.Width),
		Height:        chart.Deref(p.Height, *d.Height),
		Layers:        p.Layers,
		CellComponent: p.CellComponent,
		Colors:        p.Colors.Or(d.Colors),
		EmptyColor:    orString(p.EmptyColor, d.EmptyColor),
		EmptyOpacity:  chart.Deref(p.EmptyOpacity, *d.EmptyOpacity),
		BorderWidth:   chart.Deref(p.BorderWidth, *d.BorderWidth),
		BorderColor:   p.BorderColor.Or(d.BorderColor),
		IsInteractive: chart.Deref(p.IsInteractive, *d.IsInteractive),
		Handlers: chart.Handlers[*ComputedDatum]{
			OnClick:      p.OnClick,
			OnMouseEnter: p.OnMouseEnter,
			OnMouseMove:  p.OnMouseMove,
			OnMouseLeave: p.OnMouseLeave,
		},
		Tooltip: p.Tooltip,
		Role:    orString(p.Role, d.Role),
		Aria: chart.Aria{
			Label:       p.AriaLabel,
			LabelledBy:  p.AriaLabelledBy,
			DescribedBy: p.AriaDescribedBy,
		},
		TestIDPrefix:  p.TestIDPrefix,
		Theme:         chart.Extend(p.Theme),
		Animate:       chart.Deref(p.Animate, *d.Animate),
		MotionConfig:  orString(p.MotionConfig, d.MotionConfig),
		RenderWrapper: chart.Deref(p.RenderWrapper, *d.RenderWrapper),
		Geometry:      p.Geometry,
	}
	if cfg.Layers == nil {
		cfg.Layers = d.Layers
	}
	if cfg.CellComponent == nil {
		cfg.CellComponent = d.CellComponent
	}
	if cfg.Geometry == nil {
		cfg.Geometry = d.Geometry
	}
	if cfg.Tooltip == nil {
		cfg.Tooltip = DefaultTooltip(cfg.Theme)
	}
	if p.Total != nil {
		cfg.Total = *p.Total
	} else {
		for _, datum := range cfg.Data {
			if v := cfg.Value.Float(datum); v > 0 && !math.IsInf(v, 1) {
				cfg.Total += v
			}
		}
	}
	return cfg
}

func orString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
