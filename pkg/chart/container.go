package chart

import (
	"bytes"
	"io"

	"github.com/matzehuels/chartkit/pkg/markup"
)

// Format is the markup dialect a chart renders to.
type Format string

// Markup formats.
const (
	FormatSVG  Format = "svg"
	FormatHTML Format = "html"
)

// ContainerOptions configures a [Container].
type ContainerOptions struct {
	Theme         Theme
	IsInteractive bool
	Animate       bool
	MotionConfig  string
	RenderWrapper bool
}

// Container carries the per-render context shared by every layer: theme,
// interactivity, motion settings and the tooltip currently shown.
type Container struct {
	Theme         Theme
	IsInteractive bool
	Animate       bool
	MotionConfig  string
	RenderWrapper bool

	tooltip *tooltipState
}

type tooltipState struct {
	content *markup.Node
	x, y    float64
}

// NewContainer creates a container. Tooltips start hidden.
func NewContainer(opts ContainerOptions) *Container {
	return &Container{
		Theme:         opts.Theme,
		IsInteractive: opts.IsInteractive,
		Animate:       opts.Animate,
		MotionConfig:  opts.MotionConfig,
		RenderWrapper: opts.RenderWrapper,
	}
}

// ShowTooltip displays content at the event position.
func (c *Container) ShowTooltip(content *markup.Node, e markup.Event) {
	if content == nil {
		return
	}
	c.tooltip = &tooltipState{content: content, x: e.X, y: e.Y}
}

// HideTooltip removes the tooltip.
func (c *Container) HideTooltip() { c.tooltip = nil }

// Tooltip returns the visible tooltip content, or nil.
func (c *Container) Tooltip() *markup.Node {
	if c.tooltip == nil {
		return nil
	}
	return c.tooltip.content
}

// View is the result of a render pass: the markup tree plus the container
// holding its interaction state.
type View struct {
	Container *Container
	Root      *markup.Node
	Format    Format
}

// Dispatch delivers an interaction event to the element with the given id.
func (v *View) Dispatch(id string, e markup.Event) bool {
	return markup.Dispatch(v.Root, id, e)
}

// Markup returns the root with the visible tooltip, if any, as the last child.
// For HTML charts with RenderWrapper set the result is wrapped in a
// full-size relative div.
func (v *View) Markup() *markup.Node {
	root := v.Root
	if tip := v.tooltipOverlay(); tip != nil {
		clone := *v.Root
		clone.Children = append(append([]*markup.Node(nil), v.Root.Children...), tip)
		root = &clone
	}
	if v.Format == FormatHTML && v.Container.RenderWrapper {
		root = markup.El("div", []markup.Attr{
			markup.Style{}.Set("width", "100%").Set("height", "100%").Set("position", "relative").Attr(),
		}, root)
	}
	return root
}

func (v *View) tooltipOverlay() *markup.Node {
	t := v.Container.tooltip
	if t == nil {
		return nil
	}
	style := markup.Style{}.
		Set("position", "absolute").
		Px("left", t.x).
		Px("top", t.y).
		Set("pointer-events", "none")
	if v.Format == FormatSVG {
		return markup.El("foreignObject", []markup.Attr{
			markup.A("x", t.x), markup.A("y", t.y),
			markup.A("width", 1), markup.A("height", 1),
			markup.A("style", "overflow:visible"),
		}, markup.El("div", []markup.Attr{markup.A("xmlns", "http://www.w3.org/1999/xhtml")}, t.content))
	}
	return markup.El("div", []markup.Attr{style.Attr()}, t.content)
}

// WriteTo writes the serialized markup.
func (v *View) WriteTo(w io.Writer) (int64, error) {
	b := v.Bytes()
	n, err := w.Write(b)
	return int64(n), err
}

// Bytes returns the serialized markup. SVG output is a standalone document.
func (v *View) Bytes() []byte {
	var buf bytes.Buffer
	if v.Format == FormatSVG {
		buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	}
	_ = v.Markup().Render(&buf)
	buf.WriteByte('\n')
	return buf.Bytes()
}
