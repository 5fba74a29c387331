package chart

import "github.com/matzehuels/chartkit/pkg/markup"

// Handlers are the caller callbacks for an element of type T.
// Each family is independent; nil callbacks are no-ops.
type Handlers[T any] struct {
	OnClick      func(T, markup.Event)
	OnMouseEnter func(T, markup.Event)
	OnMouseMove  func(T, markup.Event)
	OnMouseLeave func(T, markup.Event)
}

// BindInteractions wires hover, tooltip and click behavior onto n.
//
// Entering shows the tooltip and calls OnMouseEnter, moving repositions the
// tooltip and calls OnMouseMove, leaving hides it and calls OnMouseLeave, and
// clicking calls OnClick. Nothing is attached when the container is not
// interactive. tooltip is evaluated at event time.
func BindInteractions[T any](c *Container, n *markup.Node, elem T, h Handlers[T], tooltip func() *markup.Node) {
	if !c.IsInteractive {
		return
	}
	n.On(markup.MouseEnter, func(e markup.Event) {
		c.ShowTooltip(tooltip(), e)
		if h.OnMouseEnter != nil {
			h.OnMouseEnter(elem, e)
		}
	})
	n.On(markup.MouseMove, func(e markup.Event) {
		c.ShowTooltip(tooltip(), e)
		if h.OnMouseMove != nil {
			h.OnMouseMove(elem, e)
		}
	})
	n.On(markup.MouseLeave, func(e markup.Event) {
		c.HideTooltip()
		if h.OnMouseLeave != nil {
			h.OnMouseLeave(elem, e)
		}
	})
	n.On(markup.Click, func(e markup.Event) {
		if h.OnClick != nil {
			h.OnClick(elem, e)
		}
	})
}
