// Package markup provides the small element tree that chart renderers build.
//
// # Overview
//
// Charts never write SVG or HTML strings directly. Every renderer returns a
// [*Node] tree which is serialized by [Node.Render]. Keeping an in-memory tree
// lets a render pass carry event handlers next to the elements they belong to,
// so interactive behavior (hover, click, tooltips) can be exercised in-process
// through [Dispatch] without a browser.
//
// # Nodes
//
// A node is one of three kinds:
//
//   - Element: a tag with ordered attributes and children ([El])
//   - Text: escaped character data ([Text])
//   - Fragment: an untagged group whose children are rendered in place ([Fragment])
//
// Fragments carry a [Node.Key] which is used by layer composition to identify
// caller-supplied layers by position.
//
// # Events
//
// Elements may carry [Handlers]. [Dispatch] finds the element with a matching
// id attribute and invokes the handler registered for the event type. Handlers
// run synchronously on the calling goroutine.
package markup
