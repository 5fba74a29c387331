package chart

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/matzehuels/chartkit/pkg/markup"
)

// Layer is one entry of a chart's layer list: either a built-in layer
// referenced by name or a custom render function.
type Layer struct {
	name   string
	render func() *markup.Node
}

// Builtin references a layer the chart knows how to render.
func Builtin(name string) Layer { return Layer{name: name} }

// Custom wraps a caller render function.
func Custom(fn func() *markup.Node) Layer { return Layer{render: fn} }

// Builtins is a convenience for building a layer list from names.
func Builtins(names ...string) []Layer {
	layers := make([]Layer, len(names))
	for i, n := range names {
		layers[i] = Builtin(n)
	}
	return layers
}

// Name returns the built-in name, or "" for custom layers.
func (l Layer) Name() string { return l.name }

// IsCustom reports whether l is a caller render function.
func (l Layer) IsCustom() bool { return l.render != nil }

// String implements fmt.Stringer.
func (l Layer) String() string {
	if l.IsCustom() {
		return "<custom>"
	}
	return l.name
}

// MarshalJSON encodes built-in layers by name; custom layers encode as null.
func (l Layer) MarshalJSON() ([]byte, error) {
	if l.IsCustom() {
		return []byte("null"), nil
	}
	return json.Marshal(l.name)
}

// UnmarshalJSON decodes a built-in layer name.
func (l *Layer) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("layer must be a name: %w", err)
	}
	*l = Builtin(name)
	return nil
}

// CustomLayerKey is the fragment key given to the custom layer at index i.
// Custom layers are identified by position: reordering the layer list
// replaces the layers at the affected positions.
func CustomLayerKey(i int) string { return "layer-" + strconv.Itoa(i) }

// SelectLayers returns the renderable units for layers, in order.
//
// A built-in name present in builtins with a non-nil node emits that node.
// A nil entry marks a disabled layer and emits nothing, as do names missing
// from builtins. A custom layer is invoked with no arguments and its result
// is wrapped in a fragment keyed by [CustomLayerKey]. Output order equals
// input order, which is also paint order.
func SelectLayers(layers []Layer, builtins map[string]*markup.Node) []*markup.Node {
	out := make([]*markup.Node, 0, len(layers))
	for i, l := range layers {
		if l.IsCustom() {
			out = append(out, markup.Fragment(CustomLayerKey(i), l.render()))
			continue
		}
		n, ok := builtins[l.name]
		if !ok || n == nil {
			continue
		}
		if n.Key == "" {
			n.Key = l.name
		}
		out = append(out, n)
	}
	return out
}
