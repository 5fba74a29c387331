package markup

import "strings"

// Style builds an inline CSS declaration list with stable property order.
type Style struct {
	props []Attr
}

// Set appends a property. Empty values are skipped.
func (s Style) Set(prop string, value any) Style {
	v := formatValue(value)
	if v == "" {
		return s
	}
	s.props = append(s.props, Attr{Name: prop, Value: v})
	return s
}

// Px appends a pixel-valued property.
func (s Style) Px(prop string, value float64) Style {
	return s.Set(prop, Num(value)+"px")
}

// String renders the declarations as "prop:value;prop:value".
func (s Style) String() string {
	parts := make([]string, len(s.props))
	for i, p := range s.props {
		parts[i] = p.Name + ":" + p.Value
	}
	return strings.Join(parts, ";")
}

// Attr returns the style as a "style" attribute.
func (s Style) Attr() Attr {
	return Attr{Name: "style", Value: s.String()}
}
