package chart

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/matzehuels/chartkit/pkg/markup"
)

// Def types understood by [Def.Render].
const (
	DefPatternDots    = "patternDots"
	DefPatternLines   = "patternLines"
	DefPatternSquares = "patternSquares"
	DefLinearGradient = "linearGradient"
)

// inheritColor marks a def color that is replaced by the bound element's color.
const inheritColor = "inherit"

// GradientStop is a single stop of a linear gradient.
type GradientStop struct {
	Offset  float64 `json:"offset" toml:"offset"`
	Color   string  `json:"color" toml:"color"`
	Opacity float64 `json:"opacity,omitempty" toml:"opacity"`
}

// Def is a reusable SVG paint server (pattern or gradient).
// Color fields set to "inherit" are replaced by the color of each element
// the def is bound to; [BindDefs] generates one variant per distinct color.
type Def struct {
	ID         string         `json:"id" toml:"id"`
	Type       string         `json:"type" toml:"type"`
	Color      string         `json:"color,omitempty" toml:"color"`
	Background string         `json:"background,omitempty" toml:"background"`
	Size       float64        `json:"size,omitempty" toml:"size"`
	Padding    float64        `json:"padding,omitempty" toml:"padding"`
	Spacing    float64        `json:"spacing,omitempty" toml:"spacing"`
	Rotation   float64        `json:"rotation,omitempty" toml:"rotation"`
	LineWidth  float64        `json:"lineWidth,omitempty" toml:"line_width"`
	Stagger    bool           `json:"stagger,omitempty" toml:"stagger"`
	Colors     []GradientStop `json:"colors,omitempty" toml:"colors"`
}

func (d Def) inherits() bool {
	if d.Color == inheritColor || d.Background == inheritColor {
		return true
	}
	for _, s := range d.Colors {
		if s.Color == inheritColor {
			return true
		}
	}
	return false
}

var unsafeIDChars = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// withColor returns the variant of d bound to color.
func (d Def) withColor(color string) Def {
	v := d
	v.ID = d.ID + "." + strings.Trim(unsafeIDChars.ReplaceAllString(color, "_"), "_")
	if v.Color == inheritColor {
		v.Color = color
	}
	if v.Background == inheritColor {
		v.Background = color
	}
	if len(d.Colors) > 0 {
		v.Colors = make([]GradientStop, len(d.Colors))
		for i, s := range d.Colors {
			if s.Color == inheritColor {
				s.Color = color
			}
			v.Colors[i] = s
		}
	}
	return v
}

// Render returns the SVG element for d. Unknown types render nothing.
func (d Def) Render() *markup.Node {
	switch d.Type {
	case DefPatternDots, DefPatternSquares:
		size := orFloat(d.Size, 4)
		pad := orFloat(d.Padding, 4)
		full := size + pad
		shape := markup.El("circle", []markup.Attr{
			markup.A("cx", pad/2+size/2), markup.A("cy", pad/2+size/2),
			markup.A("r", size/2), markup.A("fill", orString(d.Color, "#000000")),
		})
		if d.Type == DefPatternSquares {
			shape = markup.El("rect", []markup.Attr{
				markup.A("x", pad/2), markup.A("y", pad/2),
				markup.A("width", size), markup.A("height", size),
				markup.A("fill", orString(d.Color, "#000000")),
			})
		}
		return pattern(d.ID, full, full, 0, orString(d.Background, "#ffffff"), shape)
	case DefPatternLines:
		spacing := orFloat(d.Spacing, 5)
		line := markup.El("path", []markup.Attr{
			markup.A("d", fmt.Sprintf("M0 %s L%s %s", markup.Num(spacing/2), markup.Num(spacing), markup.Num(spacing/2))),
			markup.A("stroke", orString(d.Color, "#000000")),
			markup.A("stroke-width", orFloat(d.LineWidth, 2)),
		})
		return pattern(d.ID, spacing, spacing, d.Rotation, orString(d.Background, "#ffffff"), line)
	case DefLinearGradient:
		g := markup.El("linearGradient", []markup.Attr{
			markup.A("id", d.ID), markup.A("x1", 0), markup.A("x2", 0), markup.A("y1", 0), markup.A("y2", 1),
		})
		for _, s := range d.Colors {
			attrs := []markup.Attr{markup.A("offset", markup.Num(s.Offset)+"%"), markup.A("stop-color", s.Color)}
			if s.Opacity > 0 {
				attrs = append(attrs, markup.A("stop-opacity", s.Opacity))
			}
			g.Append(markup.El("stop", attrs))
		}
		return g
	}
	return nil
}

func pattern(id string, w, h, rotation float64, background string, shape *markup.Node) *markup.Node {
	attrs := []markup.Attr{
		markup.A("id", id),
		markup.A("width", w), markup.A("height", h),
		markup.A("patternUnits", "userSpaceOnUse"),
	}
	if rotation != 0 {
		attrs = append(attrs, markup.A("patternTransform", "rotate("+markup.Num(rotation)+")"))
	}
	return markup.El("pattern", attrs,
		markup.El("rect", []markup.Attr{markup.A("width", w), markup.A("height", h), markup.A("fill", background)}),
		shape,
	)
}

// Match selects the elements a [FillRule] applies to.
//
// JSON accepts "*" (every element) or {"id": "..."}.
type Match struct {
	All  bool
	ID   string
	Func func(Datum) bool
}

// MatchAll matches every element.
func MatchAll() Match { return Match{All: true} }

// MatchID matches elements whose datum id equals id.
func MatchID(id string) Match { return Match{ID: id} }

// MatchFunc matches elements for which fn returns true.
func MatchFunc(fn func(Datum) bool) Match { return Match{Func: fn} }

func (m Match) matches(d Datum) bool {
	switch {
	case m.All:
		return true
	case m.Func != nil:
		return m.Func(d)
	case m.ID != "":
		return Field("id").String(d) == m.ID
	}
	return false
}

// UnmarshalJSON decodes "*" or an {"id": ...} object.
func (m *Match) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "*" {
			*m = MatchAll()
		} else {
			*m = MatchID(s)
		}
		return nil
	}
	var obj struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("invalid fill match: %w", err)
	}
	*m = MatchID(obj.ID)
	return nil
}

// MarshalJSON encodes serializable matchers.
func (m Match) MarshalJSON() ([]byte, error) {
	switch {
	case m.All:
		return json.Marshal("*")
	case m.ID != "":
		return json.Marshal(map[string]string{"id": m.ID})
	}
	return []byte("null"), nil
}

// FillRule assigns the def ID to every element selected by Match.
type FillRule struct {
	Match Match  `json:"match"`
	ID    string `json:"id"`
}

// BindKeys tells [BindDefs] how to read and update bound elements.
type BindKeys[T any] struct {
	Datum   func(T) Datum
	Color   func(T) string
	SetFill func(T, string)
}

// BindDefs applies fill rules to items and returns the defs to render.
// The first matching rule wins. Rules referencing unknown def ids are
// ignored. Defs with inherited colors produce one variant per element color.
func BindDefs[T any](defs []Def, items []T, rules []FillRule, keys BindKeys[T]) []Def {
	if len(defs) == 0 {
		return nil
	}
	byID := make(map[string]Def, len(defs))
	var bound []Def
	for _, d := range defs {
		byID[d.ID] = d
		if !d.inherits() {
			bound = append(bound, d)
		}
	}
	generated := make(map[string]bool)

	for _, item := range items {
		datum := keys.Datum(item)
		for _, rule := range rules {
			if !rule.Match.matches(datum) {
				continue
			}
			def, ok := byID[rule.ID]
			if !ok {
				break
			}
			if def.inherits() {
				variant := def.withColor(keys.Color(item))
				if !generated[variant.ID] {
					generated[variant.ID] = true
					bound = append(bound, variant)
				}
				def = variant
			}
			keys.SetFill(item, "url(#"+def.ID+")")
			break
		}
	}
	return bound
}

// RenderDefs returns a <defs> element, or nil when there is nothing to render.
func RenderDefs(defs []Def) *markup.Node {
	if len(defs) == 0 {
		return nil
	}
	n := markup.El("defs", nil)
	for _, d := range defs {
		n.Append(d.Render())
	}
	return n
}
