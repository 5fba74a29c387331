package chart

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// PathGetter exposes element properties to inherited colors.
// Computed nodes and cells implement it so {from: "color"} style
// configurations can read their own or their parent's color.
type PathGetter interface {
	Get(path string) (any, bool)
}

// Modifier adjusts an inherited color.
type Modifier struct {
	Kind   string  // "darker", "brighter" or "opacity"
	Amount float64 // strength, or alpha for "opacity"
}

// Darker darkens by k steps (each step multiplies RGB channels by 0.7).
func Darker(k float64) Modifier { return Modifier{Kind: "darker", Amount: k} }

// Brighter brightens by k steps.
func Brighter(k float64) Modifier { return Modifier{Kind: "brighter", Amount: k} }

// Opacity sets the alpha channel.
func Opacity(a float64) Modifier { return Modifier{Kind: "opacity", Amount: a} }

type colorKind int

const (
	colorUnset colorKind = iota
	colorLiteral
	colorFunc
	colorFrom
	colorTheme
)

// InheritedColor is a color configuration resolved per element of type T.
//
// It is one of:
//
//   - a literal color ("white", "#ff0000")
//   - a function of the element
//   - a property of the element ({"from": "color", "modifiers": [["darker", 1]]})
//   - a theme value ({"theme": "labels.text.fill"})
//
// Whatever the variant, resolution goes through [InheritedColor.Func], so a
// literal behaves exactly like a function returning a constant.
// The zero value is unset.
type InheritedColor[T any] struct {
	kind      colorKind
	literal   string
	fn        func(T) string
	path      string
	modifiers []Modifier
}

// Literal returns a fixed color.
func Literal[T any](color string) InheritedColor[T] {
	return InheritedColor[T]{kind: colorLiteral, literal: color}
}

// FromDatum returns a color computed from the element.
func FromDatum[T any](fn func(T) string) InheritedColor[T] {
	return InheritedColor[T]{kind: colorFunc, fn: fn}
}

// Inherit returns the color stored at path on the element, with modifiers applied.
func Inherit[T any](path string, modifiers ...Modifier) InheritedColor[T] {
	return InheritedColor[T]{kind: colorFrom, path: path, modifiers: modifiers}
}

// FromTheme returns a theme color, for example "labels.text.fill".
func FromTheme[T any](path string) InheritedColor[T] {
	return InheritedColor[T]{kind: colorTheme, path: path}
}

// IsZero reports whether the color is unset.
func (c InheritedColor[T]) IsZero() bool { return c.kind == colorUnset }

// Or returns c when set, otherwise def.
func (c InheritedColor[T]) Or(def InheritedColor[T]) InheritedColor[T] {
	if c.IsZero() {
		return def
	}
	return c
}

// Func returns the evaluation function for c under theme.
func (c InheritedColor[T]) Func(theme Theme) func(T) string {
	switch c.kind {
	case colorLiteral:
		lit := c.literal
		return func(T) string { return lit }
	case colorFunc:
		return c.fn
	case colorTheme:
		v, _ := theme.Lookup(c.path)
		return func(T) string { return v }
	case colorFrom:
		path, mods := c.path, c.modifiers
		return func(elem T) string {
			g, ok := any(elem).(PathGetter)
			if !ok {
				return ""
			}
			v, ok := g.Get(path)
			if !ok {
				return ""
			}
			s, _ := v.(string)
			return ApplyModifiers(s, mods...)
		}
	}
	return func(T) string { return "" }
}

// Resolve evaluates c for a single element.
func (c InheritedColor[T]) Resolve(elem T, theme Theme) string {
	return c.Func(theme)(elem)
}

// MarshalJSON encodes every variant except functions.
func (c InheritedColor[T]) MarshalJSON() ([]byte, error) {
	switch c.kind {
	case colorLiteral:
		return json.Marshal(c.literal)
	case colorTheme:
		return json.Marshal(map[string]string{"theme": c.path})
	case colorFrom:
		mods := make([][]any, len(c.modifiers))
		for i, m := range c.modifiers {
			mods[i] = []any{m.Kind, m.Amount}
		}
		return json.Marshal(map[string]any{"from": c.path, "modifiers": mods})
	}
	return []byte("null"), nil
}

// UnmarshalJSON accepts a color string, "inherit", or an object with
// either a "from" path (plus optional "modifiers") or a "theme" path.
func (c *InheritedColor[T]) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "inherit" {
			*c = Inherit[T]("color")
		} else {
			*c = Literal[T](s)
		}
		return nil
	}

	var obj struct {
		From      string            `json:"from"`
		Theme     string            `json:"theme"`
		Modifiers []json.RawMessage `json:"modifiers"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("invalid color config: %w", err)
	}
	if obj.Theme != "" {
		*c = FromTheme[T](obj.Theme)
		return nil
	}
	var mods []Modifier
	for _, raw := range obj.Modifiers {
		var pair []any
		if err := json.Unmarshal(raw, &pair); err != nil || len(pair) != 2 {
			continue
		}
		kind, _ := pair[0].(string)
		amount := toFloat(pair[1])
		mods = append(mods, Modifier{Kind: kind, Amount: amount})
	}
	*c = Inherit[T](orString(obj.From, "color"), mods...)
	return nil
}

// ApplyModifiers applies modifiers to color. Unparseable colors and unknown
// modifiers are returned unchanged.
func ApplyModifiers(color string, mods ...Modifier) string {
	if len(mods) == 0 {
		return color
	}
	c, alpha, ok := ParseColor(color)
	if !ok {
		return color
	}
	for _, m := range mods {
		switch m.Kind {
		case "darker":
			c = scale(c, math.Pow(0.7, m.Amount))
		case "brighter":
			c = scale(c, math.Pow(1/0.7, m.Amount))
		case "opacity":
			alpha = m.Amount
		}
	}
	c = c.Clamped()
	if alpha < 1 {
		r, g, b := c.RGB255()
		return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, strconv.FormatFloat(alpha, 'f', -1, 64))
	}
	return c.Hex()
}

func scale(c colorful.Color, f float64) colorful.Color {
	return colorful.Color{R: c.R * f, G: c.G * f, B: c.B * f}
}

var rgbPattern = regexp.MustCompile(`^rgba?\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*(?:,\s*([\d.]+)\s*)?\)$`)

var namedColors = map[string]string{
	"white":  "#ffffff",
	"black":  "#000000",
	"red":    "#ff0000",
	"green":  "#008000",
	"blue":   "#0000ff",
	"gray":   "#808080",
	"grey":   "#808080",
	"orange": "#ffa500",
	"yellow": "#ffff00",
	"purple": "#800080",
}

// ParseColor parses hex (#rgb, #rrggbb), rgb()/rgba() and a few named colors.
func ParseColor(s string) (colorful.Color, float64, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	if hex, ok := namedColors[s]; ok {
		s = hex
	}
	if m := rgbPattern.FindStringSubmatch(s); m != nil {
		r, _ := strconv.Atoi(m[1])
		g, _ := strconv.Atoi(m[2])
		b, _ := strconv.Atoi(m[3])
		alpha := 1.0
		if m[4] != "" {
			alpha, _ = strconv.ParseFloat(m[4], 64)
		}
		return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}, alpha, true
	}
	if len(s) == 4 && s[0] == '#' {
		s = "#" + strings.Repeat(s[1:2], 2) + strings.Repeat(s[2:3], 2) + strings.Repeat(s[3:4], 2)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, 0, false
	}
	return c, 1, true
}
