package chart

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// TextStyle is the typography applied to a class of text.
type TextStyle struct {
	FontFamily string  `json:"fontFamily,omitempty" toml:"font_family"`
	FontSize   float64 `json:"fontSize,omitempty" toml:"font_size"`
	Fill       string  `json:"fill,omitempty" toml:"fill"`
}

// TooltipStyle styles the tooltip container.
type TooltipStyle struct {
	Background   string  `json:"background,omitempty" toml:"background"`
	Color        string  `json:"color,omitempty" toml:"color"`
	FontSize     float64 `json:"fontSize,omitempty" toml:"font_size"`
	BorderRadius float64 `json:"borderRadius,omitempty" toml:"border_radius"`
	BoxShadow    string  `json:"boxShadow,omitempty" toml:"box_shadow"`
	Padding      string  `json:"padding,omitempty" toml:"padding"`
}

// Theme holds the visual defaults shared by every chart.
type Theme struct {
	Background string       `json:"background,omitempty" toml:"background"`
	Text       TextStyle    `json:"text" toml:"text"`
	Labels     TextStyle    `json:"labels" toml:"labels"`
	Tooltip    TooltipStyle `json:"tooltip" toml:"tooltip"`
}

// DefaultTheme returns the built-in theme.
func DefaultTheme() Theme {
	return Theme{
		Background: "transparent",
		Text: TextStyle{
			FontFamily: "sans-serif",
			FontSize:   11,
			Fill:       "#333333",
		},
		Labels: TextStyle{
			FontFamily: "sans-serif",
			FontSize:   11,
			Fill:       "#333333",
		},
		Tooltip: TooltipStyle{
			Background:   "white",
			Color:        "inherit",
			FontSize:     12,
			BorderRadius: 2,
			BoxShadow:    "0 1px 2px rgba(0, 0, 0, 0.25)",
			Padding:      "5px 9px",
		},
	}
}

// Extend returns the default theme with every non-empty field of partial
// applied on top. A nil partial yields the default theme.
func Extend(partial *Theme) Theme {
	t := DefaultTheme()
	if partial == nil {
		return t
	}
	t.Background = orString(partial.Background, t.Background)
	t.Text = t.Text.extend(partial.Text)
	t.Labels = t.Labels.extend(partial.Labels)

	p := partial.Tooltip
	t.Tooltip.Background = orString(p.Background, t.Tooltip.Background)
	t.Tooltip.Color = orString(p.Color, t.Tooltip.Color)
	t.Tooltip.FontSize = orFloat(p.FontSize, t.Tooltip.FontSize)
	t.Tooltip.BorderRadius = orFloat(p.BorderRadius, t.Tooltip.BorderRadius)
	t.Tooltip.BoxShadow = orString(p.BoxShadow, t.Tooltip.BoxShadow)
	t.Tooltip.Padding = orString(p.Padding, t.Tooltip.Padding)
	return t
}

func (s TextStyle) extend(p TextStyle) TextStyle {
	s.FontFamily = orString(p.FontFamily, s.FontFamily)
	s.FontSize = orFloat(p.FontSize, s.FontSize)
	s.Fill = orString(p.Fill, s.Fill)
	return s
}

// Lookup resolves a theme path such as "labels.text.fill" or "text.fill".
// It is used by theme-based inherited colors.
func (t Theme) Lookup(path string) (string, bool) {
	switch path {
	case "background":
		return t.Background, true
	case "text.fill", "text.color":
		return t.Text.Fill, true
	case "labels.text.fill", "labels.fill":
		return t.Labels.Fill, true
	case "tooltip.color":
		return t.Tooltip.Color, true
	case "tooltip.background":
		return t.Tooltip.Background, true
	}
	return "", false
}

// LoadTheme reads a TOML theme file and extends the default theme with it.
func LoadTheme(path string) (Theme, error) {
	var partial Theme
	if _, err := toml.DecodeFile(path, &partial); err != nil {
		return Theme{}, fmt.Errorf("load theme %s: %w", path, err)
	}
	return Extend(&partial), nil
}

func orString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func orFloat(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}
