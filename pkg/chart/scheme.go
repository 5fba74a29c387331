package chart

import (
	"encoding/json"
	"fmt"
)

// DefaultScheme is the palette used when no scheme is configured or the
// configured name is unknown.
const DefaultScheme = "nivo"

// Schemes lists the categorical palettes available by name.
var Schemes = map[string][]string{
	"nivo":       {"#e8c1a0", "#f47560", "#f1e15b", "#e8a838", "#61cdbb", "#97e3d5"},
	"category10": {"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd", "#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf"},
	"tableau10":  {"#4e79a7", "#f28e2c", "#e15759", "#76b7b2", "#59a14f", "#edc949", "#af7aa1", "#ff9da7", "#9c755f", "#bab0ab"},
	"accent":     {"#7fc97f", "#beaed4", "#fdc086", "#ffff99", "#386cb0", "#f0027f", "#bf5b17", "#666666"},
	"dark2":      {"#1b9e77", "#d95f02", "#7570b3", "#e7298a", "#66a61e", "#e6ab02", "#a6761d", "#666666"},
	"pastel1":    {"#fbb4ae", "#b3cde3", "#ccebc5", "#decbe4", "#fed9a6", "#ffffcc", "#e5d8bd", "#fddaec", "#f2f2f2"},
	"set2":       {"#66c2a5", "#fc8d62", "#8da0cb", "#e78ac3", "#a6d854", "#ffd92f", "#e5c494", "#b3b3b3"},
	"set3":       {"#8dd3c7", "#ffffb3", "#bebada", "#fb8072", "#80b1d3", "#fdb462", "#b3de69", "#fccde5", "#d9d9d9", "#bc80bd", "#ccebc5", "#ffed6f"},
}

// OrdinalColors configures how categorical colors are assigned.
// Exactly one of the fields is expected to be set; the zero value is unset.
//
// JSON accepts a scheme name ("set2"), a palette (["#fff", "#000"]),
// {"scheme": "set2"} or {"datum": "color"} to read colors from the data.
type OrdinalColors struct {
	Scheme     string
	Palette    []string
	DatumField string
	Func       func(Datum) string
}

// Scheme selects a named palette.
func Scheme(name string) OrdinalColors { return OrdinalColors{Scheme: name} }

// Palette uses the given colors in order.
func Palette(colors ...string) OrdinalColors { return OrdinalColors{Palette: colors} }

// FromField reads each datum's color from a field path.
func FromField(path string) OrdinalColors { return OrdinalColors{DatumField: path} }

// ColorFunc computes each datum's color.
func ColorFunc(fn func(Datum) string) OrdinalColors { return OrdinalColors{Func: fn} }

// IsZero reports whether no color source is configured.
func (o OrdinalColors) IsZero() bool {
	return o.Scheme == "" && len(o.Palette) == 0 && o.DatumField == "" && o.Func == nil
}

// Or returns o when set, otherwise def.
func (o OrdinalColors) Or(def OrdinalColors) OrdinalColors {
	if o.IsZero() {
		return def
	}
	return o
}

// Scale builds a fresh scale. Scales assign palette entries to ids in the
// order ids are first seen, cycling when the palette is exhausted.
func (o OrdinalColors) Scale() *OrdinalScale {
	s := &OrdinalScale{field: o.DatumField, fn: o.Func, index: make(map[string]int)}
	switch {
	case len(o.Palette) > 0:
		s.palette = o.Palette
	case o.Scheme != "":
		if p, ok := Schemes[o.Scheme]; ok {
			s.palette = p
		}
	}
	if s.palette == nil {
		s.palette = Schemes[DefaultScheme]
	}
	return s
}

// MarshalJSON encodes serializable variants.
func (o OrdinalColors) MarshalJSON() ([]byte, error) {
	switch {
	case len(o.Palette) > 0:
		return json.Marshal(o.Palette)
	case o.DatumField != "":
		return json.Marshal(map[string]string{"datum": o.DatumField})
	case o.Scheme != "":
		return json.Marshal(map[string]string{"scheme": o.Scheme})
	}
	return []byte("null"), nil
}

// UnmarshalJSON decodes the shapes documented on [OrdinalColors].
func (o *OrdinalColors) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*o = Scheme(name)
		return nil
	}
	var palette []string
	if err := json.Unmarshal(data, &palette); err == nil {
		*o = Palette(palette...)
		return nil
	}
	var obj struct {
		Scheme string `json:"scheme"`
		Datum  string `json:"datum"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("invalid colors config: %w", err)
	}
	*o = OrdinalColors{Scheme: obj.Scheme, DatumField: obj.Datum}
	return nil
}

// OrdinalScale maps ids to colors.
type OrdinalScale struct {
	palette []string
	index   map[string]int
	field   string
	fn      func(Datum) string
}

// Color returns the color for the datum identified by id.
func (s *OrdinalScale) Color(id string, d Datum) string {
	if s.fn != nil {
		return s.fn(d)
	}
	if s.field != "" {
		if v, ok := d.Lookup(s.field); ok {
			if c, ok := v.(string); ok {
				return c
			}
		}
		return ""
	}
	i, ok := s.index[id]
	if !ok {
		i = len(s.index)
		s.index[id] = i
	}
	return s.palette[i%len(s.palette)]
}
