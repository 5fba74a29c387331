package chart

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Datum is a caller-owned raw data record, typically decoded from JSON.
type Datum map[string]any

// Lookup returns the value at a dotted path such as "meta.color".
func (d Datum) Lookup(path string) (any, bool) {
	if d == nil {
		return nil, false
	}
	var cur any = map[string]any(d)
	for _, part := range strings.Split(path, ".") {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		if cur, ok = m[part]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// Children returns the nested datums stored under key.
// Non-object entries are skipped.
func (d Datum) Children(key string) []Datum {
	raw, ok := d[key]
	if !ok {
		return nil
	}
	var out []Datum
	switch list := raw.(type) {
	case []Datum:
		return list
	case []map[string]any:
		for _, m := range list {
			out = append(out, Datum(m))
		}
	case []any:
		for _, item := range list {
			if m, ok := asMap(item); ok {
				out = append(out, Datum(m))
			}
		}
	}
	return out
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Datum:
		return m, true
	}
	return nil, false
}

// Accessor reads a value from a datum, either by field path or by function.
// The zero Accessor is unset and resolves to the chart default.
//
// JSON and TOML accept a field path string: "value" or "meta.size".
type Accessor struct {
	Field string
	Func  func(Datum) any
}

// Field returns an accessor reading the dotted path name.
func Field(name string) Accessor { return Accessor{Field: name} }

// Func returns an accessor calling fn.
func Func(fn func(Datum) any) Accessor { return Accessor{Func: fn} }

// IsZero reports whether the accessor is unset.
func (a Accessor) IsZero() bool { return a.Field == "" && a.Func == nil }

// Get returns the raw value, or nil when the field is absent.
func (a Accessor) Get(d Datum) any {
	if a.Func != nil {
		return a.Func(d)
	}
	v, _ := d.Lookup(a.Field)
	return v
}

// String returns the value formatted as text.
func (a Accessor) String(d Datum) string {
	switch v := a.Get(d).(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// Float returns the value as a number. Missing or non-numeric values are 0.
func (a Accessor) Float(d Datum) float64 {
	return toFloat(a.Get(d))
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, _ := n.Float64()
		return f
	case string:
		f, _ := strconv.ParseFloat(n, 64)
		return f
	}
	return 0
}

// Or returns a when set, otherwise def.
func (a Accessor) Or(def Accessor) Accessor {
	if a.IsZero() {
		return def
	}
	return a
}

// MarshalJSON encodes field accessors as their path. Function accessors
// cannot be serialized and encode as null.
func (a Accessor) MarshalJSON() ([]byte, error) {
	if a.Func != nil || a.Field == "" {
		return []byte("null"), nil
	}
	return json.Marshal(a.Field)
}

// UnmarshalJSON decodes a field path string.
func (a *Accessor) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("accessor must be a field name: %w", err)
	}
	*a = Field(s)
	return nil
}

// Ptr returns a pointer to v. It is used to set optional numeric and boolean props.
func Ptr[T any](v T) *T { return &v }

// Deref returns *p, or def when p is nil.
func Deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
