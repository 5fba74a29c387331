package chart

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// ValueFormat formats numbers for labels and tooltips.
//
// Spec strings follow a subset of d3-format: [sign][$][,][.precision][~][type]
// where type is one of d, f, e, % or s, optionally preceded by an alignment
// such as ">-". For example ",.2f" renders 1234.5 as "1,234.50" and ".0%"
// renders 0.25 as "25%". Unparseable specs fall back to the plain number.
type ValueFormat struct {
	Spec string
	Func func(float64) string
}

// FormatSpec returns a format parsed from spec.
func FormatSpec(spec string) ValueFormat { return ValueFormat{Spec: spec} }

// FormatFunc returns a format calling fn.
func FormatFunc(fn func(float64) string) ValueFormat { return ValueFormat{Func: fn} }

// IsZero reports whether no format is configured.
func (f ValueFormat) IsZero() bool { return f.Spec == "" && f.Func == nil }

var formatPattern = regexp.MustCompile(`^(?:.?[<>=^])?([-+ (])?([$#])?0?(\d+)?(,)?(?:\.(\d+))?(~)?([dfe%s])?$`)

var groupingPrinter = message.NewPrinter(language.English)

// Format renders v.
func (f ValueFormat) Format(v float64) string {
	if f.Func != nil {
		return f.Func(v)
	}
	if f.Spec == "" {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	m := formatPattern.FindStringSubmatch(f.Spec)
	if m == nil {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	sign, symbol, group, precStr, trim, typ := m[1], m[2], m[4] != "", m[5], m[6] != "", m[7]

	prec := -1
	if precStr != "" {
		prec, _ = strconv.Atoi(precStr)
	}

	suffix := ""
	switch typ {
	case "d":
		v = math.Round(v)
		prec = 0
	case "%":
		v *= 100
		suffix = "%"
		if prec < 0 {
			prec = 0
		}
	case "f":
		if prec < 0 {
			prec = 6
		}
	}

	neg := v < 0
	abs := math.Abs(v)
	var body string
	switch {
	case typ == "e":
		body = strconv.FormatFloat(abs, 'e', prec, 64)
	case typ == "s" || (typ == "" && prec >= 0):
		if prec >= 0 {
			prec = max(prec, 1)
		}
		body = strconv.FormatFloat(abs, 'g', prec, 64)
	case group && prec >= 0:
		body = groupingPrinter.Sprint(number.Decimal(abs, number.MinFractionDigits(prec), number.MaxFractionDigits(prec)))
	case group:
		body = groupingPrinter.Sprint(number.Decimal(abs))
	default:
		body = strconv.FormatFloat(abs, 'f', prec, 64)
	}
	if trim && strings.Contains(body, ".") && typ != "e" {
		body = strings.TrimSuffix(strings.TrimRight(body, "0"), ".")
	}
	if symbol == "$" {
		body = "$" + body
	}
	switch {
	case neg && sign == "(":
		return "(" + body + suffix + ")"
	case neg:
		return "-" + body + suffix
	case sign == "+":
		return "+" + body + suffix
	case sign == " ":
		return " " + body + suffix
	}
	return body + suffix
}

// MarshalJSON encodes the spec string; function formats encode as null.
func (f ValueFormat) MarshalJSON() ([]byte, error) {
	if f.Spec == "" {
		return []byte("null"), nil
	}
	return json.Marshal(f.Spec)
}

// UnmarshalJSON decodes a spec string.
func (f *ValueFormat) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("value format must be a string: %w", err)
	}
	*f = FormatSpec(s)
	return nil
}
