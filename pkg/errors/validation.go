package errors

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// Chart types.
const (
	ChartSunburst = "sunburst"
	ChartWaffle   = "waffle"
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatHTML = "html"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// chartFormats lists the formats each chart type can produce.
var chartFormats = map[string][]string{
	ChartSunburst: {FormatSVG, FormatPNG, FormatPDF, FormatJSON},
	ChartWaffle:   {FormatHTML, FormatSVG, FormatPNG, FormatPDF, FormatJSON},
}

// Charts returns the supported chart types.
func Charts() []string { return []string{ChartSunburst, ChartWaffle} }

// Formats returns the formats chart can produce, or nil for unknown charts.
func Formats(chart string) []string { return chartFormats[chart] }

// ValidateChart checks that name is a supported chart type.
func ValidateChart(name string) error {
	if name == "" {
		return New(ErrCodeInvalidChart, "chart type cannot be empty")
	}
	if _, ok := chartFormats[name]; !ok {
		return New(ErrCodeInvalidChart, "unknown chart type %q (want one of %s)", name, strings.Join(Charts(), ", "))
	}
	return nil
}

// ValidateFormats checks that every format is supported by chart.
// At least one format is required.
func ValidateFormats(chart string, formats []string) error {
	if err := ValidateChart(chart); err != nil {
		return err
	}
	if len(formats) == 0 {
		return New(ErrCodeInvalidFormat, "at least one output format is required")
	}
	supported := chartFormats[chart]
	for _, f := range formats {
		ok := false
		for _, s := range supported {
			if f == s {
				ok = true
				break
			}
		}
		if !ok {
			return New(ErrCodeInvalidFormat, "%s charts cannot be rendered as %q (supported: %s)",
				chart, f, strings.Join(supported, ", "))
		}
	}
	return nil
}

// ValidateChartID checks that id is a saved chart identifier (a UUID).
func ValidateChartID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "chart id cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid chart id %q", id)
	}
	return nil
}

// ValidateName validates a saved chart name.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - Maximum length of 256 characters
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "chart name cannot be empty")
	}
	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "chart name too long (max 256 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "chart name contains invalid control characters")
		}
	}
	return nil
}

// ValidatePath validates a local file path given on the command line or
// in the config file.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// ValidateURL validates a backend URL (redis, mongodb) for safety.
// It ensures the URL has one of the allowed schemes.
func ValidateURL(rawURL string, schemes ...string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	for _, s := range schemes {
		if strings.HasPrefix(rawURL, s+"://") {
			return nil
		}
	}
	return New(ErrCodeInvalidInput, "URL must use one of the schemes: %s", strings.Join(schemes, ", "))
}
