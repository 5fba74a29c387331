// Package pipeline provides the render pipeline shared by the CLI and the API.
//
// This package implements the complete decode → render → convert pipeline so
// every entry point validates, caches and converts charts the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Decode: Parse props, data and theme (JSON) into chart props
//  2. Render: Produce SVG or HTML markup, or the computed layout as JSON
//  3. Convert: Turn SVG into PNG or PDF (rsvg-convert, or the native
//     rasterizer for PNG when librsvg is missing)
//
// Rendered artifacts are cached per chart type, props, data, theme and format.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Chart:   "waffle",
//	    Data:    json.RawMessage(`[{"id": "cats", "value": 12}]`),
//	    Formats: []string{"html", "png"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	html := result.Artifacts["html"]
package pipeline

import (
	"bytes"
	"encoding/json"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartkit/pkg/cache"
	"github.com/matzehuels/chartkit/pkg/errors"
	chartio "github.com/matzehuels/chartkit/pkg/io"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultScale is the PNG resolution multiplier.
	DefaultScale = 2.0

	// MaxScale bounds PNG output size.
	MaxScale = 8.0

	// MaxDataSize is the largest accepted data payload in bytes.
	MaxDataSize = 8 << 20

	// MaxCells bounds the waffle grid (rows x columns).
	MaxCells = 1 << 16

	// MaxDimension bounds the chart width and height in pixels.
	MaxDimension = 10000.0
)

// Format constants for output formats.
const (
	FormatSVG  = errors.FormatSVG
	FormatHTML = errors.FormatHTML
	FormatPNG  = errors.FormatPNG
	FormatPDF  = errors.FormatPDF
	FormatJSON = errors.FormatJSON
)

// DefaultFormat returns the primary output format of a chart: HTML for the
// waffle, SVG otherwise.
func DefaultFormat(chart string) string {
	if chart == errors.ChartWaffle {
		return FormatHTML
	}
	return FormatSVG
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the render pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	Chart string          `json:"chart"`
	Props json.RawMessage `json:"props,omitempty"`
	Data  json.RawMessage `json:"data"`
	// Theme overrides the theme set in Props, if any.
	Theme json.RawMessage `json:"theme,omitempty"`
	// FallbackTheme applies when neither Theme nor Props set a theme.
	FallbackTheme json.RawMessage `json:"fallback_theme,omitempty"`

	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"`
	// NativeRaster draws PNGs without rsvg-convert even when it is installed.
	NativeRaster bool `json:"native_raster,omitempty"`
	Refresh      bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// OptionsFromDocument builds options from an imported chart document.
// A non-empty chart argument overrides the document's chart type.
func OptionsFromDocument(doc *chartio.Document, chart string, formats []string) Options {
	if chart == "" {
		chart = doc.Chart
	}
	return Options{
		Chart:   chart,
		Props:   doc.Props,
		Data:    doc.Data,
		Theme:   doc.Theme,
		Formats: formats,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which formats came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	// Items counts sunburst nodes or waffle datums.
	Items      int
	DecodeTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool     // Whether all artifacts came from cache
	Hits      []string // Formats served from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := errors.ValidateChart(o.Chart); err != nil {
		return err
	}
	if len(bytes.TrimSpace(o.Data)) == 0 {
		return errors.New(errors.ErrCodeInvalidData, "data is required")
	}
	if len(o.Data) > MaxDataSize {
		return errors.New(errors.ErrCodeInvalidData, "data exceeds %d bytes", MaxDataSize)
	}
	o.SetDefaults()
	if err := errors.ValidateFormats(o.Chart, o.Formats); err != nil {
		return err
	}
	if o.Scale > MaxScale {
		return errors.New(errors.ErrCodeInvalidInput, "scale %.2f exceeds maximum %.0f", o.Scale, MaxScale)
	}
	o.validated = true
	return nil
}

// SetDefaults fills in formats, scale and logger.
func (o *Options) SetDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat(o.Chart)}
	}
	o.Formats = uniqueFormats(o.Formats)
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
// Props, data and theme are canonicalized so formatting differences in the
// input do not produce distinct keys.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Props:  canonicalJSON(o.Props),
		Data:   canonicalJSON(o.Data),
		Theme:  canonicalJSON(o.effectiveTheme()),
		Format: format,
	}
	if format == FormatPNG {
		opts.Format = format + "@" + formatScale(o.Scale)
		if o.NativeRaster {
			opts.Format += ":native"
		}
	}
	return opts
}

func (o *Options) effectiveTheme() json.RawMessage {
	if len(o.Theme) > 0 {
		return o.Theme
	}
	return o.FallbackTheme
}

// canonicalJSON re-encodes raw with sorted keys and no whitespace.
// Invalid JSON is returned unchanged.
func canonicalJSON(raw json.RawMessage) []byte {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return raw
	}
	out, err := json.Marshal(v)
	if err != nil {
		return raw
	}
	return out
}

func uniqueFormats(formats []string) []string {
	seen := make(map[string]bool, len(formats))
	out := formats[:0:0]
	for _, f := range formats {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}
