package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/matzehuels/chartkit/pkg/errors"
	chartio "github.com/matzehuels/chartkit/pkg/io"
	"github.com/matzehuels/chartkit/pkg/observability"
	"github.com/matzehuels/chartkit/pkg/render"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, c Chart, opts Options) (map[string][]byte, error) {
	opts.SetDefaults()
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if _, done := artifacts[format]; done {
			continue
		}
		data, err := RenderFormat(ctx, c, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFormat produces a single artifact.
func RenderFormat(ctx context.Context, c Chart, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG, FormatHTML:
		if data, ok := c.Markup(format); ok {
			return data, nil
		}
	case FormatJSON:
		data, err := chartio.MarshalJSON(c.Layout())
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "serialize layout")
		}
		return data, nil
	case FormatPNG:
		return convert(ctx, format, func() ([]byte, error) { return renderPNG(ctx, c, opts) })
	case FormatPDF:
		return convert(ctx, format, func() ([]byte, error) {
			svg, _ := c.Markup(FormatSVG)
			return render.ToPDF(ctx, svg)
		})
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported %s format: %s", c.Name(), format)
}

// renderPNG converts the SVG with rsvg-convert when available and falls back
// to the native rasterizer otherwise.
func renderPNG(ctx context.Context, c Chart, opts Options) ([]byte, error) {
	if opts.NativeRaster || !render.Available() {
		opts.Logger.Debug("rasterizing natively", "chart", c.Name(), "scale", opts.Scale)
		return c.NativePNG(opts.Scale)
	}
	svg, _ := c.Markup(FormatSVG)
	return render.ToPNG(ctx, svg, opts.Scale)
}

func convert(ctx context.Context, format string, fn func() ([]byte, error)) ([]byte, error) {
	start := time.Now()
	data, err := fn()
	observability.Pipeline().OnConvert(ctx, format, time.Since(start), err)
	return data, err
}

func formatScale(scale float64) string {
	return strconv.FormatFloat(scale, 'f', -1, 64)
}
