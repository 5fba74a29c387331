// Package render converts rendered charts to raster and print formats.
//
// # Overview
//
// Charts render to SVG (and the waffle also to HTML) in their own packages.
// This package turns that output into the formats the pipeline and the API
// serve on top:
//
//   - [ToPDF] and [ToPNG] convert any SVG document using the external
//     rsvg-convert tool (from librsvg)
//   - [SunburstPNG] and [WafflePNG] draw a chart natively from its computed
//     geometry, for hosts without librsvg
//
// # Format Conversion
//
//	svg := sunburst.Render(props).Bytes()
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// Use [Available] to check for rsvg-convert before relying on it. When it is
// missing the conversion functions return an UNSUPPORTED error.
//
// # Native Rasterization
//
// The native rasterizer draws arcs, cells, borders and slice labels with a
// bitmap font. It ignores patterns and gradients bound through defs (the
// node's base color is used instead), corner rounding and custom layers.
// Prefer rsvg-convert whenever exact parity with the SVG is required.
package render
