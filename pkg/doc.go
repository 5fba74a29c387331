// Package pkg provides the core libraries for Chartkit chart rendering.
//
// # Overview
//
// Chartkit turns hierarchical data into sunburst charts (concentric rings of
// arcs, one ring per tree level) and proportions into waffle charts (a grid of
// cells filled in order by each datum's share). The pkg directory is
// organized into four main areas:
//
//  1. [sunburst], [waffle] - Chart components (props, layout, markup)
//  2. [chart], [markup] - Shared chart infrastructure and the element tree
//  3. [pipeline] - Orchestration (decode → render → convert)
//  4. [cache], [store], [server], [config] - Infrastructure
//
// # Architecture
//
// The typical data flow through Chartkit:
//
//	Chart document (JSON, TOML, YAML)
//	         ↓
//	    [io] package (decode into chart, props, data, theme)
//	         ↓
//	    [sunburst] / [waffle] packages (resolve props + compute layout)
//	         ↓
//	    [markup] package (SVG/HTML element tree)
//	         ↓
//	    [render] package (PNG/PDF conversion)
//	         ↓
//	    SVG/HTML/PNG/PDF/JSON output
//
// # Quick Start
//
// Render a sunburst to SVG:
//
//	import (
//	    "os"
//	    "github.com/matzehuels/chartkit/pkg/chart"
//	    "github.com/matzehuels/chartkit/pkg/sunburst"
//	)
//
//	view := sunburst.Render(sunburst.Props{
//	    Data: chart.Datum{
//	        "id": "budget",
//	        "children": []any{
//	            map[string]any{"id": "rent", "value": 1200.0},
//	            map[string]any{"id": "food", "value": 400.0},
//	        },
//	    },
//	    Width:  chart.Ptr(400.0),
//	    Height: chart.Ptr(400.0),
//	})
//	view.WriteTo(os.Stdout)
//
// # Main Packages
//
// ## Chart Components
//
// [sunburst] - Partition layout of a tree into arcs. Node values are the sum
// of their leaves; colors come from a scheme at depth 1 and are inherited or
// modified below. Supports slice labels, tooltips and custom layers.
//
// [waffle] - Grid of cells filled in datum order, with fill direction,
// padding, an optional total and hidden IDs. Renders as SVG or HTML.
//
// [chart] - Shared infrastructure: dimensions and margins, themes, color
// schemes and inherited colors, value formats, tooltips, interaction
// handlers and the container that hosts a chart's tooltip state.
//
// [markup] - A minimal element tree with attributes, inline styles and event
// handlers, serialized to SVG or HTML.
//
// ## Orchestration
//
// [pipeline] - Complete render pipeline (decode → render → convert) used by
// the CLI and the API. Ensures consistent behavior across all entry points.
// Artifacts are cached by a hash of the canonicalized inputs.
//
// [render] - Format conversion (SVG to PDF/PNG via rsvg-convert) and native
// PNG rasterization.
//
// [io] - Import of chart documents and props files in JSON, TOML and YAML.
//
// ## Infrastructure
//
// [cache] - Artifact cache with file, Redis and null backends.
//
// [store] - Saved charts with memory, file and MongoDB backends.
//
// [server] - HTTP API for rendering and saved chart management.
//
// [config] - TOML configuration file and environment overrides.
//
// [errors] - Coded errors and input validation shared by CLI and API.
//
// [observability] - Hooks for pipeline, cache and server events.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/sunburst/...           # Specific package
//	go test -run Example                 # Examples only
//	go test -tags integration ./pkg/...  # Include Redis and MongoDB tests
//
// [sunburst]: https://pkg.go.dev/github.com/matzehuels/chartkit/pkg/sunburst
// [waffle]: https://pkg.go.dev/github.com/matzehuels/chartkit/pkg/waffle
// [chart]: https://pkg.go.dev/github.com/matzehuels/chartkit/pkg/chart
// [markup]: https://pkg.go.dev/github.com/matzehuels/chartkit/pkg/markup
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/chartkit/pkg/pipeline
// [render]: https://pkg.go.dev/github.com/matzehuels/chartkit/pkg/render
// [io]: https://pkg.go.dev/github.com/matzehuels/chartkit/pkg/io
// [cache]: https://pkg.go.dev/github.com/matzehuels/chartkit/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/chartkit/pkg/store
// [server]: https://pkg.go.dev/github.com/matzehuels/chartkit/pkg/server
// [config]: https://pkg.go.dev/github.com/matzehuels/chartkit/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/chartkit/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/chartkit/pkg/observability
package pkg
