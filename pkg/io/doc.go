// Package io provides import and export of chart documents.
//
// # Overview
//
// A chart document bundles everything needed to render a chart: the chart
// type, its props, its data and an optional theme override. Documents can be
// written in JSON, TOML or YAML; every section is normalized to JSON so the
// chart packages decode props with their own JSON rules.
//
// # Document Format
//
//	{
//	  "chart": "sunburst",
//	  "props": {"cornerRadius": 2, "enableSliceLabels": true},
//	  "data": {"id": "root", "children": [{"id": "a", "value": 3}]},
//	  "theme": {"background": "white"}
//	}
//
// The same document in TOML:
//
//	chart = "waffle"
//
//	[props]
//	rows = 5
//
//	[[data]]
//	id = "cats"
//	value = 12
//
// A file without a "data" key is treated as bare data: a sunburst tree or a
// waffle datum list. TOML documents must always use the "data" key because
// TOML has no top-level arrays.
//
// # Import
//
// Use [ImportDocument] to read a file (the format follows the extension) or
// [ReadDocument] to read from any io.Reader. [ImportProps] reads a standalone
// props file, the form the CLI's --props flag accepts.
//
//	doc, err := io.ImportDocument("budget.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Export
//
// [WriteJSON] and [ExportJSON] encode any value as indented JSON. They are
// used for documents and for the computed geometry the JSON output format
// carries.
package io
