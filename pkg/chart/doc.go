// Package chart is the shared core behind the sunburst and waffle charts.
//
// # Overview
//
// A chart in this module is a thin composition layer: it resolves caller
// props against a default table, asks a geometry function for positioned
// nodes, selects the requested layers, and renders each layer into a
// [markup.Node] tree. This package holds everything the chart packages share:
//
//   - [ResolveDimensions]: outer/inner box and a fully specified [Margin]
//   - [Theme]: typography, label and tooltip styling (TOML/JSON decodable)
//   - [InheritedColor]: literal colors, per-element functions, or colors
//     inherited from an element property with modifiers (darker, brighter, opacity)
//   - [OrdinalColors]: named color schemes and custom palettes
//   - [Def], [FillRule], [BindDefs]: pattern and gradient definitions
//   - [Layer], [SelectLayers]: built-in or custom layers in paint order
//   - [Container], [View]: interactivity flag, tooltip state, event dispatch
//   - [BasicTooltip]: the standard tooltip layout
//   - [ValueFormat]: number formatting with digit grouping
//
// # Unknown input
//
// Render-side code never fails. Unknown layer names, scheme names or color
// modifiers are ignored and the closest default is used instead.
//
// [markup.Node]: github.com/matzehuels/chartkit/pkg/markup.Node
package chart
