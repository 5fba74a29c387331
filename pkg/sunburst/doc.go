// Package sunburst renders hierarchical data as a radial sunburst chart.
//
// # Overview
//
// [Render] resolves [Props] against [DefaultProps], computes arc geometry for
// every node of the data tree, and composes the requested layers into an SVG
// document:
//
//   - "arcs": one interactive path per non-root node
//   - "labels": slice labels, only when EnableSliceLabels is set
//
// Custom layers ([chart.Custom]) can be interleaved with the built-in ones;
// the layer list order is the paint order.
//
// # Geometry
//
// The default geometry function [Compute] lays the tree out as a partition:
// each node receives an angular span proportional to its value and a radial
// band by depth. The root occupies the center disc and is never drawn. A
// custom [GeometryFunc] can be supplied through Props.Geometry.
//
// # Example
//
//	view := sunburst.Render(sunburst.Props{
//	    Data:              data,
//	    Width:             chart.Ptr(400.0),
//	    Height:            chart.Ptr(400.0),
//	    EnableSliceLabels: chart.Ptr(true),
//	})
//	os.Stdout.Write(view.Bytes())
//
// [chart.Custom]: github.com/matzehuels/chartkit/pkg/chart.Custom
package sunburst
