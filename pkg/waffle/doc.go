// Package waffle renders proportions as a grid of cells.
//
// Each datum fills a run of consecutive cells proportional to its share of
// Total; the remaining cells are drawn with EmptyColor. Two layers are built:
//
//   - "cells": every grid cell, drawn by the cell component
//   - "areas": one outline per datum covering its cells, carrying hover,
//     tooltip and click handling
//
// [RenderHTML] produces absolutely positioned HTML with an SVG overlay for
// areas. [RenderSVG] produces the same chart as a standalone SVG document,
// which is what the rasterizers consume.
//
// The order in which cells fill is set by FillDirection:
//
//	bottom  rows from the top-left, advancing downward (default)
//	top     rows from the bottom-left, advancing upward
//	right   columns from the top-left, advancing rightward
//	left    columns from the top-right, advancing leftward
package waffle
