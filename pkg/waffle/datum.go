package waffle

import (
	"strings"

	"github.com/matzehuels/chartkit/pkg/chart"
)

// Point is a polygon vertex in grid units: X counts columns, Y counts rows.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ComputedDatum is a datum with its resolved presentation and cell range.
type ComputedDatum struct {
	ID             string  `json:"id"`
	Label          string  `json:"label"`
	Value          float64 `json:"value"`
	FormattedValue string  `json:"formattedValue"`
	Color          string  `json:"color"`
	BorderColor    string  `json:"borderColor"`
	// StartAt and EndAt delimit the cells the datum fills, in fill order.
	StartAt int `json:"startAt"`
	EndAt   int `json:"endAt"`
	// Polygons outline the datum cells. A datum whose cells are split
	// across the grid has more than one.
	Polygons [][]Point `json:"polygons"`

	Data chart.Datum `json:"data"`
}

// Get reads a datum property by path: id, label, value, formattedValue,
// color, borderColor or data.<field>.
func (d *ComputedDatum) Get(path string) (any, bool) {
	head, rest, _ := strings.Cut(path, ".")
	switch head {
	case "id":
		return d.ID, true
	case "label":
		return d.Label, true
	case "value":
		return d.Value, true
	case "formattedValue":
		return d.FormattedValue, true
	case "color":
		return d.Color, true
	case "borderColor":
		return d.BorderColor, true
	case "data":
		if rest == "" {
			return d.Data, d.Data != nil
		}
		return d.Data.Lookup(rest)
	}
	return nil, false
}

// Cell is one grid cell.
type Cell struct {
	// Position is the index in fill order.
	Position int     `json:"position"`
	Row      int     `json:"row"`
	Column   int     `json:"column"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Size     float64 `json:"size"`
	Color    string  `json:"color"`
	Opacity  float64 `json:"opacity"`
	// BorderColor is resolved from the chart border color.
	BorderColor string `json:"borderColor"`
	// Data is the datum filling the cell, nil for empty cells.
	Data *ComputedDatum `json:"-"`
}

// Key identifies the cell.
func (c *Cell) Key() string { return "cell-" + itoa(c.Position) }

// Empty reports whether no datum fills the cell.
func (c *Cell) Empty() bool { return c.Data == nil }

// Get reads a cell property by path: color, opacity, borderColor, position,
// row, column or data.<path> on the filling datum.
func (c *Cell) Get(path string) (any, bool) {
	head, rest, _ := strings.Cut(path, ".")
	switch head {
	case "color":
		return c.Color, true
	case "opacity":
		return c.Opacity, true
	case "borderColor":
		return c.BorderColor, true
	case "position":
		return c.Position, true
	case "row":
		return c.Row, true
	case "column":
		return c.Column, true
	case "data":
		if c.Data == nil || rest == "" {
			return nil, false
		}
		return c.Data.Get(rest)
	}
	return nil, false
}
