package waffle

import (
	"math"
	"sort"
	"strconv"

	"github.com/matzehuels/chartkit/pkg/chart"
)

// GeometryInput is what a [GeometryFunc] receives. Width and Height are the
// inner dimensions.
type GeometryInput struct {
	Width, Height float64
	Data          []chart.Datum
	ID            chart.Accessor
	Label         chart.Accessor
	Value         chart.Accessor
	ValueFormat   chart.ValueFormat
	Total         float64
	Rows          int
	Columns       int
	FillDirection string
	Padding       float64
	Colors        chart.OrdinalColors
	EmptyColor    string
	EmptyOpacity  float64
	BorderColor   chart.InheritedColor[*Cell]
	Theme         chart.Theme
}

// Geometry is the computed grid.
type Geometry struct {
	// Cells in fill order.
	Cells    []*Cell `json:"cells"`
	CellSize float64 `json:"cellSize"`
	Padding  float64 `json:"padding"`
	// OriginX and OriginY offset the grid, centered in the inner area.
	OriginX float64          `json:"originX"`
	OriginY float64          `json:"originY"`
	Rows    int              `json:"rows"`
	Columns int              `json:"columns"`
	Data    []*ComputedDatum `json:"data"`
}

// GeometryFunc computes waffle geometry.
type GeometryFunc func(GeometryInput) Geometry

// Compute packs the data into the grid.
//
// Each datum takes round(value / total * rows * columns) consecutive cells in
// fill order, clamped to the cells left. Cells past the last datum are empty.
func Compute(in GeometryInput) Geometry {
	rows, cols := max(0, in.Rows), max(0, in.Columns)
	geo := Geometry{Rows: rows, Columns: cols, Padding: in.Padding}
	if rows == 0 || cols == 0 {
		geo.Data = computeData(in, 0)
		return geo
	}

	size := min(
		(in.Width-float64(cols-1)*in.Padding)/float64(cols),
		(in.Height-float64(rows-1)*in.Padding)/float64(rows),
	)
	geo.CellSize = max(0, size)
	geo.OriginX = (in.Width - (geo.CellSize*float64(cols) + in.Padding*float64(cols-1))) / 2
	geo.OriginY = (in.Height - (geo.CellSize*float64(rows) + in.Padding*float64(rows-1))) / 2

	count := rows * cols
	geo.Data = computeData(in, count)

	borderColor := in.BorderColor.Func(in.Theme)
	geo.Cells = make([]*Cell, count)
	for i := range count {
		row, col := gridPosition(i, rows, cols, in.FillDirection)
		geo.Cells[i] = &Cell{
			Position: i,
			Row:      row,
			Column:   col,
			X:        geo.OriginX + float64(col)*(geo.CellSize+in.Padding),
			Y:        geo.OriginY + float64(row)*(geo.CellSize+in.Padding),
			Size:     geo.CellSize,
			Color:    in.EmptyColor,
			Opacity:  in.EmptyOpacity,
		}
	}
	for _, d := range geo.Data {
		for i := d.StartAt; i < d.EndAt; i++ {
			c := geo.Cells[i]
			c.Data = d
			c.Color = d.Color
			c.Opacity = 1
		}
		d.Polygons = outline(geo.Cells[d.StartAt:d.EndAt])
	}
	for _, c := range geo.Cells {
		c.BorderColor = borderColor(c)
	}
	for _, d := range geo.Data {
		d.BorderColor = borderColor(&Cell{Color: d.Color, Opacity: 1, Data: d})
	}
	return geo
}

func computeData(in GeometryInput, count int) []*ComputedDatum {
	scale := in.Colors.Scale()
	unit := 0.0
	if in.Total > 0 {
		unit = float64(count) / in.Total
	}

	out := make([]*ComputedDatum, 0, len(in.Data))
	cursor := 0
	for _, datum := range in.Data {
		id := in.ID.String(datum)
		value := in.Value.Float(datum)
		if math.IsNaN(value) || math.IsInf(value, 0) {
			value = 0
		}
		d := &ComputedDatum{
			ID:             id,
			Label:          in.Label.String(datum),
			Value:          value,
			FormattedValue: formatValue(in.ValueFormat, value),
			Color:          scale.Color(id, datum),
			Data:           datum,
		}
		if d.Label == "" {
			d.Label = id
		}
		d.StartAt = cursor
		d.EndAt = cursor + cellShare(value, unit, count-cursor)
		cursor = d.EndAt
		out = append(out, d)
	}
	return out
}

// cellShare converts a value to whole cells, at most left. Negative and
// non-finite shares take no cells.
func cellShare(value, unit float64, left int) int {
	share := math.Round(value * unit)
	if math.IsNaN(share) || share <= 0 {
		return 0
	}
	return int(min(share, float64(left)))
}

func formatValue(f chart.ValueFormat, v float64) string {
	if f.IsZero() {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return f.Format(v)
}

// gridPosition maps a fill-order index to its row and column.
func gridPosition(i, rows, cols int, direction string) (row, col int) {
	switch direction {
	case FillTop:
		return rows - 1 - i/cols, i % cols
	case FillRight:
		return i % rows, i / rows
	case FillLeft:
		return i % rows, cols - 1 - i/rows
	default:
		return i / cols, i % cols
	}
}

type gridEdge struct{ x0, y0, x1, y1 int }

// outline traces the boundary of a set of cells. Every cell contributes its
// four clockwise edges; edges shared by two cells cancel out and the rest are
// chained into closed loops, with collinear vertices dropped.
func outline(cells []*Cell) [][]Point {
	if len(cells) == 0 {
		return nil
	}
	edges := make(map[gridEdge]bool)
	add := func(e gridEdge) {
		rev := gridEdge{e.x1, e.y1, e.x0, e.y0}
		if edges[rev] {
			delete(edges, rev)
			return
		}
		edges[e] = true
	}
	for _, c := range cells {
		x, y := c.Column, c.Row
		add(gridEdge{x, y, x + 1, y})
		add(gridEdge{x + 1, y, x + 1, y + 1})
		add(gridEdge{x + 1, y + 1, x, y + 1})
		add(gridEdge{x, y + 1, x, y})
	}

	sorted := make([]gridEdge, 0, len(edges))
	for e := range edges {
		sorted = append(sorted, e)
	}
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.y0 != b.y0 {
			return a.y0 < b.y0
		}
		if a.x0 != b.x0 {
			return a.x0 < b.x0
		}
		if a.y1 != b.y1 {
			return a.y1 < b.y1
		}
		return a.x1 < b.x1
	})
	outgoing := make(map[[2]int][]gridEdge)
	for _, e := range sorted {
		from := [2]int{e.x0, e.y0}
		outgoing[from] = append(outgoing[from], e)
	}

	used := make(map[gridEdge]bool, len(sorted))
	var polygons [][]Point
	for _, start := range sorted {
		if used[start] {
			continue
		}
		var loop []Point
		e := start
		for {
			used[e] = true
			loop = append(loop, Point{X: float64(e.x0), Y: float64(e.y0)})
			if e.x1 == start.x0 && e.y1 == start.y0 {
				break
			}
			next, ok := nextEdge(outgoing[[2]int{e.x1, e.y1}], used)
			if !ok {
				break
			}
			e = next
		}
		polygons = append(polygons, simplify(loop))
	}
	return polygons
}

func nextEdge(candidates []gridEdge, used map[gridEdge]bool) (gridEdge, bool) {
	for _, e := range candidates {
		if !used[e] {
			return e, true
		}
	}
	return gridEdge{}, false
}

func simplify(loop []Point) []Point {
	n := len(loop)
	if n < 3 {
		return loop
	}
	out := make([]Point, 0, n)
	for i, p := range loop {
		prev, next := loop[(i+n-1)%n], loop[(i+1)%n]
		if (prev.X == p.X && p.X == next.X) || (prev.Y == p.Y && p.Y == next.Y) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func itoa(i int) string { return strconv.Itoa(i) }
