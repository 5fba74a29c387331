package sunburst

import (
	"math"
	"sort"
	"strconv"

	"github.com/matzehuels/chartkit/pkg/chart"
)

// GeometryInput is what a [GeometryFunc] receives.
type GeometryInput struct {
	Data         chart.Datum
	ID           chart.Accessor
	Value        chart.Accessor
	Colors       chart.OrdinalColors
	ChildColor   chart.InheritedColor[*Node]
	Radius       float64
	CornerRadius float64
	Theme        chart.Theme
}

// Geometry is the computed layout.
type Geometry struct {
	// Nodes in breadth-first order, root first.
	Nodes []*Node
	Arc   ArcGenerator
}

// GeometryFunc computes sunburst geometry.
type GeometryFunc func(GeometryInput) Geometry

type hnode struct {
	datum    chart.Datum
	id       string
	value    float64
	depth    int
	children []*hnode

	x0, x1 float64
}

// Compute lays the tree out as a radial partition.
//
// Leaf values come from the value accessor (negative values count as 0),
// parent values are the sum of their children. Siblings are ordered by
// descending value. The full circle is split among siblings proportionally
// to their values and radial bands use square-root scaling so every ring
// covers the same area. Depth-1 nodes are colored by the ordinal scale and
// deeper nodes by applying the child color to their parent.
func Compute(in GeometryInput) Geometry {
	geo := Geometry{Arc: ArcGenerator{CornerRadius: in.CornerRadius}}
	if in.Data == nil {
		return geo
	}

	height := 0
	root := buildHierarchy(in.Data, in, 0, &height)
	partition(root, 0, 2*math.Pi)

	band := in.Radius * in.Radius / float64(height+1)
	scale := in.Colors.Scale()
	childColor := in.ChildColor.Func(in.Theme)

	type item struct {
		h      *hnode
		parent *Node
		key    string
	}
	queue := []item{{h: root, key: root.id}}
	for len(queue) > 0 {
		it := queue[0]
		queue = queue[1:]
		h := it.h

		n := &Node{
			ID:    h.id,
			Value: h.value,
			Depth: h.depth,
			Data:  h.datum,
			Arc: Arc{
				StartAngle:  h.x0,
				EndAngle:    h.x1,
				InnerRadius: math.Sqrt(float64(h.depth) * band),
				OuterRadius: math.Sqrt(float64(h.depth+1) * band),
			},
			parent: it.parent,
			key:    it.key,
		}
		if root.value > 0 {
			n.Percentage = 100 * h.value / root.value
		}
		if it.parent != nil {
			n.ParentID = it.parent.ID
			n.Path = append(append([]string(nil), it.parent.Path...), h.id)
		} else {
			n.Path = []string{h.id}
		}
		switch {
		case h.depth == 1:
			n.Color = scale.Color(h.id, h.datum)
		case h.depth > 1:
			n.Color = childColor(it.parent)
		}

		geo.Nodes = append(geo.Nodes, n)
		seen := make(map[string]int, len(h.children))
		for _, c := range h.children {
			seg := c.id
			if k := seen[c.id]; k > 0 {
				seg += "~" + strconv.Itoa(k)
			}
			seen[c.id]++
			queue = append(queue, item{h: c, parent: n, key: it.key + "." + seg})
		}
	}
	return geo
}

func buildHierarchy(d chart.Datum, in GeometryInput, depth int, height *int) *hnode {
	h := &hnode{datum: d, id: in.ID.String(d), depth: depth}
	*height = max(*height, depth)

	for _, c := range d.Children("children") {
		h.children = append(h.children, buildHierarchy(c, in, depth+1, height))
	}
	if len(h.children) == 0 {
		if v := in.Value.Float(d); v > 0 && !math.IsInf(v, 1) {
			h.value = v
		}
		return h
	}
	for _, c := range h.children {
		h.value += c.value
	}
	sort.SliceStable(h.children, func(i, j int) bool {
		return h.children[i].value > h.children[j].value
	})
	return h
}

func partition(h *hnode, x0, x1 float64) {
	h.x0, h.x1 = x0, x1
	if len(h.children) == 0 {
		return
	}
	k := 0.0
	if h.value > 0 {
		k = (x1 - x0) / h.value
	}
	cursor := x0
	for _, c := range h.children {
		next := cursor + c.value*k
		partition(c, cursor, next)
		cursor = next
	}
}
