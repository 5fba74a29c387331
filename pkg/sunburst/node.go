package sunburst

import (
	"math"
	"strings"

	"github.com/matzehuels/chartkit/pkg/chart"
)

// Arc is the polar extent of a node. Angles are in radians, clockwise from
// twelve o'clock.
type Arc struct {
	StartAngle  float64 `json:"startAngle"`
	EndAngle    float64 `json:"endAngle"`
	InnerRadius float64 `json:"innerRadius"`
	OuterRadius float64 `json:"outerRadius"`
}

// Angle returns the angular span in radians.
func (a Arc) Angle() float64 { return a.EndAngle - a.StartAngle }

// AngleDeg returns the angular span in degrees.
func (a Arc) AngleDeg() float64 { return a.Angle() * 180 / math.Pi }

// Centroid returns the midpoint of the arc band, relative to the center.
func (a Arc) Centroid() (x, y float64) {
	r := (a.InnerRadius + a.OuterRadius) / 2
	angle := (a.StartAngle+a.EndAngle)/2 - math.Pi/2
	return r * math.Cos(angle), r * math.Sin(angle)
}

// Node is a computed sunburst node.
type Node struct {
	ID         string   `json:"id"`
	Value      float64  `json:"value"`
	Depth      int      `json:"depth"`
	Percentage float64  `json:"percentage"`
	Color      string   `json:"color"`
	Fill       string   `json:"fill,omitempty"`
	ParentID   string   `json:"parentId,omitempty"`
	Path       []string `json:"path"`
	Arc        Arc      `json:"arc"`

	// Data is the source datum, children included.
	Data chart.Datum `json:"-"`

	parent *Node
	key    string
}

// Key identifies the node by its id path from the root. A sibling that
// repeats an earlier sibling's id gets a "~<n>" suffix, so keys and element
// ids stay unique within a chart.
func (n *Node) Key() string {
	if n.key != "" {
		return n.key
	}
	return strings.Join(n.Path, ".")
}

// Parent returns the parent node, or nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// Get reads a node property by path. Supported roots are id, value, depth,
// percentage, color, fill, data.<field> and parent.<path>.
func (n *Node) Get(path string) (any, bool) {
	head, rest, _ := strings.Cut(path, ".")
	switch head {
	case "id":
		return n.ID, true
	case "value":
		return n.Value, true
	case "depth":
		return n.Depth, true
	case "percentage":
		return n.Percentage, true
	case "color":
		return n.Color, true
	case "fill":
		if n.Fill == "" {
			return n.Color, true
		}
		return n.Fill, true
	case "data":
		if rest == "" {
			return n.Data, n.Data != nil
		}
		if rest == "color" {
			return n.Color, true
		}
		return n.Data.Lookup(rest)
	case "parent":
		if n.parent == nil || rest == "" {
			return nil, false
		}
		return n.parent.Get(rest)
	}
	return nil, false
}

// Datum flattens the node into a datum, with the source datum under "data".
// Label accessors are evaluated against it.
func (n *Node) Datum() chart.Datum {
	return chart.Datum{
		"id":         n.ID,
		"value":      n.Value,
		"depth":      n.Depth,
		"percentage": n.Percentage,
		"color":      n.Color,
		"data":       map[string]any(n.Data),
	}
}
