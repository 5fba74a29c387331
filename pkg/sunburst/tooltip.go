package sunburst

import (
	"strconv"

	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/markup"
)

// DefaultTooltip shows the node id with its percentage, or its formatted
// value when format is set.
func DefaultTooltip(theme chart.Theme, format chart.ValueFormat) chart.TooltipFunc[*Node] {
	return func(n *Node) *markup.Node {
		value := strconv.FormatFloat(n.Percentage, 'f', 2, 64) + "%"
		if !format.IsZero() {
			value = format.Format(n.Value)
		}
		return chart.BasicTooltip(chart.BasicTooltipProps{
			ID:         n.ID,
			Value:      value,
			Color:      n.Color,
			EnableChip: true,
			Theme:      theme,
		})
	}
}
