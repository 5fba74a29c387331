package waffle

import (
	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/markup"
)

// DefaultTooltip shows the datum label with its formatted value.
func DefaultTooltip(theme chart.Theme) chart.TooltipFunc[*ComputedDatum] {
	return func(d *ComputedDatum) *markup.Node {
		return chart.BasicTooltip(chart.BasicTooltipProps{
			ID:         d.Label,
			Value:      d.FormattedValue,
			Color:      d.Color,
			EnableChip: true,
			Theme:      theme,
		})
	}
}
