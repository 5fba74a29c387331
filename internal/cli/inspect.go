package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartkit/pkg/pipeline"
)

// inspectCommand creates the inspect command, which prints the computed
// layout of a chart without writing any files.
func (c *CLI) inspectCommand() *cobra.Command {
	var opts renderOpts
	var maxDepth int

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Print the computed arcs or cell ranges of a chart",
		Long: `Inspect decodes a chart document and prints its computed layout: one row
per sunburst node with its depth, value, share and angle, or one row per
waffle datum with the cells it fills.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], opts, maxDepth)
		},
	}

	cmd.Flags().StringVarP(&opts.chart, "type", "t", "", "chart type: sunburst, waffle (default: document \"chart\" key)")
	cmd.Flags().StringVarP(&opts.propsFile, "props", "p", "", "props file (JSON, TOML or YAML)")
	cmd.Flags().IntVar(&maxDepth, "depth", 0, "only show sunburst nodes up to this depth (0 shows all)")
	_ = cmd.RegisterFlagCompletionFunc("type", completeCharts)

	return cmd
}

func (c *CLI) runInspect(_ context.Context, input string, opts renderOpts, maxDepth int) error {
	popts, err := c.renderOptions(input, opts)
	if err != nil {
		return err
	}
	popts.Formats = []string{pipeline.FormatJSON}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	chart, err := pipeline.Decode(popts)
	if err != nil {
		return err
	}

	switch l := chart.Layout().(type) {
	case pipeline.SunburstLayout:
		fmt.Fprintln(stdout, StyleTitle.Render(fmt.Sprintf("Sunburst · %d nodes · radius %s", len(l.Nodes), formatFloat(l.Radius))))
		fmt.Fprintln(stdout, sunburstTable(l, maxDepth))
	case pipeline.WaffleLayout:
		fmt.Fprintln(stdout, StyleTitle.Render(fmt.Sprintf("Waffle · %d×%d cells · total %s",
			l.Grid.Rows, l.Grid.Columns, formatFloat(l.Total))))
		fmt.Fprintln(stdout, waffleTable(l))
	}
	return nil
}

// sunburstTable lists nodes in layout order, indenting ids by depth.
func sunburstTable(l pipeline.SunburstLayout, maxDepth int) string {
	var rows [][]string
	for _, n := range l.Nodes {
		if maxDepth > 0 && n.Depth > maxDepth {
			continue
		}
		indent := strings.Repeat("  ", max(n.Depth-1, 0))
		id := n.ID
		if n.Depth == 0 {
			id = StyleDim.Render(id)
		}
		rows = append(rows, []string{
			indent + id,
			strconv.Itoa(n.Depth),
			formatFloat(n.Value),
			fmt.Sprintf("%.1f%%", n.Percentage),
			fmt.Sprintf("%.1f°", n.Arc.AngleDeg()),
			swatch(n.Color),
		})
	}
	return renderTable([]string{"Node", "Depth", "Value", "Share", "Angle", "Color"}, rows)
}

// waffleTable lists datums with the half-open cell range they fill.
func waffleTable(l pipeline.WaffleLayout) string {
	var rows [][]string
	for _, d := range l.Grid.Data {
		cells := "—"
		if d.EndAt > d.StartAt {
			cells = fmt.Sprintf("%d–%d", d.StartAt, d.EndAt-1)
		}
		rows = append(rows, []string{
			d.ID,
			d.Label,
			d.FormattedValue,
			strconv.Itoa(d.EndAt - d.StartAt),
			cells,
			swatch(d.Color),
		})
	}
	return renderTable([]string{"ID", "Label", "Value", "Count", "Cells", "Color"}, rows)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
