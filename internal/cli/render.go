package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chartkit/pkg/errors"
	chartio "github.com/matzehuels/chartkit/pkg/io"
	"github.com/matzehuels/chartkit/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	chart     string  // chart type, overriding the document's "chart" key
	propsFile string  // separate props file, replacing the document's props
	themeFile string  // TOML theme file, overriding the config theme
	output    string  // output file path (or base path for multiple outputs)
	formats   string  // comma-separated output formats
	scale     float64 // PNG scale factor
	native    bool    // draw PNGs without rsvg-convert
	noCache   bool    // bypass the artifact cache entirely
	refresh   bool    // re-render and overwrite cached artifacts
}

// renderCommand creates the render command for generating chart files.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a chart document to SVG, HTML, PNG, PDF or JSON",
		Long: `Render a chart document to one or more output files.

The document is a JSON, TOML or YAML file with a "data" key and optional
"chart", "props" and "theme" keys. A file holding only the data is accepted
when --type names the chart.`,
		Example: `  chartkit render budget.json
  chartkit render budget.yaml -f svg,png --scale 3
  chartkit render shares.json -t waffle -p waffle.toml -o out/shares.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.chart, "type", "t", "", "chart type: sunburst, waffle (default: document \"chart\" key)")
	cmd.Flags().StringVarP(&opts.propsFile, "props", "p", "", "props file (JSON, TOML or YAML)")
	cmd.Flags().StringVar(&opts.themeFile, "theme", "", "theme file (TOML), used when the chart sets no theme")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg, html, png, pdf, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "PNG scale factor (default from config, 2)")
	cmd.Flags().BoolVar(&opts.native, "native", false, "rasterize PNGs natively instead of with rsvg-convert")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")

	_ = cmd.RegisterFlagCompletionFunc("type", completeCharts)
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	popts, err := c.renderOptions(input, opts)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spin := c.startSpinner(ctx, fmt.Sprintf("Rendering %s...", filepath.Base(input)))
	result, err := runner.Execute(ctx, popts)
	spin.stop()
	if err != nil {
		return err
	}

	paths, err := writeArtifacts(result.Artifacts, popts.Formats, opts.output, input)
	if err != nil {
		return err
	}

	printSuccess("Rendered %s chart", popts.Chart)
	for _, p := range paths {
		printFile(p)
	}
	printStats(result)
	prog.done("render finished", "chart", popts.Chart, "files", len(paths), "cached", result.CacheInfo.RenderHit)
	return nil
}

// renderOptions reads the input document and merges flags and config into
// pipeline options.
func (c *CLI) renderOptions(input string, opts renderOpts) (pipeline.Options, error) {
	doc, err := chartio.ImportDocument(input)
	if err != nil {
		return pipeline.Options{}, err
	}
	if opts.propsFile != "" {
		props, err := chartio.ImportProps(opts.propsFile)
		if err != nil {
			return pipeline.Options{}, err
		}
		doc.Props = props
	}

	chart := opts.chart
	if chart == "" {
		chart = doc.Chart
	}
	if chart == "" {
		return pipeline.Options{}, errors.New(errors.ErrCodeInvalidChart,
			"%s does not name a chart type; pass --type sunburst or --type waffle", input)
	}

	popts := pipeline.OptionsFromDocument(doc, chart, parseFormats(opts.formats, chart))
	popts.Scale = opts.scale
	if popts.Scale <= 0 {
		popts.Scale = c.cfg.Render.Scale
	}
	popts.NativeRaster = opts.native || c.cfg.Render.NativeRaster
	popts.Refresh = opts.refresh

	theme, err := c.fallbackTheme(opts.themeFile)
	if err != nil {
		return pipeline.Options{}, err
	}
	popts.FallbackTheme = theme
	return popts, nil
}

func (c *CLI) fallbackTheme(path string) (json.RawMessage, error) {
	cfg := c.cfg
	if path != "" {
		cfg.Theme = path
	}
	return cfg.ThemeJSON()
}

// writeArtifacts writes each rendered format next to the input, or to the
// requested output path, and returns the written paths in format order.
func writeArtifacts(artifacts map[string][]byte, formats []string, output, input string) ([]string, error) {
	var paths []string
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := outputPath(output, input, format, len(formats))
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", dir)
			}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// outputPath derives the file for one format. A single format is written
// to output verbatim when set; otherwise the format extension is appended
// to the base path.
func outputPath(output, input, format string, count int) string {
	if output != "" && count == 1 {
		return output
	}
	return basePath(output, input) + "." + format
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .png, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if isFormat(strings.TrimPrefix(ext, ".")) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func isFormat(s string) bool {
	return slices.Contains(supportedFormats(), s)
}

// startSpinner shows a spinner on interactive terminals unless debug
// logging is on, where it would interleave with log lines.
func (c *CLI) startSpinner(ctx context.Context, msg string) *spinner {
	s := newSpinner(ctx, os.Stderr, msg)
	if c.Logger.GetLevel() > log.DebugLevel && isTerminal(os.Stderr) {
		s.start()
	}
	return s
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

func completeCharts(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return errors.Charts(), cobra.ShellCompDirectiveNoFileComp
}

func completeFormats(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return supportedFormats(), cobra.ShellCompDirectiveNoFileComp
}

// supportedFormats lists every chart's formats for help and completion.
func supportedFormats() []string {
	seen := map[string]bool{}
	var out []string
	for _, chart := range errors.Charts() {
		for _, f := range errors.Formats(chart) {
			if !seen[f] {
				seen[f] = true
				out = append(out, f)
			}
		}
	}
	sort.Strings(out)
	return out
}
