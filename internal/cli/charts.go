package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartkit/pkg/errors"
	chartio "github.com/matzehuels/chartkit/pkg/io"
	"github.com/matzehuels/chartkit/pkg/pipeline"
	"github.com/matzehuels/chartkit/pkg/store"
)

// chartsCommand creates the saved chart management command.
func (c *CLI) chartsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "charts",
		Short: "Manage saved charts",
		Long: `Save chart documents to the configured store and render them later.

The store backend comes from the [store] section of the config file. The CLI
uses the file store (~/.config/chartkit/charts) unless mongo is configured.`,
	}

	cmd.AddCommand(c.chartsSaveCommand())
	cmd.AddCommand(c.chartsListCommand())
	cmd.AddCommand(c.chartsShowCommand())
	cmd.AddCommand(c.chartsRenderCommand())
	cmd.AddCommand(c.chartsDeleteCommand())

	return cmd
}

func (c *CLI) chartsSaveCommand() *cobra.Command {
	var name, chartType, propsFile, id string

	cmd := &cobra.Command{
		Use:   "save [file]",
		Short: "Save a chart document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := chartio.ImportDocument(args[0])
			if err != nil {
				return err
			}
			if propsFile != "" {
				if doc.Props, err = chartio.ImportProps(propsFile); err != nil {
					return err
				}
			}
			if chartType != "" {
				doc.Chart = chartType
			}
			if name == "" {
				name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			}

			return c.withStore(cmd.Context(), func(s store.Store) error {
				saved, err := s.Save(cmd.Context(), &store.Chart{
					ID:    id,
					Name:  name,
					Chart: doc.Chart,
					Props: doc.Props,
					Data:  doc.Data,
					Theme: doc.Theme,
				})
				if err != nil {
					return err
				}
				printSuccess("Saved %s chart %q", saved.Chart, saved.Name)
				printDetail("ID: %s", saved.ID)
				printNextStep("Render it", "chartkit charts render "+saved.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "chart name (default: file name)")
	cmd.Flags().StringVarP(&chartType, "type", "t", "", "chart type: sunburst, waffle (default: document \"chart\" key)")
	cmd.Flags().StringVarP(&propsFile, "props", "p", "", "props file (JSON, TOML or YAML)")
	cmd.Flags().StringVar(&id, "id", "", "replace the saved chart with this id")
	_ = cmd.RegisterFlagCompletionFunc("type", completeCharts)

	return cmd
}

func (c *CLI) chartsListCommand() *cobra.Command {
	var opts store.ListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved charts, most recently updated first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Chart != "" {
				if err := errors.ValidateChart(opts.Chart); err != nil {
					return err
				}
			}
			return c.withStore(cmd.Context(), func(s store.Store) error {
				charts, err := s.List(cmd.Context(), opts)
				if err != nil {
					return err
				}
				if len(charts) == 0 {
					printInfo("No saved charts")
					return nil
				}
				fmt.Fprintln(stdout, chartsTable(charts))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&opts.Chart, "type", "t", "", "only list charts of this type")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "l", store.DefaultListLimit, "maximum number of charts")
	_ = cmd.RegisterFlagCompletionFunc("type", completeCharts)

	return cmd
}

func (c *CLI) chartsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show a saved chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(s store.Store) error {
				saved, err := s.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				printKeyValue("ID", saved.ID)
				printKeyValue("Name", saved.Name)
				printKeyValue("Chart", saved.Chart)
				printKeyValue("Created", saved.CreatedAt.Local().Format("2006-01-02 15:04:05"))
				printKeyValue("Updated", formatRelativeTime(saved.UpdatedAt))
				printKeyValue("Data", formatBytes(len(saved.Data)))
				if len(saved.Props) > 0 {
					printKeyValue("Props", formatBytes(len(saved.Props)))
				}
				if len(saved.Theme) > 0 {
					printKeyValue("Theme", formatBytes(len(saved.Theme)))
				}
				return nil
			})
		},
	}
}

func (c *CLI) chartsRenderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [id]",
		Short: "Render a saved chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withStore(ctx, func(s store.Store) error {
				saved, err := s.Get(ctx, args[0])
				if err != nil {
					return err
				}
				return c.renderSaved(ctx, saved, opts)
			})
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (default: chart name)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg, html, png, pdf, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "PNG scale factor (default from config, 2)")
	cmd.Flags().BoolVar(&opts.native, "native", false, "rasterize PNGs natively instead of with rsvg-convert")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

func (c *CLI) renderSaved(ctx context.Context, saved *store.Chart, opts renderOpts) error {
	prog := newProgress(loggerFromContext(ctx))
	popts := pipeline.Options{
		Chart:        saved.Chart,
		Props:        saved.Props,
		Data:         saved.Data,
		Theme:        saved.Theme,
		Formats:      parseFormats(opts.formats, saved.Chart),
		Scale:        opts.scale,
		NativeRaster: opts.native || c.cfg.Render.NativeRaster,
	}
	if popts.Scale <= 0 {
		popts.Scale = c.cfg.Render.Scale
	}
	theme, err := c.cfg.ThemeJSON()
	if err != nil {
		return err
	}
	popts.FallbackTheme = theme

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	result, err := runner.Execute(ctx, popts)
	if err != nil {
		return err
	}
	// The saved chart's name stands in for the input file name.
	paths, err := writeArtifacts(result.Artifacts, popts.Formats, opts.output, saved.Name+".json")
	if err != nil {
		return err
	}
	printSuccess("Rendered %q", saved.Name)
	for _, p := range paths {
		printFile(p)
	}
	printStats(result)
	prog.done("render finished", "id", saved.ID, "chart", saved.Chart, "files", len(paths))
	return nil
}

func (c *CLI) chartsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a saved chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(s store.Store) error {
				if err := s.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				printSuccess("Deleted %s", args[0])
				return nil
			})
		},
	}
}

// withStore opens the configured store for the duration of fn.
func (c *CLI) withStore(ctx context.Context, fn func(store.Store) error) error {
	s, err := c.newStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

// chartsTable lists saved charts with their id, name, type and age.
func chartsTable(charts []*store.Chart) string {
	rows := make([][]string, len(charts))
	for i, ch := range charts {
		rows[i] = []string{ch.ID, ch.Name, ch.Chart, formatRelativeTime(ch.UpdatedAt)}
	}
	return renderTable([]string{"ID", "Name", "Chart", "Updated"}, rows)
}
