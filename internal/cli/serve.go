package cli

import (
	"fmt"
	"net"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartkit/pkg/pipeline"
	"github.com/matzehuels/chartkit/pkg/server"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the render and chart API over HTTP",
		Long: `Serve renders posted chart documents and manages saved charts over HTTP.

The cache and store backends come from the config file. CHARTKIT_REDIS_URL
and CHARTKIT_MONGO_URL switch them to redis and mongo.`,
		Example: `  chartkit serve
  chartkit serve --addr 127.0.0.1:9000
  curl -d @budget.json 'localhost:8080/v1/render/sunburst?format=svg'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.cfg.Server.Addr
			}

			ch, err := c.newCache(ctx, false)
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(ch, nil, c.Logger)
			defer runner.Close()

			s, err := c.cfg.Store.OpenStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			theme, err := c.cfg.ThemeJSON()
			if err != nil {
				return err
			}

			srv := server.New(runner, s, c.Logger, server.Options{
				RequestTimeout: c.cfg.Server.RequestTimeout,
				MaxBodyBytes:   c.cfg.Server.MaxBodyBytes,
				Theme:          theme,
				NativeRaster:   c.cfg.Render.NativeRaster,
			})

			printSuccess("Serving chartkit API")
			printKeyValue("URL", StyleLink.Render(serverURL(addr)))
			printKeyValue("Cache", c.cfg.Cache.Backend)
			printKeyValue("Store", c.cfg.Store.Backend)
			printNextStep("Try it", fmt.Sprintf("curl %s/healthz", serverURL(addr)))

			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")

	return cmd
}

// serverURL turns a listen address into a URL for display.
func serverURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	return "http://" + host + ":" + port
}
