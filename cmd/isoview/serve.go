package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vango-dev/isoview/pkg/server"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		port          int
		host          string
		metrics       bool
		placeholderID string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve rendered states over HTTP",
		Long: `Start an HTTP server that renders the manifest's states on request.

Every GET path is matched against the manifest routes and answered with a
complete HTML document.

Examples:
  isoview serve
  isoview serve --port=8080 --metrics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(flags)
			if err != nil {
				return err
			}

			if port > 0 {
				p.cfg.Serve.Port = port
			}
			if host != "" {
				p.cfg.Serve.Host = host
			}
			if metrics {
				p.cfg.Serve.Metrics = true
			}
			if err := p.cfg.Validate(); err != nil {
				return err
			}

			info(cmd.OutOrStdout(), "serving %d routes on http://%s", len(p.routes.Routes()), p.cfg.ServeAddress())
			srv := server.New(server.Config{
				Address:       p.cfg.ServeAddress(),
				Renderer:      p.states,
				Routes:        p.routes,
				Document:      p.document(),
				PlaceholderID: placeholderID,
				Metrics:       p.cfg.Serve.Metrics,
				Logger:        slog.Default(),
			})
			return srv.Run()
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from isoview.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from isoview.json)")
	cmd.Flags().BoolVar(&metrics, "metrics", false, "Expose Prometheus metrics at /metrics")
	cmd.Flags().StringVar(&placeholderID, "placeholder-id", "", "Decorate the root placeholder with #id or .class")

	return cmd
}
