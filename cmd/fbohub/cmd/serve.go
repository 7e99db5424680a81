package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/propilot/fbohub"
	"github.com/propilot/fbohub/internal/server"
	"github.com/propilot/fbohub/pkg/logging"
)

// newServeCommand runs the HTTP API until interrupted.
func newServeCommand() *cobra.Command {
	var (
		cfg          = server.DefaultConfig()
		autoSync     bool
		syncInterval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the facility API over HTTP",
		Long: `Serve exposes the store and the reconciliation operations as a JSON API,
plus /healthz and Prometheus metrics on /metrics. The server runs until
it receives SIGINT or SIGTERM, then drains in-flight requests.`,
		Example: `  # Local API on the default port
  fbohub serve

  # Public listener with a remote store and background syncs
  fbohub serve --host 0.0.0.0 --port 8080 \
    --remote-uri mongodb://localhost:27017 --auto-sync`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var extra []fbohub.Option
			if autoSync {
				extra = append(extra, fbohub.WithAutoSync(true))
				if syncInterval > 0 {
					extra = append(extra, fbohub.WithSyncInterval(syncInterval))
				}
			}

			app, err := newApp(ctx, extra...)
			if err != nil {
				return err
			}
			defer app.close(ctx)

			srv, err := server.New(app.manager, app.registry, cfg)
			if err != nil {
				return err
			}

			logging.Info().Str("addr", srv.Addr()).Msg("Starting HTTP server")
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&cfg.Host, "host", cfg.Host, "interface to listen on")
	cmd.Flags().IntVar(&cfg.Port, "port", cfg.Port, "port to listen on")
	cmd.Flags().BoolVar(&cfg.CORSEnabled, "cors", false, "enable CORS for browser clients")
	cmd.Flags().StringSliceVar(&cfg.CORSOrigins, "cors-origins", nil, "allowed CORS origins (all origins when empty)")
	cmd.Flags().DurationVar(&cfg.ReadTimeout, "read-timeout", cfg.ReadTimeout, "HTTP read timeout")
	cmd.Flags().DurationVar(&cfg.WriteTimeout, "write-timeout", cfg.WriteTimeout, "HTTP write timeout")
	cmd.Flags().DurationVar(&cfg.IdleTimeout, "idle-timeout", cfg.IdleTimeout, "HTTP idle timeout")
	cmd.Flags().BoolVar(&autoSync, "auto-sync", false, "periodically sync all locations while serving")
	cmd.Flags().DurationVar(&syncInterval, "sync-interval", 0, "interval between background syncs (default 30m)")

	return cmd
}
