package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"supermarket-dashboard/internal/server"
	"supermarket-dashboard/internal/services"
)

const datasetLoadTimeout = 30 * time.Second

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web dashboard",
		Long: `Load the sales dataset and serve the interactive dashboard.

The dataset is read once at startup; a file that is missing a required column
or holds a non-numeric amount stops the server from starting.`,
		Example: `  dashboard serve
  dashboard serve --port 9000 --csv data/sales.csv`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := GetConfig(cmd.Context())
			if err != nil {
				return err
			}
			logger := GetLogger(cmd.Context())
			slog.SetDefault(logger)

			logger.Info("starting application",
				"version", Version,
				"csv_file", cfg.Data.CSVFile,
				"addr", cfg.Address(),
			)

			loadCtx, cancel := context.WithTimeout(cmd.Context(), datasetLoadTimeout)
			defer cancel()

			analytics, err := services.LoadAnalytics(loadCtx, cfg.Data.CSVFile, logger)
			if err != nil {
				return fmt.Errorf("load dataset: %w", err)
			}

			srv := server.NewServer(analytics, cfg, logger)

			httpServer := &http.Server{
				Addr:              cfg.Address(),
				Handler:           srv,
				ReadTimeout:       cfg.Server.ReadTimeout,
				ReadHeaderTimeout: cfg.Server.ReadTimeout,
				WriteTimeout:      cfg.Server.WriteTimeout,
				IdleTimeout:       cfg.Server.IdleTimeout,
			}

			gracefulServer := server.NewGracefulServer(httpServer, logger, cfg)
			gracefulServer.RegisterBackground(srv.RateLimiter().Run)
			gracefulServer.RegisterShutdownHook(func(ctx context.Context) error {
				stats := analytics.Stats()
				logger.Info("shutting down analytics service",
					"runs", stats["runs"],
					"empty_results", stats["empty_results"],
				)
				return nil
			})

			if err := gracefulServer.ListenAndServe(cmd.Context()); err != nil {
				return err
			}

			logger.Info("application stopped gracefully")
			return nil
		},
	}

	cmd.Flags().String("host", "", "Interface to listen on")
	cmd.Flags().Int("port", 0, "Port to listen on")

	return cmd
}
