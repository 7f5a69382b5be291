// Package cli provides the dashboard command-line interface.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"supermarket-dashboard/internal/config"
	"supermarket-dashboard/internal/handlers"
	"supermarket-dashboard/internal/observability"
)

// Version information (set at build time).
var (
	Version   = handlers.Version
	BuildDate = "unknown"
	GitCommit = "unknown"
)

type configKey struct{}

type loggerKey struct{}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Supermarket sales and profit dashboard",
		Long: `Dashboard loads a supermarket sales CSV and reports sales, profit and
margins filtered by month, category, customer type and payment method.

Run "dashboard serve" for the interactive web dashboard or "dashboard report"
for the same figures in the terminal.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "version" {
				return nil
			}

			// A missing .env file is fine.
			_ = godotenv.Load()

			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}

			logger := observability.NewLogger(cfg.Logger, cmd.ErrOrStderr())

			ctx := context.WithValue(cmd.Context(), configKey{}, cfg)
			ctx = context.WithValue(ctx, loggerKey{}, logger)
			cmd.SetContext(ctx)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./"+config.DefaultConfigFile+")")
	flags.String("csv", "", "Path to the sales CSV file")
	flags.String("currency", "", "Currency label for monetary values")
	flags.Int("table-rows", 0, "Maximum raw data rows to show (0 shows all)")
	flags.String("log-level", "", "Log level (debug|info|warn|error)")
	flags.String("log-format", "", "Log format (json|text)")

	_ = rootCmd.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("log-format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"json", "text"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewReportCommand())
	rootCmd.AddCommand(NewVersionCommand(Version))

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// GetConfig retrieves the config from the command context, falling back to
// the defaults when the root pre-run did not store one.
func GetConfig(ctx context.Context) (*config.Config, error) {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c, nil
	}
	cfg, err := config.Load("", nil)
	if err != nil {
		return nil, fmt.Errorf("load default configuration: %w", err)
	}
	return cfg, nil
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}
