package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"supermarket-dashboard/internal/models"
	"supermarket-dashboard/internal/services"
)

var reportFormats = []string{"table", "markdown", "csv", "json"}

// NewReportCommand creates the report command.
func NewReportCommand() *cobra.Command {
	var (
		outputFormat string
		showRows     bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the dashboard figures in the terminal",
		Long: `Filter the dataset and print the KPIs and grouped summaries the web
dashboard shows.

Each filter flag may be repeated. An omitted flag keeps every value of that
dimension; a flag given only an empty value (--month "") selects none.`,
		Example: `  dashboard report
  dashboard report --category Food --category Drinks
  dashboard report --month Jan --payment-method Cash --format markdown
  dashboard report --customer-type Member --rows --format csv`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !slices.Contains(reportFormats, outputFormat) {
				return fmt.Errorf("unsupported format %q (want one of %v)", outputFormat, reportFormats)
			}

			cfg, err := GetConfig(cmd.Context())
			if err != nil {
				return err
			}
			logger := GetLogger(cmd.Context())

			loadCtx, cancel := context.WithTimeout(cmd.Context(), datasetLoadTimeout)
			defer cancel()

			analytics, err := services.LoadAnalytics(loadCtx, cfg.Data.CSVFile, logger)
			if err != nil {
				return fmt.Errorf("load dataset: %w", err)
			}

			sel, err := selectionFromFlags(cmd.Flags(), analytics.DefaultSelection())
			if err != nil {
				return err
			}

			result, err := analytics.Run(cmd.Context(), sel)
			if err != nil {
				return err
			}

			r := &reportRenderer{
				w:        cmd.OutOrStdout(),
				format:   outputFormat,
				currency: cfg.Data.Currency,
				rowLimit: cfg.Data.TableRowLimit,
				showRows: showRows,
			}
			return r.render(result)
		},
	}

	cmd.Flags().StringArray("month", nil, "Month to include (repeatable)")
	cmd.Flags().StringArray("category", nil, "Category to include (repeatable)")
	cmd.Flags().StringArray("customer-type", nil, "Customer type to include (repeatable)")
	cmd.Flags().StringArray("payment-method", nil, "Payment method to include (repeatable)")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "table", "Output format (table|markdown|csv|json)")
	cmd.Flags().BoolVar(&showRows, "rows", false, "Also print the filtered raw data")

	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return reportFormats, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func selectionFromFlags(flags *pflag.FlagSet, defaults models.Selection) (models.Selection, error) {
	sel := defaults
	dims := []struct {
		name string
		dst  *[]string
	}{
		{"month", &sel.Months},
		{"category", &sel.Categories},
		{"customer-type", &sel.CustomerTypes},
		{"payment-method", &sel.PaymentMethods},
	}

	for _, d := range dims {
		if !flags.Changed(d.name) {
			continue
		}
		values, err := flags.GetStringArray(d.name)
		if err != nil {
			return models.Selection{}, err
		}
		*d.dst = slices.DeleteFunc(values, func(v string) bool { return v == "" })
	}
	return sel, nil
}
