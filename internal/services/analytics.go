package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync/atomic"
	"time"

	"supermarket-dashboard/internal/dataset"
	"supermarket-dashboard/internal/models"
	"supermarket-dashboard/internal/observability"
	"supermarket-dashboard/internal/report"
)

// NoDataMessage is shown instead of KPIs, charts and the table when the
// filters leave no rows.
const NoDataMessage = "No data available for the selected filters. Try adjusting filters."

// Result is the outcome of one filter pass over the table.
type Result struct {
	Selection models.Selection `json:"selection"`
	Rows      []models.Row     `json:"-"`
	// Summary is nil when no rows matched.
	Summary *models.Summary `json:"summary"`
}

func (r *Result) Empty() bool {
	return len(r.Rows) == 0
}

// Warning returns NoDataMessage for an empty result and "" otherwise.
func (r *Result) Warning() string {
	if r.Empty() {
		return NoDataMessage
	}
	return ""
}

// Analytics runs the filter and aggregation flow against a loaded table.
// It is safe for concurrent use.
type Analytics struct {
	table  *dataset.Table
	logger *slog.Logger

	runs         atomic.Int64
	emptyResults atomic.Int64
}

func NewAnalytics(table *dataset.Table, logger *slog.Logger) *Analytics {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analytics{
		table:  table,
		logger: logger,
	}
}

// LoadAnalytics reads the CSV at path and returns an Analytics over it.
func LoadAnalytics(ctx context.Context, path string, logger *slog.Logger) (*Analytics, error) {
	if logger == nil {
		logger = slog.Default()
	}

	start := time.Now()
	logger.Info("loading dataset", "filename", path)

	table, err := dataset.LoadFile(ctx, path)
	if err != nil {
		var loadErr *dataset.LoadError
		if errors.As(err, &loadErr) && loadErr.Column != "" {
			logger.Error("dataset rejected", "column", loadErr.Column, "line", loadErr.Line, "error", err)
		}
		return nil, err
	}

	duration := time.Since(start)
	logger.Info("dataset loaded",
		"records", table.Len(),
		"duration", duration,
		"rate", fmt.Sprintf("%.0f records/sec", float64(table.Len())/duration.Seconds()))

	return NewAnalytics(table, logger), nil
}

func (a *Analytics) Table() *dataset.Table {
	return a.table
}

func (a *Analytics) Options() models.FilterOptions {
	return a.table.Options()
}

// DefaultSelection selects every label present in the table.
func (a *Analytics) DefaultSelection() models.Selection {
	return models.SelectAll(a.table.Options())
}

// Run filters the table with sel and, when any rows remain, aggregates them.
// An empty result is not an error.
func (a *Analytics) Run(ctx context.Context, sel models.Selection) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a.runs.Add(1)

	ctx, span := observability.StartSpan(ctx, "report.filter")
	rows := report.Filter(a.table.Rows(), sel)
	span.SetTag("rows_in", strconv.Itoa(a.table.Len()))
	span.SetTag("rows_out", strconv.Itoa(len(rows)))
	span.Finish(a.logger)

	result := &Result{
		Selection: sel,
		Rows:      rows,
	}

	if result.Empty() {
		a.emptyResults.Add(1)
		a.logger.Debug("filters matched no rows", "request_id", observability.GetRequestID(ctx))
		return result, nil
	}

	_, span = observability.StartSpan(ctx, "report.aggregate")
	summary, err := report.Aggregate(rows)
	if err != nil {
		span.SetError(err)
		span.Finish(a.logger)
		return nil, fmt.Errorf("aggregate: %w", err)
	}
	span.Finish(a.logger)

	result.Summary = summary
	return result, nil
}

// Stats describes the loaded table and how often it has been queried.
func (a *Analytics) Stats() map[string]any {
	opts := a.table.Options()
	return map[string]any{
		"rows":            a.table.Len(),
		"source":          a.table.Source(),
		"loaded_at":       a.table.LoadedAt(),
		"months":          len(opts.Months),
		"categories":      len(opts.Categories),
		"customer_types":  len(opts.CustomerTypes),
		"payment_methods": len(opts.PaymentMethods),
		"runs":            a.runs.Load(),
		"empty_results":   a.emptyResults.Load(),
	}
}
