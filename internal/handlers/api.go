package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"supermarket-dashboard/internal/charts"
	"supermarket-dashboard/internal/errors"
	"supermarket-dashboard/internal/models"
	"supermarket-dashboard/internal/services"
)

const (
	cacheMaxAge = "public, max-age=300"
	noStore     = "no-store"
)

// Version is reported by the health endpoint and the version command.
var Version = "1.0.0"

type APIHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
	currency  string
}

func NewAPIHandlers(analytics *services.Analytics, logger *slog.Logger, currency string) *APIHandlers {
	return &APIHandlers{
		analytics: analytics,
		logger:    logger,
		currency:  currency,
	}
}

type ReportResponse struct {
	Selection models.Selection `json:"selection"`
	RowCount  int              `json:"row_count"`
	Empty     bool             `json:"empty"`
	Warning   string           `json:"warning,omitempty"`
	Currency  string           `json:"currency"`
	Summary   *models.Summary  `json:"summary"`
	Charts    []charts.Chart   `json:"charts"`
}

type RowsResponse struct {
	Selection models.Selection `json:"selection"`
	RowCount  int              `json:"row_count"`
	Rows      []models.Row     `json:"rows"`
}

func (h *APIHandlers) HandleOptions(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccessWithHeaders(w, h.logger, h.analytics.Options(), map[string]string{
		"Cache-Control": cacheMaxAge,
	})
}

func (h *APIHandlers) HandleReport(w http.ResponseWriter, r *http.Request) {
	sel := selectionFromQuery(r.URL.Query(), h.analytics.DefaultSelection())

	result, err := h.analytics.Run(r.Context(), sel)
	if err != nil {
		errors.WriteError(w, r, h.logger, errors.InternalWrap(err, "Failed to build report"))
		return
	}

	errors.WriteSuccessWithHeaders(w, h.logger, ReportResponse{
		Selection: result.Selection,
		RowCount:  len(result.Rows),
		Empty:     result.Empty(),
		Warning:   result.Warning(),
		Currency:  h.currency,
		Summary:   result.Summary,
		Charts:    charts.Build(result.Summary),
	}, map[string]string{
		"Cache-Control": noStore,
	})
}

// HandleRows returns the filtered table. The optional limit parameter caps
// the rows returned; row_count always reports the full match count.
func (h *APIHandlers) HandleRows(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			errors.WriteError(w, r, h.logger, errors.Validation("limit must be a non-negative integer").WithDetails(raw))
			return
		}
		limit = n
	}

	sel := selectionFromQuery(r.URL.Query(), h.analytics.DefaultSelection())
	result, err := h.analytics.Run(r.Context(), sel)
	if err != nil {
		errors.WriteError(w, r, h.logger, errors.InternalWrap(err, "Failed to filter rows"))
		return
	}

	rows := result.Rows
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	errors.WriteSuccessWithHeaders(w, h.logger, RowsResponse{
		Selection: result.Selection,
		RowCount:  len(result.Rows),
		Rows:      rows,
	}, map[string]string{
		"Cache-Control": noStore,
	})
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	healthData := map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   Version,
		"rows":      h.analytics.Table().Len(),
	}

	errors.WriteSuccess(w, h.logger, healthData)
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, h.logger, h.analytics.Stats())
}
