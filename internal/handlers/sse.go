package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"supermarket-dashboard/internal/charts"
	"supermarket-dashboard/internal/errors"
	"supermarket-dashboard/internal/models"
	"supermarket-dashboard/internal/services"
	"supermarket-dashboard/internal/ui/templates"
)

// View holds the presentation settings shared by the page and SSE handlers.
type View struct {
	Currency      string
	TableRowLimit int
}

type SSEHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
	view      View
}

func NewSSEHandlers(analytics *services.Analytics, logger *slog.Logger, view View) *SSEHandlers {
	return &SSEHandlers{
		analytics: analytics,
		logger:    logger,
		view:      view,
	}
}

// HandleReport re-runs the report for the posted filter signals and patches
// the warning, KPI cards, raw data table and the charts signal.
func (h *SSEHandlers) HandleReport(w http.ResponseWriter, r *http.Request) {
	var signals reportSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		errors.WriteError(w, r, h.logger, errors.BadRequestWrap(err, "Invalid filter signals"))
		return
	}

	sel := signals.selection(h.analytics.DefaultSelection())
	result, err := h.analytics.Run(r.Context(), sel)

	sse := datastar.NewSSE(w, r)
	if err != nil {
		h.logger.Error("run report", "error", err)
		_ = sse.ConsoleError(err)
		return
	}

	if err := h.patchReport(sse, result); err != nil {
		h.logger.Error("patch report", "error", err)
		_ = sse.ConsoleError(err)
		return
	}

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func (h *SSEHandlers) patchReport(sse *datastar.ServerSentEventGenerator, result *services.Result) error {
	var kpis *models.KPISet
	if result.Summary != nil {
		kpis = &result.Summary.KPIs
	}

	if err := sse.PatchElementTempl(templates.Warning(result.Warning())); err != nil {
		return fmt.Errorf("patch warning: %w", err)
	}
	if err := sse.PatchElementTempl(templates.KPIs(kpis, h.view.Currency)); err != nil {
		return fmt.Errorf("patch kpis: %w", err)
	}
	if err := sse.PatchElementTempl(templates.DataTable(result.Rows, h.view.TableRowLimit)); err != nil {
		return fmt.Errorf("patch table: %w", err)
	}

	chartSignals, err := json.Marshal(map[string]any{
		templates.ChartsSignal: charts.Build(result.Summary),
	})
	if err != nil {
		return fmt.Errorf("marshal charts: %w", err)
	}
	if err := sse.PatchSignals(chartSignals); err != nil {
		return fmt.Errorf("patch charts: %w", err)
	}
	return nil
}
