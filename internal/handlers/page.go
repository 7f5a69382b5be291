package handlers

import (
	"log/slog"
	"net/http"

	"supermarket-dashboard/internal/charts"
	"supermarket-dashboard/internal/errors"
	"supermarket-dashboard/internal/models"
	"supermarket-dashboard/internal/services"
	"supermarket-dashboard/internal/ui/templates"
)

type PageHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
	view      View
}

func NewPageHandlers(analytics *services.Analytics, logger *slog.Logger, view View) *PageHandlers {
	return &PageHandlers{
		analytics: analytics,
		logger:    logger,
		view:      view,
	}
}

// HandleDashboard renders the full page with every filter value selected.
func (h *PageHandlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	sel := h.analytics.DefaultSelection()

	result, err := h.analytics.Run(r.Context(), sel)
	if err != nil {
		errors.WriteError(w, r, h.logger, errors.InternalWrap(err, "Failed to build dashboard"))
		return
	}

	var kpis *models.KPISet
	if result.Summary != nil {
		kpis = &result.Summary.KPIs
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", noStore)

	page := templates.Dashboard(templates.DashboardData{
		Currency:      h.view.Currency,
		Options:       h.analytics.Options(),
		Selection:     sel,
		Warning:       result.Warning(),
		KPIs:          kpis,
		Rows:          result.Rows,
		Charts:        charts.Build(result.Summary),
		TableRowLimit: h.view.TableRowLimit,
	})
	if err := page.Render(r.Context(), w); err != nil {
		h.logger.Error("render dashboard", "error", err)
	}
}
