// Package templates holds the dashboard's templ components. The full page
// and the SSE fragments render through the same components.
//
//go:generate templ generate
package templates

import (
	"encoding/json"
	"slices"

	"supermarket-dashboard/internal/charts"
	"supermarket-dashboard/internal/format"
	"supermarket-dashboard/internal/models"
)

const (
	WarningID = "warning"
	KPIsID    = "kpis"
	RawDataID = "raw-data"

	Title      = "Supermarket Sales & Profit Dashboard"
	ReportPath = "/sse/report"

	// ChartsSignal is local to the browser, so @post never sends it back.
	ChartsSignal = "_charts"

	datastarJS = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js"
	chartJS    = "https://cdn.jsdelivr.net/npm/chart.js@4.4.1/dist/chart.umd.min.js"
)

// DashboardData is everything the full page needs.
type DashboardData struct {
	Currency  string
	Options   models.FilterOptions
	Selection models.Selection
	Warning   string
	// KPIs is nil when the selection matched no rows.
	KPIs          *models.KPISet
	Rows          []models.Row
	Charts        []charts.Chart
	TableRowLimit int
}

// Signals are the datastar signals the page starts with. Filter changes
// post the four filter sets back to ReportPath.
type Signals struct {
	Months         []string       `json:"months"`
	Categories     []string       `json:"categories"`
	CustomerTypes  []string       `json:"customerTypes"`
	PaymentMethods []string       `json:"paymentMethods"`
	Charts         []charts.Chart `json:"_charts"`
}

type filterGroup struct {
	title  string
	signal string
	values []string
	chosen []string
}

func (g filterGroup) bindAttr() string {
	return "data-bind:" + g.signal
}

func (g filterGroup) isChosen(v string) bool {
	return slices.Contains(g.chosen, v)
}

func filterGroups(options models.FilterOptions, selection models.Selection) []filterGroup {
	return []filterGroup{
		{"Select Month", "months", options.Months, selection.Months},
		{"Select Category", "categories", options.Categories, selection.Categories},
		{"Select Customer Type", "customerTypes", options.CustomerTypes, selection.CustomerTypes},
		{"Select Payment Method", "paymentMethods", options.PaymentMethods, selection.PaymentMethods},
	}
}

type kpiCard struct {
	label string
	value string
}

func kpiCards(kpis *models.KPISet, currency string) []kpiCard {
	return []kpiCard{
		{"Total Sales", format.Currency(kpis.TotalSales, currency)},
		{"Total Profit", format.Currency(kpis.TotalProfit, currency)},
		{"Avg. Sale per Transaction", format.Currency(kpis.AvgSalePerTransaction, currency)},
		{"Profit Margin", format.Percent(kpis.ProfitMarginPercent)},
	}
}

var tableHeaders = []string{"Month", "Category", "CustomerType", "PaymentMethod", "SalesAmount", "Profit", "DayOfWeek"}

// shownRows caps rows at limit; 0 shows all.
func shownRows(rows []models.Row, limit int) []models.Row {
	if limit > 0 && len(rows) > limit {
		return rows[:limit]
	}
	return rows
}

func signalsJSON(data DashboardData) string {
	b, err := json.Marshal(Signals{
		Months:         nonNil(data.Selection.Months),
		Categories:     nonNil(data.Selection.Categories),
		CustomerTypes:  nonNil(data.Selection.CustomerTypes),
		PaymentMethods: nonNil(data.Selection.PaymentMethods),
		Charts:         nonNil(data.Charts),
	})
	if err != nil {
		return "{}"
	}
	return string(b)
}

func nonNil[T any](values []T) []T {
	if values == nil {
		return []T{}
	}
	return values
}
