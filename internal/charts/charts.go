// Package charts turns a report summary into chart descriptions the page
// draws with Chart.js.
package charts

import (
	"github.com/shopspring/decimal"

	"supermarket-dashboard/internal/format"
	"supermarket-dashboard/internal/models"
)

type Kind string

const (
	KindBar  Kind = "bar"
	KindPie  Kind = "pie"
	KindLine Kind = "line"
)

const (
	IDMonthly        = "chart-monthly"
	IDTopSales       = "chart-top-sales"
	IDProfitShare    = "chart-profit-share"
	IDTopMargin      = "chart-top-margin"
	IDDayOfWeek      = "chart-day-of-week"
	seriesSales      = "SalesAmount"
	seriesProfit     = "Profit"
	seriesMargin     = "ProfitMarginPercent"
	colorScaleSeries = "Profit"
)

type Series struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// Chart is one chart on the page. When ColorValues is set, bars are shaded
// by those values rather than by series.
type Chart struct {
	ID          string    `json:"id"`
	Kind        Kind      `json:"kind"`
	Title       string    `json:"title"`
	XLabel      string    `json:"xLabel,omitempty"`
	YLabel      string    `json:"yLabel,omitempty"`
	Labels      []string  `json:"labels"`
	Series      []Series  `json:"series"`
	ColorBy     string    `json:"colorBy,omitempty"`
	ColorValues []float64 `json:"colorValues,omitempty"`
}

// IDs lists the chart canvases in page order.
var IDs = []string{IDMonthly, IDTopSales, IDProfitShare, IDTopMargin, IDDayOfWeek}

// Build returns the five dashboard charts for s. A nil summary yields no charts.
func Build(s *models.Summary) []Chart {
	if s == nil {
		return []Chart{}
	}
	return []Chart{
		Monthly(s.Monthly),
		TopSales(s.TopCategoriesBySales),
		ProfitShare(s.Categories),
		TopMargin(s.TopCategoriesByMargin),
		DayOfWeek(s.DayOfWeek),
	}
}

// Monthly is a grouped bar chart of sales and profit per month.
func Monthly(groups []models.GroupTotal) Chart {
	labels, sales, profit := groupValues(groups)
	return Chart{
		ID:     IDMonthly,
		Kind:   KindBar,
		Title:  "Monthly Sales & Profit",
		XLabel: "Month",
		YLabel: "Amount",
		Labels: labels,
		Series: []Series{
			{Name: seriesSales, Values: sales},
			{Name: seriesProfit, Values: profit},
		},
	}
}

func TopSales(categories []models.CategoryTotal) Chart {
	labels, sales := categoryValues(categories, func(c models.CategoryTotal) decimal.Decimal { return c.SalesAmount })
	_, profit := categoryValues(categories, func(c models.CategoryTotal) decimal.Decimal { return c.Profit })
	return Chart{
		ID:          IDTopSales,
		Kind:        KindBar,
		Title:       "Top 10 Categories by Sales",
		XLabel:      "Category",
		YLabel:      seriesSales,
		Labels:      labels,
		Series:      []Series{{Name: seriesSales, Values: sales}},
		ColorBy:     colorScaleSeries,
		ColorValues: profit,
	}
}

// ProfitShare is a pie of each category's profit.
func ProfitShare(categories []models.CategoryTotal) Chart {
	labels, profit := categoryValues(categories, func(c models.CategoryTotal) decimal.Decimal { return c.Profit })
	return Chart{
		ID:     IDProfitShare,
		Kind:   KindPie,
		Title:  "Profit Contribution by Category",
		Labels: labels,
		Series: []Series{{Name: seriesProfit, Values: profit}},
	}
}

func TopMargin(categories []models.CategoryTotal) Chart {
	labels, margin := categoryValues(categories, func(c models.CategoryTotal) decimal.Decimal { return c.ProfitMarginPercent })
	return Chart{
		ID:     IDTopMargin,
		Kind:   KindBar,
		Title:  "Top Categories by Profit Margin",
		XLabel: "Category",
		YLabel: "Profit Margin (%)",
		Labels: labels,
		Series: []Series{{Name: seriesMargin, Values: margin}},
	}
}

func DayOfWeek(groups []models.GroupTotal) Chart {
	labels, sales, _ := groupValues(groups)
	return Chart{
		ID:     IDDayOfWeek,
		Kind:   KindLine,
		Title:  "Sales by Day of Week",
		XLabel: "Day of Week",
		YLabel: seriesSales,
		Labels: labels,
		Series: []Series{{Name: seriesSales, Values: sales}},
	}
}

func groupValues(groups []models.GroupTotal) (labels []string, sales, profit []float64) {
	labels = make([]string, len(groups))
	sales = make([]float64, len(groups))
	profit = make([]float64, len(groups))
	for i, g := range groups {
		labels[i] = g.Key
		sales[i] = format.Float(g.SalesAmount)
		profit[i] = format.Float(g.Profit)
	}
	return labels, sales, profit
}

func categoryValues(categories []models.CategoryTotal, value func(models.CategoryTotal) decimal.Decimal) ([]string, []float64) {
	labels := make([]string, len(categories))
	values := make([]float64, len(categories))
	for i, c := range categories {
		labels[i] = c.Category
		values[i] = format.Float(value(c))
	}
	return labels, values
}
