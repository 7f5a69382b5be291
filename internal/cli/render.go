package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/shopspring/decimal"

	"supermarket-dashboard/internal/format"
	"supermarket-dashboard/internal/models"
	"supermarket-dashboard/internal/services"
	"supermarket-dashboard/internal/ui/templates"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headingStyle = lipgloss.NewStyle().Bold(true).MarginTop(1)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
)

type section struct {
	title  string
	header table.Row
	rows   []table.Row
}

type reportRenderer struct {
	w        io.Writer
	format   string
	currency string
	rowLimit int
	showRows bool
}

type jsonReport struct {
	Selection models.Selection `json:"selection"`
	RowCount  int              `json:"row_count"`
	Empty     bool             `json:"empty"`
	Warning   string           `json:"warning,omitempty"`
	Currency  string           `json:"currency"`
	Summary   *models.Summary  `json:"summary"`
	Rows      []models.Row     `json:"rows,omitempty"`
}

func (r *reportRenderer) render(result *services.Result) error {
	if r.format == "json" {
		return r.renderJSON(result)
	}

	switch r.format {
	case "table":
		_, _ = fmt.Fprintln(r.w, titleStyle.Render(templates.Title))
	case "markdown":
		_, _ = fmt.Fprintf(r.w, "# %s\n\n", templates.Title)
	}

	if result.Empty() {
		return r.renderWarning(result.Warning())
	}

	for _, s := range r.sections(result) {
		r.renderSection(s)
	}

	if r.format == "table" {
		_, _ = fmt.Fprintln(r.w, mutedStyle.Render(fmt.Sprintf("(%d rows matched)", len(result.Rows))))
	}
	return nil
}

func (r *reportRenderer) renderJSON(result *services.Result) error {
	out := jsonReport{
		Selection: result.Selection,
		RowCount:  len(result.Rows),
		Empty:     result.Empty(),
		Warning:   result.Warning(),
		Currency:  r.currency,
		Summary:   result.Summary,
	}
	if r.showRows {
		out.Rows = r.limitRows(result.Rows)
	}

	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func (r *reportRenderer) renderWarning(msg string) error {
	switch r.format {
	case "table":
		_, _ = fmt.Fprintln(r.w, warningStyle.Render(msg))
	case "csv":
		_, _ = fmt.Fprintf(r.w, "# %s\n", msg)
	default:
		_, _ = fmt.Fprintf(r.w, "> %s\n", msg)
	}
	return nil
}

func (r *reportRenderer) renderSection(s section) {
	t := table.NewWriter()
	t.SetOutputMirror(r.w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(s.header)
	t.AppendRows(s.rows)

	switch r.format {
	case "markdown":
		_, _ = fmt.Fprintf(r.w, "\n## %s\n\n", s.title)
		t.RenderMarkdown()
	case "csv":
		_, _ = fmt.Fprintf(r.w, "# %s\n", s.title)
		t.RenderCSV()
	default:
		_, _ = fmt.Fprintln(r.w, headingStyle.Render(s.title))
		t.Render()
	}
}

func (r *reportRenderer) sections(result *services.Result) []section {
	s := result.Summary
	kpis := s.KPIs

	out := []section{
		{
			title:  "Key Metrics",
			header: table.Row{"Metric", "Value"},
			rows: []table.Row{
				{"Total Sales", r.money(kpis.TotalSales)},
				{"Total Profit", r.money(kpis.TotalProfit)},
				{"Avg. Sale per Transaction", r.money(kpis.AvgSalePerTransaction)},
				{"Profit Margin", r.percent(kpis.ProfitMarginPercent)},
				{"Transactions", strconv.Itoa(kpis.Transactions)},
			},
		},
		r.groupSection("Monthly Sales & Profit", "Month", s.Monthly),
		r.categorySection("Sales by Category", s.Categories),
		r.categorySection("Top 10 Categories by Sales", s.TopCategoriesBySales),
		r.categorySection("Top Categories by Profit Margin", s.TopCategoriesByMargin),
		r.groupSection("Sales by Day of Week", "DayOfWeek", s.DayOfWeek),
	}

	if r.showRows {
		out = append(out, r.rowSection(result.Rows))
	}
	return out
}

func (r *reportRenderer) groupSection(title, key string, groups []models.GroupTotal) section {
	s := section{
		title:  title,
		header: table.Row{key, "SalesAmount", "Profit", "Transactions"},
	}
	for _, g := range groups {
		s.rows = append(s.rows, table.Row{g.Key, r.money(g.SalesAmount), r.money(g.Profit), g.Transactions})
	}
	return s
}

func (r *reportRenderer) categorySection(title string, categories []models.CategoryTotal) section {
	s := section{
		title:  title,
		header: table.Row{"Category", "SalesAmount", "Profit", "ProfitMarginPercent"},
	}
	for _, c := range categories {
		s.rows = append(s.rows, table.Row{c.Category, r.money(c.SalesAmount), r.money(c.Profit), r.percent(c.ProfitMarginPercent)})
	}
	return s
}

func (r *reportRenderer) rowSection(rows []models.Row) section {
	shown := r.limitRows(rows)
	title := "Raw Data"
	if len(shown) < len(rows) {
		title = fmt.Sprintf("Raw Data (first %d of %d rows)", len(shown), len(rows))
	}

	s := section{
		title:  title,
		header: table.Row{"Month", "Category", "CustomerType", "PaymentMethod", "SalesAmount", "Profit", "DayOfWeek"},
	}
	for _, row := range shown {
		s.rows = append(s.rows, table.Row{
			row.Month, row.Category, row.CustomerType, row.PaymentMethod,
			r.amount(row.SalesAmount), r.amount(row.Profit), row.DayOfWeek,
		})
	}
	return s
}

func (r *reportRenderer) limitRows(rows []models.Row) []models.Row {
	if r.rowLimit > 0 && len(rows) > r.rowLimit {
		return rows[:r.rowLimit]
	}
	return rows
}

// CSV output keeps plain numbers so the file stays machine readable.
func (r *reportRenderer) money(d decimal.Decimal) string {
	if r.format == "csv" {
		return d.StringFixed(2)
	}
	return format.Currency(d, r.currency)
}

func (r *reportRenderer) amount(d decimal.Decimal) string {
	if r.format == "csv" {
		return d.StringFixed(2)
	}
	return format.Amount(d)
}

func (r *reportRenderer) percent(d decimal.Decimal) string {
	if r.format == "csv" {
		return d.StringFixed(2)
	}
	return format.Percent(d)
}
