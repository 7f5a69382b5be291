package templates

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supermarket-dashboard/internal/charts"
	"supermarket-dashboard/internal/models"
	"supermarket-dashboard/internal/report"
	"supermarket-dashboard/internal/testutil"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, c.Render(context.Background(), &b))
	return b.String()
}

func TestWarning(t *testing.T) {
	assert.Equal(t, `<div id="warning" class="warning" hidden></div>`, renderString(t, Warning("")))

	html := renderString(t, Warning("No data & nothing"))
	assert.Contains(t, html, `id="warning"`)
	assert.Contains(t, html, "No data &amp; nothing")
	assert.NotContains(t, html, "hidden")
}

func TestKPIs(t *testing.T) {
	summary, err := report.Aggregate(testutil.ScenarioRows())
	require.NoError(t, err)

	html := renderString(t, KPIs(&summary.KPIs, "AED"))

	for _, want := range []string{
		`id="kpis"`,
		"Total Sales", "AED 150.00",
		"Total Profit", "AED 15.00",
		"Avg. Sale per Transaction", "AED 75.00",
		"Profit Margin", "10.00%",
	} {
		assert.Contains(t, html, want)
	}

	assert.Equal(t, `<section id="kpis" class="kpis"></section>`, renderString(t, KPIs(nil, "AED")))
}

func TestDataTable(t *testing.T) {
	rows := []models.Row{
		testutil.Row("Jan", "Food <b>", "Member", "Cash", "Mon", "1234.5", "20"),
		testutil.Row("Feb", "Drinks", "Normal", "Card", "Sun", "80", "-12"),
	}

	t.Run("all rows", func(t *testing.T) {
		html := renderString(t, DataTable(rows, 0))
		assert.Contains(t, html, `id="raw-data"`)
		assert.Contains(t, html, "Food &lt;b&gt;")
		assert.Contains(t, html, "1,234.50")
		assert.Contains(t, html, "-12.00")
		assert.Equal(t, 2, strings.Count(html, "<tr><td>"))
		assert.NotContains(t, html, "Showing first")
	})

	t.Run("row limit", func(t *testing.T) {
		html := renderString(t, DataTable(rows, 1))
		assert.Equal(t, 1, strings.Count(html, "<tr><td>"))
		assert.Contains(t, html, "Showing first 1 of 2 rows")
	})

	t.Run("no rows", func(t *testing.T) {
		assert.Equal(t, `<div id="raw-data" class="raw-data"></div>`, renderString(t, DataTable(nil, 0)))
	})
}

func TestFilters(t *testing.T) {
	options := models.FilterOptions{
		Months:         []string{"Jan", "Feb"},
		Categories:     []string{"Food"},
		CustomerTypes:  []string{"Member"},
		PaymentMethods: []string{"Cash"},
	}
	selection := models.Selection{Months: []string{"Feb"}}

	html := renderString(t, Filters(options, selection))

	assert.Contains(t, html, "<h2>Filters</h2>")
	assert.Contains(t, html, `@post('/sse/report')`)
	assert.Contains(t, html, `data-bind:months value="Jan">`)
	assert.Contains(t, html, `data-bind:months value="Feb" checked>`)
	assert.Contains(t, html, `data-bind:customerTypes value="Member">`)
	assert.Contains(t, html, "<legend>Select Payment Method</legend>")
	assert.Contains(t, html, "<span>Feb</span>")
}

func TestDashboard(t *testing.T) {
	rows := testutil.ScenarioRows()
	summary, err := report.Aggregate(rows)
	require.NoError(t, err)

	options := models.FilterOptions{
		Months:         []string{"Jan"},
		Categories:     []string{"Food"},
		CustomerTypes:  []string{"Member"},
		PaymentMethods: []string{"Cash", "Card"},
	}

	html := renderString(t, Dashboard(DashboardData{
		Currency:  "AED",
		Options:   options,
		Selection: models.SelectAll(options),
		KPIs:      &summary.KPIs,
		Rows:      rows,
		Charts:    charts.Build(summary),
	}))

	for _, want := range []string{
		"<!doctype html>",
		"<title>Supermarket Sales &amp; Profit Dashboard</title>",
		"data-signals=",
		"&#34;customerTypes&#34;",
		"&#34;_charts&#34;:[{&#34;id&#34;:&#34;chart-monthly&#34;",
		"View Raw Data",
		`id="kpis"`,
		`id="raw-data"`,
		`id="warning"`,
		"renderCharts($_charts)",
		"chart.umd.min.js",
		"datastar.js",
	} {
		assert.Contains(t, html, want)
	}
	for _, id := range charts.IDs {
		assert.Contains(t, html, `<canvas id="`+id+`">`)
	}
}

func TestSignalsJSON(t *testing.T) {
	summary, err := report.Aggregate(testutil.ScenarioRows())
	require.NoError(t, err)

	t.Run("charts stay local", func(t *testing.T) {
		raw := signalsJSON(DashboardData{
			Selection: models.Selection{Months: []string{"Jan"}},
			Charts:    charts.Build(summary),
		})

		var decoded map[string]json.RawMessage
		require.NoError(t, json.Unmarshal([]byte(raw), &decoded))
		assert.Contains(t, decoded, ChartsSignal)
		assert.NotContains(t, decoded, "charts")
		assert.JSONEq(t, `["Jan"]`, string(decoded["months"]))
	})

	t.Run("nil selection encodes empty sets", func(t *testing.T) {
		assert.JSONEq(t,
			`{"months":[],"categories":[],"customerTypes":[],"paymentMethods":[],"_charts":[]}`,
			signalsJSON(DashboardData{}))
	})
}

func TestDataTable_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var b strings.Builder
	err := DataTable(testutil.ScenarioRows(), 0).Render(ctx, &b)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, b.String())
}
