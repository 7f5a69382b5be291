package report

import (
	"math/rand/v2"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supermarket-dashboard/internal/models"
	"supermarket-dashboard/internal/testutil"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got.String())
}

func TestAggregate_Scenario(t *testing.T) {
	summary, err := Aggregate(testutil.ScenarioRows())
	require.NoError(t, err)

	assertDecimal(t, "150", summary.KPIs.TotalSales)
	assertDecimal(t, "15", summary.KPIs.TotalProfit)
	assertDecimal(t, "75", summary.KPIs.AvgSalePerTransaction)
	assertDecimal(t, "10", summary.KPIs.ProfitMarginPercent)
	assert.Equal(t, 2, summary.KPIs.Transactions)

	require.Len(t, summary.Monthly, 1)
	assert.Equal(t, "Jan", summary.Monthly[0].Key)
	assert.Equal(t, 2, summary.Monthly[0].Transactions)

	require.Len(t, summary.Categories, 1)
	assertDecimal(t, "10", summary.Categories[0].ProfitMarginPercent)

	require.Len(t, summary.DayOfWeek, 2)
	assert.Equal(t, "Mon", summary.DayOfWeek[0].Key)
	assert.Equal(t, "Tue", summary.DayOfWeek[1].Key)
}

func TestAggregate_EmptyInput(t *testing.T) {
	summary, err := Aggregate(nil)
	assert.ErrorIs(t, err, ErrNoRows)
	assert.Nil(t, summary)

	_, err = Aggregate([]models.Row{})
	assert.ErrorIs(t, err, ErrNoRows)
}

func TestAggregate_ZeroSales(t *testing.T) {
	rows := []models.Row{
		testutil.Row("Jan", "Free Samples", "Member", "Cash", "Mon", "0", "0"),
		testutil.Row("Jan", "Giveaways", "Member", "Cash", "Mon", "0", "-3"),
	}

	summary, err := Aggregate(rows)
	require.NoError(t, err)

	assertDecimal(t, "0", summary.KPIs.ProfitMarginPercent)
	for _, c := range summary.Categories {
		assert.True(t, c.ProfitMarginPercent.IsZero(), "category %s margin = %s", c.Category, c.ProfitMarginPercent)
	}
	assertDecimal(t, "0", summary.KPIs.AvgSalePerTransaction)
}

func TestAggregate_ZeroSalesCategoryAmongOthers(t *testing.T) {
	rows := []models.Row{
		testutil.Row("Jan", "Food", "Member", "Cash", "Mon", "200", "50"),
		testutil.Row("Jan", "Samples", "Member", "Cash", "Mon", "0", "0"),
	}

	summary, err := Aggregate(rows)
	require.NoError(t, err)

	require.Len(t, summary.Categories, 2)
	assert.Equal(t, "Food", summary.Categories[0].Category)
	assertDecimal(t, "25", summary.Categories[0].ProfitMarginPercent)
	assert.Equal(t, "Samples", summary.Categories[1].Category)
	assertDecimal(t, "0", summary.Categories[1].ProfitMarginPercent)
}

func TestAggregate_CrossSummaryConsistency(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 8))

	for i := 0; i < 50; i++ {
		rows := randomRows(rng, 1+rng.IntN(400))

		summary, err := Aggregate(rows)
		require.NoError(t, err)

		monthly := decimal.Zero
		monthlyProfit := decimal.Zero
		for _, m := range summary.Monthly {
			monthly = monthly.Add(m.SalesAmount)
			monthlyProfit = monthlyProfit.Add(m.Profit)
		}
		category := decimal.Zero
		for _, c := range summary.Categories {
			category = category.Add(c.SalesAmount)
		}
		daily := decimal.Zero
		for _, d := range summary.DayOfWeek {
			daily = daily.Add(d.SalesAmount)
		}

		assert.True(t, summary.KPIs.TotalSales.Equal(monthly))
		assert.True(t, summary.KPIs.TotalSales.Equal(category))
		assert.True(t, summary.KPIs.TotalSales.Equal(daily))
		assert.True(t, summary.KPIs.TotalProfit.Equal(monthlyProfit))
	}
}

func TestAggregate_TopCategories(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 10))
	var rows []models.Row
	for i := 0; i < 20; i++ {
		cat := string(rune('A' + i))
		for j := 0; j < 3; j++ {
			rows = append(rows, models.Row{
				Month:         "Jan",
				Category:      cat,
				CustomerType:  "Member",
				PaymentMethod: "Cash",
				DayOfWeek:     "Mon",
				SalesAmount:   decimal.New(1+rng.Int64N(10000), -2),
				Profit:        decimal.New(rng.Int64N(4000)-1000, -2),
			})
		}
	}

	summary, err := Aggregate(rows)
	require.NoError(t, err)
	require.Len(t, summary.Categories, 20)

	bySales := summary.TopCategoriesBySales
	assert.Len(t, bySales, TopSalesLimit)
	for i := 1; i < len(bySales); i++ {
		assert.True(t, bySales[i-1].SalesAmount.GreaterThanOrEqual(bySales[i].SalesAmount))
	}

	byMargin := summary.TopCategoriesByMargin
	assert.Len(t, byMargin, TopMarginLimit)
	for i := 1; i < len(byMargin); i++ {
		assert.True(t, byMargin[i-1].ProfitMarginPercent.GreaterThanOrEqual(byMargin[i].ProfitMarginPercent))
	}
}

func TestAggregate_TopCategoriesShortAndTied(t *testing.T) {
	rows := []models.Row{
		testutil.Row("Jan", "Drinks", "Member", "Cash", "Mon", "50", "5"),
		testutil.Row("Jan", "Bakery", "Member", "Cash", "Mon", "50", "5"),
		testutil.Row("Jan", "Cheese", "Member", "Cash", "Mon", "90", "9"),
	}

	summary, err := Aggregate(rows)
	require.NoError(t, err)

	names := func(cs []models.CategoryTotal) []string {
		out := make([]string, len(cs))
		for i, c := range cs {
			out[i] = c.Category
		}
		return out
	}

	assert.Equal(t, []string{"Bakery", "Cheese", "Drinks"}, names(summary.Categories))
	assert.Equal(t, []string{"Cheese", "Bakery", "Drinks"}, names(summary.TopCategoriesBySales))
	// every margin is 10%, so grouping order survives
	assert.Equal(t, []string{"Bakery", "Cheese", "Drinks"}, names(summary.TopCategoriesByMargin))
}

func TestAggregate_GroupOrdering(t *testing.T) {
	rows := []models.Row{
		testutil.Row("Mar", "Food", "Member", "Cash", "Sat", "1", "0"),
		testutil.Row("Jan", "Food", "Member", "Cash", "Wednesday", "1", "0"),
		testutil.Row("Feb", "Food", "Member", "Cash", "Sunday", "1", "0"),
		testutil.Row("Jan", "Food", "Member", "Cash", "Mon", "1", "0"),
	}

	summary, err := Aggregate(rows)
	require.NoError(t, err)

	var months, days []string
	for _, m := range summary.Monthly {
		months = append(months, m.Key)
	}
	for _, d := range summary.DayOfWeek {
		days = append(days, d.Key)
	}

	assert.Equal(t, []string{"Jan", "Feb", "Mar"}, months)
	assert.Equal(t, []string{"Sunday", "Mon", "Wednesday", "Sat"}, days)
}

func TestMarginPercent(t *testing.T) {
	assertDecimal(t, "0", MarginPercent(dec("5"), dec("0")))
	assertDecimal(t, "0", MarginPercent(dec("5"), dec("-10")))
	assertDecimal(t, "-20", MarginPercent(dec("-2"), dec("10")))
	assertDecimal(t, "12.5", MarginPercent(dec("1"), dec("8")))
}
