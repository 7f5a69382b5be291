package report

import (
	"errors"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"supermarket-dashboard/internal/models"
)

const (
	TopSalesLimit  = 10
	TopMarginLimit = 15
)

// ErrNoRows is returned by Aggregate when called with an empty table.
// Callers are expected to check for emptiness first and show a warning instead.
var ErrNoRows = errors.New("aggregate: no rows")

var hundred = decimal.NewFromInt(100)

// Aggregate computes the KPIs and grouped summaries of a non-empty filtered table.
func Aggregate(rows []models.Row) (*models.Summary, error) {
	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	categories := categoryTotals(rows)

	return &models.Summary{
		KPIs:                  kpis(rows),
		Monthly:               groupTotals(rows, func(r models.Row) string { return r.Month }, models.CompareMonths),
		Categories:            categories,
		TopCategoriesBySales:  topCategories(categories, TopSalesLimit, func(c models.CategoryTotal) decimal.Decimal { return c.SalesAmount }),
		TopCategoriesByMargin: topCategories(categories, TopMarginLimit, func(c models.CategoryTotal) decimal.Decimal { return c.ProfitMarginPercent }),
		DayOfWeek:             groupTotals(rows, func(r models.Row) string { return r.DayOfWeek }, models.CompareWeekdays),
	}, nil
}

func kpis(rows []models.Row) models.KPISet {
	sales := decimal.Zero
	profit := decimal.Zero
	for _, r := range rows {
		sales = sales.Add(r.SalesAmount)
		profit = profit.Add(r.Profit)
	}

	return models.KPISet{
		TotalSales:            sales,
		TotalProfit:           profit,
		AvgSalePerTransaction: sales.Div(decimal.NewFromInt(int64(len(rows)))),
		ProfitMarginPercent:   MarginPercent(profit, sales),
		Transactions:          len(rows),
	}
}

// MarginPercent returns 100 * profit / sales, or zero when sales is not positive.
func MarginPercent(profit, sales decimal.Decimal) decimal.Decimal {
	if !sales.IsPositive() {
		return decimal.Zero
	}
	return profit.Mul(hundred).Div(sales)
}

// groupTotals sums SalesAmount and Profit per distinct key and orders the
// groups with compare.
func groupTotals(rows []models.Row, key func(models.Row) string, compare func(a, b string) int) []models.GroupTotal {
	groups := make(map[string]*models.GroupTotal)
	for _, r := range rows {
		k := key(r)
		g, ok := groups[k]
		if !ok {
			g = &models.GroupTotal{Key: k, SalesAmount: decimal.Zero, Profit: decimal.Zero}
			groups[k] = g
		}
		g.SalesAmount = g.SalesAmount.Add(r.SalesAmount)
		g.Profit = g.Profit.Add(r.Profit)
		g.Transactions++
	}

	result := make([]models.GroupTotal, 0, len(groups))
	for _, g := range groups {
		result = append(result, *g)
	}
	slices.SortFunc(result, func(a, b models.GroupTotal) int {
		return compare(a.Key, b.Key)
	})
	return result
}

// categoryTotals groups by category in ascending label order and adds the
// per-category profit margin.
func categoryTotals(rows []models.Row) []models.CategoryTotal {
	groups := groupTotals(rows, func(r models.Row) string { return r.Category }, strings.Compare)

	result := make([]models.CategoryTotal, 0, len(groups))
	for _, g := range groups {
		result = append(result, models.CategoryTotal{
			Category:            g.Key,
			SalesAmount:         g.SalesAmount,
			Profit:              g.Profit,
			ProfitMarginPercent: MarginPercent(g.Profit, g.SalesAmount),
		})
	}
	return result
}

// topCategories sorts a copy of categories by value, largest first, and keeps
// at most limit entries. Equal values keep their grouping order.
func topCategories(categories []models.CategoryTotal, limit int, value func(models.CategoryTotal) decimal.Decimal) []models.CategoryTotal {
	sorted := slices.Clone(categories)
	slices.SortStableFunc(sorted, func(a, b models.CategoryTotal) int {
		return value(b).Cmp(value(a))
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
