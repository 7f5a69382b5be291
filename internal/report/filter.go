// Package report holds the filter and aggregation logic behind the dashboard.
// Both operations are pure: they never modify their input and always return
// freshly allocated results.
package report

import "supermarket-dashboard/internal/models"

// Filter returns the rows whose Month, Category, CustomerType and
// PaymentMethod are all in the selection, in input order.
// An empty set in the selection matches nothing; labels that do not occur
// in rows are ignored.
func Filter(rows []models.Row, sel models.Selection) []models.Row {
	months := toSet(sel.Months)
	categories := toSet(sel.Categories)
	customers := toSet(sel.CustomerTypes)
	payments := toSet(sel.PaymentMethods)

	out := make([]models.Row, 0)
	for _, r := range rows {
		if !months[r.Month] || !categories[r.Category] || !customers[r.CustomerType] || !payments[r.PaymentMethod] {
			continue
		}
		out = append(out, r)
	}
	return out
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
