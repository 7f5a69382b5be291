package report

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supermarket-dashboard/internal/models"
	"supermarket-dashboard/internal/testutil"
)

var (
	testMonths    = []string{"Jan", "Feb", "Mar", "Apr"}
	testCats      = []string{"Food", "Drinks", "Household", "Toys", "Garden"}
	testCustomers = []string{"Member", "Normal"}
	testPayments  = []string{"Cash", "Card", "E-wallet"}
	testDays      = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
)

func randomRows(rng *rand.Rand, n int) []models.Row {
	rows := make([]models.Row, n)
	for i := range rows {
		rows[i] = models.Row{
			Month:         testMonths[rng.IntN(len(testMonths))],
			Category:      testCats[rng.IntN(len(testCats))],
			CustomerType:  testCustomers[rng.IntN(len(testCustomers))],
			PaymentMethod: testPayments[rng.IntN(len(testPayments))],
			DayOfWeek:     testDays[rng.IntN(len(testDays))],
			SalesAmount:   decimal.New(rng.Int64N(100000), -2),
			Profit:        decimal.New(rng.Int64N(20000)-5000, -2),
		}
	}
	return rows
}

// randomSubset picks each label with probability 1/2 and occasionally adds
// a label that never occurs in the data.
func randomSubset(rng *rand.Rand, labels []string) []string {
	var out []string
	for _, l := range labels {
		if rng.IntN(2) == 0 {
			out = append(out, l)
		}
	}
	if rng.IntN(4) == 0 {
		out = append(out, "unknown-label")
	}
	return out
}

func randomSelection(rng *rand.Rand) models.Selection {
	return models.Selection{
		Months:         randomSubset(rng, testMonths),
		Categories:     randomSubset(rng, testCats),
		CustomerTypes:  randomSubset(rng, testCustomers),
		PaymentMethods: randomSubset(rng, testPayments),
	}
}

func naiveFilter(rows []models.Row, sel models.Selection) []models.Row {
	out := []models.Row{}
	for _, r := range rows {
		if slices.Contains(sel.Months, r.Month) &&
			slices.Contains(sel.Categories, r.Category) &&
			slices.Contains(sel.CustomerTypes, r.CustomerType) &&
			slices.Contains(sel.PaymentMethods, r.PaymentMethod) {
			out = append(out, r)
		}
	}
	return out
}

func TestFilter_MatchesNaiveReference(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	rows := randomRows(rng, 500)

	for i := 0; i < 200; i++ {
		sel := randomSelection(rng)
		t.Run(fmt.Sprintf("selection_%d", i), func(t *testing.T) {
			assert.Equal(t, naiveFilter(rows, sel), Filter(rows, sel))
		})
	}
}

func TestFilter_Idempotent(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	rows := randomRows(rng, 300)

	for i := 0; i < 50; i++ {
		sel := randomSelection(rng)
		once := Filter(rows, sel)
		assert.Equal(t, once, Filter(once, sel))
	}
}

func TestFilter_AllSelectedKeepsEverything(t *testing.T) {
	rows := testutil.ScenarioRows()
	sel := models.SelectAll(models.FilterOptions{
		Months:         []string{"Jan"},
		Categories:     []string{"Food"},
		CustomerTypes:  []string{"Member"},
		PaymentMethods: []string{"Cash", "Card"},
	})

	assert.Equal(t, rows, Filter(rows, sel))
}

func TestFilter_EmptyResults(t *testing.T) {
	rows := testutil.ScenarioRows()
	all := models.Selection{
		Months:         []string{"Jan"},
		Categories:     []string{"Food"},
		CustomerTypes:  []string{"Member"},
		PaymentMethods: []string{"Cash", "Card"},
	}

	tests := []struct {
		name   string
		modify func(s *models.Selection)
	}{
		{"no months", func(s *models.Selection) { s.Months = nil }},
		{"empty categories", func(s *models.Selection) { s.Categories = []string{} }},
		{"food excluded", func(s *models.Selection) { s.Categories = []string{"Drinks"} }},
		{"unknown customer type only", func(s *models.Selection) { s.CustomerTypes = []string{"VIP"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := all
			tt.modify(&sel)

			got := Filter(rows, sel)
			require.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestFilter_PreservesOrderAndInput(t *testing.T) {
	rows := []models.Row{
		testutil.Row("Feb", "Food", "Member", "Cash", "Mon", "1", "0"),
		testutil.Row("Jan", "Drinks", "Member", "Cash", "Mon", "2", "0"),
		testutil.Row("Jan", "Food", "Member", "Cash", "Mon", "3", "0"),
	}
	before := slices.Clone(rows)

	got := Filter(rows, models.Selection{
		Months:         []string{"Jan", "Feb"},
		Categories:     []string{"Food"},
		CustomerTypes:  []string{"Member"},
		PaymentMethods: []string{"Cash"},
	})

	require.Len(t, got, 2)
	assert.Equal(t, "Feb", got[0].Month)
	assert.Equal(t, "Jan", got[1].Month)
	assert.Equal(t, before, rows)

	got[0].Category = "changed"
	assert.Equal(t, "Food", rows[0].Category)
}
