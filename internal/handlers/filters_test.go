package handlers

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"supermarket-dashboard/internal/models"
)

var allSelected = models.Selection{
	Months:         []string{"Jan", "Feb"},
	Categories:     []string{"Food"},
	CustomerTypes:  []string{"Member"},
	PaymentMethods: []string{"Cash", "Card"},
}

func TestSelectionFromQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  models.Selection
	}{
		{
			name:  "no parameters selects everything",
			query: "",
			want:  allSelected,
		},
		{
			name:  "repeated parameter",
			query: "month=Jan&month=Mar",
			want: models.Selection{
				Months:         []string{"Jan", "Mar"},
				Categories:     allSelected.Categories,
				CustomerTypes:  allSelected.CustomerTypes,
				PaymentMethods: allSelected.PaymentMethods,
			},
		},
		{
			name:  "empty value selects nothing",
			query: "payment_method=",
			want: models.Selection{
				Months:         allSelected.Months,
				Categories:     allSelected.Categories,
				CustomerTypes:  allSelected.CustomerTypes,
				PaymentMethods: []string{},
			},
		},
		{
			name:  "labels are kept verbatim",
			query: "category=Fruits%2C+Vegetables&customer_type=member",
			want: models.Selection{
				Months:         allSelected.Months,
				Categories:     []string{"Fruits, Vegetables"},
				CustomerTypes:  []string{"member"},
				PaymentMethods: allSelected.PaymentMethods,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, selectionFromQuery(q, allSelected))
		})
	}
}

func TestReportSignalsSelection(t *testing.T) {
	signals := reportSignals{
		Months:     []string{"Feb"},
		Categories: []string{},
	}

	sel := signals.selection(allSelected)

	assert.Equal(t, []string{"Feb"}, sel.Months)
	assert.Equal(t, []string{}, sel.Categories)
	assert.Equal(t, allSelected.CustomerTypes, sel.CustomerTypes)
	assert.Equal(t, allSelected.PaymentMethods, sel.PaymentMethods)
}
