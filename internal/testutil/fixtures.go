package testutil

import (
	"github.com/shopspring/decimal"

	"supermarket-dashboard/internal/models"
)

// SalesCSV is a small dataset covering every dimension value used in tests.
const SalesCSV = `Month,Category,CustomerType,PaymentMethod,SalesAmount,Profit,DayOfWeek,Branch
Jan,Food,Member,Cash,100,20,Mon,A
Jan,Food,Member,Card,50,-5,Tue,A
Feb,Drinks,Normal,Cash,80,12,Sun,B
Feb,Household,Normal,E-wallet,40,8,Sat,B
Mar,Drinks,Member,Card,60,9,Mon,C
`

// Row builds a row with decimal amounts parsed from strings.
func Row(month, category, customer, payment, day, sales, profit string) models.Row {
	return models.Row{
		Month:         month,
		Category:      category,
		CustomerType:  customer,
		PaymentMethod: payment,
		DayOfWeek:     day,
		SalesAmount:   decimal.RequireFromString(sales),
		Profit:        decimal.RequireFromString(profit),
	}
}

// ScenarioRows are the two Food transactions whose totals are 150 sales and 15 profit.
func ScenarioRows() []models.Row {
	return []models.Row{
		Row("Jan", "Food", "Member", "Cash", "Mon", "100", "20"),
		Row("Jan", "Food", "Member", "Card", "Tue", "50", "-5"),
	}
}
