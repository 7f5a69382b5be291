package models

import "github.com/shopspring/decimal"

// Row is one sales transaction.
type Row struct {
	Month         string          `json:"month"`
	Category      string          `json:"category"`
	CustomerType  string          `json:"customer_type"`
	PaymentMethod string          `json:"payment_method"`
	DayOfWeek     string          `json:"day_of_week"`
	SalesAmount   decimal.Decimal `json:"sales_amount"`
	Profit        decimal.Decimal `json:"profit"`
}

// Selection holds the allowed labels for each filterable dimension.
// A row passes when all four of its labels are in the corresponding set.
type Selection struct {
	Months         []string `json:"months"`
	Categories     []string `json:"categories"`
	CustomerTypes  []string `json:"customer_types"`
	PaymentMethods []string `json:"payment_methods"`
}

// FilterOptions lists the distinct labels present in a table, in display order.
type FilterOptions struct {
	Months         []string `json:"months"`
	Categories     []string `json:"categories"`
	CustomerTypes  []string `json:"customer_types"`
	PaymentMethods []string `json:"payment_methods"`
}

// SelectAll returns a selection with every option selected.
func SelectAll(opts FilterOptions) Selection {
	return Selection{
		Months:         clone(opts.Months),
		Categories:     clone(opts.Categories),
		CustomerTypes:  clone(opts.CustomerTypes),
		PaymentMethods: clone(opts.PaymentMethods),
	}
}

func clone(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// KPISet holds the four headline figures plus the transaction count behind them.
type KPISet struct {
	TotalSales            decimal.Decimal `json:"total_sales"`
	TotalProfit           decimal.Decimal `json:"total_profit"`
	AvgSalePerTransaction decimal.Decimal `json:"avg_sale_per_transaction"`
	ProfitMarginPercent   decimal.Decimal `json:"profit_margin_percent"`
	Transactions          int             `json:"transactions"`
}

// GroupTotal is the SalesAmount and Profit sum for one value of a grouping column.
type GroupTotal struct {
	Key          string          `json:"key"`
	SalesAmount  decimal.Decimal `json:"sales_amount"`
	Profit       decimal.Decimal `json:"profit"`
	Transactions int             `json:"transactions"`
}

// CategoryTotal is one category's sums and its profit margin.
type CategoryTotal struct {
	Category            string          `json:"category"`
	SalesAmount         decimal.Decimal `json:"sales_amount"`
	Profit              decimal.Decimal `json:"profit"`
	ProfitMarginPercent decimal.Decimal `json:"profit_margin_percent"`
}

// Summary is everything the dashboard shows for one filtered table.
type Summary struct {
	KPIs                  KPISet          `json:"kpis"`
	Monthly               []GroupTotal    `json:"monthly"`
	Categories            []CategoryTotal `json:"categories"`
	TopCategoriesBySales  []CategoryTotal `json:"top_categories_by_sales"`
	TopCategoriesByMargin []CategoryTotal `json:"top_categories_by_margin"`
	DayOfWeek             []GroupTotal    `json:"day_of_week"`
}
