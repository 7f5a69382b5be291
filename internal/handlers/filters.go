package handlers

import (
	"net/url"
	"slices"

	"supermarket-dashboard/internal/models"
)

// Query parameter names accepted by the JSON API.
const (
	ParamMonth         = "month"
	ParamCategory      = "category"
	ParamCustomerType  = "customer_type"
	ParamPaymentMethod = "payment_method"
)

// selectionFromQuery reads the four filter dimensions from repeated query
// parameters. A missing parameter selects every label; a parameter given
// only with empty values (?month=) selects none.
func selectionFromQuery(q url.Values, defaults models.Selection) models.Selection {
	return models.Selection{
		Months:         queryValues(q, ParamMonth, defaults.Months),
		Categories:     queryValues(q, ParamCategory, defaults.Categories),
		CustomerTypes:  queryValues(q, ParamCustomerType, defaults.CustomerTypes),
		PaymentMethods: queryValues(q, ParamPaymentMethod, defaults.PaymentMethods),
	}
}

func queryValues(q url.Values, key string, fallback []string) []string {
	values, ok := q[key]
	if !ok {
		return fallback
	}
	return slices.DeleteFunc(slices.Clone(values), func(v string) bool { return v == "" })
}

// reportSignals are the filter signals the page posts on every change.
// A signal that is absent selects every label; an empty array selects none.
type reportSignals struct {
	Months         []string `json:"months"`
	Categories     []string `json:"categories"`
	CustomerTypes  []string `json:"customerTypes"`
	PaymentMethods []string `json:"paymentMethods"`
}

func (s reportSignals) selection(defaults models.Selection) models.Selection {
	return models.Selection{
		Months:         orDefault(s.Months, defaults.Months),
		Categories:     orDefault(s.Categories, defaults.Categories),
		CustomerTypes:  orDefault(s.CustomerTypes, defaults.CustomerTypes),
		PaymentMethods: orDefault(s.PaymentMethods, defaults.PaymentMethods),
	}
}

func orDefault(values, fallback []string) []string {
	if values == nil {
		return fallback
	}
	return values
}
