package format

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"75", "75.00"},
		{"1234.5", "1,234.50"},
		{"1234567.891", "1,234,567.89"},
		{"-5", "-5.00"},
		{"0.005", "0.01"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Amount(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestCurrency(t *testing.T) {
	assert.Equal(t, "AED 1,234.50", Currency(decimal.RequireFromString("1234.5"), "AED"))
	assert.Equal(t, "USD -5.00", Currency(decimal.NewFromInt(-5), "USD"))
	assert.Equal(t, "150.00", Currency(decimal.NewFromInt(150), ""))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "10.00%", Percent(decimal.NewFromInt(10)))
	assert.Equal(t, "33.33%", Percent(decimal.NewFromInt(100).Div(decimal.NewFromInt(3))))
	assert.Equal(t, "0.00%", Percent(decimal.Zero))
}

func TestFloat(t *testing.T) {
	assert.InDelta(t, 33.33, Float(decimal.NewFromInt(100).Div(decimal.NewFromInt(3))), 1e-9)
}
