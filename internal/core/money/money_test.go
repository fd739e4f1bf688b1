package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name      string
		qty       string
		price     string
		rate      string
		inclusive bool
		want      string
	}{
		{"no tax flag means base only", "10", "250", "16", false, "2500"},
		{"zero rate means base only even when inclusive", "10", "250", "0", true, "2500"},
		{"inclusive with positive rate adds tax", "10", "250", "16", true, "2900"},
		{"fractional quantity", "2.5", "100", "16", true, "290"},
		{"zero quantity", "0", "999", "16", true, "0"},
		{"negative rate treated as no tax", "10", "250", "-5", true, "2500"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LineTotal(d(tt.qty), d(tt.price), d(tt.rate), tt.inclusive)
			assert.True(t, got.Equal(d(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestTaxAmount(t *testing.T) {
	// tax + base must always reconstruct the line total
	qty, price, rate := d("7"), d("133.33"), d("16")
	tax := TaxAmount(qty, price, rate, true)
	total := LineTotal(qty, price, rate, true)
	assert.True(t, Base(qty, price).Add(tax).Equal(total))

	assert.True(t, TaxAmount(qty, price, rate, false).IsZero())
	assert.True(t, TaxAmount(qty, price, decimal.Zero, true).IsZero())
}

func TestDecimalAccumulationDoesNotDrift(t *testing.T) {
	// summing 0.1 ten thousand times must be exactly 1000
	tenth := d("0.1")
	sum := decimal.Zero
	for i := 0; i < 10000; i++ {
		sum = sum.Add(tenth)
	}
	assert.True(t, sum.Equal(d("1000")))
}

func TestFormatter(t *testing.T) {
	tests := []struct {
		code string
		in   string
		want string
	}{
		{"KES", "1234567.89", "KSh 1,234,567.89"},
		{"KES", "0", "KSh 0.00"},
		{"USD", "1200", "$1,200.00"},
		{"EUR", "999.5", "€999.50"},
		{"XAF", "50", "XAF 50.00"},
		{"kes", "-42.1", "-KSh 42.10"},
	}
	for _, tt := range tests {
		t.Run(tt.code+"_"+tt.in, func(t *testing.T) {
			f := NewFormatter(tt.code)
			assert.Equal(t, tt.want, f.Format(d(tt.in)))
		})
	}
}

func TestFormatterWithCatalogData(t *testing.T) {
	f := NewFormatterWith("Ksh. ", 0)
	assert.Equal(t, "Ksh. 12,000", f.Format(d("12000")))
}
