// Package money provides pure monetary arithmetic for document line items.
// All computation uses decimal.Decimal so repeated sums never drift the way
// float64 accumulation does.
package money

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Base returns quantity × unitPrice with full precision.
func Base(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitPrice)
}

// TaxAmount returns the tax portion of a line.
//
// Tax applies only when the line is marked tax-inclusive AND the rate is
// positive. A non-inclusive line yields zero tax regardless of its rate —
// this reproduces the observed billing behavior and is part of the contract.
func TaxAmount(quantity, unitPrice, taxRatePercent decimal.Decimal, taxInclusive bool) decimal.Decimal {
	if !taxInclusive || !taxRatePercent.IsPositive() {
		return decimal.Zero
	}
	return Base(quantity, unitPrice).Mul(taxRatePercent).Div(hundred)
}

// LineTotal returns the full line amount: base plus tax when tax applies.
//
// Note the tax is folded INTO the line total. Document grand totals are the
// sum of line totals plus labor; the tax figure is reported separately for
// breakdowns but never added again on top.
func LineTotal(quantity, unitPrice, taxRatePercent decimal.Decimal, taxInclusive bool) decimal.Decimal {
	return Base(quantity, unitPrice).Add(TaxAmount(quantity, unitPrice, taxRatePercent, taxInclusive))
}
