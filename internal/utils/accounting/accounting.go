package accounting

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Round2 rounds a money amount to two decimal places. Every tax component
// is rounded independently before summing, which is the documented source
// of the +/-0.01 document-total drift.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Percent applies a percentage rate to a base amount, rounded to 2dp.
func Percent(base, rate decimal.Decimal) decimal.Decimal {
	return Round2(base.Mul(rate).Div(hundred))
}

// SafeDiv divides a by b, returning zero when b is zero. Ratio reports use
// this so an empty balance sheet yields zero ratios rather than a panic.
func SafeDiv(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.Div(b).Round(4)
}

// SafePercent returns a/b*100 rounded to 2dp, zero when b is zero.
func SafePercent(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.Mul(hundred).Div(b).Round(2)
}
