package gst

import "github.com/shopspring/decimal"

// Fixed formats an amount with exactly two fractional digits, rounding half
// away from zero. It is the only place monetary values are rounded.
func Fixed(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// Round2 rounds an amount to paise precision.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FixedInput formats an entered value with at least two fractional digits.
// Precision beyond paise is kept so stored inputs round-trip unchanged.
func FixedInput(d decimal.Decimal) string {
	places := int32(2)
	if exp := -d.Exponent(); exp > places {
		places = exp
	}
	return d.StringFixed(places)
}
