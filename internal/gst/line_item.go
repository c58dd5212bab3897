package gst

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	hundred    = decimal.NewFromInt(100)
	two        = decimal.NewFromInt(2)
	hsnPattern = regexp.MustCompile(`^[0-9A-Za-z]{4,8}$`)
)

// Rate wraps a GST percentage for use in LineItem.GSTRate.
func Rate(percent float64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromFloat(percent))
}

// ValidateLineItem checks the input ranges CalculateLine relies on. index is
// only used for error reporting.
func ValidateLineItem(index int, item LineItem) error {
	fail := func(field, reason string) error {
		return &InvalidLineItemError{Index: index, Field: field, Reason: reason}
	}
	switch {
	case item.Quantity.IsNegative():
		return fail("quantity", "must not be negative")
	case item.Rate.IsNegative():
		return fail("rate", "must not be negative")
	case item.DiscountPercent.IsNegative() || item.DiscountPercent.GreaterThan(hundred):
		return fail("discount_percent", "must be between 0 and 100")
	case !item.GSTRate.Valid:
		return fail("gst_rate", "is required")
	case item.GSTRate.Decimal.IsNegative():
		return fail("gst_rate", "must not be negative")
	}
	if hsn := strings.TrimSpace(item.HSNCode); hsn != "" && !hsnPattern.MatchString(hsn) {
		return fail("hsn_code", "must be 4 to 8 alphanumeric characters")
	}
	return nil
}

// ValidateLineItems validates every item and returns the first failure.
func ValidateLineItems(items []LineItem) error {
	for i := range items {
		if err := ValidateLineItem(i, items[i]); err != nil {
			return err
		}
	}
	return nil
}

// CalculateLine computes taxable value and tax split for one pre-validated
// line item.
func CalculateLine(item LineItem, intraState bool) LineItemResult {
	gross := item.Quantity.Mul(item.Rate)
	discount := gross.Mul(item.DiscountPercent).Div(hundred)
	afterDiscount := gross.Sub(discount)
	rate := item.GSTRate.Decimal

	var taxable, tax decimal.Decimal
	if item.PriceIncludesTax {
		taxable = afterDiscount.Div(decimal.NewFromInt(1).Add(rate.Div(hundred)))
		tax = afterDiscount.Sub(taxable)
	} else {
		taxable = afterDiscount
		tax = taxable.Mul(rate).Div(hundred)
	}

	res := LineItemResult{
		TaxableValue: taxable,
		CGSTAmount:   decimal.Zero,
		SGSTAmount:   decimal.Zero,
		IGSTAmount:   decimal.Zero,
		CessAmount:   decimal.Zero,
	}
	if intraState {
		half := tax.Div(two)
		res.CGSTAmount = half
		res.SGSTAmount = half
	} else {
		res.IGSTAmount = tax
	}
	res.LineTotal = taxable.Add(res.CGSTAmount).Add(res.SGSTAmount).Add(res.IGSTAmount)
	return res
}

// ValidHSN reports whether code is a well-formed HSN or SAC code.
func ValidHSN(code string) bool {
	return hsnPattern.MatchString(strings.TrimSpace(code))
}
