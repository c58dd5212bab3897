package gst

import "github.com/shopspring/decimal"

// ApplyDocumentDiscount spreads an order-level discount over the aggregate
// totals by scaling taxable value and every tax component with the same
// ratio. Line results are left untouched, so printed line tax stays at its
// pre-discount value while the totals carry the discounted tax.
//
// A discount larger than the gross total is clamped and flagged; it is
// never an error. Callers reject negative discounts before this point.
func ApplyDocumentDiscount(t Totals, discount decimal.Decimal) Totals {
	effective := decimal.Min(discount, t.GrossTotal)
	if !effective.IsPositive() {
		return t
	}
	out := t
	out.DiscountClamped = discount.GreaterThan(t.GrossTotal)
	out.Discount = effective

	after := t.GrossTotal.Sub(effective)
	if after.IsZero() {
		out.TaxableValue = decimal.Zero
		out.TotalCGST = decimal.Zero
		out.TotalSGST = decimal.Zero
		out.TotalIGST = decimal.Zero
		out.TotalCess = decimal.Zero
		out.GrandTotal = decimal.Zero
		return out
	}

	ratio := after.Div(t.GrossTotal)
	out.TaxableValue = t.TaxableValue.Mul(ratio)
	out.TotalCGST = t.TotalCGST.Mul(ratio)
	out.TotalSGST = t.TotalSGST.Mul(ratio)
	out.TotalIGST = t.TotalIGST.Mul(ratio)
	out.TotalCess = t.TotalCess.Mul(ratio)
	out.GrandTotal = after
	return out
}
