package gst

import "github.com/shopspring/decimal"

// Aggregate sums line results in input order. The result is pre-discount:
// GrandTotal equals GrossTotal and Discount is zero.
func Aggregate(lines []Line) Totals {
	t := Totals{
		Subtotal:     decimal.Zero,
		TaxableValue: decimal.Zero,
		TotalCGST:    decimal.Zero,
		TotalSGST:    decimal.Zero,
		TotalIGST:    decimal.Zero,
		TotalCess:    decimal.Zero,
		GrossTotal:   decimal.Zero,
		Discount:     decimal.Zero,
		GrandTotal:   decimal.Zero,
		TotalQty:     decimal.Zero,
	}
	for _, l := range lines {
		t.Subtotal = t.Subtotal.Add(l.Result.TaxableValue)
		t.TotalCGST = t.TotalCGST.Add(l.Result.CGSTAmount)
		t.TotalSGST = t.TotalSGST.Add(l.Result.SGSTAmount)
		t.TotalIGST = t.TotalIGST.Add(l.Result.IGSTAmount)
		t.TotalCess = t.TotalCess.Add(l.Result.CessAmount)
		t.GrossTotal = t.GrossTotal.Add(l.Result.LineTotal)
		t.TotalQty = t.TotalQty.Add(l.Item.Quantity)
	}
	t.TaxableValue = t.Subtotal
	t.GrandTotal = t.GrossTotal
	return t
}
