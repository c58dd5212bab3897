package gst

import "github.com/shopspring/decimal"

// Build computes a draft invoice from scratch. It validates every item,
// resolves the jurisdiction once, calculates each line, aggregates, applies
// the document discount and writes the grand total in words.
//
// An empty item list yields a zero-totals draft so an invoice can be
// previewed while lines are still being entered.
func Build(seller, buyer Party, items []LineItem, documentDiscount decimal.Decimal) (*Invoice, error) {
	if err := ValidateLineItems(items); err != nil {
		return nil, err
	}
	if documentDiscount.IsNegative() {
		return nil, ErrInvalidDiscount
	}

	j := Resolve(seller.StateCode, buyer.StateCode)

	lines := make([]Line, len(items))
	for i, item := range items {
		lines[i] = Line{Item: item, Result: CalculateLine(item, j.IntraState)}
	}

	totals := ApplyDocumentDiscount(Aggregate(lines), documentDiscount)

	var warnings []string
	if !j.Known() {
		warnings = append(warnings, WarnJurisdictionUnknown)
	}
	if documentDiscount.GreaterThan(totals.GrossTotal) {
		totals.DiscountClamped = true
		warnings = append(warnings, WarnDiscountExceedsTotal)
	}

	return &Invoice{
		IsDraft:       true,
		Seller:        seller,
		Buyer:         buyer,
		Jurisdiction:  j,
		Lines:         lines,
		Totals:        totals,
		AmountInWords: AmountInWords(totals.GrandTotal),
		Warnings:      warnings,
	}, nil
}
