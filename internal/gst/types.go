package gst

import "github.com/shopspring/decimal"

// LineItem is the canonical input shape for one invoice line. Every caller
// (CSV import, order conversion, manual entry) maps into this type.
type LineItem struct {
	Description      string              `json:"description"`
	HSNCode          string              `json:"hsn_code,omitempty"`
	Quantity         decimal.Decimal     `json:"quantity"`
	Unit             string              `json:"unit"`
	Rate             decimal.Decimal     `json:"rate"`
	DiscountPercent  decimal.Decimal     `json:"discount_percent"`
	GSTRate          decimal.NullDecimal `json:"gst_rate"`
	PriceIncludesTax bool                `json:"price_includes_tax"`
}

// LineItemResult holds the computed amounts for one line. Values carry full
// precision; rounding happens on output.
type LineItemResult struct {
	TaxableValue decimal.Decimal
	CGSTAmount   decimal.Decimal
	SGSTAmount   decimal.Decimal
	IGSTAmount   decimal.Decimal
	CessAmount   decimal.Decimal
	LineTotal    decimal.Decimal
}

// TaxAmount is the combined tax on the line.
func (r LineItemResult) TaxAmount() decimal.Decimal {
	return r.CGSTAmount.Add(r.SGSTAmount).Add(r.IGSTAmount).Add(r.CessAmount)
}

// Line pairs an input item with its computed result.
type Line struct {
	Item   LineItem
	Result LineItemResult
}

// Party is the seller or buyer of an invoice.
type Party struct {
	Name      string `json:"name"`
	GSTIN     string `json:"gstin,omitempty"`
	Address   string `json:"address,omitempty"`
	State     string `json:"state,omitempty"`
	StateCode string `json:"state_code"`
	Email     string `json:"email,omitempty"`
}

// Totals is derived from the full set of line results plus the document
// discount. It is never updated incrementally.
type Totals struct {
	Subtotal        decimal.Decimal // sum of line taxable values, before document discount
	TaxableValue    decimal.Decimal // after document discount allocation
	TotalCGST       decimal.Decimal
	TotalSGST       decimal.Decimal
	TotalIGST       decimal.Decimal
	TotalCess       decimal.Decimal
	GrossTotal      decimal.Decimal // sum of line totals
	Discount        decimal.Decimal // document discount actually applied
	GrandTotal      decimal.Decimal
	TotalQty        decimal.Decimal
	DiscountClamped bool
}

// Invoice is a computed draft invoice. Numbering, dates and persistence
// belong to callers.
type Invoice struct {
	IsDraft       bool
	Number        string
	Seller        Party
	Buyer         Party
	Jurisdiction  Jurisdiction
	Lines         []Line
	Totals        Totals
	AmountInWords string
	Warnings      []string
}
