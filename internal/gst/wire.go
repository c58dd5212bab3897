package gst

import "encoding/json"

type lineResultJSON struct {
	TaxableValue string `json:"taxable_value"`
	CGSTAmount   string `json:"cgst_amount"`
	SGSTAmount   string `json:"sgst_amount"`
	IGSTAmount   string `json:"igst_amount"`
	CessAmount   string `json:"cess_amount"`
	LineTotal    string `json:"line_total"`
}

// MarshalJSON emits every amount as a two-decimal string.
func (r LineItemResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(lineResultJSON{
		TaxableValue: Fixed(r.TaxableValue),
		CGSTAmount:   Fixed(r.CGSTAmount),
		SGSTAmount:   Fixed(r.SGSTAmount),
		IGSTAmount:   Fixed(r.IGSTAmount),
		CessAmount:   Fixed(r.CessAmount),
		LineTotal:    Fixed(r.LineTotal),
	})
}

type totalsJSON struct {
	Subtotal        string `json:"subtotal"`
	TaxableValue    string `json:"taxable_value"`
	TotalCGST       string `json:"total_cgst"`
	TotalSGST       string `json:"total_sgst"`
	TotalIGST       string `json:"total_igst"`
	TotalCess       string `json:"total_cess"`
	GrossTotal      string `json:"gross_total"`
	Discount        string `json:"discount"`
	GrandTotal      string `json:"grand_total"`
	TotalQty        string `json:"total_qty"`
	DiscountClamped bool   `json:"discount_clamped"`
}

// MarshalJSON emits every amount as a two-decimal string.
func (t Totals) MarshalJSON() ([]byte, error) {
	return json.Marshal(totalsJSON{
		Subtotal:        Fixed(t.Subtotal),
		TaxableValue:    Fixed(t.TaxableValue),
		TotalCGST:       Fixed(t.TotalCGST),
		TotalSGST:       Fixed(t.TotalSGST),
		TotalIGST:       Fixed(t.TotalIGST),
		TotalCess:       Fixed(t.TotalCess),
		GrossTotal:      Fixed(t.GrossTotal),
		Discount:        Fixed(t.Discount),
		GrandTotal:      Fixed(t.GrandTotal),
		TotalQty:        t.TotalQty.String(),
		DiscountClamped: t.DiscountClamped,
	})
}

type lineItemAlias LineItem

// MarshalJSON emits the rate with at least two decimals. Quantities, percents
// and the GST rate keep their entered form.
func (li LineItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		lineItemAlias
		Rate string `json:"rate"`
	}{
		lineItemAlias: lineItemAlias(li),
		Rate:          FixedInput(li.Rate),
	})
}

type lineJSON struct {
	Item   LineItem       `json:"item"`
	Result LineItemResult `json:"result"`
}

type jurisdictionJSON struct {
	Jurisdiction
	TaxType string `json:"tax_type"`
}

type invoiceJSON struct {
	IsDraft       bool             `json:"is_draft"`
	Number        string           `json:"number,omitempty"`
	Seller        Party            `json:"seller"`
	Buyer         Party            `json:"buyer"`
	Jurisdiction  jurisdictionJSON `json:"jurisdiction"`
	Lines         []lineJSON       `json:"lines"`
	Totals        Totals           `json:"totals"`
	AmountInWords string           `json:"amount_in_words"`
	Warnings      []string         `json:"warnings,omitempty"`
}

// MarshalJSON renders the invoice in its exchange format.
func (inv Invoice) MarshalJSON() ([]byte, error) {
	lines := make([]lineJSON, len(inv.Lines))
	for i, l := range inv.Lines {
		lines[i] = lineJSON{Item: l.Item, Result: l.Result}
	}
	return json.Marshal(invoiceJSON{
		IsDraft:       inv.IsDraft,
		Number:        inv.Number,
		Seller:        inv.Seller,
		Buyer:         inv.Buyer,
		Jurisdiction:  jurisdictionJSON{Jurisdiction: inv.Jurisdiction, TaxType: inv.Jurisdiction.TaxType()},
		Lines:         lines,
		Totals:        inv.Totals,
		AmountInWords: inv.AmountInWords,
		Warnings:      inv.Warnings,
	})
}
