package gst

import "strings"

// Jurisdiction is the place-of-supply decision for a whole invoice.
type Jurisdiction struct {
	IntraState bool   `json:"intra_state"`
	SellerCode string `json:"seller_state_code"`
	BuyerCode  string `json:"buyer_state_code"`
}

// TaxType returns the label printed on invoices for this jurisdiction.
func (j Jurisdiction) TaxType() string {
	if j.IntraState {
		return "CGST+SGST"
	}
	return "IGST"
}

// Known reports whether both state codes were supplied.
func (j Jurisdiction) Known() bool {
	return j.SellerCode != "" && j.BuyerCode != ""
}

// NormalizeStateCode trims and upper-cases a state code for comparison.
func NormalizeStateCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Resolve compares seller and buyer state codes. A missing code on either
// side resolves to inter-state so tax is never split on a guess.
func Resolve(sellerStateCode, buyerStateCode string) Jurisdiction {
	seller := NormalizeStateCode(sellerStateCode)
	buyer := NormalizeStateCode(buyerStateCode)
	return Jurisdiction{
		IntraState: seller != "" && buyer != "" && seller == buyer,
		SellerCode: seller,
		BuyerCode:  buyer,
	}
}
