package render

import (
	"time"

	"github.com/shopspring/decimal"

	"gstinvoice/internal/gst"
)

// Input is everything a renderer needs. Amounts come from the computed
// invoice only; renderers never recalculate.
type Input struct {
	Invoice     *gst.Invoice
	InvoiceDate *time.Time
	Notes       string
	Bank        BankDetails
}

// BankDetails are printed for payment by transfer.
type BankDetails struct {
	BankName      string
	AccountNumber string
	IFSCCode      string
}

type lineView struct {
	SNo         int
	Description string
	HSNCode     string
	Qty         string
	Unit        string
	Rate        string
	Discount    string
	Taxable     string
	GSTRate     string
	CGST        string
	SGST        string
	IGST        string
	Total       string
}

type totalView struct {
	Label string
	Value string
}

type view struct {
	Title         string
	Number        string
	Date          string
	TaxType       string
	IntraState    bool
	PlaceOfSupply string
	Seller        gst.Party
	Buyer         gst.Party
	Lines         []lineView
	Totals        []totalView
	GrandTotal    string
	AmountInWords string
	Notes         string
	Bank          BankDetails
	Warnings      []string
}

func buildView(in Input, money func(decimal.Decimal) string) view {
	inv := in.Invoice
	v := view{
		Title:         "TAX INVOICE",
		Number:        inv.Number,
		Date:          "-",
		TaxType:       inv.Jurisdiction.TaxType(),
		IntraState:    inv.Jurisdiction.IntraState,
		PlaceOfSupply: placeOfSupply(inv),
		Seller:        inv.Seller,
		Buyer:         inv.Buyer,
		GrandTotal:    money(inv.Totals.GrandTotal),
		AmountInWords: inv.AmountInWords,
		Notes:         in.Notes,
		Bank:          in.Bank,
		Warnings:      inv.Warnings,
	}
	if inv.IsDraft {
		v.Title = "DRAFT TAX INVOICE"
		v.Number = "DRAFT"
	}
	if in.InvoiceDate != nil && !in.InvoiceDate.IsZero() {
		v.Date = in.InvoiceDate.Format("02-Jan-2006")
	}

	v.Lines = make([]lineView, len(inv.Lines))
	for i, l := range inv.Lines {
		v.Lines[i] = lineView{
			SNo:         i + 1,
			Description: l.Item.Description,
			HSNCode:     l.Item.HSNCode,
			Qty:         FormatQty(l.Item.Quantity),
			Unit:        l.Item.Unit,
			Rate:        money(l.Item.Rate),
			Discount:    FormatPercent(l.Item.DiscountPercent),
			Taxable:     money(l.Result.TaxableValue),
			GSTRate:     FormatPercent(l.Item.GSTRate.Decimal),
			CGST:        money(l.Result.CGSTAmount),
			SGST:        money(l.Result.SGSTAmount),
			IGST:        money(l.Result.IGSTAmount),
			Total:       money(l.Result.LineTotal),
		}
	}

	t := inv.Totals
	v.Totals = append(v.Totals, totalView{"Subtotal", money(t.Subtotal)})
	if t.Discount.IsPositive() {
		v.Totals = append(v.Totals,
			totalView{"Discount", "-" + money(t.Discount)},
			totalView{"Taxable Value", money(t.TaxableValue)})
	}
	if inv.Jurisdiction.IntraState {
		v.Totals = append(v.Totals,
			totalView{"CGST", money(t.TotalCGST)},
			totalView{"SGST", money(t.TotalSGST)})
	} else {
		v.Totals = append(v.Totals, totalView{"IGST", money(t.TotalIGST)})
	}
	if !t.TotalCess.IsZero() {
		v.Totals = append(v.Totals, totalView{"Cess", money(t.TotalCess)})
	}
	return v
}

func placeOfSupply(inv *gst.Invoice) string {
	if inv.Buyer.StateCode == "" {
		return "-"
	}
	return gst.PlaceOfSupply(inv.Buyer.StateCode)
}
