package render_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstinvoice/internal/gst"
	"gstinvoice/internal/render"
)

func TestFormatINR(t *testing.T) {
	cases := map[string]string{
		"0":           "₹0.00",
		"999":         "₹999.00",
		"1000":        "₹1,000.00",
		"123456.789":  "₹1,23,456.79",
		"12345678.9":  "₹1,23,45,678.90",
		"-150000":     "₹-1,50,000.00",
		"-0.001":      "₹0.00",
		"100000000.5": "₹10,00,00,000.50",
	}
	for in, want := range cases {
		assert.Equal(t, want, render.FormatINR(decimal.RequireFromString(in)), in)
	}
}

func TestFormatQtyAndPercent(t *testing.T) {
	assert.Equal(t, "2.5", render.FormatQty(decimal.RequireFromString("2.5000")))
	assert.Equal(t, "1.333", render.FormatQty(decimal.RequireFromString("1.33333")))
	assert.Equal(t, "18%", render.FormatPercent(decimal.NewFromInt(18)))
	assert.Equal(t, "0.25%", render.FormatPercent(decimal.RequireFromString("0.25")))
}

func buildInvoice(t *testing.T, buyerState string, discount int64) *gst.Invoice {
	t.Helper()
	seller := gst.Party{Name: "Acme Textiles", GSTIN: "29ABCDE1234F1Z5", Address: "MG Road, Bengaluru", StateCode: "29"}
	buyer := gst.Party{Name: "Ravi Stores", Address: "Andheri, Mumbai", StateCode: buyerState}
	items := []gst.LineItem{{
		Description: "Cotton Kurta",
		HSNCode:     "6211",
		Quantity:    decimal.NewFromInt(4),
		Unit:        "PCS",
		Rate:        decimal.NewFromInt(1250),
		GSTRate:     gst.Rate(12),
	}}
	inv, err := gst.Build(seller, buyer, items, decimal.NewFromInt(discount))
	require.NoError(t, err)
	return inv
}

func TestRenderHTML_IntraStateDraft(t *testing.T) {
	inv := buildInvoice(t, "29", 0)
	out, err := render.New().RenderHTML(render.Input{Invoice: inv})
	require.NoError(t, err)

	assert.Contains(t, out, "DRAFT TAX INVOICE")
	assert.Contains(t, out, "Acme Textiles")
	assert.Contains(t, out, "29-Karnataka")
	assert.Contains(t, out, "CGST")
	assert.Contains(t, out, "₹5,600.00")
	assert.Contains(t, out, inv.AmountInWords)
	assert.NotContains(t, out, "<th class=\"num\">IGST</th>")
}

func TestRenderHTML_FinalInterStateWithDiscount(t *testing.T) {
	inv := buildInvoice(t, "27", 500)
	inv.IsDraft = false
	inv.Number = "INV/24-25/0007"
	date := time.Date(2024, 11, 3, 0, 0, 0, 0, time.UTC)

	out, err := render.New().RenderHTML(render.Input{
		Invoice:     inv,
		InvoiceDate: &date,
		Notes:       "Thank you for your business",
		Bank:        render.BankDetails{BankName: "HDFC Bank", AccountNumber: "50100012345678", IFSCCode: "HDFC0000123"},
	})
	require.NoError(t, err)

	assert.Contains(t, out, "INV/24-25/0007")
	assert.Contains(t, out, "03-Nov-2024")
	assert.Contains(t, out, "27-Maharashtra")
	assert.Contains(t, out, "IGST")
	assert.Contains(t, out, "Discount")
	assert.Contains(t, out, "HDFC0000123")
	assert.Contains(t, out, "Thank you for your business")
	assert.NotContains(t, out, "DRAFT TAX INVOICE")
}

func TestRenderHTML_EscapesPartyText(t *testing.T) {
	inv := buildInvoice(t, "29", 0)
	inv.Buyer.Name = "<script>alert(1)</script>"
	out, err := render.New().RenderHTML(render.Input{Invoice: inv})
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>alert(1)</script>")
}

func TestRenderPDF(t *testing.T) {
	for _, state := range []string{"29", "27", ""} {
		inv := buildInvoice(t, state, 100)
		out, err := render.New().RenderPDF(render.Input{
			Invoice: inv,
			Bank:    render.BankDetails{BankName: "SBI", AccountNumber: "1234", IFSCCode: "SBIN0000001"},
		})
		require.NoError(t, err, state)
		assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), state)
	}
}

func TestRender_NilInvoice(t *testing.T) {
	_, err := render.New().RenderHTML(render.Input{})
	assert.Error(t, err)
	_, err = render.New().RenderPDF(render.Input{})
	assert.Error(t, err)
}
