package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstinvoice/internal/gst"
)

func sampleInvoice() *Invoice {
	return &Invoice{
		Status: InvoiceStatusDraft,
		Seller: PartySnapshot{Name: "Acme Textiles", StateCode: "29"},
		Buyer:  PartySnapshot{Name: "Ravi", StateCode: "27"},
		Items: LineItems{{
			Description: "Kurta",
			Quantity:    decimal.NewFromInt(2),
			Rate:        decimal.NewFromInt(500),
			GSTRate:     gst.Rate(12),
		}},
	}
}

func TestInvoice_ComputeDraft(t *testing.T) {
	out, err := sampleInvoice().Compute()
	require.NoError(t, err)
	assert.True(t, out.IsDraft)
	assert.Empty(t, out.Number)
	assert.Equal(t, "1120.00", gst.Fixed(out.Totals.GrandTotal))
	assert.False(t, out.Jurisdiction.IntraState)
}

func TestInvoice_ComputeFinalCarriesNumber(t *testing.T) {
	inv := sampleInvoice()
	number := "ACM/24-25/0001"
	inv.Status = InvoiceStatusFinal
	inv.InvoiceNumber = &number

	out, err := inv.Compute()
	require.NoError(t, err)
	assert.False(t, out.IsDraft)
	assert.Equal(t, number, out.Number)
	assert.True(t, inv.IsFinal())
}

func TestInvoice_ComputeRejectsBadItems(t *testing.T) {
	inv := sampleInvoice()
	inv.Items[0].GSTRate = decimal.NullDecimal{}

	_, err := inv.Compute()
	assert.ErrorIs(t, err, gst.ErrInvalidLineItem)
}

func TestOrder_BuyerFallsBackToShippingAddress(t *testing.T) {
	o := &Order{CustomerName: "Ravi", ShippingAddress: "12 MG Road", StateCode: "29", GSTIN: "29AAACR5055K1Z7"}
	b := o.Buyer()
	assert.Equal(t, "12 MG Road", b.Address)
	assert.Equal(t, "29", b.StateCode)

	o.BillingAddress = "1 Brigade Road"
	assert.Equal(t, "1 Brigade Road", o.Buyer().Address)
}

func TestOrder_LineItemsCarryTaxInclusion(t *testing.T) {
	o := &Order{
		PricesIncludeTax: true,
		Items: []OrderItem{{
			Name:      "Kurta",
			HSNCode:   "6205",
			Quantity:  decimal.NewFromInt(1),
			UnitPrice: decimal.NewFromInt(1050),
			GSTRate:   gst.Rate(5),
		}},
	}
	items := o.LineItems()
	require.Len(t, items, 1)
	assert.True(t, items[0].PriceIncludesTax)
	assert.Equal(t, "Kurta", items[0].Description)
	assert.True(t, items[0].Rate.Equal(decimal.NewFromInt(1050)))
}

func TestLineItems_ValueAndScan(t *testing.T) {
	v, err := LineItems(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), v)

	var p PartySnapshot
	require.NoError(t, p.Scan(`{"name":"Acme","state_code":"29"}`))
	assert.Equal(t, "Acme", p.Name)
	assert.Error(t, p.Scan(42))
}

func TestInvoice_MarshalJSONUsesTwoDecimalAmounts(t *testing.T) {
	inv := sampleInvoice()
	inv.DocumentDiscount = decimal.NewFromInt(2980)
	inv.GrandTotal = decimal.NewFromInt(10000)

	raw, err := json.Marshal(inv)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "2980.00", out["document_discount"])
	assert.Equal(t, "10000.00", out["grand_total"])
	assert.Equal(t, "draft", out["status"])
	items := out["items"].([]any)
	assert.Equal(t, "500.00", items[0].(map[string]any)["rate"])

	var back Invoice
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, back.GrandTotal.Equal(inv.GrandTotal))
	assert.True(t, back.DocumentDiscount.Equal(inv.DocumentDiscount))
}

func TestLineItems_ValueKeepsRatePrecision(t *testing.T) {
	items := LineItems{{Description: "Kurta", Quantity: decimal.NewFromInt(1), Rate: decimal.RequireFromString("952.381"), GSTRate: gst.Rate(5)}}
	v, err := items.Value()
	require.NoError(t, err)

	var back LineItems
	require.NoError(t, back.Scan(v))
	require.Len(t, back, 1)
	assert.Equal(t, "952.381", back[0].Rate.String())
}

func TestOrder_MarshalJSONUsesTwoDecimalAmounts(t *testing.T) {
	o := Order{
		OrderNumber:      "#1001",
		DocumentDiscount: decimal.NewFromInt(50),
		Items:            []OrderItem{{Name: "Kurta", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1050)}},
	}
	raw, err := json.Marshal(o)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "50.00", out["document_discount"])
	items := out["items"].([]any)
	assert.Equal(t, "1050.00", items[0].(map[string]any)["unit_price"])

	raw, err = json.Marshal(Product{SKU: "KRT-1", Price: decimal.RequireFromString("799.5")})
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "799.50", out["price"])
}
