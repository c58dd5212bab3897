package invoice

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstinvoice/internal/gst"
)

var (
	karnataka   = gst.Party{Name: "Acme Textiles", GSTIN: "29ABCDE1234F1Z5", StateCode: "29"}
	maharashtra = gst.Party{Name: "Ravi Stores", GSTIN: "27AAACR5055K1Z7", StateCode: "27"}
)

func kurta(gstRate float64) gst.LineItem {
	return gst.LineItem{
		Description: "Kurta",
		HSNCode:     "6205",
		Quantity:    decimal.NewFromInt(2),
		Rate:        decimal.NewFromInt(500),
		GSTRate:     gst.Rate(gstRate),
	}
}

func build(t *testing.T, seller, buyer gst.Party, discount int64, items ...gst.LineItem) *gst.Invoice {
	t.Helper()
	inv, err := gst.Build(seller, buyer, items, decimal.NewFromInt(discount))
	require.NoError(t, err)
	return inv
}

func run(t *testing.T, key string, inv *gst.Invoice) []ValidationResult {
	t.Helper()
	for _, v := range AllBuiltinValidators() {
		if v.RuleKey() == key {
			return v.Validate(context.Background(), inv)
		}
	}
	t.Fatalf("rule %s not registered", key)
	return nil
}

func failed(results []ValidationResult) []ValidationResult {
	var out []ValidationResult
	for _, r := range results {
		if !r.Passed {
			out = append(out, r)
		}
	}
	return out
}

func TestAllBuiltinValidators_UniqueKeys(t *testing.T) {
	seen := map[string]bool{}
	for _, v := range AllBuiltinValidators() {
		assert.False(t, seen[v.RuleKey()], "duplicate key %s", v.RuleKey())
		seen[v.RuleKey()] = true
		assert.NotEmpty(t, v.RuleName())
	}
}

func TestBuiltInRules_CleanInvoice(t *testing.T) {
	inv := build(t, karnataka, maharashtra, 50, kurta(5), kurta(12))
	for _, v := range AllBuiltinValidators() {
		assert.Empty(t, failed(v.Validate(context.Background(), inv)), v.RuleKey())
	}
}

func TestFormat_GSTIN(t *testing.T) {
	bad := karnataka
	bad.GSTIN = "29ABCDE1234F1X5"
	res := failed(run(t, "fmt.seller.gstin", build(t, bad, maharashtra, 0, kurta(5))))
	require.Len(t, res, 1)
	assert.Equal(t, "seller.gstin", res[0].FieldPath)

	unregistered := maharashtra
	unregistered.GSTIN = ""
	res = run(t, "fmt.buyer.gstin", build(t, karnataka, unregistered, 0, kurta(5)))
	require.Len(t, res, 1)
	assert.True(t, res[0].Passed)
	assert.Contains(t, res[0].Message, "skipping")
}

func TestFormat_StateCodeAcceptsNames(t *testing.T) {
	named := maharashtra
	named.StateCode = "Maharashtra"
	assert.Empty(t, failed(run(t, "fmt.buyer.state_code", build(t, karnataka, named, 0, kurta(5)))))

	unknown := maharashtra
	unknown.StateCode = "99"
	assert.Len(t, failed(run(t, "fmt.buyer.state_code", build(t, karnataka, unknown, 0, kurta(5)))), 1)
}

func TestFormat_HSNOnlyNumeric(t *testing.T) {
	item := kurta(5)
	item.HSNCode = "AB12"
	inv := build(t, karnataka, maharashtra, 0, item, kurta(5))
	res := failed(run(t, "fmt.line_item.hsn", inv))
	require.Len(t, res, 1)
	assert.Equal(t, "lines[0].hsn_code", res[0].FieldPath)
}

func TestCrossField_TaxTypeMismatch(t *testing.T) {
	inv := build(t, karnataka, maharashtra, 0, kurta(5))
	inv.Lines[0].Result.CGSTAmount = decimal.NewFromInt(25)

	res := failed(run(t, "xf.tax_type.exclusive", inv))
	require.Len(t, res, 1)
	assert.Equal(t, "lines[0].cgst_amount", res[0].FieldPath)
}

func TestCrossField_GSTINStatePrefix(t *testing.T) {
	branch := karnataka
	branch.StateCode = "KA"
	assert.Empty(t, failed(run(t, "xf.seller.gstin_state", build(t, branch, maharashtra, 0, kurta(5)))))

	moved := maharashtra
	moved.StateCode = "24"
	res := failed(run(t, "xf.buyer.gstin_state", build(t, karnataka, moved, 0, kurta(5))))
	require.Len(t, res, 1)
	assert.Equal(t, "27", res[0].ActualValue)
}

func TestCrossField_SameGSTIN(t *testing.T) {
	self := karnataka
	self.Name = "Acme Branch"
	assert.Len(t, failed(run(t, "xf.parties.different_gstin", build(t, karnataka, self, 0, kurta(5)))), 1)
}

func TestLogical_UnnotifiedRate(t *testing.T) {
	res := failed(run(t, "logic.line_item.gst_rate", build(t, karnataka, maharashtra, 0, kurta(7), kurta(18))))
	require.Len(t, res, 1)
	assert.Equal(t, "lines[0].gst_rate", res[0].FieldPath)
}

func TestLogical_DiscountClamped(t *testing.T) {
	inv := build(t, karnataka, maharashtra, 5000, kurta(5))
	assert.Len(t, failed(run(t, "logic.totals.discount_clamped", inv)), 1)
}

func TestLogical_AmountInWordsTampered(t *testing.T) {
	inv := build(t, karnataka, maharashtra, 0, kurta(5))
	inv.AmountInWords = "Rupees One Only"
	assert.Len(t, failed(run(t, "logic.totals.amount_in_words", inv)), 1)
}

func TestRequired_NoLines(t *testing.T) {
	inv := build(t, karnataka, maharashtra, 0)
	assert.Len(t, failed(run(t, "req.line_items", inv)), 1)
}

func TestMath_TamperedLineTotal(t *testing.T) {
	inv := build(t, karnataka, maharashtra, 0, kurta(5))
	inv.Lines[0].Result.LineTotal = inv.Lines[0].Result.LineTotal.Add(decimal.NewFromInt(1))

	assert.Len(t, failed(run(t, "math.line_item.total", inv)), 1)
	assert.Len(t, failed(run(t, "math.totals.gross_total", inv)), 1)
}

func TestMath_ToleratesHalfPaisa(t *testing.T) {
	inv := build(t, karnataka, maharashtra, 0, kurta(5))
	inv.Totals.GrandTotal = inv.Totals.GrandTotal.Add(decimal.RequireFromString("0.005"))
	assert.Empty(t, failed(run(t, "math.totals.grand_total", inv)))
}
