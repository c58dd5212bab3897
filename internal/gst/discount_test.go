package gst

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// twoLineTotals returns pre-discount totals for lines of 5900.00 and
// 7080.00 (gross 12980.00).
func twoLineTotals(intra bool) Totals {
	items := []LineItem{item("10", "500", "0", 18), item("12", "500", "0", 18)}
	lines := make([]Line, len(items))
	for i, it := range items {
		lines[i] = Line{Item: it, Result: CalculateLine(it, intra)}
	}
	return Aggregate(lines)
}

func TestAggregate(t *testing.T) {
	tot := twoLineTotals(true)

	assert.Equal(t, "11000.00", Fixed(tot.Subtotal))
	assert.Equal(t, "11000.00", Fixed(tot.TaxableValue))
	assert.Equal(t, "990.00", Fixed(tot.TotalCGST))
	assert.Equal(t, "990.00", Fixed(tot.TotalSGST))
	assert.Equal(t, "0.00", Fixed(tot.TotalIGST))
	assert.Equal(t, "12980.00", Fixed(tot.GrossTotal))
	assert.Equal(t, "12980.00", Fixed(tot.GrandTotal))
	assert.Equal(t, "22", tot.TotalQty.String())
	assert.True(t, tot.Discount.IsZero())
}

func TestAggregate_Empty(t *testing.T) {
	tot := Aggregate(nil)

	for _, v := range []decimal.Decimal{
		tot.Subtotal, tot.TaxableValue, tot.TotalCGST, tot.TotalSGST, tot.TotalIGST,
		tot.TotalCess, tot.GrossTotal, tot.Discount, tot.GrandTotal, tot.TotalQty,
	} {
		assert.True(t, v.IsZero())
	}
}

func TestApplyDocumentDiscount_NoDiscount(t *testing.T) {
	tot := twoLineTotals(false)

	out := ApplyDocumentDiscount(tot, decimal.Zero)

	assert.Equal(t, tot, out)
}

func TestApplyDocumentDiscount_Proportional(t *testing.T) {
	tot := twoLineTotals(false)

	out := ApplyDocumentDiscount(tot, d("2980"))

	assert.True(t, out.GrandTotal.Equal(d("10000")))
	assert.Equal(t, "2980.00", Fixed(out.Discount))
	assert.Equal(t, "8474.58", Fixed(out.TaxableValue))
	assert.Equal(t, "1525.42", Fixed(out.TotalIGST))
	assert.True(t, out.TotalCGST.IsZero())
	assert.False(t, out.DiscountClamped)
	// pre-discount figures stay available
	assert.Equal(t, "11000.00", Fixed(out.Subtotal))
	assert.Equal(t, "12980.00", Fixed(out.GrossTotal))

	ratio := d("10000").Div(d("12980"))
	assert.Equal(t, Fixed(tot.TotalIGST.Mul(ratio)), Fixed(out.TotalIGST))
}

func TestApplyDocumentDiscount_IntraStateScalesBothHalves(t *testing.T) {
	tot := twoLineTotals(true)

	out := ApplyDocumentDiscount(tot, d("2980"))

	assert.Equal(t, "762.71", Fixed(out.TotalCGST))
	assert.Equal(t, "762.71", Fixed(out.TotalSGST))
	assert.True(t, out.TotalIGST.IsZero())
	assert.Equal(t, "10000.00", Fixed(out.GrandTotal))
}

func TestApplyDocumentDiscount_Clamped(t *testing.T) {
	tot := twoLineTotals(false)

	out := ApplyDocumentDiscount(tot, d("15000"))

	assert.True(t, out.GrandTotal.IsZero())
	assert.Equal(t, "12980.00", Fixed(out.Discount))
	assert.True(t, out.DiscountClamped)
	assert.True(t, out.TaxableValue.IsZero())
	assert.True(t, out.TotalIGST.IsZero())
}

func TestApplyDocumentDiscount_ExactlyGross(t *testing.T) {
	tot := twoLineTotals(true)

	out := ApplyDocumentDiscount(tot, d("12980"))

	assert.True(t, out.GrandTotal.IsZero())
	assert.False(t, out.DiscountClamped)
	assert.True(t, out.TotalCGST.IsZero())
}

func TestApplyDocumentDiscount_ZeroGross(t *testing.T) {
	out := ApplyDocumentDiscount(Aggregate(nil), d("100"))

	assert.True(t, out.GrandTotal.IsZero())
	assert.True(t, out.Discount.IsZero())
}

func TestApplyDocumentDiscount_Monotonic(t *testing.T) {
	tot := twoLineTotals(false)

	prev := tot.GrandTotal
	for disc := int64(0); disc <= 12980; disc += 433 {
		out := ApplyDocumentDiscount(tot, decimal.NewFromInt(disc))
		assert.True(t, out.GrandTotal.LessThanOrEqual(prev), "discount %d", disc)
		assert.False(t, out.GrandTotal.IsNegative())
		prev = out.GrandTotal
	}
}

func TestApplyDocumentDiscount_LeavesInputUntouched(t *testing.T) {
	tot := twoLineTotals(false)
	before := tot.TotalIGST

	_ = ApplyDocumentDiscount(tot, d("1000"))

	assert.True(t, tot.TotalIGST.Equal(before))
	assert.True(t, tot.Discount.IsZero())
}
