package invoice

import (
	"fmt"

	"github.com/shopspring/decimal"

	"gstinvoice/internal/domain"
	"gstinvoice/internal/gst"
)

var hundred = decimal.NewFromInt(100)

func mathResult(passed bool, fieldPath string, expected, actual decimal.Decimal, ruleName string) ValidationResult {
	msg := fmt.Sprintf("%s: %s calculation matches", ruleName, fieldPath)
	if !passed {
		msg = fmt.Sprintf("%s: %s calculation mismatch (expected %s, got %s)", ruleName, fieldPath, fmtd(expected), fmtd(actual))
	}
	return ValidationResult{
		Passed: passed, FieldPath: fieldPath,
		ExpectedValue: fmtd(expected), ActualValue: fmtd(actual), Message: msg,
	}
}

func sumCheck(fieldPath string, actual decimal.Decimal, ruleName string, parts ...decimal.Decimal) ValidationResult {
	expected := decimal.Zero
	for _, p := range parts {
		expected = expected.Add(p)
	}
	return mathResult(approxEqual(actual, expected), fieldPath, expected, actual, ruleName)
}

func perLine(ruleName string, check func(i int, l gst.Line) ValidationResult) func(*gst.Invoice) []ValidationResult {
	return func(d *gst.Invoice) []ValidationResult {
		results := make([]ValidationResult, 0, len(d.Lines))
		for i, l := range d.Lines {
			results = append(results, check(i, l))
		}
		return results
	}
}

// MathValidators returns all arithmetic checks over the computed amounts.
func MathValidators() []*BuiltinValidator {
	return []*BuiltinValidator{
		rule("math.line_item.taxable_value", "Math: Line Item Taxable Value", domain.ValidationRuleSumCheck,
			domain.ValidationSeverityError, perLine("Math: Line Item Taxable Value", func(i int, l gst.Line) ValidationResult {
				fp := fmt.Sprintf("lines[%d].taxable_value", i)
				gross := l.Item.Quantity.Mul(l.Item.Rate)
				expected := gross.Sub(gross.Mul(l.Item.DiscountPercent).Div(hundred))
				if l.Item.PriceIncludesTax {
					expected = expected.Sub(l.Result.TaxAmount())
				}
				return mathResult(approxEqual(l.Result.TaxableValue, expected), fp, expected, l.Result.TaxableValue, "Math: Line Item Taxable Value")
			})),
		rule("math.line_item.tax", "Math: Line Item Tax", domain.ValidationRuleSumCheck,
			domain.ValidationSeverityError, perLine("Math: Line Item Tax", func(i int, l gst.Line) ValidationResult {
				fp := fmt.Sprintf("lines[%d].tax", i)
				expected := l.Result.TaxableValue.Mul(l.Item.GSTRate.Decimal).Div(hundred)
				actual := l.Result.TaxAmount()
				return mathResult(approxEqual(actual, expected), fp, expected, actual, "Math: Line Item Tax")
			})),
		rule("math.line_item.total", "Math: Line Item Total", domain.ValidationRuleSumCheck,
			domain.ValidationSeverityError, perLine("Math: Line Item Total", func(i int, l gst.Line) ValidationResult {
				r := l.Result
				return sumCheck(fmt.Sprintf("lines[%d].line_total", i), r.LineTotal, "Math: Line Item Total",
					r.TaxableValue, r.CGSTAmount, r.SGSTAmount, r.IGSTAmount, r.CessAmount)
			})),
		rule("math.totals.subtotal", "Math: Subtotal", domain.ValidationRuleSumCheck, domain.ValidationSeverityError,
			func(d *gst.Invoice) []ValidationResult {
				parts := make([]decimal.Decimal, len(d.Lines))
				for i, l := range d.Lines {
					parts[i] = l.Result.TaxableValue
				}
				return []ValidationResult{sumCheck("totals.subtotal", d.Totals.Subtotal, "Math: Subtotal", parts...)}
			}),
		rule("math.totals.gross_total", "Math: Gross Total", domain.ValidationRuleSumCheck, domain.ValidationSeverityError,
			func(d *gst.Invoice) []ValidationResult {
				parts := make([]decimal.Decimal, len(d.Lines))
				for i, l := range d.Lines {
					parts[i] = l.Result.LineTotal
				}
				return []ValidationResult{sumCheck("totals.gross_total", d.Totals.GrossTotal, "Math: Gross Total", parts...)}
			}),
		rule("math.totals.grand_total", "Math: Grand Total", domain.ValidationRuleSumCheck, domain.ValidationSeverityError,
			func(d *gst.Invoice) []ValidationResult {
				t := d.Totals
				return []ValidationResult{
					sumCheck("totals.grand_total", t.GrandTotal, "Math: Grand Total",
						t.TaxableValue, t.TotalCGST, t.TotalSGST, t.TotalIGST, t.TotalCess),
					sumCheck("totals.grand_total", t.GrandTotal, "Math: Grand Total",
						t.GrossTotal, t.Discount.Neg()),
				}
			}),
	}
}
