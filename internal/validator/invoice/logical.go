package invoice

import (
	"fmt"

	"github.com/shopspring/decimal"

	"gstinvoice/internal/domain"
	"gstinvoice/internal/gst"
)

// Rates notified under GST, including the compensation-era slabs.
var validTaxRates = []decimal.Decimal{
	decimal.Zero,
	decimal.RequireFromString("0.1"),
	decimal.RequireFromString("0.25"),
	decimal.RequireFromString("1.5"),
	decimal.NewFromInt(3),
	decimal.NewFromInt(5),
	decimal.NewFromInt(6),
	decimal.NewFromInt(12),
	decimal.NewFromInt(18),
	decimal.NewFromInt(28),
	decimal.NewFromInt(40),
}

func knownRate(r decimal.Decimal) bool {
	for _, v := range validTaxRates {
		if v.Equal(r) {
			return true
		}
	}
	return false
}

// LogicalValidators returns checks on business plausibility rather than
// arithmetic.
func LogicalValidators() []*BuiltinValidator {
	return []*BuiltinValidator{
		rule("logic.line_item.gst_rate", "Logical: Line Item GST Rate", domain.ValidationRuleCustom,
			domain.ValidationSeverityWarning, perLine("Logical: Line Item GST Rate", func(i int, l gst.Line) ValidationResult {
				fp := fmt.Sprintf("lines[%d].gst_rate", i)
				rate := l.Item.GSTRate.Decimal
				passed := knownRate(rate)
				msg := fmt.Sprintf("Logical: Line Item GST Rate: %s is a notified rate", fp)
				if !passed {
					msg = fmt.Sprintf("Logical: Line Item GST Rate: %s%% is not a notified GST rate", rate.String())
				}
				return ValidationResult{
					Passed: passed, FieldPath: fp,
					ExpectedValue: "notified GST rate", ActualValue: rate.String(), Message: msg,
				}
			})),
		rule("logic.totals.discount_clamped", "Logical: Discount Within Total", domain.ValidationRuleCustom,
			domain.ValidationSeverityWarning, func(d *gst.Invoice) []ValidationResult {
				passed := !d.Totals.DiscountClamped
				msg := "Logical: Discount Within Total: discount does not exceed the invoice value"
				if !passed {
					msg = "Logical: Discount Within Total: discount exceeded the invoice value and was capped"
				}
				return []ValidationResult{{
					Passed: passed, FieldPath: "totals.discount",
					ExpectedValue: fmt.Sprintf("<= %s", fmtd(d.Totals.GrossTotal)),
					ActualValue:   fmtd(d.Totals.Discount), Message: msg,
				}}
			}),
		rule("logic.totals.amount_in_words", "Logical: Amount In Words", domain.ValidationRuleCustom,
			domain.ValidationSeverityError, func(d *gst.Invoice) []ValidationResult {
				expected := gst.AmountInWords(d.Totals.GrandTotal)
				passed := d.AmountInWords == expected
				msg := "Logical: Amount In Words: matches grand total"
				if !passed {
					msg = "Logical: Amount In Words: does not match grand total"
				}
				return []ValidationResult{{
					Passed: passed, FieldPath: "amount_in_words",
					ExpectedValue: expected, ActualValue: d.AmountInWords, Message: msg,
				}}
			}),
	}
}
