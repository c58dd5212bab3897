package invoice

import (
	"fmt"
	"strings"

	"gstinvoice/internal/domain"
	"gstinvoice/internal/gst"
)

// CrossFieldValidators returns all cross-field validators.
func CrossFieldValidators() []*BuiltinValidator {
	return []*BuiltinValidator{
		rule("xf.tax_type.exclusive", "Cross-field: Tax Type Matches Jurisdiction", domain.ValidationRuleCrossField,
			domain.ValidationSeverityError, taxTypeCheck),
		rule("xf.line_item.cgst_sgst_equal", "Cross-field: CGST Equals SGST", domain.ValidationRuleCrossField,
			domain.ValidationSeverityError, func(d *gst.Invoice) []ValidationResult {
				results := make([]ValidationResult, 0, len(d.Lines))
				for i, l := range d.Lines {
					fp := fmt.Sprintf("lines[%d].sgst_amount", i)
					r := l.Result
					passed := r.CGSTAmount.Equal(r.SGSTAmount)
					msg := "Cross-field: CGST Equals SGST: halves match"
					if !passed {
						msg = fmt.Sprintf("Cross-field: CGST Equals SGST: %s CGST %s differs from SGST %s", fp, fmtd(r.CGSTAmount), fmtd(r.SGSTAmount))
					}
					results = append(results, ValidationResult{
						Passed: passed, FieldPath: fp,
						ExpectedValue: fmtd(r.CGSTAmount), ActualValue: fmtd(r.SGSTAmount), Message: msg,
					})
				}
				return results
			}),
		// A GSTIN registered in another state is common for branch billing,
		// so a mismatch is reported but never blocks.
		rule("xf.seller.gstin_state", "Cross-field: Seller GSTIN-State Match", domain.ValidationRuleCrossField,
			domain.ValidationSeverityWarning, func(d *gst.Invoice) []ValidationResult {
				return gstinStateCheck("seller", d.Seller.GSTIN, d.Seller.StateCode)
			}),
		rule("xf.buyer.gstin_state", "Cross-field: Buyer GSTIN-State Match", domain.ValidationRuleCrossField,
			domain.ValidationSeverityWarning, func(d *gst.Invoice) []ValidationResult {
				return gstinStateCheck("buyer", d.Buyer.GSTIN, d.Buyer.StateCode)
			}),
		rule("xf.parties.different_gstin", "Cross-field: Different Party GSTINs", domain.ValidationRuleCrossField,
			domain.ValidationSeverityWarning, func(d *gst.Invoice) []ValidationResult {
				seller := strings.ToUpper(strings.TrimSpace(d.Seller.GSTIN))
				buyer := strings.ToUpper(strings.TrimSpace(d.Buyer.GSTIN))
				if seller == "" || buyer == "" {
					return []ValidationResult{skipped("buyer.gstin", "Cross-field: Different Party GSTINs", "GSTINs missing")}
				}
				passed := seller != buyer
				msg := "Cross-field: Different Party GSTINs: seller and buyer have different GSTINs"
				if !passed {
					msg = "Cross-field: Different Party GSTINs: seller and buyer have the same GSTIN"
				}
				return []ValidationResult{{
					Passed: passed, FieldPath: "buyer.gstin",
					ExpectedValue: "seller.gstin != buyer.gstin",
					ActualValue:   fmt.Sprintf("seller=%s, buyer=%s", seller, buyer),
					Message:       msg,
				}}
			}),
	}
}

func gstinStateCheck(party, gstin, stateCode string) []ValidationResult {
	fieldPath := fmt.Sprintf("%s.gstin", party)
	ruleName := fmt.Sprintf("Cross-field: %s GSTIN-State Match", party)
	if strings.TrimSpace(gstin) == "" || strings.TrimSpace(stateCode) == "" {
		return []ValidationResult{skipped(fieldPath, ruleName, "fields missing")}
	}
	prefix := gst.GSTINStateCode(gstin)
	expected := gst.NormalizeStateCode(stateCode)
	if s, ok := gst.LookupState(stateCode); ok {
		expected = s.GSTCode
	}
	passed := prefix == expected
	msg := fmt.Sprintf("%s: GSTIN state code matches", ruleName)
	if !passed {
		msg = fmt.Sprintf("%s: GSTIN prefix %q does not match state code %s", ruleName, prefix, expected)
	}
	return []ValidationResult{{
		Passed: passed, FieldPath: fieldPath,
		ExpectedValue: fmt.Sprintf("GSTIN[0:2] == %s", expected),
		ActualValue:   prefix, Message: msg,
	}}
}

// taxTypeCheck verifies that only the tax heads of the invoice's
// jurisdiction carry amounts.
func taxTypeCheck(d *gst.Invoice) []ValidationResult {
	const ruleName = "Cross-field: Tax Type Matches Jurisdiction"
	results := make([]ValidationResult, 0, len(d.Lines))
	for i, l := range d.Lines {
		r := l.Result
		var fp, actual string
		var passed bool
		if d.Jurisdiction.IntraState {
			fp = fmt.Sprintf("lines[%d].igst_amount", i)
			passed = r.IGSTAmount.IsZero()
			actual = fmtd(r.IGSTAmount)
		} else {
			fp = fmt.Sprintf("lines[%d].cgst_amount", i)
			passed = r.CGSTAmount.IsZero() && r.SGSTAmount.IsZero()
			actual = fmtd(r.CGSTAmount.Add(r.SGSTAmount))
		}
		msg := fmt.Sprintf("%s: %s uses %s only", ruleName, fmt.Sprintf("lines[%d]", i), d.Jurisdiction.TaxType())
		if !passed {
			msg = fmt.Sprintf("%s: %s must be zero for %s", ruleName, fp, d.Jurisdiction.TaxType())
		}
		results = append(results, ValidationResult{
			Passed: passed, FieldPath: fp,
			ExpectedValue: "0.00", ActualValue: actual, Message: msg,
		})
	}
	return results
}
