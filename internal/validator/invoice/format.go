package invoice

import (
	"fmt"
	"regexp"
	"strings"

	"gstinvoice/internal/domain"
	"gstinvoice/internal/gst"
)

var (
	gstinPattern = regexp.MustCompile(`^\d{2}[A-Z]{5}\d{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)
	hsnPattern   = regexp.MustCompile(`^\d{4,8}$`)
)

func regexCheck(fieldPath, value, ruleName string, re *regexp.Regexp) ValidationResult {
	if value == "" {
		return skipped(fieldPath, ruleName, "field is empty")
	}
	passed := re.MatchString(value)
	msg := fmt.Sprintf("%s: %s matches expected format", ruleName, fieldPath)
	if !passed {
		msg = fmt.Sprintf("%s: %s does not match expected format", ruleName, fieldPath)
	}
	return ValidationResult{
		Passed: passed, FieldPath: fieldPath,
		ExpectedValue: re.String(), ActualValue: value, Message: msg,
	}
}

func stateCodeCheck(fieldPath, value, ruleName string) ValidationResult {
	if value == "" {
		return skipped(fieldPath, ruleName, "field is empty")
	}
	_, passed := gst.LookupState(value)
	msg := fmt.Sprintf("%s: %s is a known Indian state", ruleName, fieldPath)
	if !passed {
		msg = fmt.Sprintf("%s: %s is not a known Indian state or GST state code", ruleName, fieldPath)
	}
	return ValidationResult{
		Passed: passed, FieldPath: fieldPath,
		ExpectedValue: "GST state code", ActualValue: value, Message: msg,
	}
}

// FormatValidators returns the identifier format checks.
func FormatValidators() []*BuiltinValidator {
	return []*BuiltinValidator{
		rule("fmt.seller.gstin", "Format: Seller GSTIN", domain.ValidationRuleRegex, domain.ValidationSeverityError,
			func(d *gst.Invoice) []ValidationResult {
				return []ValidationResult{regexCheck("seller.gstin", strings.TrimSpace(d.Seller.GSTIN), "Format: Seller GSTIN", gstinPattern)}
			}),
		rule("fmt.buyer.gstin", "Format: Buyer GSTIN", domain.ValidationRuleRegex, domain.ValidationSeverityError,
			func(d *gst.Invoice) []ValidationResult {
				return []ValidationResult{regexCheck("buyer.gstin", strings.TrimSpace(d.Buyer.GSTIN), "Format: Buyer GSTIN", gstinPattern)}
			}),
		rule("fmt.seller.state_code", "Format: Seller State Code", domain.ValidationRuleRegex, domain.ValidationSeverityError,
			func(d *gst.Invoice) []ValidationResult {
				return []ValidationResult{stateCodeCheck("seller.state_code", d.Seller.StateCode, "Format: Seller State Code")}
			}),
		rule("fmt.buyer.state_code", "Format: Buyer State Code", domain.ValidationRuleRegex, domain.ValidationSeverityWarning,
			func(d *gst.Invoice) []ValidationResult {
				return []ValidationResult{stateCodeCheck("buyer.state_code", d.Buyer.StateCode, "Format: Buyer State Code")}
			}),
		// Line items accept alphanumeric codes; the GST portal only files
		// numeric HSN/SAC codes.
		rule("fmt.line_item.hsn", "Format: Line Item HSN", domain.ValidationRuleRegex, domain.ValidationSeverityWarning,
			func(d *gst.Invoice) []ValidationResult {
				results := make([]ValidationResult, 0, len(d.Lines))
				for i := range d.Lines {
					fp := fmt.Sprintf("lines[%d].hsn_code", i)
					results = append(results, regexCheck(fp, strings.TrimSpace(d.Lines[i].Item.HSNCode), "Format: Line Item HSN", hsnPattern))
				}
				return results
			}),
	}
}
