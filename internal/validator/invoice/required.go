package invoice

import (
	"fmt"
	"strings"

	"gstinvoice/internal/domain"
	"gstinvoice/internal/gst"
)

func requiredCheck(fieldPath, value, ruleName string) ValidationResult {
	passed := strings.TrimSpace(value) != ""
	msg := fmt.Sprintf("%s: %s is present", ruleName, fieldPath)
	if !passed {
		msg = fmt.Sprintf("%s: %s is required", ruleName, fieldPath)
	}
	return ValidationResult{
		Passed: passed, FieldPath: fieldPath,
		ExpectedValue: "non-empty value", ActualValue: value, Message: msg,
	}
}

func requiredField(key, name, fieldPath string, sev domain.ValidationSeverity, extract func(*gst.Invoice) string) *BuiltinValidator {
	return rule(key, name, domain.ValidationRuleRequired, sev, func(d *gst.Invoice) []ValidationResult {
		return []ValidationResult{requiredCheck(fieldPath, extract(d), name)}
	})
}

// RequiredFieldValidators returns checks for fields a tax invoice must carry.
func RequiredFieldValidators() []*BuiltinValidator {
	return []*BuiltinValidator{
		requiredField("req.seller.name", "Required: Seller Name", "seller.name",
			domain.ValidationSeverityError, func(d *gst.Invoice) string { return d.Seller.Name }),
		requiredField("req.seller.gstin", "Required: Seller GSTIN", "seller.gstin",
			domain.ValidationSeverityError, func(d *gst.Invoice) string { return d.Seller.GSTIN }),
		requiredField("req.seller.state_code", "Required: Seller State Code", "seller.state_code",
			domain.ValidationSeverityError, func(d *gst.Invoice) string { return d.Seller.StateCode }),
		requiredField("req.buyer.name", "Required: Buyer Name", "buyer.name",
			domain.ValidationSeverityWarning, func(d *gst.Invoice) string { return d.Buyer.Name }),
		requiredField("req.buyer.state_code", "Required: Buyer State Code", "buyer.state_code",
			domain.ValidationSeverityWarning, func(d *gst.Invoice) string { return d.Buyer.StateCode }),
		rule("req.line_items", "Required: Line Items", domain.ValidationRuleRequired, domain.ValidationSeverityError,
			func(d *gst.Invoice) []ValidationResult {
				passed := len(d.Lines) > 0
				msg := "Required: Line Items: invoice has line items"
				if !passed {
					msg = "Required: Line Items: invoice has no line items"
				}
				return []ValidationResult{{
					Passed: passed, FieldPath: "lines",
					ExpectedValue: ">= 1 line", ActualValue: fmt.Sprintf("%d", len(d.Lines)), Message: msg,
				}}
			}),
		rule("req.line_item.description", "Required: Line Item Description", domain.ValidationRuleRequired,
			domain.ValidationSeverityError, func(d *gst.Invoice) []ValidationResult {
				results := make([]ValidationResult, 0, len(d.Lines))
				for i := range d.Lines {
					fp := fmt.Sprintf("lines[%d].description", i)
					results = append(results, requiredCheck(fp, d.Lines[i].Item.Description, "Required: Line Item Description"))
				}
				return results
			}),
	}
}
