package validator

import (
	"context"

	"gstinvoice/internal/domain"
	"gstinvoice/internal/gst"
	"gstinvoice/internal/validator/invoice"
)

// Validator is the interface for a single built-in audit rule.
type Validator interface {
	Validate(ctx context.Context, data *gst.Invoice) []invoice.ValidationResult
	RuleKey() string
	RuleName() string
	RuleType() domain.ValidationRuleType
	Severity() domain.ValidationSeverity
}
