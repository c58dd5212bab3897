package invoice

import (
	"context"

	"gstinvoice/internal/domain"
	"gstinvoice/internal/gst"
)

// BuiltinValidator wraps a validator function and its metadata for the registry.
type BuiltinValidator struct {
	key      string
	name     string
	ruleType domain.ValidationRuleType
	sev      domain.ValidationSeverity
	fn       func(*gst.Invoice) []ValidationResult
}

func (b *BuiltinValidator) Validate(_ context.Context, data *gst.Invoice) []ValidationResult {
	return b.fn(data)
}
func (b *BuiltinValidator) RuleKey() string                     { return b.key }
func (b *BuiltinValidator) RuleName() string                    { return b.name }
func (b *BuiltinValidator) RuleType() domain.ValidationRuleType { return b.ruleType }
func (b *BuiltinValidator) Severity() domain.ValidationSeverity { return b.sev }

// AllBuiltinValidators returns all built-in validators for GST invoices.
func AllBuiltinValidators() []*BuiltinValidator {
	var all []*BuiltinValidator
	all = append(all, RequiredFieldValidators()...)
	all = append(all, FormatValidators()...)
	all = append(all, MathValidators()...)
	all = append(all, CrossFieldValidators()...)
	all = append(all, LogicalValidators()...)
	return all
}

func rule(key, name string, ruleType domain.ValidationRuleType, sev domain.ValidationSeverity,
	fn func(*gst.Invoice) []ValidationResult) *BuiltinValidator {
	return &BuiltinValidator{key: key, name: name, ruleType: ruleType, sev: sev, fn: fn}
}
