package validator

import (
	"context"

	"gstinvoice/internal/domain"
	"gstinvoice/internal/gst"
)

// Finding is a failed audit rule on one field.
type Finding struct {
	RuleKey       string                    `json:"rule_key"`
	RuleName      string                    `json:"rule_name"`
	RuleType      domain.ValidationRuleType `json:"rule_type"`
	Severity      domain.ValidationSeverity `json:"severity"`
	FieldPath     string                    `json:"field_path"`
	ExpectedValue string                    `json:"expected_value,omitempty"`
	ActualValue   string                    `json:"actual_value,omitempty"`
	Message       string                    `json:"message"`
}

// Report summarises an audit. Passed is false when any error-severity rule
// failed; warnings never fail a report.
type Report struct {
	Passed    bool      `json:"passed"`
	RulesRun  int       `json:"rules_run"`
	ChecksRun int       `json:"checks_run"`
	Errors    []Finding `json:"errors"`
	Warnings  []Finding `json:"warnings"`
}

// Engine runs registered rules against computed invoices.
type Engine struct {
	registry *Registry
}

// NewEngine creates a new audit engine.
func NewEngine(registry *Registry) *Engine {
	return &Engine{registry: registry}
}

// Audit runs every registered rule against inv.
func (e *Engine) Audit(ctx context.Context, inv *gst.Invoice) *Report {
	report := &Report{Errors: []Finding{}, Warnings: []Finding{}}
	for _, v := range e.registry.All() {
		report.RulesRun++
		for _, r := range v.Validate(ctx, inv) {
			report.ChecksRun++
			if r.Passed {
				continue
			}
			f := Finding{
				RuleKey:       v.RuleKey(),
				RuleName:      v.RuleName(),
				RuleType:      v.RuleType(),
				Severity:      v.Severity(),
				FieldPath:     r.FieldPath,
				ExpectedValue: r.ExpectedValue,
				ActualValue:   r.ActualValue,
				Message:       r.Message,
			}
			if v.Severity() == domain.ValidationSeverityError {
				report.Errors = append(report.Errors, f)
			} else {
				report.Warnings = append(report.Warnings, f)
			}
		}
	}
	report.Passed = len(report.Errors) == 0
	return report
}
