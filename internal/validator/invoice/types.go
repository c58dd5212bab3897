package invoice

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ValidationResult is the outcome of one rule against one field.
type ValidationResult struct {
	Passed        bool
	FieldPath     string
	ExpectedValue string
	ActualValue   string
	Message       string
}

// mathTolerance absorbs the half-paisa differences that appear once
// amounts are rounded for display.
var mathTolerance = decimal.RequireFromString("0.01")

func approxEqual(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(mathTolerance)
}

func fmtd(v decimal.Decimal) string {
	return v.StringFixed(2)
}

func skipped(fieldPath, ruleName, reason string) ValidationResult {
	return ValidationResult{
		Passed: true, FieldPath: fieldPath,
		Message: fmt.Sprintf("%s: %s, skipping", ruleName, reason),
	}
}
