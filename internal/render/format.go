package render

import (
	"strings"

	"github.com/shopspring/decimal"

	"gstinvoice/internal/gst"
)

// FormatINR formats an amount in Indian Rupee notation with Indian digit
// grouping, e.g. ₹1,23,45,678.90.
func FormatINR(amount decimal.Decimal) string {
	return "₹" + FormatAmount(amount)
}

// FormatAmount formats an amount with Indian digit grouping and exactly two
// decimals, without a currency symbol. A negative amount keeps its sign
// in front.
func FormatAmount(amount decimal.Decimal) string {
	raw := gst.Fixed(amount)
	negative := strings.HasPrefix(raw, "-")
	raw = strings.TrimPrefix(raw, "-")

	intPart, decPart, _ := strings.Cut(raw, ".")
	out := applyIndianGrouping(intPart) + "." + decPart
	if negative && strings.Trim(raw, "0.") != "" {
		out = "-" + out
	}
	return out
}

// applyIndianGrouping inserts commas into an integer string using the
// Indian numbering system: the rightmost 3 digits form the first group,
// then every 2 digits form subsequent groups.
func applyIndianGrouping(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	remaining := s[:n-3]
	for len(remaining) > 2 {
		result = remaining[len(remaining)-2:] + "," + result
		remaining = remaining[:len(remaining)-2]
	}
	if len(remaining) > 0 {
		result = remaining + "," + result
	}
	return result
}

// FormatQty drops trailing zeros from a quantity.
func FormatQty(q decimal.Decimal) string {
	return q.Round(3).String()
}

// FormatPercent renders a rate such as 18 or 0.25 with a percent sign.
func FormatPercent(p decimal.Decimal) string {
	return p.Round(2).String() + "%"
}
