package numbering

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	seqPadRe = regexp.MustCompile(`\{SEQ(\d+)\}`)
	// GST invoice numbers are at most 16 characters of letters, digits,
	// hyphen and slash.
	numberRe = regexp.MustCompile(`^[A-Za-z0-9/-]{1,16}$`)
)

// DefaultTemplate yields numbers such as "INV/24-25/0042".
const DefaultTemplate = "{PREFIX}/{FY}/{SEQ4}"

// FinancialYear returns the Indian financial year (April to March) that t
// falls in, formatted as "24-25".
func FinancialYear(t time.Time) string {
	start := t.Year()
	if t.Month() < time.April {
		start--
	}
	return fmt.Sprintf("%02d-%02d", start%100, (start+1)%100)
}

// Format renders an invoice number from a template, the seller's prefix,
// the issue date and a sequence number. It is pure and deterministic.
func Format(template, prefix string, issuedAt time.Time, seq int64) (string, error) {
	if template == "" {
		return "", fmt.Errorf("invoice number template is empty")
	}
	if seq <= 0 {
		return "", fmt.Errorf("invalid invoice sequence: %d", seq)
	}

	out := template
	out = strings.ReplaceAll(out, "{PREFIX}", strings.TrimSpace(prefix))
	out = strings.ReplaceAll(out, "{FY}", FinancialYear(issuedAt))
	out = strings.ReplaceAll(out, "{YYYY}", issuedAt.Format("2006"))
	out = strings.ReplaceAll(out, "{YY}", issuedAt.Format("06"))
	out = strings.ReplaceAll(out, "{MM}", issuedAt.Format("01"))
	out = strings.ReplaceAll(out, "{DD}", issuedAt.Format("02"))
	out = strings.ReplaceAll(out, "{SEQ}", strconv.FormatInt(seq, 10))

	out = seqPadRe.ReplaceAllStringFunc(out, func(m string) string {
		match := seqPadRe.FindStringSubmatch(m)
		width, err := strconv.Atoi(match[1])
		if err != nil || width <= 0 {
			return m
		}
		return fmt.Sprintf("%0*d", width, seq)
	})

	if strings.ContainsAny(out, "{}") {
		return "", fmt.Errorf("unresolved token in invoice format: %s", out)
	}
	if !numberRe.MatchString(out) {
		return "", fmt.Errorf("invoice number %q must be 1-16 letters, digits, '-' or '/'", out)
	}
	return out, nil
}
