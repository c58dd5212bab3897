package gst

import (
	"strings"

	"github.com/shopspring/decimal"
)

var onesWords = []string{
	"Zero", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
}

var teensWords = []string{
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tensWords = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

const (
	thousand = 1000
	lakh     = 100000
	crore    = 10000000
)

// AmountInWords renders an amount in Indian English legal wording, e.g.
// 12980.50 -> "Rupees Twelve Thousand Nine Hundred and Eighty and Fifty Paise Only".
// Rupees are grouped by Thousand, Lakh and Crore.
func AmountInWords(amount decimal.Decimal) string {
	prefix := ""
	if amount.IsNegative() {
		prefix = "Minus "
		amount = amount.Neg()
	}
	// Round before splitting so paise stays below 100.
	amount = amount.Round(2)
	rupees := amount.Floor()
	paise := amount.Sub(rupees).Mul(hundred).Round(0).IntPart()

	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString("Rupees ")
	b.WriteString(numberToWords(rupees.IntPart()))
	if paise > 0 {
		b.WriteString(" and ")
		b.WriteString(numberToWords(paise))
		b.WriteString(" Paise")
	}
	b.WriteString(" Only")
	return b.String()
}

func numberToWords(n int64) string {
	switch {
	case n < 10:
		return onesWords[n]
	case n < 20:
		return teensWords[n-10]
	case n < 100:
		w := tensWords[n/10]
		if n%10 != 0 {
			w += " " + onesWords[n%10]
		}
		return w
	case n < thousand:
		w := onesWords[n/100] + " Hundred"
		if n%100 != 0 {
			w += " and " + numberToWords(n%100)
		}
		return w
	case n < lakh:
		return grouped(n, thousand, "Thousand")
	case n < crore:
		return grouped(n, lakh, "Lakh")
	default:
		return grouped(n, crore, "Crore")
	}
}

func grouped(n, unit int64, label string) string {
	w := numberToWords(n/unit) + " " + label
	if n%unit != 0 {
		w += " " + numberToWords(n%unit)
	}
	return w
}
