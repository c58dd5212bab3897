package gst

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAmountInWords(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		expect string
	}{
		{"zero", "0", "Rupees Zero Only"},
		{"single digit", "7", "Rupees Seven Only"},
		{"teen", "15", "Rupees Fifteen Only"},
		{"round tens", "40", "Rupees Forty Only"},
		{"tens and ones", "99", "Rupees Ninety Nine Only"},
		{"hundred", "100", "Rupees One Hundred Only"},
		{"hundred and one", "101", "Rupees One Hundred and One Only"},
		{"thousand", "1000", "Rupees One Thousand Only"},
		{"thousand and one", "1001", "Rupees One Thousand One Only"},
		{"lakh", "100000", "Rupees One Lakh Only"},
		{"lakhs with rest", "913183", "Rupees Nine Lakh Thirteen Thousand One Hundred and Eighty Three Only"},
		{"crore", "10000000", "Rupees One Crore Only"},
		{"hundreds of crores", "1234567890", "Rupees One Hundred and Twenty Three Crore Forty Five Lakh Sixty Seven Thousand Eight Hundred and Ninety Only"},
		{"rupees and paise", "12980.50", "Rupees Twelve Thousand Nine Hundred and Eighty and Fifty Paise Only"},
		{"paise only", "0.05", "Rupees Zero and Five Paise Only"},
		{"sub-paisa rounds up into rupee", "2.999", "Rupees Three Only"},
		{"sub-paisa rounds up from zero", "0.999", "Rupees One Only"},
		{"sub-paisa rounds half up", "10.125", "Rupees Ten and Thirteen Paise Only"},
		{"negative", "-5", "Minus Rupees Five Only"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, AmountInWords(decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestAmountInWords_Units(t *testing.T) {
	assert.Contains(t, AmountInWords(decimal.NewFromInt(100)), "Hundred")
	assert.Contains(t, AmountInWords(decimal.NewFromInt(100000)), "Lakh")
	assert.Contains(t, AmountInWords(decimal.NewFromInt(10000000)), "Crore")
	assert.NotContains(t, AmountInWords(decimal.NewFromInt(1000000)), "Million")
}

func TestNumberToWords_NoTrailingSpace(t *testing.T) {
	for _, n := range []int64{10, 20, 100, 1000, 100000, 10000000, 1000000000} {
		w := numberToWords(n)
		assert.NotEqual(t, ' ', w[len(w)-1], "n=%d", n)
	}
}
