package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney formats an amount with two decimals and comma thousands
// separators, e.g. "1,250.75". Rounding happens only here, at presentation.
func FormatMoney(amount decimal.Decimal) string {
	neg := amount.IsNegative()
	s := amount.Abs().StringFixed(2)

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i:]
	}

	var b strings.Builder
	// Pre-allocate: digits + separators + sign
	b.Grow(len(s) + len(whole)/3 + 1)
	if neg {
		b.WriteByte('-')
	}

	// Insert separators from the left.
	rem := len(whole) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(whole[:rem])
	for i := rem; i < len(whole); i += 3 {
		b.WriteByte(',')
		b.WriteString(whole[i : i+3])
	}
	b.WriteString(frac)

	return b.String()
}

// FormatPercent formats a percentage with two decimals, e.g. "15.00%"
func FormatPercent(pct decimal.Decimal) string {
	return pct.StringFixed(2) + "%"
}
