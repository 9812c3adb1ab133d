package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":          "0.00",
		"5":          "5.00",
		"170":        "170.00",
		"1250.755":   "1,250.76",
		"999999.999": "1,000,000.00",
		"-1234.5":    "-1,234.50",
		"100000":     "100,000.00",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "15.00%", FormatPercent(decimal.RequireFromString("15")))
	assert.Equal(t, "33.33%", FormatPercent(decimal.RequireFromString("33.333")))
}
