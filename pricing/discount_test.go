package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cashlytic-pos/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "want %s, got %s", want, got.String())
}

func TestLineMath(t *testing.T) {
	l := Line{UnitPrice: dec("100"), Quantity: 2, DiscountAmount: dec("30")}

	assertDecimal(t, "200", LineBaseTotal(l))
	assertDecimal(t, "170", LineTotal(l))
	assertDecimal(t, "15.00", DiscountPercentage(l))
}

func TestDiscountPercentageZeroBase(t *testing.T) {
	l := Line{UnitPrice: decimal.Zero, Quantity: 5, DiscountAmount: decimal.Zero}

	assert.NotPanics(t, func() { DiscountPercentage(l) })
	assertDecimal(t, "0", DiscountPercentage(l))
}

func TestDiscountPercentageRoundsToTwoPlaces(t *testing.T) {
	l := Line{UnitPrice: dec("3"), Quantity: 1, DiscountAmount: dec("1")}

	assertDecimal(t, "33.33", DiscountPercentage(l))
}

func TestCurrencyIsNotRounded(t *testing.T) {
	l := Line{UnitPrice: dec("0.333"), Quantity: 3, DiscountAmount: dec("0.0001")}

	assertDecimal(t, "0.999", LineBaseTotal(l))
	assertDecimal(t, "0.9989", LineTotal(l))
}

func TestOverDiscountYieldsNegativeLineTotal(t *testing.T) {
	l := Line{UnitPrice: dec("10"), Quantity: 1, DiscountAmount: dec("15")}

	assertDecimal(t, "-5", LineTotal(l))
	assertDecimal(t, "150", DiscountPercentage(l))
}

func TestDiscountAmountFromPercentage(t *testing.T) {
	assertDecimal(t, "30", DiscountAmountFromPercentage(dec("100"), 2, dec("15")))
	assertDecimal(t, "0", DiscountAmountFromPercentage(dec("100"), 2, decimal.Zero))
}

func TestSummarize(t *testing.T) {
	breakdown := Summarize([]Line{
		{ProductID: 7, UnitPrice: dec("100"), Quantity: 2, DiscountAmount: dec("30")},
		{ProductID: 8, UnitPrice: dec("50"), Quantity: 1, DiscountAmount: decimal.Zero},
	})

	assertDecimal(t, "250", breakdown.Subtotal)
	assertDecimal(t, "30", breakdown.TotalDiscount)
	assertDecimal(t, "220", breakdown.Total)
	assertDecimal(t, "12", breakdown.OverallDiscountPercentage)
	require.Len(t, breakdown.Lines, 2)
	assert.Equal(t, int64(7), breakdown.Lines[0].ProductID)
	assertDecimal(t, "15", breakdown.Lines[0].DiscountPercentage)
	assertDecimal(t, "50", breakdown.Lines[1].LineTotal)
}

func TestSummarizeEmpty(t *testing.T) {
	breakdown := Summarize(nil)

	assertDecimal(t, "0", breakdown.Subtotal)
	assertDecimal(t, "0", breakdown.OverallDiscountPercentage)
	assert.Empty(t, breakdown.Lines)
}

func TestSummarizeItems(t *testing.T) {
	breakdown := SummarizeItems([]models.SaleLineItem{
		{ProductID: 1, RetailPrice: dec("20"), Quantity: 5, Discount: dec("10")},
	})

	assertDecimal(t, "90", breakdown.Total)
	assertDecimal(t, "10", breakdown.OverallDiscountPercentage)
}
