package pricing

import (
	"github.com/shopspring/decimal"

	"cashlytic-pos/models"
)

// percentPlaces is the display precision of discount percentages.
// Currency amounts are never rounded here.
const percentPlaces = 2

var hundred = decimal.NewFromInt(100)

// Line is the input to the discount math for a single sale line
type Line struct {
	ProductID      int64
	UnitPrice      decimal.Decimal
	Quantity       int
	DiscountAmount decimal.Decimal
}

// LineFromItem builds a Line from a sale line item
func LineFromItem(item models.SaleLineItem) Line {
	return Line{
		ProductID:      item.ProductID,
		UnitPrice:      item.RetailPrice,
		Quantity:       item.Quantity,
		DiscountAmount: item.Discount,
	}
}

// LineBaseTotal returns unitPrice * quantity
func LineBaseTotal(l Line) decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// LineTotal returns the base total minus the discount amount.
// The result may be negative when the discount exceeds the base total.
func LineTotal(l Line) decimal.Decimal {
	return LineBaseTotal(l).Sub(l.DiscountAmount)
}

// DiscountPercentage returns discountAmount / baseTotal * 100 rounded to 2 dp,
// or zero when the base total is not positive.
func DiscountPercentage(l Line) decimal.Decimal {
	return percentOf(l.DiscountAmount, LineBaseTotal(l))
}

// DiscountAmountFromPercentage converts a percentage discount on a line into
// an absolute amount: pct / 100 * unitPrice * quantity.
func DiscountAmountFromPercentage(unitPrice decimal.Decimal, quantity int, pct decimal.Decimal) decimal.Decimal {
	base := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	return pct.Div(hundred).Mul(base)
}

// Summarize computes per-line and aggregate discount figures
func Summarize(lines []Line) models.SaleBreakdown {
	breakdown := models.SaleBreakdown{
		Subtotal:      decimal.Zero,
		TotalDiscount: decimal.Zero,
		Total:         decimal.Zero,
		Lines:         make([]models.BreakdownLine, 0, len(lines)),
	}

	for _, l := range lines {
		base := LineBaseTotal(l)
		lineTotal := base.Sub(l.DiscountAmount)

		breakdown.Subtotal = breakdown.Subtotal.Add(base)
		breakdown.TotalDiscount = breakdown.TotalDiscount.Add(l.DiscountAmount)
		breakdown.Total = breakdown.Total.Add(lineTotal)
		breakdown.Lines = append(breakdown.Lines, models.BreakdownLine{
			ProductID:          l.ProductID,
			BaseTotal:          base,
			DiscountAmount:     l.DiscountAmount,
			DiscountPercentage: percentOf(l.DiscountAmount, base),
			LineTotal:          lineTotal,
		})
	}

	breakdown.OverallDiscountPercentage = percentOf(breakdown.TotalDiscount, breakdown.Subtotal)
	return breakdown
}

// SummarizeItems is Summarize over sale line items
func SummarizeItems(items []models.SaleLineItem) models.SaleBreakdown {
	lines := make([]Line, len(items))
	for i, item := range items {
		lines[i] = LineFromItem(item)
	}
	return Summarize(lines)
}

func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(percentPlaces)
}
