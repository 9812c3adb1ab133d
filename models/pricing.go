package models

import "github.com/shopspring/decimal"

// BreakdownLine represents the discount math for a single sale line
type BreakdownLine struct {
	ProductID          int64           `json:"productId"`
	BaseTotal          decimal.Decimal `json:"baseTotal"`          // unit price x quantity
	DiscountAmount     decimal.Decimal `json:"discountAmount"`     // absolute discount
	DiscountPercentage decimal.Decimal `json:"discountPercentage"` // rounded to 2 dp
	LineTotal          decimal.Decimal `json:"lineTotal"`          // base total - discount
}

// SaleBreakdown represents the aggregate discount math over a sale
type SaleBreakdown struct {
	Subtotal                  decimal.Decimal `json:"subtotal"`
	TotalDiscount             decimal.Decimal `json:"totalDiscount"`
	Total                     decimal.Decimal `json:"total"`
	OverallDiscountPercentage decimal.Decimal `json:"overallDiscountPercentage"`
	Lines                     []BreakdownLine `json:"lines"`
}

// SaleDetailResponse represents the response for a sale with its discount breakdown.
// Cart holds the same lines with discounts as percentages, ready for editing.
type SaleDetailResponse struct {
	Sale
	Breakdown SaleBreakdown `json:"breakdown"`
	Cart      []CartLine    `json:"cart"`
}
