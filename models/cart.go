package models

import "github.com/shopspring/decimal"

// CartLine is a line of a working cart. The discount is held as a percentage,
// the way the point-of-sale screen edits it.
type CartLine struct {
	ProductID          int64           `json:"productId"`
	ProductName        string          `json:"productName,omitempty"`
	RetailPrice        decimal.Decimal `json:"retailPrice"`
	Quantity           int             `json:"quantity"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"` // 0..100
}

// CartRequest represents the request body for pricing a cart before it is submitted
// Example request:
// {
//   "salespersonId": 3,
//   "comments": "rush order",
//   "lines": [{"productId": 7, "retailPrice": 100, "quantity": 2, "discountPercentage": 15}]
// }
type CartRequest struct {
	SalespersonID int64      `json:"salespersonId"`
	Comments      *string    `json:"comments"`
	Lines         []CartLine `json:"lines"`
}
