package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a product in the database
type Product struct {
	ProductID    int64           `json:"productId"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	CostPrice    decimal.Decimal `json:"costPrice"`
	RetailPrice  decimal.Decimal `json:"retailPrice"`
	CreationDate time.Time       `json:"creationDate"`
	UpdatedTime  *time.Time      `json:"updatedTime"`
}

// ProductRequest represents the request body for adding or updating a product
// Example: {"code": "P00007", "name": "Notebook A5", "costPrice": 2.10, "retailPrice": 3.50}
type ProductRequest struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	CostPrice   decimal.Decimal `json:"costPrice"`
	RetailPrice decimal.Decimal `json:"retailPrice"`
}

// DeleteResult represents the outcome of deleting a product or salesperson
type DeleteResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
