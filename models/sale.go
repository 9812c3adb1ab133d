package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineItem represents one product line of a sale.
// RetailPrice is the unit price at the time of sale, not a live product price.
// Discount is an absolute amount, not a percentage.
type SaleLineItem struct {
	SalesDetailID int64           `json:"salesDetailId"`
	SaleID        int64           `json:"saleId"`
	ProductID     int64           `json:"productId"`
	ProductName   string          `json:"productName,omitempty"`
	RetailPrice   decimal.Decimal `json:"retailPrice"`
	Quantity      int             `json:"quantity"`
	Discount      decimal.Decimal `json:"discount"`
}

// Sale represents a sale header with its line items
// Example response:
// {
//   "saleId": 42,
//   "saleDate": "2026-01-04T10:30:00Z",
//   "updatedTime": null,
//   "salespersonId": 3,
//   "salespersonName": "Nimal Perera",
//   "items": 1,
//   "total": 170,
//   "comments": "rush order",
//   "details": [
//     {"salesDetailId": 90, "saleId": 42, "productId": 7, "productName": "Notebook A5",
//      "retailPrice": 100, "quantity": 2, "discount": 30}
//   ]
// }
type Sale struct {
	SaleID          int64           `json:"saleId"`
	SaleDate        time.Time       `json:"saleDate"`
	UpdatedTime     *time.Time      `json:"updatedTime"`
	SalespersonID   int64           `json:"salespersonId"`
	SalespersonName string          `json:"salespersonName"`
	Items           int             `json:"items"`
	Total           decimal.Decimal `json:"total"`
	Comments        *string         `json:"comments"`
	Details         []SaleLineItem  `json:"details"`
}

// SaleSummary represents a sale in a list response
type SaleSummary struct {
	SaleID          int64           `json:"saleId"`
	SaleDate        time.Time       `json:"saleDate"`
	UpdatedTime     *time.Time      `json:"updatedTime"`
	SalespersonID   int64           `json:"salespersonId"`
	SalespersonName string          `json:"salespersonName"`
	Items           int             `json:"items"`
	Total           decimal.Decimal `json:"total"`
	Comments        *string         `json:"comments"`
}

// BillRequest represents the request body for creating or fully replacing a sale.
// Total is computed by the client and persisted as sent.
// Example: {
//   "salespersonId": 3,
//   "total": 170.00,
//   "comments": "rush order",
//   "items": [{"productId": 7, "retailPrice": 100, "quantity": 2, "discount": 30}]
// }
type BillRequest struct {
	SalespersonID int64           `json:"salespersonId"`
	Total         decimal.Decimal `json:"total"`
	Comments      *string         `json:"comments"`
	Items         []SaleLineItem  `json:"items"`
}

// SubmissionPayload is the parameter set handed to the bill stored functions
type SubmissionPayload struct {
	SalespersonID int64
	Total         decimal.Decimal
	Comments      *string
	EncodedItems  string
}

// CreatedBill is the single row returned by sp_add_sales_master
type CreatedBill struct {
	NewSaleID       int64
	Total           decimal.Decimal
	SaleDate        time.Time
	SalespersonName string
	Comments        *string
	TotalItems      int
}

// UpdatedBill is the single row returned by sp_update_sales_master
type UpdatedBill struct {
	SaleID          int64
	Total           decimal.Decimal
	SaleDate        time.Time
	UpdatedTime     *time.Time
	SalespersonName string
	Comments        *string
	TotalItems      int
}

// DeletedSale is the snapshot row returned by sp_delete_sales_master
type DeletedSale struct {
	DeletedSaleID    int64
	SalespersonID    int64
	SalespersonName  string
	DeletedTotal     decimal.Decimal
	DeletedSaleDate  time.Time
	DeletedItemCount int
	Message          string
}

// DeletionSummary is the receipt returned after deleting a sale
// Example response:
// {
//   "success": true,
//   "deletedSaleId": 42,
//   "salespersonId": 3,
//   "salespersonName": "Nimal Perera",
//   "deletedTotal": 170,
//   "deletedSaleDate": "2026-01-04T10:30:00Z",
//   "deletedItemCount": 2,
//   "message": "Sale successfully deleted"
// }
type DeletionSummary struct {
	Success          bool            `json:"success"`
	DeletedSaleID    int64           `json:"deletedSaleId"`
	SalespersonID    int64           `json:"salespersonId"`
	SalespersonName  string          `json:"salespersonName"`
	DeletedTotal     decimal.Decimal `json:"deletedTotal"`
	DeletedSaleDate  time.Time       `json:"deletedSaleDate"`
	DeletedItemCount int             `json:"deletedItemCount"`
	Message          string          `json:"message"`
}
