package models

// Row is one record of a boundary result set keyed by column name.
// Values are whatever the driver produced: int32/int64, string, time.Time,
// decimal.Decimal, driver.Valuer implementations, or nil for SQL NULL.
type Row map[string]interface{}

// ResultSet is one ordered batch of rows returned by a boundary call
type ResultSet []Row

// SaleResultSets holds the three ordered result sets of a get-sale-by-id call:
// the header row, zero or more line-item rows, and zero or one totals row.
type SaleResultSets struct {
	Header ResultSet
	Items  ResultSet
	Totals ResultSet
}

// Result-set column names shared by the stored functions and the decoders
const (
	ColSaleID          = "sale_id"
	ColSaleDate        = "sale_date"
	ColUpdatedTime     = "updated_time"
	ColSalespersonID   = "salesperson_id"
	ColSalespersonName = "salesperson"
	ColComments        = "comments"

	ColSalesDetailID = "sales_detail_id"
	ColProductID     = "product_id"
	ColProductName   = "product_name"
	ColRetailPrice   = "retail_price"
	ColQuantity      = "quantity"
	ColDiscount      = "discount"

	ColTotal = "total"
)
