package migrate

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents the products table
type Product struct {
	ProductID    int64           `gorm:"primaryKey;autoIncrement;column:product_id"`
	Code         string          `gorm:"type:varchar(50);not null;uniqueIndex:ux_products_code"`
	Name         string          `gorm:"type:varchar(200);not null"`
	CostPrice    decimal.Decimal `gorm:"type:numeric;not null;check:chk_products_cost_price,cost_price >= 0"`
	RetailPrice  decimal.Decimal `gorm:"type:numeric;not null;check:chk_products_retail_price,retail_price >= 0"`
	CreationDate time.Time       `gorm:"type:timestamptz;not null;default:now()"`
	UpdatedTime  *time.Time      `gorm:"type:timestamptz"`
}

// TableName specifies the table name for Product
func (Product) TableName() string {
	return "products"
}

// Salesperson represents the salespersons table
type Salesperson struct {
	SalespersonID int64      `gorm:"primaryKey;autoIncrement;column:salesperson_id"`
	Name          string     `gorm:"type:varchar(200);not null"`
	Code          string     `gorm:"type:varchar(50);not null;uniqueIndex:ux_salespersons_code"`
	EnteredDate   time.Time  `gorm:"type:timestamptz;not null;default:now()"`
	UpdatedTime   *time.Time `gorm:"type:timestamptz"`
}

// TableName specifies the table name for Salesperson
func (Salesperson) TableName() string {
	return "salespersons"
}

// SalesMaster represents the sale header table
type SalesMaster struct {
	SaleID        int64           `gorm:"primaryKey;autoIncrement;column:sale_id"`
	SaleDate      time.Time       `gorm:"type:timestamptz;not null;default:now()"`
	UpdatedTime   *time.Time      `gorm:"type:timestamptz"`
	SalespersonID int64           `gorm:"not null;index:ix_sales_master_salesperson"`
	Total         decimal.Decimal `gorm:"type:numeric;not null;default:0"`
	Comments      *string         `gorm:"type:text"`
}

// TableName specifies the table name for SalesMaster
func (SalesMaster) TableName() string {
	return "sales_master"
}

// SalesDetail represents the sale line item table
type SalesDetail struct {
	SalesDetailID int64           `gorm:"primaryKey;autoIncrement;column:sales_detail_id"`
	SaleID        int64           `gorm:"not null;index:ix_sales_detail_sale"`
	ProductID     int64           `gorm:"not null;index:ix_sales_detail_product"`
	RetailPrice   decimal.Decimal `gorm:"type:numeric;not null"`
	Quantity      int             `gorm:"not null;check:chk_sales_detail_quantity,quantity > 0"`
	Discount      decimal.Decimal `gorm:"type:numeric;not null;default:0"`
}

// TableName specifies the table name for SalesDetail
func (SalesDetail) TableName() string {
	return "sales_detail"
}

// AllTables returns the table models in dependency order
func AllTables() []interface{} {
	return []interface{}{
		&Product{},
		&Salesperson{},
		&SalesMaster{},
		&SalesDetail{},
	}
}
