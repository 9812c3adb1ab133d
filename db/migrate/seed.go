package migrate

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Seed inserts demo products and salespersons into empty tables
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		log.Println("⚠️ Seed: Database already has data. Skipping seed.")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		products := []Product{
			{Code: "NB-A5", Name: "Notebook A5", CostPrice: decimal.RequireFromString("60"), RetailPrice: decimal.RequireFromString("100")},
			{Code: "PN-HB", Name: "Pencil HB", CostPrice: decimal.RequireFromString("4"), RetailPrice: decimal.RequireFromString("10")},
			{Code: "ER-01", Name: "Eraser", CostPrice: decimal.RequireFromString("2"), RetailPrice: decimal.RequireFromString("5")},
			{Code: "BP-BL", Name: "Ballpoint Pen Blue", CostPrice: decimal.RequireFromString("12.5"), RetailPrice: decimal.RequireFromString("25")},
			{Code: "GL-ST", Name: "Glue Stick", CostPrice: decimal.RequireFromString("35"), RetailPrice: decimal.RequireFromString("60")},
		}
		if err := tx.Create(&products).Error; err != nil {
			return fmt.Errorf("failed to seed products: %w", err)
		}

		salespersons := []Salesperson{
			{Code: "SP001", Name: "Nimal Perera"},
			{Code: "SP002", Name: "Kamala Silva"},
			{Code: "SP003", Name: "Ruwan Fernando"},
		}
		if err := tx.Create(&salespersons).Error; err != nil {
			return fmt.Errorf("failed to seed salespersons: %w", err)
		}

		log.Printf("✅ Seed: Inserted %d products and %d salespersons", len(products), len(salespersons))
		return nil
	})
}
