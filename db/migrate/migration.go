package migrate

import (
	_ "embed"
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

//go:embed functions.sql
var functionsSQL string

type foreignKey struct {
	table     string
	name      string
	column    string
	refTable  string
	refColumn string
	onDelete  string
}

var foreignKeys = []foreignKey{
	{"sales_master", "fk_sales_master_salesperson", "salesperson_id", "salespersons", "salesperson_id", "RESTRICT"},
	{"sales_detail", "fk_sales_detail_sale", "sale_id", "sales_master", "sale_id", "CASCADE"},
	{"sales_detail", "fk_sales_detail_product", "product_id", "products", "product_id", "RESTRICT"},
}

// Open connects gorm to the database
func Open(dsn string, verbose bool) (*gorm.DB, error) {
	level := logger.Warn
	if verbose {
		level = logger.Info
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(level),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	return db, nil
}

// Run creates the tables, their foreign keys and the stored functions
func Run(db *gorm.DB) error {
	log.Println("📦 Migrate: Creating tables...")
	migrator := db.Migrator()
	for _, model := range AllTables() {
		if migrator.HasTable(model) {
			continue
		}
		if err := migrator.CreateTable(model); err != nil {
			return fmt.Errorf("failed to create table for %T: %w", model, err)
		}
	}

	log.Println("📦 Migrate: Creating foreign key constraints...")
	if err := createForeignKeys(db); err != nil {
		return err
	}

	log.Println("📦 Migrate: Creating stored functions...")
	if err := db.Exec(functionsSQL).Error; err != nil {
		return fmt.Errorf("failed to create stored functions: %w", err)
	}

	log.Println("✅ Migrate: Schema is up to date")
	return nil
}

func createForeignKeys(db *gorm.DB) error {
	for _, fk := range foreignKeys {
		var exists bool
		err := db.Raw(`SELECT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = ?)`, fk.name).Scan(&exists).Error
		if err != nil {
			return fmt.Errorf("failed to check constraint %s: %w", fk.name, err)
		}
		if exists {
			continue
		}

		stmt := fmt.Sprintf(`ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s) ON DELETE %s`,
			fk.table, fk.name, fk.column, fk.refTable, fk.refColumn, fk.onDelete)
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create constraint %s: %w", fk.name, err)
		}
	}
	return nil
}
