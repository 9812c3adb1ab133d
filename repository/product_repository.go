package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"cashlytic-pos/db"
	"cashlytic-pos/models"
)

// ProductRepository handles database operations for products
type ProductRepository struct{}

// NewProductRepository creates a new ProductRepository
func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// Ensure ProductRepository implements ProductRepositoryInterface
var _ ProductRepositoryInterface = (*ProductRepository)(nil)

// GetAll retrieves all products
func (r *ProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	log.Printf("📦 GetAllProducts: Fetching products")

	rows, err := db.DB.QueryContext(ctx, `
		SELECT product_id, code, name, cost_price, retail_price, creation_date, updated_time
		FROM sp_get_all_products()
	`)
	if err != nil {
		log.Printf("❌ GetAllProducts: Error fetching products: %v", err)
		return nil, classifyError("GetAllProducts", 0, err, onWrite)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			log.Printf("❌ GetAllProducts: Error scanning product: %v", err)
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *product)
	}

	if err := rows.Err(); err != nil {
		log.Printf("❌ GetAllProducts: Error iterating products: %v", err)
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	log.Printf("✅ GetAllProducts: Successfully fetched %d products", len(products))
	return products, nil
}

// GetByID retrieves a product by ID. A missing product yields nil, nil.
func (r *ProductRepository) GetByID(ctx context.Context, productID int64) (*models.Product, error) {
	log.Printf("📦 GetProductByID: Fetching product id=%d", productID)

	row := db.DB.QueryRowContext(ctx, `
		SELECT product_id, code, name, cost_price, retail_price, creation_date, updated_time
		FROM sp_get_product_by_id($1)
	`, productID)

	product, err := scanProduct(row)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Printf("❌ GetProductByID: Product not found: id=%d", productID)
			return nil, nil
		}
		log.Printf("❌ GetProductByID: Error fetching product: %v", err)
		return nil, classifyError("GetProductByID", productID, err, onWrite)
	}

	log.Printf("✅ GetProductByID: Successfully fetched product id=%d", productID)
	return product, nil
}

// Add creates a product
func (r *ProductRepository) Add(ctx context.Context, req *models.ProductRequest) error {
	log.Printf("📦 AddProduct: code=%s, name=%s", req.Code, req.Name)

	_, err := db.DB.ExecContext(ctx, `SELECT sp_add_product($1, $2, $3, $4)`,
		req.Code, req.Name, req.CostPrice, req.RetailPrice)
	if err != nil {
		log.Printf("❌ AddProduct: Error inserting product: %v", err)
		return classifyError("AddProduct", 0, err, onWrite)
	}

	log.Printf("✅ AddProduct: Successfully added product code=%s", req.Code)
	return nil
}

// Update changes the name and prices of a product. The code is not updated.
func (r *ProductRepository) Update(ctx context.Context, productID int64, req *models.ProductRequest) error {
	log.Printf("📦 UpdateProduct: id=%d", productID)

	_, err := db.DB.ExecContext(ctx, `SELECT sp_update_product($1, $2, $3, $4)`,
		productID, req.Name, req.CostPrice, req.RetailPrice)
	if err != nil {
		log.Printf("❌ UpdateProduct: Error updating product: %v", err)
		return classifyError("UpdateProduct", productID, err, onWrite)
	}

	log.Printf("✅ UpdateProduct: Successfully updated product id=%d", productID)
	return nil
}

// DeleteWithDetails deletes a product that no sale references
func (r *ProductRepository) DeleteWithDetails(ctx context.Context, productID int64) (*models.DeleteResult, error) {
	log.Printf("📦 DeleteProduct: id=%d", productID)

	var message string
	err := db.DB.QueryRowContext(ctx, `SELECT sp_delete_product($1)`, productID).Scan(&message)
	if err != nil {
		log.Printf("❌ DeleteProduct: Error deleting product: %v", err)
		return nil, classifyError("DeleteProduct", productID, err, onDelete)
	}

	log.Printf("✅ DeleteProduct: Successfully deleted product id=%d", productID)
	return &models.DeleteResult{Success: true, Message: message}, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	var product models.Product
	var updated sql.NullTime
	err := row.Scan(
		&product.ProductID,
		&product.Code,
		&product.Name,
		&product.CostPrice,
		&product.RetailPrice,
		&product.CreationDate,
		&updated,
	)
	if err != nil {
		return nil, err
	}
	if updated.Valid {
		product.UpdatedTime = &updated.Time
	}
	return &product, nil
}
