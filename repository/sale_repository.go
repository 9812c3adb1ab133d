package repository

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"

	"cashlytic-pos/db"
	"cashlytic-pos/models"
)

// SaleRepository calls the sale stored functions through the pgx pool
type SaleRepository struct{}

// NewSaleRepository creates a new SaleRepository
func NewSaleRepository() *SaleRepository {
	return &SaleRepository{}
}

// Ensure SaleRepository implements SaleRepositoryInterface
var _ SaleRepositoryInterface = (*SaleRepository)(nil)

// AddCompleteBill inserts the header and its encoded items in one function call
func (r *SaleRepository) AddCompleteBill(ctx context.Context, payload models.SubmissionPayload) (*models.CreatedBill, error) {
	log.Printf("📦 AddCompleteBill: salespersonId=%d, total=%s", payload.SalespersonID, payload.Total)

	query := `
		SELECT new_sale_id, total, sale_date, salesperson, comments, total_items
		FROM sp_add_sales_master($1, $2, $3, $4)
	`

	var created models.CreatedBill
	var salesperson *string
	err := db.Pool.QueryRow(ctx, query,
		payload.SalespersonID,
		payload.Total,
		payload.Comments,
		payload.EncodedItems,
	).Scan(
		&created.NewSaleID,
		&created.Total,
		&created.SaleDate,
		&salesperson,
		&created.Comments,
		&created.TotalItems,
	)
	if err != nil {
		log.Printf("❌ AddCompleteBill: Error adding bill: %v", err)
		return nil, classifyError("AddCompleteBill", 0, err, onWrite)
	}
	if salesperson != nil {
		created.SalespersonName = *salesperson
	}

	log.Printf("✅ AddCompleteBill: Successfully created sale id=%d with %d items", created.NewSaleID, created.TotalItems)
	return &created, nil
}

// UpdateAndReturn replaces the header and all items of a sale.
// It returns nil when the function produced no summary row.
func (r *SaleRepository) UpdateAndReturn(ctx context.Context, saleID int64, payload models.SubmissionPayload) (*models.UpdatedBill, error) {
	log.Printf("📦 UpdateAndReturn: id=%d, salespersonId=%d, total=%s", saleID, payload.SalespersonID, payload.Total)

	query := `
		SELECT sale_id, total, sale_date, updated_time, salesperson, comments, total_items
		FROM sp_update_sales_master($1, $2, $3, $4, $5)
	`

	var updated models.UpdatedBill
	var salesperson *string
	err := db.Pool.QueryRow(ctx, query,
		saleID,
		payload.SalespersonID,
		payload.Total,
		payload.Comments,
		payload.EncodedItems,
	).Scan(
		&updated.SaleID,
		&updated.Total,
		&updated.SaleDate,
		&updated.UpdatedTime,
		&salesperson,
		&updated.Comments,
		&updated.TotalItems,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Printf("⚠️ UpdateAndReturn: No summary row for id=%d", saleID)
			return nil, nil
		}
		log.Printf("❌ UpdateAndReturn: Error updating bill: %v", err)
		return nil, classifyError("UpdateAndReturn", saleID, err, onWrite)
	}
	if salesperson != nil {
		updated.SalespersonName = *salesperson
	}

	log.Printf("✅ UpdateAndReturn: Successfully updated sale id=%d, items=%d", saleID, updated.TotalItems)
	return &updated, nil
}

// GetByID sends the header, item and totals queries as one batch and returns
// the three result sets in that order
func (r *SaleRepository) GetByID(ctx context.Context, saleID int64) (*models.SaleResultSets, error) {
	log.Printf("📦 GetByID: Fetching sale id=%d", saleID)

	batch := &pgx.Batch{}
	batch.Queue(`SELECT * FROM sp_get_sales_master_by_id($1)`, saleID)
	batch.Queue(`SELECT * FROM sp_get_sales_detail_by_sale_id($1)`, saleID)
	batch.Queue(`SELECT * FROM sp_get_sales_total_by_id($1)`, saleID)

	results := db.Pool.SendBatch(ctx, batch)
	defer results.Close()

	sets := &models.SaleResultSets{}
	for i, target := range []*models.ResultSet{&sets.Header, &sets.Items, &sets.Totals} {
		rows, err := results.Query()
		if err != nil {
			log.Printf("❌ GetByID: Error running query %d: %v", i+1, err)
			return nil, classifyError("GetByID", saleID, err, onWrite)
		}
		maps, err := pgx.CollectRows(rows, pgx.RowToMap)
		if err != nil {
			log.Printf("❌ GetByID: Error reading result set %d: %v", i+1, err)
			return nil, classifyError("GetByID", saleID, err, onWrite)
		}
		*target = toResultSet(maps)
	}

	log.Printf("✅ GetByID: Fetched sale id=%d (header=%d, items=%d, totals=%d)", saleID, len(sets.Header), len(sets.Items), len(sets.Totals))
	return sets, nil
}

// DeleteWithDetails deletes a sale and its items and returns the deleted snapshot
func (r *SaleRepository) DeleteWithDetails(ctx context.Context, saleID int64) (*models.DeletedSale, error) {
	log.Printf("📦 DeleteWithDetails: Deleting sale id=%d", saleID)

	query := `
		SELECT deleted_sale_id, salesperson_id, salesperson, deleted_total, deleted_sale_date, deleted_item_count, message
		FROM sp_delete_sales_master($1)
	`

	var deleted models.DeletedSale
	var salesperson, message *string
	err := db.Pool.QueryRow(ctx, query, saleID).Scan(
		&deleted.DeletedSaleID,
		&deleted.SalespersonID,
		&salesperson,
		&deleted.DeletedTotal,
		&deleted.DeletedSaleDate,
		&deleted.DeletedItemCount,
		&message,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Printf("❌ DeleteWithDetails: Sale not found: id=%d", saleID)
			return nil, nil
		}
		log.Printf("❌ DeleteWithDetails: Error deleting sale: %v", err)
		return nil, classifyError("DeleteWithDetails", saleID, err, onDelete)
	}
	if salesperson != nil {
		deleted.SalespersonName = *salesperson
	}
	if message != nil {
		deleted.Message = *message
	}

	log.Printf("✅ DeleteWithDetails: Successfully deleted sale id=%d", saleID)
	return &deleted, nil
}

// GetAll retrieves every sale header, newest first
func (r *SaleRepository) GetAll(ctx context.Context) ([]models.SaleSummary, error) {
	log.Printf("📦 GetAll: Fetching sales")

	sales, err := r.querySummaries(ctx, `SELECT * FROM sp_get_all_sales()`)
	if err != nil {
		log.Printf("❌ GetAll: Error fetching sales: %v", err)
		return nil, classifyError("GetAll", 0, err, onWrite)
	}

	log.Printf("✅ GetAll: Successfully fetched %d sales", len(sales))
	return sales, nil
}

// GetBySalespersonID retrieves the sale headers of one salesperson, newest first
func (r *SaleRepository) GetBySalespersonID(ctx context.Context, salespersonID int64) ([]models.SaleSummary, error) {
	log.Printf("📦 GetBySalespersonID: Fetching sales for salespersonId=%d", salespersonID)

	sales, err := r.querySummaries(ctx, `SELECT * FROM sp_get_sales_by_salesperson($1)`, salespersonID)
	if err != nil {
		log.Printf("❌ GetBySalespersonID: Error fetching sales: %v", err)
		return nil, classifyError("GetBySalespersonID", salespersonID, err, onWrite)
	}

	log.Printf("✅ GetBySalespersonID: Successfully fetched %d sales", len(sales))
	return sales, nil
}

// Exists reports whether a sale header row exists
func (r *SaleRepository) Exists(ctx context.Context, saleID int64) (bool, error) {
	var exists bool
	err := db.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM sales_master WHERE sale_id = $1)`, saleID).Scan(&exists)
	if err != nil {
		log.Printf("❌ Exists: Error checking sale id=%d: %v", saleID, err)
		return false, classifyError("Exists", saleID, err, onWrite)
	}
	return exists, nil
}

func (r *SaleRepository) querySummaries(ctx context.Context, query string, args ...interface{}) ([]models.SaleSummary, error) {
	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sales: %w", err)
	}

	sales, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.SaleSummary, error) {
		var s models.SaleSummary
		var salesperson *string
		var items *int32
		err := row.Scan(
			&s.SaleID,
			&s.SaleDate,
			&s.UpdatedTime,
			&s.SalespersonID,
			&salesperson,
			&items,
			&s.Total,
			&s.Comments,
		)
		if salesperson != nil {
			s.SalespersonName = *salesperson
		}
		if items != nil {
			s.Items = int(*items)
		}
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan sales: %w", err)
	}
	return sales, nil
}

func toResultSet(maps []map[string]interface{}) models.ResultSet {
	set := make(models.ResultSet, len(maps))
	for i, m := range maps {
		set[i] = models.Row(m)
	}
	return set
}
