package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"cashlytic-pos/db"
	"cashlytic-pos/models"
)

// SalespersonRepository handles database operations for salespersons
type SalespersonRepository struct{}

// NewSalespersonRepository creates a new SalespersonRepository
func NewSalespersonRepository() *SalespersonRepository {
	return &SalespersonRepository{}
}

// Ensure SalespersonRepository implements SalespersonRepositoryInterface
var _ SalespersonRepositoryInterface = (*SalespersonRepository)(nil)

// GetAll retrieves all salespersons
func (r *SalespersonRepository) GetAll(ctx context.Context) ([]models.Salesperson, error) {
	log.Printf("📦 GetAllSalespersons: Fetching salespersons")

	rows, err := db.DB.QueryContext(ctx, `
		SELECT salesperson_id, name, code, entered_date, updated_time
		FROM sp_get_all_salespersons()
	`)
	if err != nil {
		log.Printf("❌ GetAllSalespersons: Error fetching salespersons: %v", err)
		return nil, classifyError("GetAllSalespersons", 0, err, onWrite)
	}
	defer rows.Close()

	salespersons := []models.Salesperson{}
	for rows.Next() {
		sp, err := scanSalesperson(rows)
		if err != nil {
			log.Printf("❌ GetAllSalespersons: Error scanning salesperson: %v", err)
			return nil, fmt.Errorf("failed to scan salesperson: %w", err)
		}
		salespersons = append(salespersons, *sp)
	}

	if err := rows.Err(); err != nil {
		log.Printf("❌ GetAllSalespersons: Error iterating salespersons: %v", err)
		return nil, fmt.Errorf("failed to iterate salespersons: %w", err)
	}

	log.Printf("✅ GetAllSalespersons: Successfully fetched %d salespersons", len(salespersons))
	return salespersons, nil
}

// GetByID retrieves a salesperson by ID. A missing salesperson yields nil, nil.
func (r *SalespersonRepository) GetByID(ctx context.Context, salespersonID int64) (*models.Salesperson, error) {
	log.Printf("📦 GetSalespersonByID: Fetching salesperson id=%d", salespersonID)

	row := db.DB.QueryRowContext(ctx, `
		SELECT salesperson_id, name, code, entered_date, updated_time
		FROM sp_get_salesperson_by_id($1)
	`, salespersonID)

	sp, err := scanSalesperson(row)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Printf("❌ GetSalespersonByID: Salesperson not found: id=%d", salespersonID)
			return nil, nil
		}
		log.Printf("❌ GetSalespersonByID: Error fetching salesperson: %v", err)
		return nil, classifyError("GetSalespersonByID", salespersonID, err, onWrite)
	}

	log.Printf("✅ GetSalespersonByID: Successfully fetched salesperson id=%d", salespersonID)
	return sp, nil
}

// Add creates a salesperson
func (r *SalespersonRepository) Add(ctx context.Context, req *models.SalespersonRequest) error {
	log.Printf("📦 AddSalesperson: code=%s, name=%s", req.Code, req.Name)

	_, err := db.DB.ExecContext(ctx, `SELECT sp_add_salesperson($1, $2)`, req.Name, req.Code)
	if err != nil {
		log.Printf("❌ AddSalesperson: Error inserting salesperson: %v", err)
		return classifyError("AddSalesperson", 0, err, onWrite)
	}

	log.Printf("✅ AddSalesperson: Successfully added salesperson code=%s", req.Code)
	return nil
}

// UpdateName renames a salesperson. The code is immutable.
func (r *SalespersonRepository) UpdateName(ctx context.Context, salespersonID int64, name string) error {
	log.Printf("📦 UpdateSalespersonName: id=%d", salespersonID)

	_, err := db.DB.ExecContext(ctx, `SELECT sp_update_salesperson_name($1, $2)`, salespersonID, name)
	if err != nil {
		log.Printf("❌ UpdateSalespersonName: Error updating salesperson: %v", err)
		return classifyError("UpdateSalespersonName", salespersonID, err, onWrite)
	}

	log.Printf("✅ UpdateSalespersonName: Successfully updated salesperson id=%d", salespersonID)
	return nil
}

// DeleteWithDetails deletes a salesperson who has made no sales
func (r *SalespersonRepository) DeleteWithDetails(ctx context.Context, salespersonID int64) (*models.DeleteResult, error) {
	log.Printf("📦 DeleteSalesperson: id=%d", salespersonID)

	var message string
	err := db.DB.QueryRowContext(ctx, `SELECT sp_delete_salesperson($1)`, salespersonID).Scan(&message)
	if err != nil {
		log.Printf("❌ DeleteSalesperson: Error deleting salesperson: %v", err)
		return nil, classifyError("DeleteSalesperson", salespersonID, err, onDelete)
	}

	log.Printf("✅ DeleteSalesperson: Successfully deleted salesperson id=%d", salespersonID)
	return &models.DeleteResult{Success: true, Message: message}, nil
}

func scanSalesperson(row rowScanner) (*models.Salesperson, error) {
	var sp models.Salesperson
	var updated sql.NullTime
	err := row.Scan(
		&sp.SalespersonID,
		&sp.Name,
		&sp.Code,
		&sp.EnteredDate,
		&updated,
	)
	if err != nil {
		return nil, err
	}
	if updated.Valid {
		sp.UpdatedTime = &updated.Time
	}
	return &sp, nil
}
