package repository

import (
	"context"

	"cashlytic-pos/models"
)

// SaleRepositoryInterface defines the contract of the sale stored functions.
// Implementations return raw result sets; decoding them is the caller's job.
type SaleRepositoryInterface interface {
	// AddCompleteBill persists a header and its encoded items in one call
	AddCompleteBill(ctx context.Context, payload models.SubmissionPayload) (*models.CreatedBill, error)
	// UpdateAndReturn replaces the header and the whole item set of a sale.
	// It returns nil when the call produced no summary row.
	UpdateAndReturn(ctx context.Context, saleID int64, payload models.SubmissionPayload) (*models.UpdatedBill, error)
	// GetByID returns the header, item and totals result sets of a sale in order
	GetByID(ctx context.Context, saleID int64) (*models.SaleResultSets, error)
	// DeleteWithDetails deletes a sale and returns its snapshot, or nil when no row came back
	DeleteWithDetails(ctx context.Context, saleID int64) (*models.DeletedSale, error)
	GetAll(ctx context.Context) ([]models.SaleSummary, error)
	GetBySalespersonID(ctx context.Context, salespersonID int64) ([]models.SaleSummary, error)
	Exists(ctx context.Context, saleID int64) (bool, error)
}

// ProductRepositoryInterface defines the contract for product repository operations
type ProductRepositoryInterface interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, productID int64) (*models.Product, error)
	Add(ctx context.Context, req *models.ProductRequest) error
	Update(ctx context.Context, productID int64, req *models.ProductRequest) error
	DeleteWithDetails(ctx context.Context, productID int64) (*models.DeleteResult, error)
}

// SalespersonRepositoryInterface defines the contract for salesperson repository operations
type SalespersonRepositoryInterface interface {
	GetAll(ctx context.Context) ([]models.Salesperson, error)
	GetByID(ctx context.Context, salespersonID int64) (*models.Salesperson, error)
	Add(ctx context.Context, req *models.SalespersonRequest) error
	UpdateName(ctx context.Context, salespersonID int64, name string) error
	DeleteWithDetails(ctx context.Context, salespersonID int64) (*models.DeleteResult, error)
}
