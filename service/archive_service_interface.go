package service

import (
	"context"

	"cashlytic-pos/models"
)

// ArchiveServiceInterface defines the contract for archiving sale invoices
type ArchiveServiceInterface interface {
	ArchiveInvoice(ctx context.Context, sale *models.Sale) (*models.ArchivedInvoice, error)
}
