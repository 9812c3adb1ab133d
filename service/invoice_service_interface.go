package service

import (
	"context"

	"cashlytic-pos/models"
)

// InvoiceServiceInterface defines the contract for invoice rendering
type InvoiceServiceInterface interface {
	RenderHTML(sale *models.Sale, receipt bool) (string, error)
	GeneratePDF(ctx context.Context, sale *models.Sale) ([]byte, error)
	GenerateReceiptPNG(ctx context.Context, sale *models.Sale) ([]byte, error)
}
