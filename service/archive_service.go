package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"cashlytic-pos/models"
)

const pdfMimeType = "application/pdf"

// ArchiveService renders sale invoices and stores them in a Drive folder
type ArchiveService struct {
	invoices     InvoiceServiceInterface
	driveService DriveServiceInterface
	folderID     string
}

// NewArchiveService creates a new ArchiveService
func NewArchiveService(invoices InvoiceServiceInterface, driveService DriveServiceInterface, folderID string) *ArchiveService {
	return &ArchiveService{
		invoices:     invoices,
		driveService: driveService,
		folderID:     folderID,
	}
}

// Ensure ArchiveService implements ArchiveServiceInterface
var _ ArchiveServiceInterface = (*ArchiveService)(nil)

// ArchiveInvoice uploads the PDF invoice of a sale. Each call creates a new
// file; the name carries a random suffix so re-archiving never collides.
func (s *ArchiveService) ArchiveInvoice(ctx context.Context, sale *models.Sale) (*models.ArchivedInvoice, error) {
	log.Printf("📦 ArchiveInvoice: Archiving invoice for sale id=%d", sale.SaleID)

	pdf, err := s.invoices.GeneratePDF(ctx, sale)
	if err != nil {
		log.Printf("❌ ArchiveInvoice: Error generating PDF: %v", err)
		return nil, fmt.Errorf("failed to generate invoice: %w", err)
	}

	name := fmt.Sprintf("invoice-%d-%s.pdf", sale.SaleID, uuid.NewString()[:8])
	fileID, err := s.driveService.UploadFile(ctx, s.folderID, name, pdfMimeType, pdf)
	if err != nil {
		log.Printf("❌ ArchiveInvoice: Error uploading invoice: %v", err)
		return nil, fmt.Errorf("failed to archive invoice: %w", err)
	}

	log.Printf("✅ ArchiveInvoice: sale id=%d archived as %s", sale.SaleID, fileID)
	return &models.ArchivedInvoice{
		SaleID:      sale.SaleID,
		DriveFileID: fileID,
		FileName:    name,
		URL:         fmt.Sprintf("https://drive.google.com/file/d/%s/view", fileID),
		SizeBytes:   len(pdf),
	}, nil
}
