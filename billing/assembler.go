package billing

import (
	"context"
	"fmt"
	"log"
	"strings"

	"cashlytic-pos/apperror"
	"cashlytic-pos/models"
	"cashlytic-pos/pricing"
	"cashlytic-pos/repository"
)

// notFoundMarker is the text the delete stored function raises for a missing sale
// on databases that predate the P0002 error code.
const notFoundMarker = "does not exist"

// Assembler builds stored-function submissions from a cart and rebuilds
// sales from the result sets the stored functions return.
type Assembler struct {
	repository repository.SaleRepositoryInterface
}

// NewAssembler creates a new Assembler
func NewAssembler(repo repository.SaleRepositoryInterface) *Assembler {
	return &Assembler{
		repository: repo,
	}
}

// BuildSubmission validates the header and encodes the items into the
// payload handed to the stored functions. Prices and quantities are not
// re-validated; the total is passed through as sent.
func BuildSubmission(req *models.BillRequest) (models.SubmissionPayload, error) {
	if req == nil || req.SalespersonID <= 0 {
		return models.SubmissionPayload{}, apperror.Validation("BuildSubmission", "salespersonId is required")
	}

	var comments *string
	if req.Comments != nil {
		c := *req.Comments
		comments = &c
	}

	return models.SubmissionPayload{
		SalespersonID: req.SalespersonID,
		Total:         req.Total,
		Comments:      comments,
		EncodedItems:  EncodeItems(req.Items),
	}, nil
}

// Create persists a new sale with its items in a single boundary call.
// The returned sale carries the persisted total and the caller's items.
func (a *Assembler) Create(ctx context.Context, req *models.BillRequest) (*models.Sale, error) {
	payload, err := BuildSubmission(req)
	if err != nil {
		log.Printf("❌ CreateSale: %v", err)
		return nil, err
	}

	log.Printf("📦 CreateSale: salespersonId=%d, total=%s, items=%d", payload.SalespersonID, payload.Total, len(req.Items))
	warnOnTotalMismatch("CreateSale", req)

	created, err := a.repository.AddCompleteBill(ctx, payload)
	if err != nil {
		log.Printf("❌ CreateSale: Error adding bill: %v", err)
		return nil, err
	}

	sale := &models.Sale{
		SaleID:          created.NewSaleID,
		SaleDate:        created.SaleDate,
		UpdatedTime:     nil,
		SalespersonID:   payload.SalespersonID,
		SalespersonName: created.SalespersonName,
		Items:           created.TotalItems,
		Total:           created.Total,
		Comments:        created.Comments,
		Details:         attachItems(created.NewSaleID, req.Items),
	}

	log.Printf("✅ CreateSale: Successfully created sale id=%d with %d items", sale.SaleID, sale.Items)
	return sale, nil
}

// Update fully replaces the header and the item set of an existing sale.
// Existence is checked with a separate read before the write.
func (a *Assembler) Update(ctx context.Context, saleID int64, req *models.BillRequest) (*models.Sale, error) {
	payload, err := BuildSubmission(req)
	if err != nil {
		log.Printf("❌ UpdateSale: %v", err)
		return nil, err
	}

	log.Printf("📦 UpdateSale: id=%d, salespersonId=%d, total=%s, items=%d", saleID, payload.SalespersonID, payload.Total, len(req.Items))

	exists, err := a.repository.Exists(ctx, saleID)
	if err != nil {
		log.Printf("❌ UpdateSale: Error checking sale: %v", err)
		return nil, err
	}
	if !exists {
		log.Printf("❌ UpdateSale: Sale not found: id=%d", saleID)
		return nil, apperror.NotFound("UpdateSale", "sale not found").WithID(saleID)
	}

	warnOnTotalMismatch("UpdateSale", req)

	updated, err := a.repository.UpdateAndReturn(ctx, saleID, payload)
	if err != nil {
		log.Printf("❌ UpdateSale: Error updating bill: %v", err)
		return nil, err
	}
	if updated == nil {
		log.Printf("❌ UpdateSale: No summary row returned for id=%d", saleID)
		return nil, apperror.Boundary("UpdateSale", fmt.Errorf("failed to update sale")).WithID(saleID)
	}

	sale := &models.Sale{
		SaleID:          updated.SaleID,
		SaleDate:        updated.SaleDate,
		UpdatedTime:     updated.UpdatedTime,
		SalespersonID:   payload.SalespersonID,
		SalespersonName: updated.SalespersonName,
		Items:           updated.TotalItems,
		Total:           updated.Total,
		Comments:        updated.Comments,
		Details:         attachItems(updated.SaleID, req.Items),
	}

	log.Printf("✅ UpdateSale: Successfully updated sale id=%d, items=%d", sale.SaleID, sale.Items)
	return sale, nil
}

// Get loads a sale and rebuilds it from its result sets
func (a *Assembler) Get(ctx context.Context, saleID int64) (*models.Sale, error) {
	log.Printf("📦 GetSale: Fetching sale id=%d", saleID)

	sets, err := a.repository.GetByID(ctx, saleID)
	if err != nil {
		log.Printf("❌ GetSale: Error fetching sale: %v", err)
		return nil, err
	}

	sale, err := Reconstruct(saleID, sets)
	if err != nil {
		log.Printf("❌ GetSale: %v", err)
		return nil, err
	}

	log.Printf("✅ GetSale: Successfully fetched sale id=%d with %d items", saleID, sale.Items)
	return sale, nil
}

// Reconstruct assembles a sale from the header, item and totals result sets.
// An empty header result set is reported as NotFound. Empty item or totals
// result sets fall back to no items and a zero total. The totals row, when
// present, is authoritative over the sum of the items.
func Reconstruct(saleID int64, sets *models.SaleResultSets) (*models.Sale, error) {
	if sets == nil || len(sets.Header) == 0 {
		return nil, apperror.NotFound("Reconstruct", "sale not found").WithID(saleID)
	}

	sale, err := decodeHeader(sets.Header[0])
	if err != nil {
		return nil, apperror.Validation("Reconstruct", "malformed sale header").WithID(saleID).WithCause(err)
	}

	items, err := DecodeItemRows(sale.SaleID, sets.Items)
	if err != nil {
		return nil, err
	}
	sale.Details = items
	sale.Items = len(items)

	if len(sets.Totals) > 0 {
		total, _, err := asDecimal(sets.Totals[0][models.ColTotal])
		if err != nil {
			return nil, apperror.Validation("Reconstruct", "malformed sale total").WithID(saleID).WithCause(err)
		}
		sale.Total = total
	}

	return sale, nil
}

func decodeHeader(row models.Row) (*models.Sale, error) {
	sale := &models.Sale{Details: []models.SaleLineItem{}}

	id, ok, err := asInt64(row[models.ColSaleID])
	if err != nil || !ok {
		return nil, fmt.Errorf("%s: missing or invalid (%v)", models.ColSaleID, err)
	}
	sale.SaleID = id

	saleDate, _, err := asTime(row[models.ColSaleDate])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", models.ColSaleDate, err)
	}
	sale.SaleDate = saleDate

	updated, ok, err := asTime(row[models.ColUpdatedTime])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", models.ColUpdatedTime, err)
	}
	if ok {
		sale.UpdatedTime = &updated
	}

	salespersonID, _, err := asInt64(row[models.ColSalespersonID])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", models.ColSalespersonID, err)
	}
	sale.SalespersonID = salespersonID

	if name, ok := asString(row[models.ColSalespersonName]); ok {
		sale.SalespersonName = name
	} else {
		sale.SalespersonName = "Unknown"
	}

	if comments, ok := asString(row[models.ColComments]); ok {
		sale.Comments = &comments
	}

	return sale, nil
}

// Delete removes a sale and returns the snapshot the boundary echoes back.
// A missing sale yields Success=false with a nil error; any other boundary
// failure yields Success=false together with the error.
func (a *Assembler) Delete(ctx context.Context, saleID int64) (*models.DeletionSummary, error) {
	log.Printf("📦 DeleteSale: Deleting sale id=%d", saleID)

	deleted, err := a.repository.DeleteWithDetails(ctx, saleID)
	if err != nil {
		if apperror.IsNotFound(err) || strings.Contains(err.Error(), notFoundMarker) {
			log.Printf("❌ DeleteSale: Sale not found: id=%d", saleID)
			return &models.DeletionSummary{Success: false, Message: "Sale not found."}, nil
		}
		log.Printf("❌ DeleteSale: Error deleting sale: %v", err)
		return &models.DeletionSummary{
			Success: false,
			Message: fmt.Sprintf("Error deleting sale: %v", err),
		}, err
	}
	if deleted == nil {
		log.Printf("❌ DeleteSale: Sale not found: id=%d", saleID)
		return &models.DeletionSummary{Success: false, Message: "Sale not found."}, nil
	}

	message := deleted.Message
	if message == "" {
		message = "Sale successfully deleted"
	}

	log.Printf("✅ DeleteSale: Successfully deleted sale id=%d (%d items)", deleted.DeletedSaleID, deleted.DeletedItemCount)
	return &models.DeletionSummary{
		Success:          true,
		DeletedSaleID:    deleted.DeletedSaleID,
		SalespersonID:    deleted.SalespersonID,
		SalespersonName:  deleted.SalespersonName,
		DeletedTotal:     deleted.DeletedTotal,
		DeletedSaleDate:  deleted.DeletedSaleDate,
		DeletedItemCount: deleted.DeletedItemCount,
		Message:          message,
	}, nil
}

// List returns every sale header with its item count and total
func (a *Assembler) List(ctx context.Context) ([]models.SaleSummary, error) {
	return a.repository.GetAll(ctx)
}

// ListBySalesperson returns the sales made by one salesperson
func (a *Assembler) ListBySalesperson(ctx context.Context, salespersonID int64) ([]models.SaleSummary, error) {
	return a.repository.GetBySalespersonID(ctx, salespersonID)
}

// Exists reports whether a sale header exists
func (a *Assembler) Exists(ctx context.Context, saleID int64) (bool, error) {
	return a.repository.Exists(ctx, saleID)
}

// attachItems copies the caller's items so later edits to the request do not
// leak into the returned sale.
func attachItems(saleID int64, items []models.SaleLineItem) []models.SaleLineItem {
	out := make([]models.SaleLineItem, len(items))
	for i, item := range items {
		item.SaleID = saleID
		out[i] = item
	}
	return out
}

// warnOnTotalMismatch logs when the client total differs from the sum of its
// line totals. The client total is still persisted as sent.
func warnOnTotalMismatch(op string, req *models.BillRequest) {
	computed := pricing.SummarizeItems(req.Items).Total
	if !computed.Equal(req.Total) {
		log.Printf("⚠️ %s: client total %s differs from line totals %s", op, req.Total, computed)
	}
}
