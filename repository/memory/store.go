// Package memory is an in-process implementation of the stored-function
// contracts. It backs STORAGE_DRIVER=memory and the package tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"cashlytic-pos/apperror"
	"cashlytic-pos/billing"
	"cashlytic-pos/models"
	"cashlytic-pos/repository"
)

type saleRecord struct {
	header  models.SaleSummary
	details []models.SaleLineItem
}

// Store keeps products, salespersons and sales in maps guarded by a mutex
type Store struct {
	mu sync.Mutex

	// Now is the clock used for creation and update timestamps
	Now func() time.Time

	products     map[int64]*models.Product
	salespersons map[int64]*models.Salesperson
	sales        map[int64]*saleRecord

	nextProductID     int64
	nextSalespersonID int64
	nextSaleID        int64
	nextDetailID      int64
}

// NewStore creates an empty Store
func NewStore() *Store {
	return &Store{
		Now:          time.Now,
		products:     make(map[int64]*models.Product),
		salespersons: make(map[int64]*models.Salesperson),
		sales:        make(map[int64]*saleRecord),
	}
}

// Sales returns the sale side of the store
func (s *Store) Sales() *SaleStore { return &SaleStore{s} }

// Products returns the product side of the store
func (s *Store) Products() *ProductStore { return &ProductStore{s} }

// Salespersons returns the salesperson side of the store
func (s *Store) Salespersons() *SalespersonStore { return &SalespersonStore{s} }

// SaleStore implements the sale stored functions in memory
type SaleStore struct{ s *Store }

// ProductStore implements the product stored functions in memory
type ProductStore struct{ s *Store }

// SalespersonStore implements the salesperson stored functions in memory
type SalespersonStore struct{ s *Store }

var (
	_ repository.SaleRepositoryInterface        = (*SaleStore)(nil)
	_ repository.ProductRepositoryInterface     = (*ProductStore)(nil)
	_ repository.SalespersonRepositoryInterface = (*SalespersonStore)(nil)
)

// decodeForWrite validates a submission the way the stored functions do
func (s *Store) decodeForWrite(op string, payload models.SubmissionPayload) ([]models.SaleLineItem, error) {
	if _, ok := s.salespersons[payload.SalespersonID]; !ok {
		return nil, apperror.Reference(op, "salesperson %d does not exist", payload.SalespersonID)
	}
	items, err := billing.DecodeItems(payload.EncodedItems)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if _, ok := s.products[item.ProductID]; !ok {
			return nil, apperror.Reference(op, "product %d does not exist", item.ProductID)
		}
	}
	return items, nil
}

func (s *Store) insertDetails(saleID int64, items []models.SaleLineItem) []models.SaleLineItem {
	details := make([]models.SaleLineItem, len(items))
	for i, item := range items {
		s.nextDetailID++
		item.SalesDetailID = s.nextDetailID
		item.SaleID = saleID
		details[i] = item
	}
	return details
}

func copyString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func (r *SaleStore) AddCompleteBill(ctx context.Context, payload models.SubmissionPayload) (*models.CreatedBill, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.decodeForWrite("AddCompleteBill", payload)
	if err != nil {
		return nil, err
	}

	s.nextSaleID++
	id := s.nextSaleID
	salesperson := s.salespersons[payload.SalespersonID]
	rec := &saleRecord{
		header: models.SaleSummary{
			SaleID:          id,
			SaleDate:        s.Now(),
			SalespersonID:   payload.SalespersonID,
			SalespersonName: salesperson.Name,
			Total:           payload.Total,
			Comments:        copyString(payload.Comments),
		},
		details: s.insertDetails(id, items),
	}
	rec.header.Items = len(rec.details)
	s.sales[id] = rec

	return &models.CreatedBill{
		NewSaleID:       id,
		Total:           rec.header.Total,
		SaleDate:        rec.header.SaleDate,
		SalespersonName: rec.header.SalespersonName,
		Comments:        copyString(rec.header.Comments),
		TotalItems:      rec.header.Items,
	}, nil
}

func (r *SaleStore) UpdateAndReturn(ctx context.Context, saleID int64, payload models.SubmissionPayload) (*models.UpdatedBill, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.sales[saleID]
	if !ok {
		return nil, nil
	}
	items, err := s.decodeForWrite("UpdateAndReturn", payload)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	rec.header.SalespersonID = payload.SalespersonID
	rec.header.SalespersonName = s.salespersons[payload.SalespersonID].Name
	rec.header.Total = payload.Total
	rec.header.Comments = copyString(payload.Comments)
	rec.header.UpdatedTime = &now
	rec.details = s.insertDetails(saleID, items)
	rec.header.Items = len(rec.details)

	updated := now
	return &models.UpdatedBill{
		SaleID:          saleID,
		Total:           rec.header.Total,
		SaleDate:        rec.header.SaleDate,
		UpdatedTime:     &updated,
		SalespersonName: rec.header.SalespersonName,
		Comments:        copyString(rec.header.Comments),
		TotalItems:      rec.header.Items,
	}, nil
}

func (r *SaleStore) GetByID(ctx context.Context, saleID int64) (*models.SaleResultSets, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	sets := &models.SaleResultSets{}
	rec, ok := s.sales[saleID]
	if !ok {
		return sets, nil
	}

	var updated interface{}
	if rec.header.UpdatedTime != nil {
		updated = *rec.header.UpdatedTime
	}
	var comments interface{}
	if rec.header.Comments != nil {
		comments = *rec.header.Comments
	}
	sets.Header = models.ResultSet{{
		models.ColSaleID:          rec.header.SaleID,
		models.ColSaleDate:        rec.header.SaleDate,
		models.ColUpdatedTime:     updated,
		models.ColSalespersonID:   rec.header.SalespersonID,
		models.ColSalespersonName: rec.header.SalespersonName,
		models.ColComments:        comments,
	}}

	for _, d := range rec.details {
		var name interface{}
		if p, ok := s.products[d.ProductID]; ok {
			name = p.Name
		}
		sets.Items = append(sets.Items, models.Row{
			models.ColSalesDetailID: d.SalesDetailID,
			models.ColProductID:     d.ProductID,
			models.ColProductName:   name,
			models.ColRetailPrice:   d.RetailPrice,
			models.ColQuantity:      int64(d.Quantity),
			models.ColDiscount:      d.Discount,
		})
	}

	sets.Totals = models.ResultSet{{models.ColTotal: rec.header.Total}}
	return sets, nil
}

func (r *SaleStore) DeleteWithDetails(ctx context.Context, saleID int64) (*models.DeletedSale, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.sales[saleID]
	if !ok {
		return nil, apperror.NotFound("DeleteWithDetails", "Sale with ID %d does not exist", saleID)
	}
	delete(s.sales, saleID)

	return &models.DeletedSale{
		DeletedSaleID:    saleID,
		SalespersonID:    rec.header.SalespersonID,
		SalespersonName:  rec.header.SalespersonName,
		DeletedTotal:     rec.header.Total,
		DeletedSaleDate:  rec.header.SaleDate,
		DeletedItemCount: len(rec.details),
		Message:          "Sale successfully deleted",
	}, nil
}

func (r *SaleStore) GetAll(ctx context.Context) ([]models.SaleSummary, error) {
	return r.list(func(models.SaleSummary) bool { return true }), nil
}

func (r *SaleStore) GetBySalespersonID(ctx context.Context, salespersonID int64) ([]models.SaleSummary, error) {
	return r.list(func(h models.SaleSummary) bool { return h.SalespersonID == salespersonID }), nil
}

func (r *SaleStore) list(keep func(models.SaleSummary) bool) []models.SaleSummary {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	sales := []models.SaleSummary{}
	for _, rec := range s.sales {
		if keep(rec.header) {
			h := rec.header
			h.Comments = copyString(h.Comments)
			sales = append(sales, h)
		}
	}
	sort.Slice(sales, func(i, j int) bool { return sales[i].SaleID > sales[j].SaleID })
	return sales
}

func (r *SaleStore) Exists(ctx context.Context, saleID int64) (bool, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.sales[saleID]
	return ok, nil
}

// ItemsOf returns the persisted line items of a sale, for assertions in tests
func (r *SaleStore) ItemsOf(saleID int64) []models.SaleLineItem {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.sales[saleID]
	if !ok {
		return nil
	}
	return append([]models.SaleLineItem(nil), rec.details...)
}

func (r *ProductStore) GetAll(ctx context.Context) ([]models.Product, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	products := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		products = append(products, *p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ProductID < products[j].ProductID })
	return products, nil
}

func (r *ProductStore) GetByID(ctx context.Context, productID int64) (*models.Product, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[productID]
	if !ok {
		return nil, nil
	}
	product := *p
	return &product, nil
}

func (r *ProductStore) Add(ctx context.Context, req *models.ProductRequest) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.products {
		if strings.EqualFold(p.Code, req.Code) {
			return apperror.Constraint("AddProduct", "Product code %s already exists.", req.Code)
		}
	}
	s.nextProductID++
	s.products[s.nextProductID] = &models.Product{
		ProductID:    s.nextProductID,
		Code:         req.Code,
		Name:         req.Name,
		CostPrice:    req.CostPrice,
		RetailPrice:  req.RetailPrice,
		CreationDate: s.Now(),
	}
	return nil
}

func (r *ProductStore) Update(ctx context.Context, productID int64, req *models.ProductRequest) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[productID]
	if !ok {
		return apperror.NotFound("UpdateProduct", "Product with ID %d does not exist.", productID)
	}
	now := s.Now()
	p.Name = req.Name
	p.CostPrice = req.CostPrice
	p.RetailPrice = req.RetailPrice
	p.UpdatedTime = &now
	return nil
}

func (r *ProductStore) DeleteWithDetails(ctx context.Context, productID int64) (*models.DeleteResult, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[productID]; !ok {
		return nil, apperror.NotFound("DeleteProduct", "Product with ID %d does not exist.", productID)
	}
	for _, rec := range s.sales {
		for _, d := range rec.details {
			if d.ProductID == productID {
				return nil, apperror.Constraint("DeleteProduct", "Product with ID %d has been sold and cannot be deleted.", productID)
			}
		}
	}
	delete(s.products, productID)
	return &models.DeleteResult{Success: true, Message: "Product successfully deleted."}, nil
}

func (r *SalespersonStore) GetAll(ctx context.Context) ([]models.Salesperson, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	salespersons := make([]models.Salesperson, 0, len(s.salespersons))
	for _, sp := range s.salespersons {
		salespersons = append(salespersons, *sp)
	}
	sort.Slice(salespersons, func(i, j int) bool { return salespersons[i].SalespersonID < salespersons[j].SalespersonID })
	return salespersons, nil
}

func (r *SalespersonStore) GetByID(ctx context.Context, salespersonID int64) (*models.Salesperson, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	sp, ok := s.salespersons[salespersonID]
	if !ok {
		return nil, nil
	}
	salesperson := *sp
	return &salesperson, nil
}

func (r *SalespersonStore) Add(ctx context.Context, req *models.SalespersonRequest) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sp := range s.salespersons {
		if strings.EqualFold(sp.Code, req.Code) {
			return apperror.Constraint("AddSalesperson", "Salesperson code %s already exists.", req.Code)
		}
	}
	s.nextSalespersonID++
	s.salespersons[s.nextSalespersonID] = &models.Salesperson{
		SalespersonID: s.nextSalespersonID,
		Name:          req.Name,
		Code:          req.Code,
		EnteredDate:   s.Now(),
	}
	return nil
}

func (r *SalespersonStore) UpdateName(ctx context.Context, salespersonID int64, name string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	sp, ok := s.salespersons[salespersonID]
	if !ok {
		return apperror.NotFound("UpdateSalespersonName", "Salesperson with ID %d does not exist.", salespersonID)
	}
	now := s.Now()
	sp.Name = name
	sp.UpdatedTime = &now
	return nil
}

func (r *SalespersonStore) DeleteWithDetails(ctx context.Context, salespersonID int64) (*models.DeleteResult, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.salespersons[salespersonID]; !ok {
		return nil, apperror.NotFound("DeleteSalesperson", "Salesperson with ID %d does not exist.", salespersonID)
	}
	for _, rec := range s.sales {
		if rec.header.SalespersonID == salespersonID {
			return nil, apperror.Constraint("DeleteSalesperson", "Salesperson with ID %d has made sales and cannot be deleted.", salespersonID)
		}
	}
	delete(s.salespersons, salespersonID)
	return &models.DeleteResult{Success: true, Message: "Salesperson successfully deleted."}, nil
}

// SeedProduct inserts a product and returns its id
func (s *Store) SeedProduct(code, name string, cost, retail decimal.Decimal) int64 {
	_ = s.Products().Add(context.Background(), &models.ProductRequest{Code: code, Name: name, CostPrice: cost, RetailPrice: retail})
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextProductID
}

// SeedSalesperson inserts a salesperson and returns its id
func (s *Store) SeedSalesperson(code, name string) int64 {
	_ = s.Salespersons().Add(context.Background(), &models.SalespersonRequest{Code: code, Name: name})
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextSalespersonID
}

// StartSaleIDsAt makes the next created sale take the given id
func (s *Store) StartSaleIDsAt(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSaleID = id - 1
}
