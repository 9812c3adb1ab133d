package billing_test

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cashlytic-pos/apperror"
	"cashlytic-pos/billing"
	"cashlytic-pos/models"
	"cashlytic-pos/repository"
	"cashlytic-pos/repository/memory"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func strPtr(s string) *string { return &s }

type fixture struct {
	store       *memory.Store
	assembler   *billing.Assembler
	salesperson int64
	notebook    int64
	pencil      int64
	eraser      int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	store.Now = func() time.Time { return time.Date(2026, 1, 4, 10, 30, 0, 0, time.UTC) }

	return &fixture{
		store:       store,
		assembler:   billing.NewAssembler(store.Sales()),
		salesperson: store.SeedSalesperson("SP003", "Nimal Perera"),
		notebook:    store.SeedProduct("NB-A5", "Notebook A5", dec("60"), dec("100")),
		pencil:      store.SeedProduct("PN-HB", "Pencil HB", dec("4"), dec("10")),
		eraser:      store.SeedProduct("ER-01", "Eraser", dec("2"), dec("5")),
	}
}

func TestBuildSubmission(t *testing.T) {
	payload, err := billing.BuildSubmission(&models.BillRequest{
		SalespersonID: 3,
		Comments:      strPtr("rush order"),
		Total:         dec("170.00"),
		Items: []models.SaleLineItem{
			{ProductID: 7, RetailPrice: dec("100"), Quantity: 2, Discount: dec("30")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(3), payload.SalespersonID)
	assert.True(t, dec("170.00").Equal(payload.Total))
	require.NotNil(t, payload.Comments)
	assert.Equal(t, "rush order", *payload.Comments)
	assert.Equal(t, "7:100:2:30", payload.EncodedItems)
}

func TestBuildSubmissionRequiresSalesperson(t *testing.T) {
	_, err := billing.BuildSubmission(&models.BillRequest{Total: dec("1")})
	assert.True(t, apperror.IsValidation(err))

	_, err = billing.BuildSubmission(nil)
	assert.True(t, apperror.IsValidation(err))
}

func TestBuildSubmissionNullComments(t *testing.T) {
	payload, err := billing.BuildSubmission(&models.BillRequest{SalespersonID: 1})
	require.NoError(t, err)
	assert.Nil(t, payload.Comments)
	assert.Equal(t, "", payload.EncodedItems)
}

func TestCreateReturnsPersistedHeaderAndClientItems(t *testing.T) {
	f := newFixture(t)
	items := []models.SaleLineItem{
		{ProductID: f.notebook, ProductName: "Notebook A5", RetailPrice: dec("100"), Quantity: 2, Discount: dec("30")},
	}

	sale, err := f.assembler.Create(context.Background(), &models.BillRequest{
		SalespersonID: f.salesperson,
		Total:         dec("170"),
		Comments:      strPtr("rush order"),
		Items:         items,
	})
	require.NoError(t, err)

	assert.NotZero(t, sale.SaleID)
	assert.Equal(t, "Nimal Perera", sale.SalespersonName)
	assert.Equal(t, 1, sale.Items)
	assert.True(t, dec("170").Equal(sale.Total))
	require.Len(t, sale.Details, 1)
	assert.Equal(t, "Notebook A5", sale.Details[0].ProductName)
	assert.Equal(t, sale.SaleID, sale.Details[0].SaleID)

	items[0].Quantity = 99
	assert.Equal(t, 2, sale.Details[0].Quantity)
}

func TestCreateTrustsClientTotal(t *testing.T) {
	f := newFixture(t)

	sale, err := f.assembler.Create(context.Background(), &models.BillRequest{
		SalespersonID: f.salesperson,
		Total:         dec("500"),
		Items: []models.SaleLineItem{
			{ProductID: f.pencil, RetailPrice: dec("10"), Quantity: 1, Discount: decimal.Zero},
		},
	})
	require.NoError(t, err)
	assert.True(t, dec("500").Equal(sale.Total))
}

func TestCreateUnknownSalespersonIsReferenceError(t *testing.T) {
	f := newFixture(t)

	_, err := f.assembler.Create(context.Background(), &models.BillRequest{
		SalespersonID: 404,
		Total:         dec("10"),
		Items:         []models.SaleLineItem{{ProductID: f.pencil, RetailPrice: dec("10"), Quantity: 1}},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsReference(err))
}

func TestUpdateReplacesAllItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.store.StartSaleIDsAt(42)

	created, err := f.assembler.Create(ctx, &models.BillRequest{
		SalespersonID: f.salesperson,
		Total:         dec("175"),
		Items: []models.SaleLineItem{
			{ProductID: f.notebook, RetailPrice: dec("100"), Quantity: 2, Discount: dec("30")},
			{ProductID: f.eraser, RetailPrice: dec("5"), Quantity: 1, Discount: decimal.Zero},
		},
	})
	require.NoError(t, err)
	require.Equal(t, int64(42), created.SaleID)

	a := models.SaleLineItem{ProductID: f.pencil, RetailPrice: dec("10"), Quantity: 3, Discount: dec("3")}
	b := models.SaleLineItem{ProductID: f.notebook, RetailPrice: dec("95"), Quantity: 1, Discount: decimal.Zero}

	updated, err := f.assembler.Update(ctx, 42, &models.BillRequest{
		SalespersonID: f.salesperson,
		Total:         dec("122"),
		Comments:      strPtr("edited"),
		Items:         []models.SaleLineItem{a, b},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Items)
	assert.NotNil(t, updated.UpdatedTime)

	sale, err := f.assembler.Get(ctx, 42)
	require.NoError(t, err)

	require.Len(t, sale.Details, 2)
	assert.Equal(t, 2, sale.Items)
	assert.Equal(t, a.ProductID, sale.Details[0].ProductID)
	assert.Equal(t, a.Quantity, sale.Details[0].Quantity)
	assert.True(t, a.Discount.Equal(sale.Details[0].Discount))
	assert.Equal(t, "Pencil HB", sale.Details[0].ProductName)
	assert.Equal(t, b.ProductID, sale.Details[1].ProductID)
	assert.True(t, b.RetailPrice.Equal(sale.Details[1].RetailPrice))
	assert.True(t, dec("122").Equal(sale.Total))
	require.NotNil(t, sale.Comments)
	assert.Equal(t, "edited", *sale.Comments)

	for _, item := range sale.Details {
		assert.NotEqual(t, f.eraser, item.ProductID)
	}
}

func TestUpdateMissingSaleIsNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.assembler.Update(context.Background(), 999, &models.BillRequest{SalespersonID: f.salesperson})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

// nilSummaryRepository reports the sale as existing but returns no summary row
type nilSummaryRepository struct {
	repository.SaleRepositoryInterface
}

func (nilSummaryRepository) Exists(ctx context.Context, saleID int64) (bool, error) {
	return true, nil
}

func (nilSummaryRepository) UpdateAndReturn(ctx context.Context, saleID int64, payload models.SubmissionPayload) (*models.UpdatedBill, error) {
	return nil, nil
}

func TestUpdateWithoutSummaryRowIsBoundaryError(t *testing.T) {
	assembler := billing.NewAssembler(nilSummaryRepository{})

	_, err := assembler.Update(context.Background(), 1, &models.BillRequest{SalespersonID: 1})
	require.Error(t, err)
	assert.True(t, apperror.IsBoundary(err))
}

func TestReconstructHeaderOnly(t *testing.T) {
	sets := &models.SaleResultSets{
		Header: models.ResultSet{{
			models.ColSaleID:          int64(42),
			models.ColSaleDate:        time.Date(2026, 1, 4, 0, 0, 0, 0, time.UTC),
			models.ColUpdatedTime:     nil,
			models.ColSalespersonID:   int64(3),
			models.ColSalespersonName: "Nimal Perera",
			models.ColComments:        nil,
		}},
	}

	sale, err := billing.Reconstruct(42, sets)
	require.NoError(t, err)

	assert.NotNil(t, sale.Details)
	assert.Empty(t, sale.Details)
	assert.Equal(t, 0, sale.Items)
	assert.True(t, sale.Total.IsZero())
	assert.Nil(t, sale.UpdatedTime)
	assert.Nil(t, sale.Comments)
}

func TestReconstructEmptyHeaderIsNotFound(t *testing.T) {
	sale, err := billing.Reconstruct(42, &models.SaleResultSets{})
	assert.Nil(t, sale)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))

	_, err = billing.Reconstruct(42, nil)
	assert.True(t, apperror.IsNotFound(err))
}

func TestReconstructTotalsRowIsAuthoritative(t *testing.T) {
	sets := &models.SaleResultSets{
		Header: models.ResultSet{{
			models.ColSaleID:        int64(5),
			models.ColSalespersonID: int64(3),
		}},
		Items: models.ResultSet{{
			models.ColSalesDetailID: int64(1),
			models.ColProductID:     int64(7),
			models.ColRetailPrice:   "100",
			models.ColQuantity:      int64(2),
			models.ColDiscount:      "30",
		}},
		Totals: models.ResultSet{{models.ColTotal: "150.50"}},
	}

	sale, err := billing.Reconstruct(5, sets)
	require.NoError(t, err)

	assert.True(t, dec("150.50").Equal(sale.Total))
	assert.Equal(t, 1, sale.Items)
	assert.Equal(t, "Unknown", sale.SalespersonName)
	assert.Equal(t, "Product 7", sale.Details[0].ProductName)
}

func TestReconstructNumericTotals(t *testing.T) {
	header := models.ResultSet{{
		models.ColSaleID:        int64(8),
		models.ColSalespersonID: int64(3),
	}}

	sale, err := billing.Reconstruct(8, &models.SaleResultSets{
		Header: header,
		Totals: models.ResultSet{{models.ColTotal: pgtype.Numeric{Int: big.NewInt(17050), Exp: -2, Valid: true}}},
	})
	require.NoError(t, err)
	assert.True(t, dec("170.5").Equal(sale.Total), "got %s", sale.Total)

	sale, err = billing.Reconstruct(8, &models.SaleResultSets{
		Header: header,
		Totals: models.ResultSet{{models.ColTotal: pgtype.Numeric{}}},
	})
	require.NoError(t, err)
	assert.True(t, sale.Total.IsZero())
}

func TestGetMissingSaleIsNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.assembler.Get(context.Background(), 999)
	assert.True(t, apperror.IsNotFound(err))
}

func TestDeleteReceipt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.store.StartSaleIDsAt(42)

	_, err := f.assembler.Create(ctx, &models.BillRequest{
		SalespersonID: f.salesperson,
		Total:         dec("170.00"),
		Items: []models.SaleLineItem{
			{ProductID: f.notebook, RetailPrice: dec("100"), Quantity: 1, Discount: dec("30")},
			{ProductID: f.pencil, RetailPrice: dec("10"), Quantity: 10, Discount: decimal.Zero},
		},
	})
	require.NoError(t, err)

	summary, err := f.assembler.Delete(ctx, 42)
	require.NoError(t, err)
	assert.True(t, summary.Success)
	assert.Equal(t, int64(42), summary.DeletedSaleID)
	assert.True(t, dec("170.00").Equal(summary.DeletedTotal))
	assert.Equal(t, 2, summary.DeletedItemCount)
	assert.Equal(t, "Nimal Perera", summary.SalespersonName)

	exists, err := f.assembler.Exists(ctx, 42)
	require.NoError(t, err)
	assert.False(t, exists)

	missing, err := f.assembler.Delete(ctx, 999)
	require.NoError(t, err)
	assert.False(t, missing.Success)
	assert.Equal(t, "Sale not found.", missing.Message)
}

// failingDeleteRepository fails every delete with the given error
type failingDeleteRepository struct {
	repository.SaleRepositoryInterface
	err     error
	deleted *models.DeletedSale
}

func (r failingDeleteRepository) DeleteWithDetails(ctx context.Context, saleID int64) (*models.DeletedSale, error) {
	return r.deleted, r.err
}

func TestDeleteDisambiguatesBoundaryErrors(t *testing.T) {
	ctx := context.Background()

	summary, err := billing.NewAssembler(failingDeleteRepository{
		err: errors.New("Sale with ID 7 does not exist"),
	}).Delete(ctx, 7)
	require.NoError(t, err)
	assert.False(t, summary.Success)
	assert.Equal(t, "Sale not found.", summary.Message)

	summary, err = billing.NewAssembler(failingDeleteRepository{}).Delete(ctx, 7)
	require.NoError(t, err)
	assert.False(t, summary.Success)
	assert.Equal(t, "Sale not found.", summary.Message)

	summary, err = billing.NewAssembler(failingDeleteRepository{
		err: errors.New("connection reset by peer"),
	}).Delete(ctx, 7)
	require.Error(t, err)
	assert.False(t, summary.Success)
	assert.Equal(t, "Error deleting sale: connection reset by peer", summary.Message)
}

func TestListBySalesperson(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	other := f.store.SeedSalesperson("SP004", "Kamala Silva")

	for _, sp := range []int64{f.salesperson, other, f.salesperson} {
		_, err := f.assembler.Create(ctx, &models.BillRequest{
			SalespersonID: sp,
			Total:         dec("10"),
			Items:         []models.SaleLineItem{{ProductID: f.pencil, RetailPrice: dec("10"), Quantity: 1}},
		})
		require.NoError(t, err)
	}

	all, err := f.assembler.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := f.assembler.ListBySalesperson(ctx, f.salesperson)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
	for _, s := range mine {
		assert.Equal(t, f.salesperson, s.SalespersonID)
	}
}
