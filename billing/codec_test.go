package billing

import (
	"math/big"
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cashlytic-pos/apperror"
	"cashlytic-pos/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestEncodeItems(t *testing.T) {
	items := []models.SaleLineItem{
		{ProductID: 7, RetailPrice: dec("100"), Quantity: 2, Discount: dec("30")},
		{ProductID: 12, RetailPrice: dec("1250.75"), Quantity: 1, Discount: decimal.Zero},
	}

	assert.Equal(t, "7:100:2:30|12:1250.75:1:0", EncodeItems(items))
}

func TestEmptyListIdentity(t *testing.T) {
	assert.Equal(t, "", EncodeItems(nil))
	assert.Equal(t, "", EncodeItems([]models.SaleLineItem{}))

	items, err := DecodeItems("")
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	items := []models.SaleLineItem{
		{ProductID: 1, RetailPrice: dec("0"), Quantity: 1, Discount: dec("0")},
		{ProductID: 7, RetailPrice: dec("100"), Quantity: 2, Discount: dec("30")},
		{ProductID: 99, RetailPrice: dec("19.99"), Quantity: 12, Discount: dec("0.005")},
		{ProductID: 7, RetailPrice: dec("100000000.123456"), Quantity: 3, Discount: dec("1.5")},
	}

	decoded, err := DecodeItems(EncodeItems(items))
	require.NoError(t, err)
	require.Len(t, decoded, len(items))

	for i := range items {
		assert.Equal(t, items[i].ProductID, decoded[i].ProductID, "row %d", i)
		assert.Equal(t, items[i].Quantity, decoded[i].Quantity, "row %d", i)
		assert.Truef(t, items[i].RetailPrice.Equal(decoded[i].RetailPrice), "row %d price %s", i, decoded[i].RetailPrice)
		assert.Truef(t, items[i].Discount.Equal(decoded[i].Discount), "row %d discount %s", i, decoded[i].Discount)
	}
}

func TestDecodeItemsMalformedNumber(t *testing.T) {
	_, err := DecodeItems("7:100:2:30|8:abc:1:0")
	require.Error(t, err)

	assert.True(t, apperror.IsValidation(err))
	assert.Contains(t, err.Error(), "row 1")

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 1, appErr.Context["row"])
}

func TestDecodeItemsMissingField(t *testing.T) {
	_, err := DecodeItems("7:100:2")
	require.Error(t, err)

	assert.True(t, apperror.IsValidation(err))
	assert.Contains(t, err.Error(), "row 0")
}

func TestDecodeItemRows(t *testing.T) {
	rows := models.ResultSet{
		{
			models.ColSalesDetailID: int64(5),
			models.ColProductID:     int64(9),
			models.ColProductName:   "Blue Pen",
			models.ColRetailPrice:   "12.50",
			models.ColQuantity:      int32(4),
			models.ColDiscount:      "5",
		},
		{
			models.ColSalesDetailID: int64(6),
			models.ColProductID:     int64(3),
			models.ColProductName:   nil,
			models.ColRetailPrice:   dec("80"),
			models.ColQuantity:      int64(1),
			models.ColDiscount:      nil,
		},
		{
			models.ColSalesDetailID: int64(7),
			models.ColProductID:     int64(4),
			models.ColProductName:   "Eraser",
			models.ColRetailPrice:   pgtype.Numeric{Int: big.NewInt(10050), Exp: -2, Valid: true},
			models.ColQuantity:      int32(1),
			models.ColDiscount:      pgtype.Numeric{},
		},
	}

	items, err := DecodeItemRows(42, rows)
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, int64(9), items[0].ProductID)
	assert.Equal(t, "Blue Pen", items[0].ProductName)
	assert.Equal(t, 4, items[0].Quantity)
	assert.True(t, dec("12.5").Equal(items[0].RetailPrice))
	assert.True(t, dec("5").Equal(items[0].Discount))
	assert.Equal(t, int64(42), items[0].SaleID)

	assert.Equal(t, int64(3), items[1].ProductID)
	assert.Equal(t, "Product 3", items[1].ProductName)
	assert.True(t, items[1].Discount.IsZero())

	assert.True(t, dec("100.5").Equal(items[2].RetailPrice), "got %s", items[2].RetailPrice)
	assert.True(t, items[2].Discount.IsZero())
}

func TestDecodeItemRowsEmptyNameIsSynthesized(t *testing.T) {
	rows := models.ResultSet{{
		models.ColProductID:   int64(11),
		models.ColProductName: "",
		models.ColRetailPrice: "1",
		models.ColQuantity:    int64(1),
	}}

	items, err := DecodeItemRows(1, rows)
	require.NoError(t, err)
	assert.Equal(t, "Product 11", items[0].ProductName)
}

func TestDecodeItemRowsReportsRowIndex(t *testing.T) {
	rows := models.ResultSet{
		{models.ColProductID: int64(1), models.ColRetailPrice: "10", models.ColQuantity: int64(1)},
		{models.ColProductID: int64(2), models.ColRetailPrice: "10", models.ColQuantity: "two"},
	}

	_, err := DecodeItemRows(8, rows)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	assert.Contains(t, err.Error(), "row 1")
}

func TestDecodeItemRowsRequiresPrice(t *testing.T) {
	rows := models.ResultSet{
		{models.ColProductID: int64(1), models.ColQuantity: int64(1)},
	}

	_, err := DecodeItemRows(8, rows)
	require.Error(t, err)
	assert.Contains(t, err.Error(), models.ColRetailPrice)
}
