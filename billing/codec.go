package billing

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/shopspring/decimal"

	"cashlytic-pos/apperror"
	"cashlytic-pos/models"
)

// Line items travel to the bill stored functions as a single string:
//
//	payload := record ('|' record)*
//	record  := productId ':' retailPrice ':' quantity ':' discountAmount
//
// Numbers use plain invariant notation with '.' as the decimal point.
// The stored functions split on these exact separators.
const (
	recordSeparator = "|"
	fieldSeparator  = ":"
)

var payloadLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Sep", Pattern: `[:|]`},
	{Name: "Field", Pattern: `[^:|]+`},
})

type wirePayload struct {
	Records []*wireRecord `parser:"@@ ( '|' @@ )*"`
}

type wireRecord struct {
	ProductID   string `parser:"@Field ':'"`
	RetailPrice string `parser:"@Field ':'"`
	Quantity    string `parser:"@Field ':'"`
	Discount    string `parser:"@Field"`
}

var payloadParser = participle.MustBuild[wirePayload](participle.Lexer(payloadLexer))

// EncodeItems renders items in the stored-function wire format.
// An empty list encodes to an empty string.
func EncodeItems(items []models.SaleLineItem) string {
	records := make([]string, len(items))
	for i, item := range items {
		records[i] = strings.Join([]string{
			strconv.FormatInt(item.ProductID, 10),
			item.RetailPrice.String(),
			strconv.Itoa(item.Quantity),
			item.Discount.String(),
		}, fieldSeparator)
	}
	return strings.Join(records, recordSeparator)
}

// DecodeItems parses a wire-format string back into line items.
// Only productId, retailPrice, quantity and discount are carried by the format.
func DecodeItems(encoded string) ([]models.SaleLineItem, error) {
	items := []models.SaleLineItem{}
	if encoded == "" {
		return items, nil
	}

	payload, err := payloadParser.ParseString("", encoded)
	if err != nil {
		row := 0
		var perr participle.Error
		if errors.As(err, &perr) {
			if offset := perr.Position().Offset; offset >= 0 && offset <= len(encoded) {
				row = strings.Count(encoded[:offset], recordSeparator)
			}
		}
		return nil, apperror.Validation("DecodeItems", "malformed line item at row %d", row).
			WithContext("row", row).
			WithCause(err)
	}

	for i, rec := range payload.Records {
		item, err := rec.lineItem()
		if err != nil {
			return nil, apperror.Validation("DecodeItems", "malformed line item at row %d", i).
				WithContext("row", i).
				WithCause(err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *wireRecord) lineItem() (models.SaleLineItem, error) {
	productID, err := strconv.ParseInt(r.ProductID, 10, 64)
	if err != nil {
		return models.SaleLineItem{}, fmt.Errorf("productId %q: %w", r.ProductID, err)
	}
	price, err := decimal.NewFromString(r.RetailPrice)
	if err != nil {
		return models.SaleLineItem{}, fmt.Errorf("retailPrice %q: %w", r.RetailPrice, err)
	}
	quantity, err := strconv.Atoi(r.Quantity)
	if err != nil {
		return models.SaleLineItem{}, fmt.Errorf("quantity %q: %w", r.Quantity, err)
	}
	discount, err := decimal.NewFromString(r.Discount)
	if err != nil {
		return models.SaleLineItem{}, fmt.Errorf("discount %q: %w", r.Discount, err)
	}
	return models.SaleLineItem{
		ProductID:   productID,
		RetailPrice: price,
		Quantity:    quantity,
		Discount:    discount,
	}, nil
}

// DecodeItemRows converts the line-item result set of a sale into line items,
// preserving row order. A missing product name becomes "Product {id}" and a
// NULL discount becomes zero.
func DecodeItemRows(saleID int64, rows models.ResultSet) ([]models.SaleLineItem, error) {
	items := make([]models.SaleLineItem, 0, len(rows))
	for i, row := range rows {
		item, err := decodeItemRow(saleID, row)
		if err != nil {
			return nil, apperror.Validation("DecodeItemRows", "malformed line item at row %d", i).
				WithID(saleID).
				WithContext("row", i).
				WithCause(err)
		}
		items = append(items, item)
	}
	return items, nil
}

func decodeItemRow(saleID int64, row models.Row) (models.SaleLineItem, error) {
	item := models.SaleLineItem{SaleID: saleID}

	detailID, _, err := asInt64(row[models.ColSalesDetailID])
	if err != nil {
		return item, fmt.Errorf("%s: %w", models.ColSalesDetailID, err)
	}
	item.SalesDetailID = detailID

	productID, ok, err := asInt64(row[models.ColProductID])
	if err != nil {
		return item, fmt.Errorf("%s: %w", models.ColProductID, err)
	}
	if !ok {
		return item, fmt.Errorf("%s is required", models.ColProductID)
	}
	item.ProductID = productID

	price, ok, err := asDecimal(row[models.ColRetailPrice])
	if err != nil {
		return item, fmt.Errorf("%s: %w", models.ColRetailPrice, err)
	}
	if !ok {
		return item, fmt.Errorf("%s is required", models.ColRetailPrice)
	}
	item.RetailPrice = price

	quantity, ok, err := asInt64(row[models.ColQuantity])
	if err != nil {
		return item, fmt.Errorf("%s: %w", models.ColQuantity, err)
	}
	if !ok {
		return item, fmt.Errorf("%s is required", models.ColQuantity)
	}
	item.Quantity = int(quantity)

	discount, _, err := asDecimal(row[models.ColDiscount])
	if err != nil {
		return item, fmt.Errorf("%s: %w", models.ColDiscount, err)
	}
	item.Discount = discount

	if name, ok := asString(row[models.ColProductName]); ok && name != "" {
		item.ProductName = name
	} else {
		item.ProductName = fmt.Sprintf("Product %d", productID)
	}

	return item, nil
}
