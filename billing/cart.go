package billing

import (
	"github.com/shopspring/decimal"

	"cashlytic-pos/apperror"
	"cashlytic-pos/models"
	"cashlytic-pos/pricing"
)

var maxPercent = decimal.NewFromInt(100)

// Cart is an in-progress sale before it is submitted
type Cart struct {
	SalespersonID int64
	Comments      *string
	Lines         []models.CartLine
}

// Add appends a product to the cart, or bumps its quantity if already present
func (c *Cart) Add(productID int64, name string, price decimal.Decimal, quantity int) error {
	if quantity <= 0 {
		return apperror.Validation("CartAdd", "quantity must be greater than 0").WithID(productID)
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Quantity += quantity
			return nil
		}
	}
	c.Lines = append(c.Lines, models.CartLine{
		ProductID:          productID,
		ProductName:        name,
		RetailPrice:        price,
		Quantity:           quantity,
		DiscountPercentage: decimal.Zero,
	})
	return nil
}

// SetQuantity changes the quantity of a line
func (c *Cart) SetQuantity(productID int64, quantity int) error {
	if quantity <= 0 {
		return apperror.Validation("CartSetQuantity", "quantity must be greater than 0").WithID(productID)
	}
	line := c.line(productID)
	if line == nil {
		return apperror.NotFound("CartSetQuantity", "product is not in the cart").WithID(productID)
	}
	line.Quantity = quantity
	return nil
}

// SetDiscount sets the discount percentage of a line. Values outside 0..100 are rejected.
func (c *Cart) SetDiscount(productID int64, pct decimal.Decimal) error {
	if pct.IsNegative() {
		return apperror.Validation("CartSetDiscount", "discount cannot be negative").WithID(productID)
	}
	if pct.GreaterThan(maxPercent) {
		return apperror.Validation("CartSetDiscount", "maximum discount allowed is 100%%").WithID(productID)
	}
	line := c.line(productID)
	if line == nil {
		return apperror.NotFound("CartSetDiscount", "product is not in the cart").WithID(productID)
	}
	line.DiscountPercentage = pct
	return nil
}

// Remove drops a line from the cart
func (c *Cart) Remove(productID int64) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// Items converts the cart lines into sale line items with absolute discounts
func (c *Cart) Items() []models.SaleLineItem {
	items := make([]models.SaleLineItem, len(c.Lines))
	for i, l := range c.Lines {
		items[i] = models.SaleLineItem{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			RetailPrice: l.RetailPrice,
			Quantity:    l.Quantity,
			Discount:    pricing.DiscountAmountFromPercentage(l.RetailPrice, l.Quantity, l.DiscountPercentage),
		}
	}
	return items
}

// Total is the sum of the line totals after discounts
func (c *Cart) Total() decimal.Decimal {
	return pricing.SummarizeItems(c.Items()).Total
}

// BillRequest builds the submission request for the cart
func (c *Cart) BillRequest() *models.BillRequest {
	return &models.BillRequest{
		SalespersonID: c.SalespersonID,
		Total:         c.Total(),
		Comments:      c.Comments,
		Items:         c.Items(),
	}
}

// CartFromSale loads a persisted sale back into an editable cart,
// converting each discount amount into a percentage.
func CartFromSale(sale *models.Sale) *Cart {
	cart := &Cart{
		SalespersonID: sale.SalespersonID,
		Comments:      sale.Comments,
		Lines:         make([]models.CartLine, 0, len(sale.Details)),
	}
	for _, item := range sale.Details {
		cart.Lines = append(cart.Lines, models.CartLine{
			ProductID:          item.ProductID,
			ProductName:        item.ProductName,
			RetailPrice:        item.RetailPrice,
			Quantity:           item.Quantity,
			DiscountPercentage: pricing.DiscountPercentage(pricing.LineFromItem(item)),
		})
	}
	return cart
}

// CartFromRequest builds a cart from submitted lines. Lines for the same
// product are merged and every discount is checked against 0..100.
func CartFromRequest(req *models.CartRequest) (*Cart, error) {
	cart := &Cart{
		SalespersonID: req.SalespersonID,
		Comments:      req.Comments,
	}
	for _, l := range req.Lines {
		if err := cart.Add(l.ProductID, l.ProductName, l.RetailPrice, l.Quantity); err != nil {
			return nil, err
		}
		if err := cart.SetDiscount(l.ProductID, l.DiscountPercentage); err != nil {
			return nil, err
		}
	}
	return cart, nil
}

func (c *Cart) line(productID int64) *models.CartLine {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return &c.Lines[i]
		}
	}
	return nil
}
