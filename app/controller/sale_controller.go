package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"cashlytic-pos/billing"
	"cashlytic-pos/models"
	"cashlytic-pos/pricing"
	"cashlytic-pos/service"
)

// SaleController handles HTTP requests for sales
type SaleController struct {
	assembler *billing.Assembler
	invoices  service.InvoiceServiceInterface
	archive   service.ArchiveServiceInterface
}

// NewSaleController creates a new SaleController.
// archive may be nil when no Drive folder is configured.
func NewSaleController(assembler *billing.Assembler, invoices service.InvoiceServiceInterface, archive service.ArchiveServiceInterface) *SaleController {
	return &SaleController{
		assembler: assembler,
		invoices:  invoices,
		archive:   archive,
	}
}

// ListSales handles GET /api/sales
func (c *SaleController) ListSales(ctx *fiber.Ctx) error {
	logRequest(ctx, "ListSales")

	sales, err := c.assembler.List(ctx.UserContext())
	if err != nil {
		return respondError(ctx, "ListSales", err)
	}

	log.Printf("✅ ListSales: Returning %d sales", len(sales))
	return ctx.JSON(sales)
}

// ListBySalesperson handles GET /api/sales/salesperson/:id
func (c *SaleController) ListBySalesperson(ctx *fiber.Ctx) error {
	logRequest(ctx, "ListBySalesperson")

	salespersonID, ok := idParam(ctx, "id")
	if !ok {
		return badRequest(ctx, "ListBySalesperson", "invalid salesperson id parameter")
	}

	sales, err := c.assembler.ListBySalesperson(ctx.UserContext(), salespersonID)
	if err != nil {
		return respondError(ctx, "ListBySalesperson", err)
	}

	log.Printf("✅ ListBySalesperson: Returning %d sales for salespersonId=%d", len(sales), salespersonID)
	return ctx.JSON(sales)
}

// GetSale handles GET /api/sales/:id
// Example response:
// {
//   "saleId": 42,
//   "salespersonName": "Nimal Perera",
//   "items": 1,
//   "total": 170,
//   "details": [...],
//   "breakdown": {"subtotal": 200, "totalDiscount": 30, "total": 170, "overallDiscountPercentage": 15, "lines": [...]},
//   "cart": [{"productId": 7, "productName": "Notebook A5", "retailPrice": 100, "quantity": 2, "discountPercentage": 15}]
// }
func (c *SaleController) GetSale(ctx *fiber.Ctx) error {
	logRequest(ctx, "GetSale")

	saleID, ok := idParam(ctx, "id")
	if !ok {
		return badRequest(ctx, "GetSale", "invalid sale id parameter")
	}

	sale, err := c.assembler.Get(ctx.UserContext(), saleID)
	if err != nil {
		return respondError(ctx, "GetSale", err)
	}

	return ctx.JSON(models.SaleDetailResponse{
		Sale:      *sale,
		Breakdown: pricing.SummarizeItems(sale.Details),
		Cart:      billing.CartFromSale(sale).Lines,
	})
}

// QuoteCart handles POST /api/sales/quote. It converts cart lines with
// discount percentages into the bill request accepted by CreateSale.
func (c *SaleController) QuoteCart(ctx *fiber.Ctx) error {
	logRequest(ctx, "QuoteCart")

	var req models.CartRequest
	if err := ctx.BodyParser(&req); err != nil {
		return badRequest(ctx, "QuoteCart", "Invalid request body: "+err.Error())
	}
	for _, l := range req.Lines {
		if l.ProductID <= 0 {
			return badRequest(ctx, "QuoteCart", "each item requires a productId")
		}
	}

	cart, err := billing.CartFromRequest(&req)
	if err != nil {
		return respondError(ctx, "QuoteCart", err)
	}

	bill := cart.BillRequest()
	log.Printf("✅ QuoteCart: %d lines, total=%s", len(bill.Items), bill.Total)
	return ctx.JSON(bill)
}

// SaleExists handles GET /api/sales/:id/exists
func (c *SaleController) SaleExists(ctx *fiber.Ctx) error {
	logRequest(ctx, "SaleExists")

	saleID, ok := idParam(ctx, "id")
	if !ok {
		return badRequest(ctx, "SaleExists", "invalid sale id parameter")
	}

	exists, err := c.assembler.Exists(ctx.UserContext(), saleID)
	if err != nil {
		return respondError(ctx, "SaleExists", err)
	}

	return ctx.JSON(fiber.Map{"exists": exists})
}

// CreateSale handles POST /api/sales
// Example request:
// {
//   "salespersonId": 3,
//   "total": 170.00,
//   "comments": "rush order",
//   "items": [{"productId": 7, "retailPrice": 100, "quantity": 2, "discount": 30}]
// }
func (c *SaleController) CreateSale(ctx *fiber.Ctx) error {
	logRequest(ctx, "CreateSale")

	var req models.BillRequest
	if err := ctx.BodyParser(&req); err != nil {
		return badRequest(ctx, "CreateSale", "Invalid request body: "+err.Error())
	}
	if msg := validateBillItems(req.Items); msg != "" {
		return badRequest(ctx, "CreateSale", msg)
	}

	sale, err := c.assembler.Create(ctx.UserContext(), &req)
	if err != nil {
		return respondError(ctx, "CreateSale", err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(sale)
}

// UpdateSale handles PUT /api/sales/:id. The item list is fully replaced.
func (c *SaleController) UpdateSale(ctx *fiber.Ctx) error {
	logRequest(ctx, "UpdateSale")

	saleID, ok := idParam(ctx, "id")
	if !ok {
		return badRequest(ctx, "UpdateSale", "invalid sale id parameter")
	}

	var req models.BillRequest
	if err := ctx.BodyParser(&req); err != nil {
		return badRequest(ctx, "UpdateSale", "Invalid request body: "+err.Error())
	}
	if msg := validateBillItems(req.Items); msg != "" {
		return badRequest(ctx, "UpdateSale", msg)
	}

	sale, err := c.assembler.Update(ctx.UserContext(), saleID, &req)
	if err != nil {
		return respondError(ctx, "UpdateSale", err)
	}

	return ctx.JSON(sale)
}

// DeleteSale handles DELETE /api/sales/:id and returns the deletion receipt
func (c *SaleController) DeleteSale(ctx *fiber.Ctx) error {
	logRequest(ctx, "DeleteSale")

	saleID, ok := idParam(ctx, "id")
	if !ok {
		return badRequest(ctx, "DeleteSale", "invalid sale id parameter")
	}

	summary, err := c.assembler.Delete(ctx.UserContext(), saleID)
	if err != nil {
		log.Printf("❌ DeleteSale: %v", err)
		return ctx.Status(fiber.StatusInternalServerError).JSON(summary)
	}
	if !summary.Success {
		return ctx.Status(fiber.StatusNotFound).JSON(summary)
	}

	return ctx.JSON(summary)
}

// InvoicePDF handles GET /api/sales/:id/invoice.pdf
func (c *SaleController) InvoicePDF(ctx *fiber.Ctx) error {
	logRequest(ctx, "InvoicePDF")

	sale, err := c.loadSale(ctx, "InvoicePDF")
	if sale == nil {
		return err
	}

	pdf, err := c.invoices.GeneratePDF(ctx.UserContext(), sale)
	if err != nil {
		return respondError(ctx, "InvoicePDF", err)
	}

	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, `inline; filename="invoice-`+ctx.Params("id")+`.pdf"`)
	return ctx.Send(pdf)
}

// ReceiptPNG handles GET /api/sales/:id/receipt.png
func (c *SaleController) ReceiptPNG(ctx *fiber.Ctx) error {
	logRequest(ctx, "ReceiptPNG")

	sale, err := c.loadSale(ctx, "ReceiptPNG")
	if sale == nil {
		return err
	}

	png, err := c.invoices.GenerateReceiptPNG(ctx.UserContext(), sale)
	if err != nil {
		return respondError(ctx, "ReceiptPNG", err)
	}

	ctx.Set(fiber.HeaderContentType, "image/png")
	return ctx.Send(png)
}

// ArchiveInvoice handles POST /api/sales/:id/archive
func (c *SaleController) ArchiveInvoice(ctx *fiber.Ctx) error {
	logRequest(ctx, "ArchiveInvoice")

	if c.archive == nil {
		log.Printf("⚠️ ArchiveInvoice: Drive archive is not configured")
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "invoice archive is not configured",
		})
	}

	sale, err := c.loadSale(ctx, "ArchiveInvoice")
	if sale == nil {
		return err
	}

	archived, err := c.archive.ArchiveInvoice(ctx.UserContext(), sale)
	if err != nil {
		return respondError(ctx, "ArchiveInvoice", err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(archived)
}

// loadSale fetches the sale named by the id parameter. On failure it writes
// the response and returns a nil sale.
func (c *SaleController) loadSale(ctx *fiber.Ctx, op string) (*models.Sale, error) {
	saleID, ok := idParam(ctx, "id")
	if !ok {
		return nil, badRequest(ctx, op, "invalid sale id parameter")
	}

	sale, err := c.assembler.Get(ctx.UserContext(), saleID)
	if err != nil {
		return nil, respondError(ctx, op, err)
	}
	return sale, nil
}

// validateBillItems checks the shape of submitted items. Prices and discounts
// are not bounded here; the cart is trusted for those.
func validateBillItems(items []models.SaleLineItem) string {
	for _, item := range items {
		if item.ProductID <= 0 {
			return "each item requires a productId"
		}
		if item.Quantity <= 0 {
			return "quantity must be greater than 0"
		}
	}
	return ""
}
