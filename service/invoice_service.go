package service

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"log"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/shopspring/decimal"

	"cashlytic-pos/models"
	"cashlytic-pos/pricing"
	"cashlytic-pos/utils"
)

//go:embed templates/invoice.html
var invoiceTemplateSource string

var invoiceTemplate = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"money":   utils.FormatMoney,
	"percent": utils.FormatPercent,
}).Parse(invoiceTemplateSource))

// receiptViewportWidth is the CSS width of the receipt layout in pixels
const receiptViewportWidth = 320

// InvoiceService renders sale invoices as HTML, PDF and receipt images
type InvoiceService struct {
	chromePath   string
	receiptWidth int
}

// NewInvoiceService creates a new InvoiceService.
// chromePath may be empty, in which case common install paths are probed.
func NewInvoiceService(chromePath string, receiptWidth int) *InvoiceService {
	return &InvoiceService{
		chromePath:   chromePath,
		receiptWidth: receiptWidth,
	}
}

// Ensure InvoiceService implements InvoiceServiceInterface
var _ InvoiceServiceInterface = (*InvoiceService)(nil)

type invoiceLine struct {
	Name               string
	Quantity           int
	UnitPrice          decimal.Decimal
	Discount           decimal.Decimal
	DiscountPercentage decimal.Decimal
	LineTotal          decimal.Decimal
}

// RenderHTML renders the invoice template for a sale
func (s *InvoiceService) RenderHTML(sale *models.Sale, receipt bool) (string, error) {
	breakdown := pricing.SummarizeItems(sale.Details)

	lines := make([]invoiceLine, len(sale.Details))
	for i, item := range sale.Details {
		lines[i] = invoiceLine{
			Name:               item.ProductName,
			Quantity:           item.Quantity,
			UnitPrice:          item.RetailPrice,
			Discount:           item.Discount,
			DiscountPercentage: breakdown.Lines[i].DiscountPercentage,
			LineTotal:          breakdown.Lines[i].LineTotal,
		}
	}

	data := struct {
		Sale      *models.Sale
		Lines     []invoiceLine
		Breakdown models.SaleBreakdown
		Receipt   bool
	}{
		Sale:      sale,
		Lines:     lines,
		Breakdown: breakdown,
		Receipt:   receipt,
	}

	var buf bytes.Buffer
	if err := invoiceTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// GeneratePDF prints the invoice of a sale to an A4 PDF
func (s *InvoiceService) GeneratePDF(ctx context.Context, sale *models.Sale) ([]byte, error) {
	log.Printf("📦 GeneratePDF: Rendering invoice for sale id=%d", sale.SaleID)

	html, err := s.RenderHTML(sale, false)
	if err != nil {
		return nil, err
	}

	browserCtx, cancel := s.newBrowserContext(ctx)
	defer cancel()

	var pdfBuf []byte
	err = chromedp.Run(browserCtx,
		chromedp.EmulateViewport(794, 1123),
		loadHTML(html),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// 210mm x 297mm = 8.27" x 11.69"
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0.4).
				WithMarginBottom(0.4).
				WithMarginLeft(0.4).
				WithMarginRight(0.4).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		log.Printf("❌ GeneratePDF: %v", err)
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	log.Printf("✅ GeneratePDF: sale id=%d, %d bytes", sale.SaleID, len(pdfBuf))
	return pdfBuf, nil
}

// GenerateReceiptPNG screenshots the narrow receipt layout and scales it to
// the thermal printer width
func (s *InvoiceService) GenerateReceiptPNG(ctx context.Context, sale *models.Sale) ([]byte, error) {
	log.Printf("📦 GenerateReceiptPNG: Rendering receipt for sale id=%d", sale.SaleID)

	html, err := s.RenderHTML(sale, true)
	if err != nil {
		return nil, err
	}

	browserCtx, cancel := s.newBrowserContext(ctx)
	defer cancel()

	var shot []byte
	err = chromedp.Run(browserCtx,
		// Device scale 2 so the downscale to printer width stays sharp
		chromedp.EmulateViewport(receiptViewportWidth, 600, chromedp.EmulateScale(2)),
		loadHTML(html),
		chromedp.FullScreenshot(&shot, 100),
	)
	if err != nil {
		log.Printf("❌ GenerateReceiptPNG: %v", err)
		return nil, fmt.Errorf("failed to capture receipt: %w", err)
	}

	out, err := OptimizeReceipt(shot, s.receiptWidth)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ GenerateReceiptPNG: sale id=%d, %d bytes", sale.SaleID, len(out))
	return out, nil
}

// loadHTML replaces the blank page's document with html
func loadHTML(html string) chromedp.Tasks {
	return chromedp.Tasks{
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.Evaluate(`document.fonts.ready`, nil),
	}
}

func (s *InvoiceService) newBrowserContext(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancelTimeout := context.WithTimeout(ctx, 30*time.Second)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if chromePath := detectChromePath(s.chromePath); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	return browserCtx, func() {
		browserCancel()
		allocCancel()
		cancelTimeout()
	}
}

// detectChromePath returns the configured Chrome/Chromium executable if it
// exists, otherwise the first common installation path found
func detectChromePath(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
		log.Printf("⚠️ detectChromePath: CHROME_PATH %s not found, probing defaults", configured)
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}
