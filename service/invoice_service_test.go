package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cashlytic-pos/models"
)

func sampleSale() *models.Sale {
	comments := "rush order <fragile>"
	return &models.Sale{
		SaleID:          42,
		SaleDate:        time.Date(2026, 1, 4, 10, 30, 0, 0, time.UTC),
		SalespersonID:   3,
		SalespersonName: "Nimal Perera",
		Items:           2,
		Total:           decimal.RequireFromString("1270"),
		Comments:        &comments,
		Details: []models.SaleLineItem{
			{ProductID: 7, ProductName: "Notebook A5", RetailPrice: decimal.RequireFromString("100"), Quantity: 2, Discount: decimal.RequireFromString("30")},
			{ProductID: 9, ProductName: "Desk Lamp", RetailPrice: decimal.RequireFromString("1100"), Quantity: 1, Discount: decimal.Zero},
		},
	}
}

func TestRenderHTML(t *testing.T) {
	svc := NewInvoiceService("", DefaultReceiptWidth)

	html, err := svc.RenderHTML(sampleSale(), false)
	require.NoError(t, err)

	assert.Contains(t, html, "Invoice #42")
	assert.Contains(t, html, "Nimal Perera")
	assert.Contains(t, html, "2026-01-04 10:30")
	assert.Contains(t, html, "Notebook A5")
	assert.Contains(t, html, "170.00")
	assert.Contains(t, html, "(15.00%)")
	assert.Contains(t, html, "1,300.00")
	assert.Contains(t, html, "1,270.00")
	assert.Contains(t, html, "rush order &lt;fragile&gt;")
	assert.NotContains(t, html, `class="receipt"`)
}

func TestRenderHTMLReceiptLayout(t *testing.T) {
	svc := NewInvoiceService("", DefaultReceiptWidth)

	html, err := svc.RenderHTML(sampleSale(), true)
	require.NoError(t, err)
	assert.Contains(t, html, `class="receipt"`)
}

func TestRenderHTMLWithoutItems(t *testing.T) {
	svc := NewInvoiceService("", DefaultReceiptWidth)
	sale := sampleSale()
	sale.Details = nil
	sale.Comments = nil

	html, err := svc.RenderHTML(sale, false)
	require.NoError(t, err)
	assert.Contains(t, html, "0.00%")
	assert.NotContains(t, html, `class="comments"`)
}

func TestDetectChromePathMissing(t *testing.T) {
	path := detectChromePath("/definitely/not/here/chrome")
	assert.NotEqual(t, "/definitely/not/here/chrome", path)
}
