package router

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"cashlytic-pos/app/controller"
)

type Controllers struct {
	Sale        *controller.SaleController
	Product     *controller.ProductController
	Salesperson *controller.SalespersonController
}

// Options configures the HTTP server middleware
type Options struct {
	CORSAllowOrigins string
	AccessLog        bool
}

// pingHandler handles GET /ping
func pingHandler(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// errorHandler renders unhandled errors as JSON
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	log.Printf("❌ %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// New creates the fiber app with middleware and all routes registered
func New(opts Options, controllers *Controllers) *fiber.App {
	// Money goes out as JSON numbers, e.g. "total": 170.5
	decimal.MarshalJSONWithoutQuotes = true

	app := fiber.New(fiber.Config{
		AppName:      "cashlytic-pos",
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: opts.CORSAllowOrigins,
	}))
	if opts.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path} ${error}\n",
		}))
	}

	SetupRoutes(app, controllers)
	return app
}

func SetupRoutes(app *fiber.App, controllers *Controllers) {
	// Ping endpoint
	app.Get("/ping", pingHandler)

	api := app.Group("/api")

	// Sales routes
	sales := api.Group("/sales")
	sales.Get("/", controllers.Sale.ListSales)
	sales.Post("/", controllers.Sale.CreateSale)
	sales.Post("/quote", controllers.Sale.QuoteCart)
	sales.Get("/salesperson/:id", controllers.Sale.ListBySalesperson)
	sales.Get("/:id/exists", controllers.Sale.SaleExists)
	sales.Get("/:id/invoice.pdf", controllers.Sale.InvoicePDF)
	sales.Get("/:id/receipt.png", controllers.Sale.ReceiptPNG)
	sales.Post("/:id/archive", controllers.Sale.ArchiveInvoice)
	sales.Get("/:id", controllers.Sale.GetSale)
	sales.Put("/:id", controllers.Sale.UpdateSale)
	sales.Delete("/:id", controllers.Sale.DeleteSale)

	// Products routes
	products := api.Group("/products")
	products.Get("/", controllers.Product.GetAll)
	products.Post("/", controllers.Product.Add)
	products.Get("/:id", controllers.Product.GetByID)
	products.Put("/:id", controllers.Product.Update)
	products.Delete("/:id", controllers.Product.Delete)

	// Salespersons routes
	salespersons := api.Group("/salespersons")
	salespersons.Get("/", controllers.Salesperson.GetAll)
	salespersons.Post("/", controllers.Salesperson.Add)
	salespersons.Get("/:id", controllers.Salesperson.GetByID)
	salespersons.Put("/:id", controllers.Salesperson.UpdateName)
	salespersons.Delete("/:id", controllers.Salesperson.Delete)
}
