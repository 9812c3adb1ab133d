package app

import (
	"context"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"cashlytic-pos/app/controller"
	"cashlytic-pos/app/router"
	"cashlytic-pos/billing"
	"cashlytic-pos/config"
	"cashlytic-pos/db"
	"cashlytic-pos/repository"
	"cashlytic-pos/repository/memory"
	"cashlytic-pos/service"
)

// Repositories groups the storage implementations the app runs against
type Repositories struct {
	Sales        repository.SaleRepositoryInterface
	Products     repository.ProductRepositoryInterface
	Salespersons repository.SalespersonRepositoryInterface
}

// Initialize opens storage for the configured driver and builds the HTTP app
func Initialize(ctx context.Context, cfg *config.Config) (*fiber.App, error) {
	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		return nil, err
	}

	invoices := service.NewInvoiceService(cfg.ChromePath, cfg.ReceiptWidthPx)

	var archive service.ArchiveServiceInterface
	if cfg.ArchiveEnabled() {
		driveService, err := service.NewDriveService(ctx, cfg.GoogleCredentialsPath, cfg.GoogleCredentialsJSON)
		if err != nil {
			return nil, err
		}
		archive = service.NewArchiveService(invoices, driveService, cfg.InvoiceDriveFolderID)
		log.Printf("✓ Invoice archive enabled (folder=%s)", cfg.InvoiceDriveFolderID)
	} else {
		log.Printf("⚠️ Invoice archive disabled: set INVOICE_DRIVE_FOLDER_ID and Google credentials to enable")
	}

	return Build(router.Options{CORSAllowOrigins: cfg.CORSAllowOrigins, AccessLog: true}, repos, invoices, archive), nil
}

// Build wires controllers over the given repositories and services
func Build(opts router.Options, repos Repositories, invoices service.InvoiceServiceInterface, archive service.ArchiveServiceInterface) *fiber.App {
	controllers := &router.Controllers{
		Sale:        controller.NewSaleController(billing.NewAssembler(repos.Sales), invoices, archive),
		Product:     controller.NewProductController(repos.Products),
		Salesperson: controller.NewSalespersonController(repos.Salespersons),
	}
	return router.New(opts, controllers)
}

// NewMemoryRepositories returns repositories backed by one in-memory store
func NewMemoryRepositories(store *memory.Store) Repositories {
	return Repositories{
		Sales:        store.Sales(),
		Products:     store.Products(),
		Salespersons: store.Salespersons(),
	}
}

func openRepositories(ctx context.Context, cfg *config.Config) (Repositories, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		log.Printf("⚠️ Using in-memory storage; data is lost on restart")
		return NewMemoryRepositories(memory.NewStore()), nil
	default:
		// Initialize database connection
		if err := db.InitDB(ctx, cfg.DatabaseURL); err != nil {
			return Repositories{}, fmt.Errorf("failed to initialize database: %w", err)
		}
		return Repositories{
			Sales:        repository.NewSaleRepository(),
			Products:     repository.NewProductRepository(),
			Salespersons: repository.NewSalespersonRepository(),
		}, nil
	}
}
