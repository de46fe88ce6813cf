package app

import (
	"fmt"
	"log"
	"os"

	"attarkart/app/controller"
	"attarkart/app/router"
	"attarkart/db"
	"attarkart/pricing"
	"attarkart/repository"
	"attarkart/service"
)

// Initialize initializes the application
func Initialize() error {
	// Initialize database connection
	if err := db.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize repositories
	catalogRepo := repository.NewCatalogRepository()
	offerRepo := repository.NewOfferRepository()
	usageRepo := repository.NewUsageRepository()
	deliveryRepo := repository.NewDeliveryRepository()
	orderRepo := repository.NewOrderRepository()

	// Initialize the pricing engine over the repository-backed providers
	engine := pricing.NewEngine(catalogRepo, offerRepo, usageRepo)

	// Initialize checkout service (preview and commit share the engine)
	checkoutService := service.NewCheckoutService(engine, catalogRepo, deliveryRepo, orderRepo)

	// Initialize Drive-backed image services. Credentials are optional: the
	// storefront prices carts fine without the image pipeline.
	var syncService service.SyncServiceInterface
	var driveService service.DriveServiceInterface
	credentialsPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	if credentialsPath != "" {
		ds, err := service.NewDriveService(credentialsPath)
		if err != nil {
			return err
		}
		driveService = ds
		syncService = service.NewSyncService(ds, catalogRepo)
	} else {
		log.Printf("⚠️  GOOGLE_APPLICATION_CREDENTIALS not set, product image sync disabled")
	}

	// Ensure the image cache directory exists
	if err := service.EnsureCacheDir(); err != nil {
		return err
	}

	priceListService := service.NewPriceListService(catalogRepo)

	// Create controllers
	controllers := &router.Controllers{
		Pricing:      controller.NewPricingController(checkoutService),
		Checkout:     controller.NewCheckoutController(checkoutService),
		ProductImage: controller.NewProductImageController(catalogRepo, syncService, driveService),
		Download:     controller.NewDownloadController(priceListService),
	}

	// Setup routes using standard http router
	router.SetupRoutes(controllers)

	return nil
}
