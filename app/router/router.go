package router

import (
	"net/http"

	"attarkart/app/controller"
)

type Controllers struct {
	Pricing      *controller.PricingController
	Checkout     *controller.CheckoutController
	ProductImage *controller.ProductImageController
	Download     *controller.DownloadController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(controllers *Controllers) {
	// Ping endpoint
	http.HandleFunc("/ping", pingHandler)

	// Cart pricing preview, same evaluation the checkout commit re-runs
	http.HandleFunc("/cart/price", controllers.Pricing.PriceCart)

	// Authoritative checkout commit
	http.HandleFunc("/checkout", controllers.Checkout.Checkout)

	// Optimized product images
	http.HandleFunc("/products/image", controllers.ProductImage.GetOptimizedImage)

	// Sync product images from Google Drive
	http.HandleFunc("/admin/products/images/sync", controllers.ProductImage.SyncImages)

	// Price list export
	http.HandleFunc("/admin/price-list/download", controllers.Download.DownloadPriceList)
}
