package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"attarkart/models"
	"attarkart/pricing"
	"attarkart/service"
)

// PricingController handles HTTP requests for cart price previews
type PricingController struct {
	checkoutService service.CheckoutServiceInterface
}

// NewPricingController creates a new PricingController
func NewPricingController(checkoutService service.CheckoutServiceInterface) *PricingController {
	return &PricingController{
		checkoutService: checkoutService,
	}
}

// PriceCart handles POST /cart/price
// Prices a cart snapshot for display. A rejected coupon does not fail the
// request: the breakdown is returned with the rejection reason beside it.
func (c *PricingController) PriceCart(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 PriceCart: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ PriceCart: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.PriceCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ PriceCart: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if len(req.Lines) == 0 {
		log.Printf("❌ PriceCart: Empty cart")
		http.Error(w, "cart must contain at least one line", http.StatusBadRequest)
		return
	}

	resp, err := c.checkoutService.Preview(r.Context(), &req)
	if err != nil {
		writeEngineError(w, "PriceCart", err)
		return
	}

	log.Printf("✅ PriceCart: total=%d offerDiscount=%d couponDiscount=%d",
		resp.Breakdown.Total, resp.Breakdown.OfferDiscount, resp.Breakdown.DiscountAmount)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("❌ PriceCart: Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// writeEngineError maps pricing errors to HTTP statuses. Invariant
// violations are logged in full but surfaced to clients as an opaque 500.
func writeEngineError(w http.ResponseWriter, handler string, err error) {
	var stale *pricing.StaleCartError
	var malformed *pricing.MalformedBundleError
	var badQty *pricing.InvalidQuantityError
	var invariant *pricing.InvariantViolationError

	switch {
	case errors.As(err, &stale):
		log.Printf("❌ %s: Stale cart: %v", handler, err)
		http.Error(w, fmt.Sprintf("Cart is stale, refresh and retry: %v", err), http.StatusConflict)
	case errors.As(err, &malformed):
		log.Printf("❌ %s: Malformed bundle: %v", handler, err)
		http.Error(w, fmt.Sprintf("Invalid cart: %v", err), http.StatusBadRequest)
	case errors.As(err, &badQty):
		log.Printf("❌ %s: Invalid quantity: %v", handler, err)
		http.Error(w, fmt.Sprintf("Invalid cart: %v", err), http.StatusBadRequest)
	case errors.As(err, &invariant):
		log.Printf("🚨 %s: Pricing invariant violation: %v", handler, err)
		http.Error(w, "Internal pricing error", http.StatusInternalServerError)
	default:
		log.Printf("❌ %s: Evaluation failed: %v", handler, err)
		http.Error(w, fmt.Sprintf("Failed to price cart: %v", err), http.StatusInternalServerError)
	}
}
