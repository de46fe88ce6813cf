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

// CheckoutController handles HTTP requests for authoritative checkout commits
type CheckoutController struct {
	checkoutService service.CheckoutServiceInterface
}

// NewCheckoutController creates a new CheckoutController
func NewCheckoutController(checkoutService service.CheckoutServiceInterface) *CheckoutController {
	return &CheckoutController{
		checkoutService: checkoutService,
	}
}

// Checkout handles POST /checkout
// Re-runs the same pricing evaluation the preview used and places the order.
// Any difference from the client-displayed total rejects the commit.
func (c *CheckoutController) Checkout(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Checkout: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ Checkout: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Checkout: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if len(req.Lines) == 0 {
		log.Printf("❌ Checkout: Empty cart")
		http.Error(w, "cart must contain at least one line", http.StatusBadRequest)
		return
	}
	if req.UserID <= 0 {
		log.Printf("❌ Checkout: Invalid user_id: %d", req.UserID)
		http.Error(w, "user_id must be greater than 0", http.StatusBadRequest)
		return
	}

	resp, err := c.checkoutService.Commit(r.Context(), &req)
	if err != nil {
		c.writeCommitError(w, err)
		return
	}

	log.Printf("✅ Checkout: Order %s placed, total=%d", resp.Order.Reference, resp.Order.Total)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("❌ Checkout: Error encoding response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

func (c *CheckoutController) writeCommitError(w http.ResponseWriter, err error) {
	var priceChanged *service.PriceChangedError
	var outOfStock *service.OutOfStockError
	var codUnavailable *service.CODUnavailableError
	var couponErr *pricing.CouponError

	switch {
	case errors.As(err, &priceChanged):
		log.Printf("❌ Checkout: Price changed: %v", err)
		http.Error(w, "Prices changed while you were checking out, please review your cart", http.StatusConflict)
	case errors.As(err, &outOfStock):
		log.Printf("❌ Checkout: Out of stock: %v", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error":     "Some items in your cart are out of stock",
			"shortages": outOfStock.Shortages,
		})
	case errors.As(err, &codUnavailable):
		log.Printf("❌ Checkout: COD unavailable: %v", err)
		http.Error(w, "Cash on delivery is not available for this pincode", http.StatusBadRequest)
	case errors.As(err, &couponErr):
		log.Printf("❌ Checkout: Coupon rejected: %v", err)
		http.Error(w, couponErr.Message(), http.StatusUnprocessableEntity)
	default:
		writeEngineError(w, "Checkout", err)
	}
}
