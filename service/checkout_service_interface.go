package service

import (
	"context"

	"attarkart/models"
)

// CheckoutServiceInterface defines the contract for cart preview and
// checkout-commit operations. Both paths run the same pricing evaluation.
type CheckoutServiceInterface interface {
	Preview(ctx context.Context, req *models.PriceCartRequest) (*models.PriceCartResponse, error)
	Commit(ctx context.Context, req *models.CheckoutRequest) (*models.CheckoutResponse, error)
}
