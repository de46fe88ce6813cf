package repository

import (
	"context"

	"attarkart/models"
)

// CatalogRepositoryInterface defines the contract for variant catalog access.
type CatalogRepositoryInterface interface {
	VariantsByIDs(ctx context.Context, ids []int64) (map[int64]models.Variant, error)
	ListActive(ctx context.Context) ([]models.Variant, error)
	UpdateImageURLBySKU(ctx context.Context, sku string, imageURL string) (bool, error)
}

// OfferRepositoryInterface defines the contract for promotion catalog access.
type OfferRepositoryInterface interface {
	AutomaticOffers(ctx context.Context) ([]models.AutomaticOffer, error)
	CouponByCode(ctx context.Context, code string) (*models.CouponRecord, error)
}

// UsageRepositoryInterface defines the contract for per-user usage history.
type UsageRepositoryInterface interface {
	CompletedOrderCount(ctx context.Context, userID int64) (int, error)
	RedemptionCount(ctx context.Context, userID int64, code string) (int, error)
}

// DeliveryRepositoryInterface defines the contract for pincode delivery quotes.
type DeliveryRepositoryInterface interface {
	InfoForPincode(ctx context.Context, pincode string) (models.DeliveryInfo, error)
}

// OrderRepositoryInterface defines the contract for checkout-commit persistence.
type OrderRepositoryInterface interface {
	CreateOrder(ctx context.Context, order *models.Order, lines []models.OrderLine) (*models.Order, error)
	StockShortages(ctx context.Context, lines []models.CartLine) ([]models.StockShortage, error)
}
