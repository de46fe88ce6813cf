package repository

import (
	"context"
	"fmt"
	"log"

	"attarkart/db"
	"attarkart/utils"
)

// UsageRepository handles usage-history lookups for coupon eligibility.
type UsageRepository struct{}

// NewUsageRepository creates a new UsageRepository
func NewUsageRepository() *UsageRepository {
	return &UsageRepository{}
}

// Ensure UsageRepository implements UsageRepositoryInterface
var _ UsageRepositoryInterface = (*UsageRepository)(nil)

// CompletedOrderCount returns how many completed orders the user has.
func (r *UsageRepository) CompletedOrderCount(ctx context.Context, userID int64) (int, error) {
	query := `SELECT COUNT(*) FROM orders WHERE user_id = $1 AND status = 'completed'`

	var count int
	if err := db.DB.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		log.Printf("❌ CompletedOrderCount: Error counting orders for user %d: %v", userID, err)
		return 0, fmt.Errorf("failed to count completed orders: %w", err)
	}
	return count, nil
}

// RedemptionCount returns how many times the user has redeemed the coupon code.
func (r *UsageRepository) RedemptionCount(ctx context.Context, userID int64, code string) (int, error) {
	query := `SELECT COUNT(*) FROM coupon_redemptions WHERE user_id = $1 AND UPPER(coupon_code) = $2`

	var count int
	if err := db.DB.QueryRowContext(ctx, query, userID, utils.NormalizeCouponCode(code)).Scan(&count); err != nil {
		log.Printf("❌ RedemptionCount: Error counting redemptions of %s for user %d: %v", code, userID, err)
		return 0, fmt.Errorf("failed to count redemptions: %w", err)
	}
	return count, nil
}
