package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"attarkart/db"
	"attarkart/models"
	"attarkart/utils"
)

// OfferRepository handles database operations for the promotion catalog.
// Automatic offers and manual coupons share one table, disambiguated by the
// is_automatic flag.
type OfferRepository struct{}

// NewOfferRepository creates a new OfferRepository
func NewOfferRepository() *OfferRepository {
	return &OfferRepository{}
}

// Ensure OfferRepository implements OfferRepositoryInterface
var _ OfferRepositoryInterface = (*OfferRepository)(nil)

const promoColumns = `
	id, COALESCE(code, '') AS code, title, is_automatic,
	discount_type, discount_value, min_order_value, min_item_count,
	valid_from, valid_until, COALESCE(max_discount_amount, 0),
	COALESCE(cond_required_category, ''), COALESCE(cond_required_size_ml, 0),
	COALESCE(action_target_size_ml, 0), COALESCE(action_target_max_price, 0),
	COALESCE(action_buy_x, 0), COALESCE(action_get_y, 0),
	first_order_only, COALESCE(max_usage_per_user, 0),
	COALESCE(target_user_id, 0), COALESCE(target_category, '')`

func scanPromoRecord(scan func(dest ...interface{}) error) (*models.CouponRecord, error) {
	var rec models.CouponRecord
	err := scan(
		&rec.ID, &rec.Code, &rec.Title, &rec.IsAutomatic,
		&rec.Terms.DiscountType, &rec.Terms.DiscountValue,
		&rec.Terms.MinOrderValue, &rec.Terms.MinItemCount,
		&rec.Terms.ValidFrom, &rec.Terms.ValidUntil, &rec.Terms.MaxDiscountAmount,
		&rec.Terms.RequiredCategory, &rec.Terms.RequiredSizeMl,
		&rec.Terms.TargetSizeMl, &rec.Terms.TargetMaxPrice,
		&rec.Terms.BuyX, &rec.Terms.GetY,
		&rec.FirstOrderOnly, &rec.MaxUsagePerUser,
		&rec.TargetUserID, &rec.TargetCategory,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// AutomaticOffers returns every automatic promotion, ordered by id so the
// engine's evaluation order never depends on storage order.
func (r *OfferRepository) AutomaticOffers(ctx context.Context) ([]models.AutomaticOffer, error) {
	query := fmt.Sprintf(`SELECT %s FROM promotions WHERE is_automatic = true ORDER BY id ASC`, promoColumns)

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		log.Printf("❌ AutomaticOffers: Error querying promotions: %v", err)
		return nil, fmt.Errorf("failed to query automatic offers: %w", err)
	}
	defer rows.Close()

	var offers []models.AutomaticOffer
	for rows.Next() {
		rec, err := scanPromoRecord(rows.Scan)
		if err != nil {
			log.Printf("❌ AutomaticOffers: Error scanning promotion: %v", err)
			return nil, fmt.Errorf("failed to scan promotion: %w", err)
		}
		offers = append(offers, models.AutomaticOffer{ID: rec.ID, Title: rec.Title, Terms: rec.Terms})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate promotions: %w", err)
	}

	log.Printf("✓ AutomaticOffers: Fetched %d automatic offers", len(offers))
	return offers, nil
}

// CouponByCode looks up a promotion record by code, case-insensitively.
// Returns (nil, nil) when no record carries the code. The raw record is
// returned (automatic or not) so the validator can reject manual application
// of automatic offers.
func (r *OfferRepository) CouponByCode(ctx context.Context, code string) (*models.CouponRecord, error) {
	normalized := utils.NormalizeCouponCode(code)

	query := fmt.Sprintf(`SELECT %s FROM promotions WHERE UPPER(code) = $1`, promoColumns)

	rec, err := scanPromoRecord(db.DB.QueryRowContext(ctx, query, normalized).Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Printf("🔍 CouponByCode: No promotion found for code=%s", normalized)
			return nil, nil
		}
		log.Printf("❌ CouponByCode: Error querying code=%s: %v", normalized, err)
		return nil, fmt.Errorf("failed to query coupon: %w", err)
	}
	return rec, nil
}
