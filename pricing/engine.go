package pricing

import (
	"context"
	"fmt"
	"time"

	"attarkart/models"
	"attarkart/utils"
)

// CatalogProvider supplies variant snapshots for the ids a cart references.
// Ids missing from the returned map are treated as stale cart references.
type CatalogProvider interface {
	VariantsByIDs(ctx context.Context, ids []int64) (map[int64]models.Variant, error)
}

// OfferProvider supplies the current promotion catalog. CouponByCode matches
// case-insensitively against the normalized uppercase code and returns
// (nil, nil) when no record exists.
type OfferProvider interface {
	AutomaticOffers(ctx context.Context) ([]models.AutomaticOffer, error)
	CouponByCode(ctx context.Context, code string) (*models.CouponRecord, error)
}

// UsageProvider supplies per-user usage history for coupon checks.
type UsageProvider interface {
	CompletedOrderCount(ctx context.Context, userID int64) (int, error)
	RedemptionCount(ctx context.Context, userID int64, code string) (int, error)
}

// Engine is the cart pricing and offer-resolution engine. It is a pure,
// stateless function of its inputs and safe for concurrent use; the same
// Evaluate serves both the live preview and the authoritative checkout
// commit, so the two paths can never diverge.
type Engine struct {
	catalog CatalogProvider
	offers  OfferProvider
	usage   UsageProvider
}

// NewEngine creates a pricing engine over the given providers.
func NewEngine(catalog CatalogProvider, offers OfferProvider, usage UsageProvider) *Engine {
	return &Engine{
		catalog: catalog,
		offers:  offers,
		usage:   usage,
	}
}

// EvaluateInput is one evaluation request. CouponCode is empty when no manual
// coupon is being applied. Delivery is the externally supplied quote for the
// destination; the engine never computes it.
type EvaluateInput struct {
	Lines      []models.CartLine
	CouponCode string
	UserID     int64
	Now        time.Time
	Delivery   models.DeliveryInfo
}

// Result is one evaluation outcome. CouponError is non-nil when the submitted
// coupon was rejected; the breakdown is still fully priced in that case, with
// a zero coupon discount.
type Result struct {
	Breakdown   *models.PriceBreakdown
	CouponError *CouponError
}

// Evaluate produces the authoritative price breakdown for a cart snapshot.
// Structural problems (stale cart, malformed bundle) and invariant violations
// surface as the error return; coupon-eligibility failures are recoverable
// and reported on the Result.
func (e *Engine) Evaluate(ctx context.Context, in EvaluateInput) (*Result, error) {
	variants, err := e.fetchVariants(ctx, in.Lines)
	if err != nil {
		return nil, err
	}

	units, err := NormalizeCart(in.Lines, variants)
	if err != nil {
		return nil, err
	}
	originalTotal, err := OriginalTotal(in.Lines, variants)
	if err != nil {
		return nil, err
	}
	productTotal := ProductTotal(units)

	offers, err := e.offers.AutomaticOffers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load automatic offers: %w", err)
	}
	resolution := ResolveOffers(units, offers, in.Now)

	var couponDiscount int64
	var couponErr *CouponError
	appliedCode := ""
	if in.CouponCode != "" {
		couponDiscount, appliedCode, couponErr, err = e.applyCoupon(ctx, in, units, productTotal-resolution.TotalDiscount())
		if err != nil {
			return nil, err
		}
	}

	breakdown, err := ComposeBreakdown(originalTotal, productTotal, resolution, appliedCode, couponDiscount, in.Delivery)
	if err != nil {
		return nil, err
	}

	return &Result{Breakdown: breakdown, CouponError: couponErr}, nil
}

// fetchVariants collects every variant id the cart references, bundle
// components included, and fetches the snapshot in one call.
func (e *Engine) fetchVariants(ctx context.Context, lines []models.CartLine) (map[int64]models.Variant, error) {
	seen := make(map[int64]bool)
	var ids []int64
	add := func(id int64) {
		if id > 0 && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, line := range lines {
		if line.IsBundle() {
			for _, componentID := range line.ComponentVariantIDs {
				add(componentID)
			}
			continue
		}
		add(line.VariantID)
	}

	variants, err := e.catalog.VariantsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load variant snapshot: %w", err)
	}
	return variants, nil
}

func (e *Engine) applyCoupon(ctx context.Context, in EvaluateInput, units []models.NormalizedUnit, postOfferTotal int64) (int64, string, *CouponError, error) {
	code := utils.NormalizeCouponCode(in.CouponCode)

	record, err := e.offers.CouponByCode(ctx, code)
	if err != nil {
		return 0, "", nil, fmt.Errorf("failed to look up coupon %q: %w", code, err)
	}
	if record == nil {
		return 0, "", &CouponError{Code: code, Reason: CouponNotFound}, nil
	}

	usage := UsageHistory{}
	if !record.IsAutomatic {
		usage.CompletedOrders, err = e.usage.CompletedOrderCount(ctx, in.UserID)
		if err != nil {
			return 0, "", nil, fmt.Errorf("failed to load order count for user %d: %w", in.UserID, err)
		}
		usage.Redemptions, err = e.usage.RedemptionCount(ctx, in.UserID, code)
		if err != nil {
			return 0, "", nil, fmt.Errorf("failed to load redemptions of %q for user %d: %w", code, in.UserID, err)
		}
	}

	discount, couponErr := ValidateCoupon(record, &CouponContext{
		UserID:         in.UserID,
		PostOfferTotal: postOfferTotal,
		ItemCount:      len(units),
		Units:          units,
		Now:            in.Now,
	}, usage)
	if couponErr != nil {
		return 0, "", couponErr, nil
	}
	return discount, code, nil, nil
}
