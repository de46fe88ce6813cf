package pricing

import (
	"time"

	"attarkart/models"
)

// CouponContext is the post-offer cart state a coupon is validated against.
type CouponContext struct {
	UserID         int64
	PostOfferTotal int64
	ItemCount      int
	Units          []models.NormalizedUnit
	Now            time.Time
}

// UsageHistory is the externally supplied usage lookup: completed orders for
// the user and prior redemptions of a specific code by that user.
type UsageHistory struct {
	CompletedOrders int
	Redemptions     int
}

// ValidateCoupon runs the usage-independent eligibility checks, in order,
// short-circuiting on the first failure, and returns the coupon's discount
// amount on success. The record is the raw stored shape so that an automatic
// offer submitted through the manual path is rejected before anything else.
func ValidateCoupon(record *models.CouponRecord, cartCtx *CouponContext, usage UsageHistory) (int64, *CouponError) {
	if record.IsAutomatic {
		return 0, &CouponError{Code: record.Code, Reason: AutomaticCouponManualApplyRejected}
	}

	coupon := record.AsCoupon()
	terms := coupon.Terms

	if cartCtx.Now.Before(terms.ValidFrom) {
		return 0, &CouponError{Code: coupon.Code, Reason: CouponNotYetActive}
	}
	if cartCtx.Now.After(terms.ValidUntil) {
		return 0, &CouponError{Code: coupon.Code, Reason: CouponExpired}
	}
	if cartCtx.PostOfferTotal < terms.MinOrderValue {
		return 0, &CouponError{Code: coupon.Code, Reason: MinOrderNotMet}
	}
	if cartCtx.ItemCount < terms.MinItemCount {
		return 0, &CouponError{Code: coupon.Code, Reason: MinItemCountNotMet}
	}
	if coupon.FirstOrderOnly && usage.CompletedOrders >= 1 {
		return 0, &CouponError{Code: coupon.Code, Reason: NotFirstOrder}
	}
	if coupon.MaxUsagePerUser > 0 && usage.Redemptions >= coupon.MaxUsagePerUser {
		return 0, &CouponError{Code: coupon.Code, Reason: UsageCapExceeded}
	}
	if coupon.TargetUserID > 0 && coupon.TargetUserID != cartCtx.UserID {
		return 0, &CouponError{Code: coupon.Code, Reason: NotEligibleUser}
	}
	if coupon.TargetCategory != "" && !cartContainsCategory(cartCtx.Units, coupon.TargetCategory) {
		return 0, &CouponError{Code: coupon.Code, Reason: CategoryMismatch}
	}

	var discount int64
	if terms.DiscountType == models.DiscountPercent {
		discount = cartCtx.PostOfferTotal * terms.DiscountValue / 100
	} else {
		discount = terms.DiscountValue
	}
	if terms.MaxDiscountAmount > 0 && discount > terms.MaxDiscountAmount {
		discount = terms.MaxDiscountAmount
	}
	if discount > cartCtx.PostOfferTotal {
		discount = cartCtx.PostOfferTotal
	}
	return discount, nil
}

func cartContainsCategory(units []models.NormalizedUnit, category string) bool {
	for i := range units {
		if units[i].Category == category {
			return true
		}
	}
	return false
}
