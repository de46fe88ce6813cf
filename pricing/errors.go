package pricing

import "fmt"

// StaleCartError indicates the cart references a variant absent from the
// catalog snapshot. The caller must refresh the cart and retry; the engine
// never silently drops a line.
type StaleCartError struct {
	VariantID int64
}

func (e *StaleCartError) Error() string {
	return fmt.Sprintf("stale cart: variant %d not found in catalog snapshot", e.VariantID)
}

// InvalidQuantityError indicates a cart line with a non-positive quantity.
// Quantity is an input constraint, not something to silently skip.
type InvalidQuantityError struct {
	LineIndex int
	Quantity  int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid cart: line %d has quantity %d, want at least 1", e.LineIndex, e.Quantity)
}

// MalformedBundleError indicates a bundle line whose component list does not
// have exactly the required number of entries.
type MalformedBundleError struct {
	BundleID   string
	Components int
}

func (e *MalformedBundleError) Error() string {
	return fmt.Sprintf("malformed bundle %q: has %d components, want 4", e.BundleID, e.Components)
}

// InvariantViolationError indicates the composed discounts exceed the product
// total. It marks a defect in offer composition and aborts the evaluation;
// it must never be surfaced to an end user in raw form.
type InvariantViolationError struct {
	ProductTotal  int64
	TotalDiscount int64
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("negative total invariant violation: discounts %d exceed product total %d",
		e.TotalDiscount, e.ProductTotal)
}

// CouponRejectReason enumerates the recoverable coupon-eligibility failures.
// The cart itself is still priced when one of these occurs.
type CouponRejectReason string

const (
	CouponNotFound                     CouponRejectReason = "COUPON_NOT_FOUND"
	AutomaticCouponManualApplyRejected CouponRejectReason = "AUTOMATIC_COUPON_MANUAL_APPLY_REJECTED"
	CouponNotYetActive                 CouponRejectReason = "COUPON_NOT_YET_ACTIVE"
	CouponExpired                      CouponRejectReason = "COUPON_EXPIRED"
	MinOrderNotMet                     CouponRejectReason = "MIN_ORDER_NOT_MET"
	MinItemCountNotMet                 CouponRejectReason = "MIN_ITEM_COUNT_NOT_MET"
	NotFirstOrder                      CouponRejectReason = "NOT_FIRST_ORDER"
	UsageCapExceeded                   CouponRejectReason = "USAGE_CAP_EXCEEDED"
	NotEligibleUser                    CouponRejectReason = "NOT_ELIGIBLE_USER"
	CategoryMismatch                   CouponRejectReason = "CATEGORY_MISMATCH"
)

// CouponError is a tagged coupon-eligibility failure.
type CouponError struct {
	Code   string
	Reason CouponRejectReason
}

func (e *CouponError) Error() string {
	return fmt.Sprintf("coupon %q rejected: %s", e.Code, e.Reason)
}

// Message returns a human-readable reason suitable for the storefront UI.
func (e *CouponError) Message() string {
	switch e.Reason {
	case CouponNotFound:
		return "This coupon code does not exist"
	case AutomaticCouponManualApplyRejected:
		return "This offer is applied automatically and cannot be entered as a code"
	case CouponNotYetActive:
		return "This coupon is not active yet"
	case CouponExpired:
		return "This coupon has expired"
	case MinOrderNotMet:
		return "Your order total is below the minimum required for this coupon"
	case MinItemCountNotMet:
		return "Your cart does not have enough items for this coupon"
	case NotFirstOrder:
		return "This coupon is valid only on your first order"
	case UsageCapExceeded:
		return "You have already used this coupon the maximum number of times"
	case NotEligibleUser:
		return "This coupon is not available on your account"
	case CategoryMismatch:
		return "This coupon does not apply to the items in your cart"
	}
	return "This coupon cannot be applied"
}
