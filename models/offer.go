package models

import "time"

// DiscountType identifies how a promotion computes its discount.
type DiscountType string

const (
	DiscountPercent  DiscountType = "percent"
	DiscountFlat     DiscountType = "flat"
	DiscountFreeItem DiscountType = "free_item"
)

// PromoTerms is the condition/action payload shared by automatic offers and
// manual coupons. Zero values mean "not set" for the optional fields.
type PromoTerms struct {
	DiscountType      DiscountType `json:"discountType"`
	DiscountValue     int64        `json:"discountValue"`
	MinOrderValue     int64        `json:"minOrderValue"`
	MinItemCount      int          `json:"minItemCount"`
	ValidFrom         time.Time    `json:"validFrom"`
	ValidUntil        time.Time    `json:"validUntil"`
	MaxDiscountAmount int64        `json:"maxDiscountAmount,omitempty"`

	// Free-item condition/action fields.
	RequiredCategory string `json:"condRequiredCategory,omitempty"`
	RequiredSizeMl   int    `json:"condRequiredSize,omitempty"`
	TargetSizeMl     int    `json:"actionTargetSize,omitempty"`
	TargetMaxPrice   int64  `json:"actionTargetMaxPrice,omitempty"`
	BuyX             int    `json:"actionBuyX,omitempty"`
	GetY             int    `json:"actionGetY,omitempty"`
}

// ActiveAt reports whether now falls inside the validity window.
func (t *PromoTerms) ActiveAt(now time.Time) bool {
	return !now.Before(t.ValidFrom) && !now.After(t.ValidUntil)
}

// AutomaticOffer is a promotion applied without user input whenever its
// conditions are met.
type AutomaticOffer struct {
	ID    int64      `json:"id"`
	Title string     `json:"title"`
	Terms PromoTerms `json:"terms"`
}

// ManualCoupon is a promotion requiring an explicit code entered by the user.
type ManualCoupon struct {
	ID              int64      `json:"id"`
	Code            string     `json:"code"`
	Title           string     `json:"title"`
	Terms           PromoTerms `json:"terms"`
	FirstOrderOnly  bool       `json:"firstOrderOnly"`
	MaxUsagePerUser int        `json:"maxUsagePerUser,omitempty"`
	TargetUserID    int64      `json:"targetUserId,omitempty"`
	TargetCategory  string     `json:"targetCategory,omitempty"`
}

// CouponRecord is the raw promotion row as stored: one shape for both
// automatic offers and manual coupons, disambiguated by IsAutomatic. It only
// exists at the provider boundary; the validator rejects automatic records
// submitted through the manual path before anything downstream sees them.
type CouponRecord struct {
	ID              int64      `json:"id"`
	Code            string     `json:"code"`
	Title           string     `json:"title"`
	IsAutomatic     bool       `json:"isAutomatic"`
	Terms           PromoTerms `json:"terms"`
	FirstOrderOnly  bool       `json:"firstOrderOnly"`
	MaxUsagePerUser int        `json:"maxUsagePerUser,omitempty"`
	TargetUserID    int64      `json:"targetUserId,omitempty"`
	TargetCategory  string     `json:"targetCategory,omitempty"`
}

// AsCoupon converts a non-automatic record into its tagged coupon form.
func (r *CouponRecord) AsCoupon() *ManualCoupon {
	return &ManualCoupon{
		ID:              r.ID,
		Code:            r.Code,
		Title:           r.Title,
		Terms:           r.Terms,
		FirstOrderOnly:  r.FirstOrderOnly,
		MaxUsagePerUser: r.MaxUsagePerUser,
		TargetUserID:    r.TargetUserID,
		TargetCategory:  r.TargetCategory,
	}
}
