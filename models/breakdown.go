package models

// AppliedOffer describes one automatic offer application in a breakdown.
// AppliesToVariantID is nil for cart-level (percent/flat) offers and set to
// the waived unit's variant for free-item offers.
type AppliedOffer struct {
	ID                 int64  `json:"id"`
	Title              string `json:"title"`
	Amount             int64  `json:"amount"`
	AppliesToVariantID *int64 `json:"appliesToVariantId"`
}

// DeliveryInfo is the externally supplied delivery quote for a destination
// pincode. The engine treats it as opaque input.
type DeliveryInfo struct {
	DeliveryCharge int64 `json:"deliveryCharge"`
	CODAvailable   bool  `json:"codAvailable"`
}

// PriceBreakdown is the single authoritative price result for one cart
// evaluation. Immutable once produced.
type PriceBreakdown struct {
	OriginalTotal  int64          `json:"originalTotal"`
	ProductTotal   int64          `json:"productTotal"`
	OfferDiscount  int64          `json:"offerDiscount"`
	DiscountAmount int64          `json:"discountAmount"`
	DeliveryCharge int64          `json:"deliveryCharge"`
	CODAvailable   bool           `json:"codAvailable"`
	AppliedOffers  []AppliedOffer `json:"appliedOffers"`
	CouponCode     string         `json:"couponCode,omitempty"`
	Total          int64          `json:"total"`
}
