package models

import "time"

// PriceCartRequest is the request body for the preview pricing endpoint.
type PriceCartRequest struct {
	UserID     int64      `json:"user_id"`
	Pincode    string     `json:"pincode"`
	CouponCode string     `json:"coupon_code,omitempty"`
	Lines      []CartLine `json:"lines"`
}

// PriceCartResponse is the preview pricing result. CouponError carries the
// human-readable rejection reason when the submitted coupon was not applied;
// the breakdown is still fully priced in that case.
type PriceCartResponse struct {
	Breakdown   *PriceBreakdown `json:"breakdown"`
	CouponError string          `json:"couponError,omitempty"`
}

// CheckoutRequest is the request body for the authoritative commit endpoint.
// ExpectedTotal is the total the client displayed; commit fails on any
// difference from the recomputed total.
type CheckoutRequest struct {
	UserID        int64      `json:"user_id"`
	Pincode       string     `json:"pincode"`
	CouponCode    string     `json:"coupon_code,omitempty"`
	Lines         []CartLine `json:"lines"`
	ExpectedTotal int64      `json:"expected_total"`
	CODSelected   bool       `json:"cod_selected"`
}

// Order is a committed order row.
type Order struct {
	ID             int64     `json:"id"`
	Reference      string    `json:"reference"`
	UserID         int64     `json:"userId"`
	Pincode        string    `json:"pincode"`
	CouponCode     string    `json:"couponCode,omitempty"`
	ProductTotal   int64     `json:"productTotal"`
	OfferDiscount  int64     `json:"offerDiscount"`
	DiscountAmount int64     `json:"discountAmount"`
	DeliveryCharge int64     `json:"deliveryCharge"`
	Total          int64     `json:"total"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}

// OrderLine is one committed order line.
type OrderLine struct {
	ID            int64  `json:"id"`
	OrderID       int64  `json:"orderId"`
	VariantID     int64  `json:"variantId"`
	Quantity      int    `json:"quantity"`
	BundleID      string `json:"bundleId,omitempty"`
	OverridePrice int64  `json:"overridePrice,omitempty"`
	LineTotal     int64  `json:"lineTotal"`
}

// StockShortage reports a cart line whose requested quantity exceeds stock.
type StockShortage struct {
	VariantID int64 `json:"variantId"`
	Requested int   `json:"requested"`
	Stock     int   `json:"stock"`
}

// CheckoutResponse confirms a committed order.
type CheckoutResponse struct {
	Order     *Order          `json:"order"`
	Breakdown *PriceBreakdown `json:"breakdown"`
}
