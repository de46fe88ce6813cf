package pricing

import "attarkart/models"

// ComposeBreakdown combines the per-stage results into the final immutable
// PriceBreakdown. It fails closed with an InvariantViolationError if the
// combined discounts exceed the product total: that condition indicates a
// defect upstream and must never be masked by clamping.
func ComposeBreakdown(originalTotal, productTotal int64, offers *OfferResolution, couponCode string, couponDiscount int64, delivery models.DeliveryInfo) (*models.PriceBreakdown, error) {
	offerDiscount := offers.TotalDiscount()
	if offerDiscount+couponDiscount > productTotal {
		return nil, &InvariantViolationError{
			ProductTotal:  productTotal,
			TotalDiscount: offerDiscount + couponDiscount,
		}
	}

	applied := make([]models.AppliedOffer, len(offers.AppliedOffers))
	copy(applied, offers.AppliedOffers)

	return &models.PriceBreakdown{
		OriginalTotal:  originalTotal,
		ProductTotal:   productTotal,
		OfferDiscount:  offerDiscount,
		DiscountAmount: couponDiscount,
		DeliveryCharge: delivery.DeliveryCharge,
		CODAvailable:   delivery.CODAvailable,
		AppliedOffers:  applied,
		CouponCode:     couponCode,
		Total:          productTotal - offerDiscount - couponDiscount + delivery.DeliveryCharge,
	}, nil
}
