package pricing

import (
	"sort"
	"time"

	"attarkart/models"
)

// OfferResolution is the outcome of one automatic-offer pass: per-unit
// waivers (at most one per unit), cart-level discounts, and the ordered list
// of applied-offer descriptors.
type OfferResolution struct {
	// UnitWaivers maps a unit's index in the normalized slice to the amount
	// waived on that unit.
	UnitWaivers map[int]int64
	// CartDiscount is the sum of cart-level (percent/flat) offer discounts.
	CartDiscount int64
	// AppliedOffers lists every application in evaluation order.
	AppliedOffers []models.AppliedOffer
}

// TotalDiscount returns the combined unit-level and cart-level discount.
func (r *OfferResolution) TotalDiscount() int64 {
	total := r.CartDiscount
	for _, amount := range r.UnitWaivers {
		total += amount
	}
	return total
}

// ResolveOffers evaluates every automatic offer against the normalized cart.
// Offers outside their validity window are skipped; the rest are evaluated in
// ascending id order so the result is independent of catalog storage order.
// A unit waived by an earlier offer is removed from later offers' eligible
// pools, and bundle-tagged units never enter an eligible pool. Every discount
// is bounded by what the pool can still bear, so the resolution's total
// discount never exceeds the cart's eligible value.
func ResolveOffers(units []models.NormalizedUnit, offers []models.AutomaticOffer, now time.Time) *OfferResolution {
	active := make([]models.AutomaticOffer, 0, len(offers))
	for _, offer := range offers {
		if offer.Terms.ActiveAt(now) {
			active = append(active, offer)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].ID < active[j].ID
	})

	res := &OfferResolution{
		UnitWaivers:   make(map[int]int64),
		AppliedOffers: []models.AppliedOffer{},
	}

	for _, offer := range active {
		switch offer.Terms.DiscountType {
		case models.DiscountPercent, models.DiscountFlat:
			applyCartLevelOffer(res, units, offer)
		case models.DiscountFreeItem:
			if offer.Terms.BuyX > 0 && offer.Terms.GetY > 0 {
				applyBuyXGetYOffer(res, units, offer)
			} else if offer.Terms.RequiredCategory != "" && offer.Terms.TargetSizeMl > 0 {
				applyCategoryTargetOffer(res, units, offer)
			}
		}
	}

	return res
}

// eligible reports whether a unit may still enter an offer's pool: not part
// of a bundle and not yet waived.
func (r *OfferResolution) eligible(units []models.NormalizedUnit, i int) bool {
	if units[i].PartOfBundle {
		return false
	}
	_, waived := r.UnitWaivers[i]
	return !waived
}

// remainingCapacity returns what the eligible pool can still bear: the sum of
// eligible unit prices minus cart-level discounts already granted. Every
// discount in this pass, waiver or cart-level, is bounded by it so the
// resolver can never jointly overdraw the cart.
func (r *OfferResolution) remainingCapacity(units []models.NormalizedUnit) int64 {
	var total int64
	for i := range units {
		if r.eligible(units, i) {
			total += units[i].UnitSellingPrice
		}
	}
	return total - r.CartDiscount
}

func applyCartLevelOffer(res *OfferResolution, units []models.NormalizedUnit, offer models.AutomaticOffer) {
	var eligibleTotal int64
	eligibleCount := 0
	for i := range units {
		if res.eligible(units, i) {
			eligibleTotal += units[i].UnitSellingPrice
			eligibleCount++
		}
	}

	if eligibleTotal < offer.Terms.MinOrderValue || eligibleCount < offer.Terms.MinItemCount {
		return
	}

	var discount int64
	if offer.Terms.DiscountType == models.DiscountPercent {
		discount = eligibleTotal * offer.Terms.DiscountValue / 100
	} else {
		discount = offer.Terms.DiscountValue
	}
	if offer.Terms.MaxDiscountAmount > 0 && discount > offer.Terms.MaxDiscountAmount {
		discount = offer.Terms.MaxDiscountAmount
	}
	if remaining := res.remainingCapacity(units); discount > remaining {
		discount = remaining
	}
	if discount <= 0 {
		return
	}

	res.CartDiscount += discount
	res.AppliedOffers = append(res.AppliedOffers, models.AppliedOffer{
		ID:     offer.ID,
		Title:  offer.Title,
		Amount: discount,
	})
}

func applyBuyXGetYOffer(res *OfferResolution, units []models.NormalizedUnit, offer models.AutomaticOffer) {
	var pool []int
	for i := range units {
		if res.eligible(units, i) && units[i].SizeMl == offer.Terms.RequiredSizeMl {
			pool = append(pool, i)
		}
	}

	groupSize := offer.Terms.BuyX + offer.Terms.GetY
	groups := len(pool) / groupSize
	if groups < 1 {
		return
	}

	// Cheapest first; ties broken by lowest variant id, then cart order.
	sort.SliceStable(pool, func(a, b int) bool {
		ua, ub := units[pool[a]], units[pool[b]]
		if ua.UnitSellingPrice != ub.UnitSellingPrice {
			return ua.UnitSellingPrice < ub.UnitSellingPrice
		}
		return ua.VariantID < ub.VariantID
	})

	freeCount := groups * offer.Terms.GetY
	remaining := res.remainingCapacity(units)
	for k := 0; k < freeCount; k++ {
		if remaining <= 0 {
			return
		}
		i := pool[k]
		amount := units[i].UnitSellingPrice
		if amount > remaining {
			amount = remaining
		}
		remaining -= amount
		variantID := units[i].VariantID
		res.UnitWaivers[i] = amount
		res.AppliedOffers = append(res.AppliedOffers, models.AppliedOffer{
			ID:                 offer.ID,
			Title:              offer.Title,
			Amount:             amount,
			AppliesToVariantID: &variantID,
		})
	}
}

func applyCategoryTargetOffer(res *OfferResolution, units []models.NormalizedUnit, offer models.AutomaticOffer) {
	categoryPresent := false
	for i := range units {
		if !units[i].PartOfBundle && units[i].Category == offer.Terms.RequiredCategory {
			categoryPresent = true
			break
		}
	}
	if !categoryPresent {
		return
	}

	target := -1
	for i := range units {
		if !res.eligible(units, i) {
			continue
		}
		if units[i].SizeMl != offer.Terms.TargetSizeMl {
			continue
		}
		if offer.Terms.TargetMaxPrice > 0 && units[i].UnitSellingPrice > offer.Terms.TargetMaxPrice {
			continue
		}
		if target < 0 {
			target = i
			continue
		}
		if units[i].UnitSellingPrice < units[target].UnitSellingPrice ||
			(units[i].UnitSellingPrice == units[target].UnitSellingPrice && units[i].VariantID < units[target].VariantID) {
			target = i
		}
	}
	if target < 0 {
		return
	}

	amount := units[target].UnitSellingPrice
	if remaining := res.remainingCapacity(units); amount > remaining {
		amount = remaining
	}
	if amount <= 0 {
		return
	}
	variantID := units[target].VariantID
	res.UnitWaivers[target] = amount
	res.AppliedOffers = append(res.AppliedOffers, models.AppliedOffer{
		ID:                 offer.ID,
		Title:              offer.Title,
		Amount:             amount,
		AppliesToVariantID: &variantID,
	})
}
