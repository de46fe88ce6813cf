package pricing

import (
	"fmt"

	"attarkart/models"
)

// NormalizeCart expands raw cart lines into the ordered list of priceable
// units automatic offers reason about. Plain lines emit one unit per quantity
// at the variant's selling price. Bundle lines emit one unit per component
// per quantity; each bundle instance's units sum exactly to the override
// price, with the floor-division remainder attributed to the last unit.
//
// A referenced variant missing from the snapshot yields a StaleCartError; a
// bundle whose component list is not exactly models.BundleComponentCount long
// yields a MalformedBundleError; a non-positive quantity yields an
// InvalidQuantityError. Nothing is ever partially normalized.
func NormalizeCart(lines []models.CartLine, variants map[int64]models.Variant) ([]models.NormalizedUnit, error) {
	var units []models.NormalizedUnit

	for lineIdx, line := range lines {
		if line.Quantity < 1 {
			return nil, &InvalidQuantityError{LineIndex: lineIdx, Quantity: line.Quantity}
		}

		if line.IsBundle() {
			bundleUnits, err := normalizeBundleLine(lineIdx, line, variants)
			if err != nil {
				return nil, err
			}
			units = append(units, bundleUnits...)
			continue
		}

		variant, ok := variants[line.VariantID]
		if !ok {
			return nil, &StaleCartError{VariantID: line.VariantID}
		}
		price := variant.SellingPrice()
		for q := 0; q < line.Quantity; q++ {
			units = append(units, models.NormalizedUnit{
				UnitID:           fmt.Sprintf("L%d-U%d", lineIdx, q),
				SourceLineIndex:  lineIdx,
				VariantID:        variant.ID,
				UnitSellingPrice: price,
				Category:         variant.Category,
				SizeMl:           variant.SizeMl,
			})
		}
	}

	return units, nil
}

func normalizeBundleLine(lineIdx int, line models.CartLine, variants map[int64]models.Variant) ([]models.NormalizedUnit, error) {
	if len(line.ComponentVariantIDs) != models.BundleComponentCount {
		return nil, &MalformedBundleError{BundleID: line.BundleID, Components: len(line.ComponentVariantIDs)}
	}

	base := line.OverridePrice / models.BundleComponentCount
	remainder := line.OverridePrice - base*models.BundleComponentCount

	units := make([]models.NormalizedUnit, 0, line.Quantity*models.BundleComponentCount)
	for q := 0; q < line.Quantity; q++ {
		for c, componentID := range line.ComponentVariantIDs {
			variant, ok := variants[componentID]
			if !ok {
				return nil, &StaleCartError{VariantID: componentID}
			}
			price := base
			if c == models.BundleComponentCount-1 {
				// Last unit absorbs the rounding remainder so each bundle
				// instance sums exactly to the override price.
				price += remainder
			}
			units = append(units, models.NormalizedUnit{
				UnitID:           fmt.Sprintf("L%d-B%d-C%d", lineIdx, q, c),
				SourceLineIndex:  lineIdx,
				VariantID:        variant.ID,
				UnitSellingPrice: price,
				Category:         variant.Category,
				SizeMl:           variant.SizeMl,
				PartOfBundle:     true,
			})
		}
	}
	return units, nil
}

// OriginalTotal sums the undiscounted list prices across the cart: list price
// times quantity for plain lines, component list prices times quantity for
// bundle lines (what the components would have cost bought individually).
func OriginalTotal(lines []models.CartLine, variants map[int64]models.Variant) (int64, error) {
	var total int64
	for lineIdx, line := range lines {
		if line.Quantity < 1 {
			return 0, &InvalidQuantityError{LineIndex: lineIdx, Quantity: line.Quantity}
		}
		if line.IsBundle() {
			for _, componentID := range line.ComponentVariantIDs {
				variant, ok := variants[componentID]
				if !ok {
					return 0, &StaleCartError{VariantID: componentID}
				}
				total += variant.ListPrice * int64(line.Quantity)
			}
			continue
		}
		variant, ok := variants[line.VariantID]
		if !ok {
			return 0, &StaleCartError{VariantID: line.VariantID}
		}
		total += variant.ListPrice * int64(line.Quantity)
	}
	return total, nil
}

// ProductTotal sums unit selling prices across the normalized cart.
func ProductTotal(units []models.NormalizedUnit) int64 {
	var total int64
	for i := range units {
		total += units[i].UnitSellingPrice
	}
	return total
}
