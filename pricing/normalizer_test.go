package pricing

import (
	"testing"

	"attarkart/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func variantFixture(id int64, category string, sizeMl int, listPrice int64, discountPercent int) models.Variant {
	return models.Variant{
		ID:              id,
		ProductID:       id * 10,
		Category:        category,
		SizeMl:          sizeMl,
		ListPrice:       listPrice,
		DiscountPercent: discountPercent,
		Stock:           100,
	}
}

func TestNormalizePlainLineExpandsQuantity(t *testing.T) {
	variants := map[int64]models.Variant{
		1: variantFixture(1, "attar", 30, 1000, 0),
	}
	lines := []models.CartLine{{VariantID: 1, Quantity: 3}}

	units, err := NormalizeCart(lines, variants)
	require.NoError(t, err)
	require.Len(t, units, 3)

	for i, unit := range units {
		assert.Equal(t, int64(1), unit.VariantID)
		assert.Equal(t, int64(1000), unit.UnitSellingPrice)
		assert.Equal(t, 0, unit.SourceLineIndex)
		assert.False(t, unit.PartOfBundle)
		if i > 0 {
			assert.NotEqual(t, units[i-1].UnitID, unit.UnitID)
		}
	}
}

func TestNormalizeAppliesProductLevelDiscount(t *testing.T) {
	// floor(999 * 0.85) = 849
	variants := map[int64]models.Variant{
		7: variantFixture(7, "attar", 12, 999, 15),
	}
	units, err := NormalizeCart([]models.CartLine{{VariantID: 7, Quantity: 1}}, variants)
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, int64(849), units[0].UnitSellingPrice)
}

func TestNormalizeBundleConservesOverridePrice(t *testing.T) {
	variants := map[int64]models.Variant{
		1: variantFixture(1, "attar", 12, 700, 0),
		2: variantFixture(2, "attar", 12, 700, 0),
		3: variantFixture(3, "attar", 12, 700, 0),
		4: variantFixture(4, "attar", 12, 700, 0),
	}
	lines := []models.CartLine{{
		Quantity:            1,
		BundleID:            "BND-FOUR",
		ComponentVariantIDs: []int64{1, 2, 3, 4},
		OverridePrice:       1999,
	}}

	units, err := NormalizeCart(lines, variants)
	require.NoError(t, err)
	require.Len(t, units, 4)

	// 1999/4 = 499 with remainder 3 on the last unit
	assert.Equal(t, int64(499), units[0].UnitSellingPrice)
	assert.Equal(t, int64(499), units[1].UnitSellingPrice)
	assert.Equal(t, int64(499), units[2].UnitSellingPrice)
	assert.Equal(t, int64(502), units[3].UnitSellingPrice)

	var sum int64
	for _, unit := range units {
		assert.True(t, unit.PartOfBundle)
		sum += unit.UnitSellingPrice
	}
	assert.Equal(t, int64(1999), sum)
}

func TestNormalizeBundleQuantityConservesPerInstance(t *testing.T) {
	variants := map[int64]models.Variant{
		1: variantFixture(1, "attar", 12, 700, 0),
		2: variantFixture(2, "attar", 12, 700, 0),
		3: variantFixture(3, "attar", 12, 700, 0),
		4: variantFixture(4, "attar", 12, 700, 0),
	}
	lines := []models.CartLine{{
		Quantity:            2,
		BundleID:            "BND-FOUR",
		ComponentVariantIDs: []int64{1, 2, 3, 4},
		OverridePrice:       1001,
	}}

	units, err := NormalizeCart(lines, variants)
	require.NoError(t, err)
	require.Len(t, units, 8)

	var first, second int64
	for _, unit := range units[:4] {
		first += unit.UnitSellingPrice
	}
	for _, unit := range units[4:] {
		second += unit.UnitSellingPrice
	}
	assert.Equal(t, int64(1001), first)
	assert.Equal(t, int64(1001), second)
}

func TestNormalizeMalformedBundle(t *testing.T) {
	variants := map[int64]models.Variant{
		1: variantFixture(1, "attar", 12, 700, 0),
	}
	lines := []models.CartLine{{
		Quantity:            1,
		BundleID:            "BND-BAD",
		ComponentVariantIDs: []int64{1, 1},
		OverridePrice:       999,
	}}

	_, err := NormalizeCart(lines, variants)
	require.Error(t, err)

	var malformed *MalformedBundleError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "BND-BAD", malformed.BundleID)
	assert.Equal(t, 2, malformed.Components)
}

func TestNormalizeRejectsNonPositiveQuantity(t *testing.T) {
	variants := map[int64]models.Variant{
		1: variantFixture(1, "attar", 30, 1000, 0),
	}

	for _, qty := range []int{0, -1} {
		lines := []models.CartLine{
			{VariantID: 1, Quantity: 1},
			{VariantID: 1, Quantity: qty},
		}

		_, err := NormalizeCart(lines, variants)
		var badQty *InvalidQuantityError
		require.ErrorAs(t, err, &badQty, "quantity %d", qty)
		assert.Equal(t, 1, badQty.LineIndex)
		assert.Equal(t, qty, badQty.Quantity)

		_, err = OriginalTotal(lines, variants)
		require.ErrorAs(t, err, &badQty, "quantity %d", qty)
	}
}

func TestNormalizeStaleCart(t *testing.T) {
	lines := []models.CartLine{{VariantID: 42, Quantity: 1}}

	_, err := NormalizeCart(lines, map[int64]models.Variant{})
	require.Error(t, err)

	var stale *StaleCartError
	require.ErrorAs(t, err, &stale)
	assert.Equal(t, int64(42), stale.VariantID)
}

func TestNormalizeStaleBundleComponent(t *testing.T) {
	variants := map[int64]models.Variant{
		1: variantFixture(1, "attar", 12, 700, 0),
		2: variantFixture(2, "attar", 12, 700, 0),
		3: variantFixture(3, "attar", 12, 700, 0),
	}
	lines := []models.CartLine{{
		Quantity:            1,
		BundleID:            "BND-FOUR",
		ComponentVariantIDs: []int64{1, 2, 3, 99},
		OverridePrice:       1999,
	}}

	_, err := NormalizeCart(lines, variants)
	var stale *StaleCartError
	require.ErrorAs(t, err, &stale)
	assert.Equal(t, int64(99), stale.VariantID)
}

func TestOriginalTotalCountsComponentListPrices(t *testing.T) {
	variants := map[int64]models.Variant{
		1: variantFixture(1, "attar", 12, 700, 0),
		2: variantFixture(2, "attar", 12, 800, 0),
		3: variantFixture(3, "attar", 12, 700, 0),
		4: variantFixture(4, "attar", 12, 700, 0),
		5: variantFixture(5, "attar", 30, 1000, 10),
	}
	lines := []models.CartLine{
		{VariantID: 5, Quantity: 2},
		{Quantity: 1, BundleID: "B", ComponentVariantIDs: []int64{1, 2, 3, 4}, OverridePrice: 1999},
	}

	total, err := OriginalTotal(lines, variants)
	require.NoError(t, err)
	// 2*1000 plain + (700+800+700+700) bundle components
	assert.Equal(t, int64(2000+2900), total)
}
