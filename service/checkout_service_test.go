package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"attarkart/models"
	"attarkart/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCatalogRepo struct {
	variants map[int64]models.Variant
}

func (s *stubCatalogRepo) VariantsByIDs(_ context.Context, ids []int64) (map[int64]models.Variant, error) {
	out := make(map[int64]models.Variant, len(ids))
	for _, id := range ids {
		if v, ok := s.variants[id]; ok {
			out[id] = v
		}
	}
	return out, nil
}

func (s *stubCatalogRepo) ListActive(_ context.Context) ([]models.Variant, error) {
	var out []models.Variant
	for _, v := range s.variants {
		out = append(out, v)
	}
	return out, nil
}

func (s *stubCatalogRepo) UpdateImageURLBySKU(_ context.Context, _ string, _ string) (bool, error) {
	return false, nil
}

type stubOfferRepo struct {
	offers  []models.AutomaticOffer
	coupons map[string]*models.CouponRecord
}

func (s *stubOfferRepo) AutomaticOffers(_ context.Context) ([]models.AutomaticOffer, error) {
	return s.offers, nil
}

func (s *stubOfferRepo) CouponByCode(_ context.Context, code string) (*models.CouponRecord, error) {
	return s.coupons[code], nil
}

type stubUsageRepo struct{}

func (s *stubUsageRepo) CompletedOrderCount(_ context.Context, _ int64) (int, error) {
	return 0, nil
}

func (s *stubUsageRepo) RedemptionCount(_ context.Context, _ int64, _ string) (int, error) {
	return 0, nil
}

type stubDeliveryRepo struct {
	info models.DeliveryInfo
}

func (s *stubDeliveryRepo) InfoForPincode(_ context.Context, _ string) (models.DeliveryInfo, error) {
	return s.info, nil
}

type stubOrderRepo struct {
	shortages    []models.StockShortage
	createErr    error
	createdOrder *models.Order
	createdLines []models.OrderLine
	nextOrderID  int64
}

func (s *stubOrderRepo) CreateOrder(_ context.Context, order *models.Order, lines []models.OrderLine) (*models.Order, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	created := *order
	created.ID = s.nextOrderID
	created.Status = "placed"
	created.CreatedAt = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	s.createdOrder = &created
	s.createdLines = lines
	return &created, nil
}

func (s *stubOrderRepo) StockShortages(_ context.Context, _ []models.CartLine) ([]models.StockShortage, error) {
	return s.shortages, nil
}

type checkoutFixture struct {
	service   *CheckoutService
	orderRepo *stubOrderRepo
}

func newCheckoutFixture(t *testing.T, catalog *stubCatalogRepo, offers *stubOfferRepo, delivery models.DeliveryInfo) *checkoutFixture {
	t.Helper()
	if offers == nil {
		offers = &stubOfferRepo{}
	}
	engine := pricing.NewEngine(catalog, offers, &stubUsageRepo{})
	orderRepo := &stubOrderRepo{nextOrderID: 101}
	svc := NewCheckoutService(engine, catalog, &stubDeliveryRepo{info: delivery}, orderRepo)
	svc.now = func() time.Time {
		return time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	}
	return &checkoutFixture{service: svc, orderRepo: orderRepo}
}

func testCatalog() *stubCatalogRepo {
	return &stubCatalogRepo{variants: map[int64]models.Variant{
		1: {ID: 1, SKU: "ATR-001", Category: "attar", SizeMl: 30, ListPrice: 1000, Stock: 10},
		2: {ID: 2, SKU: "ATR-002", Category: "attar", SizeMl: 12, ListPrice: 500, Stock: 10},
	}}
}

func TestPreviewPricesCart(t *testing.T) {
	fix := newCheckoutFixture(t, testCatalog(), nil, models.DeliveryInfo{DeliveryCharge: 99, CODAvailable: true})

	resp, err := fix.service.Preview(context.Background(), &models.PriceCartRequest{
		UserID:  1,
		Pincode: "560001",
		Lines:   []models.CartLine{{VariantID: 1, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Empty(t, resp.CouponError)
	assert.Equal(t, int64(2099), resp.Breakdown.Total)
}

func TestPreviewReportsCouponRejection(t *testing.T) {
	fix := newCheckoutFixture(t, testCatalog(), nil, models.DeliveryInfo{DeliveryCharge: 99})

	resp, err := fix.service.Preview(context.Background(), &models.PriceCartRequest{
		UserID:     1,
		Pincode:    "560001",
		CouponCode: "MISSING",
		Lines:      []models.CartLine{{VariantID: 1, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "This coupon code does not exist", resp.CouponError)
	// Breakdown still priced without the coupon.
	assert.Equal(t, int64(1099), resp.Breakdown.Total)
}

func TestCommitPlacesOrder(t *testing.T) {
	fix := newCheckoutFixture(t, testCatalog(), nil, models.DeliveryInfo{DeliveryCharge: 99, CODAvailable: true})

	resp, err := fix.service.Commit(context.Background(), &models.CheckoutRequest{
		UserID:        1,
		Pincode:       "560001",
		Lines:         []models.CartLine{{VariantID: 1, Quantity: 2}},
		ExpectedTotal: 2099,
		CODSelected:   true,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Order.Reference)
	assert.Equal(t, int64(2099), resp.Order.Total)
	assert.Equal(t, "placed", resp.Order.Status)
	require.Len(t, fix.orderRepo.createdLines, 1)
	assert.Equal(t, int64(2000), fix.orderRepo.createdLines[0].LineTotal)
}

func TestCommitRejectsChangedTotal(t *testing.T) {
	fix := newCheckoutFixture(t, testCatalog(), nil, models.DeliveryInfo{DeliveryCharge: 99})

	_, err := fix.service.Commit(context.Background(), &models.CheckoutRequest{
		UserID:        1,
		Pincode:       "560001",
		Lines:         []models.CartLine{{VariantID: 1, Quantity: 2}},
		ExpectedTotal: 2098,
	})
	var priceChanged *PriceChangedError
	require.ErrorAs(t, err, &priceChanged)
	assert.Equal(t, int64(2098), priceChanged.ExpectedTotal)
	assert.Equal(t, int64(2099), priceChanged.ActualTotal)
	assert.Nil(t, fix.orderRepo.createdOrder)
}

func TestCommitRejectsOffByOneRupee(t *testing.T) {
	fix := newCheckoutFixture(t, testCatalog(), nil, models.DeliveryInfo{DeliveryCharge: 99})

	_, err := fix.service.Commit(context.Background(), &models.CheckoutRequest{
		UserID:        1,
		Pincode:       "560001",
		Lines:         []models.CartLine{{VariantID: 1, Quantity: 2}},
		ExpectedTotal: 2100,
	})
	var priceChanged *PriceChangedError
	require.ErrorAs(t, err, &priceChanged)
}

func TestCommitBlocksOnStockShortage(t *testing.T) {
	fix := newCheckoutFixture(t, testCatalog(), nil, models.DeliveryInfo{DeliveryCharge: 99})
	fix.orderRepo.shortages = []models.StockShortage{{VariantID: 1, Requested: 2, Stock: 1}}

	_, err := fix.service.Commit(context.Background(), &models.CheckoutRequest{
		UserID:        1,
		Pincode:       "560001",
		Lines:         []models.CartLine{{VariantID: 1, Quantity: 2}},
		ExpectedTotal: 2099,
	})
	var outOfStock *OutOfStockError
	require.ErrorAs(t, err, &outOfStock)
	require.Len(t, outOfStock.Shortages, 1)
	assert.Equal(t, int64(1), outOfStock.Shortages[0].VariantID)
	assert.Nil(t, fix.orderRepo.createdOrder)
}

func TestCommitRejectsCODWhenUnavailable(t *testing.T) {
	fix := newCheckoutFixture(t, testCatalog(), nil, models.DeliveryInfo{DeliveryCharge: 99, CODAvailable: false})

	_, err := fix.service.Commit(context.Background(), &models.CheckoutRequest{
		UserID:        1,
		Pincode:       "799001",
		Lines:         []models.CartLine{{VariantID: 1, Quantity: 2}},
		ExpectedTotal: 2099,
		CODSelected:   true,
	})
	var codErr *CODUnavailableError
	require.ErrorAs(t, err, &codErr)
	assert.Equal(t, "799001", codErr.Pincode)
}

func TestCommitRejectsInvalidCoupon(t *testing.T) {
	fix := newCheckoutFixture(t, testCatalog(), nil, models.DeliveryInfo{DeliveryCharge: 99})

	_, err := fix.service.Commit(context.Background(), &models.CheckoutRequest{
		UserID:        1,
		Pincode:       "560001",
		CouponCode:    "GONE",
		Lines:         []models.CartLine{{VariantID: 1, Quantity: 1}},
		ExpectedTotal: 1099,
	})
	var couponErr *pricing.CouponError
	require.ErrorAs(t, err, &couponErr)
	assert.Equal(t, pricing.CouponNotFound, couponErr.Reason)
}

func TestCommitRecordsCouponOnOrder(t *testing.T) {
	offers := &stubOfferRepo{coupons: map[string]*models.CouponRecord{
		"FLAT100": {
			ID:   4,
			Code: "FLAT100",
			Terms: models.PromoTerms{
				DiscountType:  models.DiscountFlat,
				DiscountValue: 100,
				ValidFrom:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
				ValidUntil:    time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
			},
		},
	}}
	fix := newCheckoutFixture(t, testCatalog(), offers, models.DeliveryInfo{DeliveryCharge: 99})

	resp, err := fix.service.Commit(context.Background(), &models.CheckoutRequest{
		UserID:        1,
		Pincode:       "560001",
		CouponCode:    "FLAT100",
		Lines:         []models.CartLine{{VariantID: 1, Quantity: 2}},
		ExpectedTotal: 1999,
	})
	require.NoError(t, err)
	assert.Equal(t, "FLAT100", resp.Order.CouponCode)
	assert.Equal(t, int64(100), resp.Order.DiscountAmount)
}

func TestCommitBundleLineTotals(t *testing.T) {
	catalog := &stubCatalogRepo{variants: map[int64]models.Variant{
		1: {ID: 1, SKU: "ATR-001", Category: "attar", SizeMl: 12, ListPrice: 700, Stock: 10},
		2: {ID: 2, SKU: "ATR-002", Category: "attar", SizeMl: 12, ListPrice: 700, Stock: 10},
		3: {ID: 3, SKU: "ATR-003", Category: "attar", SizeMl: 12, ListPrice: 700, Stock: 10},
		4: {ID: 4, SKU: "ATR-004", Category: "attar", SizeMl: 12, ListPrice: 700, Stock: 10},
	}}
	fix := newCheckoutFixture(t, catalog, nil, models.DeliveryInfo{DeliveryCharge: 99})

	resp, err := fix.service.Commit(context.Background(), &models.CheckoutRequest{
		UserID:  1,
		Pincode: "560001",
		Lines: []models.CartLine{{
			Quantity:            2,
			BundleID:            "GIFT-SET",
			ComponentVariantIDs: []int64{1, 2, 3, 4},
			OverridePrice:       1999,
		}},
		ExpectedTotal: 1999*2 + 99,
	})
	require.NoError(t, err)
	require.Len(t, fix.orderRepo.createdLines, 1)
	assert.Equal(t, int64(1999*2), fix.orderRepo.createdLines[0].LineTotal)
	assert.Equal(t, "GIFT-SET", fix.orderRepo.createdLines[0].BundleID)
	assert.Equal(t, int64(1999*2+99), resp.Order.Total)
}

func TestCommitPropagatesOrderRepoError(t *testing.T) {
	fix := newCheckoutFixture(t, testCatalog(), nil, models.DeliveryInfo{DeliveryCharge: 99})
	fix.orderRepo.createErr = errors.New("insert failed")

	_, err := fix.service.Commit(context.Background(), &models.CheckoutRequest{
		UserID:        1,
		Pincode:       "560001",
		Lines:         []models.CartLine{{VariantID: 1, Quantity: 2}},
		ExpectedTotal: 2099,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert failed")
}
