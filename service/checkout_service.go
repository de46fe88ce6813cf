package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"attarkart/models"
	"attarkart/pricing"
	"attarkart/repository"

	"github.com/google/uuid"
)

// PriceChangedError indicates the recomputed total no longer matches the
// total the client displayed. The commit fails; the client must refresh the
// preview. Tolerance is zero: any difference rejects.
type PriceChangedError struct {
	ExpectedTotal int64
	ActualTotal   int64
}

func (e *PriceChangedError) Error() string {
	return fmt.Sprintf("price changed: displayed total %d, recomputed total %d", e.ExpectedTotal, e.ActualTotal)
}

// OutOfStockError indicates one or more cart lines exceed available stock at
// commit time.
type OutOfStockError struct {
	Shortages []models.StockShortage
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("out of stock: %d cart line(s) exceed available stock", len(e.Shortages))
}

// CODUnavailableError indicates cash-on-delivery was selected for a pincode
// that does not support it.
type CODUnavailableError struct {
	Pincode string
}

func (e *CODUnavailableError) Error() string {
	return fmt.Sprintf("cash on delivery not available for pincode %s", e.Pincode)
}

// CheckoutService orchestrates the preview and commit paths over the single
// pricing engine entry point, so the price a client saw and the price an
// order is committed at can never come from diverging implementations.
// Implements CheckoutServiceInterface
type CheckoutService struct {
	engine       *pricing.Engine
	catalogRepo  repository.CatalogRepositoryInterface
	deliveryRepo repository.DeliveryRepositoryInterface
	orderRepo    repository.OrderRepositoryInterface
	now          func() time.Time
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	engine *pricing.Engine,
	catalogRepo repository.CatalogRepositoryInterface,
	deliveryRepo repository.DeliveryRepositoryInterface,
	orderRepo repository.OrderRepositoryInterface,
) *CheckoutService {
	return &CheckoutService{
		engine:       engine,
		catalogRepo:  catalogRepo,
		deliveryRepo: deliveryRepo,
		orderRepo:    orderRepo,
		now:          time.Now,
	}
}

// Ensure CheckoutService implements CheckoutServiceInterface
var _ CheckoutServiceInterface = (*CheckoutService)(nil)

// Preview prices a cart for display. Coupon-eligibility failures are
// reported beside the (still fully priced) breakdown.
func (s *CheckoutService) Preview(ctx context.Context, req *models.PriceCartRequest) (*models.PriceCartResponse, error) {
	result, err := s.evaluate(ctx, req.Lines, req.CouponCode, req.UserID, req.Pincode)
	if err != nil {
		return nil, err
	}

	resp := &models.PriceCartResponse{Breakdown: result.Breakdown}
	if result.CouponError != nil {
		resp.CouponError = result.CouponError.Message()
	}
	return resp, nil
}

// Commit re-runs the same evaluation authoritatively and places the order.
// It fails (never silently adjusts) when the recomputed total differs from
// the client-displayed total, when any line is short on stock, or when COD
// was selected for a pincode without COD support.
func (s *CheckoutService) Commit(ctx context.Context, req *models.CheckoutRequest) (*models.CheckoutResponse, error) {
	log.Printf("🛒 Commit: user=%d pincode=%s expected_total=%d coupon=%q", req.UserID, req.Pincode, req.ExpectedTotal, req.CouponCode)

	result, err := s.evaluate(ctx, req.Lines, req.CouponCode, req.UserID, req.Pincode)
	if err != nil {
		return nil, err
	}
	breakdown := result.Breakdown

	// A coupon the preview accepted must still be valid at commit time;
	// otherwise the recomputed total cannot match the displayed one anyway,
	// but reject explicitly so the client gets the real reason.
	if result.CouponError != nil && req.CouponCode != "" {
		log.Printf("❌ Commit: coupon rejected at commit time: %v", result.CouponError)
		return nil, result.CouponError
	}

	if breakdown.Total != req.ExpectedTotal {
		log.Printf("❌ Commit: total mismatch - displayed=%d recomputed=%d", req.ExpectedTotal, breakdown.Total)
		return nil, &PriceChangedError{ExpectedTotal: req.ExpectedTotal, ActualTotal: breakdown.Total}
	}

	if req.CODSelected && !breakdown.CODAvailable {
		return nil, &CODUnavailableError{Pincode: req.Pincode}
	}

	shortages, err := s.orderRepo.StockShortages(ctx, req.Lines)
	if err != nil {
		return nil, err
	}
	if len(shortages) > 0 {
		log.Printf("❌ Commit: %d line(s) out of stock", len(shortages))
		return nil, &OutOfStockError{Shortages: shortages}
	}

	orderLines, err := s.buildOrderLines(ctx, req.Lines)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		Reference:      uuid.NewString(),
		UserID:         req.UserID,
		Pincode:        req.Pincode,
		CouponCode:     breakdown.CouponCode,
		ProductTotal:   breakdown.ProductTotal,
		OfferDiscount:  breakdown.OfferDiscount,
		DiscountAmount: breakdown.DiscountAmount,
		DeliveryCharge: breakdown.DeliveryCharge,
		Total:          breakdown.Total,
	}
	created, err := s.orderRepo.CreateOrder(ctx, order, orderLines)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Commit: Order %s placed for user %d, total=%d", created.Reference, created.UserID, created.Total)
	return &models.CheckoutResponse{Order: created, Breakdown: breakdown}, nil
}

// evaluate fetches the delivery quote and runs the pricing engine. Both
// Preview and Commit go through here.
func (s *CheckoutService) evaluate(ctx context.Context, lines []models.CartLine, couponCode string, userID int64, pincode string) (*pricing.Result, error) {
	delivery, err := s.deliveryRepo.InfoForPincode(ctx, pincode)
	if err != nil {
		return nil, err
	}

	return s.engine.Evaluate(ctx, pricing.EvaluateInput{
		Lines:      lines,
		CouponCode: couponCode,
		UserID:     userID,
		Now:        s.now(),
		Delivery:   delivery,
	})
}

// buildOrderLines computes the committed per-line totals: override price for
// bundle lines, selling price times quantity for plain lines.
func (s *CheckoutService) buildOrderLines(ctx context.Context, lines []models.CartLine) ([]models.OrderLine, error) {
	var ids []int64
	for _, line := range lines {
		if !line.IsBundle() {
			ids = append(ids, line.VariantID)
		}
	}
	variants, err := s.catalogRepo.VariantsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	orderLines := make([]models.OrderLine, 0, len(lines))
	for _, line := range lines {
		if line.Quantity < 1 {
			continue
		}
		ol := models.OrderLine{
			VariantID:     line.VariantID,
			Quantity:      line.Quantity,
			BundleID:      line.BundleID,
			OverridePrice: line.OverridePrice,
		}
		if line.IsBundle() {
			ol.LineTotal = line.OverridePrice * int64(line.Quantity)
		} else {
			variant, ok := variants[line.VariantID]
			if !ok {
				return nil, &pricing.StaleCartError{VariantID: line.VariantID}
			}
			ol.LineTotal = variant.SellingPrice() * int64(line.Quantity)
		}
		orderLines = append(orderLines, ol)
	}
	return orderLines, nil
}
