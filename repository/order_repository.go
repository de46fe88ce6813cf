package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"attarkart/db"
	"attarkart/models"
)

// OrderRepository handles checkout-commit persistence.
type OrderRepository struct{}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// Ensure OrderRepository implements OrderRepositoryInterface
var _ OrderRepositoryInterface = (*OrderRepository)(nil)

// StockShortages returns the cart lines whose requested quantity exceeds the
// variant's current stock. Bundle lines are checked per component (one unit
// of each component per bundle quantity).
func (r *OrderRepository) StockShortages(ctx context.Context, lines []models.CartLine) ([]models.StockShortage, error) {
	// variant id -> total requested units across the cart
	requested := make(map[int64]int)
	var order []int64
	addRequest := func(id int64, qty int) {
		if _, seen := requested[id]; !seen {
			order = append(order, id)
		}
		requested[id] += qty
	}
	for _, line := range lines {
		if line.Quantity < 1 {
			continue
		}
		if line.IsBundle() {
			for _, componentID := range line.ComponentVariantIDs {
				addRequest(componentID, line.Quantity)
			}
			continue
		}
		addRequest(line.VariantID, line.Quantity)
	}

	var shortages []models.StockShortage
	for _, id := range order {
		var stock int
		err := db.DB.QueryRowContext(ctx, `SELECT stock FROM variants WHERE id = $1`, id).Scan(&stock)
		if err != nil {
			if err == sql.ErrNoRows {
				shortages = append(shortages, models.StockShortage{VariantID: id, Requested: requested[id], Stock: 0})
				continue
			}
			log.Printf("❌ StockShortages: Error reading stock for variant %d: %v", id, err)
			return nil, fmt.Errorf("failed to read stock: %w", err)
		}
		if stock < requested[id] {
			shortages = append(shortages, models.StockShortage{VariantID: id, Requested: requested[id], Stock: stock})
		}
	}
	return shortages, nil
}

// CreateOrder persists the order, its lines and (when a coupon was applied)
// the redemption record in a single transaction.
func (r *OrderRepository) CreateOrder(ctx context.Context, order *models.Order, lines []models.OrderLine) (*models.Order, error) {
	log.Printf("🧾 CreateOrder: Creating order for user=%d, total=%d, coupon=%q", order.UserID, order.Total, order.CouponCode)

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Printf("❌ CreateOrder: Error starting transaction: %v", err)
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	queryOrder := `
		INSERT INTO orders (reference, user_id, pincode, coupon_code, product_total, offer_discount, discount_amount, delivery_charge, total, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'placed')
		RETURNING id, status, created_at
	`
	err = tx.QueryRowContext(ctx, queryOrder,
		order.Reference,
		order.UserID,
		order.Pincode,
		sql.NullString{String: order.CouponCode, Valid: order.CouponCode != ""},
		order.ProductTotal,
		order.OfferDiscount,
		order.DiscountAmount,
		order.DeliveryCharge,
		order.Total,
	).Scan(&order.ID, &order.Status, &order.CreatedAt)
	if err != nil {
		log.Printf("❌ CreateOrder: Error inserting order: %v", err)
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	queryLine := `
		INSERT INTO order_lines (order_id, variant_id, quantity, bundle_id, override_price, line_total)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	for i := range lines {
		line := &lines[i]
		line.OrderID = order.ID
		err = tx.QueryRowContext(ctx, queryLine,
			order.ID,
			line.VariantID,
			line.Quantity,
			sql.NullString{String: line.BundleID, Valid: line.BundleID != ""},
			line.OverridePrice,
			line.LineTotal,
		).Scan(&line.ID)
		if err != nil {
			log.Printf("❌ CreateOrder: Error inserting order line (variant=%d): %v", line.VariantID, err)
			return nil, fmt.Errorf("failed to insert order line: %w", err)
		}
	}

	if order.CouponCode != "" {
		queryRedemption := `
			INSERT INTO coupon_redemptions (user_id, coupon_code, order_id)
			VALUES ($1, $2, $3)
		`
		if _, err := tx.ExecContext(ctx, queryRedemption, order.UserID, order.CouponCode, order.ID); err != nil {
			log.Printf("❌ CreateOrder: Error recording redemption of %s: %v", order.CouponCode, err)
			return nil, fmt.Errorf("failed to record coupon redemption: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Printf("❌ CreateOrder: Error committing transaction: %v", err)
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	log.Printf("✅ CreateOrder: Successfully created order id=%d ref=%s", order.ID, order.Reference)
	return order, nil
}
