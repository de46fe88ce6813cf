package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"attarkart/db"
	"attarkart/models"
)

// Fallback quote for pincodes not present in the serviceability table.
const (
	defaultDeliveryCharge = 99
	defaultCODAvailable   = false
)

// DeliveryRepository resolves pincode delivery quotes. The pricing engine
// treats the result as opaque input and never computes it itself.
type DeliveryRepository struct{}

// NewDeliveryRepository creates a new DeliveryRepository
func NewDeliveryRepository() *DeliveryRepository {
	return &DeliveryRepository{}
}

// Ensure DeliveryRepository implements DeliveryRepositoryInterface
var _ DeliveryRepositoryInterface = (*DeliveryRepository)(nil)

// InfoForPincode returns the delivery charge and COD availability for a
// destination pincode, falling back to the default quote when unlisted.
func (r *DeliveryRepository) InfoForPincode(ctx context.Context, pincode string) (models.DeliveryInfo, error) {
	trimmed := strings.TrimSpace(pincode)

	query := `SELECT delivery_charge, cod_available FROM pincodes WHERE pincode = $1`

	var info models.DeliveryInfo
	err := db.DB.QueryRowContext(ctx, query, trimmed).Scan(&info.DeliveryCharge, &info.CODAvailable)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Printf("🚚 InfoForPincode: Pincode %s not listed, using default quote", trimmed)
			return models.DeliveryInfo{DeliveryCharge: defaultDeliveryCharge, CODAvailable: defaultCODAvailable}, nil
		}
		log.Printf("❌ InfoForPincode: Error querying pincode %s: %v", trimmed, err)
		return models.DeliveryInfo{}, fmt.Errorf("failed to query pincode: %w", err)
	}
	return info, nil
}
