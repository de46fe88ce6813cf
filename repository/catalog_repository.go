package repository

import (
	"context"
	"fmt"
	"log"
	"strings"

	"attarkart/db"
	"attarkart/models"
)

// CatalogRepository handles database operations for the variant catalog.
type CatalogRepository struct{}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{}
}

// Ensure CatalogRepository implements CatalogRepositoryInterface
var _ CatalogRepositoryInterface = (*CatalogRepository)(nil)

const variantColumns = `id, product_id, sku, category, size_ml, list_price, discount_percent, stock, COALESCE(image_url, '') AS image_url`

// VariantsByIDs fetches a price/stock snapshot for the given variant ids.
// Ids with no matching row are simply absent from the returned map; the
// pricing engine turns those into stale-cart errors.
func (r *CatalogRepository) VariantsByIDs(ctx context.Context, ids []int64) (map[int64]models.Variant, error) {
	snapshot := make(map[int64]models.Variant, len(ids))
	if len(ids) == 0 {
		return snapshot, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	query := fmt.Sprintf(`SELECT %s FROM variants WHERE id IN (%s)`,
		variantColumns, strings.Join(placeholders, ", "))

	rows, err := db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Printf("❌ VariantsByIDs: Error querying variants: %v", err)
		return nil, fmt.Errorf("failed to query variants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var v models.Variant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.SKU, &v.Category, &v.SizeMl,
			&v.ListPrice, &v.DiscountPercent, &v.Stock, &v.ImageURL); err != nil {
			log.Printf("❌ VariantsByIDs: Error scanning variant: %v", err)
			return nil, fmt.Errorf("failed to scan variant: %w", err)
		}
		snapshot[v.ID] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate variants: %w", err)
	}

	log.Printf("✓ VariantsByIDs: Fetched %d of %d requested variants", len(snapshot), len(ids))
	return snapshot, nil
}

// ListActive returns every in-stock variant ordered by SKU, for the
// printable price list.
func (r *CatalogRepository) ListActive(ctx context.Context) ([]models.Variant, error) {
	query := fmt.Sprintf(`SELECT %s FROM variants WHERE is_active = true AND stock > 0 ORDER BY sku ASC`, variantColumns)

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		log.Printf("❌ ListActive: Error querying variants: %v", err)
		return nil, fmt.Errorf("failed to query variants: %w", err)
	}
	defer rows.Close()

	var variants []models.Variant
	for rows.Next() {
		var v models.Variant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.SKU, &v.Category, &v.SizeMl,
			&v.ListPrice, &v.DiscountPercent, &v.Stock, &v.ImageURL); err != nil {
			log.Printf("❌ ListActive: Error scanning variant: %v", err)
			return nil, fmt.Errorf("failed to scan variant: %w", err)
		}
		variants = append(variants, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate variants: %w", err)
	}

	log.Printf("✓ ListActive: Fetched %d active variants", len(variants))
	return variants, nil
}

// UpdateImageURLBySKU sets the image URL on the variant with the given SKU.
// Returns false when no variant matched.
func (r *CatalogRepository) UpdateImageURLBySKU(ctx context.Context, sku string, imageURL string) (bool, error) {
	query := `UPDATE variants SET image_url = $1 WHERE sku = $2`

	result, err := db.DB.ExecContext(ctx, query, imageURL, strings.ToUpper(sku))
	if err != nil {
		log.Printf("❌ UpdateImageURLBySKU: Error updating variant %s: %v", sku, err)
		return false, fmt.Errorf("failed to update image url: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return affected > 0, nil
}
