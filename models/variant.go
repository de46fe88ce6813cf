package models

// Variant represents a purchasable SKU snapshot at evaluation time.
// Prices are integer rupees.
type Variant struct {
	ID              int64  `json:"id"`
	ProductID       int64  `json:"productId"`
	SKU             string `json:"sku"`
	Category        string `json:"category"`
	SizeMl          int    `json:"sizeMl"`
	ListPrice       int64  `json:"listPrice"`
	DiscountPercent int    `json:"discountPercent"`
	Stock           int    `json:"stock"`
	ImageURL        string `json:"imageUrl,omitempty"`
}

// SellingPrice returns the product-level discounted unit price:
// floor(listPrice * (1 - discountPercent/100)).
func (v *Variant) SellingPrice() int64 {
	if v.DiscountPercent <= 0 {
		return v.ListPrice
	}
	return v.ListPrice * int64(100-v.DiscountPercent) / 100
}
