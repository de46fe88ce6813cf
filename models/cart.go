package models

// BundleComponentCount is the fixed number of component variants in a bundle line.
const BundleComponentCount = 4

// CartLine represents one entry in a raw cart as submitted by the client.
// A bundle line carries a bundle ID, exactly BundleComponentCount component
// variant IDs and a fixed override price replacing the sum of component prices.
type CartLine struct {
	VariantID           int64   `json:"variantId"`
	Quantity            int     `json:"quantity"`
	BundleID            string  `json:"bundleId,omitempty"`
	ComponentVariantIDs []int64 `json:"componentVariantIds,omitempty"`
	OverridePrice       int64   `json:"overridePrice,omitempty"`
}

// IsBundle reports whether this line is a fixed-price bundle.
func (l *CartLine) IsBundle() bool {
	return l.BundleID != ""
}

// NormalizedUnit is one physical sellable unit expanded from a cart line,
// the atomic element automatic offers reason about.
type NormalizedUnit struct {
	UnitID           string `json:"unitId"`
	SourceLineIndex  int    `json:"sourceLineIndex"`
	VariantID        int64  `json:"variantId"`
	UnitSellingPrice int64  `json:"unitSellingPrice"`
	Category         string `json:"category"`
	SizeMl           int    `json:"sizeMl"`
	PartOfBundle     bool   `json:"partOfBundle"`
}
