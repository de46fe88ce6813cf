package models

// ProductImage represents one product image file discovered in the Drive
// folder, keyed to a variant by the SKU encoded in its filename.
type ProductImage struct {
	SKU         string `json:"sku"`
	Slug        string `json:"slug"`
	DriveFileID string `json:"driveFileId"`
	FileName    string `json:"fileName"`
	ImageURL    string `json:"imageUrl"`
}

// ImageSyncResponse reports the outcome of a Drive image sync run.
type ImageSyncResponse struct {
	Total   int `json:"total"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}
