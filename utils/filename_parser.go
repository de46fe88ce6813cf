package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// product image filenames follow SKU_slug.ext, e.g. ATR-ROSE-30_rose-attar.jpg
var imageNameRegex = regexp.MustCompile(`^([A-Z0-9][A-Z0-9\-]*)_([a-z0-9][a-z0-9\-]*)\.(png|jpg|jpeg)$`)

// ParseImageFileName parses a product image filename of the form
// SKU_slug.ext and returns the SKU (uppercased) and slug.
// Example: ATR-ROSE-30_rose-attar.jpg -> ("ATR-ROSE-30", "rose-attar")
func ParseImageFileName(filename string) (sku string, slug string, err error) {
	normalized := strings.ToUpper(filename)
	// Only the SKU segment is case-significant; lowercase the rest back.
	idx := strings.Index(filename, "_")
	if idx <= 0 {
		return "", "", fmt.Errorf("invalid image filename %q: expected SKU_slug.ext", filename)
	}
	candidate := normalized[:idx] + strings.ToLower(filename[idx:])

	matches := imageNameRegex.FindStringSubmatch(candidate)
	if len(matches) != 4 {
		return "", "", fmt.Errorf("invalid image filename %q: expected SKU_slug.ext", filename)
	}
	return matches[1], matches[2], nil
}
