package utils

import "strings"

// NormalizeCouponCode normalizes a manually entered coupon code to the
// canonical stored form: trimmed and uppercased. Lookup is case-insensitive.
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
