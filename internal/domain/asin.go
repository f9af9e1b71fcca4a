package domain

import "strings"

// IsASIN reports whether a value looks like an Amazon product identifier:
// exactly 10 characters beginning "b0" after trimming, case-insensitive.
// Applied independently to the targeting expression (rule applicability)
// and to the customer search term (result classification).
func IsASIN(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	return strings.HasPrefix(v, "b0") && len(v) == 10
}
