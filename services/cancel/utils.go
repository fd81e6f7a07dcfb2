package cancel

import "strings"

// normalizeOrderNumber uppercases a manually entered order number and strips
// a leading "#" (customers often copy it from the confirmation email).
func normalizeOrderNumber(orderNumber string) string {
	return strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(orderNumber), "#"))
}

// normalizeName lowercases, trims and collapses internal whitespace runs to a
// single space. Matching is exact after normalization; a typo fails closed.
func normalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
