package core

import "strings"

// CleanString trims surrounding whitespace from `s`. Pass true to also
// lower-case the result, e.g. for email and search-term normalization.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		s = strings.ToLower(s)
	}
	return s
}
