package domain

import "strings"

// CoalesceStr returns the first non-blank string from vals.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if !IsBlank(v) {
			return v
		}
	}
	return ""
}

// IsBlank reports whether s is empty once surrounding whitespace is removed.
// This is the single definition of an "empty" text value.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
