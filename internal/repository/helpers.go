package repository

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// timeLayout is fixed width so created_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// defaultListLimit applies when a caller passes a non-positive limit.
const defaultListLimit = 20

// joinList flattens a string list into a single column value.
func joinList(items []string) string {
	return strings.Join(items, "\n")
}

// splitList reverses joinList. An empty column is a nil slice.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	return limit
}
