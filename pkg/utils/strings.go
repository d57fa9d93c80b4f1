package utils

import (
	"strconv"
	"strings"
)

// NormalizeOrderNumber strips whitespace and the storefront's leading "#"
// from an order number, e.g. " #1042 " -> "1042".
func NormalizeOrderNumber(s string) string {
	return strings.TrimPrefix(strings.TrimSpace(s), "#")
}

// ParseInt parses a string to int with a fallback default value
func ParseInt(s string, defaultVal int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return val
}

// ParseIndexList parses "0,2, 3" into indices; malformed entries are skipped.
func ParseIndexList(s string) []int {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if i, err := strconv.Atoi(part); err == nil {
			out = append(out, i)
		}
	}
	return out
}
