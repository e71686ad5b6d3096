package utils

import "strconv"

// ToNumberWithDefault parses s as an int, falling back to def on empty or
// malformed input.
func ToNumberWithDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
