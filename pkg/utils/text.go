// Package utils provides shared utilities for text, math, and logging.
package utils

import "strings"

// Snippet returns the first line of s cut to at most maxLen characters,
// the snippet rule carried in result records.
func Snippet(s string, maxLen int) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if maxLen > 0 && len(s) > maxLen {
		s = s[:maxLen]
	}
	return s
}
