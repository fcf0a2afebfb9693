package main

import "strings"

// isRPCTimeout detects common timeout/cancellation substrings.
func isRPCTimeout(msg string) bool {
	s := strings.ToLower(msg)
	return strings.Contains(s, "deadline exceeded") ||
		strings.Contains(s, "timeout") ||
		strings.Contains(s, "timed out") ||
		strings.Contains(s, "context canceled")
}
