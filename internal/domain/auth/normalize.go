package auth

import "strings"

// normalizeEmail lowercases and trims an email address before lookups
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
