package utils

import "github.com/microcosm-cc/bluemonday"

var sanitizePolicy = bluemonday.StrictPolicy()

// SanitizeText strips any markup from free-text fields (review comments,
// product descriptions) before they are forwarded to the store.
func SanitizeText(s string) string {
	return sanitizePolicy.Sanitize(s)
}
