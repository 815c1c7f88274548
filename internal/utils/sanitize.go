package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// SanitizeText strips all markup from user supplied free text.
func SanitizeText(s string) string {
	cleaned := strictPolicy.Sanitize(s)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

// SanitizeTextPtr applies SanitizeText to an optional value.
func SanitizeTextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	cleaned := SanitizeText(*s)
	return &cleaned
}
