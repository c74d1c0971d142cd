// Package sanitize is the single shared text-safety utility for every
// dashboard module: output escaping, a markup-injection denylist and the
// length ceilings applied to free-text fields. Escaping on output remains
// mandatory; the denylist is defence in depth, not a substitute.
package sanitize

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

// Field length ceilings shared by all modules
const (
	MaxNameLength        = 200
	MaxDescriptionLength = 1000
)

// deniedPatterns are lowercase substrings rejected in free-text input
var deniedPatterns = []string{
	"<script",
	"javascript:",
	"vbscript:",
	"<iframe",
	"<object",
	"<embed",
}

// eventHandlerAttr matches inline handler attributes such as onclick= or onload=
var eventHandlerAttr = regexp.MustCompile(`(?i)\bon[a-z]+\s*=`)

// EscapeHTML escapes user-supplied text for insertion into markup
func EscapeHTML(s string) string {
	return html.EscapeString(s)
}

// DeniedPattern returns the first denylisted pattern found in s, or ""
func DeniedPattern(s string) string {
	lower := strings.ToLower(s)
	for _, pattern := range deniedPatterns {
		if strings.Contains(lower, pattern) {
			return pattern
		}
	}
	if match := eventHandlerAttr.FindString(s); match != "" {
		return match
	}
	return ""
}

// CheckFreeText validates a free-text field against the length ceiling and
// the denylist. The field name is used in the returned error message.
func CheckFreeText(field, value string, maxLen int) error {
	if len(value) > maxLen {
		return fmt.Errorf("%s must be at most %d characters", field, maxLen)
	}
	if pattern := DeniedPattern(value); pattern != "" {
		return fmt.Errorf("%s contains a disallowed pattern: %q", field, pattern)
	}
	return nil
}

// CheckName validates a name/title field
func CheckName(field, value string) error {
	return CheckFreeText(field, value, MaxNameLength)
}

// CheckDescription validates a description field
func CheckDescription(field, value string) error {
	return CheckFreeText(field, value, MaxDescriptionLength)
}
