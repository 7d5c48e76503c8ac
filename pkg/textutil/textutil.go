// Package textutil provides common text helpers.
package textutil

import (
	"regexp"
	"strings"
)

var (
	invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	repeatedUnderscores  = regexp.MustCompile(`_+`)
)

// NormalizeWhitespace replaces runs of whitespace with single spaces and trims
// the ends.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate shortens s to maxLength runes, appending an ellipsis when cut.
func Truncate(s string, maxLength int) string {
	runes := []rune(s)
	if len(runes) <= maxLength {
		return s
	}

	return string(runes[:maxLength]) + "..."
}

// SanitizeFilename turns an arbitrary title into a safe file name: filesystem
// reserved characters are dropped, spaces become underscores, and the result
// is capped at maxLength runes.
func SanitizeFilename(name string, maxLength int) string {
	name = invalidFilenameChars.ReplaceAllString(name, "")
	name = strings.ReplaceAll(name, " ", "_")
	name = repeatedUnderscores.ReplaceAllString(name, "_")

	runes := []rune(name)
	if len(runes) > maxLength {
		name = string(runes[:maxLength])
	}

	return strings.Trim(name, "_")
}
