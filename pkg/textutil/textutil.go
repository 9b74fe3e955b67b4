// Package textutil provides common string utility functions.
package textutil

import "strings"

// maxKeyLength caps sanitized identifiers so generated keys stay usable
// as filenames and URL segments.
const maxKeyLength = 50

// Sanitize lower-cases a string, collapses every run of non-alphanumeric
// characters into a single hyphen, and truncates the result to 50 characters.
// It is used to derive stable group identifiers from image paths and names.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inRun := false

	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)

			inRun = false

			continue
		}

		if !inRun {
			b.WriteByte('-')
			inRun = true
		}
	}

	out := b.String()
	if len(out) > maxKeyLength {
		out = out[:maxKeyLength]
	}

	return out
}

// NormalizeWhitespace replaces runs of whitespace with a single space.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate shortens a string to max bytes, appending an ellipsis.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}

	return s[:max] + "..."
}
