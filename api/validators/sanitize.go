package validators

import "strings"

// SanitizeString normalizes free-form catalog text such as product names and
// shop names: surrounding whitespace is dropped, inner runs of whitespace
// collapse to a single space, and the result is capped at maxLen runes. The
// cut counts runes, not bytes, so accented names never lose a partial
// character. A maxLen of zero means no cap.
func SanitizeString(input string, maxLen int) string {
	cleaned := strings.Join(strings.Fields(input), " ")
	if maxLen <= 0 {
		return cleaned
	}
	runes := []rune(cleaned)
	if len(runes) <= maxLen {
		return cleaned
	}
	return strings.TrimSpace(string(runes[:maxLen]))
}
