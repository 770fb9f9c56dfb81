// Package filter implements the bad-word message scan: a message is flagged
// when any configured word occurs in it as a case-insensitive substring.
package filter

import "strings"

// Normalize canonicalizes a word the way it is stored: trimmed and lowercased.
func Normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// Match reports the first configured word found in content, if any.
// Words are assumed normalized; content is lowercased before matching.
func Match(content string, words []string) (string, bool) {
	if len(words) == 0 {
		return "", false
	}
	lowered := strings.ToLower(content)
	for _, w := range words {
		if w == "" {
			continue
		}
		if strings.Contains(lowered, w) {
			return w, true
		}
	}
	return "", false
}
