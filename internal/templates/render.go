// Package templates renders stored post templates. Templates use brace
// placeholders ({title}, {link}, {description}, {author}); unknown braces are
// left as-is so a typo shows up in the posted embed instead of failing.
package templates

import (
	"fmt"
	"strconv"
	"strings"
)

// Vars are the values substituted into a template's format strings.
type Vars struct {
	Title       string
	Link        string
	Description string
	Author      string
}

// Render substitutes the recognized placeholders in format.
func Render(format string, v Vars) string {
	r := strings.NewReplacer(
		"{title}", v.Title,
		"{link}", v.Link,
		"{description}", v.Description,
		"{author}", v.Author,
	)
	return r.Replace(format)
}

// ParseColor converts a "#RRGGBB" (or "RRGGBB") string to a Discord embed
// color value.
func ParseColor(hex string) (int, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) != 6 {
		return 0, fmt.Errorf("invalid color %q: want #RRGGBB", hex)
	}
	n, err := strconv.ParseInt(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	return int(n), nil
}
