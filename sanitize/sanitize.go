// Package sanitize normalizes untrusted input for safe HTML output:
// strings are whitespace-trimmed and HTML-entity escaped, recursively
// through nested maps and slices.
package sanitize

import (
	"html"
	"strings"
)

// CleanString trims surrounding whitespace and escapes HTML special
// characters.
func CleanString(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}

// Clean sanitizes a value recursively. Strings are cleaned in place;
// map[string]any, []any and []string are walked; every other type is
// returned unchanged.
func Clean(v any) any {
	switch t := v.(type) {
	case string:
		return CleanString(t)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = Clean(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = Clean(val)
		}
		return out
	case []string:
		out := make([]string, len(t))
		for i, s := range t {
			out[i] = CleanString(s)
		}
		return out
	default:
		return v
	}
}
