// Package textutil holds the plain-text shaping shared by page
// descriptions and feed entries.
package textutil

import (
	"strings"
	"unicode/utf8"
)

// CollapseSpace trims s and replaces every run of whitespace with a
// single space.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate cuts s to at most max runes. A cut string gets a trailing
// ellipsis, counted within max. Strings that fit are returned unchanged.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}

	n := 0
	for i := range s {
		if n == max-1 {
			return strings.TrimRight(s[:i], " ") + "…"
		}
		n++
	}
	return s
}

// Summarize collapses whitespace and truncates to max runes.
func Summarize(s string, max int) string {
	return Truncate(CollapseSpace(s), max)
}
