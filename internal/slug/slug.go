// Package slug derives URL-safe identifiers for pages and manifest entries.
//
// A slug contains only [a-z0-9] and single hyphens, never at either end.
package slug

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Fallback is used when nothing else yields a non-empty slug.
const Fallback = "untitled"

var (
	nonAlnum    = regexp.MustCompile(`[^a-z0-9]+`)
	orderPrefix = regexp.MustCompile(`^\d+-`)
)

// Make lowercases s and collapses every run of characters outside
// [a-z0-9] into one hyphen, trimming hyphens at both ends.
// Non-ASCII letters are treated as separators.
func Make(s string) string {
	s = nonAlnum.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(s, "-")
}

// FromFilename slugs a file name without its extension and without a
// leading numeric ordering prefix: "01-Hello World.md" -> "hello-world".
func FromFilename(name string) string {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = orderPrefix.ReplaceAllString(base, "")
	return Make(base)
}

// Resolve returns the first non-empty slug among an explicit slug, the
// source file name and the title, or Fallback.
func Resolve(explicit, filename, title string) string {
	for _, s := range []string{Make(explicit), FromFilename(filename), Make(title)} {
		if s != "" {
			return s
		}
	}
	return Fallback
}
