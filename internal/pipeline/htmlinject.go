package pipeline

import (
	"errors"
	"strings"
)

// ErrMarkersNotFound indicates a host document lacks the start marker or an
// end marker after it.
var ErrMarkersNotFound = errors.New("injection markers not found")

// Substitute replaces every %name% placeholder in tmpl whose name is a key
// of values. Replacement is literal, global and case-sensitive, done in a
// single pass: substituted values are never scanned for placeholders.
// Placeholders without a value are left verbatim.
func Substitute(tmpl string, values map[string]string) string {
	if tmpl == "" || len(values) == 0 {
		return tmpl
	}

	pairs := make([]string, 0, len(values)*2)
	for name, value := range values {
		pairs = append(pairs, "%"+name+"%", value)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

// InjectBetweenMarkers replaces whatever lies strictly between the first
// start marker and the first end marker following it with
// "\n" + block + "\n". Both markers are preserved.
// Returns the document unchanged and false when either marker is missing
// or the end marker does not follow the start marker.
func InjectBetweenMarkers(doc, start, end, block string) (string, bool) {
	if start == "" || end == "" {
		return doc, false
	}

	startIdx := strings.Index(doc, start)
	if startIdx == -1 {
		return doc, false
	}

	innerStart := startIdx + len(start)
	endOffset := strings.Index(doc[innerStart:], end)
	if endOffset == -1 {
		return doc, false
	}
	innerEnd := innerStart + endOffset

	var b strings.Builder
	b.Grow(len(doc) - (innerEnd - innerStart) + len(block) + 2)
	b.WriteString(doc[:innerStart])
	b.WriteByte('\n')
	b.WriteString(block)
	b.WriteByte('\n')
	b.WriteString(doc[innerEnd:])
	return b.String(), true
}
