// Package pipeline implements the text stages shared by page rendering and
// host page patching:
//   - Markdown preprocessing (line endings, ==highlight== syntax)
//   - Markdown to HTML fragment conversion via goldmark
//   - Relative path resolution against a section's site URL
//   - Literal %placeholder% substitution
//   - Marker-delimited injection into existing documents
//
// Nothing here touches the filesystem; the content package reads sources
// and writes outputs.
package pipeline
