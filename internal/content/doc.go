// Package content turns directories of markdown sources into site output.
//
// A section (blog posts, research notes) renders one HTML page per source
// file through the page template, then gets a JSON index sorted newest
// first and, if the directory has none, a plain listing page.
//
// Projects are not pages: each source becomes an article fragment and the
// fragments are injected between two marker comments of a host page.
//
// Source defects never abort a run. A file whose front matter does not
// parse is logged and skipped, and the rest of the directory still renders.
package content
