package manifest

import (
	"strings"

	"github.com/alnah/go-sitegen/internal/slug"
)

// Key identifies an item across sources: its link, or for local posts
// without one, the page URL under blogURL. The page slug is the item's
// slug, else one derived from its title.
func Key(it Item, blogURL string) string {
	if it.Link != "" {
		return it.Link
	}
	s := it.Slug
	if s == "" {
		s = slug.Make(it.Title)
	}
	if s == "" {
		s = slug.Fallback
	}
	return strings.TrimSuffix(blogURL, "/") + "/" + s + ".html"
}

// Merge combines local and remote items into one list with exactly one
// entry per key. Local entries win: they are seeded first, a later local
// duplicate replaces an earlier one in place, and remote entries are
// appended only when their key is new. The result is not sorted.
func Merge(local, remote []Item, blogURL string) []Item {
	out := make([]Item, 0, len(local)+len(remote))
	index := make(map[string]int, len(local)+len(remote))

	for _, it := range local {
		k := Key(it, blogURL)
		if i, ok := index[k]; ok {
			out[i] = it
			continue
		}
		index[k] = len(out)
		out = append(out, it)
	}

	for _, it := range remote {
		k := Key(it, blogURL)
		if _, ok := index[k]; ok {
			continue
		}
		index[k] = len(out)
		out = append(out, it)
	}

	return out
}
