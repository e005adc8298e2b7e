package pipeline

import (
	"net/url"
	"path"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-sitegen/internal/slug"
)

// RewriteRelativePaths resolves relative img[src] and a[href] values in a
// rendered fragment against baseURL, the site path the page is served
// under (e.g. /blogs). Links to sibling markdown sources are pointed at
// the generated page: "other.md" becomes "/blogs/other.html".
// If baseURL is empty or nothing needs rewriting, the fragment is
// returned unchanged.
//
// Not rewritten: URLs with a scheme, protocol-relative and site-absolute
// paths, anchors, srcset and CSS url() references.
func RewriteRelativePaths(fragment, baseURL string) (string, error) {
	if baseURL == "" || fragment == "" {
		return fragment, nil
	}

	base, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
	if err != nil {
		return "", err
	}

	bodyCtx := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), bodyCtx)
	if err != nil {
		return "", err
	}

	changed := false
	for _, n := range nodes {
		if rewriteNode(n, base) {
			changed = true
		}
	}
	if !changed {
		return fragment, nil
	}

	var buf strings.Builder
	for _, n := range nodes {
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// rewriteNode walks the tree and reports whether any attribute changed.
func rewriteNode(n *html.Node, base *url.URL) bool {
	changed := false
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Img:
			changed = rewriteAttr(n, "src", base, false)
		case atom.A:
			changed = rewriteAttr(n, "href", base, true)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if rewriteNode(c, base) {
			changed = true
		}
	}
	return changed
}

func rewriteAttr(n *html.Node, attrName string, base *url.URL, isLink bool) bool {
	for i, attr := range n.Attr {
		if attr.Key != attrName || !isRelativePath(attr.Val) {
			continue
		}

		ref, err := url.Parse(attr.Val)
		if err != nil {
			continue
		}
		if isLink && strings.EqualFold(path.Ext(ref.Path), ".md") {
			dir, file := path.Split(ref.Path)
			ref.Path = dir + slug.FromFilename(file) + ".html"
		}

		n.Attr[i].Val = base.ResolveReference(ref).String()
		return true
	}
	return false
}

// isRelativePath returns true if the value is a path relative to the page.
func isRelativePath(p string) bool {
	if p == "" {
		return false
	}
	if strings.HasPrefix(p, "/") || strings.HasPrefix(p, "#") || strings.HasPrefix(p, "?") {
		return false
	}
	// Anything with a scheme (http:, mailto:, data:, file:) is left alone.
	if u, err := url.Parse(p); err != nil || u.Scheme != "" {
		return false
	}
	return true
}
