// Package grid renders manifest items as the card markup the browser
// hydrator produces, so host pages show content before scripts run.
package grid

import (
	"net/url"
	"strings"

	"github.com/alnah/go-sitegen/internal/assets"
	"github.com/alnah/go-sitegen/internal/fileutil"
	"github.com/alnah/go-sitegen/internal/manifest"
	"github.com/alnah/go-sitegen/internal/pipeline"
)

// Grid kinds select the metadata line of each card.
const (
	KindBlog     = "blog"
	KindResearch = "research"
	KindProjects = "projects"
)

// DefaultPlaceholder replaces missing or broken thumbnails.
const DefaultPlaceholder = "/assets/images/placeholder.svg"

// DefaultBlogURL is where local blog posts without a link are served.
const DefaultBlogURL = "/blog"

// Options tune card rendering. Zero fields take the defaults.
type Options struct {
	Kind        string
	BlogURL     string
	Placeholder string
}

func (o Options) withDefaults() Options {
	if o.Kind == "" {
		o.Kind = KindBlog
	}
	if o.BlogURL == "" {
		o.BlogURL = DefaultBlogURL
	}
	if o.Placeholder == "" {
		o.Placeholder = DefaultPlaceholder
	}
	return o
}

// escape produces the same entities as the hydrator's escapeHtml.
var escape = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
).Replace

// Renderer fills the grid card template.
type Renderer struct {
	card string
	opts Options
}

// NewRenderer loads the grid card template from loader.
func NewRenderer(loader assets.AssetLoader, opts Options) (*Renderer, error) {
	card, err := loader.LoadTemplate(assets.GridCardTemplate)
	if err != nil {
		return nil, err
	}
	return &Renderer{card: card, opts: opts.withDefaults()}, nil
}

// Render returns one card per item, concatenated in order.
func (r *Renderer) Render(items []manifest.Item) string {
	var b strings.Builder
	for _, it := range items {
		b.WriteString(r.Card(it))
	}
	return b.String()
}

// Card renders a single item.
func (r *Renderer) Card(it manifest.Item) string {
	href := r.href(it)

	var target string
	if fileutil.IsURL(href) {
		target = ` target="_blank" rel="noopener"`
	}

	thumb := it.Thumbnail
	if thumb == "" {
		thumb = r.opts.Placeholder
	}

	return pipeline.Substitute(r.card, map[string]string{
		"href":        escape(href),
		"target":      target,
		"thumbnail":   escape(thumb),
		"placeholder": escape(r.opts.Placeholder),
		"title":       escape(it.Title),
		"description": escape(it.Description),
		"meta":        escape(r.meta(it)),
	})
}

func (r *Renderer) href(it manifest.Item) string {
	switch {
	case it.Link != "":
		return it.Link
	case r.opts.Kind == KindBlog && it.Slug != "":
		return strings.TrimSuffix(r.opts.BlogURL, "/") + "/" + url.PathEscape(it.Slug) + ".html"
	default:
		return "#"
	}
}

func (r *Renderer) meta(it manifest.Item) string {
	if r.opts.Kind == KindProjects {
		return strings.Join(it.Stack, " · ")
	}
	return it.Date
}
