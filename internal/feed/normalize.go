package feed

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-sitegen/internal/dateutil"
	"github.com/alnah/go-sitegen/internal/manifest"
	"github.com/alnah/go-sitegen/internal/slug"
	"github.com/alnah/go-sitegen/internal/textutil"
)

// entry is a feed item reduced to what normalization needs, whatever
// source it came from.
type entry struct {
	title     string
	link      string
	published *time.Time
	date      string // Raw date, used when published is nil
	text      string // Markup the description is derived from
	images    []string
}

// fromFeed converts parsed RSS/Atom items. The richest content field
// (content:encoded, then description) feeds both the description and the
// thumbnail search; the item image and image enclosures are fallbacks.
func fromFeed(f *gofeed.Feed) []entry {
	if f == nil {
		return nil
	}

	entries := make([]entry, 0, len(f.Items))
	for _, it := range f.Items {
		if it == nil {
			continue
		}

		content := it.Content
		if content == "" {
			content = it.Description
		}

		images := []string{firstImage(content)}
		if it.Image != nil {
			images = append(images, it.Image.URL)
		}
		images = append(images, imageEnclosures(it.Enclosures)...)

		published := it.PublishedParsed
		if published == nil {
			published = it.UpdatedParsed
		}

		entries = append(entries, entry{
			title:     it.Title,
			link:      it.Link,
			published: published,
			date:      it.Published,
			text:      content,
			images:    images,
		})
	}
	return entries
}

func imageEnclosures(enclosures []*gofeed.Enclosure) []string {
	var urls []string
	for _, e := range enclosures {
		if e != nil && strings.HasPrefix(e.Type, "image/") {
			urls = append(urls, e.URL)
		}
	}
	return urls
}

// normalize turns entries into manifest items, dropping entries without a
// title or link, until max items are collected.
func (s *Syncer) normalize(entries []entry) []manifest.Item {
	items := make([]manifest.Item, 0, min(len(entries), s.opts.MaxItems))
	for _, e := range entries {
		if len(items) == s.opts.MaxItems {
			break
		}

		title := textutil.CollapseSpace(plainText(e.title))
		link := strings.TrimSpace(e.link)
		if title == "" || link == "" {
			continue
		}

		items = append(items, manifest.Item{
			Title:       title,
			Date:        s.formatDate(e),
			Slug:        slug.Make(title),
			Description: textutil.Summarize(plainText(e.text), s.opts.DescriptionLength),
			Thumbnail:   s.thumbnail(e.images),
			Link:        link,
		})
	}
	return items
}

func (s *Syncer) formatDate(e entry) string {
	if e.published != nil {
		if d, err := dateutil.Format(e.published.UTC(), s.opts.DateFormat); err == nil {
			return d
		}
	}
	if e.date == "" {
		return ""
	}
	t, err := dateutil.Parse(e.date)
	if err != nil {
		return ""
	}
	d, err := dateutil.Format(t.UTC(), s.opts.DateFormat)
	if err != nil {
		return ""
	}
	return d
}

func (s *Syncer) thumbnail(candidates []string) string {
	for _, c := range candidates {
		if c = strings.TrimSpace(c); c != "" {
			return c
		}
	}
	return s.opts.Placeholder
}

// blockElements end a run of text when converting markup to plain text.
var blockElements = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Br: true, atom.Li: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Blockquote: true, atom.Pre: true, atom.Figure: true, atom.Figcaption: true,
	atom.Tr: true, atom.Td: true, atom.Th: true,
}

// plainText returns the visible text of a markup fragment, with block
// boundaries turned into spaces. Text without markup is returned as is.
func plainText(markup string) string {
	if !strings.ContainsAny(markup, "<&") {
		return markup
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return markup
	}
	doc.Find("script, style").Remove()

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && blockElements[n.DataAtom] {
			b.WriteByte(' ')
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
	return textutil.CollapseSpace(b.String())
}

// firstImage returns the src of the first <img> in a markup fragment.
func firstImage(markup string) string {
	if !strings.Contains(strings.ToLower(markup), "<img") {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return ""
	}
	src, _ := doc.Find("img[src]").First().Attr("src")
	return strings.TrimSpace(src)
}
