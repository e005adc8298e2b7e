package content

import (
	"fmt"
	"html"
	"path/filepath"
	"strings"

	"github.com/alnah/go-sitegen/internal/assets"
	"github.com/alnah/go-sitegen/internal/fileutil"
	"github.com/alnah/go-sitegen/internal/manifest"
	"github.com/alnah/go-sitegen/internal/pipeline"
)

// Index file names written into a section's output directory.
const (
	IndexJSON = "index.json"
	IndexHTML = "index.html"
)

// DefaultListItem renders one fallback index entry when the site has no
// list item template.
const DefaultListItem = `<li><a href="%href%">%title%</a> <span class="date">%date%</span></li>`

const defaultIndexTitle = "index"

// IndexResult reports what WriteIndex did.
type IndexResult struct {
	ManifestPath    string
	ManifestChanged bool
	PagePath        string
	PageWritten     bool // False when an index page already existed
}

// WriteIndex writes the section's index.json with pages sorted newest
// first, and an index.html listing them unless one already exists.
func (r *Renderer) WriteIndex(s Section, pages []manifest.Page) (IndexResult, error) {
	outDir := s.outputDir()
	sorted := append([]manifest.Page(nil), pages...)
	manifest.SortByDateDesc(sorted, manifest.PageDate)

	res := IndexResult{
		ManifestPath: filepath.Join(outDir, IndexJSON),
		PagePath:     filepath.Join(outDir, IndexHTML),
	}

	changed, err := manifest.Write(res.ManifestPath, sorted)
	if err != nil {
		return res, fmt.Errorf("writing %s: %w", res.ManifestPath, err)
	}
	res.ManifestChanged = changed

	if fileutil.FileExists(res.PagePath) {
		r.Logger.Debug("kept existing index page", "section", s.Name, "path", res.PagePath)
		return res, nil
	}

	page, err := r.indexPage(s, sorted)
	if err != nil {
		return res, err
	}
	if err := fileutil.WriteFileAtomic(res.PagePath, []byte(page), 0o644); err != nil {
		return res, fmt.Errorf("writing %s: %w", res.PagePath, err)
	}
	res.PageWritten = true
	r.Logger.Info("wrote fallback index page", "section", s.Name, "path", res.PagePath)
	return res, nil
}

func (r *Renderer) indexPage(s Section, pages []manifest.Page) (string, error) {
	item, err := assets.TemplateOrEmpty(r.Templates, assets.ListItemTemplate)
	if err != nil {
		return "", err
	}
	if item == "" {
		item = DefaultListItem
	}

	shell, err := r.Templates.LoadTemplate(assets.IndexPageTemplate)
	if err != nil {
		return "", err
	}

	entries := make([]string, len(pages))
	for i, p := range pages {
		entries[i] = pipeline.Substitute(item, map[string]string{
			"href":  "./" + p.Slug + ".html",
			"title": html.EscapeString(p.Title),
			"date":  html.EscapeString(p.Date),
		})
	}
	list := "<ul class=\"posts-list\">\n" + strings.Join(entries, "\n") + "\n</ul>"

	title := s.Title
	if title == "" {
		title = defaultIndexTitle
	}
	return pipeline.Substitute(shell, map[string]string{
		"title":   html.EscapeString(title),
		"list":    list,
		"baseurl": html.EscapeString(strings.TrimSuffix(s.BaseURL, "/")),
	}), nil
}
