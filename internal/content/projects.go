package content

import (
	"cmp"
	"context"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alnah/go-sitegen/internal/assets"
	"github.com/alnah/go-sitegen/internal/dateutil"
	"github.com/alnah/go-sitegen/internal/manifest"
	"github.com/alnah/go-sitegen/internal/pipeline"
	"github.com/alnah/go-sitegen/internal/slug"
)

// Project is one rendered project source.
type Project struct {
	File    string
	Meta    FrontMatter
	Title   string
	Slug    string
	Summary string // Plain text description
	Article string // HTML fragment for the host page
}

// RenderProjects renders every *.md file in dir into an article fragment
// and returns them ordered by front matter order, ascending, then by file
// name. A missing dir yields no projects.
func (r *Renderer) RenderProjects(ctx context.Context, dir, baseURL string) ([]Project, error) {
	files, err := markdownFiles(dir)
	if err != nil {
		if os.IsNotExist(err) {
			r.Logger.Debug("no projects directory", "dir", dir)
			return nil, nil
		}
		return nil, err
	}

	tmpl, err := r.Templates.LoadTemplate(assets.ProjectArticleTemplate)
	if err != nil {
		return nil, fmt.Errorf("loading template %s: %w", assets.ProjectArticleTemplate, err)
	}

	projects := make([]Project, 0, len(files))
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		p, err := r.renderProject(ctx, tmpl, dir, name, baseURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			r.Logger.Warn("skipping project", "file", name, "error", err)
			continue
		}
		projects = append(projects, p)
	}

	slices.SortStableFunc(projects, func(a, b Project) int {
		return cmp.Compare(a.Meta.Order, b.Meta.Order)
	})
	return projects, nil
}

func (r *Renderer) renderProject(ctx context.Context, tmpl, dir, name, baseURL string) (Project, error) {
	source, err := os.ReadFile(filepath.Join(dir, name)) // #nosec G304 -- file listed from the projects dir
	if err != nil {
		return Project{}, err
	}
	fm, body, err := ParseFrontMatter(source)
	if err != nil {
		return Project{}, err
	}
	fm.Date = dateutil.Normalize(fm.Date, dateutil.DefaultDateFormat)

	contentHTML, err := r.RenderBody(ctx, string(body), baseURL)
	if err != nil {
		return Project{}, err
	}

	title := fm.DisplayTitle(strings.TrimSuffix(name, filepath.Ext(name)))
	return Project{
		File:    name,
		Meta:    fm,
		Title:   title,
		Slug:    slug.Resolve(fm.Slug, name, title),
		Summary: r.Describe(fm, string(body)),
		Article: projectArticle(tmpl, fm, title, contentHTML),
	}, nil
}

// projectArticle fills the article template. Optional parts are built
// here and substituted whole, so the template needs no conditionals.
func projectArticle(tmpl string, fm FrontMatter, title, contentHTML string) string {
	esc := html.EscapeString

	var date string
	if fm.Date != "" {
		date = `<span class="date">` + esc(fm.Date) + `</span>`
	}

	heading := esc(title)
	if fm.Link != "" {
		heading = externalLink(fm.Link, "", heading)
	}

	var image string
	if fm.Image != "" {
		target := "#"
		switch {
		case fm.Link != "":
			target = fm.Link
		case fm.Repo != "":
			target = fm.Repo
		}
		image = `<a href="` + esc(target) + `" class="image fit"><img src="` + esc(fm.Image) + `" alt="` + esc(title) + `" /></a>`
	}

	var actions string
	switch {
	case fm.Repo != "":
		actions = `<ul class="actions special"><li>` + externalLink(fm.Repo, "button", "Repository") + `</li></ul>`
	case fm.Link != "":
		actions = `<ul class="actions special"><li>` + externalLink(fm.Link, "button", "Link") + `</li></ul>`
	}

	return pipeline.Substitute(tmpl, map[string]string{
		"date":    date,
		"heading": heading,
		"image":   image,
		"content": contentHTML,
		"actions": actions,
	})
}

func externalLink(href, class, inner string) string {
	var b strings.Builder
	b.WriteString(`<a href="`)
	b.WriteString(html.EscapeString(href))
	b.WriteString(`" target="_blank" rel="noopener noreferrer"`)
	if class != "" {
		b.WriteString(` class="` + class + `"`)
	}
	b.WriteString(">")
	b.WriteString(inner)
	b.WriteString("</a>")
	return b.String()
}

// ArticlesBlock joins the project articles for injection.
func ArticlesBlock(projects []Project) string {
	articles := make([]string, len(projects))
	for i, p := range projects {
		articles[i] = p.Article
	}
	return strings.Join(articles, "\n")
}

// ProjectItems converts projects to grid items, keeping their order.
func ProjectItems(projects []Project) []manifest.Item {
	items := make([]manifest.Item, len(projects))
	for i, p := range projects {
		link := p.Meta.Link
		if link == "" {
			link = p.Meta.Repo
		}
		items[i] = manifest.Item{
			Title:       p.Title,
			Date:        p.Meta.Date,
			Slug:        p.Slug,
			Description: p.Summary,
			Thumbnail:   p.Meta.Picture(),
			Link:        link,
			Stack:       p.Meta.Stack,
		}
	}
	return items
}
