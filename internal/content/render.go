package content

import (
	"context"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"sort"
	"strings"

	stripMarkdown "github.com/writeas/go-strip-markdown"

	"github.com/alnah/go-sitegen/internal/assets"
	"github.com/alnah/go-sitegen/internal/dateutil"
	"github.com/alnah/go-sitegen/internal/fileutil"
	"github.com/alnah/go-sitegen/internal/hints"
	"github.com/alnah/go-sitegen/internal/logging"
	"github.com/alnah/go-sitegen/internal/manifest"
	"github.com/alnah/go-sitegen/internal/pipeline"
	"github.com/alnah/go-sitegen/internal/slug"
	"github.com/alnah/go-sitegen/internal/textutil"
)

// DefaultDescriptionLength caps derived descriptions, in runes.
const DefaultDescriptionLength = 220

// Section is a directory of markdown pages served under one site path.
type Section struct {
	Name      string // Used in log lines only
	SourceDir string
	OutputDir string // Empty = SourceDir
	BaseURL   string // Site path of the output, e.g. /blogs
	Template  string // Page template name
	Title     string // Title of the fallback index page
}

func (s Section) outputDir() string {
	if s.OutputDir == "" {
		return s.SourceDir
	}
	return s.OutputDir
}

// Renderer converts markdown sources to HTML. The zero value is not
// usable; create one with NewRenderer and override fields as needed.
type Renderer struct {
	Templates         assets.AssetLoader
	Converter         pipeline.HTMLConverter
	Preprocessor      pipeline.MarkdownPreprocessor
	Logger            logging.Logger
	TemplatesDir      string // Where site templates live, for hints only
	DescriptionLength int
}

// NewRenderer creates a Renderer using goldmark and the given templates.
// A nil logger discards output.
func NewRenderer(templates assets.AssetLoader, logger logging.Logger) *Renderer {
	return &Renderer{
		Templates:         templates,
		Converter:         pipeline.NewGoldmarkConverter(),
		Preprocessor:      &pipeline.CommonMarkPreprocessor{},
		Logger:            logging.OrNop(logger),
		DescriptionLength: DefaultDescriptionLength,
	}
}

// RenderBody converts a markdown body to an HTML fragment whose relative
// links and images resolve under baseURL.
func (r *Renderer) RenderBody(ctx context.Context, body, baseURL string) (string, error) {
	md := r.Preprocessor.PreprocessMarkdown(ctx, body)
	fragment, err := r.Converter.ToHTML(ctx, md)
	if err != nil {
		return "", err
	}
	fragment, err = pipeline.RewriteRelativePaths(fragment, baseURL)
	if err != nil {
		return "", fmt.Errorf("rewriting paths: %w", err)
	}
	return pipeline.ConvertMarkPlaceholders(fragment), nil
}

// Describe returns fm's description, or the body as plain text cut to the
// renderer's description length.
func (r *Renderer) Describe(fm FrontMatter, body string) string {
	if fm.Description != "" {
		return fm.Description
	}
	return textutil.Summarize(stripMarkdown.Strip(body), r.DescriptionLength)
}

// RenderSection writes one page per *.md file directly inside the
// section's source directory and returns their index records in file
// name order. A missing source directory is created and yields no pages.
// Per-file failures are logged and skipped; only context cancellation and
// directory errors are returned.
func (r *Renderer) RenderSection(ctx context.Context, s Section) ([]manifest.Page, error) {
	log := r.Logger
	if err := os.MkdirAll(s.SourceDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", s.SourceDir, err)
	}
	outDir := s.outputDir()
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", outDir, err)
	}

	files, err := markdownFiles(s.SourceDir)
	if err != nil {
		return nil, err
	}

	tmpl, err := assets.TemplateOrEmpty(r.Templates, s.Template)
	if err != nil {
		return nil, fmt.Errorf("loading template %s: %w", s.Template, err)
	}
	if tmpl == "" && len(files) > 0 {
		log.Warn("page template missing, pages will be empty"+hints.ForMissingTemplate(r.TemplatesDir, s.Template),
			"section", s.Name, "template", s.Template)
	}

	pages := make([]manifest.Page, 0, len(files))
	written := make(map[string]string, len(files))
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return pages, err
		}

		page, err := r.renderPage(ctx, s, tmpl, name)
		if err != nil {
			if ctx.Err() != nil {
				return pages, ctx.Err()
			}
			log.Warn("skipping page", "section", s.Name, "file", name, "error", err)
			continue
		}
		if prev, ok := written[page.Slug]; ok {
			log.Warn("slug collision, later file wins", "section", s.Name, "slug", page.Slug, "first", prev, "second", name)
		}
		written[page.Slug] = name

		log.Debug("wrote page", "section", s.Name, "path", page.OutputPath)
		pages = append(pages, page)
	}

	log.Info("rendered section", "section", s.Name, "pages", len(pages), "sources", len(files))
	return pages, nil
}

func (r *Renderer) renderPage(ctx context.Context, s Section, tmpl, name string) (manifest.Page, error) {
	srcPath := filepath.Join(s.SourceDir, name)
	source, err := os.ReadFile(srcPath) // #nosec G304 -- file listed from the section dir
	if err != nil {
		return manifest.Page{}, err
	}

	fm, body, err := ParseFrontMatter(source)
	if err != nil {
		return manifest.Page{}, err
	}
	fm.Date = dateutil.Normalize(fm.Date, dateutil.DefaultDateFormat)

	title := fm.DisplayTitle(strings.TrimSuffix(name, filepath.Ext(name)))
	pageSlug := slug.Resolve(fm.Slug, name, title)
	base := strings.TrimSuffix(s.BaseURL, "/")

	contentHTML, err := r.RenderBody(ctx, string(body), base)
	if err != nil {
		return manifest.Page{}, err
	}
	description := r.Describe(fm, string(body))

	out := pipeline.Substitute(tmpl, map[string]string{
		"title":       html.EscapeString(title),
		"date":        html.EscapeString(fm.Date),
		"description": html.EscapeString(description),
		"slug":        pageSlug,
		"baseurl":     html.EscapeString(base),
		"content":     contentHTML,
	})

	outPath := filepath.Join(s.outputDir(), pageSlug+".html")
	if err := fileutil.WriteFileAtomic(outPath, []byte(out), 0o644); err != nil {
		return manifest.Page{}, err
	}

	return manifest.Page{
		Title:       title,
		Date:        fm.Date,
		Slug:        pageSlug,
		Description: description,
		Thumbnail:   fm.Picture(),
		MD:          base + "/" + name,
		HTML:        base + "/" + pageSlug + ".html",
		SourcePath:  srcPath,
		OutputPath:  outPath,
	}, nil
}

// markdownFiles lists the *.md regular files directly in dir, sorted.
func markdownFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}
