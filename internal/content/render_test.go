package content

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/alnah/go-sitegen/internal/fileutil"
)

const testPostTemplate = `<html><title>%title%</title><body data-base="%baseurl%"><time>%date%</time>%content%<!-- %unknown% --></body></html>`

func TestRenderer_RenderSection(t *testing.T) {
	t.Parallel()

	r, rec := newTestRenderer(t, map[string]string{"post_template": testPostTemplate})
	src := t.TempDir()

	writeFile(t, src, "01-First Post.md", "---\ntitle: First & Best\ndate: 2024-01-02\n---\n# Hello\n\nSee ![pic](img/a.png) and [next](02-second.md).\n")
	writeFile(t, src, "02-second.md", "---\nslug: Custom Slug\n---\nNo title here.\n")
	writeFile(t, src, "broken.md", "---\ntitle: [unclosed\n---\nbody")
	writeFile(t, src, "notes.txt", "ignored")
	if err := os.Mkdir(filepath.Join(src, "drafts.md"), 0755); err != nil {
		t.Fatal(err)
	}

	pages, err := r.RenderSection(context.Background(), Section{
		Name: "blog", SourceDir: src, BaseURL: "/blogs/", Template: "post_template",
	})
	if err != nil {
		t.Fatalf("RenderSection() error = %v", err)
	}

	if len(pages) != 2 {
		t.Fatalf("RenderSection() returned %d pages, want 2", len(pages))
	}

	first := pages[0]
	if first.Title != "First & Best" || first.Slug != "first-post" || first.Date != "2024-01-02" {
		t.Errorf("first page = %+v", first)
	}
	if first.MD != "/blogs/01-First Post.md" || first.HTML != "/blogs/first-post.html" {
		t.Errorf("first page paths = %q, %q", first.MD, first.HTML)
	}

	second := pages[1]
	if second.Title != "02-second" || second.Slug != "custom-slug" {
		t.Errorf("second page = %+v, want filename title and explicit slug", second)
	}

	out := readFile(t, filepath.Join(src, "first-post.html"))
	for _, want := range []string{
		"<title>First &amp; Best</title>",
		`data-base="/blogs"`,
		"<time>2024-01-02</time>",
		`<h1 id="hello">Hello</h1>`,
		`src="/blogs/img/a.png"`,
		`href="/blogs/second.html"`,
		"%unknown%",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("page missing %q:\n%s", want, out)
		}
	}

	if !fileutil.FileExists(filepath.Join(src, "custom-slug.html")) {
		t.Error("second page not written under its explicit slug")
	}
	if !rec.Contains("warn", "broken.md") {
		t.Errorf("expected a warning for broken.md, got %v", rec.Entries())
	}
}

func TestRenderer_RenderSection_NormalizesDates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		date string
		want string
	}{
		{name: "timestamp", date: `"2024-03-01T10:00:00Z"`, want: "2024-03-01"},
		{name: "long form", date: `"March 5, 2023"`, want: "2023-03-05"},
		{name: "unparsable kept", date: `"Spring 2024"`, want: "Spring 2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r, _ := newTestRenderer(t, map[string]string{"post_template": "<time>%date%</time>"})
			src := t.TempDir()
			writeFile(t, src, "a.md", "---\ntitle: A\ndate: "+tt.date+"\n---\nbody\n")

			pages, err := r.RenderSection(context.Background(), Section{SourceDir: src, Template: "post_template"})
			if err != nil {
				t.Fatalf("RenderSection() error = %v", err)
			}
			if len(pages) != 1 || pages[0].Date != tt.want {
				t.Fatalf("pages = %+v, want date %q", pages, tt.want)
			}
			if got := readFile(t, filepath.Join(src, "a.html")); got != "<time>"+tt.want+"</time>" {
				t.Errorf("page = %q", got)
			}
		})
	}
}

func TestRenderer_RenderSection_OutputDir(t *testing.T) {
	t.Parallel()

	r, _ := newTestRenderer(t, map[string]string{"post_template": "%content%"})
	src, out := t.TempDir(), filepath.Join(t.TempDir(), "public")
	writeFile(t, src, "a.md", "text")

	pages, err := r.RenderSection(context.Background(), Section{SourceDir: src, OutputDir: out, BaseURL: "/a", Template: "post_template"})
	if err != nil {
		t.Fatalf("RenderSection() error = %v", err)
	}
	if len(pages) != 1 || pages[0].OutputPath != filepath.Join(out, "a.html") {
		t.Fatalf("pages = %+v", pages)
	}
	if fileutil.FileExists(filepath.Join(src, "a.html")) {
		t.Error("page written into the source directory")
	}
}

func TestRenderer_RenderSection_OverwritesExistingPage(t *testing.T) {
	t.Parallel()

	r, _ := newTestRenderer(t, map[string]string{"post_template": "<p>%title%</p>"})
	src := t.TempDir()
	writeFile(t, src, "a.md", "---\ntitle: New\n---\n")
	writeFile(t, src, "a.html", "hand edited")

	if _, err := r.RenderSection(context.Background(), Section{SourceDir: src, Template: "post_template"}); err != nil {
		t.Fatalf("RenderSection() error = %v", err)
	}
	if got := readFile(t, filepath.Join(src, "a.html")); got != "<p>New</p>" {
		t.Errorf("page = %q, want regenerated content", got)
	}
}

func TestRenderer_RenderSection_MissingTemplate(t *testing.T) {
	t.Parallel()

	// Notes:
	// - the page template has no built-in default
	// - pages are still written (empty) and indexed
	r, rec := newTestRenderer(t, nil)
	src := t.TempDir()
	writeFile(t, src, "a.md", "# A")

	pages, err := r.RenderSection(context.Background(), Section{Name: "research", SourceDir: src, Template: "post_template"})
	if err != nil {
		t.Fatalf("RenderSection() error = %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("pages = %d, want 1", len(pages))
	}
	if got := readFile(t, filepath.Join(src, "a.html")); got != "" {
		t.Errorf("page = %q, want empty", got)
	}
	if !rec.Contains("warn", "post_template.html") {
		t.Errorf("expected a template hint, got %v", rec.Entries())
	}
}

func TestRenderer_RenderSection_MissingSourceDir(t *testing.T) {
	t.Parallel()

	r, _ := newTestRenderer(t, nil)
	src := filepath.Join(t.TempDir(), "blogs")

	pages, err := r.RenderSection(context.Background(), Section{SourceDir: src, Template: "post_template"})
	if err != nil {
		t.Fatalf("RenderSection() error = %v", err)
	}
	if len(pages) != 0 {
		t.Errorf("pages = %d, want 0", len(pages))
	}
	if !fileutil.DirExists(src) {
		t.Error("missing source directory was not created")
	}
}

func TestRenderer_RenderSection_Cancelled(t *testing.T) {
	t.Parallel()

	r, _ := newTestRenderer(t, map[string]string{"post_template": "%content%"})
	src := t.TempDir()
	writeFile(t, src, "a.md", "text")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := r.RenderSection(ctx, Section{SourceDir: src, Template: "post_template"}); err != context.Canceled {
		t.Errorf("RenderSection() error = %v, want context.Canceled", err)
	}
}

func TestRenderer_Describe(t *testing.T) {
	t.Parallel()

	r, _ := newTestRenderer(t, nil)

	tests := []struct {
		name string
		fm   FrontMatter
		body string
		want string
	}{
		{name: "explicit description", fm: FrontMatter{Description: "Given."}, body: "ignored", want: "Given."},
		{name: "markup stripped", body: "Some **bold**\n\ntext.", want: "Some bold text."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := r.Describe(tt.fm, tt.body); got != tt.want {
				t.Errorf("Describe() = %q, want %q", got, tt.want)
			}
		})
	}

	t.Run("long body truncated", func(t *testing.T) {
		t.Parallel()

		got := r.Describe(FrontMatter{}, strings.Repeat("lorem ipsum ", 50))
		if n := utf8.RuneCountInString(got); n > DefaultDescriptionLength {
			t.Errorf("Describe() = %d runes, want <= %d", n, DefaultDescriptionLength)
		}
	})
}

func TestRenderer_RenderBody_Highlight(t *testing.T) {
	t.Parallel()

	r, _ := newTestRenderer(t, nil)
	got, err := r.RenderBody(context.Background(), "a ==marked== word", "")
	if err != nil {
		t.Fatalf("RenderBody() error = %v", err)
	}
	if !strings.Contains(got, "<mark>marked</mark>") {
		t.Errorf("RenderBody() = %q, want <mark>", got)
	}
}
