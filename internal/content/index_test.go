package content

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-sitegen/internal/manifest"
)

func TestRenderer_WriteIndex(t *testing.T) {
	t.Parallel()

	r, _ := newTestRenderer(t, nil)
	dir := t.TempDir()
	pages := []manifest.Page{
		{Title: "Old", Date: "2022-01-01", Slug: "old", MD: "/blogs/old.md", HTML: "/blogs/old.html"},
		{Title: "Undated", Slug: "undated"},
		{Title: "New <3", Date: "2024-06-01", Slug: "new", SourcePath: "/abs/new.md"},
	}

	res, err := r.WriteIndex(Section{Name: "blog", SourceDir: dir, BaseURL: "/blogs", Title: "Posts"}, pages)
	if err != nil {
		t.Fatalf("WriteIndex() error = %v", err)
	}
	if !res.ManifestChanged || !res.PageWritten {
		t.Errorf("WriteIndex() = %+v, want both written", res)
	}

	var got []manifest.Page
	if err := json.Unmarshal([]byte(readFile(t, filepath.Join(dir, IndexJSON))), &got); err != nil {
		t.Fatalf("index.json: %v", err)
	}
	var slugs []string
	for _, p := range got {
		slugs = append(slugs, p.Slug)
	}
	if strings.Join(slugs, ",") != "new,old,undated" {
		t.Errorf("index.json order = %v, want new,old,undated", slugs)
	}
	if pages[0].Slug != "old" {
		t.Error("WriteIndex() reordered the caller's slice")
	}

	page := readFile(t, filepath.Join(dir, IndexHTML))
	for _, want := range []string{
		"<title>Posts</title>",
		`<ul class="posts-list">`,
		`<li><a href="./new.html">New &lt;3</a> <span class="date">2024-06-01</span></li>`,
		`<a href="./undated.html">Undated</a>`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("index.html missing %q:\n%s", want, page)
		}
	}
	if strings.Index(page, "./new.html") > strings.Index(page, "./old.html") {
		t.Error("index.html should list newest first")
	}
}

func TestRenderer_WriteIndex_KeepsExistingPage(t *testing.T) {
	t.Parallel()

	r, _ := newTestRenderer(t, nil)
	dir := t.TempDir()
	themed := writeFile(t, dir, IndexHTML, "<html>themed</html>")

	res, err := r.WriteIndex(Section{SourceDir: dir}, []manifest.Page{{Title: "A", Slug: "a"}})
	if err != nil {
		t.Fatalf("WriteIndex() error = %v", err)
	}
	if res.PageWritten {
		t.Error("PageWritten = true, want existing index kept")
	}
	if got := readFile(t, themed); got != "<html>themed</html>" {
		t.Errorf("index.html = %q, want untouched", got)
	}
}

func TestRenderer_WriteIndex_CustomListItem(t *testing.T) {
	t.Parallel()

	r, _ := newTestRenderer(t, map[string]string{"list_item_template": `<li class="x">%title%|%href%</li>`})
	dir := t.TempDir()

	if _, err := r.WriteIndex(Section{SourceDir: dir}, []manifest.Page{{Title: "A", Slug: "a"}}); err != nil {
		t.Fatalf("WriteIndex() error = %v", err)
	}
	page := readFile(t, filepath.Join(dir, IndexHTML))
	if !strings.Contains(page, `<li class="x">A|./a.html</li>`) {
		t.Errorf("index.html ignores the site list item template:\n%s", page)
	}
	if !strings.Contains(page, "<title>index</title>") {
		t.Errorf("index.html should default its title:\n%s", page)
	}
}

func TestRenderer_WriteIndex_Unchanged(t *testing.T) {
	t.Parallel()

	r, _ := newTestRenderer(t, nil)
	dir := t.TempDir()
	pages := []manifest.Page{{Title: "A", Slug: "a", Date: "2024-01-01"}}

	if _, err := r.WriteIndex(Section{SourceDir: dir}, pages); err != nil {
		t.Fatal(err)
	}
	res, err := r.WriteIndex(Section{SourceDir: dir}, pages)
	if err != nil {
		t.Fatal(err)
	}
	if res.ManifestChanged || res.PageWritten {
		t.Errorf("second WriteIndex() = %+v, want no writes", res)
	}
}
