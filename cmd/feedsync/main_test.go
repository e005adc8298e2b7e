package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-sitegen/internal/logging/logtest"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func siteConfig(feedURL string) string {
	return "feed:\n  url: " + feedURL + "\n  fallbackURL: \"\"\n  timeout: 2s\n"
}

func TestRun_InvalidConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "sitegen.yaml", "feed:\n  concurrency: 999\n")
	var stderr bytes.Buffer

	if code := run(context.Background(), dir, &stderr, &logtest.Recorder{}); code != ExitConfig {
		t.Errorf("run() = %d, want %d", code, ExitConfig)
	}
	if !strings.Contains(stderr.String(), "sitegen.yaml") {
		t.Errorf("stderr = %q, want the config path", stderr.String())
	}
}

func TestRun_FeedDownKeepsManifest(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	writeFile(t, dir, "sitegen.yaml", siteConfig(srv.URL))
	const existing = `[{"title":"A"},{"title":"B"},{"title":"C"}]`
	writeFile(t, dir, "blog/manifest.json", existing)
	rec := &logtest.Recorder{}

	if code := run(context.Background(), dir, &bytes.Buffer{}, rec); code != ExitSuccess {
		t.Errorf("run() = %d, want %d", code, ExitSuccess)
	}

	got, err := os.ReadFile(filepath.Join(dir, "blog", "manifest.json"))
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	if string(got) != existing {
		t.Errorf("manifest changed to %q", got)
	}
	if !rec.Contains("warn", "manifest unchanged") {
		t.Errorf("missing warning; log: %v", rec.Entries())
	}
}

func TestRun_WritesManifest(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<?xml version="1.0"?><rss version="2.0"><channel><title>t</title>
<item><title>Post</title><link>https://medium.com/p/1</link><pubDate>Mon, 01 Jan 2024 00:00:00 GMT</pubDate></item>
</channel></rss>`))
	}))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	writeFile(t, dir, "sitegen.yaml", siteConfig(srv.URL))

	if code := run(context.Background(), dir, &bytes.Buffer{}, &logtest.Recorder{}); code != ExitSuccess {
		t.Errorf("run() = %d, want %d", code, ExitSuccess)
	}
	got, err := os.ReadFile(filepath.Join(dir, "blog", "manifest.json"))
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	if !strings.Contains(string(got), `"link": "https://medium.com/p/1"`) {
		t.Errorf("manifest = %s", got)
	}
}
