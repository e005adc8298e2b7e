package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alnah/go-sitegen/internal/assets"
	"github.com/alnah/go-sitegen/internal/logging/logtest"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// newTestRenderer returns a renderer whose site templates live in a fresh
// directory, with built-in defaults behind them.
func newTestRenderer(t *testing.T, templates map[string]string) (*Renderer, *logtest.Recorder) {
	t.Helper()

	dir := t.TempDir()
	for name, content := range templates {
		writeFile(t, dir, name+".html", content)
	}
	resolver, err := assets.NewAssetResolver(dir)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	rec := &logtest.Recorder{}
	r := NewRenderer(resolver, rec)
	r.TemplatesDir = dir
	return r, rec
}
