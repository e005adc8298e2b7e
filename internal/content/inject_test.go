package content

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alnah/go-sitegen/internal/pipeline"
)

var testMarkers = Markers{Start: "<!-- MARKER_START -->", End: "<!-- MARKER_END -->"}

func TestInjectFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	host := writeFile(t, dir, "projects.html", "<main>\n<!-- MARKER_START -->\nold\n<!-- MARKER_END -->\n</main>\n")

	changed, err := InjectFile(host, testMarkers, "<article>A</article>")
	if err != nil {
		t.Fatalf("InjectFile() error = %v", err)
	}
	if !changed {
		t.Error("first InjectFile() should change the file")
	}

	want := "<main>\n<!-- MARKER_START -->\n<article>A</article>\n<!-- MARKER_END -->\n</main>\n"
	if got := readFile(t, host); got != want {
		t.Errorf("host = %q, want %q", got, want)
	}
}

func TestInjectFile_Idempotent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	host := writeFile(t, dir, "projects.html", "a<!-- MARKER_START --><!-- MARKER_END -->b")

	if _, err := InjectFile(host, testMarkers, "block"); err != nil {
		t.Fatal(err)
	}
	first := readFile(t, host)

	past := time.Now().Add(-time.Hour).Truncate(time.Second)
	if err := os.Chtimes(host, past, past); err != nil {
		t.Fatal(err)
	}

	changed, err := InjectFile(host, testMarkers, "block")
	if err != nil {
		t.Fatal(err)
	}
	if changed {
		t.Error("second InjectFile() reported a change")
	}
	if got := readFile(t, host); got != first {
		t.Errorf("second run changed bytes:\n%q\n%q", first, got)
	}
	info, err := os.Stat(host)
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(past) {
		t.Error("second run touched the file")
	}
}

func TestInjectFile_MissingMarkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{name: "no markers", doc: "<main></main>"},
		{name: "only start", doc: "<!-- MARKER_START -->"},
		{name: "end before start", doc: "<!-- MARKER_END --> x <!-- MARKER_START -->"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			host := writeFile(t, t.TempDir(), "p.html", tt.doc)

			changed, err := InjectFile(host, testMarkers, "block")
			if !errors.Is(err, pipeline.ErrMarkersNotFound) {
				t.Errorf("InjectFile() error = %v, want ErrMarkersNotFound", err)
			}
			if changed {
				t.Error("changed = true, want false")
			}
			if got := readFile(t, host); got != tt.doc {
				t.Errorf("host = %q, want untouched", got)
			}
		})
	}
}

func TestInjectFile_MissingHost(t *testing.T) {
	t.Parallel()

	_, err := InjectFile(filepath.Join(t.TempDir(), "none.html"), testMarkers, "x")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("InjectFile() error = %v, want os.ErrNotExist", err)
	}
}
