package content

import (
	"fmt"
	"os"

	"github.com/alnah/go-sitegen/internal/fileutil"
	"github.com/alnah/go-sitegen/internal/pipeline"
)

// Markers delimit the replaceable region of a host page.
type Markers struct {
	Start string
	End   string
}

// InjectFile replaces the region between m's markers in the file at path
// with block. The file is rewritten only when its content changes, so an
// identical run leaves it untouched.
//
// A missing file returns an error matching os.ErrNotExist. Missing or
// misordered markers return pipeline.ErrMarkersNotFound and leave the file
// as it was.
func InjectFile(path string, m Markers, block string) (changed bool, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	doc, err := os.ReadFile(path) // #nosec G304 -- host page from config
	if err != nil {
		return false, err
	}

	out, ok := pipeline.InjectBetweenMarkers(string(doc), m.Start, m.End, block)
	if !ok {
		return false, fmt.Errorf("%w: %s", pipeline.ErrMarkersNotFound, path)
	}
	return fileutil.WriteIfChanged(path, []byte(out), info.Mode().Perm())
}
