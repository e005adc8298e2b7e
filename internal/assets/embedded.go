package assets

import (
	"embed"
	"fmt"
)

//go:embed templates/*.html scripts/*.js
var builtin embed.FS

// EmbeddedLoader serves the built-in templates and scripts.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadTemplate returns templates/<name>.html.
func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	return readBuiltin("templates/", name, ".html", ErrTemplateNotFound)
}

// LoadScript returns scripts/<name>.js.
func (e *EmbeddedLoader) LoadScript(name string) (string, error) {
	return readBuiltin("scripts/", name, ".js", ErrScriptNotFound)
}

func readBuiltin(dir, name, ext string, notFound error) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	data, err := builtin.ReadFile(dir + name + ext)
	if err != nil {
		return "", fmt.Errorf("%w: %q", notFound, name)
	}
	return string(data), nil
}

var _ AssetLoader = (*EmbeddedLoader)(nil)
