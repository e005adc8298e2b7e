package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/adrg/frontmatter"

	"github.com/alnah/go-sitegen/internal/yamlutil"
)

// ErrFrontMatter indicates a source file's metadata block does not parse.
var ErrFrontMatter = errors.New("malformed front matter")

// FrontMatter is the metadata block of a markdown source. Every field is
// optional.
type FrontMatter struct {
	Title       string   `yaml:"title" json:"title"`
	Name        string   `yaml:"name" json:"name"` // Alternative to title, used by project sources
	Date        string   `yaml:"date" json:"date"`
	Slug        string   `yaml:"slug" json:"slug"`
	Order       int      `yaml:"order" json:"order"` // Position among projects, ascending
	Description string   `yaml:"description" json:"description"`
	Image       string   `yaml:"image" json:"image"`
	Thumbnail   string   `yaml:"thumbnail" json:"thumbnail"`
	Repo        string   `yaml:"repo" json:"repo"`
	Link        string   `yaml:"link" json:"link"`
	Stack       []string `yaml:"stack" json:"stack"`
}

// YAML between "---" lines, or JSON between ";;;" lines.
var frontMatterFormats = []*frontmatter.Format{
	frontmatter.NewFormat("---", "---", yamlutil.UnmarshalOptional),
	frontmatter.NewFormat(";;;", ";;;", json.Unmarshal),
}

// ParseFrontMatter splits a source into its metadata and markdown body.
// A source without a metadata block has zero FrontMatter and is returned
// whole as the body. A leading byte order mark and CRLF line endings are
// accepted.
func ParseFrontMatter(source []byte) (FrontMatter, []byte, error) {
	source = bytes.TrimPrefix(source, []byte("\uFEFF"))
	source = bytes.ReplaceAll(source, []byte("\r\n"), []byte("\n"))

	var fm FrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &fm, frontMatterFormats...)
	if err != nil {
		return FrontMatter{}, nil, fmt.Errorf("%w: %v", ErrFrontMatter, err)
	}
	return fm, body, nil
}

// DisplayTitle returns the title, the name, or fallback, in that order.
func (fm FrontMatter) DisplayTitle(fallback string) string {
	switch {
	case fm.Title != "":
		return fm.Title
	case fm.Name != "":
		return fm.Name
	default:
		return fallback
	}
}

// Picture returns the thumbnail, or the image when no thumbnail is set.
func (fm FrontMatter) Picture() string {
	if fm.Thumbnail != "" {
		return fm.Thumbnail
	}
	return fm.Image
}
