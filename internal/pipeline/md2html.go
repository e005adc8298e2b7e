package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// HTMLConverter converts a markdown body to an HTML fragment.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// ConverterOption tunes a GoldmarkConverter.
type ConverterOption func(*converterConfig)

type converterConfig struct {
	rawHTML bool
}

// WithRawHTML passes HTML blocks and inline tags in sources through to
// the page. Only use it for sources the site owner writes.
func WithRawHTML() ConverterOption {
	return func(c *converterConfig) {
		c.rawHTML = true
	}
}

// GoldmarkConverter renders page bodies with goldmark: GFM, footnotes,
// heading anchors and chroma highlighting. Code colors come from CSS
// classes so the site stylesheet controls the theme.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a converter. Raw HTML in sources is
// dropped unless WithRawHTML is given.
func NewGoldmarkConverter(opts ...ConverterOption) *GoldmarkConverter {
	var cfg converterConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	rendererOpts := []renderer.Option{html.WithXHTML()}
	if cfg.rawHTML {
		rendererOpts = append(rendererOpts, html.WithUnsafe())
	}

	return &GoldmarkConverter{md: goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
			),
		),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(rendererOpts...),
	)}
}

// ToHTML renders content for the %content% placeholder of a page
// template. Page bodies are small, so conversion runs inline and ctx is
// only checked before and after it.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := c.md.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var _ HTMLConverter = (*GoldmarkConverter)(nil)
