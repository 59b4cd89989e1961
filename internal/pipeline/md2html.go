package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// ErrHTMLConversion indicates HTML rendering failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// Renderer converts body text to HTML through the staged pipeline.
// Safe for concurrent use: a render mutates only its own parse tree.
type Renderer struct {
	md      goldmark.Markdown
	resolve Resolver
}

// New creates a Renderer. The resolver may be nil, in which case relative
// link targets pass through unchanged.
func New(resolve Resolver) *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(), // Generate IDs for headings
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(), // Self-closing tags
			// Raw HTML embedded in source documents passes through verbatim.
			// Document sources are trusted-author input; sanitizing untrusted
			// content belongs to the surrounding application.
			html.WithUnsafe(),
			renderer.WithNodeRenderers(
				util.Prioritized(newCodeBlockRenderer(), 200),
			),
		),
	)
	return &Renderer{md: md, resolve: resolve}
}

// Render parses the body text, rewrites links, and renders HTML.
// Stages run strictly in that order. The context is checked between stages;
// Goldmark itself doesn't support cancellation.
func (r *Renderer) Render(ctx context.Context, source []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	doc := r.md.Parser().Parse(text.NewReader(source))

	if err := RewriteLinks(doc, r.resolve); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := r.md.Renderer().Render(&buf, source, doc); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	return buf.String(), nil
}
