package contentpipe

import (
	"context"
	"fmt"

	"github.com/ldelmas/go-contentpipe/internal/frontmatter"
	"github.com/ldelmas/go-contentpipe/internal/pipeline"
)

// Renderer orchestrates the document rendering pipeline: metadata block
// splitting, Markdown parsing, link rewriting, code block annotation, and
// HTML rendering. Create with New; safe for concurrent use.
type Renderer struct {
	cfg   rendererConfig
	pipe  *pipeline.Renderer
	cache *DocumentCache
}

// New creates a Renderer with default configuration.
// Use options to customize behavior (e.g., WithLinkResolver, WithCacheBudget).
func New(opts ...Option) *Renderer {
	r := &Renderer{
		cfg: rendererConfig{cacheBudget: DefaultCacheBudget},
	}

	for _, opt := range opts {
		opt(r)
	}

	r.pipe = pipeline.New(pipeline.Resolver(r.cfg.resolve))
	r.cache = NewDocumentCache(r.cfg.cacheBudget)

	return r
}

// Render runs the full pipeline over raw source text.
// Pure: same input, same output, no shared state touched. The cache is the
// caller's concern; use Load for the cached path.
func (r *Renderer) Render(ctx context.Context, path, raw string) (*RenderResult, error) {
	if raw == "" {
		return nil, ErrEmptySource
	}

	attrs, body, err := frontmatter.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", path, err)
	}

	html, err := r.pipe.Render(ctx, []byte(body))
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", path, err)
	}

	return &RenderResult{
		Attributes: toAttributes(attrs),
		RawBody:    body,
		HTML:       html,
	}, nil
}

// Load returns the document for path, rendering and caching on a miss.
// Failed renders are not cached. Concurrent misses on the same path may both
// render; both writes are safe (see DocumentCache).
func (r *Renderer) Load(ctx context.Context, path, raw string) (*Document, error) {
	if doc, ok := r.cache.Get(path); ok {
		return doc, nil
	}

	res, err := r.Render(ctx, path, raw)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Path:       path,
		Attributes: res.Attributes,
		HTML:       res.HTML,
	}
	r.cache.Put(path, doc)
	return doc, nil
}

// Cache exposes the renderer's document cache.
func (r *Renderer) Cache() *DocumentCache {
	return r.cache
}

// toAttributes converts the internal frontmatter type to the public one.
func toAttributes(a *frontmatter.Attributes) Attributes {
	return Attributes{
		Title:    a.Title,
		Summary:  a.Summary,
		Date:     a.Date,
		Draft:    a.Draft,
		Featured: a.Featured,
	}
}
