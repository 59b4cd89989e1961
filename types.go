package contentpipe

// Attributes are the structured fields of a document's metadata block.
// Title, Summary and Date are returned verbatim as written in the source.
type Attributes struct {
	Title    string
	Summary  string
	Date     string
	Draft    bool
	Featured bool
}

// RenderResult is the outcome of a single pipeline run.
type RenderResult struct {
	Attributes Attributes
	RawBody    string // body text with the metadata block stripped
	HTML       string
}

// Document is a rendered page, keyed by its path. Owned by the DocumentCache
// once stored; treat cached documents as immutable.
type Document struct {
	Path       string
	Attributes Attributes
	HTML       string
}

// Size returns the document's serialized byte size, used for cache accounting.
func (d *Document) Size() int64 {
	n := len(d.Path) + len(d.HTML) +
		len(d.Attributes.Title) + len(d.Attributes.Summary) + len(d.Attributes.Date) +
		2 // draft + featured flags
	return int64(n)
}

// ResolveFunc resolves a relative link target to its final form.
// An error aborts the whole render: a partially-rewritten document could
// silently ship broken links.
type ResolveFunc func(href string) (string, error)

// Option configures a Renderer.
type Option func(*Renderer)

// rendererConfig holds internal configuration for Renderer.
type rendererConfig struct {
	resolve     ResolveFunc
	cacheBudget int64
}

// DefaultCacheBudget bounds the document cache to 12 MiB of rendered content.
const DefaultCacheBudget = 12 << 20

// WithLinkResolver sets the resolver applied to relative link targets.
func WithLinkResolver(fn ResolveFunc) Option {
	return func(r *Renderer) {
		r.cfg.resolve = fn
	}
}

// WithCacheBudget sets the document cache's byte budget.
// Panics if budget <= 0 (programmer error, similar to time.NewTicker).
func WithCacheBudget(budget int64) Option {
	if budget <= 0 {
		panic("contentpipe: WithCacheBudget budget must be positive")
	}
	return func(r *Renderer) {
		r.cfg.cacheBudget = budget
	}
}
