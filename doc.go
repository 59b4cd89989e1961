// Package contentpipe is the content-processing core of a content-driven web
// application: a Markdown document pipeline with a byte-bounded LRU cache, a
// rich-content editor bridge, and image attachment reconciliation.
//
// # Quick Start
//
// Create a renderer and load documents through the cache:
//
//	r := contentpipe.New(
//	    contentpipe.WithLinkResolver(func(href string) (string, error) {
//	        return "/docs/" + strings.TrimSuffix(href, ".md"), nil
//	    }),
//	)
//
//	doc, err := r.Load(ctx, "guides/intro", rawText)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(doc.Attributes.Title)
//	io.WriteString(w, doc.HTML)
//
// # Rendering Pipeline
//
// A render runs these stages in order:
//
//  1. Split the leading metadata block (title, summary, date, flags)
//  2. Parse the body into a Markdown AST via Goldmark
//  3. Rewrite relative link targets through the configured resolver
//  4. Render to HTML, annotating code blocks with per-line highlighting
//     metadata via chroma
//
// Rendering is pure and side-effect free; Load adds read-through caching on
// top, bounded by total serialized byte size with LRU eviction.
//
// # Code Block Metadata
//
// Fenced code blocks accept a metadata string after the language tag:
//
//	```go [1-3,5]
//	```go lines=[2-4] start=10 numbered=true
//	```js add=[1] remove=[2]
//
// Range expressions address source lines by 0-based index; the start offset
// only shifts the visible line numbers. Unknown keys are preserved as data
// attributes. An unknown language degrades to plain text instead of failing
// the render.
//
// # Rich-Content Editor Bridge
//
// Stored editor content round-trips through a typed node tree:
//
//	tree, err := contentpipe.ParseStoredContent(stored)
//	html, err := contentpipe.TreeToHTML(tree)
//	refs := contentpipe.ExtractImages(tree)
//
// Legacy plain-text records load as a single-paragraph tree.
//
// # Image Attachment Reconciliation
//
// At save time, diff the submitted attachments against the persisted ids:
//
//	if err := contentpipe.ValidateImageSubmissions(submitted); err != nil { ... }
//	result, err := contentpipe.ReconcileImages(ctx, submitted, persistedIDs)
//	// result.NewImages, result.Updates, result.DeletedIDs
//
// Persisted images absent from the submission are deleted; replacing an
// image's binary content mints a fresh blob identity.
package contentpipe
