// Package pipeline implements the Markdown-to-HTML document pipeline.
//
// A render runs the stages in a fixed order:
//   - parse the body text into a Markdown AST via Goldmark
//   - rewrite relative link targets through a configured resolver
//   - render to HTML, annotating fenced code blocks with per-line
//     syntax-highlighting metadata via chroma
//
// Metadata block handling lives in internal/frontmatter; the root package
// composes both and owns caching. Every stage here is pure: the same source
// always renders to the same HTML.
package pipeline
