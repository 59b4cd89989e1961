package pipeline

import (
	"bytes"
	"html"
	"sort"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"github.com/ldelmas/go-contentpipe/internal/codemeta"
)

// codeBlockRenderer replaces Goldmark's default fenced code block output with
// an annotated element: structured data attributes instead of the raw meta
// string, and one span per line carrying token spans, highlight/added/removed
// classes, and the computed visible line number.
type codeBlockRenderer struct{}

func newCodeBlockRenderer() renderer.NodeRenderer {
	return &codeBlockRenderer{}
}

// RegisterFuncs registers rendering for fenced and indented code blocks.
func (r *codeBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
	reg.Register(ast.KindCodeBlock, r.renderCodeBlock)
}

// renderCodeBlock handles indented code blocks: no info line, plain output.
func (r *codeBlockRenderer) renderCodeBlock(
	w util.BufWriter, source []byte, node ast.Node, entering bool,
) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	meta, _ := codemeta.Parse("")
	writeCodeBlock(w, "", meta, blockText(node, source))
	return ast.WalkSkipChildren, nil
}

// renderFencedCodeBlock parses the info line into language and metadata,
// then emits the annotated block. A malformed meta string fails the render;
// an unknown language only degrades to plain text.
func (r *codeBlockRenderer) renderFencedCodeBlock(
	w util.BufWriter, source []byte, node ast.Node, entering bool,
) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)

	lang, metaStr := splitInfo(n, source)
	meta, err := codemeta.Parse(metaStr)
	if err != nil {
		return ast.WalkStop, err
	}

	writeCodeBlock(w, codemeta.NormalizeLanguage(lang), meta, blockText(n, source))
	return ast.WalkSkipChildren, nil
}

// splitInfo separates the fence info line into language and meta string.
func splitInfo(n *ast.FencedCodeBlock, source []byte) (lang, meta string) {
	if n.Info == nil {
		return "", ""
	}
	info := n.Info.Segment.Value(source)
	if i := bytes.IndexAny(info, " \t"); i >= 0 {
		return string(info[:i]), strings.TrimSpace(string(info[i+1:]))
	}
	return string(info), ""
}

// blockText concatenates the code block's line segments.
func blockText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return buf.String()
}

// writeCodeBlock emits the annotated element for one code block.
func writeCodeBlock(w util.BufWriter, lang string, meta *codemeta.Meta, code string) {
	_, _ = w.WriteString(`<div class="code-block"`)
	if lang != "" {
		writeAttr(w, "data-language", lang)
	}
	writeAttr(w, "data-start", strconv.Itoa(meta.Start))
	if meta.Numbered {
		writeAttr(w, "data-numbered", "true")
	}
	for _, key := range sortedKeys(meta.Extra) {
		writeAttr(w, "data-"+key, meta.Extra[key])
	}
	_, _ = w.WriteString(">\n<pre><code>")

	textLines := splitLines(code)
	tokenLines, tokenized := tokenizeLines(lang, code)

	for i, line := range textLines {
		_, _ = w.WriteString(`<span class="` + lineClasses(meta, i) + `"`)
		writeAttr(w, "data-line", strconv.Itoa(i+meta.Start))
		_, _ = w.WriteString(">")
		if tokenized && i < len(tokenLines) {
			writeTokens(w, tokenLines[i])
		} else {
			_, _ = w.WriteString(html.EscapeString(line))
		}
		_, _ = w.WriteString("</span>\n")
	}

	_, _ = w.WriteString("</code></pre>\n</div>\n")
}

// lineClasses computes the class list for the line at index i.
func lineClasses(meta *codemeta.Meta, i int) string {
	classes := "line"
	if meta.Highlight.Has(i) {
		classes += " hl"
	}
	if meta.Added.Has(i) {
		classes += " add"
	}
	if meta.Removed.Has(i) {
		classes += " rm"
	}
	return classes
}

// tokenizeLines tokenizes the code for the given language, split per line.
// Returns ok=false when no lexer is registered for the language or
// tokenization fails; the caller falls back to plain text.
func tokenizeLines(lang, code string) ([][]chroma.Token, bool) {
	if lang == "" {
		return nil, false
	}
	lexer := lexers.Get(lang)
	if lexer == nil {
		return nil, false
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return nil, false
	}
	return chroma.SplitTokensIntoLines(iterator.Tokens()), true
}

// writeTokens emits one line's tokens as class-annotated spans.
// Trailing newlines stay out of the spans; the caller writes line breaks.
func writeTokens(w util.BufWriter, tokens []chroma.Token) {
	for _, token := range tokens {
		value := strings.TrimSuffix(token.Value, "\n")
		if value == "" {
			continue
		}
		cls := tokenClass(token.Type)
		if cls == "" {
			_, _ = w.WriteString(html.EscapeString(value))
			continue
		}
		_, _ = w.WriteString(`<span class="` + cls + `">`)
		_, _ = w.WriteString(html.EscapeString(value))
		_, _ = w.WriteString("</span>")
	}
}

// tokenClass resolves the CSS class for a token type, walking up the type
// hierarchy the same way chroma's HTML formatter does.
func tokenClass(tt chroma.TokenType) string {
	for tt != 0 {
		if cls, ok := chroma.StandardTypes[tt]; ok {
			return cls
		}
		tt = tt.Parent()
	}
	return ""
}

// splitLines splits code into lines without the trailing newline.
func splitLines(code string) []string {
	if code == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(code, "\n"), "\n")
}

// writeAttr writes one HTML attribute with an escaped value.
func writeAttr(w util.BufWriter, name, value string) {
	_, _ = w.WriteString(" " + name + `="` + html.EscapeString(value) + `"`)
}

// sortedKeys returns map keys in deterministic order.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
