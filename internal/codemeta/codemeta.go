// Package codemeta parses the metadata string attached to fenced code blocks.
//
// Two grammars are accepted:
//
//	[1-3,5]                  bracketed shorthand: the whole value is a
//	                         highlighted-line range expression
//	lines=[2-4] start=10     space-separated key=value tokens
//
// Range expressions address source lines by 0-based index; the starting line
// offset only affects the visible line number (index + start).
package codemeta

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Sentinel errors for metadata parsing.
var (
	ErrInvalidMeta  = errors.New("invalid code block metadata")
	ErrInvalidRange = errors.New("invalid line range expression")
)

// DefaultStart is the visible number of the first line when no offset is set.
const DefaultStart = 1

// LineSet is a set of source line indices.
type LineSet map[int]bool

// Has reports whether line index i is in the set.
func (s LineSet) Has(i int) bool { return s[i] }

// Meta is the structured form of a code block metadata string.
type Meta struct {
	Highlight LineSet           // highlighted line indices
	Added     LineSet           // added-line indices (diff rendering)
	Removed   LineSet           // removed-line indices (diff rendering)
	Start     int               // visible number of the first line
	Numbered  bool              // render line numbers
	Extra     map[string]string // unknown keys, preserved for downstream use
}

// Parse converts a metadata string into its structured form.
// An empty string yields defaults. Unknown keys are kept in Extra rather
// than dropped.
func Parse(meta string) (*Meta, error) {
	m := &Meta{Start: DefaultStart}

	meta = strings.TrimSpace(meta)
	if meta == "" {
		return m, nil
	}

	// Bracketed shorthand: the whole value is a highlight range.
	if strings.HasPrefix(meta, "[") && strings.HasSuffix(meta, "]") {
		set, err := ParseRange(meta[1 : len(meta)-1])
		if err != nil {
			return nil, err
		}
		m.Highlight = set
		return m, nil
	}

	for _, token := range strings.Fields(meta) {
		key, value, ok := strings.Cut(token, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: token %q is not key=value", ErrInvalidMeta, token)
		}

		var err error
		switch key {
		case "lines":
			m.Highlight, err = ParseRange(unbracket(value))
		case "add":
			m.Added, err = ParseRange(unbracket(value))
		case "remove":
			m.Removed, err = ParseRange(unbracket(value))
		case "start":
			m.Start, err = strconv.Atoi(value)
			if err != nil {
				err = fmt.Errorf("%w: start=%q is not an integer", ErrInvalidMeta, value)
			}
		case "numbered":
			m.Numbered, err = strconv.ParseBool(value)
			if err != nil {
				err = fmt.Errorf("%w: numbered=%q is not a boolean", ErrInvalidMeta, value)
			}
		default:
			if m.Extra == nil {
				m.Extra = make(map[string]string)
			}
			m.Extra[key] = value
		}
		if err != nil {
			return nil, err
		}
	}

	return m, nil
}

// ParseRange expands a range expression like "1-3,5,7-9" into the explicit
// set of line indices {1,2,3,5,7,8,9}.
func ParseRange(expr string) (LineSet, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, fmt.Errorf("%w: empty expression", ErrInvalidRange)
	}

	set := make(LineSet)
	for _, part := range strings.Split(expr, ",") {
		part = strings.TrimSpace(part)

		lo, hi, isRange := strings.Cut(part, "-")
		from, err := strconv.Atoi(lo)
		if err != nil || from < 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRange, part)
		}

		to := from
		if isRange {
			to, err = strconv.Atoi(hi)
			if err != nil || to < from {
				return nil, fmt.Errorf("%w: %q", ErrInvalidRange, part)
			}
		}

		for i := from; i <= to; i++ {
			set[i] = true
		}
	}
	return set, nil
}

// unbracket strips one pair of surrounding square brackets, if present.
// Range values may appear bare (lines=2-4) or bracketed (lines=[2-4]).
func unbracket(s string) string {
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		return s[1 : len(s)-1]
	}
	return s
}

// languageAliases maps short language codes to the canonical identifiers
// understood by the syntax highlighter.
var languageAliases = map[string]string{
	"js": "javascript",
	"ts": "typescript",
}

// NormalizeLanguage expands known short language aliases.
// Unrecognized identifiers pass through unchanged.
func NormalizeLanguage(lang string) string {
	if canonical, ok := languageAliases[lang]; ok {
		return canonical
	}
	return lang
}
