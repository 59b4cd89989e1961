// Package frontmatter splits the leading metadata block from raw document text.
//
// A metadata block is a YAML mapping delimited by "---" lines at the very top
// of a document. The attribute values are returned verbatim as written in the
// source; no date normalization or trimming beyond YAML scalar parsing.
package frontmatter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ldelmas/go-contentpipe/internal/yamlutil"
)

// ErrMalformedMetadata indicates a metadata block that is present but
// unparseable, or that is missing a required attribute.
var ErrMalformedMetadata = errors.New("malformed metadata block")

// delimiter marks the start and end of a metadata block.
const delimiter = "---"

// Attributes are the structured fields declared in a metadata block.
// Title, Summary and Date are required; Draft and Featured default to false.
type Attributes struct {
	Title    string `yaml:"title"`
	Summary  string `yaml:"summary"`
	Date     string `yaml:"date"`
	Draft    bool   `yaml:"draft"`
	Featured bool   `yaml:"featured"`
}

// Parse splits raw document text into attributes and body.
// Returns ErrMalformedMetadata if the block cannot be parsed or a required
// attribute is absent. Documents without any metadata block fail the
// required-attribute check, since listing code downstream assumes presence.
func Parse(raw string) (*Attributes, string, error) {
	meta, body, found := split(raw)

	var attrs Attributes
	if found {
		if strings.TrimSpace(meta) == "" {
			return nil, "", fmt.Errorf("%w: empty block", ErrMalformedMetadata)
		}
		if err := yamlutil.Unmarshal([]byte(meta), &attrs); err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrMalformedMetadata, err)
		}
	}

	if err := validateRequired(&attrs); err != nil {
		return nil, "", err
	}

	return &attrs, body, nil
}

// split separates the metadata block from the body.
// Returns found=false when the document does not start with a delimiter line,
// in which case body is the whole input.
func split(raw string) (meta, body string, found bool) {
	content := strings.TrimPrefix(raw, "\uFEFF")

	if !strings.HasPrefix(content, delimiter+"\n") && !strings.HasPrefix(content, delimiter+"\r\n") {
		return "", content, false
	}

	rest := content[strings.Index(content, "\n")+1:]

	// Closing delimiter: a "---" line, or "---" at end of input.
	for offset := 0; ; {
		idx := strings.Index(rest[offset:], delimiter)
		if idx < 0 {
			// No closing delimiter: the block never ends. Treat everything
			// as metadata and let YAML parsing surface the problem.
			return rest, "", true
		}
		idx += offset
		lineStart := idx == 0 || rest[idx-1] == '\n'
		lineEnd := idx+len(delimiter) == len(rest)
		var bodyStart int
		if !lineEnd {
			switch {
			case strings.HasPrefix(rest[idx+len(delimiter):], "\n"):
				lineEnd = true
				bodyStart = idx + len(delimiter) + 1
			case strings.HasPrefix(rest[idx+len(delimiter):], "\r\n"):
				lineEnd = true
				bodyStart = idx + len(delimiter) + 2
			}
		} else {
			bodyStart = len(rest)
		}
		if lineStart && lineEnd {
			return rest[:idx], rest[bodyStart:], true
		}
		offset = idx + len(delimiter)
	}
}

// validateRequired rejects attributes missing title, summary, or date.
func validateRequired(attrs *Attributes) error {
	for _, req := range []struct {
		name  string
		value string
	}{
		{"title", attrs.Title},
		{"summary", attrs.Summary},
		{"date", attrs.Date},
	} {
		if strings.TrimSpace(req.value) == "" {
			return fmt.Errorf("%w: missing required attribute %q", ErrMalformedMetadata, req.name)
		}
	}
	return nil
}
