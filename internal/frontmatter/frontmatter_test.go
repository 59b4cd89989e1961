package frontmatter

import (
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestParse - valid documents
// ---------------------------------------------------------------------------

func TestParse(t *testing.T) {
	t.Parallel()

	raw := `---
title: Getting Started
summary: A first look at the platform.
date: 2025-03-14
---
# Hello

Body text.
`

	attrs, body, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if got, want := attrs.Title, "Getting Started"; got != want {
		t.Errorf("Title = %q, want %q", got, want)
	}
	if got, want := attrs.Summary, "A first look at the platform."; got != want {
		t.Errorf("Summary = %q, want %q", got, want)
	}
	if got, want := attrs.Date, "2025-03-14"; got != want {
		t.Errorf("Date = %q, want %q", got, want)
	}
	if attrs.Draft || attrs.Featured {
		t.Errorf("Draft/Featured = %v/%v, want false/false", attrs.Draft, attrs.Featured)
	}
	if !strings.HasPrefix(body, "# Hello") {
		t.Errorf("body = %q, want it to start with the heading", body)
	}
	if strings.Contains(body, "---") {
		t.Errorf("body still contains delimiter: %q", body)
	}
}

func TestParseOptionalFlags(t *testing.T) {
	t.Parallel()

	raw := "---\ntitle: T\nsummary: S\ndate: 2025-01-01\ndraft: true\nfeatured: true\n---\nbody"

	attrs, _, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !attrs.Draft {
		t.Error("Draft = false, want true")
	}
	if !attrs.Featured {
		t.Error("Featured = false, want true")
	}
}

func TestParseCRLF(t *testing.T) {
	t.Parallel()

	raw := "---\r\ntitle: T\r\nsummary: S\r\ndate: 2025-01-01\r\n---\r\nbody"

	attrs, body, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if attrs.Title != "T" {
		t.Errorf("Title = %q, want %q", attrs.Title, "T")
	}
	if !strings.Contains(body, "body") {
		t.Errorf("body = %q, want it to contain %q", body, "body")
	}
}

func TestParseDelimiterAtEOF(t *testing.T) {
	t.Parallel()

	raw := "---\ntitle: T\nsummary: S\ndate: 2025-01-01\n---"

	attrs, body, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if attrs.Title != "T" {
		t.Errorf("Title = %q, want %q", attrs.Title, "T")
	}
	if body != "" {
		t.Errorf("body = %q, want empty", body)
	}
}

// ---------------------------------------------------------------------------
// TestParse - malformed documents
// ---------------------------------------------------------------------------

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{
			name: "no metadata block at all",
			raw:  "# Just a heading\n\nNo metadata here.",
		},
		{
			name: "missing title",
			raw:  "---\nsummary: S\ndate: 2025-01-01\n---\nbody",
		},
		{
			name: "missing summary",
			raw:  "---\ntitle: T\ndate: 2025-01-01\n---\nbody",
		},
		{
			name: "missing date",
			raw:  "---\ntitle: T\nsummary: S\n---\nbody",
		},
		{
			name: "unparseable yaml",
			raw:  "---\ntitle: [unclosed\n---\nbody",
		},
		{
			name: "empty block",
			raw:  "---\n---\nbody",
		},
		{
			name: "unclosed block",
			raw:  "---\ntitle: T\nsummary: S\ndate: 2025-01-01\nbody without closing delimiter",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := Parse(tt.raw)
			if !errors.Is(err, ErrMalformedMetadata) {
				t.Errorf("Parse() error = %v, want ErrMalformedMetadata", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Test split behavior
// ---------------------------------------------------------------------------

func TestSplitNoBlock(t *testing.T) {
	t.Parallel()

	meta, body, found := split("plain body text")
	if found {
		t.Error("found = true, want false")
	}
	if meta != "" {
		t.Errorf("meta = %q, want empty", meta)
	}
	if body != "plain body text" {
		t.Errorf("body = %q, want original input", body)
	}
}

func TestSplitIgnoresLaterDelimiters(t *testing.T) {
	t.Parallel()

	// A thematic break in the body is not a metadata delimiter.
	raw := "no metadata\n\n---\n\nmore text"
	_, body, found := split(raw)
	if found {
		t.Error("found = true, want false")
	}
	if body != raw {
		t.Errorf("body = %q, want original input", body)
	}
}

func TestSplitStripsBOM(t *testing.T) {
	t.Parallel()

	raw := "\uFEFF---\ntitle: T\nsummary: S\ndate: 2025-01-01\n---\nbody"
	attrs, _, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if attrs.Title != "T" {
		t.Errorf("Title = %q, want %q", attrs.Title, "T")
	}
}
