package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	contentpipe "github.com/ldelmas/go-contentpipe"
	"github.com/ldelmas/go-contentpipe/internal/config"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput       = errors.New("no source directory specified")
	ErrReadDocument  = errors.New("failed to read document")
	ErrWriteOutput   = errors.New("failed to write output")
	ErrRenderFailed  = errors.New("one or more documents failed to render")
	ErrInvalidPrefix = errors.New("invalid base URL")
)

// pageTemplate wraps a rendered fragment in a complete HTML5 document.
const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s
</body>
</html>
`

// settings is the merged view of config file and flags; flags win.
type settings struct {
	src         string
	out         string
	baseURL     string
	siteTitle   string
	drafts      bool
	fullPage    bool
	cacheBudget int64
}

// run renders every markdown document under the source directory.
func run(flags *cliFlags, args []string) error {
	st, err := mergeSettings(flags, args)
	if err != nil {
		return err
	}

	opts, err := rendererOptions(st)
	if err != nil {
		return err
	}
	renderer := contentpipe.New(opts...)

	paths, err := discoverDocuments(st.src)
	if err != nil {
		return err
	}
	if flags.verbose {
		fmt.Fprintf(os.Stderr, "Found %d documents under %s\n", len(paths), st.src)
	}

	ctx := context.Background()
	failures := 0
	for _, rel := range paths {
		if err := renderOne(ctx, renderer, st, rel, flags.verbose); err != nil {
			fmt.Fprintln(os.Stderr, err)
			failures++
		}
	}

	if failures > 0 {
		return fmt.Errorf("%w: %d of %d", ErrRenderFailed, failures, len(paths))
	}
	return nil
}

// mergeSettings combines the config file (if any) with flags; flags win.
func mergeSettings(flags *cliFlags, args []string) (*settings, error) {
	st := &settings{}

	if flags.config != "" {
		cfg, err := config.LoadConfig(flags.config)
		if err != nil {
			return nil, err
		}
		st.src = cfg.Input.DefaultDir
		st.out = cfg.Output.DefaultDir
		st.baseURL = cfg.Site.BaseURL
		st.siteTitle = cfg.Site.Title
		st.drafts = cfg.Input.IncludeDrafts
		st.fullPage = cfg.Output.FullPage
		st.cacheBudget = cfg.Cache.BudgetBytes
	}

	if flags.src != "" {
		st.src = flags.src
	}
	// A bare positional argument also names the source directory.
	if st.src == "" && len(args) > 0 {
		st.src = args[0]
	}
	if flags.out != "" {
		st.out = flags.out
	}
	if flags.baseURL != "" {
		st.baseURL = flags.baseURL
	}
	if flags.siteTitle != "" {
		st.siteTitle = flags.siteTitle
	}
	if flags.drafts {
		st.drafts = true
	}
	if flags.fullPage {
		st.fullPage = true
	}
	if flags.cacheBudget > 0 {
		st.cacheBudget = flags.cacheBudget
	}

	if st.src == "" {
		return nil, ErrNoInput
	}
	if st.out == "" {
		st.out = st.src
	}
	return st, nil
}

// rendererOptions builds library options from the merged settings.
func rendererOptions(st *settings) ([]contentpipe.Option, error) {
	var opts []contentpipe.Option

	if st.baseURL != "" {
		resolve, err := baseURLResolver(st.baseURL)
		if err != nil {
			return nil, err
		}
		opts = append(opts, contentpipe.WithLinkResolver(resolve))
	}
	if st.cacheBudget > 0 {
		opts = append(opts, contentpipe.WithCacheBudget(st.cacheBudget))
	}
	return opts, nil
}

// baseURLResolver resolves relative link targets against a base URL,
// dropping the .md extension so links point at rendered pages.
func baseURLResolver(base string) (contentpipe.ResolveFunc, error) {
	parsed, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrefix, err)
	}

	return func(href string) (string, error) {
		target, hrefErr := url.Parse(strings.TrimSuffix(href, ".md"))
		if hrefErr != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidPrefix, hrefErr)
		}
		resolved := parsed.ResolveReference(target)
		return resolved.String(), nil
	}, nil
}

// discoverDocuments finds markdown files under root, as root-relative paths.
func discoverDocuments(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return relErr
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadDocument, err)
	}
	return paths, nil
}

// renderOne renders a single document and writes its HTML output.
func renderOne(ctx context.Context, renderer *contentpipe.Renderer, st *settings, rel string, verbose bool) error {
	raw, err := os.ReadFile(filepath.Join(st.src, filepath.FromSlash(rel))) // #nosec G304 -- path discovered under user-provided root
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrReadDocument, rel, err)
	}

	doc, err := renderer.Load(ctx, rel, string(raw))
	if err != nil {
		return err
	}

	if doc.Attributes.Draft && !st.drafts {
		if verbose {
			fmt.Fprintf(os.Stderr, "Skipping draft %s\n", rel)
		}
		return nil
	}

	content := doc.HTML
	if st.fullPage {
		content = fmt.Sprintf(pageTemplate, pageTitle(doc, st.siteTitle), doc.HTML)
	}

	outPath := filepath.Join(st.out, filepath.FromSlash(outputPath(rel)))
	if err := os.MkdirAll(filepath.Dir(outPath), 0o750); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteOutput, outPath, err)
	}
	if err := os.WriteFile(outPath, []byte(content), 0o600); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteOutput, outPath, err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Rendered %s -> %s\n", rel, outPath)
	}
	return nil
}

// outputPath swaps the markdown extension for .html.
func outputPath(rel string) string {
	return strings.TrimSuffix(rel, path.Ext(rel)) + ".html"
}

// pageTitle combines the document and site titles for full-page output.
func pageTitle(doc *contentpipe.Document, siteTitle string) string {
	if siteTitle == "" {
		return doc.Attributes.Title
	}
	return doc.Attributes.Title + " | " + siteTitle
}

// printUsage writes CLI usage to w.
func printUsage(w io.Writer) {
	fmt.Fprint(w, `contentpipe - render markdown documents to HTML

Usage:
  contentpipe [flags] [source-dir]

Flags:
  -c, --config string       config file name or path
  -s, --src string          source directory of markdown documents
  -o, --out string          output directory (default: source directory)
      --base-url string     prefix for resolving relative links
      --site-title string   site title for full-page output
      --drafts              include documents flagged as drafts
      --full-page           wrap fragments in a complete HTML5 page
      --cache-budget int    document cache byte budget (0 = default)
  -v, --verbose             report progress to stderr
      --version             print version and exit
`)
}
