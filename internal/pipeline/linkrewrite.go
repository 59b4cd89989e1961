package pipeline

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark/ast"
)

// Resolver maps a relative link target to its resolved form.
// A resolver error aborts the whole render: a partially-rewritten document
// could silently ship broken links.
type Resolver func(string) (string, error)

// RewriteLinks walks the parsed tree and replaces every relative link
// destination with its resolved form. A nil resolver leaves the tree
// untouched. Rewrites are independent per node, so the walk order only needs
// to be deterministic; the transform is idempotent as long as the resolver
// returns non-relative targets.
func RewriteLinks(doc ast.Node, resolve Resolver) error {
	if resolve == nil {
		return nil
	}

	return ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		link, ok := n.(*ast.Link)
		if !ok {
			return ast.WalkContinue, nil
		}

		dest := string(link.Destination)
		if !isRelativeRef(dest) {
			return ast.WalkContinue, nil
		}

		resolved, err := resolve(dest)
		if err != nil {
			return ast.WalkStop, fmt.Errorf("resolving link %q: %w", dest, err)
		}
		link.Destination = []byte(resolved)
		return ast.WalkContinue, nil
	})
}

// isRelativeRef returns true if the target should be rewritten.
// Absolute URLs, protocol-relative URLs, fragments, mailto and data targets
// are left untouched.
func isRelativeRef(ref string) bool {
	if ref == "" {
		return false
	}

	if strings.HasPrefix(ref, "http://") ||
		strings.HasPrefix(ref, "https://") ||
		strings.HasPrefix(ref, "//") {
		return false
	}

	if strings.HasPrefix(ref, "#") ||
		strings.HasPrefix(ref, "mailto:") ||
		strings.HasPrefix(ref, "data:") {
		return false
	}

	return true
}
