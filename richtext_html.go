package contentpipe

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// TreeToHTML renders a rich-content tree to an HTML fragment using a fixed
// node-type-to-markup mapping. A node or mark outside the mapping fails with
// ErrUnsupportedNode and no partial HTML is returned.
func TreeToHTML(root *Node) (string, error) {
	if root == nil || root.Type != NodeDoc {
		return "", fmt.Errorf("%w: root must be %q", ErrInvalidDocumentStructure, NodeDoc)
	}

	container := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	for _, child := range root.Content {
		rendered, err := buildNode(child)
		if err != nil {
			return "", err
		}
		container.AppendChild(rendered)
	}

	// Render children only, so no <body> wrapper ends up in the fragment.
	var buf strings.Builder
	for c := container.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", fmt.Errorf("rendering rich-content tree: %w", err)
		}
	}
	return buf.String(), nil
}

// buildNode converts one rich-content node to a DOM node.
func buildNode(n *Node) (*html.Node, error) {
	switch n.Type {
	case NodeParagraph:
		return buildParent(atom.P, "p", n.Content)

	case NodeHeading:
		level := 1
		if n.Attrs != nil && n.Attrs.Level >= 1 && n.Attrs.Level <= 6 {
			level = n.Attrs.Level
		}
		tag := fmt.Sprintf("h%d", level)
		return buildParent(atom.Lookup([]byte(tag)), tag, n.Content)

	case NodeText:
		return buildText(n)

	case NodeImage:
		return buildImage(n), nil

	case NodeHardBreak:
		return &html.Node{Type: html.ElementNode, DataAtom: atom.Br, Data: "br"}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedNode, n.Type)
	}
}

// buildParent creates an element node and renders its children into it.
func buildParent(a atom.Atom, tag string, children []*Node) (*html.Node, error) {
	elem := &html.Node{Type: html.ElementNode, DataAtom: a, Data: tag}
	for _, child := range children {
		rendered, err := buildNode(child)
		if err != nil {
			return nil, err
		}
		elem.AppendChild(rendered)
	}
	return elem, nil
}

// buildText creates a text node wrapped in its mark elements. The first mark
// is the outermost wrapper.
func buildText(n *Node) (*html.Node, error) {
	result := &html.Node{Type: html.TextNode, Data: n.Text}

	for i := len(n.Marks) - 1; i >= 0; i-- {
		wrapper, err := buildMark(n.Marks[i])
		if err != nil {
			return nil, err
		}
		wrapper.AppendChild(result)
		result = wrapper
	}
	return result, nil
}

// buildMark creates the wrapper element for one mark.
func buildMark(m Mark) (*html.Node, error) {
	switch m.Type {
	case MarkBold:
		return &html.Node{Type: html.ElementNode, DataAtom: atom.Strong, Data: "strong"}, nil
	case MarkItalic:
		return &html.Node{Type: html.ElementNode, DataAtom: atom.Em, Data: "em"}, nil
	case MarkCode:
		return &html.Node{Type: html.ElementNode, DataAtom: atom.Code, Data: "code"}, nil
	case MarkLink:
		elem := &html.Node{Type: html.ElementNode, DataAtom: atom.A, Data: "a"}
		if m.Attrs != nil && m.Attrs.Href != "" {
			elem.Attr = append(elem.Attr, html.Attribute{Key: "href", Val: m.Attrs.Href})
		}
		return elem, nil
	default:
		return nil, fmt.Errorf("%w: mark %q", ErrUnsupportedNode, m.Type)
	}
}

// buildImage creates an img element from an image node.
func buildImage(n *Node) *html.Node {
	elem := &html.Node{Type: html.ElementNode, DataAtom: atom.Img, Data: "img"}
	attrs := n.Attrs
	if attrs == nil {
		attrs = &NodeAttrs{}
	}
	elem.Attr = append(elem.Attr,
		html.Attribute{Key: "src", Val: attrs.Src},
		html.Attribute{Key: "alt", Val: attrs.Alt},
	)
	if attrs.Title != "" {
		elem.Attr = append(elem.Attr, html.Attribute{Key: "title", Val: attrs.Title})
	}
	if attrs.ImageID != "" {
		elem.Attr = append(elem.Attr, html.Attribute{Key: "data-image-id", Val: attrs.ImageID})
	}
	return elem
}
