package contentpipe

import (
	"encoding/json"
	"fmt"
	"strings"
)

// NodeType identifies a rich-content node kind. The set is closed: conversion
// fails with ErrUnsupportedNode on anything else rather than silently
// dropping content.
type NodeType string

// Supported node types.
const (
	NodeDoc       NodeType = "doc"
	NodeParagraph NodeType = "paragraph"
	NodeHeading   NodeType = "heading"
	NodeText      NodeType = "text"
	NodeImage     NodeType = "image"
	NodeHardBreak NodeType = "hardBreak"
)

// MarkType identifies an inline mark applied to a text node.
type MarkType string

// Supported mark types.
const (
	MarkBold   MarkType = "bold"
	MarkItalic MarkType = "italic"
	MarkCode   MarkType = "code"
	MarkLink   MarkType = "link"
)

// Node is one node of the rich-content document tree used by the embedded
// editor. The tree is owned by a single editing session and serialized to
// JSON at save/load boundaries, with Type as the structural discriminator
// ("doc" at the root).
type Node struct {
	Type    NodeType   `json:"type"`
	Text    string     `json:"text,omitempty"`
	Attrs   *NodeAttrs `json:"attrs,omitempty"`
	Marks   []Mark     `json:"marks,omitempty"`
	Content []*Node    `json:"content,omitempty"`
}

// NodeAttrs carries the per-type attributes of a node.
type NodeAttrs struct {
	Level   int    `json:"level,omitempty"`   // heading
	Src     string `json:"src,omitempty"`     // image
	Alt     string `json:"alt,omitempty"`     // image
	Title   string `json:"title,omitempty"`   // image
	ImageID string `json:"imageId,omitempty"` // image: content-image identifier
}

// Mark is an inline annotation on a text node.
type Mark struct {
	Type  MarkType   `json:"type"`
	Attrs *MarkAttrs `json:"attrs,omitempty"`
}

// MarkAttrs carries mark attributes (currently the link target).
type MarkAttrs struct {
	Href string `json:"href,omitempty"`
}

// ImageRef is one image placement extracted from a rich-content tree.
// The same id may appear more than once when an image is placed twice with
// different alt text.
type ImageRef struct {
	ID      string
	AltText string
}

// ParseStoredContent loads a stored rich-content value.
//
// A JSON object must carry the "doc" discriminator after parse; anything else
// fails with ErrInvalidDocumentStructure. Content that is not a JSON object
// is legacy plain text from before the rich editor existed and is wrapped as
// a single-paragraph tree — one text run, no markdown parsing. That narrow
// compatibility shim is deliberate.
func ParseStoredContent(content string) (*Node, error) {
	if !strings.HasPrefix(strings.TrimSpace(content), "{") {
		return plainTextTree(content), nil
	}

	var node Node
	if err := json.Unmarshal([]byte(content), &node); err != nil {
		// Looks structured but isn't valid JSON: legacy plain text that
		// happens to start with a brace.
		return plainTextTree(content), nil
	}
	if node.Type != NodeDoc {
		return nil, fmt.Errorf("%w: discriminator is %q, want %q", ErrInvalidDocumentStructure, node.Type, NodeDoc)
	}
	return &node, nil
}

// Serialize encodes the tree to its storage representation.
func (n *Node) Serialize() (string, error) {
	data, err := json.Marshal(n)
	if err != nil {
		return "", fmt.Errorf("serializing rich-content tree: %w", err)
	}
	return string(data), nil
}

// plainTextTree wraps legacy plain text as doc > paragraph > text.
func plainTextTree(content string) *Node {
	paragraph := &Node{Type: NodeParagraph}
	if content != "" {
		paragraph.Content = []*Node{{Type: NodeText, Text: content}}
	}
	return &Node{Type: NodeDoc, Content: []*Node{paragraph}}
}

// ExtractImages collects every image node carrying a non-empty content-image
// identifier, in document order. Duplicates are preserved: each placement may
// carry different alt text.
func ExtractImages(root *Node) []ImageRef {
	var refs []ImageRef
	collectImages(root, &refs)
	return refs
}

func collectImages(n *Node, refs *[]ImageRef) {
	if n == nil {
		return
	}
	if n.Type == NodeImage && n.Attrs != nil && n.Attrs.ImageID != "" {
		*refs = append(*refs, ImageRef{ID: n.Attrs.ImageID, AltText: n.Attrs.Alt})
	}
	for _, child := range n.Content {
		collectImages(child, refs)
	}
}
