package contentpipe

import (
	"errors"

	"github.com/ldelmas/go-contentpipe/internal/frontmatter"
)

// Sentinel errors for library operations.
var (
	// ErrEmptySource indicates a render was attempted with no source text.
	ErrEmptySource = errors.New("document source cannot be empty")

	// ErrMalformedMetadata indicates the document's metadata block is present
	// but unparseable, or missing a required attribute. Aliased from the
	// frontmatter package so callers can match with errors.Is.
	ErrMalformedMetadata = frontmatter.ErrMalformedMetadata

	// Rich-content conversion errors.
	ErrUnsupportedNode          = errors.New("unsupported rich-content node")
	ErrInvalidDocumentStructure = errors.New("stored content is not a rich-content document")

	// Image attachment errors.
	ErrInvalidImageDescriptor = errors.New("image descriptor has neither id nor file")
	ErrTooManyImages          = errors.New("too many image attachments")
	ErrImageTooLarge          = errors.New("image file exceeds size limit")
)
