package contentpipe

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
)

// Limits on image submissions, enforced before reconciliation.
const (
	MaxImagesPerItem = 5
	MaxImageBytes    = 3 << 20
)

// ImageSubmission describes one image attachment in a content save request.
// A submission with an ID edits a persisted image; one with a File uploads
// new binary content; one with both replaces a persisted image's content.
// A submission with neither is meaningless and is rejected.
type ImageSubmission struct {
	ID      string      // persisted image id; empty for new uploads
	File    *FileUpload // new binary payload; nil for metadata-only edits
	AltText *string     // nil when alt text was not part of the submission
}

// FileUpload carries a new image payload.
type FileUpload struct {
	Reader      io.Reader
	ContentType string // detected from content when empty
	Size        int64  // declared size, checked by ValidateImageSubmissions
}

// NewImage is a persisted-image create record with a freshly minted id.
type NewImage struct {
	ID          string
	Blob        []byte
	ContentType string
	AltText     *string
}

// ImageUpdate is a persisted-image update record. Blob is nil when only the
// alt text changed. When the binary content is replaced, BlobID carries a
// freshly minted identity for the new blob while ID keeps the logical image
// slot stable — replacing content always mints a new blob identity.
type ImageUpdate struct {
	ID          string
	AltText     *string
	Blob        []byte
	ContentType string
	BlobID      string
}

// ReconcileResult partitions a submission against previously persisted state.
type ReconcileResult struct {
	NewImages  []NewImage
	Updates    []ImageUpdate
	DeletedIDs []string
}

// ValidateImageSubmissions enforces the submission bounds: at most
// MaxImagesPerItem images, at most MaxImageBytes per declared file size, and
// no descriptor lacking both id and file. Callers run this before
// ReconcileImages; the reconciler itself does not re-check the bounds.
func ValidateImageSubmissions(submitted []ImageSubmission) error {
	if len(submitted) > MaxImagesPerItem {
		return fmt.Errorf("%w: %d submitted, max %d", ErrTooManyImages, len(submitted), MaxImagesPerItem)
	}
	for i, sub := range submitted {
		if sub.ID == "" && sub.File == nil {
			return fmt.Errorf("%w: submission %d", ErrInvalidImageDescriptor, i)
		}
		if sub.File != nil && sub.File.Size > MaxImageBytes {
			return fmt.Errorf("%w: submission %d is %d bytes, max %d", ErrImageTooLarge, i, sub.File.Size, MaxImageBytes)
		}
	}
	return nil
}

// ReconcileImages diffs a submission against the previously persisted image
// ids, producing create, update, and delete sets.
//
// Every submission with an id becomes an update; one that also carries a file
// gets its blob read and a fresh blob id minted. Every submission with a file
// but no id becomes a new image under a freshly generated id. A persisted id
// absent from the submission is deleted — absence means delete, there is no
// separate delete signal.
//
// Deterministic apart from the freshly minted ids; file payload reads are the
// only I/O.
func ReconcileImages(ctx context.Context, submitted []ImageSubmission, persistedIDs []string) (*ReconcileResult, error) {
	result := &ReconcileResult{}

	for i, sub := range submitted {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		switch {
		case sub.ID != "":
			update := ImageUpdate{ID: sub.ID, AltText: sub.AltText}
			if sub.File != nil {
				blob, contentType, err := readUpload(sub.File)
				if err != nil {
					return nil, fmt.Errorf("submission %d: %w", i, err)
				}
				update.Blob = blob
				update.ContentType = contentType
				update.BlobID = uuid.NewString()
			}
			result.Updates = append(result.Updates, update)

		case sub.File != nil:
			blob, contentType, err := readUpload(sub.File)
			if err != nil {
				return nil, fmt.Errorf("submission %d: %w", i, err)
			}
			result.NewImages = append(result.NewImages, NewImage{
				ID:          uuid.NewString(),
				Blob:        blob,
				ContentType: contentType,
				AltText:     sub.AltText,
			})

		default:
			return nil, fmt.Errorf("%w: submission %d", ErrInvalidImageDescriptor, i)
		}
	}

	updated := make(map[string]bool, len(result.Updates))
	for _, update := range result.Updates {
		updated[update.ID] = true
	}
	for _, id := range persistedIDs {
		if !updated[id] {
			result.DeletedIDs = append(result.DeletedIDs, id)
		}
	}

	return result, nil
}

// readUpload reads the file payload into memory and settles its content type.
func readUpload(f *FileUpload) ([]byte, string, error) {
	blob, err := io.ReadAll(f.Reader)
	if err != nil {
		return nil, "", fmt.Errorf("reading image upload: %w", err)
	}
	contentType := f.ContentType
	if contentType == "" {
		contentType = http.DetectContentType(blob)
	}
	return blob, contentType, nil
}
