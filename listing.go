package contentpipe

import (
	"sort"
	"time"
)

// dateLayouts are the accepted publish date formats, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"January 2, 2006",
}

// PublishedAt parses the document's publish date.
// The zero time and false are returned when the date matches no known layout;
// the verbatim Date string is still available for display.
func (a Attributes) PublishedAt() (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, a.Date); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SortByDate orders documents newest first. Documents with unparseable dates
// sort last; ties break by path for a stable listing.
func SortByDate(docs []*Document) {
	sort.SliceStable(docs, func(i, j int) bool {
		ti, oki := docs[i].Attributes.PublishedAt()
		tj, okj := docs[j].Attributes.PublishedAt()
		switch {
		case oki && !okj:
			return true
		case !oki && okj:
			return false
		case !ti.Equal(tj):
			return ti.After(tj)
		default:
			return docs[i].Path < docs[j].Path
		}
	})
}

// WithoutDrafts returns the documents that are not flagged as drafts.
func WithoutDrafts(docs []*Document) []*Document {
	published := make([]*Document, 0, len(docs))
	for _, doc := range docs {
		if !doc.Attributes.Draft {
			published = append(published, doc)
		}
	}
	return published
}

// Featured returns the documents flagged as featured.
func Featured(docs []*Document) []*Document {
	var featured []*Document
	for _, doc := range docs {
		if doc.Attributes.Featured {
			featured = append(featured, doc)
		}
	}
	return featured
}
