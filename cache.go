package contentpipe

import (
	"container/list"
	"sync"
)

// DocumentCache is a size-bounded LRU cache of rendered documents keyed by
// path. The bound is the total serialized byte size of cached entries, not
// the entry count; inserting past the budget evicts least-recently-used
// entries first.
//
// Construct one per process and pass it by reference; nothing here relies on
// being a package-level singleton. Safe for concurrent Get/Put from
// independent request-handling goroutines. If two requests race to render
// the same uncached path, both renders are valid and last-write-wins, since
// rendering is a pure function of the raw text.
type DocumentCache struct {
	mu     sync.Mutex
	budget int64
	used   int64
	order  *list.List // front = most recently used
	items  map[string]*list.Element
}

// cacheEntry pins the key and size at insertion time, so eviction accounting
// stays correct even if the caller later mutates the document.
type cacheEntry struct {
	path string
	doc  *Document
	size int64
}

// NewDocumentCache creates a cache bounded to budget bytes.
// Panics if budget <= 0 (programmer error).
func NewDocumentCache(budget int64) *DocumentCache {
	if budget <= 0 {
		panic("contentpipe: NewDocumentCache budget must be positive")
	}
	return &DocumentCache{
		budget: budget,
		order:  list.New(),
		items:  make(map[string]*list.Element),
	}
}

// Get returns the cached document for path, marking it most recently used.
func (c *DocumentCache) Get(path string) (*Document, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[path]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*cacheEntry).doc, true
}

// Put stores the document under path, evicting least-recently-used entries
// until the budget holds. A document larger than the whole budget is not
// cached at all.
func (c *DocumentCache) Put(path string, doc *Document) {
	size := doc.Size()

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[path]; ok {
		c.used -= elem.Value.(*cacheEntry).size
		c.order.Remove(elem)
		delete(c.items, path)
	}

	if size > c.budget {
		return
	}

	c.items[path] = c.order.PushFront(&cacheEntry{path: path, doc: doc, size: size})
	c.used += size

	for c.used > c.budget {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		entry := oldest.Value.(*cacheEntry)
		c.used -= entry.size
		c.order.Remove(oldest)
		delete(c.items, entry.path)
	}
}

// Len returns the number of cached documents.
func (c *DocumentCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Used returns the total serialized size of cached documents in bytes.
func (c *DocumentCache) Used() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.used
}
