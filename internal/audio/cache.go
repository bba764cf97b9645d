package audio

import (
	"container/list"
	"log"
	"sync"

	"github.com/dustin/go-humanize"
)

// Cache bounds for decoded short-effect samples (lib.rs:40-41,
// MAX_CACHE_COUNT, MAX_CACHE_SIZE).
const (
	maxCacheEntries  = 400
	maxCacheSizeBytes = 50 * 1024 * 1024 // 50MiB
)

// SampleCache is an LRU cache of decoded short-effect sample bytes,
// bounded by both entry count and total size; whichever limit is hit
// first evicts the least-recently-used entry.
type SampleCache struct {
	mu       sync.Mutex
	entries  map[string]*list.Element
	order    *list.List // front = most recently used
	sizeUsed int
}

type cacheEntry struct {
	key  string
	data []byte
}

// NewSampleCache returns an empty cache.
func NewSampleCache() *SampleCache {
	return &SampleCache{
		entries: make(map[string]*list.Element),
		order:   list.New(),
	}
}

// Get returns the cached bytes for key and marks it most recently used.
func (c *SampleCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*cacheEntry).data, true
}

// Put inserts or replaces key, evicting least-recently-used entries
// until both bounds (entry count, total bytes) are satisfied. A sample
// larger than maxCacheSizeBytes on its own is rejected outright —
// logged, not cached — rather than becoming a resident entry that alone
// pushes the cache over its size bound (lib.rs:588-591: cache.insert
// returns Err and logs "audio file is too big for cache" instead of
// storing it).
func (c *SampleCache) Put(key string, data []byte) {
	if len(data) > maxCacheSizeBytes {
		log.Printf("audio: sample %q (%s) is too big for the cache, not caching", key, humanize.Bytes(uint64(len(data))))
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		c.sizeUsed -= len(el.Value.(*cacheEntry).data)
		c.order.Remove(el)
		delete(c.entries, key)
	}

	el := c.order.PushFront(&cacheEntry{key: key, data: data})
	c.entries[key] = el
	c.sizeUsed += len(data)

	for c.order.Len() > maxCacheEntries || c.sizeUsed > maxCacheSizeBytes {
		c.evictOldest()
	}
}

func (c *SampleCache) evictOldest() {
	oldest := c.order.Back()
	if oldest == nil {
		return
	}
	entry := oldest.Value.(*cacheEntry)
	c.sizeUsed -= len(entry.data)
	c.order.Remove(oldest)
	delete(c.entries, entry.key)
}

// Stats reports the cache's current occupancy for the debug manifest.
type CacheStats struct {
	Entries   int
	SizeBytes int
	SizeHuman string
}

func (c *SampleCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{
		Entries:   c.order.Len(),
		SizeBytes: c.sizeUsed,
		SizeHuman: humanize.Bytes(uint64(c.sizeUsed)),
	}
}
