package audio

import "testing"

func TestSampleCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewSampleCache()
	c.Put("a", []byte{1})
	c.Put("b", []byte{2})
	c.Get("a") // touch a, so b becomes the LRU candidate

	for i := 0; i < maxCacheEntries-1; i++ {
		c.Put(string(rune('c'+i)), []byte{byte(i)})
	}

	if _, ok := c.Get("a"); !ok {
		t.Fatal("recently touched entry should survive eviction longer than an untouched one")
	}
}

func TestSampleCacheEnforcesSizeBound(t *testing.T) {
	c := NewSampleCache()
	big := make([]byte, maxCacheSizeBytes/2+1)
	c.Put("first", big)
	c.Put("second", big)

	stats := c.Stats()
	if stats.SizeBytes > maxCacheSizeBytes {
		t.Fatalf("cache exceeded its size bound: %d bytes", stats.SizeBytes)
	}
	if _, ok := c.Get("second"); !ok {
		t.Fatal("most recently inserted entry should still be present")
	}
}

func TestSampleCacheRejectsOversizedSample(t *testing.T) {
	c := NewSampleCache()
	tooBig := make([]byte, maxCacheSizeBytes+1)
	c.Put("huge", tooBig)

	if _, ok := c.Get("huge"); ok {
		t.Fatal("a sample larger than the size bound must not be cached")
	}
	if stats := c.Stats(); stats.SizeBytes != 0 || stats.Entries != 0 {
		t.Fatalf("expected the cache to stay empty, got %+v", stats)
	}
}
