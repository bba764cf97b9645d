package audio

import (
	"sync"
	"testing"
	"time"
)

type fakeLoader struct {
	delay time.Duration
	data  []byte
	err   error
}

func (f *fakeLoader) LoadSample(name string) ([]byte, error) {
	time.Sleep(f.delay)
	return f.data, f.err
}

func TestEffectPlayerCacheHitPlaysSynchronously(t *testing.T) {
	cache := NewSampleCache()
	cache.Put("hit.wav", []byte("cached"))
	player := NewEffectPlayer(cache, &fakeLoader{})

	var played []byte
	ok := player.Play("hit.wav", time.Now(), func(data []byte) { played = data })
	if !ok {
		t.Fatal("expected a cache hit to report true")
	}
	if string(played) != "cached" {
		t.Fatalf("got %q", played)
	}
}

func TestEffectPlayerDropsLateLoad(t *testing.T) {
	cache := NewSampleCache()
	loader := &fakeLoader{delay: 50 * time.Millisecond, data: []byte("late")}
	player := NewEffectPlayer(cache, loader)

	var mu sync.Mutex
	called := false
	requestedAt := time.Now().Add(-2 * time.Second) // already past the 1s drop deadline

	ok := player.Play("late.wav", requestedAt, func(data []byte) {
		mu.Lock()
		called = true
		mu.Unlock()
	})
	if ok {
		t.Fatal("a miss should return false immediately")
	}

	time.Sleep(150 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if called {
		t.Fatal("expected the late-arriving sample to be dropped, not played")
	}
}

func TestEffectPlayerPlaysWithinDeadline(t *testing.T) {
	cache := NewSampleCache()
	loader := &fakeLoader{delay: 10 * time.Millisecond, data: []byte("fresh")}
	player := NewEffectPlayer(cache, loader)

	var mu sync.Mutex
	var played []byte
	player.Play("fresh.wav", time.Now(), func(data []byte) {
		mu.Lock()
		played = data
		mu.Unlock()
	})

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		mu.Lock()
		got := played
		mu.Unlock()
		if got != nil {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	mu.Lock()
	defer mu.Unlock()
	if string(played) != "fresh" {
		t.Fatalf("expected the sample to play once loaded within the deadline, got %q", played)
	}
}
