package audio

import (
	"sync"
	"time"
)

// maxQueueTime is the drop deadline for a queued short-effect load
// (lib.rs:628-641, MAX_QUEUE_TIME_SECONDS). A sample that finishes
// decoding after its play intent has sat this long is simply discarded —
// playing a footstep a second late is worse than not playing it.
const maxQueueTime = 1 * time.Second

// SampleLoader decodes a named short-effect sample from wherever the
// engine's caller stores assets (the archive VFS, in practice). Loader
// methods are expected to be safe for concurrent use — EffectPlayer
// calls them from the async pool's worker goroutines.
type SampleLoader interface {
	LoadSample(name string) ([]byte, error)
}

// EffectPlayer plays short sound effects with a cache-or-async-load
// policy: a cache hit plays immediately on the calling goroutine; a miss
// spawns an async decode on the bounded worker pool (grounded on the
// teacher's demo.go worker-dispatch style: pure functions over a decoded
// byte buffer, no captured mutable state) and queues the play intent
// with a drop deadline.
type EffectPlayer struct {
	cache  *SampleCache
	loader SampleLoader

	sem chan struct{} // bounds concurrent decode workers

	mu      sync.Mutex
	pending int
}

// maxConcurrentLoads caps the async decode pool; the teacher's worker
// dispatch has no fixed pool size of its own (rayon's global pool
// sizes itself), so this is a deliberate, documented choice rather than
// a recovered constant.
const maxConcurrentLoads = 8

// NewEffectPlayer wires a cache and a sample source together.
func NewEffectPlayer(cache *SampleCache, loader SampleLoader) *EffectPlayer {
	return &EffectPlayer{
		cache:  cache,
		loader: loader,
		sem:    make(chan struct{}, maxConcurrentLoads),
	}
}

// PlayFunc is the callback EffectPlayer invokes once a sample is ready
// to sound — on the calling goroutine for a cache hit, on a pool worker
// goroutine for an async load. Callers that hand playback to a
// single-threaded mixer must do their own synchronization inside
// PlayFunc.
type PlayFunc func(data []byte)

// Play resolves name against the cache; on a hit it calls play
// synchronously and returns true. On a miss it spawns an async decode
// and returns false immediately — play is invoked later from a worker
// goroutine if the decode finishes within maxQueueTime of requestedAt,
// and dropped silently otherwise.
func (p *EffectPlayer) Play(name string, requestedAt time.Time, play PlayFunc) bool {
	if data, ok := p.cache.Get(name); ok {
		play(data)
		return true
	}

	p.mu.Lock()
	p.pending++
	p.mu.Unlock()

	go func() {
		defer func() {
			p.mu.Lock()
			p.pending--
			p.mu.Unlock()
		}()

		p.sem <- struct{}{}
		defer func() { <-p.sem }()

		data, err := p.loader.LoadSample(name)
		if err != nil {
			return
		}
		p.cache.Put(name, data)

		if time.Since(requestedAt) > maxQueueTime {
			return
		}
		play(data)
	}()
	return false
}

// Pending reports how many loads are currently in flight, for the debug
// manifest.
func (p *EffectPlayer) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending
}
