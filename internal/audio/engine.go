package audio

import "time"

// Engine is the audio subsystem's single entry point: four volume
// tracks, background-music fade/queue state, a cached effect player, and
// the listener pose driving ambient-emitter diffing. Nothing here
// touches an actual mixer or codec — the engine owns state and timing,
// leaving playback to whatever backend a caller wires in through
// SampleLoader and the Play*/onStart/onStop callbacks.
type Engine struct {
	Tracks  *Tracks
	Music   *BackgroundMusic
	Effects *EffectPlayer
	Listener *Listener
	Mapping *TrackMapping

	ambient           *AmbientField
	lastAmbientUpdate time.Time
}

// NewEngine wires the four subsystems together. loader supplies decoded
// effect sample bytes on a cache miss; mapping may be nil if the
// background-music name table hasn't been loaded yet.
func NewEngine(loader SampleLoader, mapping *TrackMapping) *Engine {
	return &Engine{
		Tracks:   newTracks(),
		Music:    NewBackgroundMusic(),
		Effects:  NewEffectPlayer(NewSampleCache(), loader),
		Listener: NewListener(),
		Mapping:  mapping,
	}
}

// LoadMap rebuilds the ambient-emitter tree for a newly entered map and
// resolves its background track from the name mapping, starting it
// immediately via PlayBackgroundForMap. Each emitter's own radius
// (carried on emitterNode) sets both its audibility sphere for range
// queries and its attenuation falloff distance.
func (e *Engine) LoadMap(mapName string, emitters []emitterNode, now time.Time) {
	tree := BuildEmitterTree(emitters)
	e.ambient = NewAmbientField(tree, emitters)
	e.PlayBackgroundForMap(mapName, now)
}

// PlayBackgroundForMap resolves mapName through Mapping and starts it on
// the background track, doing nothing if no mapping is loaded or the
// map has no entry (get_track_for_map, lib.rs).
func (e *Engine) PlayBackgroundForMap(mapName string, now time.Time) {
	if e.Mapping == nil {
		return
	}
	track, ok := e.Mapping.TrackForMap(mapName)
	if !ok {
		return
	}
	e.Music.Play(track, now)
}

// Tick advances every time-driven piece of engine state: the background
// music fade/queue resolution and, at most once per ambientTickInterval,
// a fresh ambient-emitter diff. Callers should call
// this on every frame or network-poll turn; the internal throttles make
// calling it too often harmless.
func (e *Engine) Tick(now time.Time, onStart AmbientEmitterStart, onStop AmbientEmitterStop) {
	e.Music.Tick(now)
	if e.ambient != nil && now.Sub(e.lastAmbientUpdate) >= ambientTickInterval {
		e.lastAmbientUpdate = now
		pose := e.Listener.CurrentPose(now)
		e.ambient.Update(pose.Position, onStart, onStop)
	}
}

// PlayEffect is the short-effect entry point: cache hit plays
// synchronously, miss queues an async decode with a 1s drop deadline.
func (e *Engine) PlayEffect(name string, now time.Time, play PlayFunc) bool {
	return e.Effects.Play(name, now, play)
}

// EngineStats snapshots engine state for the debug manifest.
type EngineStats struct {
	Cache           CacheStats
	PendingLoads    int
	BackgroundTrack string
	BackgroundState PlaybackState
	ActiveEmitters  int
}

func (e *Engine) Stats() EngineStats {
	track, state := e.Music.Current()
	active := 0
	if e.ambient != nil {
		active = len(e.ambient.Active())
	}
	return EngineStats{
		Cache:           e.Effects.cache.Stats(),
		PendingLoads:    e.Effects.Pending(),
		BackgroundTrack: track,
		BackgroundState: state,
		ActiveEmitters:  active,
	}
}
