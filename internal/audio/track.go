package audio

import (
	"sync"
	"time"
)

// TrackKind names one of the four fixed tracks.
type TrackKind int

const (
	TrackMain TrackKind = iota
	TrackBackground
	TrackEffects
	TrackAmbient
	trackCount
)

func (k TrackKind) String() string {
	switch k {
	case TrackMain:
		return "main"
	case TrackBackground:
		return "background"
	case TrackEffects:
		return "effects"
	case TrackAmbient:
		return "ambient"
	default:
		return "unknown"
	}
}

// Track holds one channel's current and tweening volume. Volume is a
// linear gain in [0,1]; it is the caller's job to multiply it into
// whatever backend mixer actually produces sound — this package owns the
// volume state machine, not playback.
type Track struct {
	mu     sync.Mutex
	volume float64
	ramp   tween
}

func newTrack() *Track {
	return &Track{volume: 1.0}
}

// SetVolume starts a 500ms linear ramp from the current sampled volume to
// target (lib.rs:328-354). Calling it again before the previous ramp
// finishes starts a fresh ramp from wherever the old one currently is,
// not from its original start — matching how repeated slider drags feel
// continuous rather than jumpy.
func (t *Track) SetVolume(target float64, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	current := t.ramp.value(now)
	t.volume = target
	t.ramp = newTween(current, target, now)
}

// Volume samples the track's current tweened volume at now.
func (t *Track) Volume(now time.Time) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ramp.value(now)
}

// Tracks is the fixed four-track bank every Engine owns.
type Tracks struct {
	byKind [trackCount]*Track
}

func newTracks() *Tracks {
	tr := &Tracks{}
	for i := range tr.byKind {
		tr.byKind[i] = newTrack()
	}
	return tr
}

func (tr *Tracks) Get(kind TrackKind) *Track {
	return tr.byKind[kind]
}
