package audio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"
)

// fadeOutDuration is the background track's stop/replace fade, distinct
// from the 500ms volume tween — a full second of linear fade-out before
// the old handle is considered Stopped and the queued replacement starts
// (lib.rs's change_background_music_track / resolve_queued_audio).
const fadeOutDuration = time.Second

// PlaybackState mirrors the three states a background handle passes
// through.
type PlaybackState int

const (
	StatePlaying PlaybackState = iota
	StateStopping
	StateStopped
)

// backgroundHandle tracks one background track's fade-out progress.
type backgroundHandle struct {
	trackName string
	state     PlaybackState
	stopAt    time.Time // when Stopping began; Stopped once now >= stopAt+fadeOutDuration
}

// BackgroundMusic owns the single active background track plus at most
// one queued replacement (lib.rs: the old handle fades out, then the
// queued track starts once it reaches Stopped).
type BackgroundMusic struct {
	mu      sync.Mutex
	current *backgroundHandle
	queued  string
	hasNext bool
}

// NewBackgroundMusic returns an idle background-music state.
func NewBackgroundMusic() *BackgroundMusic {
	return &BackgroundMusic{}
}

// Play starts trackName. If nothing is currently playing it starts
// immediately; otherwise the old track begins fading out and trackName
// is queued to start once that fade completes. Calling Play with the
// name already Playing or Stopping on the active handle is a no-op
// (lib.rs:369-385's literal idempotence law, the original protocol).
func (b *BackgroundMusic) Play(trackName string, now time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.current != nil && b.current.trackName == trackName &&
		(b.current.state == StatePlaying || b.current.state == StateStopping) {
		return
	}

	if b.current == nil || b.current.state == StateStopped {
		b.current = &backgroundHandle{trackName: trackName, state: StatePlaying}
		b.queued = ""
		b.hasNext = false
		return
	}

	b.current.state = StateStopping
	b.current.stopAt = now
	b.queued = trackName
	b.hasNext = true
}

// Stop begins fading out whatever is currently playing, queuing nothing
// to replace it.
func (b *BackgroundMusic) Stop(now time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == nil || b.current.state != StatePlaying {
		return
	}
	b.current.state = StateStopping
	b.current.stopAt = now
	b.hasNext = false
}

// Tick resolves a completed fade-out into either silence or the queued
// track starting (resolve_queued_audio). Call it periodically from the
// engine's own tick.
func (b *BackgroundMusic) Tick(now time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == nil || b.current.state != StateStopping {
		return
	}
	if now.Sub(b.current.stopAt) < fadeOutDuration {
		return
	}
	b.current.state = StateStopped
	if b.hasNext {
		next := b.queued
		b.queued = ""
		b.hasNext = false
		b.current = &backgroundHandle{trackName: next, state: StatePlaying}
	}
}

// Current returns the active track name and state, or ("", StateStopped)
// when nothing has ever played.
func (b *BackgroundMusic) Current() (string, PlaybackState) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == nil {
		return "", StateStopped
	}
	return b.current.trackName, b.current.state
}

// FadeVolume returns the current background track's own fade-out
// multiplier in [0,1] (1.0 while Playing, ramping to 0 across
// fadeOutDuration while Stopping) — independent of and stacked
// multiplicatively with the background Track's tweened volume.
func (b *BackgroundMusic) FadeVolume(now time.Time) float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == nil || b.current.state == StateStopped {
		return 0
	}
	if b.current.state == StatePlaying {
		return 1
	}
	elapsed := now.Sub(b.current.stopAt)
	if elapsed >= fadeOutDuration {
		return 0
	}
	return 1 - float64(elapsed)/float64(fadeOutDuration)
}

// TrackMapping resolves a map file name to a background track name,
// parsed from data\mp3NameTable.txt (lib.rs:796-821,
// parse_background_music_track_mapping / get_track_for_map). The file
// format is one mapping per line: an index, then a '#'-delimited map
// name and track name; blank lines and '//'-prefixed comment lines are
// skipped — the same line-skipping shape as the teacher's .skin parser,
// adapted from comma-separated surface,texture pairs to '#'-delimited
// index,map,track triples.
type TrackMapping struct {
	byMapName map[string]string
}

// ParseTrackMapping reads mp3NameTable.txt's contents from r.
func ParseTrackMapping(r io.Reader) (*TrackMapping, error) {
	scanner := bufio.NewScanner(r)
	mapping := &TrackMapping{byMapName: make(map[string]string)}

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		parts := strings.Split(line, "#")
		if len(parts) < 3 {
			continue
		}
		if _, err := strconv.Atoi(strings.TrimSpace(parts[0])); err != nil {
			continue
		}
		mapName := strings.TrimSpace(parts[1])
		trackName := strings.TrimSpace(parts[2])
		if mapName == "" || trackName == "" {
			continue
		}
		mapping.byMapName[strings.ToLower(mapName)] = trackName
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("parse track mapping: %w", err)
	}
	return mapping, nil
}

// TrackForMap looks up the background track name for a map file name
// (case-insensitive, with or without a .gat/.rsw extension already
// stripped by the caller).
func (m *TrackMapping) TrackForMap(mapName string) (string, bool) {
	track, ok := m.byMapName[strings.ToLower(mapName)]
	return track, ok
}
