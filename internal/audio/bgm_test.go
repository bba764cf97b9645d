package audio

import (
	"strings"
	"testing"
	"time"
)

func TestBackgroundMusicPlayIdempotentWhilePlaying(t *testing.T) {
	now := time.Now()
	b := NewBackgroundMusic()
	b.Play("prontera", now)
	track, state := b.Current()
	if track != "prontera" || state != StatePlaying {
		t.Fatalf("got %s/%v", track, state)
	}

	b.Play("prontera", now.Add(100*time.Millisecond))
	track, state = b.Current()
	if track != "prontera" || state != StatePlaying {
		t.Fatalf("re-playing the active track should be a no-op, got %s/%v", track, state)
	}
}

func TestBackgroundMusicFadeAndQueue(t *testing.T) {
	now := time.Now()
	b := NewBackgroundMusic()
	b.Play("prontera", now)

	b.Play("geffen", now.Add(time.Millisecond))
	track, state := b.Current()
	if track != "prontera" || state != StateStopping {
		t.Fatalf("expected prontera to start fading out, got %s/%v", track, state)
	}

	b.Tick(now.Add(500 * time.Millisecond))
	track, state = b.Current()
	if track != "prontera" || state != StateStopping {
		t.Fatalf("fade should not resolve before 1s, got %s/%v", track, state)
	}

	b.Tick(now.Add(2 * time.Second))
	track, state = b.Current()
	if track != "geffen" || state != StatePlaying {
		t.Fatalf("expected queued track geffen to start after fade-out, got %s/%v", track, state)
	}
}

func TestParseTrackMapping(t *testing.T) {
	input := `
// comment line
0#prontera#bgm_town01
1#gef_fild01#bgm_field01

not a real line
`
	m, err := ParseTrackMapping(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	track, ok := m.TrackForMap("PRONTERA")
	if !ok || track != "bgm_town01" {
		t.Fatalf("expected case-insensitive lookup to find bgm_town01, got %q ok=%v", track, ok)
	}
	if _, ok := m.TrackForMap("unknown_map"); ok {
		t.Fatal("expected no mapping for an unknown map")
	}
}
