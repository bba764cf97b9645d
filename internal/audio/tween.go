// Package audio implements the audio engine: four volume-tweened tracks,
// background-music fade/queue handling, a cached short-effect player, and
// ambient emitters driven off the listener's moving position.
//
// Grounded throughout on original_source/korangar_audio/src/lib.rs, with
// the tween/track/cache shapes adapted to the teacher's own option-typed,
// error-wrapped Go style.
package audio

import (
	"time"
)

// tweenDuration is the linear volume ramp applied to every volume change
// on any track (lib.rs:328-354, Tween{duration: 500ms} on every
// set_*_volume call).
const tweenDuration = 500 * time.Millisecond

// tween is a linear interpolation from a start value to a target value
// over a fixed duration, sampled by calling value() with the current
// time. It has no goroutine of its own; callers sample it on their own
// schedule (the engine's tick, or lazily on read).
type tween struct {
	from      float64
	to        float64
	startedAt time.Time
	duration  time.Duration
}

// newTween starts a ramp from current to target, taking effect
// immediately: sampling at startedAt returns current, sampling at
// startedAt+duration or later returns target.
func newTween(current, target float64, now time.Time) tween {
	return tween{from: current, to: target, startedAt: now, duration: tweenDuration}
}

// value samples the tween at now, clamped to [from,to]'s span.
func (t tween) value(now time.Time) float64 {
	if t.duration <= 0 {
		return t.to
	}
	elapsed := now.Sub(t.startedAt)
	if elapsed <= 0 {
		return t.from
	}
	if elapsed >= t.duration {
		return t.to
	}
	frac := float64(elapsed) / float64(t.duration)
	return t.from + (t.to-t.from)*frac
}

// done reports whether the tween has reached its target as of now.
func (t tween) done(now time.Time) bool {
	return now.Sub(t.startedAt) >= t.duration
}
