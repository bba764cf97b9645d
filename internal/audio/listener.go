package audio

import "time"

// listenerUpdateInterval throttles how often a new listener pose is
// accepted; poses arriving sooner than this after the last accepted one
// are dropped rather than starting a new tween every frame
// (lib.rs:503-522).
const listenerUpdateInterval = 50 * time.Millisecond

// Pose is a listener's position and facing, in engine-native LH Y-up
// space.
type Pose struct {
	Position Vec3
	Forward  Vec3
	Up       Vec3
}

// backendOrientation is the (right, up, -forward) basis the audio
// backend expects, built once per pose update (lib.rs:507-514).
type backendOrientation struct {
	Position Vec3
	Right    Vec3
	Up       Vec3
	Forward  Vec3 // already negated for the backend's RH convention
}

func cross(a, b Vec3) Vec3 {
	return Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

// toBackendOrientation derives the right vector from forward×up and
// flips every axis across the LH/RH boundary (ToBackend on position and
// forward; up is handed-neutral since it does not change sign under a
// single-axis Z flip combined with the right-vector recompute).
func toBackendOrientation(p Pose) backendOrientation {
	right := cross(p.Forward, p.Up)
	return backendOrientation{
		Position: p.Position.ToBackend(),
		Right:    right.ToBackend(),
		Up:       p.Up,
		Forward:  p.Forward.ToBackend(),
	}
}

// Listener owns the throttled, tweened listener pose the ambient-emitter
// probe and the backend's spatializer both read from.
type Listener struct {
	current    Pose
	target     Pose
	lastAccept time.Time
	ramp       tween // drives a single scalar progress [0,1] across the two poses
}

// NewListener starts a listener at the zero pose.
func NewListener() *Listener {
	return &Listener{
		ramp: tween{from: 1, to: 1},
	}
}

// SetPose accepts a new target pose if at least listenerUpdateInterval
// has elapsed since the last accepted one; poses arriving sooner are
// dropped (the position simply hasn't been re-sampled yet), matching the
// teacher's throttle-then-tween shape rather than queuing every update.
func (l *Listener) SetPose(p Pose, now time.Time) {
	if now.Sub(l.lastAccept) < listenerUpdateInterval {
		return
	}
	l.lastAccept = now
	l.current = l.CurrentPose(now)
	l.target = p
	l.ramp = newTween(0, 1, now)
	l.ramp.duration = listenerUpdateInterval
}

// CurrentPose linearly interpolates between the last accepted pose and
// the new target, sampled at now.
func (l *Listener) CurrentPose(now time.Time) Pose {
	t := l.ramp.value(now)
	return Pose{
		Position: lerp(l.current.Position, l.target.Position, t),
		Forward:  lerp(l.current.Forward, l.target.Forward, t),
		Up:       lerp(l.current.Up, l.target.Up, t),
	}
}

func lerp(a, b Vec3, t float64) Vec3 {
	return Vec3{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
		Z: a.Z + (b.Z-a.Z)*t,
	}
}

// BackendPose returns the current pose converted to the backend's
// coordinate convention.
func (l *Listener) BackendPose(now time.Time) backendOrientation {
	return toBackendOrientation(l.CurrentPose(now))
}

// ambientMinDistance is the fixed full-volume radius every ambient
// emitter uses (EmitterDistances{min_distance: 5.0, ...}, lib.rs:436).
const ambientMinDistance = 5.0

// EmitterDistances are one emitter's attenuation parameters: full volume
// within MinDistance, linear falloff to silence at MaxDistance. Every
// emitter shares MinDistance (ambientMinDistance) but MaxDistance is the
// emitter's own audibility radius (max_distance:
// sound_config.bounds.radius(), lib.rs:436-439) — a small bell and a
// distant waterfall don't fall silent at the same range.
type EmitterDistances struct {
	MinDistance float64
	MaxDistance float64
}

// Attenuation computes the linear gain in [0,1] for a source at dist
// from the listener.
func (d EmitterDistances) Attenuation(dist float64) float64 {
	if dist <= d.MinDistance {
		return 1
	}
	if dist >= d.MaxDistance || d.MaxDistance <= d.MinDistance {
		return 0
	}
	return 1 - (dist-d.MinDistance)/(d.MaxDistance-d.MinDistance)
}
