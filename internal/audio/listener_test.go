package audio

import (
	"testing"
	"time"
)

func TestListenerThrottlesRapidPoseUpdates(t *testing.T) {
	now := time.Now()
	l := NewListener()
	l.SetPose(Pose{Position: Vec3{X: 10}}, now)
	l.SetPose(Pose{Position: Vec3{X: 20}}, now.Add(10*time.Millisecond)) // inside the 50ms throttle window

	pose := l.CurrentPose(now.Add(10 * time.Millisecond))
	if pose.Position.X == 20 {
		t.Fatal("a pose arriving inside the throttle window should have been dropped")
	}
}

func TestListenerTweensTowardAcceptedPose(t *testing.T) {
	now := time.Now()
	l := NewListener()
	l.SetPose(Pose{Position: Vec3{X: 10}}, now)
	l.SetPose(Pose{Position: Vec3{X: 20}}, now.Add(60*time.Millisecond))

	mid := l.CurrentPose(now.Add(60*time.Millisecond + 25*time.Millisecond))
	if mid.Position.X <= 10 || mid.Position.X >= 20 {
		t.Fatalf("expected a mid-tween value between 10 and 20, got %v", mid.Position.X)
	}

	end := l.CurrentPose(now.Add(60*time.Millisecond + listenerUpdateInterval))
	if end.Position.X != 20 {
		t.Fatalf("expected the tween to finish at 20, got %v", end.Position.X)
	}
}

func TestEmitterDistancesAttenuation(t *testing.T) {
	d := EmitterDistances{MinDistance: 5, MaxDistance: 15}
	if d.Attenuation(3) != 1 {
		t.Fatal("expected full volume within min distance")
	}
	if d.Attenuation(20) != 0 {
		t.Fatal("expected silence beyond max distance")
	}
	mid := d.Attenuation(10)
	if mid <= 0 || mid >= 1 {
		t.Fatalf("expected partial attenuation between bounds, got %v", mid)
	}
}
