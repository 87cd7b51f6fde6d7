package game

import (
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func TestSlowMotionLifecycle(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	tc := NewTimeController(clock, EraMedieval)

	if tc.TimeScale() != 1.0 {
		t.Fatalf("expected default scale 1.0, got %f", tc.TimeScale())
	}
	if !tc.StartSlowMotion() {
		t.Fatal("first activation should succeed")
	}
	if tc.TimeScale() != slowMotionFactor {
		t.Fatalf("expected scale %f while active, got %f", slowMotionFactor, tc.TimeScale())
	}

	// A second call during the active window fails and leaves the scale alone.
	if tc.StartSlowMotion() {
		t.Fatal("second activation should fail while active")
	}
	if tc.TimeScale() != slowMotionFactor {
		t.Fatalf("failed activation must not reset the scale, got %f", tc.TimeScale())
	}

	// Natural expiry flips the scale back and arms the cooldown.
	clock.advance(slowMotionDuration)
	out := tc.Update(fixedStepMS)
	if !out.SlowMotionExpired {
		t.Fatal("expected expiry edge")
	}
	if tc.TimeScale() != 1.0 {
		t.Fatalf("expected scale 1.0 after expiry, got %f", tc.TimeScale())
	}

	// Still cooling down.
	if tc.StartSlowMotion() {
		t.Fatal("activation during cooldown should fail")
	}

	// Cooldown elapses implicitly; no state change needed in between.
	clock.advance(slowMotionCooldown)
	if !tc.StartSlowMotion() {
		t.Fatal("activation after cooldown should succeed")
	}
}

func TestEraTransitionFlipsExactlyOnce(t *testing.T) {
	tc := NewTimeController(&fakeClock{now: time.Unix(1000, 0)}, EraMedieval)

	if !tc.BeginTransition(EraFuturistic) {
		t.Fatal("transition to a different era should start")
	}
	if tc.BeginTransition(EraPrehistoric) {
		t.Fatal("beginning a transition mid-transition must be a no-op")
	}

	flips := 0
	done := false
	for i := 0; i < 10000 && !done; i++ {
		out := tc.Update(fixedStepMS)
		if out.EraChanged {
			flips++
			if out.Era != EraFuturistic {
				t.Fatalf("flip delivered wrong era %v", out.Era)
			}
			if tc.TransitionProgress() != 1.0 {
				t.Fatalf("era must flip at the progress peak, progress %f", tc.TransitionProgress())
			}
		}
		if p := tc.TransitionProgress(); p < 0 || p > 1 {
			t.Fatalf("progress out of range: %f", p)
		}
		done = out.TransitionDone
	}
	if !done {
		t.Fatal("transition never completed")
	}
	if flips != 1 {
		t.Fatalf("era changed %d times, want exactly 1", flips)
	}
	if tc.CurrentEra() != EraFuturistic {
		t.Fatalf("controller era is %v after transition", tc.CurrentEra())
	}
	if tc.Transitioning() {
		t.Fatal("controller still transitioning after completion")
	}
}

func TestTransitionToSameEraIsNoOp(t *testing.T) {
	tc := NewTimeController(&fakeClock{now: time.Unix(1000, 0)}, EraMedieval)
	if tc.BeginTransition(EraMedieval) {
		t.Fatal("transition to the current era should refuse")
	}
}

func TestTransitionNeverAffectsTimeScale(t *testing.T) {
	tc := NewTimeController(&fakeClock{now: time.Unix(1000, 0)}, EraMedieval)
	tc.BeginTransition(EraPrehistoric)
	for i := 0; i < 2000; i++ {
		tc.Update(fixedStepMS)
		if tc.TimeScale() != 1.0 {
			t.Fatalf("fade changed the time scale to %f", tc.TimeScale())
		}
	}
}

func TestSetEraRefusedMidTransition(t *testing.T) {
	tc := NewTimeController(&fakeClock{now: time.Unix(1000, 0)}, EraMedieval)
	tc.BeginTransition(EraFuturistic)
	tc.SetEra(EraPrehistoric)
	if tc.CurrentEra() != EraMedieval {
		t.Fatalf("SetEra must not interfere with an active fade, era %v", tc.CurrentEra())
	}
}

func TestCancelTransitionDiscardsFade(t *testing.T) {
	tc := NewTimeController(&fakeClock{now: time.Unix(1000, 0)}, EraMedieval)
	tc.BeginTransition(EraFuturistic)
	tc.Update(fixedStepMS)

	tc.CancelTransition()
	if tc.Transitioning() {
		t.Fatal("controller still transitioning after cancel")
	}
	if tc.TransitionProgress() != 0 {
		t.Fatalf("progress %f after cancel, want 0", tc.TransitionProgress())
	}
	tc.SetEra(EraPrehistoric)
	if tc.CurrentEra() != EraPrehistoric {
		t.Fatalf("SetEra refused after cancel, era %v", tc.CurrentEra())
	}

	// The discarded fade must never deliver its flip.
	for i := 0; i < 2000; i++ {
		out := tc.Update(fixedStepMS)
		if out.EraChanged || out.TransitionDone {
			t.Fatal("cancelled fade still produced an edge")
		}
	}
	if tc.CurrentEra() != EraPrehistoric {
		t.Fatalf("era drifted to %v after cancel", tc.CurrentEra())
	}
}
