package game

import (
	"math"
	"testing"
)

func TestSchedulerExactFrames(t *testing.T) {
	s := NewScheduler(fixedStepMS, maxFrameMS)

	total := 0
	for _, frame := range []float64{16.67, 16.67, 16.67} {
		total += s.Advance(frame)
	}
	if total != 3 {
		t.Fatalf("expected exactly 3 steps, got %d", total)
	}
	if interp := s.Interpolation(); interp > 0.01 {
		t.Fatalf("expected interpolation near zero, got %f", interp)
	}
}

func TestSchedulerClampsLongFrame(t *testing.T) {
	s := NewScheduler(fixedStepMS, maxFrameMS)

	// A 500ms stall must be clamped to 5 steps of catch-up, not ~30.
	if steps := s.Advance(500); steps != 5 {
		t.Fatalf("expected 5 clamped steps, got %d", steps)
	}
}

func TestSchedulerClampsNegativeFrame(t *testing.T) {
	s := NewScheduler(fixedStepMS, maxFrameMS)

	if steps := s.Advance(-40); steps != 0 {
		t.Fatalf("negative frame time should schedule no steps, got %d", steps)
	}
	if interp := s.Interpolation(); interp != 0 {
		t.Fatalf("negative frame time should not accumulate, interpolation %f", interp)
	}
}

func TestSchedulerConservesUnclampedTime(t *testing.T) {
	s := NewScheduler(fixedStepMS, maxFrameMS)

	frames := []float64{3.2, 16.67, 7.9, 40.0, 0.5, 33.4, 12.0}
	var fed float64
	steps := 0
	for _, frame := range frames {
		fed += frame
		steps += s.Advance(frame)
		if interp := s.Interpolation(); interp < 0 || interp >= 1 {
			t.Fatalf("interpolation out of [0,1): %f", interp)
		}
	}

	consumed := float64(steps)*fixedStepMS + s.accumulatedMS
	if math.Abs(consumed-fed) > 1e-9 {
		t.Fatalf("accumulator lost time: fed %f, accounted %f", fed, consumed)
	}
}

func TestSchedulerInvariantAfterEveryPass(t *testing.T) {
	s := NewScheduler(fixedStepMS, maxFrameMS)

	for _, frame := range []float64{0, 1, 16.67, 82, 83.35, 500, 0.001} {
		s.Advance(frame)
		if s.accumulatedMS < 0 || s.accumulatedMS >= s.stepMS {
			t.Fatalf("accumulator invariant violated after %f: %f", frame, s.accumulatedMS)
		}
	}
}
