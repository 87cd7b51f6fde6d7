package game

// Scheduler owns the fixed-timestep accumulator. Each rendered frame feeds
// its wall-clock duration in; the scheduler answers with how many whole
// simulation steps to run and keeps the remainder for render interpolation.
//
// The scheduler itself never reads the wall clock, so for a fixed step size
// the step sequence produced by a given stream of frame times is
// reproducible.
type Scheduler struct {
	accumulatedMS float64
	stepMS        float64
	maxFrameMS    float64
}

func NewScheduler(stepMS, maxFrameMS float64) *Scheduler {
	if stepMS <= 0 {
		stepMS = fixedStepMS
	}
	if maxFrameMS < stepMS {
		maxFrameMS = stepMS * 5
	}
	return &Scheduler{stepMS: stepMS, maxFrameMS: maxFrameMS}
}

// Advance consumes one frame's worth of elapsed time and returns the number
// of whole simulation steps to run. Frame time is clamped to
// [0, maxFrameMS]: negative readings are treated as zero and a stalled frame
// never schedules unbounded catch-up work.
//
// After Advance returns, 0 <= accumulated < step always holds.
func (s *Scheduler) Advance(frameMS float64) int {
	if frameMS < 0 {
		frameMS = 0
	}
	if frameMS > s.maxFrameMS {
		frameMS = s.maxFrameMS
	}
	s.accumulatedMS += frameMS

	// The epsilon absorbs float rounding at exact multiples of the step so
	// a clamped frame of 5*step drains as 5 steps, not 4.
	steps := 0
	for s.accumulatedMS+stepEpsilonMS >= s.stepMS {
		s.accumulatedMS -= s.stepMS
		if s.accumulatedMS < 0 {
			s.accumulatedMS = 0
		}
		steps++
	}
	return steps
}

const stepEpsilonMS = 1e-9

// Interpolation reports leftover progress toward the next step in [0,1),
// used by the renderer to blend between the previous and current simulated
// state.
func (s *Scheduler) Interpolation() float64 {
	return s.accumulatedMS / s.stepMS
}

// StepMS reports the fixed step size in milliseconds.
func (s *Scheduler) StepMS() float64 {
	return s.stepMS
}

// FixedStepMS is the default step size, exposed for shells that need an
// initial frame-time estimate.
func FixedStepMS() float64 {
	return fixedStepMS
}
