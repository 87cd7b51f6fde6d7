package game

import "time"

// TimeController tracks the slow-motion window and the era cross-fade. Both
// are self-terminating: slow motion via wall-clock timers, the fade via a
// per-step progress counter. Only slow motion ever touches the time scale;
// the fade drives visuals and the mode machine.
type TimeController struct {
	clock Clock

	scale          float64
	slowActive     bool
	slowEndsAt     time.Time
	cooldownEndsAt time.Time

	transitioning bool
	rising        bool
	progress      float64
	currentEra    Era
	targetEra     Era
}

// TimeUpdate reports the edges crossed during a single Update call.
type TimeUpdate struct {
	SlowMotionExpired bool
	EraChanged        bool
	Era               Era
	TransitionDone    bool
}

func NewTimeController(clock Clock, start Era) *TimeController {
	if clock == nil {
		clock = SystemClock()
	}
	return &TimeController{clock: clock, scale: 1.0, currentEra: start}
}

// StartSlowMotion arms the slow-motion window. It fails while slow motion is
// already active or the cooldown has not elapsed; the caller is expected to
// ignore the failure silently.
func (tc *TimeController) StartSlowMotion() bool {
	now := tc.clock.Now()
	if tc.slowActive || now.Before(tc.cooldownEndsAt) {
		return false
	}
	tc.slowActive = true
	tc.scale = slowMotionFactor
	tc.slowEndsAt = now.Add(slowMotionDuration)
	return true
}

// BeginTransition starts the era fade. It is a no-op while a fade is in
// flight or when the target equals the current era.
func (tc *TimeController) BeginTransition(target Era) bool {
	if tc.transitioning || target == tc.currentEra {
		return false
	}
	tc.transitioning = true
	tc.rising = true
	tc.progress = 0
	tc.targetEra = target
	return true
}

// Update advances both state machines by one fixed step. Call once per
// simulation step, before gameplay updates. The era value changes exactly
// once, on the step where progress reaches 1.0.
func (tc *TimeController) Update(stepMS float64) TimeUpdate {
	var out TimeUpdate

	if tc.slowActive {
		now := tc.clock.Now()
		if !now.Before(tc.slowEndsAt) {
			tc.slowActive = false
			tc.scale = 1.0
			tc.cooldownEndsAt = now.Add(slowMotionCooldown)
			out.SlowMotionExpired = true
		}
	}

	if tc.transitioning {
		delta := transitionRatePerMS * stepMS
		if tc.rising {
			tc.progress += delta
			if tc.progress >= 1.0 {
				tc.progress = 1.0
				tc.rising = false
				tc.currentEra = tc.targetEra
				out.EraChanged = true
				out.Era = tc.currentEra
			}
		} else {
			tc.progress -= delta
			if tc.progress <= 0 {
				tc.progress = 0
				tc.transitioning = false
				out.TransitionDone = true
			}
		}
	}

	return out
}

// TimeScale is 1.0 or the slow-motion factor; the era fade never affects it.
func (tc *TimeController) TimeScale() float64 {
	return tc.scale
}

func (tc *TimeController) SlowMotionActive() bool {
	return tc.slowActive
}

func (tc *TimeController) Transitioning() bool {
	return tc.transitioning
}

// TransitionProgress rises to 1.0 during fade-out and falls back to 0 during
// fade-in. Render code maps it straight to overlay alpha.
func (tc *TimeController) TransitionProgress() float64 {
	return tc.progress
}

func (tc *TimeController) CurrentEra() Era {
	return tc.currentEra
}

// CancelTransition abandons an in-flight fade without flipping the era.
// Restores call this before forcing the era so a leftover fade cannot fire
// its flip against the restored state.
func (tc *TimeController) CancelTransition() {
	tc.transitioning = false
	tc.rising = false
	tc.progress = 0
}

// SetEra forces the era without a fade; used when importing a saved game.
func (tc *TimeController) SetEra(era Era) {
	if tc.transitioning {
		return
	}
	tc.currentEra = era
}
