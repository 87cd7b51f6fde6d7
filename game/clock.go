package game

import "time"

// Clock abstracts wall-clock reads so the time controller is deterministic
// under test.
type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// SystemClock returns the process wall clock.
func SystemClock() Clock {
	return systemClock{}
}
