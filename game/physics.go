package game

import "math"

// Rect is an axis-aligned rectangle in world pixels.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && r.X+r.W > o.X && r.Y < o.Y+o.H && r.Y+r.H > o.Y
}

// Body is a dynamic axis-aligned box. PrevX/PrevY hold the position at the
// start of the last step so the renderer can interpolate.
type Body struct {
	X, Y, W, H float64
	VX, VY     float64
	PrevX      float64
	PrevY      float64
	Grounded   bool
}

func (b *Body) Rect() Rect {
	return Rect{X: b.X, Y: b.Y, W: b.W, H: b.H}
}

// StepBody advances a body by one fixed step against static colliders.
// Movement resolves one axis at a time, horizontal before vertical, which
// avoids the tunneling corner cases of combined-axis resolution.
func StepBody(b *Body, stepMS float64, walls []Rect) {
	dt := stepMS / 1000.0

	b.PrevX, b.PrevY = b.X, b.Y

	b.VY = math.Min(b.VY+gravity*dt, maxFallSpeed)

	b.X += b.VX * dt
	resolveHorizontal(b, walls)

	b.Grounded = false
	b.Y += b.VY * dt
	resolveVertical(b, walls)
}

// resolveHorizontal snaps the body flush against the first wall it overlaps
// and zeroes horizontal velocity.
func resolveHorizontal(b *Body, walls []Rect) {
	for _, wall := range walls {
		if !b.Rect().Overlaps(wall) {
			continue
		}
		if b.VX > 0 {
			b.X = wall.X - b.W
		} else if b.VX < 0 {
			b.X = wall.X + wall.W
		}
		b.VX = 0
	}
}

// resolveVertical snaps the body onto or under the wall. Landing marks the
// body grounded; bumping a ceiling only kills upward velocity.
func resolveVertical(b *Body, walls []Rect) {
	for _, wall := range walls {
		if !b.Rect().Overlaps(wall) {
			continue
		}
		if b.VY > 0 {
			b.Y = wall.Y - b.H
			b.VY = 0
			b.Grounded = true
		} else if b.VY < 0 {
			b.Y = wall.Y + wall.H
			b.VY = 0
		}
	}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
