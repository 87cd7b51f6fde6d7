package game

import "math"

// Enemy is a single record tagged by era. Behavior is selected through the
// era-indexed function table below instead of subtypes; per-era tuning comes
// from eraTable.
type Enemy struct {
	X, Y, W, H float64
	VX, VY     float64
	PrevX      float64
	PrevY      float64

	Era       Era
	Health    float64
	MaxHealth float64

	AttackCooldownMS   float64
	TeleportCooldownMS float64
	Charging           bool
	StunMS             float64
}

func NewEnemy(x, y float64, era Era) *Enemy {
	health := eraTable[era].EnemyHealth
	return &Enemy{
		X: x, Y: y, W: enemySize, H: enemySize,
		PrevX: x, PrevY: y,
		Era: era, Health: health, MaxHealth: health,
	}
}

func (e *Enemy) Rect() Rect {
	return Rect{X: e.X, Y: e.Y, W: e.W, H: e.H}
}

func (e *Enemy) CenterX() float64 { return e.X + e.W/2 }
func (e *Enemy) CenterY() float64 { return e.Y + e.H/2 }

// TakeDamage reports whether the hit was fatal.
func (e *Enemy) TakeDamage(amount float64) bool {
	e.Health = math.Max(0, e.Health-amount)
	return e.Health <= 0
}

// Projectile travels in a straight line until its lifetime expires. Enemy
// projectiles damage the player; slam shockwaves damage enemies.
type Projectile struct {
	X, Y   float64
	VX, VY float64

	Era        Era
	Damage     float64
	FromEnemy  bool
	AgeMS      float64
	LifetimeMS float64
}

func newProjectile(x, y, targetX, targetY float64, era Era, fromEnemy bool) Projectile {
	angle := math.Atan2(targetY-y, targetX-x)
	return Projectile{
		X: x, Y: y,
		VX:         math.Cos(angle) * projectileSpeed,
		VY:         math.Sin(angle) * projectileSpeed,
		Era:        era,
		Damage:     projectileBaseDamage * eraTable[era].DamageMultiplier,
		FromEnemy:  fromEnemy,
		LifetimeMS: projectileLifetimeMS,
	}
}

func (p *Projectile) Rect() Rect {
	return Rect{X: p.X - projectileSize/2, Y: p.Y - projectileSize/2, W: projectileSize, H: projectileSize}
}

func (p *Projectile) expired() bool {
	return p.AgeMS >= p.LifetimeMS
}

// enemyBehavior advances one enemy by one scaled step.
type enemyBehavior func(e *Enemy, stepMS float64, w *World)

var enemyBehaviors = [eraCount]enemyBehavior{
	EraPrehistoric: chargeBehavior,
	EraMedieval:    archerBehavior,
	EraFuturistic:  teleporterBehavior,
}

// chargeBehavior rushes the player once in range, then rests on a cooldown.
func chargeBehavior(e *Enemy, stepMS float64, w *World) {
	dt := stepMS / 1000.0
	tuning := eraTable[e.Era]

	if e.AttackCooldownMS > 0 {
		e.AttackCooldownMS = math.Max(0, e.AttackCooldownMS-stepMS)
		e.Charging = false
		return
	}

	dx := w.Player.CenterX() - e.CenterX()
	dy := w.Player.CenterY() - e.CenterY()
	dist := math.Hypot(dx, dy)

	if dist < tuning.AttackRange && !e.Charging {
		e.Charging = true
		e.AttackCooldownMS = tuning.AttackCooldownMS
	}

	speed := tuning.EnemySpeed
	if e.Charging {
		speed = tuning.ChargeSpeed
	}
	if dist > 0 {
		e.VX = dx / dist * speed
		e.VY = dy / dist * speed
	}
	e.X += e.VX * dt
	e.Y += e.VY * dt
}

// archerBehavior keeps its distance and fires arrows at the player.
func archerBehavior(e *Enemy, stepMS float64, w *World) {
	dt := stepMS / 1000.0
	tuning := eraTable[e.Era]

	if e.AttackCooldownMS > 0 {
		e.AttackCooldownMS = math.Max(0, e.AttackCooldownMS-stepMS)
	}

	dx := w.Player.CenterX() - e.CenterX()
	dy := w.Player.CenterY() - e.CenterY()
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return
	}

	switch {
	case dist < tuning.AttackRange*0.5:
		e.VX = -dx / dist * tuning.EnemySpeed
		e.VY = -dy / dist * tuning.EnemySpeed
	case dist > tuning.AttackRange:
		e.VX = dx / dist * tuning.EnemySpeed
		e.VY = dy / dist * tuning.EnemySpeed
	default:
		e.VX, e.VY = 0, 0
		if e.AttackCooldownMS <= 0 {
			w.SpawnProjectile(e.CenterX(), e.CenterY(), w.Player.CenterX(), w.Player.CenterY(), e.Era, true)
			e.AttackCooldownMS = tuning.AttackCooldownMS
		}
	}
	e.X += e.VX * dt
	e.Y += e.VY * dt
}

// teleporterBehavior blinks away from a close player and fires energy bolts.
func teleporterBehavior(e *Enemy, stepMS float64, w *World) {
	dt := stepMS / 1000.0
	tuning := eraTable[e.Era]

	if e.TeleportCooldownMS > 0 {
		e.TeleportCooldownMS = math.Max(0, e.TeleportCooldownMS-stepMS)
	}
	if e.AttackCooldownMS > 0 {
		e.AttackCooldownMS = math.Max(0, e.AttackCooldownMS-stepMS)
	}

	px, py := w.Player.CenterX(), w.Player.CenterY()
	dx := px - e.CenterX()
	dy := py - e.CenterY()
	dist := math.Hypot(dx, dy)

	if dist < tuning.TeleportTriggerRange && e.TeleportCooldownMS <= 0 {
		angle := math.Atan2(e.CenterY()-py, e.CenterX()-px)
		e.X = px + math.Cos(angle)*tuning.TeleportDistance - e.W/2
		e.Y = py + math.Sin(angle)*tuning.TeleportDistance - e.H/2
		e.TeleportCooldownMS = tuning.TeleportCooldownMS
		return
	}

	if dist > 0 {
		e.VX = dx / dist * tuning.EnemySpeed
		e.VY = dy / dist * tuning.EnemySpeed
	}
	if dist < tuning.AttackRange && e.AttackCooldownMS <= 0 {
		w.SpawnProjectile(e.CenterX(), e.CenterY(), px, py, e.Era, true)
		e.AttackCooldownMS = tuning.AttackCooldownMS
	}
	e.X += e.VX * dt
	e.Y += e.VY * dt
}
