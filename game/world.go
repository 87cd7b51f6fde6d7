package game

import (
	"context"
	"math"

	"chronosta/logging"
	"chronosta/logging/gameplay"
)

// World owns the live entity collections for a run: the player, the current
// level's enemies, and in-flight projectiles. All mutation happens inside a
// single fixed step; collections are rebuilt with copy-then-filter rather
// than edited while iterated.
type World struct {
	Player      *Player
	Level       *Level
	Enemies     []*Enemy
	Projectiles []Projectile

	pub  logging.Publisher
	tick func() uint64

	slamPending bool
}

func NewWorld(level *Level, pub logging.Publisher, tick func() uint64) *World {
	if pub == nil {
		pub = logging.NopPublisher()
	}
	if tick == nil {
		tick = func() uint64 { return 0 }
	}
	w := &World{
		Player: NewPlayer(level.SpawnX, level.SpawnY),
		pub:    pub,
		tick:   tick,
	}
	w.LoadLevel(level)
	return w
}

// LoadLevel swaps in a level and re-synchronizes the entity collections with
// its content. The player keeps its attributes but moves to the spawn.
func (w *World) LoadLevel(level *Level) {
	w.Level = level
	w.Enemies = make([]*Enemy, 0, len(level.Spawns))
	for _, spawn := range level.Spawns {
		w.Enemies = append(w.Enemies, NewEnemy(spawn.X, spawn.Y, spawn.Era))
	}
	w.Projectiles = w.Projectiles[:0]
	w.slamPending = false
	w.ResetPlayer()
}

// ResetPlayer moves the player back to the level spawn and clears transient
// motion state.
func (w *World) ResetPlayer() {
	p := w.Player
	p.X, p.Y = w.Level.SpawnX, w.Level.SpawnY
	p.PrevX, p.PrevY = p.X, p.Y
	p.VX, p.VY = 0, 0
	p.Grounded = false
}

// SpawnProjectile adds a projectile aimed from (x,y) at (targetX,targetY).
func (w *World) SpawnProjectile(x, y, targetX, targetY float64, era Era, fromEnemy bool) {
	w.Projectiles = append(w.Projectiles, newProjectile(x, y, targetX, targetY, era, fromEnemy))
}

// UsePlayerPower fires the player's era power and arms any world-side
// follow-up (the prehistoric landing slam).
func (w *World) UsePlayerPower() bool {
	era := w.Player.Era
	if !w.Player.UsePower() {
		return false
	}
	if era == EraPrehistoric {
		w.slamPending = true
	}
	return true
}

// Step advances the whole world by one scaled fixed step.
func (w *World) Step(stepMS float64) {
	wasAirborne := !w.Player.Grounded

	w.Player.Update(stepMS, w.Level.Walls)

	for _, enemy := range w.Enemies {
		if enemy.StunMS > 0 {
			enemy.StunMS = math.Max(0, enemy.StunMS-stepMS)
			continue
		}
		enemy.PrevX, enemy.PrevY = enemy.X, enemy.Y
		enemyBehaviors[enemy.Era](enemy, stepMS, w)
	}

	dt := stepMS / 1000.0
	for i := range w.Projectiles {
		proj := &w.Projectiles[i]
		proj.X += proj.VX * dt
		proj.Y += proj.VY * dt
		proj.AgeMS += stepMS
	}

	if w.slamPending && wasAirborne && w.Player.Grounded {
		w.resolveSlam()
		w.slamPending = false
	}

	w.resolveCombat()
	w.removeExpired()
}

// resolveSlam damages and stuns every enemy within the slam radius of the
// landing, then sends a ring of shockwave projectiles outward for enemies
// beyond it.
func (w *World) resolveSlam() {
	px, py := w.Player.CenterX(), w.Player.CenterY()
	for _, enemy := range w.Enemies {
		if math.Hypot(enemy.CenterX()-px, enemy.CenterY()-py) <= slamRadius {
			enemy.TakeDamage(slamDamage)
			enemy.StunMS = slamStunMS
		}
	}
	for i := 0; i < slamShockwaves; i++ {
		angle := float64(i) / slamShockwaves * 2 * math.Pi
		proj := newProjectile(px, py, px+math.Cos(angle), py+math.Sin(angle), EraPrehistoric, false)
		proj.LifetimeMS = shockwaveLifetimeMS
		w.Projectiles = append(w.Projectiles, proj)
	}
}

func (w *World) resolveCombat() {
	playerRect := w.Player.Rect()

	// Enemy projectiles against the player; friendly shockwaves against
	// enemies. A projectile is spent on its first hit.
	for i := range w.Projectiles {
		proj := &w.Projectiles[i]
		if proj.expired() {
			continue
		}
		if proj.FromEnemy {
			if proj.Rect().Overlaps(playerRect) {
				dealt := w.Player.TakeDamage(proj.Damage)
				proj.AgeMS = proj.LifetimeMS
				if dealt > 0 {
					gameplay.PlayerDamaged(context.Background(), w.pub, w.tick(), gameplay.PlayerDamagedPayload{
						Amount:    dealt,
						Remaining: w.Player.Health,
						Source:    proj.Era.String() + " projectile",
					})
				}
			}
			continue
		}
		for _, enemy := range w.Enemies {
			if enemy.Health > 0 && proj.Rect().Overlaps(enemy.Rect()) {
				enemy.TakeDamage(proj.Damage)
				proj.AgeMS = proj.LifetimeMS
				break
			}
		}
	}

	// Enemy contact damage.
	for _, enemy := range w.Enemies {
		if enemy.Health <= 0 {
			continue
		}
		if enemy.Rect().Overlaps(playerRect) {
			dealt := w.Player.TakeDamage(enemyTouchDamage)
			if dealt > 0 {
				gameplay.PlayerDamaged(context.Background(), w.pub, w.tick(), gameplay.PlayerDamagedPayload{
					Amount:    dealt,
					Remaining: w.Player.Health,
					Source:    enemy.Era.String() + " enemy",
				})
			}
		}
	}
}

// removeExpired rebuilds the collections without dead enemies or spent
// projectiles. Copy-then-filter keeps iteration elsewhere safe.
func (w *World) removeExpired() {
	enemies := make([]*Enemy, 0, len(w.Enemies))
	for _, enemy := range w.Enemies {
		if enemy.Health > 0 {
			enemies = append(enemies, enemy)
		}
	}
	w.Enemies = enemies

	projectiles := make([]Projectile, 0, len(w.Projectiles))
	for _, proj := range w.Projectiles {
		if !proj.expired() {
			projectiles = append(projectiles, proj)
		}
	}
	w.Projectiles = projectiles
}

// Cleared reports whether every enemy in the level is gone.
func (w *World) Cleared() bool {
	return len(w.Enemies) == 0
}
