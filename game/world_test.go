package game

import (
	"math"
	"testing"
)

func testLevel(spawns ...EnemySpawn) Level {
	return Level{
		Name:   "test",
		SpawnX: 100, SpawnY: 600,
		Walls:  borders(),
		Spawns: spawns,
		Exit:   Rect{X: 1150, Y: 560, W: 110, H: 120},
	}
}

func TestLoadLevelSyncsCollections(t *testing.T) {
	level := testLevel(
		EnemySpawn{X: 400, Y: 600, Era: EraPrehistoric},
		EnemySpawn{X: 600, Y: 600, Era: EraMedieval},
	)
	w := NewWorld(&level, nil, nil)

	if len(w.Enemies) != 2 {
		t.Fatalf("got %d enemies, want 2", len(w.Enemies))
	}
	if w.Enemies[0].Health != eraTable[EraPrehistoric].EnemyHealth {
		t.Fatalf("enemy health %f not taken from era table", w.Enemies[0].Health)
	}

	w.SpawnProjectile(0, 0, 100, 0, EraMedieval, true)
	next := testLevel()
	w.LoadLevel(&next)
	if len(w.Enemies) != 0 || len(w.Projectiles) != 0 {
		t.Fatal("stale entities survived a level load")
	}
	if w.Player.X != next.SpawnX || w.Player.Y != next.SpawnY {
		t.Fatalf("player not at spawn after load: (%f,%f)", w.Player.X, w.Player.Y)
	}
}

func TestProjectileExpiryAndFilter(t *testing.T) {
	level := testLevel()
	w := NewWorld(&level, nil, nil)

	// Aim straight up so nothing collides before the lifetime runs out.
	w.SpawnProjectile(5000, 5000, 5000, 0, EraMedieval, true)
	proj := w.Projectiles[0]
	if proj.VY >= 0 {
		t.Fatalf("projectile aimed up should move up, vy %f", proj.VY)
	}
	if want := projectileBaseDamage * eraTable[EraMedieval].DamageMultiplier; proj.Damage != want {
		t.Fatalf("damage %f, want %f", proj.Damage, want)
	}

	steps := int(projectileLifetimeMS/fixedStepMS) + 2
	for i := 0; i < steps; i++ {
		w.Step(fixedStepMS)
	}
	if len(w.Projectiles) != 0 {
		t.Fatalf("%d projectiles alive past their lifetime", len(w.Projectiles))
	}
}

func TestEnemyProjectileHitsPlayer(t *testing.T) {
	level := testLevel()
	w := NewWorld(&level, nil, nil)
	w.Player.Grounded = true

	// Place a projectile already overlapping the player.
	w.Projectiles = append(w.Projectiles, Projectile{
		X: w.Player.CenterX(), Y: w.Player.CenterY(),
		Era: EraMedieval, Damage: 15, FromEnemy: true, LifetimeMS: projectileLifetimeMS,
	})
	before := w.Player.Health
	w.Step(fixedStepMS)

	if w.Player.Health != before-15 {
		t.Fatalf("health %f after hit, want %f", w.Player.Health, before-15)
	}
	if len(w.Projectiles) != 0 {
		t.Fatal("projectile not spent on hit")
	}
}

func TestShieldBlocksProjectile(t *testing.T) {
	level := testLevel()
	w := NewWorld(&level, nil, nil)
	w.Player.SwitchEra(EraMedieval)
	if !w.Player.UsePower() {
		t.Fatal("shield power refused")
	}

	w.Projectiles = append(w.Projectiles, Projectile{
		X: w.Player.CenterX(), Y: w.Player.CenterY(),
		Era: EraFuturistic, Damage: 15, FromEnemy: true, LifetimeMS: projectileLifetimeMS,
	})
	before := w.Player.Health
	w.Step(fixedStepMS)
	if w.Player.Health != before {
		t.Fatalf("shielded player lost health: %f -> %f", before, w.Player.Health)
	}
}

func TestContactDamage(t *testing.T) {
	level := testLevel(EnemySpawn{X: 100, Y: 600, Era: EraPrehistoric})
	w := NewWorld(&level, nil, nil)
	w.Enemies[0].StunMS = 1e9
	w.Enemies[0].X, w.Enemies[0].Y = w.Player.X, w.Player.Y

	before := w.Player.Health
	w.Step(fixedStepMS)
	if w.Player.Health != before-enemyTouchDamage {
		t.Fatalf("health %f after contact, want %f", w.Player.Health, before-enemyTouchDamage)
	}
}

func TestSlamResolvesOnLanding(t *testing.T) {
	// The enemy sits inside the slam radius but clear of the shockwave rays,
	// so only the direct slam touches its health.
	level := testLevel(EnemySpawn{X: 192, Y: 594, Era: EraMedieval})
	w := NewWorld(&level, nil, nil)
	w.Enemies[0].StunMS = 1e9
	w.Player.SwitchEra(EraPrehistoric)
	w.Player.Grounded = true

	if !w.UsePlayerPower() {
		t.Fatal("slam power refused")
	}
	if w.Player.VY != slamLaunchSpeed {
		t.Fatalf("slam launch vy %f, want %f", w.Player.VY, slamLaunchSpeed)
	}

	before := w.Enemies[0].Health
	landed := false
	for i := 0; i < 600; i++ {
		w.Step(fixedStepMS)
		if w.Player.Grounded {
			landed = true
			break
		}
	}
	if !landed {
		t.Fatal("player never landed after the slam launch")
	}
	if w.Enemies[0].Health != before-slamDamage {
		t.Fatalf("enemy health %f after slam, want %f", w.Enemies[0].Health, before-slamDamage)
	}
	if w.Enemies[0].StunMS <= 0 {
		t.Fatal("slammed enemy not stunned")
	}

	// Landing again without re-arming the power must not slam twice.
	after := w.Enemies[0].Health
	w.Player.Jump()
	for i := 0; i < 600 && !w.Player.Grounded; i++ {
		w.Step(fixedStepMS)
	}
	if w.Enemies[0].Health != after {
		t.Fatal("slam fired on a plain jump landing")
	}
}

func TestDeadEnemiesRemoved(t *testing.T) {
	level := testLevel(EnemySpawn{X: 900, Y: 600, Era: EraFuturistic})
	w := NewWorld(&level, nil, nil)
	w.Enemies[0].StunMS = 1e9
	w.Enemies[0].TakeDamage(w.Enemies[0].MaxHealth)

	w.Step(fixedStepMS)
	if len(w.Enemies) != 0 {
		t.Fatal("dead enemy survived the step")
	}
	if !w.Cleared() {
		t.Fatal("world not cleared with all enemies dead")
	}
}

func TestArcherFiresInBand(t *testing.T) {
	tuning := eraTable[EraMedieval]
	level := testLevel()
	w := NewWorld(&level, nil, nil)

	e := NewEnemy(w.Player.CenterX()+tuning.AttackRange*0.75, w.Player.CenterY(), EraMedieval)
	w.Enemies = append(w.Enemies, e)

	w.Step(fixedStepMS)
	if len(w.Projectiles) != 1 {
		t.Fatalf("archer in band fired %d projectiles, want 1", len(w.Projectiles))
	}
	if e.AttackCooldownMS <= 0 {
		t.Fatal("archer cooldown not armed after firing")
	}
	if !w.Projectiles[0].FromEnemy {
		t.Fatal("archer arrow not flagged as hostile")
	}
}

func TestTeleporterBlinksAway(t *testing.T) {
	tuning := eraTable[EraFuturistic]
	level := testLevel()
	w := NewWorld(&level, nil, nil)

	e := NewEnemy(w.Player.X+40, w.Player.Y, EraFuturistic)
	w.Enemies = append(w.Enemies, e)

	w.Step(fixedStepMS)
	dist := math.Hypot(e.CenterX()-w.Player.CenterX(), e.CenterY()-w.Player.CenterY())
	if dist < tuning.TeleportDistance-10 {
		t.Fatalf("teleporter only %f away after blink, want about %f", dist, tuning.TeleportDistance)
	}
	if e.TeleportCooldownMS != tuning.TeleportCooldownMS {
		t.Fatalf("teleport cooldown %f, want %f", e.TeleportCooldownMS, tuning.TeleportCooldownMS)
	}
}

func TestStunnedEnemyHoldsStill(t *testing.T) {
	level := testLevel(EnemySpawn{X: 200, Y: 600, Era: EraPrehistoric})
	w := NewWorld(&level, nil, nil)
	e := w.Enemies[0]
	e.StunMS = 500

	x, y := e.X, e.Y
	w.Step(fixedStepMS)
	if e.X != x || e.Y != y {
		t.Fatalf("stunned enemy moved to (%f,%f)", e.X, e.Y)
	}
	if e.StunMS >= 500 {
		t.Fatal("stun timer did not tick down")
	}

	for i := 0; i < 60; i++ {
		w.Step(fixedStepMS)
	}
	if e.X == x && e.Y == y {
		t.Fatal("enemy still frozen after the stun expired")
	}
}

func TestSlamShockwaveHitsDistantEnemy(t *testing.T) {
	// The enemy stands outside the slam radius, directly on the rightward
	// shockwave's path.
	level := testLevel(EnemySpawn{X: 300, Y: 632, Era: EraMedieval})
	w := NewWorld(&level, nil, nil)
	w.Enemies[0].StunMS = 1e9
	w.Player.SwitchEra(EraPrehistoric)
	w.Player.Grounded = true

	if !w.UsePlayerPower() {
		t.Fatal("slam power refused")
	}
	landed := false
	for i := 0; i < 600; i++ {
		w.Step(fixedStepMS)
		if w.Player.Grounded {
			landed = true
			break
		}
	}
	if !landed {
		t.Fatal("player never landed after the slam launch")
	}
	if w.Enemies[0].Health != w.Enemies[0].MaxHealth {
		t.Fatalf("enemy outside the slam radius took direct damage: %f", w.Enemies[0].Health)
	}

	for i := 0; i < 30; i++ {
		w.Step(fixedStepMS)
	}
	want := w.Enemies[0].MaxHealth - projectileBaseDamage*eraTable[EraPrehistoric].DamageMultiplier
	if w.Enemies[0].Health != want {
		t.Fatalf("enemy health %f after shockwave, want %f", w.Enemies[0].Health, want)
	}
}

func TestLevelCompletion(t *testing.T) {
	level := testLevel(EnemySpawn{X: 400, Y: 600, Era: EraMedieval})
	level.NeedsClear = true
	w := NewWorld(&level, nil, nil)

	// Standing in the exit with enemies alive does not complete.
	w.Player.X = level.Exit.X + 10
	w.Player.Y = level.Exit.Y + 10
	if level.Completed(w) {
		t.Fatal("level completed with enemies alive")
	}

	w.Enemies = nil
	if !level.Completed(w) {
		t.Fatal("cleared level with player in exit did not complete")
	}
}
