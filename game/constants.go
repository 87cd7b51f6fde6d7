package game

import (
	"image/color"
	"time"
)

const (
	// WindowWidth and WindowHeight are the logical screen dimensions the
	// shell hands to ebiten.
	WindowWidth  = 1280
	WindowHeight = 720

	simulationHz = 60
	fixedStepMS  = 1000.0 / simulationHz
	maxFrameMS   = fixedStepMS * 5 // prevents the spiral of death

	playerWidth      = 32.0
	playerHeight     = 64.0
	playerSpeed      = 300.0  // pixels per second
	playerJumpForce  = -600.0 // pixels per second
	playerMaxHealth  = 100.0
	playerMaxStamina = 100.0
	staminaRegenRate = 20.0 // per second
	powerStaminaCost = 20.0

	gravity      = 1200.0 // pixels per second squared
	maxFallSpeed = 800.0  // terminal velocity, pixels per second

	slowMotionFactor   = 0.5
	slowMotionDuration = 5 * time.Second
	slowMotionCooldown = 30 * time.Second

	// transitionRatePerMS is the era-fade progress gained per simulated
	// millisecond; a full fade-out takes 500ms of simulated time.
	transitionRatePerMS = 0.002

	enemySize            = 32.0
	enemyTouchDamage     = 10.0
	projectileSize       = 8.0
	projectileSpeed      = 600.0 // pixels per second
	projectileBaseDamage = 15.0
	projectileLifetimeMS = 5000.0

	slamRadius          = 160.0
	slamDamage          = 40.0
	slamStunMS          = 1200.0
	slamLaunchSpeed     = -900.0 // pixels per second
	slamShockwaves      = 8
	shockwaveLifetimeMS = 400.0
	shieldDurationMS    = 1000.0
	rewindWindow        = 60 // steps of position history kept for the rewind power
)

// eraTuning holds the per-era constants. The table is populated at startup
// and never mutated.
type eraTuning struct {
	EnemyHealth      float64
	EnemySpeed       float64
	ChargeSpeed      float64
	AttackRange      float64
	AttackCooldownMS float64
	DamageMultiplier float64
	PowerCooldownMS  float64
	Color            color.RGBA

	// Teleporter tuning; only the futuristic entry fills these in.
	TeleportTriggerRange float64
	TeleportDistance     float64
	TeleportCooldownMS   float64
}

var eraTable = [eraCount]eraTuning{
	EraPrehistoric: {
		EnemyHealth:      150,
		EnemySpeed:       120,
		ChargeSpeed:      480,
		AttackRange:      200,
		AttackCooldownMS: 3000,
		DamageMultiplier: 1.5,
		PowerCooldownMS:  15000,
		Color:            color.RGBA{R: 139, G: 69, B: 19, A: 255},
	},
	EraMedieval: {
		EnemyHealth:      80,
		EnemySpeed:       120,
		AttackRange:      300,
		AttackCooldownMS: 2000,
		DamageMultiplier: 1.0,
		PowerCooldownMS:  3000,
		Color:            color.RGBA{R: 128, G: 128, B: 128, A: 255},
	},
	EraFuturistic: {
		EnemyHealth:      60,
		EnemySpeed:       180,
		AttackRange:      400,
		AttackCooldownMS: 1000,
		DamageMultiplier: 0.8,
		PowerCooldownMS:  60000,
		Color:            color.RGBA{R: 0, G: 255, B: 255, A: 255},

		TeleportTriggerRange: 100,
		TeleportDistance:     300,
		TeleportCooldownMS:   5000,
	},
}
