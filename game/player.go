package game

import "math"

// Player is the single controllable entity. Era-specific behavior is looked
// up in fixed tables rather than expressed through subtypes.
type Player struct {
	Body

	Health     float64
	MaxHealth  float64
	Stamina    float64
	MaxStamina float64

	Era             Era
	PowerCooldownMS float64

	shieldMS      float64
	rewindHistory []position
}

type position struct {
	x, y float64
}

func NewPlayer(x, y float64) *Player {
	return &Player{
		Body:       Body{X: x, Y: y, W: playerWidth, H: playerHeight, PrevX: x, PrevY: y},
		Health:     playerMaxHealth,
		MaxHealth:  playerMaxHealth,
		Stamina:    playerMaxStamina,
		MaxStamina: playerMaxStamina,
		Era:        EraMedieval,
	}
}

// Jump launches the player when grounded.
func (p *Player) Jump() bool {
	if !p.Grounded {
		return false
	}
	p.VY = playerJumpForce
	p.Grounded = false
	return true
}

// TakeDamage applies damage, respecting an active medieval shield.
func (p *Player) TakeDamage(amount float64) float64 {
	if p.shieldMS > 0 {
		return 0
	}
	p.Health = math.Max(0, p.Health-amount)
	return amount
}

func (p *Player) Heal(amount float64) {
	p.Health = math.Min(p.MaxHealth, p.Health+amount)
}

// SwitchEra changes the player's era and resets the power cooldown. Called
// exactly once per era transition, at the fade peak.
func (p *Player) SwitchEra(era Era) {
	p.Era = era
	p.PowerCooldownMS = 0
}

// powerEffect mutates the player for one era power. World-side effects (the
// prehistoric slam shockwave) are handled by the playing state after UsePower
// reports success.
type powerEffect func(p *Player)

var eraPowers = [eraCount]powerEffect{
	EraPrehistoric: func(p *Player) {
		// Launch up; the landing slam is resolved by the world.
		p.VY = slamLaunchSpeed
		p.Grounded = false
	},
	EraMedieval: func(p *Player) {
		p.shieldMS = shieldDurationMS
	},
	EraFuturistic: func(p *Player) {
		if len(p.rewindHistory) == 0 {
			return
		}
		oldest := p.rewindHistory[0]
		p.X, p.Y = oldest.x, oldest.y
		p.PrevX, p.PrevY = oldest.x, oldest.y
		p.VX, p.VY = 0, 0
		p.rewindHistory = p.rewindHistory[:0]
	},
}

// UsePower fires the current era's power if the cooldown and stamina allow.
func (p *Player) UsePower() bool {
	if p.PowerCooldownMS > 0 || p.Stamina < powerStaminaCost {
		return false
	}
	eraPowers[p.Era](p)
	p.Stamina -= powerStaminaCost
	p.PowerCooldownMS = eraTable[p.Era].PowerCooldownMS
	return true
}

func (p *Player) ShieldActive() bool {
	return p.shieldMS > 0
}

// Update runs one fixed step of player simulation: physics, stamina
// regeneration, cooldown decay, and the rewind position history.
func (p *Player) Update(stepMS float64, walls []Rect) {
	StepBody(&p.Body, stepMS, walls)

	dt := stepMS / 1000.0
	if p.Stamina < p.MaxStamina {
		p.Stamina = math.Min(p.MaxStamina, p.Stamina+staminaRegenRate*dt)
	}
	if p.PowerCooldownMS > 0 {
		p.PowerCooldownMS = math.Max(0, p.PowerCooldownMS-stepMS)
	}
	if p.shieldMS > 0 {
		p.shieldMS = math.Max(0, p.shieldMS-stepMS)
	}

	p.rewindHistory = append(p.rewindHistory, position{x: p.X, y: p.Y})
	if len(p.rewindHistory) > rewindWindow {
		p.rewindHistory = p.rewindHistory[len(p.rewindHistory)-rewindWindow:]
	}
}

// CenterX and CenterY report the body's midpoint, which enemy behaviors aim at.
func (p *Player) CenterX() float64 {
	return p.X + p.W/2
}

func (p *Player) CenterY() float64 {
	return p.Y + p.H/2
}
