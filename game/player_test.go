package game

import "testing"

func TestJumpRequiresGrounding(t *testing.T) {
	p := NewPlayer(100, 100)

	if p.Jump() {
		t.Fatal("airborne player must not jump")
	}

	p.Grounded = true
	if !p.Jump() {
		t.Fatal("grounded player should jump")
	}
	if p.VY != playerJumpForce {
		t.Fatalf("expected jump velocity %f, got %f", playerJumpForce, p.VY)
	}
	if p.Grounded {
		t.Fatal("jumping should clear grounding")
	}
}

func TestDamageAndHealClamp(t *testing.T) {
	p := NewPlayer(0, 0)

	p.TakeDamage(40)
	if p.Health != playerMaxHealth-40 {
		t.Fatalf("unexpected health %f", p.Health)
	}
	p.TakeDamage(1000)
	if p.Health != 0 {
		t.Fatalf("health must clamp at zero, got %f", p.Health)
	}
	p.Heal(1000)
	if p.Health != p.MaxHealth {
		t.Fatalf("heal must clamp at max, got %f", p.Health)
	}
}

func TestStaminaRegenerates(t *testing.T) {
	p := NewPlayer(0, 0)
	p.Stamina = 0

	// One simulated second of steps.
	for i := 0; i < simulationHz; i++ {
		p.Update(fixedStepMS, []Rect{{X: -100, Y: 64, W: 1000, H: 40}})
	}

	if p.Stamina < staminaRegenRate-1 || p.Stamina > staminaRegenRate+1 {
		t.Fatalf("expected roughly %f stamina after 1s, got %f", float64(staminaRegenRate), p.Stamina)
	}
}

func TestUsePowerCooldownAndStamina(t *testing.T) {
	p := NewPlayer(0, 0)
	p.Era = EraPrehistoric

	if !p.UsePower() {
		t.Fatal("power should fire when ready")
	}
	if p.VY != slamLaunchSpeed {
		t.Fatalf("prehistoric power should launch upward, vy %f", p.VY)
	}
	if p.PowerCooldownMS != eraTable[EraPrehistoric].PowerCooldownMS {
		t.Fatalf("cooldown not armed: %f", p.PowerCooldownMS)
	}
	if p.UsePower() {
		t.Fatal("power must respect the cooldown")
	}

	p.PowerCooldownMS = 0
	p.Stamina = powerStaminaCost - 1
	if p.UsePower() {
		t.Fatal("power must respect the stamina cost")
	}
}

func TestMedievalShieldBlocksDamage(t *testing.T) {
	p := NewPlayer(0, 0)
	p.Era = EraMedieval

	if !p.UsePower() {
		t.Fatal("shield should activate")
	}
	if dealt := p.TakeDamage(30); dealt != 0 {
		t.Fatalf("shield should absorb the hit, dealt %f", dealt)
	}
	if p.Health != p.MaxHealth {
		t.Fatalf("health changed behind the shield: %f", p.Health)
	}

	// Let the shield run out.
	for i := 0; i < simulationHz*2; i++ {
		p.Update(fixedStepMS, nil)
	}
	if p.ShieldActive() {
		t.Fatal("shield should have expired")
	}
	if dealt := p.TakeDamage(30); dealt != 30 {
		t.Fatalf("expired shield should not absorb damage, dealt %f", dealt)
	}
}

func TestFuturisticRewindRestoresPosition(t *testing.T) {
	floor := []Rect{{X: -1000, Y: 164, W: 4000, H: 40}}
	p := NewPlayer(100, 100)
	p.Era = EraFuturistic

	p.Update(fixedStepMS, floor)
	startX := p.X

	p.VX = playerSpeed
	for i := 0; i < rewindWindow; i++ {
		p.Update(fixedStepMS, floor)
	}
	if p.X == startX {
		t.Fatal("player never moved")
	}

	if !p.UsePower() {
		t.Fatal("rewind should fire")
	}
	if p.X >= startX+playerSpeed*fixedStepMS/1000.0*2 {
		t.Fatalf("rewind should move the player back toward %f, at %f", startX, p.X)
	}
	if p.VX != 0 || p.VY != 0 {
		t.Fatalf("rewind should zero velocity, got (%f, %f)", p.VX, p.VY)
	}
}

func TestSwitchEraResetsPowerCooldown(t *testing.T) {
	p := NewPlayer(0, 0)
	p.Era = EraMedieval
	p.UsePower()
	if p.PowerCooldownMS == 0 {
		t.Fatal("cooldown should be armed")
	}

	p.SwitchEra(EraFuturistic)
	if p.Era != EraFuturistic {
		t.Fatalf("era not switched: %v", p.Era)
	}
	if p.PowerCooldownMS != 0 {
		t.Fatalf("switching eras must reset the power cooldown, got %f", p.PowerCooldownMS)
	}
}
