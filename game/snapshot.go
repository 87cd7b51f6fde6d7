package game

import (
	"fmt"
	"time"
)

// PlayerSnapshot is the serializable slice of player state.
type PlayerSnapshot struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	VX      float64 `json:"vx"`
	VY      float64 `json:"vy"`
	Health  float64 `json:"health"`
	Stamina float64 `json:"stamina"`
	Era     string  `json:"era"`
}

// Snapshot is everything needed to restore a run: the player, the level
// index, and the world era. Transient state (projectiles, enemy positions,
// fades, slow motion) is deliberately not captured; a restore re-enters the
// level fresh.
type Snapshot struct {
	Player     PlayerSnapshot `json:"player"`
	LevelIndex int            `json:"levelIndex"`
	Era        string         `json:"era"`
	SavedAt    time.Time      `json:"savedAt"`
}

// ExportState captures the current run.
func (g *Game) ExportState() Snapshot {
	p := g.playing.world.Player
	return Snapshot{
		Player: PlayerSnapshot{
			X:       p.X,
			Y:       p.Y,
			VX:      p.VX,
			VY:      p.VY,
			Health:  p.Health,
			Stamina: p.Stamina,
			Era:     p.Era.String(),
		},
		LevelIndex: g.playing.levelIndex,
		Era:        g.timectrl.CurrentEra().String(),
		SavedAt:    g.clock.Now(),
	}
}

// ImportState restores a run from a snapshot and enters Playing. It fails on
// out-of-range level indices or unknown era names, leaving the game untouched.
func (g *Game) ImportState(snap Snapshot) error {
	if snap.LevelIndex < 0 || snap.LevelIndex >= len(g.playing.levels) {
		return fmt.Errorf("level index %d out of range", snap.LevelIndex)
	}
	worldEra, err := ParseEra(snap.Era)
	if err != nil {
		return err
	}
	playerEra, err := ParseEra(snap.Player.Era)
	if err != nil {
		return err
	}

	// A fade that was in flight when the restore happened must not fire its
	// era flip against the restored state.
	g.timectrl.CancelTransition()

	g.playing.levelIndex = snap.LevelIndex
	g.playing.world.LoadLevel(&g.playing.levels[snap.LevelIndex])

	p := g.playing.world.Player
	p.X, p.Y = snap.Player.X, snap.Player.Y
	p.PrevX, p.PrevY = snap.Player.X, snap.Player.Y
	p.VX, p.VY = snap.Player.VX, snap.Player.VY
	p.Health = clampRange(snap.Player.Health, 0, p.MaxHealth)
	p.Stamina = clampRange(snap.Player.Stamina, 0, p.MaxStamina)
	p.SwitchEra(playerEra)

	g.timectrl.SetEra(worldEra)
	g.transitionTo(ModePlaying)
	return nil
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
