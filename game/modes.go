package game

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"

	"chronosta/logging/gameplay"
)

// Mode identifies which handler set receives update/draw/input calls.
// Exactly one mode is active at a time.
type Mode uint8

const (
	ModeMenu Mode = iota
	ModePlaying
	ModePaused
	ModeEraTransition

	modeCount = 4
)

func (m Mode) String() string {
	switch m {
	case ModeMenu:
		return "menu"
	case ModePlaying:
		return "playing"
	case ModePaused:
		return "paused"
	case ModeEraTransition:
		return "era-transition"
	default:
		return "unknown"
	}
}

// modeHandlers is one entry in the enum-keyed dispatch table. The draw
// functions live in draw.go with the rest of the render code.
type modeHandlers struct {
	handleInput func(Action)
	update      func(stepMS float64)
	draw        func(screen *ebiten.Image, interpolation float64)
}

type menuState struct {
	g          *Game
	options    []string
	selected   int
	titleAlpha float64
	alphaDir   float64
}

func newMenuState(g *Game) *menuState {
	return &menuState{
		g:          g,
		options:    []string{"Tutorial", "Demo Level"},
		titleAlpha: 255,
		alphaDir:   -1,
	}
}

func (s *menuState) handleInput(action Action) {
	switch action {
	case ActionUp:
		s.selected = (s.selected + len(s.options) - 1) % len(s.options)
	case ActionDown:
		s.selected = (s.selected + 1) % len(s.options)
	case ActionConfirm:
		s.g.startGame(s.selected == 1)
	}
}

func (s *menuState) update(stepMS float64) {
	// Pulse the title between half and full alpha.
	s.titleAlpha += s.alphaDir * 128 * (stepMS / 1000.0)
	if s.titleAlpha <= 128 {
		s.titleAlpha = 128
		s.alphaDir = 1
	} else if s.titleAlpha >= 255 {
		s.titleAlpha = 255
		s.alphaDir = -1
	}
}

type playingState struct {
	g          *Game
	levels     []Level
	levelIndex int
	world      *World
}

func newPlayingState(g *Game) *playingState {
	s := &playingState{g: g, levels: Levels()}
	s.world = NewWorld(&s.levels[0], g.pub, g.Tick)
	return s
}

// resetRun re-synchronizes the world with the selected level and puts the
// player back at its spawn. Called when entering Playing from Menu.
func (s *playingState) resetRun() {
	level := &s.levels[s.levelIndex]
	s.world.LoadLevel(level)
	s.world.Player.Health = s.world.Player.MaxHealth
	s.world.Player.Stamina = s.world.Player.MaxStamina
}

func (s *playingState) handleInput(action Action) {
	switch action {
	case ActionPause:
		s.g.transitionTo(ModePaused)
	case ActionJump:
		s.world.Player.Jump()
	case ActionEraNext:
		s.g.beginEraTransition(s.world.Player.Era.Next())
	case ActionEraPrev:
		s.g.beginEraTransition(s.world.Player.Era.Prev())
	case ActionPower:
		s.world.UsePlayerPower()
	case ActionSlowMotion:
		s.g.startSlowMotion()
	}
}

func (s *playingState) update(stepMS float64) {
	player := s.world.Player
	switch {
	case s.g.held.Left && !s.g.held.Right:
		player.VX = -playerSpeed
	case s.g.held.Right && !s.g.held.Left:
		player.VX = playerSpeed
	default:
		player.VX = 0
	}

	s.world.Step(stepMS)

	if s.world.Level.Completed(s.world) {
		s.advanceLevel()
	}
}

func (s *playingState) advanceLevel() {
	if s.levelIndex >= len(s.levels)-1 {
		return
	}
	s.levelIndex++
	level := &s.levels[s.levelIndex]
	s.world.LoadLevel(level)
	gameplay.LevelAdvanced(context.Background(), s.g.pub, s.g.Tick(), gameplay.LevelAdvancedPayload{
		Index: s.levelIndex,
		Name:  level.Name,
	})
}

type pausedState struct {
	g            *Game
	options      []string
	selected     int
	overlayAlpha float64
}

func newPausedState(g *Game) *pausedState {
	return &pausedState{g: g, options: []string{"Resume", "Return to Menu"}}
}

func (s *pausedState) handleInput(action Action) {
	switch action {
	case ActionPause:
		s.g.transitionTo(ModePlaying)
	case ActionUp:
		s.selected = (s.selected + len(s.options) - 1) % len(s.options)
	case ActionDown:
		s.selected = (s.selected + 1) % len(s.options)
	case ActionConfirm:
		if s.selected == 0 {
			s.g.transitionTo(ModePlaying)
		} else {
			s.g.transitionTo(ModeMenu)
		}
	}
}

func (s *pausedState) update(stepMS float64) {
	// Fade the dim overlay in.
	if s.overlayAlpha < 128 {
		s.overlayAlpha = min(128, s.overlayAlpha+512*(stepMS/1000.0))
	}
}

type transitionState struct {
	g      *Game
	target Era
}

func newTransitionState(g *Game) *transitionState {
	return &transitionState{g: g}
}

func (s *transitionState) handleInput(Action) {
	// Input is ignored while the fade runs.
}

func (s *transitionState) update(stepMS float64) {
	// Gameplay is frozen during the fade: Playing's update is deliberately
	// not forwarded. The time controller advances the fade in Game.step.
}
