package app

import (
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"chronosta/game"
	"chronosta/internal/diag"
	"chronosta/internal/save"
	"chronosta/internal/telemetry"
)

const (
	quickSaveSlot    = 0
	diagPublishEvery = 30 // rendered frames between diagnostics pushes
)

// shell is the ebiten adapter around the simulation. It owns frame timing,
// key mapping, and the save hooks; everything else lives in the game package.
type shell struct {
	game   *game.Game
	saves  *save.Manager
	diag   *diag.Server
	logger telemetry.Logger

	lastFrame  time.Time
	interp     float64
	frameCount int
	lastLevel  int
}

func newShell(g *game.Game, saves *save.Manager, diagServer *diag.Server, logger telemetry.Logger) *shell {
	return &shell{
		game:      g,
		saves:     saves,
		diag:      diagServer,
		logger:    logger,
		lastLevel: g.LevelIndex(),
	}
}

// restoreSuspended resumes a quick-exit save if one was left behind.
func (s *shell) restoreSuspended() {
	snap, ok, err := s.saves.Resume()
	if err != nil {
		s.logger.Printf("suspend resume failed: %v", err)
		return
	}
	if !ok {
		return
	}
	if err := s.game.ImportState(snap); err != nil {
		s.logger.Printf("suspend restore rejected: %v", err)
	}
}

func (s *shell) Update() error {
	if ebiten.IsWindowBeingClosed() {
		s.suspend()
		return ebiten.Termination
	}

	now := time.Now()
	frameMS := game.FixedStepMS()
	if !s.lastFrame.IsZero() {
		frameMS = float64(now.Sub(s.lastFrame).Microseconds()) / 1000.0
	}
	s.lastFrame = now

	s.handleKeys()

	_, interp := s.game.AdvanceFrame(frameMS)
	s.interp = interp

	if idx := s.game.LevelIndex(); idx != s.lastLevel {
		s.lastLevel = idx
		if err := s.saves.Checkpoint(s.game.ExportState()); err != nil {
			s.logger.Printf("checkpoint failed: %v", err)
		}
	}

	if s.diag != nil {
		s.frameCount++
		if s.frameCount%diagPublishEvery == 0 {
			s.diag.Publish(s.game.DiagnosticsSnapshot())
		}
	}
	return nil
}

func (s *shell) handleKeys() {
	for key, action := range keyActions {
		if inpututil.IsKeyJustPressed(key) {
			s.game.HandleInput(action)
		}
	}

	s.game.SetHeld(game.Held{
		Left:  ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right: ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
	})

	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		if err := s.saves.Save(quickSaveSlot, s.game.ExportState()); err != nil {
			s.logger.Printf("quicksave failed: %v", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		snap, err := s.saves.Load(quickSaveSlot)
		if err != nil {
			if !errors.Is(err, save.ErrNoSave) {
				s.logger.Printf("quickload failed: %v", err)
			}
			return
		}
		if err := s.game.ImportState(snap); err != nil {
			s.logger.Printf("quickload rejected: %v", err)
		}
	}
}

var keyActions = map[ebiten.Key]game.Action{
	ebiten.KeyEnter:     game.ActionConfirm,
	ebiten.KeyArrowUp:   game.ActionUp,
	ebiten.KeyArrowDown: game.ActionDown,
	ebiten.KeySpace:     game.ActionJump,
	ebiten.KeyEscape:    game.ActionPause,
	ebiten.KeyShiftLeft: game.ActionSlowMotion,
	ebiten.KeyE:         game.ActionEraNext,
	ebiten.KeyQ:         game.ActionEraPrev,
	ebiten.KeyZ:         game.ActionPower,
}

// suspend writes the quick-exit save when a run is in progress.
func (s *shell) suspend() {
	if s.game.Mode() == game.ModeMenu {
		return
	}
	if err := s.saves.Suspend(s.game.ExportState()); err != nil {
		s.logger.Printf("suspend save failed: %v", err)
	}
}

func (s *shell) Draw(screen *ebiten.Image) {
	s.game.Draw(screen, s.interp)
}

func (s *shell) Layout(_, _ int) (int, int) {
	return game.WindowWidth, game.WindowHeight
}
