package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Draw renders the active mode. Bodies are drawn at positions interpolated
// between the previous and current step so rendering stays smooth at any
// refresh rate.
func (g *Game) Draw(screen *ebiten.Image, interpolation float64) {
	g.handlers[g.mode].draw(screen, interpolation)
}

func fillRect(screen *ebiten.Image, r Rect, clr color.Color) {
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), clr, false)
}

func (s *menuState) draw(screen *ebiten.Image, _ float64) {
	screen.Fill(color.RGBA{R: 20, G: 20, B: 30, A: 255})

	title := color.RGBA{R: 255, G: 255, B: 255, A: uint8(s.titleAlpha)}
	vector.DrawFilledRect(screen, WindowWidth/2-220, 140, 440, 6, title, false)
	ebitenutil.DebugPrintAt(screen, "CHRONOSTA", WindowWidth/2-36, 110)

	for i, option := range s.options {
		marker := "  "
		if i == s.selected {
			marker = "> "
		}
		ebitenutil.DebugPrintAt(screen, marker+option, WindowWidth/2-60, 300+i*40)
	}
	ebitenutil.DebugPrintAt(screen, "arrows: select   enter: start", WindowWidth/2-110, 640)
}

func (s *playingState) draw(screen *ebiten.Image, interpolation float64) {
	w := s.world
	screen.Fill(w.Level.Background)

	wallColor := color.RGBA{R: 90, G: 90, B: 100, A: 255}
	for _, wall := range w.Level.Walls {
		fillRect(screen, wall, wallColor)
	}
	fillRect(screen, w.Level.Exit, color.RGBA{R: 60, G: 180, B: 75, A: 255})

	for _, enemy := range w.Enemies {
		x := lerp(enemy.PrevX, enemy.X, interpolation)
		y := lerp(enemy.PrevY, enemy.Y, interpolation)
		fillRect(screen, Rect{X: x, Y: y, W: enemy.W, H: enemy.H}, eraTable[enemy.Era].Color)
	}

	for _, proj := range w.Projectiles {
		fillRect(screen, proj.Rect(), color.RGBA{R: 255, G: 220, B: 80, A: 255})
	}

	player := w.Player
	px := lerp(player.PrevX, player.X, interpolation)
	py := lerp(player.PrevY, player.Y, interpolation)
	fillRect(screen, Rect{X: px, Y: py, W: player.W, H: player.H}, color.RGBA{R: 240, G: 240, B: 240, A: 255})
	if player.ShieldActive() {
		shield := Rect{X: px - 6, Y: py - 6, W: player.W + 12, H: player.H + 12}
		fillRect(screen, shield, color.RGBA{R: 120, G: 160, B: 255, A: 90})
	}

	s.drawHUD(screen)
}

func (s *playingState) drawHUD(screen *ebiten.Image) {
	player := s.world.Player

	// Health and stamina bars.
	fillRect(screen, Rect{X: 20, Y: 20, W: 200, H: 16}, color.RGBA{R: 60, G: 20, B: 20, A: 255})
	fillRect(screen, Rect{X: 20, Y: 20, W: 200 * player.Health / player.MaxHealth, H: 16}, color.RGBA{R: 200, G: 50, B: 50, A: 255})
	fillRect(screen, Rect{X: 20, Y: 42, W: 200, H: 10}, color.RGBA{R: 20, G: 40, B: 20, A: 255})
	fillRect(screen, Rect{X: 20, Y: 42, W: 200 * player.Stamina / player.MaxStamina, H: 10}, color.RGBA{R: 80, G: 200, B: 80, A: 255})

	tc := s.g.timectrl
	status := fmt.Sprintf("era: %s   level: %s", tc.CurrentEra(), s.world.Level.Name)
	if tc.SlowMotionActive() {
		status += "   [slow motion]"
	}
	if player.PowerCooldownMS > 0 {
		status += fmt.Sprintf("   power in %.1fs", player.PowerCooldownMS/1000)
	}
	ebitenutil.DebugPrintAt(screen, status, 20, 60)
}

func (s *pausedState) draw(screen *ebiten.Image, interpolation float64) {
	s.g.playing.draw(screen, interpolation)

	fillRect(screen, Rect{W: WindowWidth, H: WindowHeight}, color.RGBA{A: uint8(s.overlayAlpha)})
	ebitenutil.DebugPrintAt(screen, "PAUSED", WindowWidth/2-24, 240)
	for i, option := range s.options {
		marker := "  "
		if i == s.selected {
			marker = "> "
		}
		ebitenutil.DebugPrintAt(screen, marker+option, WindowWidth/2-60, 320+i*40)
	}
}

func (s *transitionState) draw(screen *ebiten.Image, interpolation float64) {
	s.g.playing.draw(screen, interpolation)

	// Fade to black and back; progress maps straight to overlay alpha.
	alpha := uint8(255 * s.g.timectrl.TransitionProgress())
	fillRect(screen, Rect{W: WindowWidth, H: WindowHeight}, color.RGBA{A: alpha})
	ebitenutil.DebugPrintAt(screen, "entering the "+s.target.String()+" era", WindowWidth/2-80, WindowHeight/2)
}
