package game

import (
	"context"

	"chronosta/internal/telemetry"
	"chronosta/logging"
	"chronosta/logging/gameplay"
)

// Config carries the injectable dependencies. Zero values are usable: the
// system clock, a no-op publisher, and no-op metrics.
type Config struct {
	Clock     Clock
	Publisher logging.Publisher
	Metrics   telemetry.Metrics
}

// Game wires the scheduler, the time controller, and the mode machine
// together. Everything runs on the caller's goroutine; the simulation is
// single-threaded by construction.
type Game struct {
	clock    Clock
	sched    *Scheduler
	timectrl *TimeController
	pub      logging.Publisher
	metrics  telemetry.Metrics

	mode     Mode
	handlers [modeCount]modeHandlers

	menu       *menuState
	playing    *playingState
	paused     *pausedState
	transition *transitionState

	held Held
	tick uint64
}

func New(cfg Config) *Game {
	clock := cfg.Clock
	if clock == nil {
		clock = SystemClock()
	}
	pub := cfg.Publisher
	if pub == nil {
		pub = logging.NopPublisher()
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = telemetry.NopMetrics()
	}

	g := &Game{
		clock:    clock,
		sched:    NewScheduler(fixedStepMS, maxFrameMS),
		timectrl: NewTimeController(clock, EraMedieval),
		pub:      pub,
		metrics:  metrics,
		mode:     ModeMenu,
	}

	g.menu = newMenuState(g)
	g.playing = newPlayingState(g)
	g.paused = newPausedState(g)
	g.transition = newTransitionState(g)

	g.handlers = [modeCount]modeHandlers{
		ModeMenu:          {handleInput: g.menu.handleInput, update: g.menu.update, draw: g.menu.draw},
		ModePlaying:       {handleInput: g.playing.handleInput, update: g.playing.update, draw: g.playing.draw},
		ModePaused:        {handleInput: g.paused.handleInput, update: g.paused.update, draw: g.paused.draw},
		ModeEraTransition: {handleInput: g.transition.handleInput, update: g.transition.update, draw: g.transition.draw},
	}
	return g
}

// Tick is the current simulation step counter.
func (g *Game) Tick() uint64 {
	return g.tick
}

func (g *Game) Mode() Mode {
	return g.mode
}

func (g *Game) World() *World {
	return g.playing.world
}

func (g *Game) LevelIndex() int {
	return g.playing.levelIndex
}

func (g *Game) TimeController() *TimeController {
	return g.timectrl
}

// HandleInput dispatches one edge-triggered action to the active mode.
func (g *Game) HandleInput(action Action) {
	if action == ActionNone {
		return
	}
	g.handlers[g.mode].handleInput(action)
}

// SetHeld replaces the polled movement key state. The shell samples held keys
// once per rendered frame.
func (g *Game) SetHeld(held Held) {
	g.held = held
}

// AdvanceFrame feeds one rendered frame's wall-clock delta to the scheduler
// and runs the resulting fixed steps. It returns the number of steps taken
// and the interpolation factor for rendering.
func (g *Game) AdvanceFrame(frameMS float64) (int, float64) {
	g.metrics.Add(telemetry.CounterFrames, 1)
	if frameMS > maxFrameMS {
		g.metrics.Add(telemetry.CounterClampedFrames, 1)
	}

	steps := g.sched.Advance(frameMS)
	for i := 0; i < steps; i++ {
		g.step()
	}
	return steps, g.sched.Interpolation()
}

// step runs exactly one fixed simulation step: time-control edges first, then
// the active mode's update with the scaled step length.
func (g *Game) step() {
	g.tick++
	g.metrics.Add(telemetry.CounterSteps, 1)

	stepMS := g.sched.StepMS()
	update := g.timectrl.Update(stepMS)
	if update.SlowMotionExpired {
		gameplay.SlowMotionExpired(context.Background(), g.pub, g.tick)
	}
	if update.EraChanged {
		from := g.playing.world.Player.Era
		g.playing.world.Player.SwitchEra(update.Era)
		gameplay.EraSwitched(context.Background(), g.pub, g.tick, gameplay.EraTransitionPayload{
			From: from.String(),
			To:   update.Era.String(),
		})
	}
	if update.TransitionDone && g.mode == ModeEraTransition {
		g.transitionTo(ModePlaying)
	}

	scaled := stepMS * g.timectrl.TimeScale()
	g.handlers[g.mode].update(scaled)
}

// startSlowMotion arms slow motion through the time controller, emitting the
// start event on success. Failures (active window, cooldown) are silent.
func (g *Game) startSlowMotion() {
	if !g.timectrl.StartSlowMotion() {
		return
	}
	g.metrics.Add(telemetry.CounterSlowMotion, 1)
	gameplay.SlowMotionStarted(context.Background(), g.pub, g.tick, gameplay.SlowMotionPayload{
		Scale:      slowMotionFactor,
		DurationMS: float64(slowMotionDuration.Milliseconds()),
	})
}

// beginEraTransition starts the fade and hands control to the transition
// mode. Same-era and mid-fade requests are ignored.
func (g *Game) beginEraTransition(target Era) {
	if !g.timectrl.BeginTransition(target) {
		return
	}
	g.metrics.Add(telemetry.CounterEraTransitions, 1)
	g.transition.target = target
	gameplay.EraTransitionStarted(context.Background(), g.pub, g.tick, gameplay.EraTransitionPayload{
		From: g.timectrl.CurrentEra().String(),
		To:   target.String(),
	})
	g.transitionTo(ModeEraTransition)
}

// startGame enters Playing from the menu, either at the start of the tutorial
// sequence or straight at the demo level.
func (g *Game) startGame(demo bool) {
	g.playing.levelIndex = 0
	if demo {
		g.playing.levelIndex = len(g.playing.levels) - 1
	}
	g.playing.resetRun()
	g.transitionTo(ModePlaying)
}

func (g *Game) transitionTo(mode Mode) {
	if mode == g.mode {
		return
	}
	if mode == ModePaused {
		g.paused.selected = 0
		g.paused.overlayAlpha = 0
	}
	g.mode = mode
}

// Diagnostics is a point-in-time snapshot for the debug endpoint.
type Diagnostics struct {
	Tick               uint64  `json:"tick"`
	Mode               string  `json:"mode"`
	Era                string  `json:"era"`
	TimeScale          float64 `json:"timeScale"`
	SlowMotion         bool    `json:"slowMotion"`
	Transitioning      bool    `json:"transitioning"`
	TransitionProgress float64 `json:"transitionProgress"`
	LevelIndex         int     `json:"levelIndex"`
	LevelName          string  `json:"levelName"`
	PlayerX            float64 `json:"playerX"`
	PlayerY            float64 `json:"playerY"`
	PlayerHealth       float64 `json:"playerHealth"`
	Enemies            int     `json:"enemies"`
	Projectiles        int     `json:"projectiles"`
}

func (g *Game) DiagnosticsSnapshot() Diagnostics {
	w := g.playing.world
	return Diagnostics{
		Tick:               g.tick,
		Mode:               g.mode.String(),
		Era:                g.timectrl.CurrentEra().String(),
		TimeScale:          g.timectrl.TimeScale(),
		SlowMotion:         g.timectrl.SlowMotionActive(),
		Transitioning:      g.timectrl.Transitioning(),
		TransitionProgress: g.timectrl.TransitionProgress(),
		LevelIndex:         g.playing.levelIndex,
		LevelName:          w.Level.Name,
		PlayerX:            w.Player.X,
		PlayerY:            w.Player.Y,
		PlayerHealth:       w.Player.Health,
		Enemies:            len(w.Enemies),
		Projectiles:        len(w.Projectiles),
	}
}
