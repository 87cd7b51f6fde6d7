package game

import "image/color"

// EnemySpawn places one enemy of a given era.
type EnemySpawn struct {
	X, Y float64
	Era  Era
}

// Level is a static layout: spawn point, wall rectangles, enemy spawns, and
// a completion rule. Levels are compiled in; there is no level file format.
type Level struct {
	Name       string
	SpawnX     float64
	SpawnY     float64
	Walls      []Rect
	Spawns     []EnemySpawn
	Exit       Rect
	NeedsClear bool
	Background color.RGBA
}

// Completed reports whether the run may advance past this level.
func (l *Level) Completed(w *World) bool {
	if l.NeedsClear && !w.Cleared() {
		return false
	}
	return w.Player.Rect().Overlaps(l.Exit)
}

// Levels returns the tutorial sequence followed by the demo level. The
// returned slice is freshly built so runs never share layout state.
func Levels() []Level {
	return []Level{
		movementTutorial(),
		timeManipulationTutorial(),
		eraSwitchingTutorial(),
		powersTutorial(),
		demoLevel(),
	}
}

func borders() []Rect {
	return []Rect{
		{X: 0, Y: 680, W: 1280, H: 40}, // floor
		{X: 0, Y: 0, W: 20, H: 720},    // left wall
		{X: 1260, Y: 0, W: 20, H: 720}, // right wall
	}
}

func movementTutorial() Level {
	walls := borders()
	walls = append(walls,
		Rect{X: 400, Y: 550, W: 100, H: 20},
		Rect{X: 600, Y: 450, W: 100, H: 20},
	)
	return Level{
		Name:   "movement",
		SpawnX: 100, SpawnY: 600,
		Walls:      walls,
		Exit:       Rect{X: 1150, Y: 560, W: 110, H: 120},
		Background: color.RGBA{R: 50, G: 50, B: 50, A: 255},
	}
}

func timeManipulationTutorial() Level {
	walls := borders()
	walls = append(walls,
		Rect{X: 200, Y: 500, W: 100, H: 20},
		Rect{X: 900, Y: 500, W: 100, H: 20},
	)
	return Level{
		Name:   "time-manipulation",
		SpawnX: 100, SpawnY: 600,
		Walls: walls,
		Spawns: []EnemySpawn{
			{X: 600, Y: 630, Era: EraMedieval},
		},
		Exit:       Rect{X: 1150, Y: 560, W: 110, H: 120},
		Background: color.RGBA{R: 50, G: 50, B: 50, A: 255},
	}
}

func eraSwitchingTutorial() Level {
	walls := borders()
	walls = append(walls,
		Rect{X: 300, Y: 520, W: 160, H: 20},
		Rect{X: 700, Y: 420, W: 160, H: 20},
	)
	return Level{
		Name:   "era-switching",
		SpawnX: 100, SpawnY: 600,
		Walls: walls,
		Spawns: []EnemySpawn{
			{X: 500, Y: 620, Era: EraPrehistoric},
		},
		Exit:       Rect{X: 1150, Y: 560, W: 110, H: 120},
		Background: color.RGBA{R: 50, G: 50, B: 50, A: 255},
	}
}

func powersTutorial() Level {
	walls := borders()
	walls = append(walls,
		Rect{X: 400, Y: 500, W: 480, H: 20},
	)
	return Level{
		Name:   "powers",
		SpawnX: 100, SpawnY: 600,
		Walls: walls,
		Spawns: []EnemySpawn{
			{X: 550, Y: 440, Era: EraPrehistoric},
			{X: 760, Y: 440, Era: EraFuturistic},
		},
		Exit:       Rect{X: 1150, Y: 560, W: 110, H: 120},
		NeedsClear: true,
		Background: color.RGBA{R: 50, G: 50, B: 50, A: 255},
	}
}

func demoLevel() Level {
	walls := borders()
	walls = append(walls,
		Rect{X: 300, Y: 500, W: 200, H: 20},
		Rect{X: 600, Y: 400, W: 200, H: 20},
		Rect{X: 900, Y: 300, W: 200, H: 20},
	)
	return Level{
		Name:   "demo",
		SpawnX: 100, SpawnY: 600,
		Walls: walls,
		Spawns: []EnemySpawn{
			{X: 400, Y: 450, Era: EraPrehistoric},
			{X: 700, Y: 350, Era: EraMedieval},
			{X: 1000, Y: 250, Era: EraFuturistic},
		},
		Exit:       Rect{X: 920, Y: 180, W: 160, H: 120},
		NeedsClear: true,
		Background: color.RGBA{R: 30, G: 30, B: 40, A: 255},
	}
}
