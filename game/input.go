package game

// Action is a discrete, edge-triggered input. The shell maps key presses to
// actions once per rendered frame; the mode machine decides what each action
// means in the current mode, dropping the rest.
type Action int

const (
	ActionNone Action = iota
	ActionConfirm
	ActionUp
	ActionDown
	ActionJump
	ActionPause
	ActionSlowMotion
	ActionEraNext
	ActionEraPrev
	ActionPower
)

// Held is the polled key state sampled once per rendered frame. Fixed steps
// read it as movement intent until the next sample.
type Held struct {
	Left  bool
	Right bool
}
