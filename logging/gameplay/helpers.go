package gameplay

import (
	"context"

	"chronosta/logging"
)

const (
	// EventSlowMotionStarted is emitted when the player activates slow motion.
	EventSlowMotionStarted logging.EventType = "gameplay.slow_motion_started"
	// EventSlowMotionExpired is emitted when a slow-motion window runs out.
	EventSlowMotionExpired logging.EventType = "gameplay.slow_motion_expired"
	// EventEraTransitionStarted is emitted when an era fade begins.
	EventEraTransitionStarted logging.EventType = "gameplay.era_transition_started"
	// EventEraSwitched is emitted at the fade peak, when the era actually changes.
	EventEraSwitched logging.EventType = "gameplay.era_switched"
	// EventLevelAdvanced is emitted when the player clears a level.
	EventLevelAdvanced logging.EventType = "gameplay.level_advanced"
	// EventPlayerDamaged is emitted when the player loses health.
	EventPlayerDamaged logging.EventType = "gameplay.player_damaged"
)

// EraTransitionPayload captures the endpoints of an era fade.
type EraTransitionPayload struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func EraTransitionStarted(ctx context.Context, pub logging.Publisher, tick uint64, payload EraTransitionPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventEraTransitionStarted,
		Tick:     tick,
		Actor:    logging.EntityRef{ID: "player", Kind: logging.EntityKindPlayer},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryGameplay,
		Payload:  payload,
	})
}

func EraSwitched(ctx context.Context, pub logging.Publisher, tick uint64, payload EraTransitionPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventEraSwitched,
		Tick:     tick,
		Actor:    logging.EntityRef{ID: "player", Kind: logging.EntityKindPlayer},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryGameplay,
		Payload:  payload,
	})
}

// SlowMotionPayload captures the scale applied while slow motion is active.
type SlowMotionPayload struct {
	Scale      float64 `json:"scale"`
	DurationMS float64 `json:"durationMillis,omitempty"`
}

func SlowMotionStarted(ctx context.Context, pub logging.Publisher, tick uint64, payload SlowMotionPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventSlowMotionStarted,
		Tick:     tick,
		Actor:    logging.EntityRef{ID: "player", Kind: logging.EntityKindPlayer},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryGameplay,
		Payload:  payload,
	})
}

func SlowMotionExpired(ctx context.Context, pub logging.Publisher, tick uint64) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventSlowMotionExpired,
		Tick:     tick,
		Actor:    logging.EntityRef{ID: "player", Kind: logging.EntityKindPlayer},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryGameplay,
	})
}

// LevelAdvancedPayload records which level the player just entered.
type LevelAdvancedPayload struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

func LevelAdvanced(ctx context.Context, pub logging.Publisher, tick uint64, payload LevelAdvancedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventLevelAdvanced,
		Tick:     tick,
		Actor:    logging.EntityRef{ID: "world", Kind: logging.EntityKindWorld},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryGameplay,
		Payload:  payload,
	})
}

// PlayerDamagedPayload records a hit against the player.
type PlayerDamagedPayload struct {
	Amount    float64 `json:"amount"`
	Remaining float64 `json:"remaining"`
	Source    string  `json:"source"`
}

func PlayerDamaged(ctx context.Context, pub logging.Publisher, tick uint64, payload PlayerDamagedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventPlayerDamaged,
		Tick:     tick,
		Actor:    logging.EntityRef{ID: "player", Kind: logging.EntityKindPlayer},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryGameplay,
		Payload:  payload,
	})
}
