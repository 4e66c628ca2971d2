// Package events decouples the simulation from its reactions (audio,
// power-up bookkeeping, progression, persistence) through an owned FIFO
// queue that is drained once per frame.
package events

import "fmt"

// Type identifies the kind of a game event.
type Type int

const (
	StepAdvanced Type = iota
	FoodEaten
	PlayerDied
	StageAdvanced
	PowerupCollected
)

// String returns the snake_case wire name of the event type.
func (t Type) String() string {
	switch t {
	case StepAdvanced:
		return "step_advanced"
	case FoodEaten:
		return "food_eaten"
	case PlayerDied:
		return "player_died"
	case StageAdvanced:
		return "stage_advanced"
	case PowerupCollected:
		return "powerup_collected"
	default:
		return fmt.Sprintf("event(%d)", int(t))
	}
}

// Event is a tagged record with a free-form payload.
type Event struct {
	Type    Type
	Payload map[string]any
}

// New builds an event from alternating key/value pairs.
// A trailing key without a value is dropped.
func New(t Type, kv ...any) Event {
	ev := Event{Type: t, Payload: make(map[string]any, len(kv)/2)}
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		ev.Payload[key] = kv[i+1]
	}
	return ev
}

// Int returns an integer payload field, or def when missing or not numeric.
func (e Event) Int(key string, def int) int {
	switch v := e.Payload[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return def
	}
}

// Float returns a float payload field, or def when missing or not numeric.
func (e Event) Float(key string, def float64) float64 {
	switch v := e.Payload[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return def
	}
}

// String returns a string payload field, or "" when missing.
func (e Event) String(key string) string {
	if v, ok := e.Payload[key].(string); ok {
		return v
	}
	return ""
}

// Emitter accepts events. The simulation only ever sees this interface.
type Emitter interface {
	Emit(Event)
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(Event)

// Emit calls f(ev).
func (f EmitterFunc) Emit(ev Event) { f(ev) }

// Discard is an Emitter that drops everything.
var Discard Emitter = EmitterFunc(func(Event) {})
