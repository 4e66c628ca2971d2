package events

import "testing"

func TestBusEmitAndDrain(t *testing.T) {
	bus := NewBus()
	bus.Emit(New(StepAdvanced))

	got := bus.Drain()
	if len(got) != 1 {
		t.Fatalf("Drain() returned %d events, expected 1", len(got))
	}
	if got[0].Type != StepAdvanced {
		t.Errorf("Type = %v, expected %v", got[0].Type, StepAdvanced)
	}
	if again := bus.Drain(); len(again) != 0 {
		t.Errorf("second Drain() returned %d events, expected 0", len(again))
	}
}

func TestBusPreservesOrder(t *testing.T) {
	bus := NewBus()
	order := []Type{FoodEaten, StepAdvanced, StageAdvanced, PlayerDied, PowerupCollected}
	for _, typ := range order {
		bus.Emit(New(typ))
	}
	if bus.Len() != len(order) {
		t.Fatalf("Len() = %d, expected %d", bus.Len(), len(order))
	}

	got := bus.Drain()
	for i, ev := range got {
		if ev.Type != order[i] {
			t.Errorf("event %d = %v, expected %v", i, ev.Type, order[i])
		}
	}
	if bus.Len() != 0 {
		t.Errorf("Len() after drain = %d", bus.Len())
	}
}

func TestEventPayloadAccessors(t *testing.T) {
	ev := New(FoodEaten, "score", 3, "speed", 8.35, "reason", "wall", "dangling")

	if ev.Int("score", -1) != 3 {
		t.Errorf("Int(score) = %d", ev.Int("score", -1))
	}
	if ev.Float("speed", 0) != 8.35 {
		t.Errorf("Float(speed) = %v", ev.Float("speed", 0))
	}
	if ev.String("reason") != "wall" {
		t.Errorf("String(reason) = %q", ev.String("reason"))
	}
	if ev.Int("missing", 7) != 7 {
		t.Error("missing key should return default")
	}
	if _, ok := ev.Payload["dangling"]; ok {
		t.Error("dangling key without value should be dropped")
	}
}

func TestRouterDispatchesByType(t *testing.T) {
	bus := NewBus()
	router := NewRouter(bus)

	var food, died, shared int
	router.Register(HandlerFunc{Types: []Type{FoodEaten}, Fn: func(Event) { food++ }})
	router.Register(HandlerFunc{Types: []Type{PlayerDied, FoodEaten}, Fn: func(ev Event) {
		shared++
		if ev.Type == PlayerDied {
			died++
		}
	}})

	bus.Emit(New(FoodEaten))
	bus.Emit(New(PlayerDied))
	bus.Emit(New(StepAdvanced))

	if n := router.Dispatch(); n != 3 {
		t.Errorf("Dispatch() = %d, expected 3", n)
	}
	if food != 1 || died != 1 {
		t.Errorf("food=%d died=%d, expected 1/1", food, died)
	}
	if shared != 2 {
		t.Errorf("shared handler saw %d events, expected 2", shared)
	}
}

func TestRouterDeliversEventsEmittedDuringDispatch(t *testing.T) {
	bus := NewBus()
	router := NewRouter(bus)

	var seen []Type
	router.Register(HandlerFunc{Types: []Type{StepAdvanced, PowerupCollected}, Fn: func(ev Event) {
		seen = append(seen, ev.Type)
		if ev.Type == StepAdvanced {
			bus.Emit(New(PowerupCollected))
		}
	}})

	bus.Emit(New(StepAdvanced))
	router.Dispatch()

	if len(seen) != 2 || seen[1] != PowerupCollected {
		t.Errorf("seen = %v, expected [step_advanced powerup_collected]", seen)
	}
	if bus.Len() != 0 {
		t.Errorf("bus should be empty after dispatch, has %d", bus.Len())
	}
}

func TestRouterBoundsFeedbackLoops(t *testing.T) {
	bus := NewBus()
	router := NewRouter(bus)
	router.Register(HandlerFunc{Types: []Type{StepAdvanced}, Fn: func(Event) {
		bus.Emit(New(StepAdvanced))
	}})

	bus.Emit(New(StepAdvanced))
	if n := router.Dispatch(); n != maxDispatchPasses {
		t.Errorf("Dispatch() = %d, expected %d", n, maxDispatchPasses)
	}
}
