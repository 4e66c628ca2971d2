package game

import (
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/events"
)

type testMods struct {
	score int
	speed float64
	phase bool
}

func (m testMods) ScoreMultiplier() int     { return m.score }
func (m testMods) SpeedMultiplier() float64 { return m.speed }
func (m testMods) PhaseActive() bool        { return m.phase }

var phaseMods = testMods{score: 1, speed: 1, phase: true}

// line builds a horizontal snake with its head at (x,y) trailing left.
func line(x, y, n int) []core.Point {
	out := make([]core.Point, n)
	for i := range n {
		out[i] = core.Point{X: x - i, Y: y}
	}
	return out
}

// normalSetup is normal difficulty on a bounded board without obstacles.
func normalSetup() Setup {
	return Setup{
		Difficulty: DifficultyNormal,
		MapMode:    MapBounded,
		Rules:      DefaultRules(DifficultyNormal),
	}
}

func testState(w, h int, snake []core.Point, dir core.Direction, food core.Point) *State {
	return &State{
		Width:          w,
		Height:         h,
		Snake:          snake,
		Direction:      dir,
		Food:           food,
		Obstacles:      make(map[core.Point]struct{}),
		Status:         StatusRunning,
		StepsPerSecond: 8,
		MapMode:        MapBounded,
		Difficulty:     DifficultyNormal,
		Rules:          DefaultRules(DifficultyNormal),
	}
}

func types(evs []events.Event) []events.Type {
	out := make([]events.Type, len(evs))
	for i, ev := range evs {
		out[i] = ev.Type
	}
	return out
}

func TestNewState(t *testing.T) {
	cfg := DefaultConfig()
	s := NewState(cfg, normalSetup(), rand.New(rand.NewSource(1)))

	if s.Len() != 3 {
		t.Fatalf("snake length = %d, expected 3", s.Len())
	}
	if want := (core.Point{X: 20, Y: 10}); s.Head() != want {
		t.Errorf("head = %v, expected %v", s.Head(), want)
	}
	if s.Direction != core.DirRight {
		t.Errorf("direction = %v, expected right", s.Direction)
	}
	if s.Status != StatusRunning {
		t.Errorf("status = %v, expected running", s.Status)
	}
	if s.StepsPerSecond != 8 {
		t.Errorf("StepsPerSecond = %v, expected 8", s.StepsPerSecond)
	}
	if s.Occupies(s.Food) || !s.Food.In(cfg.Width, cfg.Height) {
		t.Errorf("food %v must be a free board cell", s.Food)
	}
	if len(s.Obstacles) != 0 {
		t.Errorf("obstacles disabled but got %d", len(s.Obstacles))
	}
}

func TestNewStateWithObstacles(t *testing.T) {
	cfg := DefaultConfig()
	setup := normalSetup()
	setup.Obstacles = true
	s := NewState(cfg, setup, rand.New(rand.NewSource(7)))

	if len(s.Obstacles) != cfg.ObstacleCount {
		t.Fatalf("obstacles = %d, expected %d", len(s.Obstacles), cfg.ObstacleCount)
	}
	if s.HasObstacle(s.Food) {
		t.Error("food spawned on an obstacle")
	}
}

func TestQueueDirectionChangeRejectsReverse(t *testing.T) {
	for _, current := range core.Directions {
		for _, next := range core.Directions {
			s := testState(10, 10, line(5, 5, 3), current, core.Point{X: 0, Y: 0})
			QueueDirectionChange(s, next)

			if next == current.Opposite() {
				if s.Pending != nil {
					t.Errorf("current=%v next=%v: reverse turn was queued", current, next)
				}
				continue
			}
			if s.Pending == nil || *s.Pending != next {
				t.Errorf("current=%v next=%v: pending = %v", current, next, s.Pending)
			}
		}
	}
}

func TestQueueDirectionChangeOverwritesAndRequiresRunning(t *testing.T) {
	s := testState(10, 10, line(5, 5, 3), core.DirRight, core.Point{})
	QueueDirectionChange(s, core.DirUp)
	QueueDirectionChange(s, core.DirDown)
	if s.Pending == nil || *s.Pending != core.DirDown {
		t.Fatalf("pending = %v, expected down", s.Pending)
	}

	s.Pending = nil
	s.Status = StatusPaused
	QueueDirectionChange(s, core.DirUp)
	if s.Pending != nil {
		t.Error("turn queued while paused")
	}
}

func TestTogglePause(t *testing.T) {
	s := testState(10, 10, line(5, 5, 3), core.DirRight, core.Point{})
	TogglePause(s)
	if s.Status != StatusPaused {
		t.Fatalf("status = %v, expected paused", s.Status)
	}
	TogglePause(s)
	if s.Status != StatusRunning {
		t.Fatalf("status = %v, expected running", s.Status)
	}
	s.Status = StatusGameOver
	TogglePause(s)
	if s.Status != StatusGameOver {
		t.Error("game over must not be toggled")
	}
}

func TestStepMovesWithoutGrowth(t *testing.T) {
	s := testState(10, 10, line(5, 5, 3), core.DirRight, core.Point{X: 0, Y: 0})
	bus := events.NewBus()

	AdvanceOneStep(s, DefaultConfig(), rand.New(rand.NewSource(1)), nil, bus)

	if want := line(6, 5, 3); !reflect.DeepEqual(s.Snake, want) {
		t.Errorf("snake = %v, expected %v", s.Snake, want)
	}
	if s.Steps != 1 {
		t.Errorf("Steps = %d, expected 1", s.Steps)
	}
	got := bus.Drain()
	if len(got) != 1 || got[0].Type != events.StepAdvanced {
		t.Fatalf("events = %v, expected [step_advanced]", types(got))
	}
	if got[0].Int("head_x", -1) != 6 || got[0].Int("length", -1) != 3 {
		t.Errorf("payload = %v", got[0].Payload)
	}
}

func TestStepGrowsOnlyOnFood(t *testing.T) {
	s := testState(10, 10, line(5, 5, 3), core.DirRight, core.Point{X: 6, Y: 5})
	bus := events.NewBus()
	mods := testMods{score: 2, speed: 1}

	AdvanceOneStep(s, DefaultConfig(), rand.New(rand.NewSource(3)), mods, bus)

	if s.Len() != 4 {
		t.Fatalf("length = %d, expected 4", s.Len())
	}
	if s.Score != 2 {
		t.Errorf("score = %d, expected 2 (1 per food x2)", s.Score)
	}
	if math.Abs(s.StepsPerSecond-8.35) > 1e-9 {
		t.Errorf("StepsPerSecond = %v, expected 8.35", s.StepsPerSecond)
	}
	if s.Occupies(s.Food) {
		t.Errorf("respawned food %v lies on the snake", s.Food)
	}

	got := bus.Drain()
	if want := []events.Type{events.FoodEaten, events.StepAdvanced}; !reflect.DeepEqual(types(got), want) {
		t.Fatalf("events = %v, expected %v", types(got), want)
	}
	food := got[0]
	if food.Int("score", -1) != 2 || food.Int("multiplier", -1) != 2 {
		t.Errorf("food payload = %v", food.Payload)
	}

	// The following step, away from food, keeps the length.
	s.Food = core.Point{X: 0, Y: 0}
	AdvanceOneStep(s, DefaultConfig(), rand.New(rand.NewSource(3)), nil, bus)
	if s.Len() != 4 {
		t.Errorf("length changed without food: %d", s.Len())
	}
}

func TestSpeedCappedAtMax(t *testing.T) {
	s := testState(10, 10, line(5, 5, 3), core.DirRight, core.Point{X: 6, Y: 5})
	s.StepsPerSecond = s.Rules.MaxStepsPerSecond - 0.1

	AdvanceOneStep(s, DefaultConfig(), rand.New(rand.NewSource(1)), nil, nil)

	if s.StepsPerSecond != s.Rules.MaxStepsPerSecond {
		t.Errorf("StepsPerSecond = %v, expected cap %v", s.StepsPerSecond, s.Rules.MaxStepsPerSecond)
	}
}

func TestWallDeathVersusWrap(t *testing.T) {
	tests := []struct {
		name    string
		head    core.Point
		dir     core.Direction
		wrapped core.Point
	}{
		{"right edge", core.Point{X: 9, Y: 4}, core.DirRight, core.Point{X: 0, Y: 4}},
		{"left edge", core.Point{X: 0, Y: 4}, core.DirLeft, core.Point{X: 9, Y: 4}},
		{"top edge", core.Point{X: 4, Y: 0}, core.DirUp, core.Point{X: 4, Y: 9}},
		{"bottom edge", core.Point{X: 4, Y: 9}, core.DirDown, core.Point{X: 4, Y: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tail := tt.head.Add(tt.dir.Opposite().Vector())
			food := core.Point{X: 2, Y: 2}

			bounded := testState(10, 10, []core.Point{tt.head, tail}, tt.dir, food)
			bus := events.NewBus()
			AdvanceOneStep(bounded, DefaultConfig(), rand.New(rand.NewSource(1)), nil, bus)
			if bounded.Status != StatusGameOver || bounded.DeathReason != DeathWall {
				t.Fatalf("bounded: status=%v reason=%q", bounded.Status, bounded.DeathReason)
			}
			got := bus.Drain()
			if len(got) != 1 || got[0].Type != events.PlayerDied || got[0].String("reason") != "wall" {
				t.Errorf("bounded events = %v", got)
			}

			wrap := testState(10, 10, []core.Point{tt.head, tail}, tt.dir, food)
			wrap.MapMode = MapWrap
			AdvanceOneStep(wrap, DefaultConfig(), rand.New(rand.NewSource(1)), nil, nil)
			if wrap.Status != StatusRunning {
				t.Fatalf("wrap: status = %v", wrap.Status)
			}
			if wrap.Head() != tt.wrapped {
				t.Errorf("wrap: head = %v, expected %v", wrap.Head(), tt.wrapped)
			}
		})
	}
}

func TestPhaseWrapsBoundedWall(t *testing.T) {
	s := testState(10, 10, line(9, 3, 3), core.DirRight, core.Point{X: 5, Y: 5})
	AdvanceOneStep(s, DefaultConfig(), rand.New(rand.NewSource(1)), phaseMods, nil)

	if s.Status != StatusRunning {
		t.Fatalf("status = %v, expected running", s.Status)
	}
	if want := (core.Point{X: 0, Y: 3}); s.Head() != want {
		t.Errorf("head = %v, expected %v", s.Head(), want)
	}
}

func TestObstacleDeathAndPhase(t *testing.T) {
	obstacle := core.Point{X: 6, Y: 5}

	s := testState(10, 10, line(5, 5, 3), core.DirRight, core.Point{X: 0, Y: 0})
	s.Obstacles[obstacle] = struct{}{}
	AdvanceOneStep(s, DefaultConfig(), rand.New(rand.NewSource(1)), nil, nil)
	if s.Status != StatusGameOver || s.DeathReason != DeathObstacle {
		t.Fatalf("status=%v reason=%q, expected obstacle death", s.Status, s.DeathReason)
	}

	p := testState(10, 10, line(5, 5, 3), core.DirRight, core.Point{X: 0, Y: 0})
	p.Obstacles[obstacle] = struct{}{}
	AdvanceOneStep(p, DefaultConfig(), rand.New(rand.NewSource(1)), phaseMods, nil)
	if p.Status != StatusRunning || p.Head() != obstacle {
		t.Errorf("phase: status=%v head=%v, expected running on %v", p.Status, p.Head(), obstacle)
	}
}

// coiled returns a snake whose head moving Down hits its own body.
func coiled() []core.Point {
	return []core.Point{
		{X: 5, Y: 5}, {X: 6, Y: 5}, {X: 6, Y: 6}, {X: 5, Y: 6}, {X: 4, Y: 6}, {X: 4, Y: 7},
	}
}

func TestSelfCollisionAndPhase(t *testing.T) {
	s := testState(10, 10, coiled(), core.DirLeft, core.Point{X: 0, Y: 0})
	s.Pending = ptr(core.DirDown)
	AdvanceOneStep(s, DefaultConfig(), rand.New(rand.NewSource(1)), nil, nil)
	if s.Status != StatusGameOver || s.DeathReason != DeathSelfCollision {
		t.Fatalf("status=%v reason=%q, expected self collision", s.Status, s.DeathReason)
	}

	p := testState(10, 10, coiled(), core.DirLeft, core.Point{X: 0, Y: 0})
	p.Pending = ptr(core.DirDown)
	AdvanceOneStep(p, DefaultConfig(), rand.New(rand.NewSource(1)), phaseMods, nil)
	if p.Status != StatusRunning {
		t.Fatalf("phase: status = %v", p.Status)
	}
	if want := (core.Point{X: 5, Y: 6}); p.Head() != want {
		t.Errorf("phase: head = %v, expected %v", p.Head(), want)
	}
}

func TestMovingIntoVacatingTail(t *testing.T) {
	// A 2x2 ring: the head chases the tail cell, which is legal.
	snake := []core.Point{{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: 0, Y: 0}}
	s := testState(10, 10, snake, core.DirUp, core.Point{X: 8, Y: 8})
	s.Pending = ptr(core.DirLeft)

	AdvanceOneStep(s, DefaultConfig(), rand.New(rand.NewSource(1)), nil, nil)

	if s.Status != StatusRunning {
		t.Fatalf("status=%v reason=%q, expected running", s.Status, s.DeathReason)
	}
	if want := (core.Point{X: 0, Y: 0}); s.Head() != want {
		t.Errorf("head = %v, expected %v", s.Head(), want)
	}
}

func TestTailCellBlocksWhenGrowing(t *testing.T) {
	// Food on the tail cell: the tail stays, so the move is fatal.
	snake := []core.Point{{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: 0, Y: 0}}
	s := testState(10, 10, snake, core.DirUp, core.Point{X: 0, Y: 0})
	s.Pending = ptr(core.DirLeft)

	AdvanceOneStep(s, DefaultConfig(), rand.New(rand.NewSource(1)), nil, nil)

	if s.DeathReason != DeathSelfCollision {
		t.Errorf("reason = %q, expected self_collision", s.DeathReason)
	}
}

func TestDeathPriorityObstacleBeforeSelf(t *testing.T) {
	s := testState(10, 10, coiled(), core.DirLeft, core.Point{X: 0, Y: 0})
	s.Obstacles[core.Point{X: 5, Y: 6}] = struct{}{}
	s.Pending = ptr(core.DirDown)

	AdvanceOneStep(s, DefaultConfig(), rand.New(rand.NewSource(1)), nil, nil)

	if s.DeathReason != DeathObstacle {
		t.Errorf("reason = %q, expected obstacle", s.DeathReason)
	}
}

func TestReversePendingIgnoredAtCommit(t *testing.T) {
	s := testState(10, 10, line(5, 5, 3), core.DirRight, core.Point{X: 0, Y: 0})
	s.Pending = ptr(core.DirLeft)

	AdvanceOneStep(s, DefaultConfig(), rand.New(rand.NewSource(1)), nil, nil)

	if s.Direction != core.DirRight || s.Pending != nil {
		t.Errorf("direction=%v pending=%v", s.Direction, s.Pending)
	}
	if s.Status != StatusRunning {
		t.Errorf("status = %v", s.Status)
	}
}

func TestBoardFullEndsRun(t *testing.T) {
	s := testState(3, 1, []core.Point{{X: 1, Y: 0}, {X: 0, Y: 0}}, core.DirRight, core.Point{X: 2, Y: 0})
	bus := events.NewBus()

	AdvanceOneStep(s, DefaultConfig(), rand.New(rand.NewSource(1)), nil, bus)

	if s.Status != StatusGameOver || s.DeathReason != DeathBoardFull {
		t.Fatalf("status=%v reason=%q, expected board_full", s.Status, s.DeathReason)
	}
	if s.Len() != 3 || s.Score != 1 {
		t.Errorf("length=%d score=%d, expected 3/1", s.Len(), s.Score)
	}
	if want := []events.Type{events.FoodEaten, events.PlayerDied}; !reflect.DeepEqual(types(bus.Drain()), want) {
		t.Errorf("events mismatch, expected %v", want)
	}
	if s.Revive() {
		t.Error("board_full must not be revivable")
	}
}

func TestRevive(t *testing.T) {
	s := testState(10, 10, line(9, 5, 3), core.DirRight, core.Point{X: 0, Y: 0})
	AdvanceOneStep(s, DefaultConfig(), rand.New(rand.NewSource(1)), nil, nil)
	if !s.Revive() {
		t.Fatal("wall death should be revivable")
	}
	if s.Status != StatusRunning || s.DeathReason != DeathNone {
		t.Errorf("status=%v reason=%q after revive", s.Status, s.DeathReason)
	}
	if s.Head() != (core.Point{X: 9, Y: 5}) {
		t.Errorf("head moved on fatal step: %v", s.Head())
	}
}

func TestStepIgnoredWhenNotRunning(t *testing.T) {
	s := testState(10, 10, line(5, 5, 3), core.DirRight, core.Point{X: 0, Y: 0})
	s.Status = StatusPaused
	before := s.Snapshot()
	AdvanceOneStep(s, DefaultConfig(), rand.New(rand.NewSource(1)), nil, nil)
	if !reflect.DeepEqual(before, s.Snapshot()) {
		t.Error("paused state changed")
	}
}

func TestGenerateObstacles(t *testing.T) {
	cfg := DefaultConfig()
	s := testState(cfg.Width, cfg.Height, line(20, 10, 3), core.DirRight, core.Point{X: -1, Y: -1})
	obs := GenerateObstacles(s, 30, 3, rand.New(rand.NewSource(99)))

	if len(obs) != 30 {
		t.Fatalf("got %d obstacles, expected 30", len(obs))
	}
	head := s.Head()
	for p := range obs {
		if s.Occupies(p) {
			t.Errorf("obstacle %v on snake", p)
		}
		if core.Abs(p.X-head.X) <= 3 && core.Abs(p.Y-head.Y) <= 3 {
			t.Errorf("obstacle %v inside safe zone", p)
		}
		if p.Y == head.Y && p.X > head.X {
			t.Errorf("obstacle %v in the snake's path", p)
		}
		if !p.In(cfg.Width, cfg.Height) {
			t.Errorf("obstacle %v off the board", p)
		}
	}
}

func TestGenerateObstaclesPlacesAsManyAsFit(t *testing.T) {
	s := testState(8, 8, line(4, 4, 3), core.DirRight, core.Point{X: -1, Y: -1})
	obs := GenerateObstacles(s, 1000, 3, rand.New(rand.NewSource(5)))

	// Only row 0 and column 0 lie outside radius 3 of (4,4).
	if len(obs) == 0 || len(obs) >= 1000 {
		t.Fatalf("got %d obstacles", len(obs))
	}
	if len(obs) != len(FreeCells(s))-countSafe(s, 3) {
		t.Errorf("obstacles = %d, expected every candidate", len(obs))
	}
}

func countSafe(s *State, r int) int {
	head := s.Head()
	n := 0
	for _, p := range FreeCells(s) {
		inRadius := core.Abs(p.X-head.X) <= r && core.Abs(p.Y-head.Y) <= r
		ahead := p.Y == head.Y && p.X > head.X
		if inRadius || ahead {
			n++
		}
	}
	return n
}

func TestSpawnFoodUsesOnlyFreeCells(t *testing.T) {
	s := testState(3, 3, []core.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}, core.DirDown, core.Point{})
	s.Obstacles[core.Point{X: 0, Y: 1}] = struct{}{}
	rng := rand.New(rand.NewSource(11))

	for range 50 {
		p, ok := SpawnFood(s, rng)
		if !ok {
			t.Fatal("free cells remain but SpawnFood failed")
		}
		if s.Occupies(p) || s.HasObstacle(p) || !p.In(3, 3) {
			t.Fatalf("food at %v is not free", p)
		}
	}
}

func TestDeterminism(t *testing.T) {
	cfg := DefaultConfig()
	setup := normalSetup()
	setup.Obstacles = true
	setup.MapMode = MapWrap

	run := func() Snapshot {
		rng := rand.New(rand.NewSource(12345))
		s := NewState(cfg, setup, rng)
		turns := map[int]core.Direction{10: core.DirDown, 25: core.DirLeft, 40: core.DirUp, 60: core.DirRight}
		for frame := range 120 {
			if d, ok := turns[frame]; ok {
				QueueDirectionChange(s, d)
			}
			AdvanceSimulation(s, cfg, 1.0/60.0, rng, nil, nil)
		}
		return s.Snapshot()
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed produced different runs:\n%+v\n%+v", a, b)
	}
}

func ptr(d core.Direction) *core.Direction { return &d }
