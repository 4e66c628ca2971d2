package game

import (
	"math/rand"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// State is the complete mutable state of one run.
// A play session owns exactly one State and replaces it on reset.
type State struct {
	Width  int
	Height int

	Snake     []core.Point // head first
	Direction core.Direction
	Pending   *core.Direction // at most one buffered turn

	Food      core.Point
	Obstacles map[core.Point]struct{}

	Score          int
	Status         Status
	StepsPerSecond float64
	Accumulator    float64 // seconds carried between frames
	Steps          uint64
	DeathReason    DeathReason

	MapMode    MapMode
	Difficulty Difficulty
	Obstacled  bool
	Rules      Rules
}

// NewState creates a fresh run: a three-cell snake centred on the board
// heading right, obstacles when enabled, and food on a free cell.
func NewState(cfg Config, setup Setup, rng *rand.Rand) *State {
	s := &State{}
	s.init(cfg, setup, rng)
	return s
}

// Reset rebuilds s in place as a fresh run with the same setup.
func Reset(s *State, cfg Config, rng *rand.Rand) {
	s.init(cfg, s.setup(), rng)
}

func (s *State) setup() Setup {
	return Setup{
		Difficulty: s.Difficulty,
		MapMode:    s.MapMode,
		Obstacles:  s.Obstacled,
		Rules:      s.Rules,
	}
}

func (s *State) init(cfg Config, setup Setup, rng *rand.Rand) {
	cx, cy := cfg.Width/2, cfg.Height/2

	*s = State{
		Width:  cfg.Width,
		Height: cfg.Height,
		Snake: []core.Point{
			{X: cx, Y: cy},
			{X: cx - 1, Y: cy},
			{X: cx - 2, Y: cy},
		},
		Direction:      core.DirRight,
		Obstacles:      make(map[core.Point]struct{}),
		Status:         StatusRunning,
		StepsPerSecond: setup.Rules.BaseStepsPerSecond,
		MapMode:        setup.MapMode,
		Difficulty:     setup.Difficulty,
		Obstacled:      setup.Obstacles,
		Rules:          setup.Rules,
	}

	if setup.Obstacles {
		s.Obstacles = GenerateObstacles(s, cfg.ObstacleCount, cfg.SafeRadius, rng)
	}

	food, ok := SpawnFood(s, rng)
	if !ok {
		s.gameOver(DeathBoardFull, nil)
		return
	}
	s.Food = food
}

// Head returns the head cell.
func (s *State) Head() core.Point {
	return s.Snake[0]
}

// Len returns the snake length.
func (s *State) Len() int {
	return len(s.Snake)
}

// Occupies reports whether the snake body covers p.
func (s *State) Occupies(p core.Point) bool {
	for _, seg := range s.Snake {
		if seg == p {
			return true
		}
	}
	return false
}

// HasObstacle reports whether p is an obstacle cell.
func (s *State) HasObstacle(p core.Point) bool {
	_, ok := s.Obstacles[p]
	return ok
}

// OccupiedCells returns snake, obstacles and food as a set.
func (s *State) OccupiedCells() map[core.Point]struct{} {
	occupied := make(map[core.Point]struct{}, len(s.Snake)+len(s.Obstacles)+1)
	for _, seg := range s.Snake {
		occupied[seg] = struct{}{}
	}
	for p := range s.Obstacles {
		occupied[p] = struct{}{}
	}
	if s.Food.In(s.Width, s.Height) {
		occupied[s.Food] = struct{}{}
	}
	return occupied
}

// QueueDirectionChange buffers a turn for the next step. It is ignored
// unless the run is Running, and rejected when dir reverses the current
// direction. A later call overwrites an unconsumed turn.
func QueueDirectionChange(s *State, dir core.Direction) {
	if s.Status != StatusRunning {
		return
	}
	if s.Direction.IsOpposite(dir) {
		return
	}
	d := dir
	s.Pending = &d
}

// TogglePause flips between Running and Paused. Game over is terminal.
func TogglePause(s *State) {
	switch s.Status {
	case StatusRunning:
		s.Status = StatusPaused
	case StatusPaused:
		s.Status = StatusRunning
	}
}

// Revive cancels a game over caused by a collision and resumes the run.
// The snake stays where it was before the fatal move.
func (s *State) Revive() bool {
	if s.Status != StatusGameOver || !s.DeathReason.Collision() {
		return false
	}
	s.Status = StatusRunning
	s.DeathReason = DeathNone
	return true
}
