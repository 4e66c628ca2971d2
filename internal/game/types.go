// Package game holds the deterministic Snake simulation: the run state, the
// single-step movement and collision resolver, and the fixed-timestep
// scheduler that turns variable frame time into whole steps.
//
// Nothing in this package reads the clock or a global random source. Time
// arrives as a frame delta, randomness as an explicit *rand.Rand, and side
// effects leave through an events.Emitter.
package game

import "fmt"

// Status is the lifecycle state of a run.
type Status int

const (
	StatusRunning Status = iota
	StatusPaused
	StatusGameOver
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	case StatusGameOver:
		return "game_over"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// MapMode selects how the board edges behave.
type MapMode int

const (
	// MapBounded kills the snake when it leaves the board.
	MapBounded MapMode = iota
	// MapWrap folds the board into a torus.
	MapWrap
)

// MapModes lists every map mode in cycling order.
var MapModes = []MapMode{MapBounded, MapWrap}

func (m MapMode) String() string {
	switch m {
	case MapBounded:
		return "bounded"
	case MapWrap:
		return "wrap"
	default:
		return fmt.Sprintf("map_mode(%d)", int(m))
	}
}

// ParseMapMode converts a persisted name into a MapMode.
func ParseMapMode(s string) (MapMode, bool) {
	switch s {
	case "bounded":
		return MapBounded, true
	case "wrap":
		return MapWrap, true
	}
	return MapBounded, false
}

// Difficulty is a rules tier.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyNormal
	DifficultyHard
)

// Difficulties lists every tier in cycling order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyNormal, DifficultyHard}

func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyNormal:
		return "normal"
	case DifficultyHard:
		return "hard"
	default:
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
}

// ParseDifficulty converts a persisted name into a Difficulty.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch s {
	case "easy":
		return DifficultyEasy, true
	case "normal":
		return DifficultyNormal, true
	case "hard":
		return DifficultyHard, true
	}
	return DifficultyNormal, false
}

// DeathReason names the cause that ended a run.
type DeathReason string

const (
	DeathNone          DeathReason = ""
	DeathWall          DeathReason = "wall"
	DeathObstacle      DeathReason = "obstacle"
	DeathSelfCollision DeathReason = "self_collision"
	DeathBoardFull     DeathReason = "board_full"
)

// Collision reports whether the reason is a collision a shield may cancel.
func (r DeathReason) Collision() bool {
	switch r {
	case DeathWall, DeathObstacle, DeathSelfCollision:
		return true
	default:
		return false
	}
}

// Rules are the difficulty-derived constants of a run.
type Rules struct {
	BaseStepsPerSecond float64
	MaxStepsPerSecond  float64
	SpeedIncrement     float64
	ScorePerFood       int
}

// DefaultRules returns the built-in rules for a difficulty tier.
func DefaultRules(d Difficulty) Rules {
	switch d {
	case DifficultyEasy:
		return Rules{BaseStepsPerSecond: 6, MaxStepsPerSecond: 14, SpeedIncrement: 0.25, ScorePerFood: 1}
	case DifficultyHard:
		return Rules{BaseStepsPerSecond: 11, MaxStepsPerSecond: 24, SpeedIncrement: 0.5, ScorePerFood: 2}
	default:
		return Rules{BaseStepsPerSecond: 8, MaxStepsPerSecond: 18, SpeedIncrement: 0.35, ScorePerFood: 1}
	}
}

// Config holds the immutable board parameters of a run.
// Values are validated once at startup by the config package.
type Config struct {
	Width            int
	Height           int
	MaxStepsPerFrame int
	ObstacleCount    int
	SafeRadius       int
}

// DefaultConfig returns the standard 40x20 board.
func DefaultConfig() Config {
	return Config{
		Width:            40,
		Height:           20,
		MaxStepsPerFrame: 5,
		ObstacleCount:    12,
		SafeRadius:       3,
	}
}

// Setup is the per-run selection made by the player.
type Setup struct {
	Difficulty Difficulty
	MapMode    MapMode
	Obstacles  bool
	Rules      Rules
}

// Modifiers are the gameplay modifiers consulted on every step.
type Modifiers interface {
	ScoreMultiplier() int
	SpeedMultiplier() float64
	PhaseActive() bool
}

type noModifiers struct{}

func (noModifiers) ScoreMultiplier() int     { return 1 }
func (noModifiers) SpeedMultiplier() float64 { return 1 }
func (noModifiers) PhaseActive() bool        { return false }

// NoModifiers is the neutral modifier set.
var NoModifiers Modifiers = noModifiers{}
