package config

import "github.com/vovakirdan/tui-snake/internal/game"

// DifficultyConfig defines the speed curve and scoring for one tier.
type DifficultyConfig struct {
	BaseStepsPerSecond float64 `yaml:"base_steps_per_second"`
	MaxStepsPerSecond  float64 `yaml:"max_steps_per_second"`
	SpeedIncrement     float64 `yaml:"speed_increment"` // Added per food eaten
	ScorePerFood       int     `yaml:"score_per_food"`
}

// DifficultiesConfig holds every tier.
type DifficultiesConfig struct {
	Easy   DifficultyConfig `yaml:"easy"`
	Normal DifficultyConfig `yaml:"normal"`
	Hard   DifficultyConfig `yaml:"hard"`
}

func fromRules(r game.Rules) DifficultyConfig {
	return DifficultyConfig{
		BaseStepsPerSecond: r.BaseStepsPerSecond,
		MaxStepsPerSecond:  r.MaxStepsPerSecond,
		SpeedIncrement:     r.SpeedIncrement,
		ScorePerFood:       r.ScorePerFood,
	}
}

// Rules converts the tier into simulation rules.
func (d DifficultyConfig) Rules() game.Rules {
	return game.Rules{
		BaseStepsPerSecond: d.BaseStepsPerSecond,
		MaxStepsPerSecond:  d.MaxStepsPerSecond,
		SpeedIncrement:     d.SpeedIncrement,
		ScorePerFood:       d.ScorePerFood,
	}
}

// Tier returns the configured tier for a difficulty.
func (c GameConfig) Tier(d game.Difficulty) DifficultyConfig {
	switch d {
	case game.DifficultyEasy:
		return c.Difficulties.Easy
	case game.DifficultyHard:
		return c.Difficulties.Hard
	default:
		return c.Difficulties.Normal
	}
}

// Setup builds the per-run selection for the given player choices.
func (c GameConfig) Setup(d game.Difficulty, mode game.MapMode, obstacles bool) game.Setup {
	return game.Setup{
		Difficulty: d,
		MapMode:    mode,
		Obstacles:  obstacles,
		Rules:      c.Tier(d).Rules(),
	}
}
