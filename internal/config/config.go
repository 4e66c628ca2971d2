// Package config provides YAML-based game configuration loading and
// validation for the snake game.
package config

import (
	"github.com/vovakirdan/tui-snake/internal/game"
	"github.com/vovakirdan/tui-snake/internal/powerups"
)

// GameConfig contains all immutable run parameters.
type GameConfig struct {
	Grid         GridConfig         `yaml:"grid"`
	Timing       TimingConfig       `yaml:"timing"`
	Obstacles    ObstaclesConfig    `yaml:"obstacles"`
	Leaderboard  LeaderboardConfig  `yaml:"leaderboard"`
	Progression  ProgressionConfig  `yaml:"progression"`
	PowerUps     PowerUpsConfig     `yaml:"powerups"`
	Difficulties DifficultiesConfig `yaml:"difficulties"`
}

// GridConfig defines the board size in cells.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// TimingConfig defines frame pacing.
type TimingConfig struct {
	RenderFPS        int     `yaml:"render_fps"`
	MaxStepsPerFrame int     `yaml:"max_steps_per_frame"`
	CountdownSeconds float64 `yaml:"countdown_seconds"`
}

// ObstaclesConfig defines obstacle generation.
type ObstaclesConfig struct {
	Count      int `yaml:"count"`
	SafeRadius int `yaml:"safe_radius"` // Chebyshev distance kept clear around the spawn
}

// LeaderboardConfig defines score bucket size.
type LeaderboardConfig struct {
	Limit int `yaml:"limit"`
}

// ProgressionConfig defines stage pacing.
type ProgressionConfig struct {
	StagePointsInterval int `yaml:"stage_points_interval"`
}

// PowerUpsConfig defines pickup spawning and effect strength.
type PowerUpsConfig struct {
	SpawnChance           float64         `yaml:"spawn_chance"`
	LifetimeSeconds       float64         `yaml:"lifetime_seconds"`
	SlowTimeMultiplier    float64         `yaml:"slow_time_multiplier"`
	DoubleScoreMultiplier int             `yaml:"double_score_multiplier"`
	Durations             DurationsConfig `yaml:"durations"`
	Enabled               []string        `yaml:"enabled"`
}

// DurationsConfig holds effect durations in seconds.
type DurationsConfig struct {
	Shield      float64 `yaml:"shield"`
	SlowTime    float64 `yaml:"slow_time"`
	DoubleScore float64 `yaml:"double_score"`
	Phase       float64 `yaml:"phase"`
}

// Board returns the simulation parameters.
func (c GameConfig) Board() game.Config {
	return game.Config{
		Width:            c.Grid.Width,
		Height:           c.Grid.Height,
		MaxStepsPerFrame: c.Timing.MaxStepsPerFrame,
		ObstacleCount:    c.Obstacles.Count,
		SafeRadius:       c.Obstacles.SafeRadius,
	}
}

// PowerUpConfig converts the powerups section. Unknown names are skipped;
// Validate rejects them beforehand.
func (c GameConfig) PowerUpConfig() powerups.Config {
	p := c.PowerUps
	enabled := make([]powerups.Type, 0, len(p.Enabled))
	for _, name := range p.Enabled {
		if t, err := powerups.ParseType(name); err == nil {
			enabled = append(enabled, t)
		}
	}
	return powerups.Config{
		SpawnChance:           p.SpawnChance,
		Lifetime:              p.LifetimeSeconds,
		SlowTimeMultiplier:    p.SlowTimeMultiplier,
		DoubleScoreMultiplier: p.DoubleScoreMultiplier,
		Durations: map[powerups.Type]float64{
			powerups.Shield:      p.Durations.Shield,
			powerups.SlowTime:    p.Durations.SlowTime,
			powerups.DoubleScore: p.Durations.DoubleScore,
			powerups.Phase:       p.Durations.Phase,
		},
		Enabled: enabled,
	}
}
