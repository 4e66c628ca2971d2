package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/powerups"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// MinGridSize is the smallest allowed board side.
const MinGridSize = 8

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate checks every parameter once at startup. The simulation trusts
// these invariants for its whole lifetime.
func (c GameConfig) Validate() error {
	if c.Grid.Width < MinGridSize || c.Grid.Height < MinGridSize {
		return invalid("grid must be at least %dx%d cells, got %dx%d",
			MinGridSize, MinGridSize, c.Grid.Width, c.Grid.Height)
	}
	if c.Timing.RenderFPS <= 0 {
		return invalid("timing.render_fps must be > 0, got %d", c.Timing.RenderFPS)
	}
	if c.Timing.MaxStepsPerFrame < 1 {
		return invalid("timing.max_steps_per_frame must be >= 1, got %d", c.Timing.MaxStepsPerFrame)
	}
	if c.Timing.CountdownSeconds < 0 {
		return invalid("timing.countdown_seconds must be >= 0, got %v", c.Timing.CountdownSeconds)
	}
	if c.Obstacles.Count < 0 {
		return invalid("obstacles.count must be >= 0, got %d", c.Obstacles.Count)
	}
	if c.Obstacles.SafeRadius < 0 {
		return invalid("obstacles.safe_radius must be >= 0, got %d", c.Obstacles.SafeRadius)
	}
	if c.Leaderboard.Limit <= 0 {
		return invalid("leaderboard.limit must be > 0, got %d", c.Leaderboard.Limit)
	}
	if c.Progression.StagePointsInterval <= 0 {
		return invalid("progression.stage_points_interval must be > 0, got %d", c.Progression.StagePointsInterval)
	}
	if err := c.PowerUps.validate(); err != nil {
		return err
	}

	tiers := []struct {
		name string
		d    DifficultyConfig
	}{
		{"easy", c.Difficulties.Easy},
		{"normal", c.Difficulties.Normal},
		{"hard", c.Difficulties.Hard},
	}
	for _, tier := range tiers {
		if err := tier.d.validate(tier.name); err != nil {
			return err
		}
	}
	return nil
}

func (p PowerUpsConfig) validate() error {
	if p.SpawnChance < 0 || p.SpawnChance > 1 {
		return invalid("powerups.spawn_chance must be within [0,1], got %v", p.SpawnChance)
	}
	if p.LifetimeSeconds <= 0 {
		return invalid("powerups.lifetime_seconds must be > 0, got %v", p.LifetimeSeconds)
	}
	if p.SlowTimeMultiplier <= 0 {
		return invalid("powerups.slow_time_multiplier must be > 0, got %v", p.SlowTimeMultiplier)
	}
	if p.DoubleScoreMultiplier <= 0 {
		return invalid("powerups.double_score_multiplier must be > 0, got %d", p.DoubleScoreMultiplier)
	}
	durations := map[string]float64{
		"shield":       p.Durations.Shield,
		"slow_time":    p.Durations.SlowTime,
		"double_score": p.Durations.DoubleScore,
		"phase":        p.Durations.Phase,
	}
	for _, name := range []string{"shield", "slow_time", "double_score", "phase"} {
		if durations[name] <= 0 {
			return invalid("powerups.durations.%s must be > 0, got %v", name, durations[name])
		}
	}
	for _, name := range p.Enabled {
		if _, err := powerups.ParseType(name); err != nil {
			return invalid("powerups.enabled: unknown power-up %q", name)
		}
	}
	return nil
}

func (d DifficultyConfig) validate(name string) error {
	if d == (DifficultyConfig{}) {
		return invalid("difficulties.%s is missing", name)
	}
	if d.BaseStepsPerSecond <= 0 {
		return invalid("difficulties.%s.base_steps_per_second must be > 0, got %v", name, d.BaseStepsPerSecond)
	}
	if d.MaxStepsPerSecond < d.BaseStepsPerSecond {
		return invalid("difficulties.%s.max_steps_per_second must be >= base_steps_per_second", name)
	}
	if d.SpeedIncrement < 0 {
		return invalid("difficulties.%s.speed_increment must be >= 0, got %v", name, d.SpeedIncrement)
	}
	if d.ScorePerFood < 1 {
		return invalid("difficulties.%s.score_per_food must be >= 1, got %d", name, d.ScorePerFood)
	}
	return nil
}
