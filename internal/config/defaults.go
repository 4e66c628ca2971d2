package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-snake/internal/game"
	"github.com/vovakirdan/tui-snake/internal/powerups"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// Default returns the hard-coded configuration. It matches the embedded
// defaults/snake.yaml.
func Default() GameConfig {
	pu := powerups.DefaultConfig()
	enabled := make([]string, 0, len(pu.Enabled))
	for _, t := range pu.Enabled {
		enabled = append(enabled, t.String())
	}
	board := game.DefaultConfig()

	return GameConfig{
		Grid: GridConfig{
			Width:  board.Width,
			Height: board.Height,
		},
		Timing: TimingConfig{
			RenderFPS:        60,
			MaxStepsPerFrame: board.MaxStepsPerFrame,
			CountdownSeconds: 3,
		},
		Obstacles: ObstaclesConfig{
			Count:      board.ObstacleCount,
			SafeRadius: board.SafeRadius,
		},
		Leaderboard: LeaderboardConfig{
			Limit: 10,
		},
		Progression: ProgressionConfig{
			StagePointsInterval: 10,
		},
		PowerUps: PowerUpsConfig{
			SpawnChance:           pu.SpawnChance,
			LifetimeSeconds:       pu.Lifetime,
			SlowTimeMultiplier:    pu.SlowTimeMultiplier,
			DoubleScoreMultiplier: pu.DoubleScoreMultiplier,
			Durations: DurationsConfig{
				Shield:      pu.Durations[powerups.Shield],
				SlowTime:    pu.Durations[powerups.SlowTime],
				DoubleScore: pu.Durations[powerups.DoubleScore],
				Phase:       pu.Durations[powerups.Phase],
			},
			Enabled: enabled,
		},
		Difficulties: DifficultiesConfig{
			Easy:   fromRules(game.DefaultRules(game.DifficultyEasy)),
			Normal: fromRules(game.DefaultRules(game.DifficultyNormal)),
			Hard:   fromRules(game.DefaultRules(game.DifficultyHard)),
		},
	}
}
