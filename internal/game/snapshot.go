package game

import (
	"sort"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Snapshot contains the complete run state for replays, tests and the
// scoreboard. Uses primitive types only for stable serialization.
type Snapshot struct {
	Steps          uint64
	Score          int
	Status         string
	DeathReason    string
	Direction      string
	StepsPerSecond float64
	Accumulator    float64
	FoodX, FoodY   int

	// Snake cells head first, flattened as X, Y pairs.
	SnakeData []int

	// Obstacle cells in row-major order, flattened as X, Y pairs.
	ObstacleData []int
}

// Snapshot returns a deep copy of s as a Snapshot.
func (s *State) Snapshot() Snapshot {
	snake := make([]int, 0, len(s.Snake)*2)
	for _, p := range s.Snake {
		snake = append(snake, p.X, p.Y)
	}

	obs := make([]core.Point, 0, len(s.Obstacles))
	for p := range s.Obstacles {
		obs = append(obs, p)
	}
	sort.Slice(obs, func(i, j int) bool {
		if obs[i].Y != obs[j].Y {
			return obs[i].Y < obs[j].Y
		}
		return obs[i].X < obs[j].X
	})
	obsData := make([]int, 0, len(obs)*2)
	for _, p := range obs {
		obsData = append(obsData, p.X, p.Y)
	}

	return Snapshot{
		Steps:          s.Steps,
		Score:          s.Score,
		Status:         s.Status.String(),
		DeathReason:    string(s.DeathReason),
		Direction:      s.Direction.String(),
		StepsPerSecond: s.StepsPerSecond,
		Accumulator:    s.Accumulator,
		FoodX:          s.Food.X,
		FoodY:          s.Food.Y,
		SnakeData:      snake,
		ObstacleData:   obsData,
	}
}
