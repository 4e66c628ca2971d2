package game

import (
	"math/rand"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// FreeCells lists every cell not covered by the snake, an obstacle or any
// of the extra cells, in row-major order.
func FreeCells(s *State, extra ...core.Point) []core.Point {
	taken := make(map[core.Point]struct{}, len(s.Snake)+len(s.Obstacles)+len(extra))
	for _, seg := range s.Snake {
		taken[seg] = struct{}{}
	}
	for p := range s.Obstacles {
		taken[p] = struct{}{}
	}
	for _, p := range extra {
		taken[p] = struct{}{}
	}

	free := make([]core.Point, 0, s.Width*s.Height-len(taken))
	for y := range s.Height {
		for x := range s.Width {
			p := core.Point{X: x, Y: y}
			if _, ok := taken[p]; !ok {
				free = append(free, p)
			}
		}
	}
	return free
}

// SpawnFood picks a uniformly random cell outside the snake and obstacles.
// It returns false when the board has no free cell.
func SpawnFood(s *State, rng *rand.Rand) (core.Point, bool) {
	free := FreeCells(s)
	if len(free) == 0 {
		return core.Point{}, false
	}
	return free[rng.Intn(len(free))], true
}

// GenerateObstacles chooses up to count obstacle cells for a fresh run.
//
// Cells within safeRadius (Chebyshev distance) of the head and the row ahead
// of the head are never used. When fewer candidates remain than requested,
// all of them become obstacles.
func GenerateObstacles(s *State, count, safeRadius int, rng *rand.Rand) map[core.Point]struct{} {
	obstacles := make(map[core.Point]struct{}, count)
	if count <= 0 || len(s.Snake) == 0 {
		return obstacles
	}
	head := s.Head()

	candidates := make([]core.Point, 0, s.Width*s.Height)
	for y := range s.Height {
		for x := range s.Width {
			p := core.Point{X: x, Y: y}
			if s.Occupies(p) {
				continue
			}
			if core.Abs(p.X-head.X) <= safeRadius && core.Abs(p.Y-head.Y) <= safeRadius {
				continue
			}
			if p.Y == head.Y && p.X > head.X {
				continue
			}
			candidates = append(candidates, p)
		}
	}

	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	for _, p := range candidates[:min(count, len(candidates))] {
		obstacles[p] = struct{}{}
	}
	return obstacles
}
