package game

import (
	"math/rand"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/events"
)

// AdvanceOneStep moves the snake exactly one cell or ends the run.
//
// Causes of death are checked in the order wall, obstacle, self collision,
// board full; only the first one that applies is reported. With phase
// active the first three are ignored and a bounded board wraps instead.
func AdvanceOneStep(s *State, cfg Config, rng *rand.Rand, mods Modifiers, emit events.Emitter) {
	if s.Status != StatusRunning {
		return
	}
	if mods == nil {
		mods = NoModifiers
	}
	if emit == nil {
		emit = events.Discard
	}

	if s.Pending != nil && !s.Direction.IsOpposite(*s.Pending) {
		s.Direction = *s.Pending
	}
	s.Pending = nil

	phase := mods.PhaseActive()
	next := s.Head().Add(s.Direction.Vector())

	if !next.In(s.Width, s.Height) {
		if s.MapMode == MapBounded && !phase {
			s.gameOver(DeathWall, emit)
			return
		}
		next = next.Wrap(s.Width, s.Height)
	}

	if !phase && s.HasObstacle(next) {
		s.gameOver(DeathObstacle, emit)
		return
	}

	grow := next == s.Food

	if !phase && s.bodyHits(next, grow) {
		s.gameOver(DeathSelfCollision, emit)
		return
	}

	s.Snake = append(s.Snake, core.Point{})
	copy(s.Snake[1:], s.Snake[:len(s.Snake)-1])
	s.Snake[0] = next

	if grow {
		mult := mods.ScoreMultiplier()
		s.Score += s.Rules.ScorePerFood * mult
		s.StepsPerSecond = min(s.Rules.MaxStepsPerSecond, s.StepsPerSecond+s.Rules.SpeedIncrement)
		emit.Emit(events.New(events.FoodEaten,
			"score", s.Score,
			"speed", s.StepsPerSecond,
			"multiplier", mult,
			"head_x", next.X,
			"head_y", next.Y,
		))

		food, ok := SpawnFood(s, rng)
		if !ok {
			s.Food = core.Point{X: -1, Y: -1}
			s.gameOver(DeathBoardFull, emit)
			return
		}
		s.Food = food
	} else {
		s.Snake = s.Snake[:len(s.Snake)-1]
	}

	s.Steps++
	emit.Emit(events.New(events.StepAdvanced,
		"head_x", next.X,
		"head_y", next.Y,
		"length", len(s.Snake),
	))
}

// bodyHits checks p against the body. The tail is skipped unless the
// snake grows this step, because it vacates its cell.
func (s *State) bodyHits(p core.Point, grow bool) bool {
	n := len(s.Snake)
	if !grow {
		n--
	}
	for i := range n {
		if s.Snake[i] == p {
			return true
		}
	}
	return false
}

func (s *State) gameOver(reason DeathReason, emit events.Emitter) {
	s.Status = StatusGameOver
	s.DeathReason = reason
	if emit != nil {
		emit.Emit(events.New(events.PlayerDied,
			"reason", string(reason),
			"score", s.Score,
		))
	}
}
