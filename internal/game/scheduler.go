package game

import (
	"math/rand"

	"github.com/vovakirdan/tui-snake/internal/events"
)

// AdvanceSimulation feeds one frame of real time into the fixed-timestep
// loop and returns the number of steps executed.
//
// Negative deltas count as zero. At most cfg.MaxStepsPerFrame steps run per
// call and the leftover accumulator is capped at that many intervals, so a
// long stall never turns into a burst. The step rate is re-read before every
// step because eating food or a modifier may change it mid-frame.
func AdvanceSimulation(s *State, cfg Config, delta float64, rng *rand.Rand, mods Modifiers, emit events.Emitter) int {
	if s.Status != StatusRunning {
		return 0
	}
	if mods == nil {
		mods = NoModifiers
	}

	s.Accumulator += max(0, delta)
	steps := 0

	for steps < cfg.MaxStepsPerFrame {
		interval := StepInterval(s, mods)
		if s.Accumulator < interval {
			break
		}
		s.Accumulator -= interval
		AdvanceOneStep(s, cfg, rng, mods, emit)
		steps++
		if s.Status != StatusRunning {
			break
		}
	}

	if carry := float64(cfg.MaxStepsPerFrame) * StepInterval(s, mods); s.Accumulator > carry {
		s.Accumulator = carry
	}
	return steps
}

// EffectiveRate returns the current steps per second after modifiers.
func EffectiveRate(s *State, mods Modifiers) float64 {
	if mods == nil {
		mods = NoModifiers
	}
	return s.StepsPerSecond * mods.SpeedMultiplier()
}

// StepInterval returns the seconds between two steps at the effective rate.
func StepInterval(s *State, mods Modifiers) float64 {
	return 1.0 / EffectiveRate(s, mods)
}
