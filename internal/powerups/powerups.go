// Package powerups manages transient pickups and the timed effects they
// grant. The System satisfies game.Modifiers, so the resolver reads the
// live multipliers on every step.
package powerups

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/game"
)

// Type represents the kind of power-up.
type Type int

const (
	Shield      Type = iota // Cancels one fatal collision
	SlowTime                // Slows the step rate
	DoubleScore             // Multiplies food score
	Phase                   // Ignores walls, obstacles and the body
	TypeCount               // Sentinel for counting types
)

// String returns the persisted name of the power-up.
func (t Type) String() string {
	switch t {
	case Shield:
		return "shield"
	case SlowTime:
		return "slow_time"
	case DoubleScore:
		return "double_score"
	case Phase:
		return "phase"
	default:
		return fmt.Sprintf("powerup(%d)", int(t))
	}
}

// Label returns the short HUD name.
func (t Type) Label() string {
	switch t {
	case Shield:
		return "Shield"
	case SlowTime:
		return "Slow"
	case DoubleScore:
		return "Double"
	case Phase:
		return "Phase"
	default:
		return "?"
	}
}

// Glyph returns the board character for a spawned pickup.
func (t Type) Glyph() rune {
	switch t {
	case Shield:
		return 'S'
	case SlowTime:
		return '~'
	case DoubleScore:
		return '2'
	case Phase:
		return '%'
	default:
		return '?'
	}
}

// ParseType converts a name into a Type.
func ParseType(s string) (Type, error) {
	for t := range TypeCount {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("powerups: unknown power-up %q", s)
}

// Spawned is a pickup lying on the board.
type Spawned struct {
	Type      Type
	Pos       core.Point
	Remaining float64 // seconds until it vanishes
}

// Active is a timed effect applied to the snake.
type Active struct {
	Type      Type
	Remaining float64 // seconds until it expires
}

// Config holds power-up spawning and effect parameters.
type Config struct {
	SpawnChance           float64 // Probability per food eaten (0-1)
	Lifetime              float64 // Seconds a pickup stays on the board
	SlowTimeMultiplier    float64
	DoubleScoreMultiplier int
	Durations             map[Type]float64 // Effect duration in seconds
	Enabled               []Type           // Types eligible to spawn
}

// DefaultConfig returns default power-up configuration.
func DefaultConfig() Config {
	return Config{
		SpawnChance:           0.30,
		Lifetime:              10,
		SlowTimeMultiplier:    0.65,
		DoubleScoreMultiplier: 2,
		Durations: map[Type]float64{
			Shield:      10,
			SlowTime:    6,
			DoubleScore: 6,
			Phase:       8,
		},
		Enabled: []Type{Shield, SlowTime, DoubleScore, Phase},
	}
}

// fallbackDuration applies to types missing from Config.Durations.
const fallbackDuration = 5.0

// System tracks at most one spawned pickup and any number of distinct
// active effects.
type System struct {
	cfg     Config
	spawned *Spawned
	active  []Active
}

// NewSystem creates an empty power-up system.
func NewSystem(cfg Config) *System {
	return &System{cfg: cfg}
}

// Reset removes the pickup and every effect.
func (s *System) Reset() {
	s.spawned = nil
	s.active = nil
}

// Spawned returns the pickup on the board, or nil.
func (s *System) Spawned() *Spawned {
	return s.spawned
}

// Active returns a copy of the active effects in collection order.
func (s *System) Active() []Active {
	out := make([]Active, len(s.active))
	copy(out, s.active)
	return out
}

// TryToSpawn rolls for a new pickup after food was eaten. Nothing happens
// when a pickup is already on the board, no type is enabled, the roll fails
// or no free cell exists.
func (s *System) TryToSpawn(rng *rand.Rand, occupied map[core.Point]struct{}, width, height int) *Spawned {
	if s.spawned != nil || len(s.cfg.Enabled) == 0 {
		return nil
	}
	if rng.Float64() > s.cfg.SpawnChance {
		return nil
	}

	free := make([]core.Point, 0, width*height)
	for y := range height {
		for x := range width {
			p := core.Point{X: x, Y: y}
			if _, ok := occupied[p]; !ok {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		return nil
	}

	s.spawned = &Spawned{
		Type:      s.cfg.Enabled[rng.Intn(len(s.cfg.Enabled))],
		Pos:       free[rng.Intn(len(free))],
		Remaining: s.cfg.Lifetime,
	}
	return s.spawned
}

// CollectAt picks up the pickup when it lies on cell. Collecting a type that
// is already active refreshes its timer to the full duration without
// stacking. Returns the affected effect, or nil.
func (s *System) CollectAt(cell core.Point) *Active {
	if s.spawned == nil || s.spawned.Pos != cell {
		return nil
	}
	t := s.spawned.Type
	s.spawned = nil

	d := s.duration(t)
	for i := range s.active {
		if s.active[i].Type == t {
			s.active[i].Remaining = max(s.active[i].Remaining, d)
			return &s.active[i]
		}
	}
	s.active = append(s.active, Active{Type: t, Remaining: d})
	return &s.active[len(s.active)-1]
}

func (s *System) duration(t Type) float64 {
	if d, ok := s.cfg.Durations[t]; ok {
		return d
	}
	return fallbackDuration
}

// Update decays the pickup lifetime and every effect by delta seconds,
// dropping whatever ran out. Called once per frame.
func (s *System) Update(delta float64) {
	elapsed := max(0, delta)

	if s.spawned != nil {
		s.spawned.Remaining -= elapsed
		if s.spawned.Remaining <= 0 {
			s.spawned = nil
		}
	}

	kept := s.active[:0]
	for _, a := range s.active {
		a.Remaining -= elapsed
		if a.Remaining > 0 {
			kept = append(kept, a)
		}
	}
	s.active = kept
}

// Consume removes an active effect of type t.
func (s *System) Consume(t Type) bool {
	for i, a := range s.active {
		if a.Type == t {
			s.active = append(s.active[:i], s.active[i+1:]...)
			return true
		}
	}
	return false
}

// AbsorbFatalCollision spends an active shield to cancel a collision death.
// Board exhaustion is never absorbed.
func (s *System) AbsorbFatalCollision(reason game.DeathReason) bool {
	if !reason.Collision() {
		return false
	}
	return s.Consume(Shield)
}

// IsActive reports whether an effect of type t is running.
func (s *System) IsActive(t Type) bool {
	for _, a := range s.active {
		if a.Type == t {
			return true
		}
	}
	return false
}

// ScoreMultiplier returns the double score factor while active, else 1.
func (s *System) ScoreMultiplier() int {
	if s.IsActive(DoubleScore) {
		return s.cfg.DoubleScoreMultiplier
	}
	return 1
}

// SpeedMultiplier returns the slow time factor while active, else 1.
func (s *System) SpeedMultiplier() float64 {
	if s.IsActive(SlowTime) {
		return s.cfg.SlowTimeMultiplier
	}
	return 1
}

// PhaseActive reports whether phase is running.
func (s *System) PhaseActive() bool {
	return s.IsActive(Phase)
}

// ActiveLabels formats the effects for the HUD, e.g. "Slow 4.2s".
func (s *System) ActiveLabels() []string {
	labels := make([]string, 0, len(s.active))
	for _, a := range s.active {
		labels = append(labels, fmt.Sprintf("%s %.1fs", a.Type.Label(), a.Remaining))
	}
	return labels
}

var _ game.Modifiers = (*System)(nil)
