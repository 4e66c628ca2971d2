package session

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Burst sizes and motion, in grid cells and seconds.
const (
	burstFood    = 10
	burstPickup  = 14
	burstSpeed   = 3.5
	burstGravity = 10.0
	burstMinLife = 0.20
	burstMaxLife = 0.45
)

// Particle is one short-lived spark of a burst. X and Y are in grid cells,
// measured from the top-left corner of the grid.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Life   float64
	Color  core.Color
}

// Cell returns the grid cell the particle is over.
func (p Particle) Cell() core.Point {
	return core.Point{X: int(math.Floor(p.X)), Y: int(math.Floor(p.Y))}
}

// burstEnabled reports whether the graphics settings allow bursts.
func (s *Session) burstEnabled() bool {
	g := s.data.Graphics
	return g.Particles && !g.ReducedMotion
}

// spawnBurst scatters count particles from the centre of cell at.
func (s *Session) spawnBurst(at core.Point, c core.Color, count int) {
	if !s.burstEnabled() {
		return
	}
	for range count {
		s.particles = append(s.particles, Particle{
			X:     float64(at.X) + 0.5,
			Y:     float64(at.Y) + 0.5,
			VX:    uniform(s.fx, -burstSpeed, burstSpeed),
			VY:    uniform(s.fx, -burstSpeed, burstSpeed),
			Life:  uniform(s.fx, burstMinLife, burstMaxLife),
			Color: c,
		})
	}
}

// updateParticles moves live particles and drops expired ones.
func (s *Session) updateParticles(delta float64) {
	if len(s.particles) == 0 {
		return
	}
	alive := s.particles[:0]
	for _, p := range s.particles {
		p.Life -= delta
		if p.Life <= 0 {
			continue
		}
		p.X += p.VX * delta
		p.Y += p.VY * delta
		p.VY += burstGravity * delta
		alive = append(alive, p)
	}
	s.particles = alive
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
