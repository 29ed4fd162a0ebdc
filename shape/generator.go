package shape

import (
	"math/rand"

	"github.com/lixenwraith/particle-sandbox/physics"
	"github.com/lixenwraith/particle-sandbox/vmath"
)

// ParticleGenerator spawns randomly placed, randomly colored Active particles around a center
type ParticleGenerator struct {
	Particles []physics.Particle
	Mass      float64
	Radius    float64
	Center    vmath.Vec3F
	RangeXZ   float64
	RangeY    float64

	rng *rand.Rand
}

// NewParticleGenerator creates initialCount particles; x,z offsets in [-rangeXZ, rangeXZ], y offset in [0, rangeY]
// A nil rng is seeded from the default source
func NewParticleGenerator(rng *rand.Rand, mass, radius float64, initialCount int, center vmath.Vec3F, rangeXZ, rangeY float64) *ParticleGenerator {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	if initialCount < 0 {
		initialCount = 0
	}
	g := &ParticleGenerator{
		Particles: make([]physics.Particle, 0, initialCount),
		Mass:      mass,
		Radius:    radius,
		Center:    center,
		RangeXZ:   rangeXZ,
		RangeY:    rangeY,
		rng:       rng,
	}
	g.Particles = append(g.Particles, g.Emit(initialCount)...)
	return g
}

// Emit draws n new particles from the generator distributions without storing them
func (g *ParticleGenerator) Emit(n int) []physics.Particle {
	out := make([]physics.Particle, 0, max(n, 0))
	for i := 0; i < n; i++ {
		color := vmath.V3F(g.rng.Float64(), g.rng.Float64(), g.rng.Float64())
		pos := vmath.V3F(
			g.Center.X+(g.rng.Float64()*2-1)*g.RangeXZ,
			g.Center.Y+g.rng.Float64()*g.RangeY,
			g.Center.Z+(g.rng.Float64()*2-1)*g.RangeXZ,
		)
		out = append(out, physics.NewParticle(g.Mass, g.Radius, pos, vmath.Vec3F{}, color, physics.Active))
	}
	return out
}
