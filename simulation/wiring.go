package simulation

import (
	"fmt"

	"github.com/lixenwraith/particle-sandbox/physics"
	"github.com/lixenwraith/particle-sandbox/shape"
	"github.com/lixenwraith/particle-sandbox/vmath"
)

// AddCube copies the cube's corners into the arena and wires them
// Edges get a spring and a constraint, face and body diagonals a spring only
// Returns the arena index of corner 0, or -1 for a nil cube
func (s *Simulation) AddCube(c *shape.Cube, opts ...ShapeOption) int {
	if c == nil {
		return -1
	}
	cfg := defaultCubeConfig(opts)

	first := len(s.particles)
	s.particles = append(s.particles, c.Particles[:]...)
	s.cubes = append(s.cubes, cubeSlot{first: first, cube: c})

	if cfg.allPairs {
		for _, e := range c.AllPairs() {
			s.link(first+e[0], first+e[1], cfg, true)
		}
		return first
	}

	for _, e := range c.Edges() {
		s.link(first+e[0], first+e[1], cfg, true)
	}
	for _, e := range c.FaceDiagonals() {
		s.link(first+e[0], first+e[1], cfg, false)
	}
	for _, e := range c.BodyDiagonals() {
		s.link(first+e[0], first+e[1], cfg, false)
	}
	return first
}

// AddCloth copies the grid into the arena and builds its spring network
// Structural neighbours get a spring and a constraint, shear and bend links a spring only
// Returns the arena index of grid point (0,0), or -1 for a nil cloth
func (s *Simulation) AddCloth(c *shape.Cloth, opts ...ShapeOption) int {
	if c == nil {
		return -1
	}
	cfg := defaultClothConfig(opts)

	first := len(s.particles)
	s.particles = append(s.particles, c.Particles...)
	s.cloths = append(s.cloths, clothSlot{first: first, cloth: c})

	nU, nV := c.DimU(), c.DimV()
	at := func(u, v int) int { return first + c.Index(u, v) }

	for u := 0; u < nU; u++ {
		for v := 0; v < nV; v++ {
			// Structural
			if u+1 < nU {
				s.link(at(u, v), at(u+1, v), cfg, true)
			}
			if v+1 < nV {
				s.link(at(u, v), at(u, v+1), cfg, true)
			}
			// Shear
			if u+1 < nU && v+1 < nV {
				s.link(at(u, v), at(u+1, v+1), cfg, false)
				s.link(at(u+1, v), at(u, v+1), cfg, false)
			}
			// Bend
			if u+2 < nU {
				s.link(at(u, v), at(u+2, v), cfg, false)
			}
			if v+2 < nV {
				s.link(at(u, v), at(u, v+2), cfg, false)
			}
		}
	}
	return first
}

// link adds a spring, and optionally a constraint, at the current distance
// Failures are logged by the Add calls and skipped
func (s *Simulation) link(a, b int, cfg shapeConfig, constrain bool) {
	_ = s.AddSpring(a, b, cfg.stiffness, cfg.damping)
	if !constrain {
		return
	}
	length := vmath.V3FDist(s.particles[a].Position, s.particles[b].Position)
	_ = s.AddConstraint(a, b, length)
}

// AddParticleGenerator copies the generator's particles into the arena
// Returns the generator id for SetEmission, or -1 for a nil generator
func (s *Simulation) AddParticleGenerator(g *shape.ParticleGenerator) int {
	if g == nil {
		return -1
	}
	s.particles = append(s.particles, g.Particles...)
	s.emitters = append(s.emitters, &emitter{generator: g, total: len(g.Particles)})
	return len(s.emitters) - 1
}

// SetEmission makes generator id spawn perSecond new particles during Update
// until it owns max particles; max <= 0 removes the cap
func (s *Simulation) SetEmission(id int, perSecond float64, max int) error {
	if id < 0 || id >= len(s.emitters) {
		return fmt.Errorf("generator %d of %d: %w", id, len(s.emitters), ErrIndexOutOfRange)
	}
	if perSecond < 0 {
		return fmt.Errorf("emission rate %f: %w", perSecond, physics.ErrInvalidArgument)
	}
	e := s.emitters[id]
	e.perSecond = perSecond
	e.max = max
	e.pending = 0
	return nil
}

func (s *Simulation) runEmitters(dt float64) {
	if dt <= 0 {
		return
	}
	for _, e := range s.emitters {
		if e.perSecond == 0 {
			continue
		}
		e.pending += e.perSecond * dt
		n := int(e.pending)
		if n == 0 {
			continue
		}
		e.pending -= float64(n)
		if e.max > 0 && e.total+n > e.max {
			n = e.max - e.total
		}
		if n <= 0 {
			continue
		}
		s.particles = append(s.particles, e.generator.Emit(n)...)
		e.total += n
	}
}
