package simulation

import (
	"github.com/lixenwraith/particle-sandbox/shape"
	"github.com/lixenwraith/particle-sandbox/vmath"
)

// Renderer draws simulation primitives; implementations must not retain the slices
type Renderer interface {
	DrawPlane(position, normal vmath.Vec3F, size float64, color vmath.Vec3F)
	DrawParticles(positions []vmath.Vec3F, radii []float64, colors []vmath.Vec3F)
	DrawSpring(currentLength, restLength float64, a, b vmath.Vec3F)
	// DrawQuads receives 4 indices per quad into positions
	DrawQuads(indices []int, positions []vmath.Vec3F, color vmath.Vec3F)
}

// Draw hands the current state to r: planes, springs, particles, then shape surfaces
func (s *Simulation) Draw(r Renderer) {
	if r == nil {
		return
	}

	for _, pl := range s.planes {
		r.DrawPlane(pl.Position, pl.Normal, pl.Size, pl.Color)
	}

	for i := range s.springs {
		sp := &s.springs[i]
		a := s.particles[sp.A].Position
		b := s.particles[sp.B].Position
		r.DrawSpring(sp.Length(s.particles), sp.RestLength, a, b)
	}

	s.fillDrawBuffers()
	if len(s.particles) > 0 {
		r.DrawParticles(s.drawPositions, s.drawRadii, s.drawColors)
	}

	for _, slot := range s.cubes {
		positions := s.drawPositions[slot.first : slot.first+shape.CubeVertices]
		r.DrawQuads(slot.cube.Faces(), positions, slot.cube.Color)
	}

	for _, slot := range s.cloths {
		n := slot.cloth.DimU() * slot.cloth.DimV()
		positions := s.drawPositions[slot.first : slot.first+n]
		even, odd := slot.cloth.Quads()
		r.DrawQuads(even, positions, slot.cloth.Color)
		r.DrawQuads(odd, positions, slot.cloth.ComplementColor())
	}
}

func (s *Simulation) fillDrawBuffers() {
	n := len(s.particles)
	if cap(s.drawPositions) < n {
		s.drawPositions = make([]vmath.Vec3F, n)
		s.drawRadii = make([]float64, n)
		s.drawColors = make([]vmath.Vec3F, n)
	}
	s.drawPositions = s.drawPositions[:n]
	s.drawRadii = s.drawRadii[:n]
	s.drawColors = s.drawColors[:n]
	for i := range s.particles {
		s.drawPositions[i] = s.particles[i].Position
		s.drawRadii[i] = s.particles[i].Radius
		s.drawColors[i] = s.particles[i].Color
	}
}

// ParticleState is the drawable part of a particle
type ParticleState struct {
	Position vmath.Vec3F `json:"p"`
	Radius   float64     `json:"r"`
	Color    vmath.Vec3F `json:"c"`
	Fixed    bool        `json:"f,omitempty"`
}

// SpringState is a spring's endpoints and lengths
type SpringState struct {
	A          vmath.Vec3F `json:"a"`
	B          vmath.Vec3F `json:"b"`
	Length     float64     `json:"l"`
	RestLength float64     `json:"rl"`
}

// Snapshot is a detached copy of the drawable state
type Snapshot struct {
	Step      uint64          `json:"step"`
	Time      float64         `json:"time"`
	Particles []ParticleState `json:"particles"`
	Springs   []SpringState   `json:"springs,omitempty"`
}

// Snapshot copies the current state; safe to hand to other goroutines
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		Step:      s.steps,
		Time:      s.simTime,
		Particles: make([]ParticleState, len(s.particles)),
		Springs:   make([]SpringState, len(s.springs)),
	}
	for i := range s.particles {
		p := &s.particles[i]
		snap.Particles[i] = ParticleState{
			Position: p.Position,
			Radius:   p.Radius,
			Color:    p.Color,
			Fixed:    p.IsFixed(),
		}
	}
	for i := range s.springs {
		sp := &s.springs[i]
		snap.Springs[i] = SpringState{
			A:          s.particles[sp.A].Position,
			B:          s.particles[sp.B].Position,
			Length:     sp.Length(s.particles),
			RestLength: sp.RestLength,
		}
	}
	return snap
}
