package physics

import (
	"github.com/lixenwraith/particle-sandbox/parameter"
	"github.com/lixenwraith/particle-sandbox/vmath"
)

// Type tags a particle as simulated or pinned
type Type uint8

const (
	// Active particles receive forces, integration and collision response
	Active Type = iota
	// Fixed particles are pinned: nothing in the step pipeline moves them
	Fixed
)

func (t Type) String() string {
	if t == Fixed {
		return "fixed"
	}
	return "active"
}

// Particle is a point mass with a spherical collision radius
// Force is per-step scratch, cleared by the simulation after every step
type Particle struct {
	Mass             float64
	Radius           float64
	Position         vmath.Vec3F
	Velocity         vmath.Vec3F
	PreviousPosition vmath.Vec3F
	Force            vmath.Vec3F
	Color            vmath.Vec3F
	Type             Type
}

// NewParticle creates a particle at rest relative to its previous position
func NewParticle(mass, radius float64, position, velocity, color vmath.Vec3F, typ Type) Particle {
	return Particle{
		Mass:             mass,
		Radius:           radius,
		Position:         position,
		Velocity:         velocity,
		PreviousPosition: position,
		Color:            color,
		Type:             typ,
	}
}

// IsFixed reports whether the particle is pinned
func (p *Particle) IsFixed() bool {
	return p.Type == Fixed
}

// AddForce accumulates f; Fixed particles never accumulate
func (p *Particle) AddForce(f vmath.Vec3F) {
	if p.Type == Fixed {
		return
	}
	p.Force = vmath.V3FAdd(p.Force, f)
}

// ClearForce resets the force accumulator
func (p *Particle) ClearForce() {
	p.Force = vmath.Vec3F{}
}

// Acceleration returns Force/Mass, zero for degenerate mass
func (p *Particle) Acceleration() vmath.Vec3F {
	if p.Mass <= parameter.MassEpsilon {
		return vmath.Vec3F{}
	}
	return vmath.V3FScale(p.Force, 1.0/p.Mass)
}

// InverseMass is zero for Fixed particles and degenerate masses
func (p *Particle) InverseMass() float64 {
	if p.Type == Fixed || p.Mass <= parameter.MassEpsilon {
		return 0
	}
	return 1.0 / p.Mass
}

// SetType switches between Active and Fixed
// Pinning drops velocity and realigns the Verlet history so unpinning starts at rest
func (p *Particle) SetType(t Type) {
	p.Type = t
	if t == Fixed {
		p.Velocity = vmath.Vec3F{}
		p.Force = vmath.Vec3F{}
		p.PreviousPosition = p.Position
	}
}

// KineticEnergy returns ½mv²
func (p *Particle) KineticEnergy() float64 {
	return 0.5 * p.Mass * vmath.V3FMagSq(p.Velocity)
}
