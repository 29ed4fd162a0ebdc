package physics

import (
	"math"

	"github.com/lixenwraith/particle-sandbox/parameter"
	"github.com/lixenwraith/particle-sandbox/vmath"
)

// ContactKind distinguishes the two collision paths
type ContactKind uint8

const (
	ParticleParticle ContactKind = iota
	ParticlePlane
)

func (k ContactKind) String() string {
	if k == ParticlePlane {
		return "particle-plane"
	}
	return "particle-particle"
}

// Contact describes one resolved collision
// For ParticlePlane, B is the plane index; Normal points away from B toward A
type Contact struct {
	Kind        ContactKind
	A, B        int
	Point       vmath.Vec3F
	Normal      vmath.Vec3F
	Depth       float64
	ImpactSpeed float64 // approach speed along Normal before the impulse, 0 when separating
}

// ResolveParticles separates two overlapping spheres and applies a restitution impulse
// Position and velocity changes follow the same pin weighting as constraints
// Returns false when the pair does not touch, is coincident, or both are pinned
func ResolveParticles(a, b *Particle, restitution float64) (Contact, bool) {
	delta := vmath.V3FSub(a.Position, b.Position)
	distSq := vmath.V3FMagSq(delta)
	minDist := a.Radius + b.Radius

	if distSq >= minDist*minDist || distSq <= parameter.ContactEpsilonSq {
		return Contact{}, false
	}

	wa, wb := pairWeights(a, b)
	if wa == 0 && wb == 0 {
		return Contact{}, false
	}

	dist := math.Sqrt(distSq)
	// Normal from b toward a
	n := vmath.V3FScale(delta, 1.0/dist)
	depth := minDist - dist

	contact := Contact{
		Kind:   ParticleParticle,
		Point:  vmath.V3FAddScaled(b.Position, n, b.Radius-depth*0.5),
		Normal: n,
		Depth:  depth,
	}

	// Separate overlap unconditionally
	if wa > 0 {
		a.Position = vmath.V3FAddScaled(a.Position, n, depth*wa)
	}
	if wb > 0 {
		b.Position = vmath.V3FAddScaled(b.Position, n, -depth*wb)
	}

	// Impulse only if approaching
	vn := vmath.V3FDot(vmath.V3FSub(a.Velocity, b.Velocity), n)
	if vn >= 0 {
		return contact, true
	}
	contact.ImpactSpeed = -vn

	j := -(1.0 + restitution) * vn
	if wa > 0 {
		a.Velocity = vmath.V3FAddScaled(a.Velocity, n, j*wa)
	}
	if wb > 0 {
		b.Velocity = vmath.V3FAddScaled(b.Velocity, n, -j*wb)
	}

	return contact, true
}

// ResolvePlane pushes a sphere out of a half-space and reflects its normal velocity
// Pinned particles are never touched and report no contact
func ResolvePlane(p *Particle, pl *Plane, restitution float64) (Contact, bool) {
	if p.IsFixed() {
		return Contact{}, false
	}

	dist := pl.SignedDistance(p.Position)
	depth := p.Radius - dist
	if depth <= 0 {
		return Contact{}, false
	}

	n := pl.Normal
	contact := Contact{
		Kind:   ParticlePlane,
		Point:  vmath.V3FAddScaled(p.Position, n, -dist),
		Normal: n,
		Depth:  depth,
	}

	p.Position = vmath.V3FAddScaled(p.Position, n, depth)

	vn := vmath.V3FDot(p.Velocity, n)
	if vn < 0 {
		contact.ImpactSpeed = -vn
		p.Velocity = vmath.V3FAddScaled(p.Velocity, n, -(1.0+restitution)*vn)
	}

	return contact, true
}
