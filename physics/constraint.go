package physics

import (
	"fmt"

	"github.com/lixenwraith/particle-sandbox/parameter"
	"github.com/lixenwraith/particle-sandbox/vmath"
)

// Constraint keeps two particles at a fixed distance by moving positions only
type Constraint struct {
	A, B   int
	Length float64
}

// NewConstraint validates endpoints and target length
func NewConstraint(particles []Particle, a, b int, length float64) (Constraint, error) {
	if err := validatePair(particles, a, b, "constraint"); err != nil {
		return Constraint{}, err
	}
	if length < 0 {
		return Constraint{}, fmt.Errorf("constraint length %g is negative: %w", length, ErrInvalidArgument)
	}
	return Constraint{A: a, B: b, Length: length}, nil
}

// pairWeights splits a correction between two particles by pin state
// Both free: half each. One pinned: the free one takes all. Both pinned: none
func pairWeights(a, b *Particle) (wa, wb float64) {
	fixedA, fixedB := a.IsFixed(), b.IsFixed()
	switch {
	case !fixedA && !fixedB:
		return 0.5, 0.5
	case fixedA && !fixedB:
		return 0, 1
	case !fixedA && fixedB:
		return 1, 0
	default:
		return 0, 0
	}
}

// Satisfy performs one relaxation pass for this constraint
func (c *Constraint) Satisfy(particles []Particle) {
	pa := &particles[c.A]
	pb := &particles[c.B]

	delta := vmath.V3FSub(pb.Position, pa.Position)
	current := vmath.V3FMag(delta)
	if current < parameter.LengthEpsilon {
		return
	}

	correction := vmath.V3FScale(delta, (current-c.Length)/current)
	wa, wb := pairWeights(pa, pb)

	if wa > 0 {
		pa.Position = vmath.V3FAddScaled(pa.Position, correction, wa)
	}
	if wb > 0 {
		pb.Position = vmath.V3FAddScaled(pb.Position, correction, -wb)
	}
}

// Error returns current length minus target length
func (c *Constraint) Error(particles []Particle) float64 {
	return vmath.V3FDist(particles[c.A].Position, particles[c.B].Position) - c.Length
}
