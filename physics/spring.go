package physics

import (
	"fmt"

	"github.com/lixenwraith/particle-sandbox/parameter"
	"github.com/lixenwraith/particle-sandbox/vmath"
)

// Spring is a damped Hookean link between two particles of an arena
// A and B index the particle slice passed to every method
type Spring struct {
	A, B       int
	Stiffness  float64
	Damping    float64
	RestLength float64
}

// validatePair rejects missing or identical endpoints
func validatePair(particles []Particle, a, b int, kind string) error {
	if a < 0 || a >= len(particles) {
		return fmt.Errorf("%s endpoint a=%d missing from %d particles: %w", kind, a, len(particles), ErrInvalidArgument)
	}
	if b < 0 || b >= len(particles) {
		return fmt.Errorf("%s endpoint b=%d missing from %d particles: %w", kind, b, len(particles), ErrInvalidArgument)
	}
	if a == b {
		return fmt.Errorf("%s endpoints must differ, both are %d: %w", kind, a, ErrInvalidArgument)
	}
	return nil
}

func validateSpringCoefficients(stiffness, damping float64) error {
	if stiffness <= 0 {
		return fmt.Errorf("spring stiffness %g must be positive: %w", stiffness, ErrInvalidArgument)
	}
	if damping < 0 {
		return fmt.Errorf("spring damping %g is negative: %w", damping, ErrInvalidArgument)
	}
	return nil
}

// NewSpring links a and b with a rest length equal to their current distance
func NewSpring(particles []Particle, a, b int, stiffness, damping float64) (Spring, error) {
	if err := validatePair(particles, a, b, "spring"); err != nil {
		return Spring{}, err
	}
	if err := validateSpringCoefficients(stiffness, damping); err != nil {
		return Spring{}, err
	}

	rest := vmath.V3FDist(particles[a].Position, particles[b].Position)
	if rest < parameter.LengthEpsilon {
		rest = 0
	}

	return Spring{A: a, B: b, Stiffness: stiffness, Damping: damping, RestLength: rest}, nil
}

// NewSpringWithRestLength links a and b with an explicit rest length
func NewSpringWithRestLength(particles []Particle, a, b int, stiffness, damping, restLength float64) (Spring, error) {
	if err := validatePair(particles, a, b, "spring"); err != nil {
		return Spring{}, err
	}
	if err := validateSpringCoefficients(stiffness, damping); err != nil {
		return Spring{}, err
	}
	if restLength < 0 {
		return Spring{}, fmt.Errorf("spring rest length %g is negative: %w", restLength, ErrInvalidArgument)
	}

	return Spring{A: a, B: b, Stiffness: stiffness, Damping: damping, RestLength: restLength}, nil
}

// ApplyForce adds the spring force to A and its reaction to B
func (s *Spring) ApplyForce(particles []Particle) {
	pa := &particles[s.A]
	pb := &particles[s.B]

	d := vmath.V3FSub(pa.Position, pb.Position)
	length := vmath.V3FMag(d)
	// Direction undefined at zero length
	if length < parameter.LengthEpsilon {
		return
	}

	unit := vmath.V3FScale(d, 1.0/length)
	vAlong := vmath.V3FDot(vmath.V3FSub(pa.Velocity, pb.Velocity), unit)

	mag := -s.Stiffness*(length-s.RestLength) - s.Damping*vAlong
	f := vmath.V3FScale(unit, mag)

	pa.AddForce(f)
	pb.AddForce(vmath.V3FNeg(f))
}

// Length returns the current endpoint distance
func (s *Spring) Length(particles []Particle) float64 {
	return vmath.V3FDist(particles[s.A].Position, particles[s.B].Position)
}

// Strain returns (length-rest)/rest, positive when stretched; zero rest length reports 0
func (s *Spring) Strain(particles []Particle) float64 {
	if s.RestLength < parameter.LengthEpsilon {
		return 0
	}
	return (s.Length(particles) - s.RestLength) / s.RestLength
}
