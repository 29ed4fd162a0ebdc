package physics

import (
	"fmt"

	"github.com/lixenwraith/particle-sandbox/parameter"
	"github.com/lixenwraith/particle-sandbox/vmath"
)

// ForceGenerator contributes a force to a particle's accumulator
type ForceGenerator interface {
	ApplyForce(p *Particle)
}

// Gravity applies a constant acceleration scaled by particle mass
type Gravity struct {
	Acceleration vmath.Vec3F
}

// NewGravity returns a gravity generator with the given acceleration
func NewGravity(acceleration vmath.Vec3F) *Gravity {
	return &Gravity{Acceleration: acceleration}
}

// DefaultGravity returns Earth gravity along -Y
func DefaultGravity() *Gravity {
	return &Gravity{Acceleration: vmath.V3F(0, parameter.DefaultGravityY, 0)}
}

// ApplyForce adds m*g; massless or negative-mass particles are skipped
func (g *Gravity) ApplyForce(p *Particle) {
	if p.Mass <= 0 {
		return
	}
	p.AddForce(vmath.V3FScale(g.Acceleration, p.Mass))
}

// Medium applies linear drag opposing velocity
type Medium struct {
	drag float64
}

// NewMedium validates the drag coefficient
func NewMedium(dragCoefficient float64) (*Medium, error) {
	if dragCoefficient < 0 {
		return nil, fmt.Errorf("medium drag coefficient %g is negative: %w", dragCoefficient, ErrInvalidArgument)
	}
	return &Medium{drag: dragCoefficient}, nil
}

// DragCoefficient returns k in F = -k*v
func (m *Medium) DragCoefficient() float64 {
	return m.drag
}

// SetDragCoefficient updates k, rejecting negative values
func (m *Medium) SetDragCoefficient(dragCoefficient float64) error {
	if dragCoefficient < 0 {
		return fmt.Errorf("medium drag coefficient %g is negative: %w", dragCoefficient, ErrInvalidArgument)
	}
	m.drag = dragCoefficient
	return nil
}

// ApplyForce adds -k*v
func (m *Medium) ApplyForce(p *Particle) {
	p.AddForce(vmath.V3FScale(p.Velocity, -m.drag))
}
