package physics

import (
	"github.com/lixenwraith/particle-sandbox/parameter"
	"github.com/lixenwraith/particle-sandbox/vmath"
)

// Integrator advances one particle by dt given its acceleration
type Integrator interface {
	Integrate(acceleration vmath.Vec3F, p *Particle, dt float64)
	Name() string
}

// Euler steps position with the pre-update velocity, then velocity with acceleration
type Euler struct{}

// NewEuler returns the Euler integrator
func NewEuler() *Euler {
	return &Euler{}
}

func (*Euler) Name() string { return "euler" }

// Integrate keeps the position-first order: x += v*dt, then v += a*dt
func (*Euler) Integrate(acceleration vmath.Vec3F, p *Particle, dt float64) {
	if dt <= 0 || p.IsFixed() {
		return
	}
	p.Position = vmath.V3FAddScaled(p.Position, p.Velocity, dt)
	p.Velocity = vmath.V3FAddScaled(p.Velocity, acceleration, dt)
}

// Verlet is position-based integration with a displacement damping term
type Verlet struct {
	drag float64
}

// NewVerlet clamps drag into [0, 1]
func NewVerlet(drag float64) *Verlet {
	return &Verlet{drag: clampUnit(drag)}
}

func (*Verlet) Name() string { return "verlet" }

// Drag returns the clamped displacement damping
func (v *Verlet) Drag() float64 {
	return v.drag
}

// SetDrag clamps drag into [0, 1]
func (v *Verlet) SetDrag(drag float64) {
	v.drag = clampUnit(drag)
}

// Integrate computes x' = x + (x - x_prev)(1 - drag) + a*dt²
// Velocity is refreshed from the step displacement so drag and damping forces see motion
// Steps too small to divide by keep the previous velocity
func (v *Verlet) Integrate(acceleration vmath.Vec3F, p *Particle, dt float64) {
	if dt <= 0 || p.IsFixed() {
		return
	}
	current := p.Position
	displacement := vmath.V3FSub(current, p.PreviousPosition)

	next := vmath.V3FAddScaled(current, displacement, 1.0-v.drag)
	next = vmath.V3FAddScaled(next, acceleration, dt*dt)

	p.PreviousPosition = current
	p.Position = next
	if dt > parameter.VerletMinStep {
		p.Velocity = vmath.V3FScale(vmath.V3FSub(next, current), 1.0/dt)
	}
}

func clampUnit(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
