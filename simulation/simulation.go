package simulation

import (
	"fmt"
	"log"
	"math"

	"github.com/lixenwraith/particle-sandbox/parameter"
	"github.com/lixenwraith/particle-sandbox/physics"
	"github.com/lixenwraith/particle-sandbox/shape"
	"github.com/lixenwraith/particle-sandbox/vmath"
)

// ContactListener receives every collision resolved during Update
// Called on the Update goroutine after the step completes
type ContactListener interface {
	OnContact(c physics.Contact)
}

// ContactListenerFunc adapts a function to ContactListener
type ContactListenerFunc func(c physics.Contact)

func (f ContactListenerFunc) OnContact(c physics.Contact) { f(c) }

// Stats summarizes simulation progress
type Stats struct {
	Steps         uint64
	Time          float64
	Particles     int
	Springs       int
	Constraints   int
	Planes        int
	KineticEnergy float64
}

// cubeSlot and clothSlot remember where a shape's particles landed in the arena
type cubeSlot struct {
	first int
	cube  *shape.Cube
}

type clothSlot struct {
	first int
	cloth *shape.Cloth
}

type emitter struct {
	generator *shape.ParticleGenerator
	perSecond float64
	max       int
	total     int
	pending   float64
}

// Simulation owns the particle arena and every object acting on it
// Not safe for concurrent use; Update and Draw run on one goroutine
type Simulation struct {
	particles   []physics.Particle
	springs     []physics.Spring
	constraints []physics.Constraint
	forces      []physics.ForceGenerator
	planes      []*physics.Plane

	cubes    []cubeSlot
	cloths   []clothSlot
	emitters []*emitter

	integrator  physics.Integrator
	restitution float64
	iterations  int

	listeners []ContactListener
	contacts  []physics.Contact

	steps   uint64
	simTime float64

	logger *log.Logger

	// Draw scratch buffers
	drawPositions []vmath.Vec3F
	drawRadii     []float64
	drawColors    []vmath.Vec3F
}

// New creates an empty simulation with an Euler integrator and default restitution
func New(opts ...Option) *Simulation {
	s := &Simulation{
		integrator:  physics.NewEuler(),
		restitution: parameter.DefaultRestitution,
		iterations:  parameter.ConstraintIterations,
		logger:      log.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// SetIntegrator swaps the integrator; nil leaves Update without one and makes it panic
func (s *Simulation) SetIntegrator(i physics.Integrator) {
	s.integrator = i
}

// Integrator returns the configured integrator, possibly nil
func (s *Simulation) Integrator() physics.Integrator {
	return s.integrator
}

// SetRestitution sets the collision restitution, clamped to [0,1]
func (s *Simulation) SetRestitution(e float64) {
	if math.IsNaN(e) {
		return
	}
	s.restitution = math.Max(0, math.Min(1, e))
}

// Restitution returns the collision restitution
func (s *Simulation) Restitution() float64 {
	return s.restitution
}

// AddContactListener registers l for contact events, nil is ignored
func (s *Simulation) AddContactListener(l ContactListener) {
	if l != nil {
		s.listeners = append(s.listeners, l)
	}
}

// AddPlane registers a collision plane, nil is ignored
func (s *Simulation) AddPlane(p *physics.Plane) {
	if p != nil {
		s.planes = append(s.planes, p)
	}
}

// AddForceGenerator registers a force applied to every Active particle, nil is ignored
func (s *Simulation) AddForceGenerator(g physics.ForceGenerator) {
	if g != nil {
		s.forces = append(s.forces, g)
	}
}

// AddParticle appends p to the arena and returns its index
func (s *Simulation) AddParticle(p physics.Particle) int {
	s.particles = append(s.particles, p)
	return len(s.particles) - 1
}

// AddSpring links particles a and b at their current distance
func (s *Simulation) AddSpring(a, b int, stiffness, damping float64) error {
	sp, err := physics.NewSpring(s.particles, a, b, stiffness, damping)
	if err != nil {
		s.logger.Printf("simulation: spring %d-%d rejected: %v", a, b, err)
		return err
	}
	s.springs = append(s.springs, sp)
	return nil
}

// AddSpringWithRestLength links particles a and b with an explicit rest length
func (s *Simulation) AddSpringWithRestLength(a, b int, stiffness, damping, restLength float64) error {
	sp, err := physics.NewSpringWithRestLength(s.particles, a, b, stiffness, damping, restLength)
	if err != nil {
		s.logger.Printf("simulation: spring %d-%d rejected: %v", a, b, err)
		return err
	}
	s.springs = append(s.springs, sp)
	return nil
}

// AddConstraint holds particles a and b at a fixed distance
func (s *Simulation) AddConstraint(a, b int, length float64) error {
	c, err := physics.NewConstraint(s.particles, a, b, length)
	if err != nil {
		s.logger.Printf("simulation: constraint %d-%d rejected: %v", a, b, err)
		return err
	}
	s.constraints = append(s.constraints, c)
	return nil
}

// Pin marks particle i Fixed
func (s *Simulation) Pin(i int) error {
	return s.setType(i, physics.Fixed)
}

// Unpin marks particle i Active
func (s *Simulation) Unpin(i int) error {
	return s.setType(i, physics.Active)
}

func (s *Simulation) setType(i int, t physics.Type) error {
	if i < 0 || i >= len(s.particles) {
		return fmt.Errorf("particle %d of %d: %w", i, len(s.particles), ErrIndexOutOfRange)
	}
	s.particles[i].SetType(t)
	return nil
}

// Particle returns a copy of particle i
func (s *Simulation) Particle(i int) (physics.Particle, bool) {
	if i < 0 || i >= len(s.particles) {
		return physics.Particle{}, false
	}
	return s.particles[i], true
}

// ParticleCount returns the arena size
func (s *Simulation) ParticleCount() int {
	return len(s.particles)
}

// Springs returns a copy of the spring list
func (s *Simulation) Springs() []physics.Spring {
	return append([]physics.Spring(nil), s.springs...)
}

// Constraints returns a copy of the constraint list
func (s *Simulation) Constraints() []physics.Constraint {
	return append([]physics.Constraint(nil), s.constraints...)
}

// Update advances the simulation by dt
// Panics with ErrNoIntegrator when no integrator is configured
func (s *Simulation) Update(dt float64) {
	if s.integrator == nil {
		panic(ErrNoIntegrator)
	}

	s.contacts = s.contacts[:0]

	s.applyForces()
	s.updateSprings()
	s.integrateParticles(dt)
	s.updateConstraints()
	s.handleCollisions()
	s.clearForces()

	s.runEmitters(dt)

	s.steps++
	if dt > 0 {
		s.simTime += dt
	}

	for _, c := range s.contacts {
		for _, l := range s.listeners {
			l.OnContact(c)
		}
	}
}

func (s *Simulation) applyForces() {
	for i := range s.particles {
		p := &s.particles[i]
		if p.IsFixed() {
			continue
		}
		for _, g := range s.forces {
			g.ApplyForce(p)
		}
	}
}

func (s *Simulation) updateSprings() {
	for i := range s.springs {
		s.springs[i].ApplyForce(s.particles)
	}
}

func (s *Simulation) integrateParticles(dt float64) {
	for i := range s.particles {
		p := &s.particles[i]
		if p.IsFixed() {
			continue
		}
		s.integrator.Integrate(p.Acceleration(), p, dt)
	}
}

func (s *Simulation) updateConstraints() {
	for pass := 0; pass < s.iterations; pass++ {
		for i := range s.constraints {
			s.constraints[i].Satisfy(s.particles)
		}
	}
}

func (s *Simulation) handleCollisions() {
	n := len(s.particles)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			c, ok := physics.ResolveParticles(&s.particles[i], &s.particles[j], s.restitution)
			if !ok {
				continue
			}
			c.A, c.B = i, j
			s.contacts = append(s.contacts, c)
		}
	}

	for i := range s.particles {
		for k, pl := range s.planes {
			c, ok := physics.ResolvePlane(&s.particles[i], pl, s.restitution)
			if !ok {
				continue
			}
			c.A, c.B = i, k
			s.contacts = append(s.contacts, c)
		}
	}
}

func (s *Simulation) clearForces() {
	for i := range s.particles {
		s.particles[i].ClearForce()
	}
}

// Stats reports counters and total kinetic energy
func (s *Simulation) Stats() Stats {
	st := Stats{
		Steps:       s.steps,
		Time:        s.simTime,
		Particles:   len(s.particles),
		Springs:     len(s.springs),
		Constraints: len(s.constraints),
		Planes:      len(s.planes),
	}
	for i := range s.particles {
		st.KineticEnergy += s.particles[i].KineticEnergy()
	}
	return st
}
