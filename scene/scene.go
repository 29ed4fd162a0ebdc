// Package scene describes a simulation setup in YAML and builds it
package scene

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/particle-sandbox/parameter"
	"github.com/lixenwraith/particle-sandbox/physics"
	"github.com/lixenwraith/particle-sandbox/shape"
	"github.com/lixenwraith/particle-sandbox/simulation"
	"github.com/lixenwraith/particle-sandbox/vmath"
)

var (
	// ErrInvalidScene wraps every validation failure
	ErrInvalidScene = errors.New("invalid scene")
	// ErrUnknownPreset is returned by Preset for unrecognized names
	ErrUnknownPreset = errors.New("unknown preset")
)

// Vec is a YAML flow sequence [x, y, z]
type Vec [3]float64

// V3F converts to the simulation vector type
func (v Vec) V3F() vmath.Vec3F {
	return vmath.V3F(v[0], v[1], v[2])
}

// IsZero lets omitempty drop unset vectors
func (v Vec) IsZero() bool {
	return v == Vec{}
}

// Integrator selects and tunes the stepping strategy
type Integrator struct {
	Type string  `yaml:"type"`
	Drag float64 `yaml:"drag,omitempty"`
}

type Plane struct {
	Normal   Vec     `yaml:"normal,flow"`
	Position Vec     `yaml:"position,flow"`
	Size     float64 `yaml:"size"`
	Color    Vec     `yaml:"color,flow"`
}

type Particle struct {
	Mass     float64 `yaml:"mass"`
	Radius   float64 `yaml:"radius"`
	Position Vec     `yaml:"position,flow"`
	Velocity Vec     `yaml:"velocity,flow,omitempty"`
	Color    Vec     `yaml:"color,flow"`
	Fixed    bool    `yaml:"fixed,omitempty"`
}

// Spring links two entries of the particles section by index
type Spring struct {
	A          int      `yaml:"a"`
	B          int      `yaml:"b"`
	Stiffness  float64  `yaml:"stiffness"`
	Damping    float64  `yaml:"damping"`
	RestLength *float64 `yaml:"rest_length,omitempty"`
	Constraint bool     `yaml:"constraint,omitempty"`
}

type Cube struct {
	Center    Vec     `yaml:"center,flow"`
	Size      float64 `yaml:"size"`
	Mass      float64 `yaml:"mass"`
	Radius    float64 `yaml:"radius"`
	Color     Vec     `yaml:"color,flow"`
	Fixed     bool    `yaml:"fixed,omitempty"`
	Wiring    string  `yaml:"wiring,omitempty"` // structural (default) or all-pairs
	Stiffness float64 `yaml:"stiffness,omitempty"`
	Damping   float64 `yaml:"damping,omitempty"`
}

type Cloth struct {
	Mass      float64  `yaml:"mass"`
	Radius    float64  `yaml:"radius"`
	NU        int      `yaml:"nu"`
	NV        int      `yaml:"nv"`
	P         Vec      `yaml:"p,flow"`
	PU        Vec      `yaml:"pu,flow"`
	PV        Vec      `yaml:"pv,flow"`
	Color     Vec      `yaml:"color,flow"`
	Pins      [][2]int `yaml:"pins,omitempty,flow"`
	Stiffness float64  `yaml:"stiffness,omitempty"`
	Damping   float64  `yaml:"damping,omitempty"`
}

type Emission struct {
	Rate float64 `yaml:"rate"`
	Max  int     `yaml:"max"`
}

type Generator struct {
	Mass     float64   `yaml:"mass"`
	Radius   float64   `yaml:"radius"`
	Count    int       `yaml:"count"`
	Center   Vec       `yaml:"center,flow"`
	RangeXZ  *float64  `yaml:"range_xz,omitempty"`
	RangeY   *float64  `yaml:"range_y,omitempty"`
	Seed     int64     `yaml:"seed,omitempty"`
	Emission *Emission `yaml:"emission,omitempty"`
}

// Scene is the top-level document
type Scene struct {
	Name                 string      `yaml:"name,omitempty"`
	Step                 float64     `yaml:"step,omitempty"`
	Integrator           Integrator  `yaml:"integrator"`
	Restitution          *float64    `yaml:"restitution,omitempty"`
	ConstraintIterations int         `yaml:"constraint_iterations,omitempty"`
	Gravity              *Vec        `yaml:"gravity,omitempty,flow"`
	Medium               *float64    `yaml:"medium,omitempty"`
	Planes               []Plane     `yaml:"planes,omitempty"`
	Particles            []Particle  `yaml:"particles,omitempty"`
	Springs              []Spring    `yaml:"springs,omitempty"`
	Cubes                []Cube      `yaml:"cubes,omitempty"`
	Cloths               []Cloth     `yaml:"cloths,omitempty"`
	Generators           []Generator `yaml:"generators,omitempty"`
}

// Load reads and validates a scene file
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene %s: %w", path, err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	return sc, nil
}

// Parse decodes YAML strictly, rejecting unknown keys, then validates
func Parse(data []byte) (*Scene, error) {
	var sc Scene
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Marshal encodes the scene as YAML
func (sc *Scene) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(sc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// TimeStep returns the configured fixed step or the default
func (sc *Scene) TimeStep() float64 {
	if sc.Step > 0 {
		return sc.Step
	}
	return parameter.DefaultStep
}

// Validate collects every problem into one joined error
func (sc *Scene) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidScene))
	}

	if sc.Step < 0 {
		bad("step %g is negative", sc.Step)
	}
	switch strings.ToLower(sc.Integrator.Type) {
	case "", "euler", "verlet":
	default:
		bad("integrator %q is not euler or verlet", sc.Integrator.Type)
	}
	if sc.Restitution != nil && (*sc.Restitution < 0 || *sc.Restitution > 1) {
		bad("restitution %g outside [0,1]", *sc.Restitution)
	}
	if sc.ConstraintIterations < 0 {
		bad("constraint_iterations %d is negative", sc.ConstraintIterations)
	}
	if sc.Medium != nil && *sc.Medium < 0 {
		bad("medium drag %g is negative", *sc.Medium)
	}

	for i, p := range sc.Planes {
		if p.Normal == (Vec{}) {
			bad("planes[%d]: zero normal", i)
		}
	}
	for i, p := range sc.Particles {
		if p.Mass < 0 || p.Radius < 0 {
			bad("particles[%d]: negative mass or radius", i)
		}
	}
	for i, s := range sc.Springs {
		if s.A < 0 || s.A >= len(sc.Particles) || s.B < 0 || s.B >= len(sc.Particles) {
			bad("springs[%d]: endpoints %d-%d outside %d particles", i, s.A, s.B, len(sc.Particles))
		}
		if s.A == s.B {
			bad("springs[%d]: endpoints must differ", i)
		}
		if s.Stiffness <= 0 || s.Damping < 0 {
			bad("springs[%d]: stiffness must be positive and damping non-negative", i)
		}
		if s.RestLength != nil && *s.RestLength < 0 {
			bad("springs[%d]: negative rest length", i)
		}
	}
	for i, c := range sc.Cubes {
		if c.Size <= 0 {
			bad("cubes[%d]: size %g must be positive", i, c.Size)
		}
		if c.Mass < 0 || c.Radius < 0 {
			bad("cubes[%d]: negative mass or radius", i)
		}
		switch c.Wiring {
		case "", "structural", "all-pairs":
		default:
			bad("cubes[%d]: wiring %q is not structural or all-pairs", i, c.Wiring)
		}
		if c.Stiffness < 0 || c.Damping < 0 {
			bad("cubes[%d]: negative spring coefficients", i)
		}
	}
	for i, c := range sc.Cloths {
		if c.NU <= 1 || c.NV <= 1 {
			bad("cloths[%d]: grid %dx%d needs at least 2x2", i, c.NU, c.NV)
		}
		if c.Mass < 0 || c.Radius < 0 {
			bad("cloths[%d]: negative mass or radius", i)
		}
		if c.Stiffness < 0 || c.Damping < 0 {
			bad("cloths[%d]: negative spring coefficients", i)
		}
		for _, pin := range c.Pins {
			if pin[0] < 0 || pin[0] >= c.NU || pin[1] < 0 || pin[1] >= c.NV {
				bad("cloths[%d]: pin %v outside grid", i, pin)
			}
		}
	}
	for i, g := range sc.Generators {
		if g.Count < 0 {
			bad("generators[%d]: negative count", i)
		}
		if g.Mass < 0 || g.Radius < 0 {
			bad("generators[%d]: negative mass or radius", i)
		}
		if g.Emission != nil && g.Emission.Rate < 0 {
			bad("generators[%d]: negative emission rate", i)
		}
	}

	return errors.Join(errs...)
}

func particleType(fixed bool) physics.Type {
	if fixed {
		return physics.Fixed
	}
	return physics.Active
}

func (sc *Scene) integrator() physics.Integrator {
	if strings.EqualFold(sc.Integrator.Type, "verlet") {
		return physics.NewVerlet(sc.Integrator.Drag)
	}
	return physics.NewEuler()
}

// Build validates the scene and constructs a ready-to-step simulation
func (sc *Scene) Build(opts ...simulation.Option) (*simulation.Simulation, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	all := []simulation.Option{simulation.WithIntegrator(sc.integrator())}
	if sc.Restitution != nil {
		all = append(all, simulation.WithRestitution(*sc.Restitution))
	}
	if sc.ConstraintIterations > 0 {
		all = append(all, simulation.WithConstraintIterations(sc.ConstraintIterations))
	}
	sim := simulation.New(append(all, opts...)...)

	if sc.Gravity != nil {
		sim.AddForceGenerator(physics.NewGravity(sc.Gravity.V3F()))
	}
	if sc.Medium != nil {
		m, err := physics.NewMedium(*sc.Medium)
		if err != nil {
			return nil, err
		}
		sim.AddForceGenerator(m)
	}

	for i, p := range sc.Planes {
		pl, err := physics.NewPlane(p.Normal.V3F(), p.Position.V3F(), p.Size, p.Color.V3F())
		if err != nil {
			return nil, fmt.Errorf("planes[%d]: %w", i, err)
		}
		sim.AddPlane(pl)
	}

	indices := make([]int, len(sc.Particles))
	for i, p := range sc.Particles {
		indices[i] = sim.AddParticle(physics.NewParticle(p.Mass, p.Radius, p.Position.V3F(), p.Velocity.V3F(), p.Color.V3F(), particleType(p.Fixed)))
	}
	for i, s := range sc.Springs {
		a, b := indices[s.A], indices[s.B]
		var err error
		if s.RestLength != nil {
			err = sim.AddSpringWithRestLength(a, b, s.Stiffness, s.Damping, *s.RestLength)
		} else {
			err = sim.AddSpring(a, b, s.Stiffness, s.Damping)
		}
		if err != nil {
			return nil, fmt.Errorf("springs[%d]: %w", i, err)
		}
		if s.Constraint {
			pa, _ := sim.Particle(a)
			pb, _ := sim.Particle(b)
			length := vmath.V3FDist(pa.Position, pb.Position)
			if s.RestLength != nil {
				length = *s.RestLength
			}
			if err := sim.AddConstraint(a, b, length); err != nil {
				return nil, fmt.Errorf("springs[%d]: %w", i, err)
			}
		}
	}

	for _, c := range sc.Cubes {
		cube := shape.NewCube(c.Center.V3F(), c.Size, c.Mass, c.Radius, c.Color.V3F(), particleType(c.Fixed))
		var shapeOpts []simulation.ShapeOption
		if c.Wiring == "all-pairs" {
			shapeOpts = append(shapeOpts, simulation.CubeWiringAllPairs())
		}
		if c.Stiffness > 0 {
			shapeOpts = append(shapeOpts, simulation.WithSpringCoefficients(c.Stiffness, c.Damping))
		}
		sim.AddCube(cube, shapeOpts...)
	}

	for i, c := range sc.Cloths {
		cloth, err := shape.NewCloth(c.Mass, c.Radius, c.NU, c.NV, c.P.V3F(), c.PU.V3F(), c.PV.V3F(), c.Color.V3F(), physics.Active)
		if err != nil {
			return nil, fmt.Errorf("cloths[%d]: %w", i, err)
		}
		var shapeOpts []simulation.ShapeOption
		if c.Stiffness > 0 {
			shapeOpts = append(shapeOpts, simulation.WithSpringCoefficients(c.Stiffness, c.Damping))
		}
		first := sim.AddCloth(cloth, shapeOpts...)
		for _, pin := range c.Pins {
			if err := sim.Pin(first + cloth.Index(pin[0], pin[1])); err != nil {
				return nil, fmt.Errorf("cloths[%d]: %w", i, err)
			}
		}
	}

	for i, g := range sc.Generators {
		rangeXZ, rangeY := parameter.GeneratorRangeXZ, parameter.GeneratorRangeY
		if g.RangeXZ != nil {
			rangeXZ = *g.RangeXZ
		}
		if g.RangeY != nil {
			rangeY = *g.RangeY
		}
		var rng *rand.Rand
		if g.Seed != 0 {
			rng = rand.New(rand.NewSource(g.Seed))
		}
		gen := shape.NewParticleGenerator(rng, g.Mass, g.Radius, g.Count, g.Center.V3F(), rangeXZ, rangeY)
		id := sim.AddParticleGenerator(gen)
		if g.Emission != nil {
			if err := sim.SetEmission(id, g.Emission.Rate, g.Emission.Max); err != nil {
				return nil, fmt.Errorf("generators[%d]: %w", i, err)
			}
		}
	}

	return sim, nil
}
