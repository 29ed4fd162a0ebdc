package simulation

import (
	"log"

	"github.com/lixenwraith/particle-sandbox/parameter"
	"github.com/lixenwraith/particle-sandbox/physics"
)

// Option configures a Simulation at construction time
type Option func(*Simulation)

// WithIntegrator replaces the default Euler integrator
func WithIntegrator(i physics.Integrator) Option {
	return func(s *Simulation) {
		if i != nil {
			s.integrator = i
		}
	}
}

// WithRestitution sets the coefficient used by both collision paths
func WithRestitution(e float64) Option {
	return func(s *Simulation) {
		s.SetRestitution(e)
	}
}

// WithConstraintIterations sets the relaxation passes per step, values below 1 are ignored
func WithConstraintIterations(n int) Option {
	return func(s *Simulation) {
		if n > 0 {
			s.iterations = n
		}
	}
}

// WithLogger routes setup diagnostics to l instead of the default logger
func WithLogger(l *log.Logger) Option {
	return func(s *Simulation) {
		if l != nil {
			s.logger = l
		}
	}
}

// ShapeOption tunes the spring network built by AddCube and AddCloth
type ShapeOption func(*shapeConfig)

type shapeConfig struct {
	stiffness float64
	damping   float64
	allPairs  bool
}

func newShapeConfig(stiffness, damping float64, opts []ShapeOption) shapeConfig {
	cfg := shapeConfig{stiffness: stiffness, damping: damping}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithSpringCoefficients overrides the default stiffness and damping of generated springs
func WithSpringCoefficients(stiffness, damping float64) ShapeOption {
	return func(c *shapeConfig) {
		c.stiffness = stiffness
		c.damping = damping
	}
}

// CubeWiringAllPairs links every vertex pair of a cube with a spring and a constraint
func CubeWiringAllPairs() ShapeOption {
	return func(c *shapeConfig) {
		c.allPairs = true
	}
}

func defaultCubeConfig(opts []ShapeOption) shapeConfig {
	return newShapeConfig(parameter.CubeStiffness, parameter.CubeDamping, opts)
}

func defaultClothConfig(opts []ShapeOption) shapeConfig {
	return newShapeConfig(parameter.ClothStiffness, parameter.ClothDamping, opts)
}
