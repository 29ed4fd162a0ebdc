package simulation

import "errors"

var (
	// ErrNoIntegrator is the panic value of Update when no integrator is configured
	ErrNoIntegrator = errors.New("simulation has no integrator")
	// ErrIndexOutOfRange reports a particle or generator index outside the arena
	ErrIndexOutOfRange = errors.New("index out of range")
)
