package parameter

// Numerical guards
const (
	// LengthEpsilon is the length below which a spring or constraint direction is undefined
	LengthEpsilon = 1e-6
	// MassEpsilon is the mass below which a particle receives zero acceleration
	MassEpsilon = 1e-9
	// ContactEpsilonSq rejects coincident particle pairs during collision detection
	ContactEpsilonSq = 1e-9
	// VerletMinStep is the smallest dt Verlet derives velocity from
	VerletMinStep = 1e-9
)

// Simulation defaults
const (
	ConstraintIterations = 10
	DefaultRestitution   = 0.5
	DefaultGravityY      = -9.8
	DefaultVerletDrag    = 0.01
	DefaultStep          = 1.0 / 60.0
	MaxFrameStep         = 0.1
)

// Shape wiring defaults
const (
	ClothStiffness = 100.0
	ClothDamping   = 1.0
	CubeStiffness  = 100.0
	CubeDamping    = 5.0
)

// Particle generator defaults: fountain spread of ±2 in x/z, 0..500 above the center
const (
	GeneratorRangeXZ = 2.0
	GeneratorRangeY  = 500.0
)
