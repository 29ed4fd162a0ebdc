package shape

import (
	"fmt"

	"github.com/lixenwraith/particle-sandbox/physics"
	"github.com/lixenwraith/particle-sandbox/vmath"
)

// Cloth is an nU × nV particle grid spanned by three corner points
type Cloth struct {
	Particles []physics.Particle
	Color     vmath.Vec3F
	nU, nV    int
}

// NewCloth lays out particles by bilinear interpolation from p toward pU and pV
// Mass is split uniformly; both dimensions must be at least 2
func NewCloth(totalMass, radius float64, nU, nV int, p, pU, pV, color vmath.Vec3F, typ physics.Type) (*Cloth, error) {
	if nU <= 1 || nV <= 1 {
		return nil, fmt.Errorf("cloth needs at least 2x2 particles, got %dx%d: %w", nU, nV, physics.ErrInvalidArgument)
	}

	count := nU * nV
	mass := totalMass / float64(count)
	du := vmath.V3FScale(vmath.V3FSub(pU, p), 1.0/float64(nU-1))
	dv := vmath.V3FScale(vmath.V3FSub(pV, p), 1.0/float64(nV-1))

	c := &Cloth{
		Particles: make([]physics.Particle, count),
		Color:     color,
		nU:        nU,
		nV:        nV,
	}
	for u := 0; u < nU; u++ {
		for v := 0; v < nV; v++ {
			pos := vmath.V3FAdd(p, vmath.V3FAdd(vmath.V3FScale(du, float64(u)), vmath.V3FScale(dv, float64(v))))
			c.Particles[c.Index(u, v)] = physics.NewParticle(mass, radius, pos, vmath.Vec3F{}, color, typ)
		}
	}
	return c, nil
}

// DimU returns the particle count along u
func (c *Cloth) DimU() int { return c.nU }

// DimV returns the particle count along v
func (c *Cloth) DimV() int { return c.nV }

// Index maps grid coordinates to the particle slice: u*nV + v
func (c *Cloth) Index(u, v int) int {
	return u*c.nV + v
}

// Quads returns two checkerboard sets of local quad indices for two-tone drawing
func (c *Cloth) Quads() (even, odd []int) {
	cells := (c.nU - 1) * (c.nV - 1)
	even = make([]int, 0, cells*2+4)
	odd = make([]int, 0, cells*2+4)
	for u := 0; u < c.nU-1; u++ {
		for v := 0; v < c.nV-1; v++ {
			quad := []int{c.Index(u, v), c.Index(u+1, v), c.Index(u+1, v+1), c.Index(u, v+1)}
			if (u+v)%2 == 0 {
				even = append(even, quad...)
			} else {
				odd = append(odd, quad...)
			}
		}
	}
	return even, odd
}

// ComplementColor is the second checkerboard tone
func (c *Cloth) ComplementColor() vmath.Vec3F {
	return vmath.V3F(1-c.Color.X, 1-c.Color.Y, 1-c.Color.Z)
}
