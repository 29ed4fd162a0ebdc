package physics

import (
	"fmt"

	"github.com/lixenwraith/particle-sandbox/vmath"
)

// Plane is an infinite collision half-space; Size only hints how large to draw it
type Plane struct {
	Normal   vmath.Vec3F
	Position vmath.Vec3F
	Size     float64
	Color    vmath.Vec3F
}

// NewPlane normalizes the normal; a zero normal is rejected
func NewPlane(normal, position vmath.Vec3F, size float64, color vmath.Vec3F) (*Plane, error) {
	n := vmath.V3FNormalize(normal)
	if n == vmath.Zero3F {
		return nil, fmt.Errorf("plane normal is zero: %w", ErrInvalidArgument)
	}
	return &Plane{Normal: n, Position: position, Size: size, Color: color}, nil
}

// SignedDistance is positive on the side the normal points to
func (pl *Plane) SignedDistance(point vmath.Vec3F) float64 {
	return vmath.V3FDot(vmath.V3FSub(point, pl.Position), pl.Normal)
}
