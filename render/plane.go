package render

import (
	"math"

	"github.com/lixenwraith/particle-sandbox/vmath"
)

// PlaneAxes returns two in-plane half extents of length size, orthogonal to normal and each other
// ok is false for a zero normal or non-positive size
func PlaneAxes(normal vmath.Vec3F, size float64) (u, v vmath.Vec3F, ok bool) {
	n := vmath.V3FNormalize(normal)
	if n == vmath.Zero3F || size <= 0 {
		return vmath.Vec3F{}, vmath.Vec3F{}, false
	}
	helper := vmath.V3F(1, 0, 0)
	if math.Abs(n.X) > 0.9 {
		helper = vmath.V3F(0, 0, 1)
	}
	uDir := vmath.V3FNormalize(vmath.V3FCross(n, helper))
	vDir := vmath.V3FCross(n, uDir)
	return vmath.V3FScale(uDir, size), vmath.V3FScale(vDir, size), true
}

// PlaneCorners returns the square extent of a plane in winding order
func PlaneCorners(position, normal vmath.Vec3F, size float64) ([4]vmath.Vec3F, bool) {
	u, v, ok := PlaneAxes(normal, size)
	if !ok {
		return [4]vmath.Vec3F{}, false
	}
	return [4]vmath.Vec3F{
		vmath.V3FSub(vmath.V3FSub(position, u), v),
		vmath.V3FSub(vmath.V3FAdd(position, u), v),
		vmath.V3FAdd(vmath.V3FAdd(position, u), v),
		vmath.V3FAdd(vmath.V3FSub(position, u), v),
	}, true
}
