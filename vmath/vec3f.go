package vmath

import (
	"math"
)

// Vec3F is a float64 3D vector used for all particle state
type Vec3F struct {
	X, Y, Z float64
}

// Zero3F is the zero vector
var Zero3F = Vec3F{}

func V3F(x, y, z float64) Vec3F {
	return Vec3F{x, y, z}
}

func V3FAdd(a, b Vec3F) Vec3F {
	return Vec3F{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func V3FSub(a, b Vec3F) Vec3F {
	return Vec3F{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func V3FScale(v Vec3F, s float64) Vec3F {
	return Vec3F{v.X * s, v.Y * s, v.Z * s}
}

func V3FNeg(v Vec3F) Vec3F {
	return Vec3F{-v.X, -v.Y, -v.Z}
}

// V3FDiv divides by a scalar, zero divisor yields the zero vector
func V3FDiv(v Vec3F, s float64) Vec3F {
	if s == 0 {
		return Vec3F{}
	}
	inv := 1.0 / s
	return Vec3F{v.X * inv, v.Y * inv, v.Z * inv}
}

// V3FAddScaled returns a + v*s, the common integration step
func V3FAddScaled(a, v Vec3F, s float64) Vec3F {
	return Vec3F{a.X + v.X*s, a.Y + v.Y*s, a.Z + v.Z*s}
}

func V3FDot(a, b Vec3F) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func V3FCross(a, b Vec3F) Vec3F {
	return Vec3F{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func V3FMagSq(v Vec3F) float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func V3FMag(v Vec3F) float64 {
	return math.Sqrt(V3FMagSq(v))
}

// V3FDist returns |a - b|
func V3FDist(a, b Vec3F) float64 {
	return V3FMag(V3FSub(a, b))
}

// V3FNormalize returns a unit copy, the zero vector stays zero
func V3FNormalize(v Vec3F) Vec3F {
	mag := V3FMag(v)
	if mag == 0 {
		return Vec3F{}
	}
	inv := 1.0 / mag
	return Vec3F{v.X * inv, v.Y * inv, v.Z * inv}
}

// V3FNormalizeInPlace scales v to unit length and returns the previous length
// Zero vector is left untouched and reports 0
func V3FNormalizeInPlace(v *Vec3F) float64 {
	mag := V3FMag(*v)
	if mag == 0 {
		return 0
	}
	inv := 1.0 / mag
	v.X *= inv
	v.Y *= inv
	v.Z *= inv
	return mag
}

// V3FLerp interpolates a→b by t without clamping
func V3FLerp(a, b Vec3F, t float64) Vec3F {
	return Vec3F{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
		a.Z + (b.Z-a.Z)*t,
	}
}

// V3FNear reports whether every component of a and b differs by at most eps
func V3FNear(a, b Vec3F, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps && math.Abs(a.Z-b.Z) <= eps
}

// V3FIsFinite rejects NaN and Inf components
func V3FIsFinite(v Vec3F) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsNaN(v.Z) &&
		!math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0) && !math.IsInf(v.Z, 0)
}
