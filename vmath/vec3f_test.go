package vmath

import (
	"math"
	"testing"
)

func TestV3FArithmetic(t *testing.T) {
	a := V3F(1, 2, 3)
	b := V3F(4, -5, 6)

	if got := V3FAdd(a, b); got != V3F(5, -3, 9) {
		t.Errorf("Expected (5,-3,9), got %v", got)
	}
	if got := V3FSub(a, b); got != V3F(-3, 7, -3) {
		t.Errorf("Expected (-3,7,-3), got %v", got)
	}
	if got := V3FScale(a, 2); got != V3F(2, 4, 6) {
		t.Errorf("Expected (2,4,6), got %v", got)
	}
	if got := V3FNeg(a); got != V3F(-1, -2, -3) {
		t.Errorf("Expected (-1,-2,-3), got %v", got)
	}
	if got := V3FAddScaled(a, b, 0.5); got != V3F(3, -0.5, 6) {
		t.Errorf("Expected (3,-0.5,6), got %v", got)
	}
}

func TestV3FDotCross(t *testing.T) {
	x := V3F(1, 0, 0)
	y := V3F(0, 1, 0)

	if d := V3FDot(x, y); d != 0 {
		t.Errorf("Expected orthogonal dot 0, got %f", d)
	}
	if d := V3FDot(V3F(1, 2, 3), V3F(4, 5, 6)); d != 32 {
		t.Errorf("Expected dot 32, got %f", d)
	}
	if c := V3FCross(x, y); c != V3F(0, 0, 1) {
		t.Errorf("Expected x cross y = z, got %v", c)
	}
	if c := V3FCross(y, x); c != V3F(0, 0, -1) {
		t.Errorf("Expected y cross x = -z, got %v", c)
	}
}

func TestV3FMagnitude(t *testing.T) {
	v := V3F(3, 4, 12)
	if m := V3FMag(v); m != 13 {
		t.Errorf("Expected magnitude 13, got %f", m)
	}
	if m := V3FMagSq(v); m != 169 {
		t.Errorf("Expected squared magnitude 169, got %f", m)
	}
	if d := V3FDist(V3F(1, 1, 1), V3F(1, 4, 5)); d != 5 {
		t.Errorf("Expected distance 5, got %f", d)
	}
}

func TestV3FNormalize(t *testing.T) {
	v := V3F(0, 3, 4)
	n := V3FNormalize(v)
	if math.Abs(V3FMag(n)-1) > 1e-12 {
		t.Errorf("Expected unit length, got %f", V3FMag(n))
	}

	length := V3FNormalizeInPlace(&v)
	if length != 5 {
		t.Errorf("Expected previous length 5, got %f", length)
	}
	if !V3FNear(v, V3F(0, 0.6, 0.8), 1e-12) {
		t.Errorf("Expected (0,0.6,0.8), got %v", v)
	}
}

func TestV3FNormalizeZero(t *testing.T) {
	var z Vec3F
	if got := V3FNormalize(z); got != Zero3F {
		t.Errorf("Expected zero vector, got %v", got)
	}

	length := V3FNormalizeInPlace(&z)
	if length != 0.0 {
		t.Errorf("Expected length 0, got %f", length)
	}
	if z != Zero3F {
		t.Errorf("Expected zero vector unchanged, got %v", z)
	}
}

func TestV3FDivByZero(t *testing.T) {
	if got := V3FDiv(V3F(1, 2, 3), 0); got != Zero3F {
		t.Errorf("Expected zero vector, got %v", got)
	}
	if got := V3FDiv(V3F(2, 4, 6), 2); got != V3F(1, 2, 3) {
		t.Errorf("Expected (1,2,3), got %v", got)
	}
}

func TestV3FLerpAndFinite(t *testing.T) {
	mid := V3FLerp(V3F(0, 0, 0), V3F(2, 4, 6), 0.5)
	if mid != V3F(1, 2, 3) {
		t.Errorf("Expected midpoint (1,2,3), got %v", mid)
	}
	if !V3FIsFinite(mid) {
		t.Error("Expected finite vector")
	}
	if V3FIsFinite(V3F(math.NaN(), 0, 0)) {
		t.Error("Expected NaN vector to be rejected")
	}
	if V3FIsFinite(V3F(0, math.Inf(1), 0)) {
		t.Error("Expected Inf vector to be rejected")
	}
}
