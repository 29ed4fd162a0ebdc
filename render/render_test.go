package render

import (
	"math"
	"testing"

	"github.com/lixenwraith/particle-sandbox/vmath"
)

func TestTensionColor(t *testing.T) {
	if c := TensionColor(1, 1); !c.AlmostEqualRgb(SpringNeutral) {
		t.Errorf("Expected neutral at rest, got %v", c)
	}
	if c := TensionColor(2, 1); !c.AlmostEqualRgb(SpringStretched) {
		t.Errorf("Expected full red when stretched, got %v", c)
	}
	if c := TensionColor(0.5, 1); !c.AlmostEqualRgb(SpringCompressed) {
		t.Errorf("Expected full blue at half length, got %v", c)
	}
	if c := TensionColor(3, 0); !c.AlmostEqualRgb(SpringNeutral) {
		t.Errorf("Expected neutral for zero rest length, got %v", c)
	}
	c := TensionColor(1.1, 1)
	if c.R <= c.B {
		t.Errorf("Expected slightly stretched spring to lean red, got %v", c)
	}
}

func TestPlaneAxes(t *testing.T) {
	normals := []vmath.Vec3F{
		vmath.V3F(0, 1, 0),
		vmath.V3F(-1, 0, 0),
		vmath.V3F(0, 0, 1),
		vmath.V3F(1, 1, 1),
	}
	for _, n := range normals {
		u, v, ok := PlaneAxes(n, 3)
		if !ok {
			t.Fatalf("%v: Expected axes", n)
		}
		unit := vmath.V3FNormalize(n)
		if math.Abs(vmath.V3FDot(u, unit)) > 1e-9 || math.Abs(vmath.V3FDot(v, unit)) > 1e-9 {
			t.Errorf("%v: Expected axes in plane, got %v %v", n, u, v)
		}
		if math.Abs(vmath.V3FDot(u, v)) > 1e-9 {
			t.Errorf("%v: Expected orthogonal axes, got %v %v", n, u, v)
		}
		if math.Abs(vmath.V3FMag(u)-3) > 1e-9 || math.Abs(vmath.V3FMag(v)-3) > 1e-9 {
			t.Errorf("%v: Expected half extents of 3, got %f %f", n, vmath.V3FMag(u), vmath.V3FMag(v))
		}
	}

	if _, _, ok := PlaneAxes(vmath.Vec3F{}, 1); ok {
		t.Error("Expected zero normal rejected")
	}
	if _, ok := PlaneCorners(vmath.Vec3F{}, vmath.V3F(0, 1, 0), 0); ok {
		t.Error("Expected zero size rejected")
	}
}

func TestPlaneCornersFloor(t *testing.T) {
	corners, ok := PlaneCorners(vmath.V3F(0, 2, 0), vmath.V3F(0, 1, 0), 3)
	if !ok {
		t.Fatal("Expected corners")
	}
	for i, c := range corners {
		if c.Y != 2 {
			t.Errorf("corner %d: Expected y=2, got %f", i, c.Y)
		}
		if math.Abs(math.Abs(c.X)-3) > 1e-9 || math.Abs(math.Abs(c.Z)-3) > 1e-9 {
			t.Errorf("corner %d: Expected |x|=|z|=3, got %v", i, c)
		}
	}
}
