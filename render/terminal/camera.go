package terminal

import (
	"math"

	"github.com/lixenwraith/particle-sandbox/parameter"
	"github.com/lixenwraith/particle-sandbox/vmath"
)

const (
	nearPlane   = 0.1
	minDistance = parameter.CameraMinDistance
	maxPitch    = parameter.CameraMaxPitch
	// Terminal cells are roughly twice as tall as wide
	cellAspect = 2.0
)

// Camera orbits a target point
type Camera struct {
	Target   vmath.Vec3F
	Yaw      float64 // radians around +Y
	Pitch    float64 // radians above the horizon
	Distance float64
	FOV      float64 // vertical field of view in radians
}

// DefaultCamera frames the fountain box from slightly above
func DefaultCamera() Camera {
	return Camera{
		Target:   vmath.V3F(0, parameter.CameraTargetY, 0),
		Yaw:      parameter.CameraYaw,
		Pitch:    parameter.CameraPitch,
		Distance: parameter.CameraDistance,
		FOV:      parameter.CameraFOV,
	}
}

// Orbit rotates the camera, pitch is clamped short of the poles
func (c *Camera) Orbit(dYaw, dPitch float64) {
	c.Yaw = math.Mod(c.Yaw+dYaw, 2*math.Pi)
	c.Pitch = math.Max(-maxPitch, math.Min(maxPitch, c.Pitch+dPitch))
}

// Zoom scales the orbit distance
func (c *Camera) Zoom(factor float64) {
	if factor <= 0 {
		return
	}
	c.Distance = math.Max(minDistance, c.Distance*factor)
}

// Eye returns the camera position
func (c *Camera) Eye() vmath.Vec3F {
	cp := math.Cos(c.Pitch)
	offset := vmath.V3F(cp*math.Sin(c.Yaw), math.Sin(c.Pitch), cp*math.Cos(c.Yaw))
	return vmath.V3FAddScaled(c.Target, offset, c.Distance)
}

// view holds the per-frame camera basis and screen mapping
type view struct {
	eye, right, up, forward vmath.Vec3F
	focal                   float64
	cx, cy                  float64
}

func (c *Camera) view(width, height int) view {
	eye := c.Eye()
	forward := vmath.V3FNormalize(vmath.V3FSub(c.Target, eye))
	right := vmath.V3FNormalize(vmath.V3FCross(forward, vmath.V3F(0, 1, 0)))
	up := vmath.V3FCross(right, forward)

	fov := c.FOV
	if fov <= 0 {
		fov = math.Pi / 3
	}
	return view{
		eye:     eye,
		right:   right,
		up:      up,
		forward: forward,
		focal:   float64(height) / 2 / math.Tan(fov/2),
		cx:      float64(width) / 2,
		cy:      float64(height) / 2,
	}
}

// project maps a world point to fractional cell coordinates and view depth
func (v *view) project(p vmath.Vec3F) (x, y, depth float64, ok bool) {
	d := vmath.V3FSub(p, v.eye)
	depth = vmath.V3FDot(d, v.forward)
	if depth < nearPlane {
		return 0, 0, depth, false
	}
	inv := v.focal / depth
	x = v.cx + vmath.V3FDot(d, v.right)*inv*cellAspect
	y = v.cy - vmath.V3FDot(d, v.up)*inv
	return x, y, depth, true
}

// scale returns the on-screen row count of a world length at depth
func (v *view) scale(length, depth float64) float64 {
	if depth < nearPlane {
		return 0
	}
	return length * v.focal / depth
}
