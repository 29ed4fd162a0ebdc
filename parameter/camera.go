package parameter

import "math"

// Orbit camera defaults, framed on the fountain box
const (
	CameraTargetY  = 6.0
	CameraYaw      = 0.6
	CameraPitch    = 0.35
	CameraDistance = 30.0
	CameraFOV      = math.Pi / 3

	// CameraMaxPitch stops the orbit short of the poles where the basis degenerates
	CameraMaxPitch    = 1.5
	CameraMinDistance = 1.0
)

// Driver input steps
const (
	CameraOrbitStep = 0.08 // radians per key press
	CameraZoomStep  = 1.1
)
