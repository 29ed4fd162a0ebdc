// Package window draws the simulation with raylib
// Draw calls must happen between rl.BeginMode3D and rl.EndMode3D on the thread that owns the window
package window

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/particle-sandbox/render"
	"github.com/lixenwraith/particle-sandbox/simulation"
	"github.com/lixenwraith/particle-sandbox/vmath"
)

const (
	defaultSphereRings  = 8
	defaultSphereSlices = 8
	surfaceAlpha        = 200
)

// Renderer issues raylib immediate-mode 3D draw calls
type Renderer struct {
	SphereRings  int32
	SphereSlices int32
	// Wireframe skips quad surfaces and outlines them instead
	Wireframe bool
}

// New returns a renderer with low-poly spheres
func New() *Renderer {
	return &Renderer{
		SphereRings:  defaultSphereRings,
		SphereSlices: defaultSphereSlices,
	}
}

var _ simulation.Renderer = (*Renderer)(nil)

func vec(v vmath.Vec3F) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}

func colorOf(c colorful.Color, alpha uint8) rl.Color {
	r, g, b := c.Clamped().RGB255()
	return rl.NewColor(r, g, b, alpha)
}

func colorVec(c vmath.Vec3F, alpha uint8) rl.Color {
	return colorOf(colorful.Color{R: c.X, G: c.Y, B: c.Z}, alpha)
}

// doubleTriangle draws both windings so surfaces show from either side under backface culling
func doubleTriangle(a, b, c rl.Vector3, col rl.Color) {
	rl.DrawTriangle3D(a, b, c, col)
	rl.DrawTriangle3D(a, c, b, col)
}

func (r *Renderer) DrawPlane(position, normal vmath.Vec3F, size float64, color vmath.Vec3F) {
	corners, ok := render.PlaneCorners(position, normal, size)
	if !ok {
		return
	}
	var v [4]rl.Vector3
	for i, c := range corners {
		v[i] = vec(c)
	}
	fill := colorVec(color, 90)
	doubleTriangle(v[0], v[1], v[2], fill)
	doubleTriangle(v[0], v[2], v[3], fill)

	edge := colorVec(color, 255)
	for i := range v {
		rl.DrawLine3D(v[i], v[(i+1)%4], edge)
	}
}

func (r *Renderer) DrawParticles(positions []vmath.Vec3F, radii []float64, colors []vmath.Vec3F) {
	for i, p := range positions {
		radius := float32(0.05)
		if i < len(radii) && radii[i] > 0 {
			radius = float32(radii[i])
		}
		col := rl.White
		if i < len(colors) {
			col = colorVec(colors[i], 255)
		}
		rl.DrawSphereEx(vec(p), radius, r.SphereRings, r.SphereSlices, col)
	}
}

func (r *Renderer) DrawSpring(currentLength, restLength float64, a, b vmath.Vec3F) {
	rl.DrawLine3D(vec(a), vec(b), colorOf(render.TensionColor(currentLength, restLength), 255))
}

func (r *Renderer) DrawQuads(indices []int, positions []vmath.Vec3F, color vmath.Vec3F) {
	col := colorVec(color, surfaceAlpha)
	for q := 0; q+3 < len(indices); q += 4 {
		var v [4]rl.Vector3
		valid := true
		for k := 0; k < 4; k++ {
			idx := indices[q+k]
			if idx < 0 || idx >= len(positions) {
				valid = false
				break
			}
			v[k] = vec(positions[idx])
		}
		if !valid {
			continue
		}
		if r.Wireframe {
			for k := 0; k < 4; k++ {
				rl.DrawLine3D(v[k], v[(k+1)%4], col)
			}
			continue
		}
		doubleTriangle(v[0], v[1], v[2], col)
		doubleTriangle(v[0], v[2], v[3], col)
	}
}
