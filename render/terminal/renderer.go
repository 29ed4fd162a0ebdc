// Package terminal draws the simulation into a tcell screen
package terminal

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/particle-sandbox/render"
	"github.com/lixenwraith/particle-sandbox/simulation"
	"github.com/lixenwraith/particle-sandbox/vmath"
)

// Screen is the subset of tcell.Screen the renderer writes to
type Screen interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (width, height int)
	Clear()
	Show()
}

const (
	// Rows reserved below the scene for the HUD
	DefaultHUDRows = 2
	planeGridLines = 4
	fogDistance    = 80.0
)

// Renderer projects simulation primitives onto terminal cells with a depth buffer
type Renderer struct {
	Camera Camera

	screen  Screen
	hudRows int

	width, height int
	depth         []float64
	frame         view
}

var _ simulation.Renderer = (*Renderer)(nil)

// New creates a renderer drawing into screen
func New(screen Screen) *Renderer {
	return &Renderer{
		Camera:  DefaultCamera(),
		screen:  screen,
		hudRows: DefaultHUDRows,
	}
}

// Screen returns the screen the renderer draws into
func (r *Renderer) Screen() Screen {
	return r.screen
}

// SetHUDRows reserves n rows at the bottom for text
func (r *Renderer) SetHUDRows(n int) {
	if n >= 0 {
		r.hudRows = n
	}
}

// Begin clears the screen and depth buffer and snapshots the camera for this frame
func (r *Renderer) Begin() {
	r.screen.Clear()
	w, h := r.screen.Size()
	r.width = w
	r.height = max(0, h-r.hudRows)

	n := r.width * r.height
	if cap(r.depth) < n {
		r.depth = make([]float64, n)
	}
	r.depth = r.depth[:n]
	for i := range r.depth {
		r.depth[i] = math.Inf(1)
	}
	r.frame = r.Camera.view(r.width, r.height)
}

// End presents the frame
func (r *Renderer) End() {
	r.screen.Show()
}

// DrawText writes s at (x, y) without depth testing
func (r *Renderer) DrawText(x, y int, s string, color vmath.Vec3F) {
	style := tcell.StyleDefault.Foreground(toTcell(fromVec(color)))
	for _, ch := range s {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}

// plot writes one cell if it is nearer than what is already there
func (r *Renderer) plot(x, y int, depth float64, ch rune, style tcell.Style) bool {
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return false
	}
	idx := y*r.width + x
	if depth >= r.depth[idx] {
		return false
	}
	r.depth[idx] = depth
	r.screen.SetContent(x, y, ch, nil, style)
	return true
}

// line draws a depth-interpolated segment between two world points
func (r *Renderer) line(a, b vmath.Vec3F, ch rune, c colorful.Color) {
	x0, y0, d0, ok0 := r.frame.project(a)
	x1, y1, d1, ok1 := r.frame.project(b)
	if !ok0 || !ok1 {
		return
	}

	steps := int(math.Ceil(math.Max(math.Abs(x1-x0), math.Abs(y1-y0))))
	if steps > 4*(r.width+r.height) {
		return
	}
	if steps == 0 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		depth := d0 + (d1-d0)*t
		style := tcell.StyleDefault.Foreground(toTcell(fog(c, depth, fogDistance)))
		r.plot(int(math.Floor(x0+(x1-x0)*t)), int(math.Floor(y0+(y1-y0)*t)), depth, ch, style)
	}
}

// DrawPlane draws the plane's square extent as a gridded outline
func (r *Renderer) DrawPlane(position, normal vmath.Vec3F, size float64, color vmath.Vec3F) {
	u, v, ok := render.PlaneAxes(normal, size)
	if !ok {
		return
	}

	c := fromVec(color)
	for i := 0; i <= planeGridLines; i++ {
		t := -1 + 2*float64(i)/planeGridLines
		ch := '.'
		if i == 0 || i == planeGridLines {
			ch = '+'
		}
		// Lines parallel to v, then parallel to u
		base := vmath.V3FAddScaled(position, u, t)
		r.line(vmath.V3FSub(base, v), vmath.V3FAdd(base, v), ch, c)
		base = vmath.V3FAddScaled(position, v, t)
		r.line(vmath.V3FSub(base, u), vmath.V3FAdd(base, u), ch, c)
	}
}

// DrawSpring draws the spring as a line tinted by its strain
func (r *Renderer) DrawSpring(currentLength, restLength float64, a, b vmath.Vec3F) {
	r.line(a, b, '·', render.TensionColor(currentLength, restLength))
}

// DrawQuads outlines each quad
func (r *Renderer) DrawQuads(indices []int, positions []vmath.Vec3F, color vmath.Vec3F) {
	c := fromVec(color)
	for q := 0; q+3 < len(indices); q += 4 {
		for k := 0; k < 4; k++ {
			i, j := indices[q+k], indices[q+(k+1)%4]
			if i < 0 || j < 0 || i >= len(positions) || j >= len(positions) {
				continue
			}
			r.line(positions[i], positions[j], '░', c)
		}
	}
}

// DrawParticles draws shaded discs, or a single glyph when smaller than a cell
func (r *Renderer) DrawParticles(positions []vmath.Vec3F, radii []float64, colors []vmath.Vec3F) {
	for i, p := range positions {
		cx, cy, depth, ok := r.frame.project(p)
		if !ok {
			continue
		}
		var radius float64
		if i < len(radii) {
			radius = r.frame.scale(radii[i], depth)
		}
		base := colorful.Color{R: 1, G: 1, B: 1}
		if i < len(colors) {
			base = fromVec(colors[i])
		}
		base = fog(base, depth, fogDistance)

		if radius < 0.75 {
			ch := '•'
			if radius >= 0.4 {
				ch = '●'
			}
			r.plot(int(math.Floor(cx)), int(math.Floor(cy)), depth, ch, tcell.StyleDefault.Foreground(toTcell(base)))
			continue
		}
		r.disc(cx, cy, radius, depth, base)
	}
}

// disc fills a sphere silhouette lit from the upper left
func (r *Renderer) disc(cx, cy, radius, depth float64, base colorful.Color) {
	rx := radius * cellAspect
	minX := max(0, int(cx-rx-1))
	maxX := min(r.width-1, int(cx+rx+1))
	minY := max(0, int(cy-radius-1))
	maxY := min(r.height-1, int(cy+radius+1))

	for sy := minY; sy <= maxY; sy++ {
		for sx := minX; sx <= maxX; sx++ {
			nx := (float64(sx) + 0.5 - cx) / rx
			ny := (float64(sy) + 0.5 - cy) / radius
			distSq := nx*nx + ny*ny
			if distSq > 1 {
				continue
			}
			nz := math.Sqrt(1 - distSq)
			diffuse := math.Max(0, -0.4*nx-0.5*ny+0.77*nz)
			spec := math.Pow(diffuse, 24)
			shade := base.BlendRgb(colorful.Color{}, 0.6*(1-diffuse)).BlendRgb(highlightColor, spec*0.8)
			style := tcell.StyleDefault.Background(toTcell(shade))
			// Bulge the surface toward the viewer
			r.plot(sx, sy, depth-nz*radius*0.01, ' ', style)
		}
	}
}
