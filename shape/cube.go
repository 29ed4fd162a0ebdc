package shape

import (
	"github.com/lixenwraith/particle-sandbox/physics"
	"github.com/lixenwraith/particle-sandbox/vmath"
)

// CubeVertices is the particle count of a cube
const CubeVertices = 8

// Cube is an axis-aligned box of 8 corner particles
// Corner order: top face 0..3 (y max), bottom face 4..7 (y min), matching indices vertically
type Cube struct {
	Particles [CubeVertices]physics.Particle
	Color     vmath.Vec3F
}

// NewCube builds the 8 corners around center with uniform mass totalMass/8
func NewCube(center vmath.Vec3F, size, totalMass, radius float64, color vmath.Vec3F, typ physics.Type) *Cube {
	h := size * 0.5
	x0, x1 := center.X-h, center.X+h
	y0, y1 := center.Y-h, center.Y+h
	z0, z1 := center.Z-h, center.Z+h

	corners := [CubeVertices]vmath.Vec3F{
		{X: x0, Y: y1, Z: z0},
		{X: x1, Y: y1, Z: z0},
		{X: x1, Y: y1, Z: z1},
		{X: x0, Y: y1, Z: z1},
		{X: x0, Y: y0, Z: z0},
		{X: x1, Y: y0, Z: z0},
		{X: x1, Y: y0, Z: z1},
		{X: x0, Y: y0, Z: z1},
	}

	c := &Cube{Color: color}
	mass := totalMass / CubeVertices
	for i, pos := range corners {
		c.Particles[i] = physics.NewParticle(mass, radius, pos, vmath.Vec3F{}, color, typ)
	}
	return c
}

// cubeFaces lists the 6 quads as corner indices
var cubeFaces = [24]int{
	0, 3, 2, 1, // top
	4, 5, 6, 7, // bottom
	0, 1, 5, 4, // front
	1, 2, 6, 5, // right
	2, 3, 7, 6, // back
	0, 4, 7, 3, // left
}

// cubeEdges lists the 12 box edges
var cubeEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// cubeFaceDiagonals lists both diagonals of every face
var cubeFaceDiagonals = [12][2]int{
	{0, 2}, {1, 3},
	{4, 6}, {5, 7},
	{0, 5}, {1, 4},
	{1, 6}, {2, 5},
	{2, 7}, {3, 6},
	{0, 7}, {3, 4},
}

// cubeBodyDiagonals joins opposite corners through the center
var cubeBodyDiagonals = [4][2]int{
	{0, 6}, {1, 7}, {2, 4}, {3, 5},
}

// Faces returns 24 local indices, 4 per quad
func (c *Cube) Faces() []int {
	out := make([]int, len(cubeFaces))
	copy(out, cubeFaces[:])
	return out
}

// Edges returns the 12 local edge pairs
func (c *Cube) Edges() [][2]int {
	return append([][2]int(nil), cubeEdges[:]...)
}

// FaceDiagonals returns the 12 local face diagonal pairs
func (c *Cube) FaceDiagonals() [][2]int {
	return append([][2]int(nil), cubeFaceDiagonals[:]...)
}

// BodyDiagonals returns the 4 local body diagonal pairs
func (c *Cube) BodyDiagonals() [][2]int {
	return append([][2]int(nil), cubeBodyDiagonals[:]...)
}

// AllPairs returns every one of the 28 vertex pairs
func (c *Cube) AllPairs() [][2]int {
	pairs := make([][2]int, 0, CubeVertices*(CubeVertices-1)/2)
	for i := 0; i < CubeVertices; i++ {
		for j := i + 1; j < CubeVertices; j++ {
			pairs = append(pairs, [2]int{i, j})
		}
	}
	return pairs
}
