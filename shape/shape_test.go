package shape

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/lixenwraith/particle-sandbox/physics"
	"github.com/lixenwraith/particle-sandbox/vmath"
)

func TestCubeCorners(t *testing.T) {
	c := NewCube(vmath.V3F(0, 10, 0), 2, 8, 0.1, vmath.V3F(1, 0, 0), physics.Active)

	for i, p := range c.Particles {
		if p.Mass != 1 {
			t.Errorf("corner %d: Expected mass 1, got %f", i, p.Mass)
		}
		wantY := 11.0
		if i >= 4 {
			wantY = 9.0
		}
		if p.Position.Y != wantY {
			t.Errorf("corner %d: Expected y=%f, got %f", i, wantY, p.Position.Y)
		}
		if math.Abs(p.Position.X) != 1 || math.Abs(p.Position.Z) != 1 {
			t.Errorf("corner %d: Expected |x|=|z|=1, got %v", i, p.Position)
		}
	}

	// Vertical pairs share x,z
	for i := 0; i < 4; i++ {
		top, bottom := c.Particles[i].Position, c.Particles[i+4].Position
		if top.X != bottom.X || top.Z != bottom.Z {
			t.Errorf("Expected corner %d above corner %d, got %v and %v", i, i+4, top, bottom)
		}
	}
}

func TestCubeTopology(t *testing.T) {
	c := NewCube(vmath.Vec3F{}, 2, 8, 0.1, vmath.Vec3F{}, physics.Active)

	checkLength := func(name string, pairs [][2]int, want float64) {
		for _, e := range pairs {
			d := vmath.V3FDist(c.Particles[e[0]].Position, c.Particles[e[1]].Position)
			if math.Abs(d-want) > 1e-9 {
				t.Errorf("%s %v: Expected length %f, got %f", name, e, want, d)
			}
		}
	}

	if n := len(c.Edges()); n != 12 {
		t.Errorf("Expected 12 edges, got %d", n)
	}
	if n := len(c.FaceDiagonals()); n != 12 {
		t.Errorf("Expected 12 face diagonals, got %d", n)
	}
	if n := len(c.BodyDiagonals()); n != 4 {
		t.Errorf("Expected 4 body diagonals, got %d", n)
	}
	if n := len(c.AllPairs()); n != 28 {
		t.Errorf("Expected 28 vertex pairs, got %d", n)
	}

	checkLength("edge", c.Edges(), 2)
	checkLength("face diagonal", c.FaceDiagonals(), 2*math.Sqrt2)
	checkLength("body diagonal", c.BodyDiagonals(), 2*math.Sqrt(3))

	// Structural sets partition all pairs
	seen := make(map[[2]int]bool)
	for _, set := range [][][2]int{c.Edges(), c.FaceDiagonals(), c.BodyDiagonals()} {
		for _, e := range set {
			if e[0] > e[1] {
				e[0], e[1] = e[1], e[0]
			}
			if seen[e] {
				t.Errorf("Expected pair %v once, got duplicate", e)
			}
			seen[e] = true
		}
	}
	if len(seen) != 28 {
		t.Errorf("Expected 28 distinct structural pairs, got %d", len(seen))
	}

	faces := c.Faces()
	if len(faces) != 24 {
		t.Fatalf("Expected 24 face indices, got %d", len(faces))
	}
	// Every face is planar along one axis
	for f := 0; f < 6; f++ {
		q := faces[f*4 : f*4+4]
		p0 := c.Particles[q[0]].Position
		sameX, sameY, sameZ := true, true, true
		for _, idx := range q[1:] {
			p := c.Particles[idx].Position
			sameX = sameX && p.X == p0.X
			sameY = sameY && p.Y == p0.Y
			sameZ = sameZ && p.Z == p0.Z
		}
		if !sameX && !sameY && !sameZ {
			t.Errorf("face %d: Expected axis-aligned quad, got %v", f, q)
		}
	}
}

func TestClothIndexAndCorners(t *testing.T) {
	p := vmath.V3F(0, 0, 0)
	pU := vmath.V3F(2, 0, 0)
	pV := vmath.V3F(0, 0, 2)

	c, err := NewCloth(9, 0.1, 3, 3, p, pU, pV, vmath.V3F(0.2, 0.4, 0.6), physics.Active)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(c.Particles) != 9 {
		t.Fatalf("Expected 9 particles, got %d", len(c.Particles))
	}

	cases := []struct {
		u, v int
		want vmath.Vec3F
	}{
		{0, 0, p},
		{2, 0, pU},
		{0, 2, pV},
		{2, 2, vmath.V3F(2, 0, 2)},
		{1, 1, vmath.V3F(1, 0, 1)},
	}
	for _, tc := range cases {
		got := c.Particles[c.Index(tc.u, tc.v)].Position
		if !vmath.V3FNear(got, tc.want, 1e-12) {
			t.Errorf("(%d,%d): Expected %v, got %v", tc.u, tc.v, tc.want, got)
		}
	}
	if idx := c.Index(1, 2); idx != 5 {
		t.Errorf("Expected index 5, got %d", idx)
	}
	for i, part := range c.Particles {
		if part.Mass != 1 {
			t.Errorf("particle %d: Expected mass 1, got %f", i, part.Mass)
		}
	}
}

func TestClothRejectsDegenerateGrid(t *testing.T) {
	for _, dims := range [][2]int{{1, 3}, {3, 1}, {0, 0}} {
		_, err := NewCloth(1, 0.1, dims[0], dims[1], vmath.Vec3F{}, vmath.V3F(1, 0, 0), vmath.V3F(0, 0, 1), vmath.Vec3F{}, physics.Active)
		if !errors.Is(err, physics.ErrInvalidArgument) {
			t.Errorf("%v: Expected ErrInvalidArgument, got %v", dims, err)
		}
	}
}

func TestClothQuads(t *testing.T) {
	c, err := NewCloth(1, 0.1, 4, 3, vmath.Vec3F{}, vmath.V3F(3, 0, 0), vmath.V3F(0, 0, 2), vmath.V3F(1, 0.25, 0), physics.Active)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	even, odd := c.Quads()
	// 3x2 cells, 3 of each tone
	if len(even) != 12 || len(odd) != 12 {
		t.Errorf("Expected 12 indices per tone, got %d and %d", len(even), len(odd))
	}
	if got := c.ComplementColor(); got != vmath.V3F(0, 0.75, 1) {
		t.Errorf("Expected complement (0,0.75,1), got %v", got)
	}
}

func TestParticleGenerator(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	center := vmath.V3F(0, 25, 0)
	g := NewParticleGenerator(rng, 10, 0.5, 250, center, 2, 500)

	if len(g.Particles) != 250 {
		t.Fatalf("Expected 250 particles, got %d", len(g.Particles))
	}
	for i, p := range g.Particles {
		if p.Type != physics.Active {
			t.Errorf("particle %d: Expected Active, got %v", i, p.Type)
		}
		if p.Mass != 10 || p.Radius != 0.5 {
			t.Errorf("particle %d: Expected mass 10 radius 0.5, got %f %f", i, p.Mass, p.Radius)
		}
		d := vmath.V3FSub(p.Position, center)
		if math.Abs(d.X) > 2 || math.Abs(d.Z) > 2 || d.Y < 0 || d.Y > 500 {
			t.Errorf("particle %d: Expected offset in range, got %v", i, d)
		}
		c := p.Color
		if c.X < 0 || c.X > 1 || c.Y < 0 || c.Y > 1 || c.Z < 0 || c.Z > 1 {
			t.Errorf("particle %d: Expected color in unit cube, got %v", i, c)
		}
	}

	more := g.Emit(5)
	if len(more) != 5 {
		t.Errorf("Expected 5 emitted particles, got %d", len(more))
	}
	if len(g.Particles) != 250 {
		t.Errorf("Expected Emit to leave stored particles alone, got %d", len(g.Particles))
	}
}
