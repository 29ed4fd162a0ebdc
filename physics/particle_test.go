package physics

import (
	"testing"

	"github.com/lixenwraith/particle-sandbox/vmath"
)

func TestNewParticleSetsPreviousPosition(t *testing.T) {
	pos := vmath.V3F(1, 2, 3)
	p := NewParticle(2, 0.5, pos, vmath.V3F(0, 1, 0), vmath.V3F(1, 1, 1), Active)

	if p.PreviousPosition != pos {
		t.Errorf("Expected previous position %v, got %v", pos, p.PreviousPosition)
	}
	if p.Force != vmath.Zero3F {
		t.Errorf("Expected empty accumulator, got %v", p.Force)
	}
}

func TestAddForceAccumulates(t *testing.T) {
	p := NewParticle(1, 0.1, vmath.Zero3F, vmath.Zero3F, vmath.Zero3F, Active)
	p.AddForce(vmath.V3F(1, 0, 0))
	p.AddForce(vmath.V3F(0, 2, 0))

	if p.Force != vmath.V3F(1, 2, 0) {
		t.Errorf("Expected (1,2,0), got %v", p.Force)
	}

	p.ClearForce()
	if p.Force != vmath.Zero3F {
		t.Errorf("Expected cleared accumulator, got %v", p.Force)
	}
}

func TestAddForceIgnoredForFixed(t *testing.T) {
	p := NewParticle(1, 0.1, vmath.Zero3F, vmath.Zero3F, vmath.Zero3F, Fixed)
	p.AddForce(vmath.V3F(5, 5, 5))

	if p.Force != vmath.Zero3F {
		t.Errorf("Expected fixed particle to ignore force, got %v", p.Force)
	}
}

func TestAccelerationGuardsMass(t *testing.T) {
	p := NewParticle(2, 0.1, vmath.Zero3F, vmath.Zero3F, vmath.Zero3F, Active)
	p.AddForce(vmath.V3F(4, 0, 0))
	if a := p.Acceleration(); a != vmath.V3F(2, 0, 0) {
		t.Errorf("Expected (2,0,0), got %v", a)
	}

	p.Mass = 0
	if a := p.Acceleration(); a != vmath.Zero3F {
		t.Errorf("Expected zero acceleration for massless particle, got %v", a)
	}
}

func TestSetTypePinsAtRest(t *testing.T) {
	p := NewParticle(1, 0.1, vmath.V3F(0, 1, 0), vmath.V3F(3, 0, 0), vmath.Zero3F, Active)
	p.PreviousPosition = vmath.V3F(-1, 1, 0)
	p.SetType(Fixed)

	if !p.IsFixed() {
		t.Fatal("Expected particle to be fixed")
	}
	if p.Velocity != vmath.Zero3F {
		t.Errorf("Expected zero velocity after pin, got %v", p.Velocity)
	}
	if p.PreviousPosition != p.Position {
		t.Errorf("Expected history realigned, got %v", p.PreviousPosition)
	}
	if p.InverseMass() != 0 {
		t.Errorf("Expected zero inverse mass, got %f", p.InverseMass())
	}
}
