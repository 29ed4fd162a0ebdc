package scene

import (
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lixenwraith/particle-sandbox/physics"
	"github.com/lixenwraith/particle-sandbox/simulation"
)

const pendulumYAML = `
name: pendulum
step: 0.01
integrator: {type: verlet, drag: 0.02}
restitution: 0.8
constraint_iterations: 4
gravity: [0, -9.8, 0]
medium: 0.1
planes:
  - {normal: [0, 1, 0], position: [0, 0, 0], size: 3, color: [0.5, 0.5, 0.5]}
particles:
  - {mass: 1, radius: 0.1, position: [0, 5, 0], color: [1, 0, 0], fixed: true}
  - {mass: 1, radius: 0.1, position: [1, 5, 0], color: [0, 1, 0]}
springs:
  - {a: 0, b: 1, stiffness: 50, damping: 1, constraint: true}
cubes:
  - {center: [0, 3, 0], size: 1, mass: 8, radius: 0.05, color: [0, 1, 0], wiring: all-pairs}
cloths:
  - mass: 9
    radius: 0.05
    nu: 3
    nv: 3
    p: [0, 8, 0]
    pu: [2, 8, 0]
    pv: [0, 8, 2]
    color: [0, 0, 1]
    pins: [[0, 0], [2, 0]]
generators:
  - {mass: 1, radius: 0.1, count: 4, center: [0, 20, 0], seed: 3, emission: {rate: 10, max: 8}}
`

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestParseAndBuild(t *testing.T) {
	sc, err := Parse([]byte(pendulumYAML))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if sc.Name != "pendulum" || sc.TimeStep() != 0.01 {
		t.Errorf("Expected pendulum with step 0.01, got %q %f", sc.Name, sc.TimeStep())
	}

	sim, err := sc.Build(simulation.WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if name := sim.Integrator().Name(); name != "verlet" {
		t.Errorf("Expected verlet integrator, got %s", name)
	}
	if sim.Restitution() != 0.8 {
		t.Errorf("Expected restitution 0.8, got %f", sim.Restitution())
	}

	st := sim.Stats()
	// 2 particles + 8 cube + 9 cloth + 4 generated
	if st.Particles != 23 {
		t.Errorf("Expected 23 particles, got %d", st.Particles)
	}
	// 1 + 28 cube + 26 cloth
	if st.Springs != 55 {
		t.Errorf("Expected 55 springs, got %d", st.Springs)
	}
	// 1 + 28 cube + 12 cloth
	if st.Constraints != 41 {
		t.Errorf("Expected 41 constraints, got %d", st.Constraints)
	}
	if st.Planes != 1 {
		t.Errorf("Expected 1 plane, got %d", st.Planes)
	}

	anchor, _ := sim.Particle(0)
	if anchor.Type != physics.Fixed {
		t.Errorf("Expected particle 0 fixed, got %v", anchor.Type)
	}
	// Cloth starts after 2 particles and 8 cube corners; Index(2,0) = 6
	pinned, _ := sim.Particle(10 + 6)
	if pinned.Type != physics.Fixed {
		t.Errorf("Expected cloth pin fixed, got %v", pinned.Type)
	}

	sim.Update(sc.TimeStep())
	if n := sim.ParticleCount(); n != 23 {
		t.Errorf("Expected no emission in a 0.01s step at rate 10, got %d particles", n)
	}
	for i := 0; i < 20; i++ {
		sim.Update(sc.TimeStep())
	}
	if n := sim.ParticleCount(); n != 25 {
		t.Errorf("Expected 2 emitted particles after 0.21s, got %d total", n)
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("integrator: {type: euler}\nbogus: 1\n"))
	if err == nil {
		t.Fatal("Expected error for unknown key")
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	bad := -1.0
	sc := &Scene{
		Integrator:  Integrator{Type: "rk4"},
		Restitution: &bad,
		Planes:      []Plane{{Normal: Vec{}}},
		Particles:   []Particle{{Mass: 1, Radius: 0.1}},
		Springs:     []Spring{{A: 0, B: 0, Stiffness: 1}},
		Cubes:       []Cube{{Size: 0}},
		Cloths:      []Cloth{{NU: 1, NV: 5}},
		Generators:  []Generator{{Count: -1}},
	}

	err := sc.Validate()
	if !errors.Is(err, ErrInvalidScene) {
		t.Fatalf("Expected ErrInvalidScene, got %v", err)
	}
	msg := err.Error()
	for _, want := range []string{"integrator", "restitution", "planes[0]", "springs[0]", "cubes[0]", "cloths[0]", "generators[0]"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Expected error to mention %s, got %q", want, msg)
		}
	}

	if _, err := sc.Build(); !errors.Is(err, ErrInvalidScene) {
		t.Errorf("Expected Build to refuse invalid scene, got %v", err)
	}
}

func TestDefaultScene(t *testing.T) {
	sc := Default()
	if err := sc.Validate(); err != nil {
		t.Fatalf("Expected default scene valid, got %v", err)
	}
	sim, err := sc.Build()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	st := sim.Stats()
	if st.Particles != 250 || st.Planes != 5 {
		t.Errorf("Expected 250 particles in 5 planes, got %d and %d", st.Particles, st.Planes)
	}
	if name := sim.Integrator().Name(); name != "euler" {
		t.Errorf("Expected euler integrator, got %s", name)
	}
	if sim.Restitution() != 0.5 {
		t.Errorf("Expected default restitution 0.5, got %f", sim.Restitution())
	}
}

func TestPresets(t *testing.T) {
	for _, name := range PresetNames() {
		sc, err := Preset(name)
		if err != nil {
			t.Errorf("%s: Expected no error, got %v", name, err)
			continue
		}
		if _, err := sc.Build(); err != nil {
			t.Errorf("%s: Expected build to succeed, got %v", name, err)
		}
	}
	if _, err := Preset("tornado"); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("Expected ErrUnknownPreset, got %v", err)
	}
}

func TestLoadAndMarshal(t *testing.T) {
	data, err := Default().Marshal()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "fountain.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	sc, err := Load(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(sc.Planes) != 5 || len(sc.Generators) != 1 || sc.Generators[0].Count != 250 {
		t.Errorf("Expected fountain layout after reload, got %d planes %d generators", len(sc.Planes), len(sc.Generators))
	}
	if sc.Gravity == nil || *sc.Gravity != (Vec{0, -9.8, 0}) {
		t.Errorf("Expected gravity (0,-9.8,0), got %v", sc.Gravity)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}
