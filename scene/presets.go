package scene

import (
	"fmt"
	"sort"
)

const boxSize = 3.0

var planeGray = Vec{0.5, 0.5, 0.5}

// boxPlanes is an open box: floor plus four inward-facing walls
func boxPlanes() []Plane {
	return []Plane{
		{Normal: Vec{0, 1, 0}, Position: Vec{0, 0, 0}, Size: boxSize, Color: planeGray},
		{Normal: Vec{-1, 0, 0}, Position: Vec{boxSize, boxSize, 0}, Size: boxSize, Color: planeGray},
		{Normal: Vec{1, 0, 0}, Position: Vec{-boxSize, boxSize, 0}, Size: boxSize, Color: planeGray},
		{Normal: Vec{0, 0, -1}, Position: Vec{0, boxSize, boxSize}, Size: boxSize, Color: planeGray},
		{Normal: Vec{0, 0, 1}, Position: Vec{0, boxSize, -boxSize}, Size: boxSize, Color: planeGray},
	}
}

func earthGravity() *Vec {
	return &Vec{0, -9.8, 0}
}

// Default is the particle fountain: 250 heavy particles dropped into the box
func Default() *Scene {
	return &Scene{
		Name:       "fountain",
		Integrator: Integrator{Type: "euler"},
		Gravity:    earthGravity(),
		Planes:     boxPlanes(),
		Generators: []Generator{
			{Mass: 10, Radius: 0.5, Count: 250, Center: Vec{0, 25, 0}},
		},
	}
}

func cubeScene() *Scene {
	return &Scene{
		Name:       "cube",
		Integrator: Integrator{Type: "euler"},
		Gravity:    earthGravity(),
		Planes:     boxPlanes(),
		Cubes: []Cube{
			{Center: Vec{-1, 14, 0}, Size: 2, Mass: 2, Radius: 0.1, Color: Vec{0, 1, 0}},
		},
	}
}

func clothScene() *Scene {
	return &Scene{
		Name:       "cloth",
		Integrator: Integrator{Type: "verlet", Drag: 0.01},
		Gravity:    earthGravity(),
		Planes:     boxPlanes(),
		Cloths: []Cloth{
			{
				Mass:   100,
				Radius: 0.1,
				NU:     15,
				NV:     15,
				P:      Vec{3, 15, 3},
				PU:     Vec{-3, 15, 3},
				PV:     Vec{3, 15, -3},
				Color:  Vec{0, 0, 1},
				Pins:   [][2]int{{0, 0}, {14, 0}},
			},
		},
	}
}

var presets = map[string]func() *Scene{
	"fountain": Default,
	"cube":     cubeScene,
	"cloth":    clothScene,
}

// Preset returns a fresh copy of a built-in scene
func Preset(name string) (*Scene, error) {
	build, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%q (have %v): %w", name, PresetNames(), ErrUnknownPreset)
	}
	return build(), nil
}

// PresetNames lists built-in scenes in sorted order
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
