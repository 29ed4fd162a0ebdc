// Command cloth-viewer shows a scene in a raylib window
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/lixenwraith/particle-sandbox/parameter"
	"github.com/lixenwraith/particle-sandbox/render/window"
	"github.com/lixenwraith/particle-sandbox/scene"
	"github.com/lixenwraith/particle-sandbox/simulation"
)

const (
	windowWidth  = 1280
	windowHeight = 720
	targetFPS    = 60
)

func main() {
	var (
		scenePath  string
		presetName string
	)
	flag.StringVar(&scenePath, "scene", "", "YAML scene file")
	flag.StringVar(&presetName, "preset", "cloth", "Built-in scene")
	flag.Parse()

	var (
		sc  *scene.Scene
		err error
	)
	if scenePath != "" {
		sc, err = scene.Load(scenePath)
	} else {
		sc, err = scene.Preset(presetName)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	sim, err := sc.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(windowWidth, windowHeight, "particle-sandbox: "+sc.Name)
	defer rl.CloseWindow()
	rl.SetTargetFPS(targetFPS)

	cam := rl.Camera3D{
		Position:   rl.NewVector3(25, 20, 25),
		Target:     rl.NewVector3(0, 8, 0),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}

	renderer := window.New()
	step := sc.TimeStep()
	acc := 0.0
	paused := false

	for !rl.WindowShouldClose() {
		switch {
		case rl.IsKeyPressed(rl.KeySpace):
			paused = !paused
		case rl.IsKeyPressed(rl.KeyW):
			renderer.Wireframe = !renderer.Wireframe
		case rl.IsKeyPressed(rl.KeyR):
			if fresh, err := sc.Build(); err != nil {
				log.Printf("reset: %v", err)
			} else {
				sim = fresh
				acc = 0
			}
		}
		rl.UpdateCamera(&cam, rl.CameraOrbital)

		if !paused {
			acc += min(float64(rl.GetFrameTime()), parameter.MaxFrameStep)
			for acc >= step {
				sim.Update(step)
				acc -= step
			}
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		rl.BeginMode3D(cam)
		sim.Draw(renderer)
		rl.EndMode3D()
		drawHUD(sim.Stats(), paused)
		rl.EndDrawing()
	}
}

func drawHUD(st simulation.Stats, paused bool) {
	rl.DrawText(fmt.Sprintf("step %d  t=%.2fs  particles %d  springs %d  KE %.1f", st.Steps, st.Time, st.Particles, st.Springs, st.KineticEnergy), 10, 10, 18, rl.LightGray)
	help := "space pause  w wireframe  r reset  esc quit"
	if paused {
		help = "[paused]  " + help
	}
	rl.DrawText(help, 10, 32, 18, rl.Gray)
	rl.DrawFPS(10, 54)
}
