package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/particle-sandbox/audio"
	"github.com/lixenwraith/particle-sandbox/parameter"
	"github.com/lixenwraith/particle-sandbox/render/terminal"
	"github.com/lixenwraith/particle-sandbox/replay"
	"github.com/lixenwraith/particle-sandbox/scene"
	"github.com/lixenwraith/particle-sandbox/simulation"
	"github.com/lixenwraith/particle-sandbox/stream"
	"github.com/lixenwraith/particle-sandbox/vmath"
)

const (
	framePeriod = 16 * time.Millisecond // ~60 FPS
	// Stream at most this often regardless of frame rate
	streamPeriod = 50 * time.Millisecond
)

var (
	hudColor    = vmath.V3F(0.8, 0.8, 0.8)
	pausedColor = vmath.V3F(1, 0.8, 0.2)
)

type app struct {
	name string
	sc   *scene.Scene
	sim  *simulation.Simulation
	step float64
	acc  float64

	// Scene pins, toggled together
	pins   []int
	pinned bool

	// Playback
	player  *replay.Player
	current replay.Frame
	pending replay.Frame
	clock   float64
	ended   bool

	renderer   *terminal.Renderer
	audio      *audio.ImpactPlayer
	recorder   *replay.Recorder
	hub        *stream.Hub
	lastStream time.Time

	paused bool
	buf    drawBuffers
}

type drawBuffers struct {
	positions []vmath.Vec3F
	radii     []float64
	colors    []vmath.Vec3F
}

func newApp(scenePath, presetName, replayDir string) (*app, error) {
	if replayDir != "" {
		player, err := replay.Open(replayDir)
		if err != nil {
			return nil, fmt.Errorf("replay: %w", err)
		}
		a := &app{name: player.Manifest().Name, player: player}
		a.pending, err = player.Next()
		if err != nil {
			return nil, fmt.Errorf("replay: %w", err)
		}
		a.current = a.pending
		return a, nil
	}

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
		return nil, err
	}

	a := &app{sc: sc, name: sc.Name}
	if err := a.build(); err != nil {
		return nil, err
	}
	return a, nil
}

// build creates a fresh simulation from the scene
func (a *app) build() error {
	sim, err := a.sc.Build(simulation.WithLogger(log.Default()))
	if err != nil {
		return err
	}
	a.sim = sim
	a.step = a.sc.TimeStep()
	a.acc = 0

	a.pins = a.pins[:0]
	for i := 0; i < sim.ParticleCount(); i++ {
		if p, ok := sim.Particle(i); ok && p.IsFixed() {
			a.pins = append(a.pins, i)
		}
	}
	a.pinned = true
	log.Printf("scene %q: %d particles, %d pins", a.name, sim.ParticleCount(), len(a.pins))
	return nil
}

// reset rebuilds the scene, carrying listeners over
func (a *app) reset() {
	if a.sim == nil {
		return
	}
	if err := a.build(); err != nil {
		log.Printf("reset: %v", err)
		return
	}
	if a.audio != nil {
		a.sim.AddContactListener(a.audio)
	}
	if a.recorder != nil {
		a.recorder.Rebase()
		a.sim.AddContactListener(a.recorder)
	}
}

func (a *app) togglePins() {
	if a.sim == nil {
		return
	}
	a.pinned = !a.pinned
	for _, i := range a.pins {
		var err error
		if a.pinned {
			err = a.sim.Pin(i)
		} else {
			err = a.sim.Unpin(i)
		}
		if err != nil {
			log.Printf("pin %d: %v", i, err)
		}
	}
}

func startInputReader(screen tcell.Screen) chan tcell.Event {
	ch := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(ch)
				return
			}
			select {
			case ch <- ev:
			default:
			}
		}
	}()
	return ch
}

func (a *app) run(screen tcell.Screen) {
	ticker := time.NewTicker(framePeriod)
	defer ticker.Stop()

	inputCh := startInputReader(screen)
	lastTick := time.Now()

	for {
		select {
		case ev, ok := <-inputCh:
			if !ok || !a.handleInput(ev) {
				return
			}
		case now := <-ticker.C:
			elapsed := now.Sub(lastTick).Seconds()
			lastTick = now
			if elapsed > parameter.MaxFrameStep {
				elapsed = parameter.MaxFrameStep
			}
			if !a.paused {
				a.advance(elapsed)
			}
			a.draw()
			a.publish(now)
		}
	}
}

func (a *app) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		cam := &a.renderer.Camera
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			cam.Orbit(-parameter.CameraOrbitStep, 0)
		case tcell.KeyRight:
			cam.Orbit(parameter.CameraOrbitStep, 0)
		case tcell.KeyUp:
			cam.Orbit(0, parameter.CameraOrbitStep)
		case tcell.KeyDown:
			cam.Orbit(0, -parameter.CameraOrbitStep)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				a.paused = !a.paused
			case '.':
				if a.paused {
					a.single()
				}
			case '+', '=':
				cam.Zoom(1 / parameter.CameraZoomStep)
			case '-':
				cam.Zoom(parameter.CameraZoomStep)
			case 'p':
				a.togglePins()
			case 'r':
				a.reset()
			case 'c':
				cam.Target = terminal.DefaultCamera().Target
			}
		}
	case *tcell.EventResize:
		// Begin picks up the new size
	}
	return true
}

// advance runs fixed steps covering elapsed wall time
func (a *app) advance(elapsed float64) {
	if a.player != nil {
		a.clock += elapsed
		a.playback()
		return
	}
	a.acc += elapsed
	for a.acc >= a.step {
		a.single()
		a.acc -= a.step
	}
}

// single runs exactly one simulation step (or one replay frame)
func (a *app) single() {
	if a.player != nil {
		a.clock = a.pending.Time
		a.playback()
		return
	}
	a.sim.Update(a.step)
	if a.recorder != nil {
		snap := a.sim.Snapshot()
		if err := a.recorder.AppendFrame(snap.Step, snap.Time, snap); err != nil {
			log.Printf("record: %v; recording stopped", err)
			a.recorder = nil
		}
	}
}

// playback moves to the latest recorded frame not after the playback clock
func (a *app) playback() {
	for !a.ended && a.pending.Time <= a.clock {
		a.current = a.pending
		next, err := a.player.Next()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.Printf("replay: %v", err)
			}
			a.ended = true
			break
		}
		a.pending = next
	}
}

func (a *app) draw() {
	r := a.renderer
	r.Begin()
	if a.player != nil {
		a.drawFrame()
	} else {
		a.sim.Draw(r)
	}
	a.drawHUD()
	r.End()
}

func (a *app) drawFrame() {
	b := &a.buf
	b.positions = b.positions[:0]
	b.radii = b.radii[:0]
	b.colors = b.colors[:0]
	for _, p := range a.current.Particles {
		b.positions = append(b.positions, p.Position)
		b.radii = append(b.radii, p.Radius)
		b.colors = append(b.colors, p.Color)
	}
	a.renderer.DrawParticles(b.positions, b.radii, b.colors)
}

func (a *app) drawHUD() {
	_, h := a.screen().Size()
	var line string
	if a.player != nil {
		line = fmt.Sprintf("replay %s  step %d  t=%.2fs  particles %d", a.name, a.current.Step, a.current.Time, len(a.current.Particles))
		if a.ended {
			line += "  [end]"
		}
	} else {
		st := a.sim.Stats()
		line = fmt.Sprintf("%s  step %d  t=%.2fs  particles %d  springs %d  constraints %d  KE %.1f",
			a.name, st.Steps, st.Time, st.Particles, st.Springs, st.Constraints, st.KineticEnergy)
		if a.audio != nil {
			played, dropped := a.audio.Stats()
			line += fmt.Sprintf("  sfx %d/%d", played, dropped)
		}
	}
	if a.hub != nil {
		line += fmt.Sprintf("  viewers %d", a.hub.Clients())
	}
	a.renderer.DrawText(0, h-2, line, hudColor)

	help := "arrows orbit  +/- zoom  space pause  . step  p pins  r reset  q quit"
	color := hudColor
	if a.paused {
		help = "[paused]  " + help
		color = pausedColor
	}
	a.renderer.DrawText(0, h-1, help, color)
}

func (a *app) screen() terminal.Screen {
	return a.renderer.Screen()
}

// publish sends the current state to websocket viewers at the stream cadence
func (a *app) publish(now time.Time) {
	if a.hub == nil || now.Sub(a.lastStream) < streamPeriod || a.hub.Clients() == 0 {
		return
	}
	a.lastStream = now

	var snap simulation.Snapshot
	if a.player != nil {
		snap = a.current.Snapshot()
	} else {
		snap = a.sim.Snapshot()
	}
	if err := a.hub.Broadcast(snap); err != nil {
		log.Printf("stream: %v", err)
	}
}
