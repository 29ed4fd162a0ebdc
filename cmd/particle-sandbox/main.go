package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/particle-sandbox/audio"
	"github.com/lixenwraith/particle-sandbox/render/terminal"
	"github.com/lixenwraith/particle-sandbox/replay"
	"github.com/lixenwraith/particle-sandbox/scene"
	"github.com/lixenwraith/particle-sandbox/stream"
)

func main() {
	var (
		scenePath  string
		presetName string
		logPath    string
		recordDir  string
		streamAddr string
		origins    string
		replayDir  string
		noAudio    bool
	)
	flag.StringVar(&scenePath, "scene", "", "YAML scene file")
	flag.StringVar(&presetName, "preset", "fountain", "Built-in scene: "+strings.Join(scene.PresetNames(), ", "))
	flag.StringVar(&logPath, "log", "particle-sandbox.log", "Log file (the terminal is busy drawing)")
	flag.StringVar(&recordDir, "record", "", "Record frames and contacts under this directory")
	flag.StringVar(&streamAddr, "stream", "", "Serve websocket snapshots on this address, e.g. :8080")
	flag.StringVar(&origins, "stream-origin", "", "Comma-separated cross-origin viewers allowed to connect, * for any")
	flag.StringVar(&replayDir, "replay", "", "Play back a recorded bundle instead of simulating")
	flag.BoolVar(&noAudio, "mute", false, "Disable impact sounds")
	flag.Parse()

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	log.SetOutput(logFile)

	app, err := newApp(scenePath, presetName, replayDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	if app.player != nil {
		defer app.player.Close()
	}

	if !noAudio && app.sim != nil {
		player := audio.NewImpactPlayer(audio.LoadConfig())
		if err := player.Initialize(); err != nil {
			// Non-fatal, the sandbox runs silent
			if !errors.Is(err, audio.ErrAudioDisabled) {
				log.Printf("Audio initialization failed: %v", err)
			}
		} else {
			defer player.Cleanup()
			app.sim.AddContactListener(player)
			app.audio = player
		}
	}

	if recordDir != "" && app.sim != nil {
		rec, _, err := replay.NewRecorder(recordDir, app.name, nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "record: %v\n", err)
			os.Exit(1)
		}
		defer func() {
			if err := rec.Close(); err != nil {
				log.Printf("record: %v", err)
			}
		}()
		app.sim.AddContactListener(rec)
		app.recorder = rec
		log.Printf("recording to %s", rec.Directory())
	}

	if streamAddr != "" {
		hub := stream.NewHub(log.Default(), stream.WithAllowedOrigins(strings.Split(origins, ",")...))
		mux := http.NewServeMux()
		mux.Handle("/ws", hub)
		srv := &http.Server{Addr: streamAddr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("stream: %v", err)
			}
		}()
		defer func() {
			hub.Close()
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
		app.hub = hub
		log.Printf("streaming on %s/ws", streamAddr)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "terminal init: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "terminal init: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	app.renderer = terminal.New(screen)
	app.run(screen)
}
