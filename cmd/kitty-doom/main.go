package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/jserv/kitty-doom/audio"
	"github.com/jserv/kitty-doom/doom"
	"github.com/jserv/kitty-doom/input"
	"github.com/jserv/kitty-doom/render"
	"github.com/jserv/kitty-doom/terminal"
)

// DOOM simulates at 35 tics per second
const tickInterval = time.Second / 35

var nosound = flag.Bool("nosound", false, "disable sound output")

const unsupportedTerminal = `
ERROR: Terminal does not support Kitty Graphics Protocol
       TERM=%s
       TERM_PROGRAM=%s

Kitty-DOOM requires a terminal with Kitty Graphics Protocol support.

Recommended terminals:
  - Kitty:   https://sw.kovidgoyal.net/kitty/
  - Ghostty: https://ghostty.org

Running in unsupported terminals will cause display corruption.

`

func main() {
	// Panic Recovery: Ensure terminal is reset even if the game crashes
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)

			fmt.Fprintf(os.Stderr, "\n\x1b[31mKITTY-DOOM CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	// Graceful shutdown: the handler only records the signal, the main
	// loop notices the flag on its next tick and unwinds normally so
	// cleanup always runs on the main goroutine.
	var signaled atomic.Bool
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		signaled.Store(true)
	}()

	// Compatibility check before any terminal state is touched
	if !terminal.SupportsKittyGraphics() {
		fmt.Fprintf(os.Stderr, unsupportedTerminal,
			envOrNotSet("TERM"), envOrNotSet("TERM_PROGRAM"))
		os.Exit(1)
	}

	var engine doom.Engine = doom.NewFire(time.Now().UnixNano())

	// Sound is best-effort: a missing or broken audio device downgrades
	// to a silent run, never a failed one.
	audioCfg := audio.LoadAudioConfig()
	if *nosound {
		audioCfg.Enabled = false
	}
	player, err := audio.NewPlayer(engine, audioCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: sound initialization failed, continuing without sound: %v\n", err)
	}
	defer player.Close()

	term := terminal.New()
	if err := term.Init(); err != nil {
		player.Close()
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	defer term.Fini()

	in := input.New(term, engine, input.LoadConfig())
	in.Start()
	defer in.Close()

	rows, cols := in.ScreenCells()
	r := render.NewRenderer(term, cols, rows)
	defer r.Close()

	conv := render.NewPaletteConverter(engine.Palette())

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for in.Running() && engine.Running() && !signaled.Load() {
		<-ticker.C

		// The engine mixes sound inside Update; holding the device lock
		// keeps the streamer from reading a half-written block.
		player.Lock()
		engine.Update()
		player.Unlock()

		rgb := conv.Convert(engine.Framebuffer())
		if err := r.RenderFrame(rgb); err != nil {
			log.Printf("render: %v", err)
		}
	}

	// Unconditional: a signal can land between the loop check and here,
	// and RequestExit is idempotent. The deferred closes then release
	// resources in reverse creation order.
	in.RequestExit()
}

func envOrNotSet(name string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return "(not set)"
}
