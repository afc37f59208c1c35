package input

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jserv/kitty-doom/doom"
	"github.com/jserv/kitty-doom/terminal"
)

// Console is the terminal surface the read loop polls and the query
// methods write to.
type Console interface {
	Write(p []byte) (int, error)
	ReadByte(timeout time.Duration) (b byte, ok bool, err error)
}

// Game receives the decoded key and mouse events. Calls arrive from the
// read loop concurrently with the caller's tick, fire-and-forget.
type Game interface {
	KeyDown(key doom.Key)
	KeyUp(key doom.Key)
	MouseMove(dx, dy int)
}

// Input owns the read side of the terminal: it parses the raw byte
// stream into engine key and mouse events on its own goroutine, infers
// the key releases terminals never report, and fields the device-query
// replies that arrive interleaved with keystrokes.
//
// Parser and mouse state belong exclusively to the read loop. The only
// shared state is the query record (mutex and condition), the pending
// release list (its own mutex), and the held-key bitmap (atomic words).
type Input struct {
	console Console
	game    Game
	cfg     *Config

	// exiting stops the read loop; exitRequested additionally tells the
	// main loop to stop ticking. Ctrl+C sets only the latter, so the
	// caller controls teardown order.
	exiting       atomic.Bool
	exitRequested atomic.Bool

	ready chan struct{}
	done  chan struct{}

	// Escape-sequence parser state, read-loop only
	state      parserState
	parms      [maxParms]int
	parm       int
	parmCount  int
	parmPrefix byte

	// Standalone-ESC detection, counted from the first empty poll
	escTime    time.Time
	escWaiting bool

	mouse mouseState

	held heldKeyBitmap

	releaseMu sync.Mutex
	pending   []pendingRelease

	queryMu      sync.Mutex
	queryCond    *sync.Cond
	deviceAttrs  []int
	cellHeight   int
	cellWidth    int
	hasCellSize  bool
	cursorRow    int
	cursorCol    int
	hasCursorPos bool
}

// New creates an input parser bound to a console and a game. Call
// Start to launch the read loop.
func New(console Console, game Game, cfg *Config) *Input {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	in := &Input{
		console: console,
		game:    game,
		cfg:     cfg,
		ready:   make(chan struct{}),
		done:    make(chan struct{}),
		pending: make([]pendingRelease, 0, maxPendingReleases),
	}
	in.queryCond = sync.NewCond(&in.queryMu)
	return in
}

// Start launches the read loop and returns once it is polling. Queries
// issued before that would lose their replies.
func (in *Input) Start() {
	go in.run()
	<-in.ready
}

// Running reports whether the main loop should keep ticking.
func (in *Input) Running() bool {
	return !in.exitRequested.Load()
}

// RequestExit signals both the main loop and the read loop to stop.
func (in *Input) RequestExit() {
	in.exitRequested.Store(true)
	in.exiting.Store(true)
}

// Close stops the read loop and waits for it to finish. The caller
// drains and restores the terminal afterwards.
func (in *Input) Close() {
	in.exiting.Store(true)
	<-in.done
}

func (in *Input) run() {
	defer close(in.done)

	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mINPUT LOOP CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	close(in.ready)

	for !in.exiting.Load() {
		// Releases first, so an idle terminal still gets key-ups on time
		in.processPendingReleases()

		b, ok, err := in.console.ReadByte(in.cfg.PollTimeout)
		if err != nil || !ok {
			if in.state == stateEsc {
				in.checkEscTimeout()
			}
			continue
		}

		if in.state == stateEsc {
			in.escWaiting = false
		}
		in.parseChar(b)
	}
}

// checkEscTimeout decides whether a pending lone ESC byte was a
// standalone Escape keypress. The clock starts at the first empty poll
// after the ESC, not at the ESC itself.
func (in *Input) checkEscTimeout() {
	if !in.escWaiting {
		in.escTime = time.Now()
		in.escWaiting = true
		return
	}

	if time.Since(in.escTime) >= in.cfg.EscTimeout {
		in.asciiKey(0x1b)
		in.state = stateGround
		in.escWaiting = false
	}
}
