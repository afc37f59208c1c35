package terminal

import (
	"io"
	"os"
	"sync"
	"time"
)

// Terminal owns the raw-mode terminal and serializes all output.
//
// Device queries (input goroutine side) and frame transmission (main loop)
// both write escape sequences to the same stream; the write lock guarantees
// their bytes never interleave on the wire.
type Terminal struct {
	backend Backend

	writeMu     sync.Mutex
	mu          sync.Mutex
	initialized bool
	finalized   bool
}

// New creates a Terminal bound to the process stdin/stdout.
func New() *Terminal {
	return &Terminal{backend: newBackend()}
}

// Init enters raw mode, hides the cursor, and enables mouse tracking.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}
	if err := t.backend.Init(); err != nil {
		return err
	}

	t.Write(csiCursorHide)
	t.Write(csiMouseButtonOn)
	t.Write(csiMouseAnyOn)
	t.Write(csiMouseSGROn)

	t.initialized = true
	t.finalized = false
	return nil
}

// Fini restores terminal state. Safe to call multiple times.
// Pending input is drained first so delayed replies to protocol probes
// do not leak into the parent shell.
func (t *Terminal) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}

	t.backend.Drain()

	t.Write(csiMouseSGROff)
	t.Write(csiMouseAnyOff)
	t.Write(csiMouseButtonOff)
	t.Write(csiCursorShow)

	t.backend.Fini()
	t.finalized = true
	t.initialized = false
}

// Size returns the terminal dimensions in character cells.
func (t *Terminal) Size() (cols, rows int) {
	return t.backend.Size()
}

// Write sends raw bytes to the terminal under the shared output lock.
func (t *Terminal) Write(p []byte) (int, error) {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	return t.backend.Write(p)
}

// ReadByte waits up to timeout for one input byte.
// Only the input goroutine calls this.
func (t *Terminal) ReadByte(timeout time.Duration) (byte, bool, error) {
	return t.backend.ReadByte(timeout)
}

// EmergencyReset attempts to restore terminal to sane state.
// Call this from panic recovery if Fini() cannot be called normally.
func EmergencyReset(w io.Writer) {
	// Disable mouse tracking
	w.Write(csiMouseSGROff)
	w.Write(csiMouseAnyOff)
	w.Write(csiMouseButtonOff)

	w.Write(csiCursorShow)
	w.Write(csiSGR0)
	w.Write(csiRIS)

	// Flush if it's a file
	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Attempt raw mode reset - escape sequences alone don't restore termios
	// This is best-effort; ignore errors in crash context
	resetTerminalMode()
}
