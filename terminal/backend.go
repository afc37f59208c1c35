package terminal

import "time"

// Backend abstracts platform-specific terminal operations.
// The game needs very little from the platform: raw mode, polled
// single-byte reads, size queries, and raw writes.
type Backend interface {
	// Lifecycle
	Init() error
	Fini()

	// Size returns the terminal dimensions in character cells.
	Size() (cols, rows int)

	// Write writes raw bytes to the terminal output.
	Write(p []byte) (int, error)

	// ReadByte waits up to timeout for one input byte.
	// ok is false when the timeout expired without input.
	ReadByte(timeout time.Duration) (b byte, ok bool, err error)

	// Drain discards any input bytes already buffered by the terminal.
	// Used during teardown so delayed protocol replies do not leak into
	// the shell after exit.
	Drain()
}
