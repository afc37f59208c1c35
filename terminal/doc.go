// Package terminal provides direct ANSI terminal control for the game loop.
//
// Features:
//   - Raw stdin with millisecond-granularity polled reads
//   - Serialized output so frame data and device queries never interleave
//   - SGR mouse tracking modes and cursor visibility control
//   - Clean terminal restoration on exit/panic
//
// This package bypasses terminfo/termcap entirely, emitting direct ANSI
// sequences. Target environments: Linux, macOS, BSDs with xterm-compatible
// terminals that implement the Kitty graphics protocol.
package terminal
