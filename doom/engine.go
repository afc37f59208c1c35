package doom

// Screen dimensions of the engine framebuffer, fixed by the VGA mode
// the classic games ran in.
const (
	ScreenWidth  = 320
	ScreenHeight = 200
)

// Engine is the game simulation driven by the main loop. The input
// goroutine delivers key and mouse events concurrently with Update running
// on the main goroutine, so event methods must be non-blocking and safe for
// concurrent use.
type Engine interface {
	// Update advances the simulation by one tick.
	Update()

	// Framebuffer returns the 320x200 indexed frame produced by the last
	// Update. The buffer is owned by the engine and valid until the next
	// Update call.
	Framebuffer() []byte

	// Palette returns the engine's 256-entry RGB palette (768 bytes).
	Palette() []byte

	// SoundBuffer returns the next block of mixed audio, interleaved
	// 16-bit little-endian stereo frames. Called from the playback
	// goroutine with the output device locked.
	SoundBuffer() []byte

	// Running reports whether the simulation wants to keep ticking.
	Running() bool

	// Input events, called from the input goroutine.
	KeyDown(key Key)
	KeyUp(key Key)
	MouseMove(dx, dy int)
}
