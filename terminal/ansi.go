package terminal

// Pre-allocated ANSI sequence fragments (avoid allocations on hot paths)
var (
	csiRIS  = []byte("\x1bc") // Reset to Initial State (emergency)
	csiSGR0 = []byte("\x1b[0m")

	// Cursor control
	csiCursorHide = []byte("\x1b[?25l")
	csiCursorShow = []byte("\x1b[?25h")

	// Mouse tracking modes
	// ?1000: button press/release events
	// ?1003: any-event tracking (includes motion)
	// ?1006: SGR extended format (no 222 column limit)
	csiMouseButtonOn  = []byte("\x1b[?1000h")
	csiMouseButtonOff = []byte("\x1b[?1000l")
	csiMouseAnyOn     = []byte("\x1b[?1003h")
	csiMouseAnyOff    = []byte("\x1b[?1003l")
	csiMouseSGROn     = []byte("\x1b[?1006h")
	csiMouseSGROff    = []byte("\x1b[?1006l")
)
