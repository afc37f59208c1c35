package doom

// Key is a DOOM engine key code. Printable ASCII maps to itself;
// special keys use the classic id-tech values above 0x80.
type Key int

// Key constants - classic DOOM key codes
const (
	KeyTab       Key = 9
	KeyEnter     Key = 13
	KeyEscape    Key = 27
	KeySpace     Key = 32
	KeyBackspace Key = 127

	// Navigation
	KeyLeftArrow  Key = 0xac
	KeyUpArrow    Key = 0xad
	KeyRightArrow Key = 0xae
	KeyDownArrow  Key = 0xaf

	// Modifiers (fire is Ctrl, run is Shift, strafe is Alt)
	KeyCtrl  Key = 0x9d
	KeyShift Key = 0xb6
	KeyAlt   Key = 0xb8

	// Function keys
	KeyF1  Key = 0xbb
	KeyF2  Key = 0xbc
	KeyF3  Key = 0xbd
	KeyF4  Key = 0xbe
	KeyF5  Key = 0xbf
	KeyF6  Key = 0xc0
	KeyF7  Key = 0xc1
	KeyF8  Key = 0xc2
	KeyF9  Key = 0xc3
	KeyF10 Key = 0xc4
	KeyF11 Key = 0xd7
	KeyF12 Key = 0xd8
)
