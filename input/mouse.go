package input

import (
	"github.com/jserv/kitty-doom/doom"
)

// mouseState turns absolute SGR cell coordinates into relative motion.
// Owned by the read loop; nothing else touches it.
type mouseState struct {
	lastX, lastY int
	tracking     bool
	buttons      [3]bool // left, middle, right press flags
}

// parseMouseSGR decodes one SGR 1006 report from the accumulated CSI
// parameters: button code, column, row, terminated by 'M' for press or
// 'm' for release.
//
// Button code bitfield: bits 0-1 select the button (0=left, 1=middle,
// 2=right, 3=release-only), bit 5 flags motion, bit 6 flags wheel
// events, bits 2-4 carry modifiers.
func (in *Input) parseMouseSGR(final byte) {
	if in.parmCount < 3 {
		return
	}

	cb := in.parms[0]
	cx := in.parms[1] // column, 1-based
	cy := in.parms[2] // row, 1-based

	button := cb & 3
	motion := cb&32 != 0
	wheel := cb&64 != 0
	press := final == 'M'

	// Wheel events use a separate button-code space; without this check
	// wheel-up would read as a left click
	if wheel {
		return
	}

	// The first report only establishes the reference position, there
	// is nothing to diff against yet
	if !in.mouse.tracking {
		in.mouse.lastX = cx
		in.mouse.lastY = cy
		in.mouse.tracking = true
		return
	}

	// Clamp per axis: terminal resizes can teleport the coordinates
	dx := clampDelta(cx-in.mouse.lastX, in.cfg.MouseDeltaClamp)
	dy := clampDelta(cy-in.mouse.lastY, in.cfg.MouseDeltaClamp)

	dx *= in.cfg.MouseSensitivity
	dy *= in.cfg.MouseSensitivity

	if dx != 0 || dy != 0 {
		in.game.MouseMove(dx, dy)
		in.mouse.lastX = cx
		in.mouse.lastY = cy
	}

	if motion || button >= 3 {
		return
	}

	if press && !in.mouse.buttons[button] {
		in.mouse.buttons[button] = true

		var key doom.Key
		switch button {
		case 0:
			key = doom.KeyCtrl // fire
		case 1:
			key = doom.KeyShift // run
		case 2:
			key = doom.KeySpace // use/open
		}

		// Fixed hold like keyboard action keys: continuous fire needs
		// repeated clicks
		in.game.KeyDown(key)
		in.schedKeyRelease(key, in.cfg.KeyHold)
	} else if !press && in.mouse.buttons[button] {
		// The scheduled release covers the key-up; just rearm the
		// press detector
		in.mouse.buttons[button] = false
	}
}

func clampDelta(d, limit int) int {
	if d > limit {
		return limit
	}
	if d < -limit {
		return -limit
	}
	return d
}
