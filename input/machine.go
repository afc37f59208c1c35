package input

import (
	"github.com/jserv/kitty-doom/doom"
)

// parseChar advances the escape-sequence state machine by one byte.
// Terminals are a hostile input source: anything unrecognized drops the
// sequence and returns to ground rather than erroring.
func (in *Input) parseChar(ch byte) {
	switch {
	case ch == 0x03:
		// Ctrl+C - immediate exit, regardless of parse state
		in.exitRequested.Store(true)

	case ch == 0x1b:
		// Could open an escape sequence or be a standalone Escape key.
		// If the parser already sits in the ESC state, the previous ESC
		// was the standalone one.
		if in.state == stateEsc {
			in.asciiKey(0x1b)
		}
		in.state = stateEsc

	case in.state == stateGround:
		in.asciiKey(ch)

	case in.state == stateEsc:
		switch {
		case ch == 'O':
			in.state = stateSS3
		case ch == '[':
			in.state = stateCSI
			in.parm = 0
			in.parmCount = 0
			in.parmPrefix = 0
		default:
			// ESC followed by a non-introducer: the ESC stood alone
			in.asciiKey(0x1b)
			in.state = stateGround
			if ch >= 0x20 && ch < 0x7f {
				in.asciiKey(ch)
			}
		}

	case in.state == stateSS3:
		in.ss3Key(ch)
		in.state = stateGround

	case in.state == stateCSI:
		in.parseCSIByte(ch)
	}
}

// parseCSIByte accumulates CSI parameters until a terminator byte
// dispatches the sequence.
func (in *Input) parseCSIByte(ch byte) {
	switch {
	case ch == '?' || ch == '>' || ch == '<':
		in.parmPrefix = ch

	case ch >= '0' && ch <= '9':
		in.parm = in.parm*10 + int(ch-'0')

	case ch == ';':
		if in.parmCount < maxParms {
			in.parms[in.parmCount] = in.parm
			in.parmCount++
		}
		in.parm = 0

	default:
		// Terminator: close the final parameter, then dispatch
		if in.parmCount < maxParms {
			in.parms[in.parmCount] = in.parm
			in.parmCount++
		}

		switch {
		case ch == 'c' && in.parmPrefix == '?':
			in.reportDeviceAttributes(in.parms[:in.parmCount])

		case ch == 't':
			// Cell size in pixels: parameters 4;height;width
			if in.parmCount >= 3 && in.parms[0] == 4 {
				in.reportCellSize(in.parms[1], in.parms[2])
			}

		case ch == 'R':
			if in.parmCount >= 2 {
				in.reportCursorPos(in.parms[0], in.parms[1])
			}

		case ch == 'M' || ch == 'm':
			if in.parmPrefix == '<' {
				in.parseMouseSGR(ch)
			}

		default:
			var parm1, parm2 int
			if in.parmCount > 0 {
				parm1 = in.parms[0]
			}
			if in.parmCount > 1 {
				parm2 = in.parms[1]
			}
			in.csiKey(ch, parm1, parm2)
		}

		in.state = stateGround
	}
}

// asciiKey dispatches a literal key byte with the hold rule applied.
func (in *Input) asciiKey(ch byte) {
	key := doom.Key(ch)
	if ch == '\r' || ch == '\n' {
		// Kitty sends LF for Enter
		key = doom.KeyEnter
	}

	// Space, F and I all map to fire: terminals cannot reliably deliver
	// Ctrl combinations
	if ch == ' ' || ch == 'f' || ch == 'F' || ch == 'i' || ch == 'I' {
		key = doom.KeyCtrl
	}

	// Only the first occurrence sends key-down; repeats extend the
	// release deadline, keeping held keys smooth under auto-repeat
	if !in.held.isHeld(key) {
		in.game.KeyDown(key)
	}
	in.schedKeyRelease(key, in.cfg.KeyHold)
}

// ss3Key dispatches SS3-encoded function keys F1-F4.
func (in *Input) ss3Key(ch byte) {
	var key doom.Key
	switch ch {
	case 'P':
		key = doom.KeyF1
	case 'Q':
		key = doom.KeyF2
	case 'R':
		key = doom.KeyF3
	case 'S':
		key = doom.KeyF4
	}
	if key == 0 {
		return
	}

	if !in.held.isHeld(key) {
		in.game.KeyDown(key)
	}
	in.schedKeyRelease(key, in.cfg.KeyHold)
}

// csiKey dispatches arrow and function keys, with modifier synthesis
// and the distinct-keypress exception to the hold rule.
func (in *Input) csiKey(ch byte, parm1, parm2 int) {
	var key doom.Key
	switch ch {
	case 'A':
		key = doom.KeyUpArrow
	case 'B':
		key = doom.KeyDownArrow
	case 'C':
		key = doom.KeyRightArrow
	case 'D':
		key = doom.KeyLeftArrow
	case '~':
		key = functionKey(parm1)
	}
	if key == 0 {
		return
	}

	hold := in.cfg.KeyHold
	if key == doom.KeyUpArrow || key == doom.KeyDownArrow ||
		key == doom.KeyLeftArrow || key == doom.KeyRightArrow {
		hold = in.cfg.ArrowHold
	}

	held := in.held.isHeld(key)
	fresh := false
	if held {
		fresh = in.releaseIfDistant(key)
	}

	if !held || fresh {
		for _, mod := range activeModifiers(parm2) {
			in.game.KeyDown(mod)
		}
		in.game.KeyDown(key)
	}

	in.schedKeyRelease(key, hold)

	if !held || fresh {
		for _, mod := range activeModifiers(parm2) {
			in.schedKeyRelease(mod, hold)
		}
	}
}

// functionKey maps the tilde-terminated CSI parameter to F5-F12.
func functionKey(parm int) doom.Key {
	switch parm {
	case 15:
		return doom.KeyF5
	case 17:
		return doom.KeyF6
	case 18:
		return doom.KeyF7
	case 19:
		return doom.KeyF8
	case 20:
		return doom.KeyF9
	case 21:
		return doom.KeyF10
	case 23:
		return doom.KeyF11
	case 24:
		return doom.KeyF12
	}
	return 0
}

var modifierKeys = []struct {
	bit int
	key doom.Key
}{
	{1, doom.KeyShift},
	{2, doom.KeyAlt},
	{4, doom.KeyCtrl},
}

// activeModifiers decodes a CSI modifier parameter (value minus one is
// a bitmask) into the modifier keys it names, in fixed order.
func activeModifiers(parm int) []doom.Key {
	if parm < 2 {
		return nil
	}

	mask := parm - 1
	var keys []doom.Key
	for _, m := range modifierKeys {
		if mask&m.bit != 0 {
			keys = append(keys, m.key)
		}
	}
	return keys
}
