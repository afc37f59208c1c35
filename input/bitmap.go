package input

import (
	"sync/atomic"

	"github.com/jserv/kitty-doom/doom"
)

// heldKeyBitmap tracks which key codes currently have a key-down
// outstanding, 256 bits across four words. A bit is set exactly while
// its key has a pending release scheduled.
//
// Atomic word access lets the parser test membership without taking the
// release lock. Each bit is independent, key events arrive more than a
// millisecond apart, and release delays dwarf cache latency, so a stale
// read at worst defers a decision by one poll cycle.
type heldKeyBitmap struct {
	words [4]atomic.Uint64
}

func (b *heldKeyBitmap) mark(key doom.Key) {
	if key < 0 || key >= maxKeyCode {
		return
	}
	b.words[key/64].Or(1 << (uint(key) % 64))
}

func (b *heldKeyBitmap) clear(key doom.Key) {
	if key < 0 || key >= maxKeyCode {
		return
	}
	b.words[key/64].And(^(uint64(1) << (uint(key) % 64)))
}

func (b *heldKeyBitmap) isHeld(key doom.Key) bool {
	if key < 0 || key >= maxKeyCode {
		return false
	}
	return b.words[key/64].Load()&(1<<(uint(key)%64)) != 0
}
