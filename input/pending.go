package input

import (
	"time"

	"github.com/jserv/kitty-doom/doom"
)

// pendingRelease is a key with an inferred release deadline. Terminals
// never report key-up, so every key-down gets one of these.
type pendingRelease struct {
	key       doom.Key
	releaseAt time.Time
}

// schedKeyRelease sets or extends a key's auto-release deadline. A key
// already scheduled keeps its single entry with only the deadline
// pushed, which is what turns terminal auto-repeat into one continuous
// hold.
func (in *Input) schedKeyRelease(key doom.Key, hold time.Duration) {
	in.releaseMu.Lock()
	defer in.releaseMu.Unlock()

	at := time.Now().Add(hold)

	for i := range in.pending {
		if in.pending[i].key == key {
			in.pending[i].releaseAt = at
			return
		}
	}

	if len(in.pending) < maxPendingReleases {
		in.pending = append(in.pending, pendingRelease{key: key, releaseAt: at})
		in.held.mark(key)
	}
}

// processPendingReleases fires key-ups whose deadlines have passed.
// This is the only path that releases a key outside the distinct-
// keypress rule. Iterates in reverse so removal does not skip entries.
func (in *Input) processPendingReleases() {
	in.releaseMu.Lock()
	defer in.releaseMu.Unlock()

	now := time.Now()
	for i := len(in.pending) - 1; i >= 0; i-- {
		pr := in.pending[i]
		if now.Before(pr.releaseAt) {
			continue
		}

		in.game.KeyUp(pr.key)
		in.held.clear(pr.key)
		in.pending = append(in.pending[:i], in.pending[i+1:]...)
	}
}

// releaseIfDistant applies the distinct-keypress rule for repeatable
// keys: auto-repeat arrives every 30-50ms, so a held key whose release
// is still further away than the repeat threshold cannot be repeat
// traffic. It is a deliberate new tap, and the old hold is ended
// immediately so the fresh press can register. Reports whether the key
// was released.
func (in *Input) releaseIfDistant(key doom.Key) bool {
	in.releaseMu.Lock()
	defer in.releaseMu.Unlock()

	now := time.Now()
	for i := range in.pending {
		if in.pending[i].key != key {
			continue
		}

		if in.pending[i].releaseAt.Sub(now) > in.cfg.RepeatThreshold {
			in.game.KeyUp(key)
			in.held.clear(key)
			in.pending = append(in.pending[:i], in.pending[i+1:]...)
			return true
		}
		return false
	}
	return false
}
