package input

import (
	"os"
	"strconv"
	"time"
)

// Config carries the input loop's timing and mouse tuning. The hold and
// threshold defaults were picked against real terminal auto-repeat, which
// delivers events every 30-50ms; treat them as tunables, not protocol
// constants.
type Config struct {
	// PollTimeout bounds each terminal read so pending releases are
	// processed at near-constant latency even with no input.
	PollTimeout time.Duration

	// KeyHold is the auto-release delay for ordinary keys.
	KeyHold time.Duration

	// ArrowHold is the auto-release delay for arrow keys. Longer than
	// KeyHold so held-arrow movement stays smooth between repeat events
	// while menus remain responsive.
	ArrowHold time.Duration

	// RepeatThreshold separates terminal auto-repeat from deliberate
	// re-taps: a repeat event for a key whose release is further away
	// than this is treated as a brand-new keypress.
	RepeatThreshold time.Duration

	// EscTimeout is how long a lone ESC byte may wait for a sequence
	// continuation before it is dispatched as the Escape key.
	EscTimeout time.Duration

	// QueryTimeout bounds best-effort terminal queries before their
	// documented fallback values apply.
	QueryTimeout time.Duration

	// MouseSensitivity scales terminal cell deltas to engine units.
	MouseSensitivity int

	// MouseDeltaClamp bounds a single report's cell delta per axis,
	// guarding against coordinate jumps from terminal resizes.
	MouseDeltaClamp int
}

// DefaultConfig returns the tuned default input configuration
func DefaultConfig() *Config {
	return &Config{
		PollTimeout:      time.Millisecond,
		KeyHold:          50 * time.Millisecond,
		ArrowHold:        80 * time.Millisecond,
		RepeatThreshold:  25 * time.Millisecond,
		EscTimeout:       100 * time.Millisecond,
		QueryTimeout:     2 * time.Second,
		MouseSensitivity: 10,
		MouseDeltaClamp:  100,
	}
}

// LoadConfig loads input configuration from environment variables
func LoadConfig() *Config {
	cfg := DefaultConfig()

	if v := os.Getenv("KITTY_DOOM_KEY_HOLD_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			cfg.KeyHold = time.Duration(ms) * time.Millisecond
		}
	}

	if v := os.Getenv("KITTY_DOOM_ARROW_HOLD_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			cfg.ArrowHold = time.Duration(ms) * time.Millisecond
		}
	}

	if v := os.Getenv("KITTY_DOOM_REPEAT_THRESHOLD_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			cfg.RepeatThreshold = time.Duration(ms) * time.Millisecond
		}
	}

	if v := os.Getenv("KITTY_DOOM_ESC_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			cfg.EscTimeout = time.Duration(ms) * time.Millisecond
		}
	}

	if v := os.Getenv("KITTY_DOOM_MOUSE_SENSITIVITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MouseSensitivity = n
		}
	}

	return cfg
}
