package audio

import (
	"os"
	"strconv"
)

// AudioConfig carries playback parameters. The defaults match the
// engine's mixer output: 11025 Hz, 16-bit stereo, 512-frame blocks.
type AudioConfig struct {
	Enabled      bool
	SampleRate   int
	BufferFrames int
}

// DefaultAudioConfig returns the engine-native playback configuration
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		SampleRate:   11025,
		BufferFrames: 512,
	}
}

// LoadAudioConfig loads audio configuration from environment variables
func LoadAudioConfig() *AudioConfig {
	cfg := DefaultAudioConfig()

	if enabled := os.Getenv("KITTY_DOOM_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	if rate := os.Getenv("KITTY_DOOM_SAMPLE_RATE"); rate != "" {
		if val, err := strconv.Atoi(rate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	if frames := os.Getenv("KITTY_DOOM_AUDIO_BUFFER"); frames != "" {
		if val, err := strconv.Atoi(frames); err == nil && val > 0 {
			cfg.BufferFrames = val
		}
	}

	return cfg
}
