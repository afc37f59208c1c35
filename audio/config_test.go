package audio

import (
	"os"
	"testing"
)

// TestDefaultAudioConfig verifies default configuration
func TestDefaultAudioConfig(t *testing.T) {
	cfg := DefaultAudioConfig()

	if cfg == nil {
		t.Fatal("Expected non-nil default config")
	}

	if !cfg.Enabled {
		t.Error("Expected default config to have Enabled=true")
	}

	if cfg.SampleRate != 11025 {
		t.Errorf("Expected default sample rate 11025, got %d", cfg.SampleRate)
	}

	if cfg.BufferFrames != 512 {
		t.Errorf("Expected default buffer frames 512, got %d", cfg.BufferFrames)
	}
}

// TestLoadAudioConfigDefaults verifies loading with no env vars
func TestLoadAudioConfigDefaults(t *testing.T) {
	// Clear any existing env vars
	os.Unsetenv("KITTY_DOOM_AUDIO_ENABLED")
	os.Unsetenv("KITTY_DOOM_SAMPLE_RATE")
	os.Unsetenv("KITTY_DOOM_AUDIO_BUFFER")

	cfg := LoadAudioConfig()

	if cfg == nil {
		t.Fatal("Expected non-nil config")
	}

	// Should match defaults
	defaultCfg := DefaultAudioConfig()

	if cfg.Enabled != defaultCfg.Enabled {
		t.Errorf("Expected Enabled=%v, got %v", defaultCfg.Enabled, cfg.Enabled)
	}

	if cfg.SampleRate != defaultCfg.SampleRate {
		t.Errorf("Expected SampleRate=%d, got %d", defaultCfg.SampleRate, cfg.SampleRate)
	}

	if cfg.BufferFrames != defaultCfg.BufferFrames {
		t.Errorf("Expected BufferFrames=%d, got %d", defaultCfg.BufferFrames, cfg.BufferFrames)
	}
}

// TestLoadAudioConfigEnabled verifies loading enabled flag
func TestLoadAudioConfigEnabled(t *testing.T) {
	defer os.Unsetenv("KITTY_DOOM_AUDIO_ENABLED")

	testCases := []struct {
		value    string
		expected bool
	}{
		{"true", true},
		{"false", false},
		{"1", true},
		{"0", false},
	}

	for _, tc := range testCases {
		t.Run(tc.value, func(t *testing.T) {
			os.Setenv("KITTY_DOOM_AUDIO_ENABLED", tc.value)
			cfg := LoadAudioConfig()

			if cfg.Enabled != tc.expected {
				t.Errorf("Expected Enabled=%v for value %s, got %v", tc.expected, tc.value, cfg.Enabled)
			}
		})
	}
}

// TestLoadAudioConfigSampleRate verifies loading sample rate
func TestLoadAudioConfigSampleRate(t *testing.T) {
	defer os.Unsetenv("KITTY_DOOM_SAMPLE_RATE")

	testCases := []struct {
		value    string
		expected int
	}{
		{"11025", 11025},
		{"22050", 22050},
		{"44100", 44100},
	}

	for _, tc := range testCases {
		t.Run(tc.value, func(t *testing.T) {
			os.Setenv("KITTY_DOOM_SAMPLE_RATE", tc.value)
			cfg := LoadAudioConfig()

			if cfg.SampleRate != tc.expected {
				t.Errorf("Expected SampleRate=%d for value %s, got %d", tc.expected, tc.value, cfg.SampleRate)
			}
		})
	}
}

// TestLoadAudioConfigSampleRateInvalid verifies handling of invalid sample rate
func TestLoadAudioConfigSampleRateInvalid(t *testing.T) {
	defer os.Unsetenv("KITTY_DOOM_SAMPLE_RATE")

	// Invalid values should use default
	defaultRate := DefaultAudioConfig().SampleRate

	testCases := []string{
		"invalid",
		"-1000",
		"0",
		"",
	}

	for _, value := range testCases {
		t.Run(value, func(t *testing.T) {
			os.Setenv("KITTY_DOOM_SAMPLE_RATE", value)
			cfg := LoadAudioConfig()

			if cfg.SampleRate != defaultRate {
				t.Errorf("Expected default SampleRate=%d for invalid value %s, got %d", defaultRate, value, cfg.SampleRate)
			}
		})
	}
}

// TestLoadAudioConfigBufferFrames verifies loading buffer size
func TestLoadAudioConfigBufferFrames(t *testing.T) {
	defer os.Unsetenv("KITTY_DOOM_AUDIO_BUFFER")

	testCases := []struct {
		value    string
		expected int
	}{
		{"256", 256},
		{"1024", 1024},
	}

	for _, tc := range testCases {
		t.Run(tc.value, func(t *testing.T) {
			os.Setenv("KITTY_DOOM_AUDIO_BUFFER", tc.value)
			cfg := LoadAudioConfig()

			if cfg.BufferFrames != tc.expected {
				t.Errorf("Expected BufferFrames=%d for value %s, got %d", tc.expected, tc.value, cfg.BufferFrames)
			}
		})
	}
}
