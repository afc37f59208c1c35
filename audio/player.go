package audio

import (
	"encoding/binary"
	"fmt"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Source hands out blocks of mixed engine audio: interleaved 16-bit
// little-endian stereo frames. The player pulls a fresh block whenever
// the previous one is exhausted.
//
// SoundBuffer is called from the playback goroutine under the speaker
// lock. Callers that mutate engine state must bracket it with
// Player.Lock and Player.Unlock, which take the same lock.
type Source interface {
	SoundBuffer() []byte
}

// Player feeds engine audio to the system output device.
//
// A nil *Player is a valid no-op player, so callers can treat missing
// or failed audio uniformly instead of branching at every use.
type Player struct {
	cfg *AudioConfig
}

// NewPlayer opens the playback device and starts streaming from the
// source. Audio is best-effort: callers are expected to log the error
// and continue without sound.
func NewPlayer(source Source, cfg *AudioConfig) (*Player, error) {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	if !cfg.Enabled {
		return nil, nil
	}

	sr := beep.SampleRate(cfg.SampleRate)
	if err := speaker.Init(sr, cfg.BufferFrames); err != nil {
		return nil, fmt.Errorf("audio device init: %w", err)
	}

	speaker.Play(&sourceStreamer{source: source})
	return &Player{cfg: cfg}, nil
}

// Lock takes the playback lock. Call before stepping the engine so the
// mixer does not run concurrently with a simulation update.
func (p *Player) Lock() {
	if p == nil {
		return
	}
	speaker.Lock()
}

// Unlock releases the playback lock.
func (p *Player) Unlock() {
	if p == nil {
		return
	}
	speaker.Unlock()
}

// Close stops playback and closes the device.
func (p *Player) Close() {
	if p == nil {
		return
	}
	speaker.Clear()
	speaker.Close()
}

// sourceStreamer adapts a block-oriented Source to beep's pull model,
// carrying the unread remainder of the current block between calls.
// An empty block plays as silence, the stream itself never ends.
type sourceStreamer struct {
	source Source
	block  []byte
	off    int
}

func (s *sourceStreamer) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if s.off+4 > len(s.block) {
			s.block = s.source.SoundBuffer()
			s.off = 0
			if len(s.block) < 4 {
				for j := i; j < len(samples); j++ {
					samples[j][0] = 0
					samples[j][1] = 0
				}
				return len(samples), true
			}
		}

		left := int16(binary.LittleEndian.Uint16(s.block[s.off:]))
		right := int16(binary.LittleEndian.Uint16(s.block[s.off+2:]))
		s.off += 4

		samples[i][0] = float64(left) / (1 << 15)
		samples[i][1] = float64(right) / (1 << 15)
	}
	return len(samples), true
}

func (s *sourceStreamer) Err() error {
	return nil
}
