package doom

import (
	"encoding/binary"
	"math/rand"
	"sync"
	"sync/atomic"
)

// Classic 37-step fire gradient, black through white-hot.
var fireColors = []byte{
	0x07, 0x07, 0x07, 0x1f, 0x07, 0x07, 0x2f, 0x0f, 0x07, 0x47, 0x0f, 0x07,
	0x57, 0x17, 0x07, 0x67, 0x1f, 0x07, 0x77, 0x1f, 0x07, 0x8f, 0x27, 0x07,
	0x9f, 0x2f, 0x07, 0xaf, 0x3f, 0x07, 0xbf, 0x47, 0x07, 0xc7, 0x47, 0x07,
	0xdf, 0x4f, 0x07, 0xdf, 0x57, 0x07, 0xdf, 0x57, 0x07, 0xd7, 0x5f, 0x07,
	0xd7, 0x5f, 0x07, 0xd7, 0x67, 0x0f, 0xcf, 0x6f, 0x0f, 0xcf, 0x77, 0x0f,
	0xcf, 0x7f, 0x0f, 0xcf, 0x87, 0x17, 0xc7, 0x87, 0x17, 0xc7, 0x8f, 0x17,
	0xc7, 0x97, 0x1f, 0xbf, 0x9f, 0x1f, 0xbf, 0x9f, 0x1f, 0xbf, 0xa7, 0x27,
	0xbf, 0xa7, 0x27, 0xbf, 0xaf, 0x2f, 0xb7, 0xaf, 0x2f, 0xb7, 0xb7, 0x2f,
	0xb7, 0xb7, 0x37, 0xcf, 0xcf, 0x6f, 0xdf, 0xdf, 0x9f, 0xef, 0xef, 0xc7,
	0xff, 0xff, 0xff,
}

const (
	maxHeat       = 36 // Hottest palette index of the fire gradient
	soundFrames   = 512
	soundChannels = 2
)

// Fire is the built-in demo engine: the classic propagating fire effect
// on the standard 320x200 indexed framebuffer. It consumes the full input
// vocabulary so the pipeline can be exercised without the licensed game
// data a real engine needs.
//
// Controls: arrows steer wind and intensity, fire flares the base, use
// douses/relights, run adds turbulence while held, Enter resets, Escape
// or q quits. Mouse motion shifts the wind.
type Fire struct {
	heat    []byte // ScreenWidth*ScreenHeight cells, values 0..maxHeat
	palette []byte

	rng       *rand.Rand
	running   atomic.Bool
	intensity int
	saved     int // intensity stashed while doused

	// Event state written by the input goroutine
	mu     sync.Mutex
	held   map[Key]bool
	windDX int
	flare  bool
	douse  bool
	reset  bool

	// Crackle synthesis state, touched only under the speaker lock
	level atomic.Int32
	noise *rand.Rand
	prev  int
	sound []byte
}

// NewFire creates a demo engine. The seed fixes the spread pattern, which
// keeps simulation runs reproducible.
func NewFire(seed int64) *Fire {
	f := &Fire{
		heat:      make([]byte, ScreenWidth*ScreenHeight),
		palette:   make([]byte, 768),
		rng:       rand.New(rand.NewSource(seed)),
		noise:     rand.New(rand.NewSource(seed + 1)),
		intensity: maxHeat,
		held:      make(map[Key]bool),
		sound:     make([]byte, soundFrames*soundChannels*2),
	}
	copy(f.palette, fireColors)
	for i := len(fireColors) / 3; i < 256; i++ {
		f.palette[i*3+0] = byte(i)
		f.palette[i*3+1] = byte(i)
		f.palette[i*3+2] = byte(i)
	}
	f.igniteBase()
	f.running.Store(true)
	return f
}

func (f *Fire) igniteBase() {
	base := (ScreenHeight - 1) * ScreenWidth
	for x := 0; x < ScreenWidth; x++ {
		f.heat[base+x] = byte(f.intensity)
	}
}

// Update advances the fire one tick. Runs on the main goroutine; when audio
// is active the caller holds the speaker lock, which serializes Update
// against SoundBuffer.
func (f *Fire) Update() {
	wind, turbulent := f.consumeEvents()

	f.igniteBase()

	// Propagate upward with decay. The source row feeds the row above,
	// displaced sideways by spread randomness and wind.
	spread := 3
	if turbulent {
		spread = 5
	}
	for y := 1; y < ScreenHeight; y++ {
		row := y * ScreenWidth
		for x := 0; x < ScreenWidth; x++ {
			src := f.heat[row+x]
			if src == 0 {
				f.heat[row-ScreenWidth+x] = 0
				continue
			}
			r := f.rng.Intn(spread)
			dst := x - r + 1 + wind
			if dst < 0 {
				dst = 0
			} else if dst >= ScreenWidth {
				dst = ScreenWidth - 1
			}
			h := int(src) - (r & 1)
			if h < 0 {
				h = 0
			}
			f.heat[row-ScreenWidth+dst] = byte(h)
		}
	}

	f.level.Store(int32(f.intensity))
}

// consumeEvents folds the pending input state into simulation parameters.
func (f *Fire) consumeEvents() (wind int, turbulent bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.held[KeyLeftArrow] {
		wind--
	}
	if f.held[KeyRightArrow] {
		wind++
	}
	if f.windDX != 0 {
		wind += f.windDX / 50
		f.windDX = 0
	}
	if wind < -2 {
		wind = -2
	} else if wind > 2 {
		wind = 2
	}

	if f.held[KeyUpArrow] && f.intensity < maxHeat {
		f.intensity += 2
		if f.intensity > maxHeat {
			f.intensity = maxHeat
		}
	}
	if f.held[KeyDownArrow] && f.intensity > 0 {
		f.intensity -= 2
		if f.intensity < 0 {
			f.intensity = 0
		}
	}

	if f.reset {
		f.reset = false
		for i := range f.heat {
			f.heat[i] = 0
		}
		f.intensity = maxHeat
	}
	if f.douse {
		f.douse = false
		if f.intensity > 0 {
			f.saved = f.intensity
			f.intensity = 0
		} else {
			f.intensity = f.saved
		}
	}
	if f.flare {
		f.flare = false
		base := (ScreenHeight - 2) * ScreenWidth
		for i := 0; i < 40; i++ {
			f.heat[base+f.rng.Intn(2*ScreenWidth)] = maxHeat
		}
	}

	turbulent = f.held[KeyShift]
	return wind, turbulent
}

// Framebuffer returns the indexed frame produced by the last Update.
func (f *Fire) Framebuffer() []byte {
	return f.heat
}

// Palette returns the 256-entry RGB palette.
func (f *Fire) Palette() []byte {
	return f.palette
}

// Running reports whether the simulation wants to keep ticking.
func (f *Fire) Running() bool {
	return f.running.Load()
}

// KeyDown handles a key press from the input goroutine.
func (f *Fire) KeyDown(key Key) {
	switch key {
	case KeyEscape, 'q', 'Q':
		f.running.Store(false)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.held[key] = true
	switch key {
	case KeyCtrl:
		f.flare = true
	case KeySpace:
		f.douse = true
	case KeyEnter:
		f.reset = true
	}
}

// KeyUp handles a key release from the input goroutine.
func (f *Fire) KeyUp(key Key) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.held, key)
}

// MouseMove handles relative mouse motion from the input goroutine.
func (f *Fire) MouseMove(dx, dy int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.windDX += dx
}

// SoundBuffer synthesizes one 512-frame block of crackle noise, s16le
// stereo. Called by the audio streamer under the speaker lock.
func (f *Fire) SoundBuffer() []byte {
	amp := int(f.level.Load()) * 220
	for i := 0; i < soundFrames; i++ {
		raw := 0
		if amp > 0 {
			raw = f.noise.Intn(2*amp+1) - amp
		}
		// Cheap lowpass turns white noise into a fire-like rumble
		f.prev = (f.prev*3 + raw) / 4
		s := uint16(int16(f.prev))
		binary.LittleEndian.PutUint16(f.sound[i*4:], s)
		binary.LittleEndian.PutUint16(f.sound[i*4+2:], s)
	}
	return f.sound
}
