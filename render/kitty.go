package render

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strconv"
)

// Frame geometry is fixed by the engine's VGA mode.
const (
	frameWidth  = 320
	frameHeight = 200
	frameBytes  = frameWidth * frameHeight * 3

	// Kitty caps a single escape sequence's payload at 4096 bytes.
	chunkSize = 4096
)

// ErrOverflow reports that a frame did not fit the protocol buffer and was
// dropped whole. The stream stays consistent: nothing of the frame reaches
// the terminal.
var ErrOverflow = errors.New("protocol buffer overflow")

var (
	oscSetTitle   = []byte("\x1b]21;Kitty DOOM\x1b\\")
	oscResetTitle = []byte("\x1b]21\x1b\\")
	csiClearHome  = []byte("\x1b[2J\x1b[H")
	csiHomeClear  = []byte("\x1b[H\x1b[2J")
	csiHome       = []byte("\x1b[H")
	apcEnd        = []byte("\x1b\\")
)

// Renderer transmits RGB24 frames over the Kitty graphics protocol.
//
// Frame 0 creates the image (carrying dimensions, placement and quality
// hints); later frames replace its pixels and advance the animation. All
// chunks of one frame are batched into a single Write so concurrent query
// traffic can never split a frame on the wire, and the syscall cost stays
// flat at real-time rates.
type Renderer struct {
	out        io.Writer
	screenCols int
	screenRows int
	id         int64
	frame      int

	encoded []byte // base64 output, exactly one frame
	buf     []byte // batched protocol output, worst-case chunks of one frame
}

// NewRenderer allocates the frame buffers, assigns the persistent image id,
// and takes over the screen (title and clear).
func NewRenderer(out io.Writer, screenCols, screenRows int) *Renderer {
	r := &Renderer{
		out:        out,
		screenCols: screenCols,
		screenRows: screenRows,
		id:         int64(rand.Int31()),
		encoded:    make([]byte, base64.StdEncoding.EncodedLen(frameBytes)),

		// Worst case ~63 chunks of header + 4096 payload + terminator
		buf: make([]byte, 0, 280*1024),
	}

	out.Write(oscSetTitle)
	out.Write(csiClearHome)
	return r
}

// Close deletes the protocol image and releases the screen.
func (r *Renderer) Close() {
	r.out.Write(r.deleteSeq())
	r.out.Write(csiHomeClear)
	r.out.Write(oscResetTitle)
}

func (r *Renderer) deleteSeq() []byte {
	seq := make([]byte, 0, 32)
	seq = append(seq, "\x1b_Ga=d,i="...)
	seq = strconv.AppendInt(seq, r.id, 10)
	seq = append(seq, ';')
	seq = append(seq, apcEnd...)
	return seq
}

// RenderFrame encodes one RGB24 frame and writes it as a single batch.
// On overflow the frame is dropped in its entirety and the frame counter
// does not advance.
func (r *Renderer) RenderFrame(rgb []byte) error {
	if len(rgb) != frameBytes {
		return fmt.Errorf("frame is %d bytes, want %d", len(rgb), frameBytes)
	}

	// Park the cursor at home before the image is created
	if r.frame == 0 {
		r.out.Write(csiHome)
	}

	enc := r.encoded
	base64.StdEncoding.Encode(enc, rgb)

	b := r.buf[:0]
	var scratch [96]byte

	for off := 0; off < len(enc); {
		more := off+chunkSize < len(enc)
		this := len(enc) - off
		if more {
			this = chunkSize
		}

		hdr := r.appendChunkHeader(scratch[:0], off == 0, more)
		if len(b)+len(hdr) > cap(b) {
			return fmt.Errorf("frame %d chunk header needs %d bytes, %d available: %w",
				r.frame, len(hdr), cap(b)-len(b), ErrOverflow)
		}
		b = append(b, hdr...)

		if len(b)+this > cap(b) {
			return fmt.Errorf("frame %d payload needs %d bytes, %d available: %w",
				r.frame, this, cap(b)-len(b), ErrOverflow)
		}
		b = append(b, enc[off:off+this]...)

		if len(b)+len(apcEnd) > cap(b) {
			return fmt.Errorf("frame %d terminator: %w", r.frame, ErrOverflow)
		}
		b = append(b, apcEnd...)

		off += this
	}

	// Updated frames need an explicit animate/advance command
	if r.frame > 0 {
		anim := r.appendAnimate(scratch[:0])
		if len(b)+len(anim) > cap(b) {
			return fmt.Errorf("frame %d animate command: %w", r.frame, ErrOverflow)
		}
		b = append(b, anim...)
	}

	// Move the cursor below the image, once, after creation
	if r.frame == 0 {
		if len(b)+2 > cap(b) {
			return fmt.Errorf("frame %d newline: %w", r.frame, ErrOverflow)
		}
		b = append(b, '\r', '\n')
	}

	_, err := r.out.Write(b)
	r.frame++
	if err != nil {
		return fmt.Errorf("frame write failed: %w", err)
	}
	return nil
}

// appendChunkHeader writes the APC introducer for one chunk. The first
// chunk of a frame carries the image metadata; continuations only carry
// the action and continuation flag.
func (r *Renderer) appendChunkHeader(dst []byte, first, more bool) []byte {
	m := byte('0')
	if more {
		m = '1'
	}

	if first {
		if r.frame == 0 {
			// Create image: direct RGB transmission sized to the screen grid
			dst = append(dst, "\x1b_Ga=T,i="...)
			dst = strconv.AppendInt(dst, r.id, 10)
			dst = append(dst, ",f=24,s=320,v=200,q=2,c="...)
			dst = strconv.AppendInt(dst, int64(r.screenCols), 10)
			dst = append(dst, ",r="...)
			dst = strconv.AppendInt(dst, int64(r.screenRows), 10)
			dst = append(dst, ",m="...)
		} else {
			// Replace the root frame's pixels in place
			dst = append(dst, "\x1b_Ga=f,r=1,i="...)
			dst = strconv.AppendInt(dst, r.id, 10)
			dst = append(dst, ",f=24,x=0,y=0,s=320,v=200,m="...)
		}
	} else {
		if r.frame == 0 {
			dst = append(dst, "\x1b_Gm="...)
		} else {
			dst = append(dst, "\x1b_Ga=f,r=1,m="...)
		}
	}
	dst = append(dst, m, ';')
	return dst
}

func (r *Renderer) appendAnimate(dst []byte) []byte {
	dst = append(dst, "\x1b_Ga=a,c=1,i="...)
	dst = strconv.AppendInt(dst, r.id, 10)
	dst = append(dst, ';')
	dst = append(dst, apcEnd...)
	return dst
}
