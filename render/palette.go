package render

// PaletteConverter expands indexed pixels to RGB24 through a fixed 256-entry
// palette. The palette is split into three parallel channel arrays once at
// construction; per-channel tables keep the gather loop friendly to the
// compiler's auto-vectorization, which is where the bulk of the conversion
// cost goes at 35 frames per second.
type PaletteConverter struct {
	r [256]byte
	g [256]byte
	b [256]byte

	rgb []byte // reusable output, grown on demand
}

// NewPaletteConverter caches the palette channels. The palette must hold
// 256 RGB triplets (768 bytes) and is treated as immutable afterward.
func NewPaletteConverter(palette []byte) *PaletteConverter {
	c := &PaletteConverter{}
	for i := 0; i < 256; i++ {
		c.r[i] = palette[i*3+0]
		c.g[i] = palette[i*3+1]
		c.b[i] = palette[i*3+2]
	}
	return c
}

// Convert returns the RGB24 expansion of indexed. The result is owned by
// the converter and valid until the next Convert call.
func (c *PaletteConverter) Convert(indexed []byte) []byte {
	n := len(indexed)
	if cap(c.rgb) < n*3 {
		c.rgb = make([]byte, n*3)
	}
	out := c.rgb[:n*3]

	for i, idx := range indexed {
		out[i*3+0] = c.r[idx]
		out[i*3+1] = c.g[idx]
		out[i*3+2] = c.b[idx]
	}
	return out
}
