package render

import (
	"math/rand"
	"testing"
)

func naiveConvert(indexed, palette []byte) []byte {
	out := make([]byte, len(indexed)*3)
	for i, idx := range indexed {
		out[i*3+0] = palette[int(idx)*3+0]
		out[i*3+1] = palette[int(idx)*3+1]
		out[i*3+2] = palette[int(idx)*3+2]
	}
	return out
}

// Test conversion equivalence against the per-pixel definition
func TestPaletteConvertMatchesNaive(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	palette := make([]byte, 768)
	rng.Read(palette)

	c := NewPaletteConverter(palette)

	// Cover empty input, sizes around batch boundaries, and a full frame
	for _, n := range []int{0, 1, 7, 8, 9, 255, 4096, 64000} {
		indexed := make([]byte, n)
		rng.Read(indexed)

		got := c.Convert(indexed)
		want := naiveConvert(indexed, palette)

		if len(got) != len(want) {
			t.Fatalf("n=%d: expected %d output bytes, got %d", n, len(want), len(got))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("n=%d: byte %d: expected %#x, got %#x", n, i, want[i], got[i])
			}
		}
	}
}

// Test that the reusable output buffer is fully overwritten between calls
func TestPaletteConvertReuse(t *testing.T) {
	palette := make([]byte, 768)
	for i := 0; i < 256; i++ {
		palette[i*3+0] = byte(i)
		palette[i*3+1] = byte(i)
		palette[i*3+2] = byte(i)
	}
	c := NewPaletteConverter(palette)

	first := c.Convert([]byte{0xff, 0xff, 0xff, 0xff})
	for i, v := range first {
		if v != 0xff {
			t.Fatalf("First pass byte %d: expected 0xff, got %#x", i, v)
		}
	}

	second := c.Convert([]byte{1, 2})
	want := []byte{1, 1, 1, 2, 2, 2}
	for i, v := range want {
		if second[i] != v {
			t.Fatalf("Second pass byte %d: expected %#x, got %#x", i, v, second[i])
		}
	}
}

func BenchmarkPaletteConvert(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	palette := make([]byte, 768)
	rng.Read(palette)
	indexed := make([]byte, frameWidth*frameHeight)
	rng.Read(indexed)

	c := NewPaletteConverter(palette)

	b.SetBytes(int64(len(indexed)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Convert(indexed)
	}
}
