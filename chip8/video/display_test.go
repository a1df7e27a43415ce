package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var glyphZero = []byte{0xF0, 0x90, 0x90, 0x90, 0xF0}

func countLit(d *Display) int {
	n := 0
	for y := range d.Height() {
		for x := range d.Width() {
			if d.At(x, y) {
				n++
			}
		}
	}
	return n
}

func TestDisplayDraw(t *testing.T) {
	t.Run("draws glyph", func(t *testing.T) {
		d := NewDisplay(64, 32)

		collision := d.Draw(0, 0, glyphZero)
		assert.False(t, collision)
		assert.Equal(t, 14, countLit(d))

		assert.True(t, d.At(0, 0))
		assert.True(t, d.At(3, 0))
		assert.False(t, d.At(4, 0))
		assert.True(t, d.At(0, 1))
		assert.False(t, d.At(1, 1))
		assert.True(t, d.At(3, 1))
	})

	t.Run("drawing twice erases and collides", func(t *testing.T) {
		d := NewDisplay(64, 32)

		d.Draw(10, 5, glyphZero)
		collision := d.Draw(10, 5, glyphZero)

		assert.True(t, collision)
		assert.Equal(t, 0, countLit(d))
	})

	t.Run("partial overlap collides", func(t *testing.T) {
		d := NewDisplay(64, 32)

		d.Draw(0, 0, []byte{0x80})
		collision := d.Draw(0, 0, []byte{0xC0})

		assert.True(t, collision)
		assert.False(t, d.At(0, 0))
		assert.True(t, d.At(1, 0))
	})

	t.Run("unset bits never collide", func(t *testing.T) {
		d := NewDisplay(64, 32)

		d.Draw(0, 0, []byte{0xFF})
		collision := d.Draw(0, 0, []byte{0x00})

		assert.False(t, collision)
		assert.Equal(t, 8, countLit(d))
	})

	t.Run("origin wraps", func(t *testing.T) {
		d := NewDisplay(64, 32)

		d.Draw(64+2, 32+3, []byte{0x80})

		assert.True(t, d.At(2, 3))
		assert.Equal(t, 1, countLit(d))
	})

	t.Run("right edge clips", func(t *testing.T) {
		d := NewDisplay(64, 32)

		d.Draw(60, 0, []byte{0xFF})

		for x := 60; x < 64; x++ {
			assert.True(t, d.At(x, 0), "x=%d", x)
		}
		for x := 0; x < 4; x++ {
			assert.False(t, d.At(x, 0), "pixels must not wrap to x=%d", x)
		}
		assert.Equal(t, 4, countLit(d))
	})

	t.Run("bottom edge clips", func(t *testing.T) {
		d := NewDisplay(64, 32)

		d.Draw(0, 30, glyphZero)

		assert.True(t, d.At(0, 30))
		assert.True(t, d.At(0, 31))
		assert.False(t, d.At(0, 0), "rows must not wrap")
		assert.False(t, d.At(0, 1))
	})

	t.Run("high resolution", func(t *testing.T) {
		d := NewDisplay(128, 64)

		d.Draw(120, 60, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF})

		assert.Equal(t, 32, countLit(d))
		assert.True(t, d.At(127, 63))
	})
}

func TestDisplayClear(t *testing.T) {
	d := NewDisplay(64, 32)
	d.Draw(0, 0, glyphZero)
	d.Clear()

	assert.Equal(t, 0, countLit(d))
	assert.Equal(t, 64, d.Width())
	assert.Equal(t, 32, d.Height())
}

func TestFrameBufferBlit(t *testing.T) {
	d := NewDisplay(64, 32)
	d.Draw(0, 0, []byte{0x80})

	fb := NewFrameBuffer(64, 32)
	fb.Blit(d, DefaultPalette)

	assert.Equal(t, uint32(WhiteColor), fb.GetPixel(0, 0))
	assert.Equal(t, uint32(BlackColor), fb.GetPixel(1, 0))
	assert.Len(t, fb.ToSlice(), 64*32)

	fb.Blit(d, AmberPalette)
	assert.Equal(t, uint32(AmberColor), fb.GetPixel(0, 0))

	fb.Fill(WhiteColor)
	assert.Equal(t, uint32(WhiteColor), fb.GetPixel(63, 31))
}
