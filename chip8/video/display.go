package video

import "github.com/valerio/go-chip8/chip8/bit"

// View is a read-only view of a monochrome display.
type View interface {
	Width() int
	Height() int
	At(x, y int) bool
}

// Display is the monochrome pixel grid sprites are drawn to.
// Its size is fixed when it is created.
type Display struct {
	width  int
	height int
	cells  []bool
}

// NewDisplay creates a cleared display of the given size.
func NewDisplay(width, height int) *Display {
	return &Display{
		width:  width,
		height: height,
		cells:  make([]bool, width*height),
	}
}

func (d *Display) Width() int {
	return d.width
}

func (d *Display) Height() int {
	return d.height
}

// At reports whether the pixel at (x, y) is lit.
func (d *Display) At(x, y int) bool {
	return d.cells[y*d.width+x]
}

// Clear turns every pixel off.
func (d *Display) Clear() {
	clear(d.cells)
}

// Draw XORs sprite onto the display, one byte per row, most significant bit
// leftmost. The origin wraps around the display but the sprite itself is
// clipped at the right and bottom edges. It reports whether any lit pixel
// was turned off.
func (d *Display) Draw(x, y uint8, sprite []byte) (collision bool) {
	originX := int(x) % d.width
	originY := int(y) % d.height

	for row, data := range sprite {
		py := originY + row
		if py >= d.height {
			break
		}

		px := originX
		for on := range bit.Bits(data) {
			if px >= d.width {
				break
			}
			if on {
				idx := py*d.width + px
				if d.cells[idx] {
					collision = true
				}
				d.cells[idx] = !d.cells[idx]
			}
			px++
		}
	}

	return collision
}
