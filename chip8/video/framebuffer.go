package video

// Color is a pixel colour in RGBA order, red in the most significant byte.
type Color uint32

const (
	WhiteColor     Color = 0xFFFFFFFF
	LightGreyColor Color = 0x989898FF
	DarkGreyColor  Color = 0x4C4C4CFF
	BlackColor     Color = 0x000000FF
	AmberColor     Color = 0xFFB000FF
)

// Palette maps lit and unlit pixels to colours.
type Palette struct {
	On  Color
	Off Color
}

var (
	DefaultPalette = Palette{On: WhiteColor, Off: BlackColor}
	AmberPalette   = Palette{On: AmberColor, Off: BlackColor}
)

// FrameBuffer holds the coloured frame presented by backends.
type FrameBuffer struct {
	width  uint
	height uint
	buffer []uint32
}

// NewFrameBuffer creates a frame buffer with the specified size.
func NewFrameBuffer(width, height uint) *FrameBuffer {
	return &FrameBuffer{
		width:  width,
		height: height,
		buffer: make([]uint32, width*height),
	}
}

func (fb *FrameBuffer) Width() uint {
	return fb.width
}

func (fb *FrameBuffer) Height() uint {
	return fb.height
}

func (fb *FrameBuffer) GetPixel(x, y uint) uint32 {
	return fb.buffer[y*fb.width+x]
}

func (fb *FrameBuffer) SetPixel(x, y uint, color Color) {
	fb.buffer[y*fb.width+x] = uint32(color)
}

// Fill sets every pixel to color.
func (fb *FrameBuffer) Fill(color Color) {
	for i := range fb.buffer {
		fb.buffer[i] = uint32(color)
	}
}

// Blit colours the frame buffer from a display. The display must have the
// same size as the frame buffer.
func (fb *FrameBuffer) Blit(view View, palette Palette) {
	for y := range int(fb.height) {
		for x := range int(fb.width) {
			color := palette.Off
			if view.At(x, y) {
				color = palette.On
			}
			fb.buffer[y*int(fb.width)+x] = uint32(color)
		}
	}
}

func (fb *FrameBuffer) ToSlice() []uint32 {
	return fb.buffer
}
