package display

// RGBA pixel format constants
const (
	// RGBABytesPerPixel is the number of bytes per pixel in RGBA format
	RGBABytesPerPixel = 4
	// RGBARShift is the bit shift for the red component in RGBA format
	RGBARShift = 24
	// RGBAGShift is the bit shift for the green component in RGBA format
	RGBAGShift = 16
	// RGBABShift is the bit shift for the blue component in RGBA format
	RGBABShift = 8
	// RGBAAShift is the bit shift for the alpha component in RGBA format
	RGBAAShift = 0
	// RGBAColorMask is the mask for extracting color components
	RGBAColorMask = 0xFF
)

// Backend scaling and window constants
const (
	// DefaultPixelScale is the default scaling factor for low resolution pixels
	DefaultPixelScale = 10
	// DefaultWindowWidth is the default window width (64 pixels * scale)
	DefaultWindowWidth = 64 * DefaultPixelScale // 640
	// DefaultWindowHeight is the default window height (32 pixels * scale)
	DefaultWindowHeight = 32 * DefaultPixelScale // 320
	// SnapshotPixelScale is the upscaling applied to saved PNG snapshots
	SnapshotPixelScale = 8
)

// Color mapping constants
const (
	// GrayscaleBlack is the RGB value for black in grayscale
	GrayscaleBlack = 0
	// FullAlpha is the alpha value for fully opaque pixels
	FullAlpha = 255
)

// Components splits an RGBA pixel into its channels.
func Components(pixel uint32) (r, g, b, a uint8) {
	return uint8((pixel >> RGBARShift) & RGBAColorMask),
		uint8((pixel >> RGBAGShift) & RGBAColorMask),
		uint8((pixel >> RGBABShift) & RGBAColorMask),
		uint8((pixel >> RGBAAShift) & RGBAColorMask)
}

// WindowSize returns the window size for a display of the given resolution at scale.
func WindowSize(width, height, scale int) (int, int) {
	if scale <= 0 {
		scale = DefaultPixelScale
	}
	return width * scale, height * scale
}
