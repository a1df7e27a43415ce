package render

// IsLit reports whether a frame pixel is drawn in the palette's "on" colour.
func IsLit(pixel, on uint32) bool {
	return pixel == on
}

// HalfBlock returns the character that shows two vertically stacked pixels in
// one terminal cell, drawn in the foreground colour over the background.
func HalfBlock(top, bottom bool) rune {
	switch {
	case top && bottom:
		return '█'
	case top:
		return '▀'
	case bottom:
		return '▄'
	default:
		return ' '
	}
}
