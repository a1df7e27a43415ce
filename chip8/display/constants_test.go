package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComponents(t *testing.T) {
	r, g, b, a := Components(0x11223344)
	assert.Equal(t, uint8(0x11), r)
	assert.Equal(t, uint8(0x22), g)
	assert.Equal(t, uint8(0x33), b)
	assert.Equal(t, uint8(0x44), a)
}

func TestWindowSize(t *testing.T) {
	w, h := WindowSize(64, 32, 0)
	assert.Equal(t, DefaultWindowWidth, w)
	assert.Equal(t, DefaultWindowHeight, h)

	w, h = WindowSize(128, 64, 5)
	assert.Equal(t, 640, w)
	assert.Equal(t, 320, h)
}
