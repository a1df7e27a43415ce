package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeypadKey(t *testing.T) {
	key, ok := KeypadKey(Key0)
	assert.True(t, ok)
	assert.Equal(t, uint8(0), key)

	key, ok = KeypadKey(KeyF)
	assert.True(t, ok)
	assert.Equal(t, uint8(0xF), key)

	_, ok = KeypadKey(EmulatorQuit)
	assert.False(t, ok)

	for k := range uint8(16) {
		got, ok := KeypadKey(ForKey(k))
		assert.True(t, ok)
		assert.Equal(t, k, got)
	}
}

func TestGetInfo(t *testing.T) {
	assert.Equal(t, Info{Category: CategoryGameInput, Description: "Key B"}, GetInfo(KeyB))
	assert.Equal(t, CategoryEmulator, GetInfo(EmulatorReset).Category)
	assert.Equal(t, CategoryDebug, GetInfo(DebugLogLevelDecrease).Category)
}
