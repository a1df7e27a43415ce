package memory

import "fmt"

// KeyCount is the number of keys on the hexadecimal keypad.
const KeyCount = 16

// Keypad tracks which of the 16 keys are held down.
type Keypad struct {
	keys [KeyCount]bool
}

// NewKeypad creates a keypad with every key released.
func NewKeypad() *Keypad {
	return &Keypad{}
}

func checkKey(key uint8) {
	if key >= KeyCount {
		panic(fmt.Sprintf("invalid key 0x%X", key))
	}
}

// Set updates the state of a key. Keys over 0xF panic.
func (k *Keypad) Set(key uint8, pressed bool) {
	checkKey(key)
	k.keys[key] = pressed
}

// IsDown reports whether a key is held down. Keys over 0xF panic.
func (k *Keypad) IsDown(key uint8) bool {
	checkKey(key)
	return k.keys[key]
}

// AnyPressed returns the lowest key currently held down, if any.
func (k *Keypad) AnyPressed() (uint8, bool) {
	for i, down := range k.keys {
		if down {
			return uint8(i), true
		}
	}
	return 0, false
}

func (k *Keypad) Reset() {
	clear(k.keys[:])
}
