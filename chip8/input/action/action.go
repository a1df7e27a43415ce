package action

import "fmt"

// Action represents input actions that can be performed in the emulator
type Action int

const (
	// Hexadecimal keypad
	Key0 Action = iota
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF

	// Emulator features
	EmulatorSnapshot
	EmulatorPauseToggle
	EmulatorStepInstruction
	EmulatorReset
	EmulatorQuit

	// Debug controls
	DebugLogLevelIncrease
	DebugLogLevelDecrease
)

// Category groups actions by how backends and the input manager treat them.
type Category int

const (
	// CategoryGameInput actions are keypad keys, they are never debounced and have press and release.
	CategoryGameInput Category = iota
	// CategoryEmulator actions control the emulator itself.
	CategoryEmulator
	// CategoryDebug actions change debugging output.
	CategoryDebug
)

// Info describes an action.
type Info struct {
	Category    Category
	Description string
}

// GetInfo returns the category and a human readable description of an action.
func GetInfo(act Action) Info {
	if key, ok := KeypadKey(act); ok {
		return Info{Category: CategoryGameInput, Description: fmt.Sprintf("Key %X", key)}
	}

	switch act {
	case EmulatorSnapshot:
		return Info{Category: CategoryEmulator, Description: "Snapshot"}
	case EmulatorPauseToggle:
		return Info{Category: CategoryEmulator, Description: "Pause"}
	case EmulatorStepInstruction:
		return Info{Category: CategoryEmulator, Description: "Step instruction"}
	case EmulatorReset:
		return Info{Category: CategoryEmulator, Description: "Reset"}
	case EmulatorQuit:
		return Info{Category: CategoryEmulator, Description: "Quit"}
	case DebugLogLevelIncrease:
		return Info{Category: CategoryDebug, Description: "More logs"}
	case DebugLogLevelDecrease:
		return Info{Category: CategoryDebug, Description: "Fewer logs"}
	default:
		return Info{Category: CategoryEmulator, Description: fmt.Sprintf("Action(%d)", int(act))}
	}
}

// KeypadKey returns the keypad key of a game input action.
func KeypadKey(act Action) (uint8, bool) {
	if act >= Key0 && act <= KeyF {
		return uint8(act - Key0), true
	}
	return 0, false
}

// ForKey returns the action of a keypad key.
func ForKey(key uint8) Action {
	return Key0 + Action(key&0xF)
}
